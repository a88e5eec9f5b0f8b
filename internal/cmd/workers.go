package cmd

import (
	"flag"
	"fmt"

	"hnsync/cli/control"
	"hnsync/internal/config"
)

const maxWorkers = 64

func SetWorkers(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("set-workers", flag.ContinueOnError)
	count := fs.Int("count", 0, "number of workers")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *count <= 0 || *count > maxWorkers {
		return fmt.Errorf("number of workers should be between 1 and %d", maxWorkers)
	}

	c := control.NewClient(cfg.ControlAddr)
	old, err := c.SetWorkers(*count)
	if err != nil {
		return fmt.Errorf("could not set workers: %w", err)
	}
	fmt.Printf("Number of workers changed from %d to %d\n", old, *count)
	return nil
}
