package cmd

import (
	"flag"
	"fmt"
	"time"

	"hnsync/cli/control"
	"hnsync/internal/config"
)

func SetInterval(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("set-interval", flag.ContinueOnError)
	duration := fs.String("duration", "", "sync interval duration (e.g., 2m)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *duration == "" {
		return fmt.Errorf("usage: hnsync set-interval --duration 2m")
	}

	d, err := time.ParseDuration(*duration)
	if err != nil {
		return fmt.Errorf("invalid duration: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("duration must be positive")
	}

	c := control.NewClient(cfg.ControlAddr)
	old, err := c.SetInterval(d)
	if err != nil {
		return fmt.Errorf("could not set interval: %w", err)
	}

	if old == d {
		fmt.Printf("Interval is already set to %s (no change)\n", d.String())
		return nil
	}

	fmt.Printf("Interval of syncing stories changed from %s to %s\n", old.String(), d.String())
	return nil
}
