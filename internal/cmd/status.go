package cmd

import (
	"fmt"

	"hnsync/cli/control"
	"hnsync/internal/config"
)

func Status(cfg config.Config, args []string) error {
	st, err := control.NewClient(cfg.ControlAddr).Status()
	if err != nil {
		return fmt.Errorf("background process not reachable at %s: %w", cfg.ControlAddr, err)
	}

	fmt.Printf("Running: %t\nInterval: %s\nWorkers: %d\nCycles: %d\n", st.Running, st.Interval, st.Workers, st.Cycles)
	if !st.LastRun.IsZero() {
		fmt.Printf("Last run: %s (took %s): %d new, %d already stored, %d failed\n",
			st.LastRun.Format("2006-01-02 15:04:05"), st.LastTook, st.Inserted, st.Present, st.Failed)
	}
	if st.LastError != "" {
		fmt.Printf("Last error: %s\n", st.LastError)
	}
	return nil
}
