package cmd

import (
	"context"
	"flag"
	"fmt"
	"os/signal"
	"syscall"

	"hnsync/adapter/hackernews"
	"hnsync/app"
	"hnsync/internal/config"
)

func Sync(cfg config.Config, args []string) error {
	fset := flag.NewFlagSet("sync", flag.ContinueOnError)
	fset.IntVar(&cfg.MaxStories, "max", cfg.MaxStories, "only ingest the first N top stories (0 = all)")
	fset.IntVar(&cfg.DefaultWorkers, "workers", cfg.DefaultWorkers, "number of fetch workers")
	if err := fset.Parse(args); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	repo, closeRepo, err := openRepo(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer closeRepo()

	pub, closePub := openPublisher(ctx, cfg)
	defer closePub()

	client := hackernews.NewClient(cfg.ClientOptions())
	engine := app.NewEngine(repo, client, pub, cfg.DefaultWorkers)

	report, err := app.RunCycle(ctx, client, engine)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	fmt.Printf("Synced %d stories: %d new, %d already stored, %d failed\n",
		len(report.Outcomes), report.Inserted, report.AlreadyPresent, report.Failed)
	for _, o := range report.Failures() {
		fmt.Printf("   %v\n", o.Err)
	}
	return nil
}
