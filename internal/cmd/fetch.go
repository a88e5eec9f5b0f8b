package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"hnsync/adapter/hackernews"
	"hnsync/app"
	"hnsync/cli/control"
	"hnsync/internal/config"
)

// Fetch runs the scheduler in the foreground until SIGINT or SIGTERM.
func Fetch(cfg config.Config, args []string) error {
	listener, err := control.TryListen(cfg.ControlAddr)
	if err != nil {
		if errors.Is(err, control.ErrAlreadyRunning) {
			fmt.Println("Background process is already running")
			return err
		}
		return fmt.Errorf("failed to start control server: %w", err)
	}
	defer listener.Close()

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
	sched := app.NewScheduler(client, engine, cfg.DefaultInterval)

	srv := &http.Server{Handler: control.NewServer(sched)}
	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("control server error", "error", err)
		}
	}()

	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	fmt.Printf("The background process for syncing stories has started (interval = %s, workers = %d)\n",
		cfg.DefaultInterval.String(), cfg.DefaultWorkers)

	<-ctx.Done()

	_ = sched.Stop()
	_ = srv.Close()
	fmt.Println("Graceful shutdown: scheduler stopped")
	return nil
}
