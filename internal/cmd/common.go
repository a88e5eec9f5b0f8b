package cmd

import (
	"context"
	"log/slog"

	"hnsync/adapter/postgres"
	"hnsync/adapter/redisqueue"
	"hnsync/domain"
	"hnsync/internal/config"
	"hnsync/internal/db"
)

// openRepo connects to the store and makes sure the schema exists. The
// returned func closes the connection.
func openRepo(ctx context.Context, cfg config.Config) (*postgres.Repository, func(), error) {
	database, err := db.OpenDB(ctx, cfg.DSN())
	if err != nil {
		return nil, nil, err
	}
	repo := postgres.New(database)
	if err := repo.Ensure(ctx); err != nil {
		database.Close()
		return nil, nil, err
	}
	return repo, func() { database.Close() }, nil
}

// openPublisher connects to Redis when REDIS_URL is set. A connection
// failure disables notifications instead of failing the command.
func openPublisher(ctx context.Context, cfg config.Config) (domain.Publisher, func()) {
	if cfg.RedisURL == "" {
		return nil, func() {}
	}
	q, err := redisqueue.New(ctx, cfg.RedisURL)
	if err != nil {
		slog.Warn("redis unavailable, new-story notifications disabled", "error", err)
		return nil, func() {}
	}
	return q, func() { q.Close() }
}
