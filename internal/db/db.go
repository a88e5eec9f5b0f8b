package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// OpenDB opens a pooled Postgres handle and verifies it with a ping.
func OpenDB(ctx context.Context, dsn string) (*sql.DB, error) {
	dbConn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	dbConn.SetMaxOpenConns(10)
	dbConn.SetMaxIdleConns(10)
	dbConn.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := dbConn.PingContext(pingCtx); err != nil {
		dbConn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return dbConn, nil
}
