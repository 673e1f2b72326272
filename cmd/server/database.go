package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	// Registers the "pgx" database/sql driver.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/qasetech/ledger-api/internal/config"
	"github.com/qasetech/ledger-api/internal/redact"
)

// connectDatabase opens the database connection pool and waits for the
// database to become reachable, retrying at a fixed interval until it
// succeeds or the context is canceled.
func connectDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	interval := time.Duration(cfg.Database.ConnectRetryInterval) * time.Second

	for {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := db.PingContext(pingCtx)
		cancel()

		if err == nil {
			logger.Info("database connection established")
			return db, nil
		}

		logger.Error("database not reachable, retrying",
			"error", redact.Error(err),
			"retry_interval", interval.String())

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("gave up waiting for database: %w", ctx.Err())
		case <-time.After(interval):
		}
	}
}
