// Package main implements the entry point for the ledger API server,
// which provides username/password authentication with JWT sessions and
// a transaction log with paginated retrieval.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/qasetech/ledger-api/internal/config"
	"github.com/qasetech/ledger-api/internal/platform/logger"
)

// main initializes configuration, logging, the database connection, and
// the application's services, then starts the HTTP server and blocks
// until shutdown.
func main() {
	if err := run(); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

// run wires the application together and starts the HTTP server.
// Split out of main so errors propagate through a single exit path.
func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := connectDatabase(ctx, cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := runMigrations(db, appLogger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	router := app.setupRouter()
	return app.startHTTPServer(ctx, router)
}
