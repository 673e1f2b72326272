package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/qasetech/ledger-api/internal/config"
	"github.com/qasetech/ledger-api/internal/platform/postgres"
	"github.com/qasetech/ledger-api/internal/service"
	"github.com/qasetech/ledger-api/internal/service/auth"
	"github.com/qasetech/ledger-api/internal/store"
)

// application holds all shared application dependencies. It is assembled
// once at startup and threaded through the router and server setup.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore        store.UserStore
	transactionStore store.TransactionStore

	tokenService   auth.TokenService
	passwordHasher *auth.BcryptHasher

	authService        service.AuthService
	transactionService service.TransactionService
}

// newApplication constructs the application's stores and services from
// the loaded configuration and established database connection.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	userStore := postgres.NewPostgresUserStore(db, logger)
	transactionStore := postgres.NewPostgresTransactionStore(db, logger)

	tokenService, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	passwordHasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	authService := service.NewAuthService(
		userStore,
		tokenService,
		passwordHasher,
		passwordHasher,
		db,
		logger,
	)

	transactionService := service.NewTransactionService(transactionStore, logger)

	return &application{
		config:             cfg,
		logger:             logger,
		db:                 db,
		userStore:          userStore,
		transactionStore:   transactionStore,
		tokenService:       tokenService,
		passwordHasher:     passwordHasher,
		authService:        authService,
		transactionService: transactionService,
	}, nil
}

// cleanup releases resources held by the application. Called after the
// HTTP server has fully shut down.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
