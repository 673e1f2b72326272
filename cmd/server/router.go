package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/qasetech/ledger-api/internal/api"
	apiMiddleware "github.com/qasetech/ledger-api/internal/api/middleware"
	"github.com/qasetech/ledger-api/internal/api/shared"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.authService, app.tokenService, app.logger)
	transactionHandler := api.NewTransactionHandler(app.transactionService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokenService)

	r.Route("/api/v1", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/signup", authHandler.Signup)
		r.Post("/auth/signin", authHandler.Signin)
		r.Post("/auth/refresh-token", authHandler.RefreshToken)
		r.Post("/auth/signout", authHandler.Signout)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/transactions", transactionHandler.CreateTransaction)
			r.Get("/transactions", transactionHandler.GetTransactions)
			r.Get("/transactions/{id}", transactionHandler.GetTransaction)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Route not found!")
	})

	return r
}
