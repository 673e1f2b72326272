// Package middleware provides HTTP middleware for the API layer.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/qasetech/ledger-api/internal/api/shared"
	"github.com/qasetech/ledger-api/internal/redact"
	"github.com/qasetech/ledger-api/internal/service/auth"
)

// AccessTokenCookie is the fallback cookie for the access token when no
// Authorization header is present.
const AccessTokenCookie = "token"

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	tokenService auth.TokenService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(tokenService auth.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// Authenticate validates the access token from the token cookie or the
// Authorization header and adds the user identity to the request context.
// A missing token yields 401; a token that fails validation yields 403.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "You are not authenticated!")
			return
		}

		claims, err := m.tokenService.ValidateAccessToken(r.Context(), token)
		if err != nil {
			slog.Debug("access token rejected",
				"error", redact.Error(err),
				"path", r.URL.Path)
			shared.RespondWithError(w, r, http.StatusForbidden, "Expired or invalid token!")
			return
		}

		ctx := context.WithValue(r.Context(), shared.UserIDContextKey, claims.UserID)
		ctx = context.WithValue(ctx, shared.UsernameContextKey, claims.Username)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractToken pulls the access token from the access token cookie,
// falling back to the Authorization header. The cookie wins when both
// are present.
func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}

	return ""
}

// GetUserID extracts the authenticated user's ID from the request context.
// Returns the user ID and a boolean indicating if it was found.
func GetUserID(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	return userID, ok
}

// GetUsername extracts the authenticated user's username from the request
// context. Returns the username and a boolean indicating if it was found.
func GetUsername(r *http.Request) (string, bool) {
	username, ok := r.Context().Value(shared.UsernameContextKey).(string)
	return username, ok
}
