// Package auth provides token issuance/validation and password hashing
// for the authentication flows.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenService defines operations for managing JWT authentication tokens.
// Access and refresh tokens are signed with distinct secrets.
type TokenService interface {
	// GenerateAccessToken creates a signed JWT access token embedding the
	// user's ID and username. Returns the token string or an error if
	// token generation fails.
	GenerateAccessToken(ctx context.Context, userID uuid.UUID, username string) (string, error)

	// ValidateAccessToken validates the provided access token string and
	// extracts the claims. Returns an error if validation fails
	// (expired, invalid signature, wrong type, etc.).
	ValidateAccessToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateRefreshToken creates a signed JWT refresh token embedding the
	// user's ID and username. Refresh tokens have a longer lifetime and are
	// used to obtain new token pairs.
	GenerateRefreshToken(ctx context.Context, userID uuid.UUID, username string) (string, error)

	// ValidateRefreshToken validates the provided refresh token string and
	// extracts the claims. Returns an error if validation fails
	// (expired, invalid signature, wrong type, etc.).
	ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error)

	// AccessTokenLifetime reports the configured access token validity window.
	AccessTokenLifetime() time.Duration

	// RefreshTokenLifetime reports the configured refresh token validity window.
	RefreshTokenLifetime() time.Duration
}

// Claims represents the custom claims structure for the JWT tokens.
// It extends standard JWT registered claims with application-specific fields.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	// Username is the username of the user the token was issued for.
	Username string `json:"username,omitempty"`

	// TokenType indicates the purpose of the token ("access" or "refresh").
	// Used to prevent token misuse across different contexts.
	TokenType string `json:"type,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
