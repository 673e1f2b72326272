package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/qasetech/ledger-api/internal/config"
	"github.com/qasetech/ledger-api/internal/platform/logger"
)

// Token type claim values.
const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// hmacTokenService implements TokenService using HMAC-SHA256 signing with
// separate keys for access and refresh tokens.
type hmacTokenService struct {
	accessKey       []byte
	refreshKey      []byte
	accessLifetime  time.Duration
	refreshLifetime time.Duration
	timeFunc        func() time.Time // Injectable for testing
	clockSkew       time.Duration    // Allowed drift when validating time claims
}

// jwtCustomClaims defines the structure of JWT claims we use.
type jwtCustomClaims struct {
	UserID    uuid.UUID `json:"uid"`
	Username  string    `json:"username"`
	TokenType string    `json:"type"`
	jwt.RegisteredClaims
}

// Ensure hmacTokenService implements TokenService interface
var _ TokenService = (*hmacTokenService)(nil)

// NewTokenService creates a new token service using HMAC-SHA256 signing.
func NewTokenService(cfg config.AuthConfig) (TokenService, error) {
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters")
	}
	if len(cfg.RefreshSecret) < 32 {
		return nil, fmt.Errorf("refresh secret must be at least 32 characters")
	}

	return &hmacTokenService{
		accessKey:       []byte(cfg.JWTSecret),
		refreshKey:      []byte(cfg.RefreshSecret),
		accessLifetime:  time.Duration(cfg.TokenLifetimeMinutes) * time.Minute,
		refreshLifetime: time.Duration(cfg.RefreshTokenLifetimeMinutes) * time.Minute,
		timeFunc:        time.Now,
		clockSkew:       2 * time.Minute,
	}, nil
}

// AccessTokenLifetime implements TokenService.AccessTokenLifetime.
func (s *hmacTokenService) AccessTokenLifetime() time.Duration {
	return s.accessLifetime
}

// RefreshTokenLifetime implements TokenService.RefreshTokenLifetime.
func (s *hmacTokenService) RefreshTokenLifetime() time.Duration {
	return s.refreshLifetime
}

// GenerateAccessToken creates a signed JWT access token with user claims.
func (s *hmacTokenService) GenerateAccessToken(
	ctx context.Context,
	userID uuid.UUID,
	username string,
) (string, error) {
	return s.generate(ctx, userID, username, tokenTypeAccess, s.accessKey, s.accessLifetime)
}

// GenerateRefreshToken creates a signed JWT refresh token with user claims.
func (s *hmacTokenService) GenerateRefreshToken(
	ctx context.Context,
	userID uuid.UUID,
	username string,
) (string, error) {
	return s.generate(ctx, userID, username, tokenTypeRefresh, s.refreshKey, s.refreshLifetime)
}

func (s *hmacTokenService) generate(
	ctx context.Context,
	userID uuid.UUID,
	username string,
	tokenType string,
	key []byte,
	lifetime time.Duration,
) (string, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	claims := jwtCustomClaims{
		UserID:    userID,
		Username:  username,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(key)
	if err != nil {
		log.Error("failed to sign JWT token",
			"error", err,
			"user_id", userID,
			"token_type", tokenType,
			"signing_method", jwt.SigningMethodHS256.Name)
		return "", fmt.Errorf("failed to sign %s token with HMAC-SHA256: %w", tokenType, err)
	}

	return signedToken, nil
}

// ValidateAccessToken validates a JWT access token and returns the claims
// if valid. It verifies the token has type "access" and returns
// ErrWrongTokenType if not.
func (s *hmacTokenService) ValidateAccessToken(ctx context.Context, tokenString string) (*Claims, error) {
	return s.validate(ctx, tokenString, tokenTypeAccess, s.accessKey, ErrInvalidToken, ErrExpiredToken)
}

// ValidateRefreshToken validates a JWT refresh token and returns the claims
// if valid. It verifies the token has type "refresh" and returns
// ErrWrongTokenType if not.
func (s *hmacTokenService) ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error) {
	return s.validate(ctx, tokenString, tokenTypeRefresh, s.refreshKey, ErrInvalidRefreshToken, ErrExpiredRefreshToken)
}

func (s *hmacTokenService) validate(
	ctx context.Context,
	tokenString string,
	tokenType string,
	key []byte,
	invalidErr error,
	expiredErr error,
) (*Claims, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time {
			return now
		}),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwtCustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return key, nil
		},
		parserOpts...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug("token validation failed: token expired",
				"error", err,
				"token_type", tokenType)
			return nil, expiredErr
		}

		log.Debug("token validation failed",
			"error", err,
			"token_type", tokenType,
			"error_type", fmt.Sprintf("%T", err))
		return nil, invalidErr
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid {
		log.Debug("token validation failed: invalid claims")
		return nil, invalidErr
	}

	if claims.TokenType != tokenType {
		log.Debug("token validation failed: wrong token type",
			"expected", tokenType,
			"actual", claims.TokenType)
		return nil, ErrWrongTokenType
	}

	log.Debug("token validated successfully",
		"user_id", claims.UserID,
		"token_id", claims.ID,
		"token_type", tokenType,
		"expiry", claims.ExpiresAt.Time)

	return &Claims{
		UserID:    claims.UserID,
		Username:  claims.Username,
		TokenType: claims.TokenType,
		Subject:   claims.Subject,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
		ID:        claims.ID,
	}, nil
}
