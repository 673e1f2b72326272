package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/qasetech/ledger-api/internal/domain"
	"github.com/qasetech/ledger-api/internal/service/auth"
	"github.com/qasetech/ledger-api/internal/store"
)

// TokenPair bundles a freshly issued access/refresh token pair.
// It is never persisted; the client holds both tokens.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService provides registration, login and token refresh operations.
type AuthService interface {
	// Register creates a new user with a hashed password.
	// Returns ErrAccountExists if the username is already taken.
	Register(ctx context.Context, username, password string) (*domain.User, error)

	// Login verifies the credentials and issues a fresh token pair.
	// Returns ErrCheckCredentials if the username is unknown and
	// auth.ErrInvalidCredentials if the password does not match.
	// Successive logins issue independent, equally valid pairs.
	Login(ctx context.Context, username, password string) (*domain.User, *TokenPair, error)

	// Refresh validates the refresh token and issues a new token pair.
	// Every failure mode (malformed, expired, wrong signature, user gone)
	// collapses into auth.ErrInvalidRefreshToken. The old refresh token is
	// not invalidated; it stays usable until its natural expiry.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}

// AuthServiceImpl implements the AuthService interface.
type AuthServiceImpl struct {
	userStore    store.UserStore
	tokenService auth.TokenService
	hasher       auth.PasswordHasher
	verifier     auth.PasswordVerifier
	db           *sql.DB
	runTx        func(ctx context.Context, db *sql.DB, fn store.TxFn) error
	logger       *slog.Logger
}

// Ensure AuthServiceImpl implements AuthService interface
var _ AuthService = (*AuthServiceImpl)(nil)

// NewAuthService creates a new AuthService.
func NewAuthService(
	userStore store.UserStore,
	tokenService auth.TokenService,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	db *sql.DB,
	logger *slog.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		userStore:    userStore,
		tokenService: tokenService,
		hasher:       hasher,
		verifier:     verifier,
		db:           db,
		runTx:        store.RunInTransaction,
		logger:       logger.With("component", "auth_service"),
	}
}

// Register creates a new user after checking the username is free.
// The existence pre-check and the insert run in one transaction; a
// concurrent registration that slips past the pre-check is still caught
// by the unique constraint at insert time.
func (s *AuthServiceImpl) Register(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := domain.NewUser(username, password)
	if err != nil {
		s.logger.Debug("invalid registration data",
			"error", err,
			"username", username)
		return nil, err
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("failed to hash password",
			"error", err,
			"username", username)
		return nil, ErrInternal
	}
	user.HashedPassword = hashed
	user.Password = ""

	err = s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		_, err := txStore.GetByUsername(ctx, username)
		if err == nil {
			return ErrAccountExists
		}
		if !errors.Is(err, store.ErrUserNotFound) {
			return fmt.Errorf("failed to check existing username: %w", err)
		}

		return txStore.Create(ctx, user)
	})

	if err != nil {
		if errors.Is(err, ErrAccountExists) || errors.Is(err, store.ErrUsernameExists) {
			s.logger.Debug("attempted to register existing username",
				"username", username)
			return nil, ErrAccountExists
		}
		s.logger.Error("failed to create user",
			"error", err,
			"username", username)
		return nil, ErrInternal
	}

	s.logger.Info("user registered successfully",
		"user_id", user.ID,
		"username", user.Username)

	return user, nil
}

// Login verifies credentials and issues a fresh access/refresh pair.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (*domain.User, *TokenPair, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("login attempt for unknown username",
				"username", username)
			return nil, nil, ErrCheckCredentials
		}
		s.logger.Error("failed to look up user for login",
			"error", err,
			"username", username)
		return nil, nil, ErrInternal
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("password mismatch during login",
			"username", username)
		return nil, nil, auth.ErrInvalidCredentials
	}

	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("user logged in successfully",
		"user_id", user.ID,
		"username", user.Username)

	return user, pair, nil
}

// Refresh validates the presented refresh token, re-resolves the user and
// rotates both tokens.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokenService.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		s.logger.Debug("refresh token validation failed",
			"error", err)
		return nil, auth.ErrInvalidRefreshToken
	}

	user, err := s.userStore.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("refresh token references missing user",
				"user_id", claims.UserID)
			return nil, auth.ErrInvalidRefreshToken
		}
		s.logger.Error("failed to resolve user during token refresh",
			"error", err,
			"user_id", claims.UserID)
		return nil, ErrInternal
	}

	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("token pair refreshed",
		"user_id", user.ID,
		"username", user.Username)

	return pair, nil
}

func (s *AuthServiceImpl) issueTokenPair(ctx context.Context, user *domain.User) (*TokenPair, error) {
	accessToken, err := s.tokenService.GenerateAccessToken(ctx, user.ID, user.Username)
	if err != nil {
		s.logger.Error("failed to generate access token",
			"error", err,
			"user_id", user.ID)
		return nil, ErrInternal
	}

	refreshToken, err := s.tokenService.GenerateRefreshToken(ctx, user.ID, user.Username)
	if err != nil {
		s.logger.Error("failed to generate refresh token",
			"error", err,
			"user_id", user.ID)
		return nil, ErrInternal
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
