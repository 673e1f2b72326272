package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qasetech/ledger-api/internal/config"
)

const (
	testAccessSecret  = "access-secret-that-is-long-enough-for-tests"
	testRefreshSecret = "refresh-secret-that-is-long-enough-for-tests"
)

func TestNewTokenService(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     config.AuthConfig
		wantErr bool
	}{
		{
			name: "valid configuration",
			cfg: config.AuthConfig{
				JWTSecret:                   testAccessSecret,
				RefreshSecret:               testRefreshSecret,
				TokenLifetimeMinutes:        60,
				RefreshTokenLifetimeMinutes: 7 * 24 * 60,
			},
			wantErr: false,
		},
		{
			name: "access secret too short",
			cfg: config.AuthConfig{
				JWTSecret:                   "short",
				RefreshSecret:               testRefreshSecret,
				TokenLifetimeMinutes:        60,
				RefreshTokenLifetimeMinutes: 7 * 24 * 60,
			},
			wantErr: true,
		},
		{
			name: "refresh secret too short",
			cfg: config.AuthConfig{
				JWTSecret:                   testAccessSecret,
				RefreshSecret:               "short",
				TokenLifetimeMinutes:        60,
				RefreshTokenLifetimeMinutes: 7 * 24 * 60,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, err := NewTokenService(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, svc)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, svc)
			}
		})
	}
}

func TestGenerateAccessToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tokenLifetime := 60 * time.Minute
	userID := uuid.New()

	svc := NewTestTokenService(
		testAccessSecret, testRefreshSecret,
		tokenLifetime, 7*24*time.Hour,
		func() time.Time { return fixedTime },
	)

	token, err := svc.GenerateAccessToken(context.Background(), userID, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateAccessToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(tokenLifetime).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestValidateAccessToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tokenLifetime := 60 * time.Minute
	userID := uuid.New()

	newService := func(timeFunc func() time.Time) TokenService {
		return NewTestTokenService(
			testAccessSecret, testRefreshSecret,
			tokenLifetime, 7*24*time.Hour,
			timeFunc,
		)
	}

	tests := []struct {
		name      string
		setupFunc func() (TokenService, string)
		wantErr   error
	}{
		{
			name: "valid token",
			setupFunc: func() (TokenService, string) {
				svc := newService(func() time.Time { return fixedTime })
				token, _ := svc.GenerateAccessToken(context.Background(), userID, "alice")
				return svc, token
			},
			wantErr: nil,
		},
		{
			name: "expired token",
			setupFunc: func() (TokenService, string) {
				genSvc := newService(func() time.Time { return fixedTime })
				token, _ := genSvc.GenerateAccessToken(context.Background(), userID, "alice")
				// Validate after the lifetime has elapsed.
				valSvc := newService(func() time.Time {
					return fixedTime.Add(tokenLifetime + time.Minute)
				})
				return valSvc, token
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "wrong signing secret",
			setupFunc: func() (TokenService, string) {
				genSvc := NewTestTokenService(
					"another-secret-that-is-long-enough-for-tests", testRefreshSecret,
					tokenLifetime, 7*24*time.Hour,
					func() time.Time { return fixedTime },
				)
				token, _ := genSvc.GenerateAccessToken(context.Background(), userID, "alice")
				valSvc := newService(func() time.Time { return fixedTime })
				return valSvc, token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "malformed token",
			setupFunc: func() (TokenService, string) {
				svc := newService(func() time.Time { return fixedTime })
				return svc, "not.a.jwt"
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "refresh token signed with the refresh secret is not an access token",
			setupFunc: func() (TokenService, string) {
				svc := newService(func() time.Time { return fixedTime })
				token, _ := svc.GenerateRefreshToken(context.Background(), userID, "alice")
				return svc, token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "wrong token type claim",
			setupFunc: func() (TokenService, string) {
				// With identical secrets the signature verifies and the
				// type claim is what rejects the token.
				svc := NewTestTokenService(
					testAccessSecret, testAccessSecret,
					tokenLifetime, 7*24*time.Hour,
					func() time.Time { return fixedTime },
				)
				token, _ := svc.GenerateRefreshToken(context.Background(), userID, "alice")
				return svc, token
			},
			wantErr: ErrWrongTokenType,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, token := tt.setupFunc()
			claims, err := svc.ValidateAccessToken(context.Background(), token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
			} else {
				require.NoError(t, err)
				require.NotNil(t, claims)
				assert.Equal(t, userID, claims.UserID)
			}
		})
	}
}

func TestValidateRefreshToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	refreshLifetime := 7 * 24 * time.Hour
	userID := uuid.New()

	newService := func(timeFunc func() time.Time) TokenService {
		return NewTestTokenService(
			testAccessSecret, testRefreshSecret,
			time.Hour, refreshLifetime,
			timeFunc,
		)
	}

	t.Run("valid refresh token round trip", func(t *testing.T) {
		t.Parallel()
		svc := newService(func() time.Time { return fixedTime })
		token, err := svc.GenerateRefreshToken(context.Background(), userID, "bob")
		require.NoError(t, err)

		claims, err := svc.ValidateRefreshToken(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "bob", claims.Username)
		assert.Equal(t, fixedTime.Add(refreshLifetime).Unix(), claims.ExpiresAt.Unix())
	})

	t.Run("expired refresh token", func(t *testing.T) {
		t.Parallel()
		genSvc := newService(func() time.Time { return fixedTime })
		token, err := genSvc.GenerateRefreshToken(context.Background(), userID, "bob")
		require.NoError(t, err)

		valSvc := newService(func() time.Time {
			return fixedTime.Add(refreshLifetime + time.Minute)
		})
		_, err = valSvc.ValidateRefreshToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrExpiredRefreshToken)
	})

	t.Run("access token rejected as refresh token", func(t *testing.T) {
		t.Parallel()
		svc := newService(func() time.Time { return fixedTime })
		token, err := svc.GenerateAccessToken(context.Background(), userID, "bob")
		require.NoError(t, err)

		// Signed with the access secret, so signature verification
		// fails before the type claim is even inspected.
		_, err = svc.ValidateRefreshToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})

	t.Run("wrong token type claim", func(t *testing.T) {
		t.Parallel()
		svc := NewTestTokenService(
			testRefreshSecret, testRefreshSecret,
			time.Hour, refreshLifetime,
			func() time.Time { return fixedTime },
		)
		token, err := svc.GenerateAccessToken(context.Background(), userID, "bob")
		require.NoError(t, err)

		_, err = svc.ValidateRefreshToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrWrongTokenType)
	})

	t.Run("refresh tokens are not validated by the access secret", func(t *testing.T) {
		t.Parallel()
		// A service with the secrets swapped must reject tokens from
		// the original service.
		svc := newService(func() time.Time { return fixedTime })
		swapped := NewTestTokenService(
			testRefreshSecret, testAccessSecret,
			time.Hour, refreshLifetime,
			func() time.Time { return fixedTime },
		)

		token, err := svc.GenerateRefreshToken(context.Background(), userID, "bob")
		require.NoError(t, err)

		_, err = swapped.ValidateRefreshToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})
}

func TestTokenLifetimes(t *testing.T) {
	t.Parallel()

	svc := NewTestTokenService(
		testAccessSecret, testRefreshSecret,
		30*time.Minute, 48*time.Hour,
		time.Now,
	)

	assert.Equal(t, 30*time.Minute, svc.AccessTokenLifetime())
	assert.Equal(t, 48*time.Hour, svc.RefreshTokenLifetime())
}
