package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qasetech/ledger-api/internal/service"
	"github.com/qasetech/ledger-api/internal/service/auth"
)

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestSignupHandler(t *testing.T) {
	t.Parallel()

	t.Run("successful signup", func(t *testing.T) {
		t.Parallel()
		user := testUser(t)
		svc := &stubAuthService{registerUser: user}
		handler := NewAuthHandler(svc, newTestTokenService(), testLogger())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup",
			strings.NewReader(`{"username":"alice","password":"Sup3r$ecret"}`))
		rec := httptest.NewRecorder()
		handler.Signup(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "success", env.Status)
		assert.Equal(t, "Signup successful!", env.Msg)
		assert.Contains(t, string(env.Data), user.ID.String())
		assert.NotContains(t, string(env.Data), "password")
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()
		handler := NewAuthHandler(&stubAuthService{}, newTestTokenService(), testLogger())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup",
			strings.NewReader(`{not json`))
		rec := httptest.NewRecorder()
		handler.Signup(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "fail", env.Status)
	})

	t.Run("validation failures", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			name string
			body string
		}{
			{"missing username", `{"password":"Sup3r$ecret"}`},
			{"missing password", `{"username":"alice"}`},
			{"username with spaces", `{"username":"bad name","password":"Sup3r$ecret"}`},
			{"weak password", `{"username":"alice","password":"weak"}`},
			{"password without special character", `{"username":"alice","password":"Passw0rd"}`},
		}

		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()
				handler := NewAuthHandler(&stubAuthService{}, newTestTokenService(), testLogger())

				req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup",
					strings.NewReader(tt.body))
				rec := httptest.NewRecorder()
				handler.Signup(rec, req)

				assert.Equal(t, http.StatusBadRequest, rec.Code)
				env := decodeEnvelope(t, rec)
				assert.Equal(t, "fail", env.Status)
				assert.NotEmpty(t, env.Msg)
			})
		}
	})

	t.Run("duplicate username", func(t *testing.T) {
		t.Parallel()
		svc := &stubAuthService{registerErr: service.ErrAccountExists}
		handler := NewAuthHandler(svc, newTestTokenService(), testLogger())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup",
			strings.NewReader(`{"username":"alice","password":"Sup3r$ecret"}`))
		rec := httptest.NewRecorder()
		handler.Signup(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "fail", env.Status)
		assert.Equal(t, "Account already exists, login instead!", env.Msg)
	})
}

func TestSigninHandler(t *testing.T) {
	t.Parallel()

	t.Run("successful signin sets refresh cookie", func(t *testing.T) {
		t.Parallel()
		user := testUser(t)
		svc := &stubAuthService{
			loginUser: user,
			loginPair: &service.TokenPair{AccessToken: "access-jwt", RefreshToken: "refresh-jwt"},
		}
		handler := NewAuthHandler(svc, newTestTokenService(), testLogger())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signin",
			strings.NewReader(`{"username":"alice","password":"Sup3r$ecret"}`))
		rec := httptest.NewRecorder()
		handler.Signin(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "success", env.Status)
		assert.Equal(t, "Signin successful", env.Msg)
		assert.Contains(t, string(env.Data), `"accessToken":"access-jwt"`)
		// The refresh token must never appear in the body.
		assert.NotContains(t, string(env.Data), "refresh-jwt")

		cookie := findCookie(rec.Result().Cookies(), RefreshTokenCookie)
		require.NotNil(t, cookie)
		assert.Equal(t, "refresh-jwt", cookie.Value)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
		assert.Equal(t, int((7 * 24 * 3600)), cookie.MaxAge)
	})

	t.Run("unknown username keeps conflict status", func(t *testing.T) {
		t.Parallel()
		svc := &stubAuthService{loginErr: service.ErrCheckCredentials}
		handler := NewAuthHandler(svc, newTestTokenService(), testLogger())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signin",
			strings.NewReader(`{"username":"ghost","password":"Sup3r$ecret"}`))
		rec := httptest.NewRecorder()
		handler.Signin(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "Error logging in, check credentials!", env.Msg)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		svc := &stubAuthService{loginErr: auth.ErrInvalidCredentials}
		handler := NewAuthHandler(svc, newTestTokenService(), testLogger())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signin",
			strings.NewReader(`{"username":"alice","password":"Wr0ng$pass"}`))
		rec := httptest.NewRecorder()
		handler.Signin(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "Wrong password or username!", env.Msg)
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()
		handler := NewAuthHandler(&stubAuthService{}, newTestTokenService(), testLogger())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signin",
			strings.NewReader(`{"username":"alice"}`))
		rec := httptest.NewRecorder()
		handler.Signin(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRefreshTokenHandler(t *testing.T) {
	t.Parallel()

	t.Run("token from body", func(t *testing.T) {
		t.Parallel()
		svc := &stubAuthService{
			refreshPair: &service.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"},
		}
		handler := NewAuthHandler(svc, newTestTokenService(), testLogger())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh-token",
			strings.NewReader(`{"refreshToken":"body-token"}`))
		rec := httptest.NewRecorder()
		handler.RefreshToken(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "body-token", svc.lastRefreshToken)

		env := decodeEnvelope(t, rec)
		assert.Equal(t, "Token refreshed successfully", env.Msg)
		assert.Contains(t, string(env.Data), `"accessToken":"new-access"`)
		assert.Contains(t, string(env.Data), `"refreshToken":"new-refresh"`)

		cookie := findCookie(rec.Result().Cookies(), RefreshTokenCookie)
		require.NotNil(t, cookie)
		assert.Equal(t, "new-refresh", cookie.Value)
	})

	t.Run("token from cookie when body is empty", func(t *testing.T) {
		t.Parallel()
		svc := &stubAuthService{
			refreshPair: &service.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"},
		}
		handler := NewAuthHandler(svc, newTestTokenService(), testLogger())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh-token", nil)
		req.AddCookie(&http.Cookie{Name: RefreshTokenCookie, Value: "cookie-token"})
		rec := httptest.NewRecorder()
		handler.RefreshToken(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "cookie-token", svc.lastRefreshToken)
	})

	t.Run("body token wins over cookie", func(t *testing.T) {
		t.Parallel()
		svc := &stubAuthService{
			refreshPair: &service.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"},
		}
		handler := NewAuthHandler(svc, newTestTokenService(), testLogger())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh-token",
			strings.NewReader(`{"refreshToken":"body-token"}`))
		req.AddCookie(&http.Cookie{Name: RefreshTokenCookie, Value: "cookie-token"})
		rec := httptest.NewRecorder()
		handler.RefreshToken(rec, req)

		assert.Equal(t, "body-token", svc.lastRefreshToken)
	})

	t.Run("missing token", func(t *testing.T) {
		t.Parallel()
		handler := NewAuthHandler(&stubAuthService{}, newTestTokenService(), testLogger())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh-token", nil)
		rec := httptest.NewRecorder()
		handler.RefreshToken(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "Invalid refresh token!", env.Msg)
	})

	t.Run("invalid token", func(t *testing.T) {
		t.Parallel()
		svc := &stubAuthService{refreshErr: auth.ErrInvalidRefreshToken}
		handler := NewAuthHandler(svc, newTestTokenService(), testLogger())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh-token",
			strings.NewReader(`{"refreshToken":"bad-token"}`))
		rec := httptest.NewRecorder()
		handler.RefreshToken(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "Invalid refresh token!", env.Msg)
	})
}

func TestSignoutHandler(t *testing.T) {
	t.Parallel()

	handler := NewAuthHandler(&stubAuthService{}, newTestTokenService(), testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signout", nil)
	rec := httptest.NewRecorder()
	handler.Signout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "success", env.Status)
	assert.Equal(t, "Signout successful.", env.Msg)

	cookie := findCookie(rec.Result().Cookies(), RefreshTokenCookie)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}
