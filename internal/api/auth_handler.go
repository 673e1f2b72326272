package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/qasetech/ledger-api/internal/api/shared"
	"github.com/qasetech/ledger-api/internal/service"
	"github.com/qasetech/ledger-api/internal/service/auth"
)

// RefreshTokenCookie is the name of the http-only cookie carrying the
// refresh token.
const RefreshTokenCookie = "refreshToken"

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	authService  service.AuthService
	tokenService auth.TokenService
	validator    *validator.Validate
	logger       *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	authService service.AuthService,
	tokenService auth.TokenService,
	logger *slog.Logger,
) *AuthHandler {
	v := validator.New()
	registerAuthValidations(v)

	return &AuthHandler{
		authService:  authService,
		tokenService: tokenService,
		validator:    v,
		logger:       logger.With("component", "auth_handler"),
	}
}

func registerAuthValidations(v *validator.Validate) {
	// Username: letters, digits and underscores only.
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, r := range value {
			switch {
			case r >= 'a' && r <= 'z':
			case r >= 'A' && r <= 'Z':
			case r >= '0' && r <= '9':
			case r == '_':
			default:
				return false
			}
		}
		return value != ""
	})

	// Password: at least 5 characters with upper, lower, digit and one of
	// the accepted special characters.
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if len(strings.TrimSpace(value)) < 5 {
			return false
		}

		var upper, lower, digit, special bool
		for _, r := range value {
			switch {
			case r >= 'A' && r <= 'Z':
				upper = true
			case r >= 'a' && r <= 'z':
				lower = true
			case r >= '0' && r <= '9':
				digit = true
			case strings.ContainsRune("#?!@$%^&*-", r):
				special = true
			}
		}
		return upper && lower && digit && special
	})
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format!")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := h.authService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusCreated, "Signup successful!", NewUserResponse(user))
}

// Signin handles POST /auth/signin.
// On success the access token travels in the body and the refresh token in
// an http-only cookie.
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format!")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, pair, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	h.setRefreshCookie(w, pair.RefreshToken, h.tokenService.RefreshTokenLifetime())

	shared.RespondWithSuccess(w, r, http.StatusOK, "Signin successful", SigninResponse{
		UserResponse: NewUserResponse(user),
		AccessToken:  pair.AccessToken,
	})
}

// RefreshToken handles POST /auth/refresh-token.
// The refresh token is taken from the request body, falling back to the
// refresh cookie.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest

	// The body is optional when the cookie is present.
	_ = shared.DecodeJSON(r, &req)

	refreshToken := req.RefreshToken
	if refreshToken == "" {
		if cookie, err := r.Cookie(RefreshTokenCookie); err == nil {
			refreshToken = cookie.Value
		}
	}

	if refreshToken == "" {
		RespondWithServiceError(w, r, auth.ErrMissingToken)
		return
	}

	pair, err := h.authService.Refresh(r.Context(), refreshToken)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	h.setRefreshCookie(w, pair.RefreshToken, h.tokenService.RefreshTokenLifetime())

	shared.RespondWithSuccess(w, r, http.StatusOK, "Token refreshed successfully", RefreshTokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Signout handles POST /auth/signout.
// The server holds no session state; signing out only clears the refresh
// cookie. Previously issued tokens stay valid until their natural expiry.
func (h *AuthHandler) Signout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	shared.RespondWithSuccess(w, r, http.StatusOK, "Signout successful.", nil)
}

func (h *AuthHandler) setRefreshCookie(w http.ResponseWriter, token string, lifetime time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(lifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
