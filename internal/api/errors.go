package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/qasetech/ledger-api/internal/api/shared"
	"github.com/qasetech/ledger-api/internal/domain"
	"github.com/qasetech/ledger-api/internal/service"
	"github.com/qasetech/ledger-api/internal/service/auth"
	"github.com/qasetech/ledger-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Conflict errors. Unknown-username login keeps the conflict status
	// existing clients were built against.
	case errors.Is(err, service.ErrAccountExists),
		errors.Is(err, service.ErrCheckCredentials),
		errors.Is(err, store.ErrUsernameExists):
		return http.StatusConflict

	// Authentication errors
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrTransactionNotFound),
		errors.Is(err, store.ErrUserNotFound):
		return http.StatusNotFound

	// Domain validation failures surface as bad requests
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unknown error occurred!"
	}

	switch {
	case errors.Is(err, service.ErrAccountExists),
		errors.Is(err, store.ErrUsernameExists):
		return "Account already exists, login instead!"

	case errors.Is(err, service.ErrCheckCredentials):
		return "Error logging in, check credentials!"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Wrong password or username!"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid refresh token!"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Expired or invalid token!"

	case errors.Is(err, store.ErrTransactionNotFound):
		return "Transaction does not exist!"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found!"

	// Domain validation errors carry static, safe messages.
	case errors.Is(err, domain.ErrValidation):
		return err.Error()

	default:
		return "An unknown error occurred!"
	}
}

// RespondWithServiceError translates a service-layer error into the uniform
// failure envelope, logging the original error alongside.
func RespondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}

// SanitizeValidationError turns a validator error into a user-friendly
// message naming the offending field without leaking struct internals.
func SanitizeValidationError(err error) string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return "Validation error"
	}

	fe := fieldErrors[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "username":
		return "Username must be alphanumeric and cannot contain special characters"
	case "password":
		return "Password must be at least 5 characters long and contain upper and lower case letters, a number and a special character"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("Invalid %s", fe.Field())
	}
}
