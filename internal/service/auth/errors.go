package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the access token format is invalid or the
	// signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the access token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrInvalidRefreshToken indicates the refresh token is malformed or
	// carries a bad signature
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrExpiredRefreshToken indicates the refresh token has expired
	ErrExpiredRefreshToken = errors.New("refresh token has expired")

	// ErrWrongTokenType indicates a token was presented in the wrong context,
	// e.g. an access token offered for refresh
	ErrWrongTokenType = errors.New("wrong token type")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrInvalidCredentials indicates a password check failed
	ErrInvalidCredentials = errors.New("invalid credentials")
)
