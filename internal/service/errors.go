package service

import "errors"

// Common service errors
var (
	// ErrAccountExists is returned when registering a username that is
	// already taken.
	ErrAccountExists = errors.New("account already exists")

	// ErrCheckCredentials is returned when a login names a username that
	// does not exist. Kept distinct from the password-mismatch error to
	// preserve the conflict status existing clients depend on.
	ErrCheckCredentials = errors.New("error logging in, check credentials")

	// ErrInternal is returned when an underlying store operation fails for
	// a reason the caller cannot act on. The original cause is logged, not
	// surfaced.
	ErrInternal = errors.New("internal error")
)
