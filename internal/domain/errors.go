// Package domain defines the core business entities and errors.
package domain

import "errors"

// ErrValidation is the root of all entity validation errors. Specific
// validation failures wrap it, so errors.Is(err, ErrValidation) matches
// the whole family.
var ErrValidation = errors.New("validation failed")
