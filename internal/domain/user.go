package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyUserID         = fmt.Errorf("%w: user ID cannot be empty", ErrValidation)
	ErrEmptyUsername       = fmt.Errorf("%w: username cannot be empty", ErrValidation)
	ErrInvalidUsername     = fmt.Errorf("%w: username must contain only letters, digits and underscores", ErrValidation)
	ErrPasswordTooShort    = fmt.Errorf("%w: password must be at least 5 characters long", ErrValidation)
	ErrPasswordTooLong     = fmt.Errorf("%w: password must be at most 72 characters long", ErrValidation)
	ErrEmptyPassword       = fmt.Errorf("%w: password cannot be empty", ErrValidation)
	ErrEmptyHashedPassword = fmt.Errorf("%w: hashed password cannot be empty", ErrValidation)
)

// User represents a registered account of the ledger service.
// The plaintext password only exists transiently during registration;
// the store layer persists HashedPassword exclusively.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Password       string    `json:"-"` // Plaintext, used transiently during registration
	HashedPassword string    `json:"-"` // Never exposed in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given username and password.
// It generates a new UUID and sets the creation/update timestamps.
// Returns an error if validation fails.
//
// NOTE: the caller is responsible for hashing the password before the
// user reaches any store.
func NewUser(username, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Username:  username,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Username == "" {
		return ErrEmptyUsername
	}

	if !validUsername(u.Username) {
		return ErrInvalidUsername
	}

	if u.Password != "" {
		if len(u.Password) < 5 {
			return ErrPasswordTooShort
		}
		// bcrypt truncates inputs beyond 72 bytes
		if len(u.Password) > 72 {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		// Users loaded from the store carry only the hash.
		return ErrEmptyPassword
	}

	return nil
}

func validUsername(username string) bool {
	for _, r := range username {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}
