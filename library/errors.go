package library

import "errors"

var (
	// ErrNotFound is returned by Get when no record has the given key.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned by Add when the key is already present.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrValidation wraps form-level failures caught before any store call.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials is returned for a bad email/password pair.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken is returned when registering an email that exists.
	ErrEmailTaken = errors.New("email already registered")

	// ErrNotAuthenticated is returned when no session row is present.
	ErrNotAuthenticated = errors.New("not logged in")
)
