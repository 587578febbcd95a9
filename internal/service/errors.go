package service

import "errors"

// Service-level errors, mapped to HTTP statuses at the API boundary.
var (
	// ErrNotFound signals an unknown comment or event id
	ErrNotFound = errors.New("not found")

	// ErrForbidden signals a caller without permission for the operation
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidState signals an operation applied in the wrong lifecycle
	// state, e.g. approving an already-decided comment
	ErrInvalidState = errors.New("invalid state for operation")

	// ErrConflict signals a uniqueness violation (duplicate email or slug)
	ErrConflict = errors.New("already exists")

	// ErrInvalidCredentials signals a failed login
	ErrInvalidCredentials = errors.New("invalid email or password")
)
