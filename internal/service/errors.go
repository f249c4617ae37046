package service

import "errors"

var (
	// ErrInvalidCredentials is returned when registration or login is
	// attempted with a bad username or password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated is returned for every identity failure: missing,
	// malformed, tampered or expired token, or a token whose user no
	// longer exists. The causes are deliberately indistinguishable.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrNotFound is returned when a task does not exist or is owned by a
	// different user. The two cases are indistinguishable to the caller.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when registration would duplicate an
	// existing username. It carries no detail about the existing user.
	ErrConflict = errors.New("conflict")
	// ErrValidation is returned for malformed input fields.
	ErrValidation = errors.New("validation failed")
)
