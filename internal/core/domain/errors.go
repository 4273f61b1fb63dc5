package domain

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// that login failures cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTooManyAttempts is returned when the login throttle kicks in.
	ErrTooManyAttempts = errors.New("too many login attempts")

	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")

	// ErrUnauthenticated means no identity was presented where one is required.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden means an identity was presented but its role is insufficient.
	ErrForbidden = errors.New("access forbidden")
)
