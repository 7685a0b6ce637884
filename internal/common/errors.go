// Package common defines shared constants and sentinel errors used across
// the client and server layers of EpicQuest. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound    = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")

	// User registry errors.
	ErrValidation        = errors.New("validation error")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrBadCredentials    = errors.New("invalid username or password")
	ErrNoActiveSession   = errors.New("no active session")
	ErrInvalidUser       = errors.New("invalid user")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
