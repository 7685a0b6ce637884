package client

import "errors"

var (
	ErrUnavailable   = errors.New("cloud service unavailable")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrNotSignedIn   = errors.New("not signed in to the cloud")
	ErrAlreadyExists = errors.New("account already exists")
	ErrNotFound      = errors.New("document not found")
	ErrInvalidInput  = errors.New("invalid input")
)
