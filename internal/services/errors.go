package services

import (
	"errors"

	"nodefit/internal/repositories"
)

var (
	ErrDuplicateEmail     = errors.New("already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("not signed in")
	ErrProfileRequired    = errors.New("profile required")
	ErrBadgeAlreadyHeld   = errors.New("badge already held")
	ErrExternalService    = errors.New("external service unavailable")
	ErrMalformedResponse  = errors.New("malformed response from external service")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrInvalidInput       = errors.New("invalid input")

	// ErrNotFound is the repositories sentinel, re-exported so callers of
	// this package need a single import for error matching.
	ErrNotFound = repositories.ErrNotFound
)
