package usecase

import "errors"

var (
	// ErrInvalidID marks an identifier that fails the store's format
	// predicate; distinct from ErrNotFound.
	ErrInvalidID = errors.New("invalid id format")
	// ErrNotFound covers both a missing document and an update whose
	// field merge modified nothing.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when creating a singleton that already exists.
	ErrConflict = errors.New("already exists")
	// ErrInternal wraps store and transport failures.
	ErrInternal = errors.New("internal error")
)
