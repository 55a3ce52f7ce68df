package services

import "errors"

var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAccessDenied indicates the entity exists but the caller lacks
	// the required permission.
	ErrAccessDenied = errors.New("access denied")
	// ErrValidation indicates malformed or incomplete input. Wrap it
	// with a human-readable message via fmt.Errorf("...: %w", ErrValidation).
	ErrValidation = errors.New("validation failed")
	// ErrConflict indicates a uniqueness violation (duplicate login or email).
	ErrConflict = errors.New("conflict")
)
