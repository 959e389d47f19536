package services

import "errors"

var (
	// ErrDuplicateKey reports a StudentNo collision on create/update.
	ErrDuplicateKey = errors.New("duplicate student number")
	// ErrNotFound reports a lookup miss that the caller must surface.
	// Cancel-outing misses are a silent no-op instead (see OutingService).
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized reports a failed credential check.
	ErrUnauthorized = errors.New("invalid credentials")
)

// ValidationError carries per-field messages for a rejected input. The
// operation aborts before anything is written.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "validation failed" }

// fieldErrors accumulates messages and collapses to nil when empty.
type fieldErrors map[string]string

func (fe fieldErrors) err() error {
	if len(fe) == 0 {
		return nil
	}
	return &ValidationError{Fields: fe}
}
