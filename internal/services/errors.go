package services

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated means a mutating call arrived with no wallet address.
	ErrUnauthenticated = errors.New("no wallet connected")

	// ErrUnauthorized means the caller's address does not own the target row.
	ErrUnauthorized = errors.New("not the owner")

	// ErrEmptyContent means comment text trimmed to nothing.
	ErrEmptyContent = errors.New("comment text is empty")

	// ErrNotFound covers both a genuinely missing row and an ownership match
	// that affected zero rows; callers treat either as "operation refused".
	ErrNotFound = errors.New("not found")
)

// ReconciliationError reports that a row mutation succeeded but its paired
// counter update failed even after a retry. It is a data-integrity event,
// not a user mistake, and is logged distinctly from validation errors.
type ReconciliationError struct {
	ArtworkID uint
	Step      string
	Err       error
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("artwork %d: %s counter update failed: %v", e.ArtworkID, e.Step, e.Err)
}

func (e *ReconciliationError) Unwrap() error {
	return e.Err
}
