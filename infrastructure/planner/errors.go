package planner

import (
	"errors"
	"fmt"
)

// FailureKind classifies why planning failed.
type FailureKind string

const (
	// FailureUnparseable means the backend kept producing output that is
	// not a recognizable action, even after corrective prompts.
	FailureUnparseable FailureKind = "unparseable"

	// FailureBackendTimeout means the backend did not answer in time.
	FailureBackendTimeout FailureKind = "backend_timeout"

	// FailureRateLimited means the backend rejected the request for quota.
	FailureRateLimited FailureKind = "rate_limited"

	// FailureBackend covers all other backend errors.
	FailureBackend FailureKind = "backend"
)

// Error is returned when a planner cannot produce an action.
type Error struct {
	Kind     FailureKind
	Message  string
	Attempts int
	Err      error
}

func (e *Error) Error() string {
	if e.Attempts > 1 {
		return fmt.Sprintf("planning failed (%s) after %d attempts: %s", e.Kind, e.Attempts, e.Message)
	}
	return fmt.Sprintf("planning failed (%s): %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the failure kind from an error chain, or FailureBackend
// if the error is not a planner error.
func KindOf(err error) FailureKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return FailureBackend
}
