package tool

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors for the tool system.
var (
	// ErrEmptyName indicates a tool was created with an empty name.
	ErrEmptyName = errors.New("tool name cannot be empty")

	// ErrNoHandler indicates a tool was created without a handler.
	ErrNoHandler = errors.New("tool has no handler")

	// ErrToolNotFound indicates the requested tool was not found.
	ErrToolNotFound = errors.New("tool not found")

	// ErrToolExists indicates a tool with the same name already exists.
	ErrToolExists = errors.New("tool already exists")

	// ErrInvalidArgs indicates the arguments failed schema validation.
	ErrInvalidArgs = errors.New("invalid tool arguments")

	// ErrPermanent marks a failure that must not be retried.
	ErrPermanent = errors.New("permanent tool failure")
)

// Violation describes one schema constraint a value failed to meet.
type Violation struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func (v Violation) String() string {
	return v.Field + ": " + v.Description
}

// ValidationError reports every schema violation found in a single pass.
type ValidationError struct {
	Tool       string
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	if e.Tool != "" {
		return fmt.Sprintf("invalid arguments for %s: %s", e.Tool, strings.Join(parts, "; "))
	}
	return "invalid arguments: " + strings.Join(parts, "; ")
}

// Is makes ValidationError match ErrInvalidArgs via errors.Is.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidArgs
}

// Fields returns the violated field names.
func (e *ValidationError) Fields() []string {
	fields := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		fields[i] = v.Field
	}
	return fields
}

// Messages returns one formatted line per violation.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}
	return msgs
}

// permanentError wraps an error so it classifies as non-retryable.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string {
	return e.err.Error()
}

func (e *permanentError) Unwrap() error {
	return e.err
}

func (e *permanentError) Is(target error) bool {
	return target == ErrPermanent
}

// Permanent marks err as a permanent failure. The executor surfaces
// permanent failures immediately instead of retrying them.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err is marked permanent. Schema validation
// errors are permanent by definition.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrPermanent) || errors.Is(err, ErrInvalidArgs)
}
