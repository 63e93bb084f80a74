package memory

import "errors"

// Domain errors for the turn log.
var (
	// ErrDuplicateTurn is returned when a turn index already exists in the log.
	ErrDuplicateTurn = errors.New("duplicate turn index")

	// ErrTurnGap is returned when an appended index would leave a gap.
	ErrTurnGap = errors.New("turn index gap")

	// ErrUnsealedTurn is returned when appending a turn that is still open.
	ErrUnsealedTurn = errors.New("turn not sealed")

	// ErrNoSummarizer is returned when the summarized policy is used
	// without a summarizer capability.
	ErrNoSummarizer = errors.New("summarized policy requires a summarizer")

	// ErrInvalidPolicy is returned for malformed policy parameters.
	ErrInvalidPolicy = errors.New("invalid memory policy")
)
