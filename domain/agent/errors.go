package agent

import "errors"

// Domain errors for the task-execution loop.
var (
	// ErrTurnSealed indicates a mutation was attempted on a sealed turn.
	ErrTurnSealed = errors.New("turn already sealed")

	// ErrInvalidState indicates the state is not a recognized lifecycle state.
	ErrInvalidState = errors.New("invalid run state")

	// ErrInvalidTransition indicates an attempted state transition is not allowed.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrRunTerminated indicates an operation was attempted on a terminated run.
	ErrRunTerminated = errors.New("run already terminated")
)
