// Package agent provides the core domain model for the task-execution loop.
package agent

// RunState represents a phase in the run lifecycle.
// States are identified by stable strings, not behavioral definitions.
type RunState string

const (
	StateIdle            RunState = "idle"             // Created, not yet started
	StateRunning         RunState = "running"          // Loop in progress
	StateCompleted       RunState = "completed"        // Terminal: final answer produced
	StateBudgetExhausted RunState = "budget_exhausted" // Terminal: iteration budget spent
	StateFailed          RunState = "failed"           // Terminal: planning failure or aborted
	StateCancelled       RunState = "cancelled"        // Terminal: caller cancelled
)

// IsTerminal returns true if the state ends the run.
func (s RunState) IsTerminal() bool {
	switch s {
	case StateCompleted, StateBudgetExhausted, StateFailed, StateCancelled:
		return true
	default:
		return false
	}
}

// IsValid returns true if the state is a recognized lifecycle state.
func (s RunState) IsValid() bool {
	switch s {
	case StateIdle, StateRunning, StateCompleted, StateBudgetExhausted, StateFailed, StateCancelled:
		return true
	default:
		return false
	}
}

// String returns the string representation of the state.
func (s RunState) String() string {
	return string(s)
}

// AllStates returns all lifecycle states.
func AllStates() []RunState {
	return []RunState{
		StateIdle,
		StateRunning,
		StateCompleted,
		StateBudgetExhausted,
		StateFailed,
		StateCancelled,
	}
}

// TerminalStates returns all terminal states.
func TerminalStates() []RunState {
	return []RunState{StateCompleted, StateBudgetExhausted, StateFailed, StateCancelled}
}
