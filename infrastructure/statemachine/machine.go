// Package statemachine provides the statekit integration for the run lifecycle.
package statemachine

import (
	"github.com/felixgeelhaar/statekit"

	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/agent"
)

// Transition records one lifecycle edge for diagnostics.
type Transition struct {
	From   agent.RunState
	To     agent.RunState
	Reason string
}

// Context carries run identity through the state machine.
type Context struct {
	RunID   string
	Goal    string
	State   agent.RunState
	History []Transition
}

// NewContext creates a new machine context.
func NewContext(runID, goal string) *Context {
	return &Context{
		RunID: runID,
		Goal:  goal,
		State: agent.StateIdle,
	}
}

// State IDs as StateID type for statekit.
const (
	stateIdle            statekit.StateID = statekit.StateID(agent.StateIdle)
	stateRunning         statekit.StateID = statekit.StateID(agent.StateRunning)
	stateCompleted       statekit.StateID = statekit.StateID(agent.StateCompleted)
	stateBudgetExhausted statekit.StateID = statekit.StateID(agent.StateBudgetExhausted)
	stateFailed          statekit.StateID = statekit.StateID(agent.StateFailed)
	stateCancelled       statekit.StateID = statekit.StateID(agent.StateCancelled)
)

// Event types accepted by the run machine.
const (
	EventStart    statekit.EventType = "START"
	EventComplete statekit.EventType = "COMPLETE"
	EventExhaust  statekit.EventType = "EXHAUST"
	EventFail     statekit.EventType = "FAIL"
	EventCancel   statekit.EventType = "CANCEL"
)

// NewRunMachine creates the canonical run lifecycle statechart. A run starts
// idle, moves to running exactly once, and ends in exactly one terminal state.
func NewRunMachine() (*statekit.MachineConfig[*Context], error) {
	return statekit.NewMachine[*Context]("run").
		WithInitial(stateIdle).
		WithContext(&Context{}).
		WithAction("recordTransition", recordTransition).
		WithGuard("hasGoal", guardHasGoal).
		State(stateIdle).
		On(EventStart).Target(stateRunning).Guard("hasGoal").Do("recordTransition").
		On(EventCancel).Target(stateCancelled).Do("recordTransition").
		Done().
		State(stateRunning).
		On(EventComplete).Target(stateCompleted).Do("recordTransition").
		On(EventExhaust).Target(stateBudgetExhausted).Do("recordTransition").
		On(EventFail).Target(stateFailed).Do("recordTransition").
		On(EventCancel).Target(stateCancelled).Do("recordTransition").
		Done().
		State(stateCompleted).
		Final().
		Done().
		State(stateBudgetExhausted).
		Final().
		Done().
		State(stateFailed).
		Final().
		Done().
		State(stateCancelled).
		Final().
		Done().
		Build()
}

// EventForState returns the event that moves a running machine into the
// given terminal state.
func EventForState(to agent.RunState) statekit.EventType {
	switch to {
	case agent.StateRunning:
		return EventStart
	case agent.StateCompleted:
		return EventComplete
	case agent.StateBudgetExhausted:
		return EventExhaust
	case agent.StateFailed:
		return EventFail
	case agent.StateCancelled:
		return EventCancel
	default:
		return statekit.EventType(to)
	}
}
