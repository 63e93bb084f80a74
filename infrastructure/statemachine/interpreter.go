package statemachine

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"

	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/agent"
)

// Interpreter wraps the statekit interpreter with run-specific functionality.
type Interpreter struct {
	interp *statekit.Interpreter[*Context]
	ctx    *Context
}

// NewInterpreter creates a new interpreter for the run state machine.
func NewInterpreter(machine *statekit.MachineConfig[*Context], ctx *Context) *Interpreter {
	interp := statekit.NewInterpreter(machine)
	interp.UpdateContext(func(c **Context) {
		*c = ctx
	})
	return &Interpreter{
		interp: interp,
		ctx:    ctx,
	}
}

// Start initializes the interpreter and enters the idle state.
func (i *Interpreter) Start() {
	i.interp.Start()
	i.ctx.State = agent.RunState(i.interp.State().Value)
}

// Stop stops the interpreter.
func (i *Interpreter) Stop() {
	i.interp.Stop()
}

// State returns the current run state.
func (i *Interpreter) State() agent.RunState {
	return agent.RunState(i.interp.State().Value)
}

// Transition attempts to move the run to the target state. The machine
// definition rejects edges the lifecycle does not allow, including leaving
// a terminal state.
func (i *Interpreter) Transition(to agent.RunState, reason string) error {
	from := i.State()
	if from.IsTerminal() {
		return fmt.Errorf("%w: run is %s", agent.ErrRunTerminated, from)
	}

	i.interp.Send(statekit.Event{
		Type: EventForState(to),
		Payload: TransitionPayload{
			ToState: to,
			Reason:  reason,
		},
	})

	if got := i.State(); got != to {
		return fmt.Errorf("%w: %s -> %s", agent.ErrInvalidTransition, from, to)
	}
	return nil
}

// IsTerminal returns true if the interpreter reached a final state.
func (i *Interpreter) IsTerminal() bool {
	return i.interp.Done()
}

// Context returns the interpreter context.
func (i *Interpreter) Context() *Context {
	return i.ctx
}

// Matches checks if the current state matches the given state ID.
func (i *Interpreter) Matches(state agent.RunState) bool {
	return i.interp.Matches(statekit.StateID(state))
}
