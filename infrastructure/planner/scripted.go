package planner

import (
	"context"
	"fmt"
	"sync"

	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/agent"
)

// ScriptStep defines one expected planning call and the action to return.
type ScriptStep struct {
	// ExpectTurn asserts the turn index the step should be asked for.
	// Negative means no assertion.
	ExpectTurn int

	// Condition is an optional additional check against the request.
	Condition func(PlanRequest) bool

	// Action is the action to return.
	Action agent.Action
}

// ScriptedPlanner executes a predefined sequence for deterministic testing.
// It validates the request against each step before answering.
type ScriptedPlanner struct {
	steps []ScriptStep
	index int
	mu    sync.Mutex
}

// NewScriptedPlanner creates a scripted planner with the given steps.
func NewScriptedPlanner(steps ...ScriptStep) *ScriptedPlanner {
	return &ScriptedPlanner{steps: steps}
}

// Plan returns the next scripted action if the request matches.
func (p *ScriptedPlanner) Plan(_ context.Context, req PlanRequest) (agent.Action, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.index >= len(p.steps) {
		return agent.Action{}, &Error{
			Kind:    FailureBackend,
			Message: fmt.Sprintf("script exhausted at turn %d", req.TurnIndex),
		}
	}

	step := p.steps[p.index]

	if step.ExpectTurn >= 0 && step.ExpectTurn != req.TurnIndex {
		return agent.Action{}, &UnexpectedTurnError{
			Expected:  step.ExpectTurn,
			Actual:    req.TurnIndex,
			StepIndex: p.index,
		}
	}

	if step.Condition != nil && !step.Condition(req) {
		return agent.Action{}, &ConditionFailedError{
			StepIndex: p.index,
			TurnIndex: req.TurnIndex,
		}
	}

	p.index++
	return step.Action, nil
}

// Reset resets the planner to the beginning.
func (p *ScriptedPlanner) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.index = 0
}

// CurrentStep returns the current step index.
func (p *ScriptedPlanner) CurrentStep() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.index
}

// IsComplete returns true if all steps have been consumed.
func (p *ScriptedPlanner) IsComplete() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.index >= len(p.steps)
}

// UnexpectedTurnError indicates a step was asked for at the wrong turn.
type UnexpectedTurnError struct {
	Expected  int
	Actual    int
	StepIndex int
}

func (e *UnexpectedTurnError) Error() string {
	return fmt.Sprintf("unexpected turn at step %d: expected %d, got %d", e.StepIndex, e.Expected, e.Actual)
}

// ConditionFailedError indicates a step condition was not met.
type ConditionFailedError struct {
	StepIndex int
	TurnIndex int
}

func (e *ConditionFailedError) Error() string {
	return fmt.Sprintf("condition failed at step %d on turn %d", e.StepIndex, e.TurnIndex)
}
