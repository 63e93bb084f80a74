package planner

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/agent"
)

// MockPlanner returns a predefined sequence of actions for testing.
type MockPlanner struct {
	actions []agent.Action
	index   int
	mu      sync.Mutex
}

// NewMockPlanner creates a mock planner with the given actions.
func NewMockPlanner(actions ...agent.Action) *MockPlanner {
	return &MockPlanner{
		actions: actions,
		index:   0,
	}
}

// Plan returns the next action in the sequence. When the sequence runs
// out it keeps answering with a generic final answer.
func (p *MockPlanner) Plan(_ context.Context, _ PlanRequest) (agent.Action, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.index >= len(p.actions) {
		return agent.NewFinalAnswerAction(json.RawMessage(`"done"`), "sequence exhausted"), nil
	}

	action := p.actions[p.index]
	p.index++
	return action, nil
}

// Reset resets the planner to the beginning.
func (p *MockPlanner) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.index = 0
}

// Remaining returns the number of remaining actions.
func (p *MockPlanner) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.actions) - p.index
}

// AddAction appends an action to the sequence.
func (p *MockPlanner) AddAction(a agent.Action) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.actions = append(p.actions, a)
}
