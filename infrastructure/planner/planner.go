// Package planner provides decision engines for the agent runtime.
package planner

import (
	"context"

	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/agent"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/memory"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/tool"
)

// PlanRequest contains everything a planner may consult for one decision.
type PlanRequest struct {
	RunID string

	// Goal is the task given to the run.
	Goal string

	// TurnIndex is the index the next turn will carry.
	TurnIndex int

	// View is the memory projection for this query.
	View memory.View

	// Tools describes the registered tools.
	Tools []tool.Info
}

// Planner decides the next action for a run.
type Planner interface {
	Plan(ctx context.Context, req PlanRequest) (agent.Action, error)
}
