package api

import (
	"encoding/json"

	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/agent"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/memory"
	domainpack "github.com/ShivanshDubey1704/agentic-ai-assistant/domain/pack"
	domaintool "github.com/ShivanshDubey1704/agentic-ai-assistant/domain/tool"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/infrastructure/planner"
	storagememory "github.com/ShivanshDubey1704/agentic-ai-assistant/infrastructure/storage/memory"
)

// NewToolBuilder creates a new tool builder.
func NewToolBuilder(name string) *domaintool.Builder {
	return domaintool.NewBuilder(name)
}

// NewToolRegistry creates a new in-memory tool registry.
func NewToolRegistry() *storagememory.ToolRegistry {
	return storagememory.NewToolRegistry()
}

// NewPackBuilder creates a new tool pack builder.
func NewPackBuilder(name string) *domainpack.Builder {
	return domainpack.NewBuilder(name)
}

// NewMockPlanner creates a mock planner with a predefined action sequence.
func NewMockPlanner(actions ...Action) *planner.MockPlanner {
	return planner.NewMockPlanner(actions...)
}

// NewScriptedPlanner creates a scripted planner for deterministic testing.
func NewScriptedPlanner(steps ...planner.ScriptStep) *planner.ScriptedPlanner {
	return planner.NewScriptedPlanner(steps...)
}

// ScriptStep is a step in a scripted planner.
type ScriptStep = planner.ScriptStep

// Memory policy constructors

// FullHistory presents every prior turn verbatim.
func FullHistory() memory.Policy {
	return memory.FullHistory()
}

// SlidingWindow presents the last k turns verbatim.
func SlidingWindow(k int) memory.Policy {
	return memory.SlidingWindow(k)
}

// Summarized folds older turns into a digest within a token budget.
func Summarized(budget int) memory.Policy {
	return memory.Summarized(budget)
}

// Action constructors

// NewToolCallAction creates an action that executes a tool.
func NewToolCallAction(toolName string, args json.RawMessage, reason string) Action {
	return agent.NewToolCallAction(toolName, args, reason)
}

// NewFinalAnswerAction creates an action that completes the goal.
func NewFinalAnswerAction(content json.RawMessage, summary string) Action {
	return agent.NewFinalAnswerAction(content, summary)
}

// NewClarificationAction creates an action that asks the caller a question.
func NewClarificationAction(question string) Action {
	return agent.NewClarificationAction(question)
}

// ObjectSchema builds a JSON object schema from property definitions.
func ObjectSchema(properties map[string]json.RawMessage, required []string) Schema {
	return domaintool.ObjectSchema(properties, required)
}
