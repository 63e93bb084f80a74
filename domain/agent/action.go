package agent

import "encoding/json"

// ActionType identifies the kind of action chosen by the planner.
type ActionType string

const (
	ActionToolCall      ActionType = "tool_call"     // Invoke a registered tool
	ActionFinalAnswer   ActionType = "final_answer"  // Complete the goal
	ActionClarification ActionType = "clarification" // Ask the caller a question
)

// Action represents the planner's output - exactly one of the fields is set.
type Action struct {
	Type          ActionType           `json:"type"`
	ToolCall      *ToolCallAction      `json:"tool_call,omitempty"`
	FinalAnswer   *FinalAnswerAction   `json:"final_answer,omitempty"`
	Clarification *ClarificationAction `json:"clarification,omitempty"`
}

// ToolCallAction instructs the loop to execute a tool.
type ToolCallAction struct {
	Tool   string          `json:"tool"`
	Args   json.RawMessage `json:"args"`
	Reason string          `json:"reason,omitempty"`
}

// FinalAnswerAction indicates the goal is satisfied.
type FinalAnswerAction struct {
	Content json.RawMessage `json:"content"`
	Summary string          `json:"summary,omitempty"`
}

// ClarificationAction surfaces a question to the caller and ends the run early.
type ClarificationAction struct {
	Question string `json:"question"`
}

// NewToolCallAction creates an action to execute a tool.
func NewToolCallAction(toolName string, args json.RawMessage, reason string) Action {
	return Action{
		Type: ActionToolCall,
		ToolCall: &ToolCallAction{
			Tool:   toolName,
			Args:   args,
			Reason: reason,
		},
	}
}

// NewFinalAnswerAction creates an action that completes the goal.
func NewFinalAnswerAction(content json.RawMessage, summary string) Action {
	return Action{
		Type: ActionFinalAnswer,
		FinalAnswer: &FinalAnswerAction{
			Content: content,
			Summary: summary,
		},
	}
}

// NewClarificationAction creates an action that asks the caller a question.
func NewClarificationAction(question string) Action {
	return Action{
		Type:          ActionClarification,
		Clarification: &ClarificationAction{Question: question},
	}
}

// IsTerminal returns true if the action ends the loop.
func (a Action) IsTerminal() bool {
	return a.Type == ActionFinalAnswer || a.Type == ActionClarification
}
