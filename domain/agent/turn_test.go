package agent_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/agent"
)

func TestTurn_SetActionAndSeal(t *testing.T) {
	t.Parallel()

	turn := agent.NewTurn(0)
	if turn.Sealed() {
		t.Fatal("new turn should not be sealed")
	}

	action := agent.NewToolCallAction("calculator.add", json.RawMessage(`{"a":1,"b":2}`), "add the numbers")
	if err := turn.SetAction(action); err != nil {
		t.Fatalf("SetAction() error = %v", err)
	}
	if turn.Reasoning != "add the numbers" {
		t.Errorf("Reasoning = %q, want %q", turn.Reasoning, "add the numbers")
	}

	turn.Seal()
	if !turn.Sealed() {
		t.Fatal("turn should be sealed")
	}

	if err := turn.SetAction(action); !errors.Is(err, agent.ErrTurnSealed) {
		t.Errorf("SetAction() after seal error = %v, want %v", err, agent.ErrTurnSealed)
	}
	obs := agent.NewSuccessObservation(json.RawMessage(`{}`), 0)
	if err := turn.SetObservation(obs); !errors.Is(err, agent.ErrTurnSealed) {
		t.Errorf("SetObservation() after seal error = %v, want %v", err, agent.ErrTurnSealed)
	}
}

func TestActionConstructors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		action   agent.Action
		wantType agent.ActionType
	}{
		{
			name:     "tool call",
			action:   agent.NewToolCallAction("clock.now", json.RawMessage(`{}`), "check the time"),
			wantType: agent.ActionToolCall,
		},
		{
			name:     "final answer",
			action:   agent.NewFinalAnswerAction(json.RawMessage(`42`), "computed"),
			wantType: agent.ActionFinalAnswer,
		},
		{
			name:     "clarification",
			action:   agent.NewClarificationAction("which file?"),
			wantType: agent.ActionClarification,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if tt.action.Type != tt.wantType {
				t.Errorf("Type = %v, want %v", tt.action.Type, tt.wantType)
			}

			switch tt.wantType {
			case agent.ActionToolCall:
				if tt.action.ToolCall == nil {
					t.Error("ToolCall should be set")
				}
			case agent.ActionFinalAnswer:
				if tt.action.FinalAnswer == nil {
					t.Error("FinalAnswer should be set")
				}
			case agent.ActionClarification:
				if tt.action.Clarification == nil {
					t.Error("Clarification should be set")
				}
			}
		})
	}
}

func TestRunState_IsTerminal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state agent.RunState
		want  bool
	}{
		{agent.StateIdle, false},
		{agent.StateRunning, false},
		{agent.StateCompleted, true},
		{agent.StateBudgetExhausted, true},
		{agent.StateFailed, true},
		{agent.StateCancelled, true},
	}

	for _, tt := range tests {
		if got := tt.state.IsTerminal(); got != tt.want {
			t.Errorf("IsTerminal(%s) = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func TestResult_Finish(t *testing.T) {
	t.Parallel()

	result := agent.NewResult("run-1", "test goal")
	if result.Succeeded() {
		t.Error("unfinished result should not be succeeded")
	}

	result.Finish(agent.TerminationCompleted)

	if !result.Succeeded() {
		t.Error("completed result should be succeeded")
	}
	if result.EndTime.IsZero() {
		t.Error("EndTime should be stamped")
	}
	if result.Duration() < 0 {
		t.Error("Duration should be non-negative")
	}
}

func TestValidationObservation(t *testing.T) {
	t.Parallel()

	obs := agent.NewValidationObservation("invalid arguments", []string{"a: expected number", "b: required"})

	if !obs.IsFailure() {
		t.Fatal("validation observation should be a failure")
	}
	if obs.Failure.Kind != agent.FailureSchemaValidation {
		t.Errorf("Kind = %v, want %v", obs.Failure.Kind, agent.FailureSchemaValidation)
	}
	if len(obs.Failure.Violations) != 2 {
		t.Errorf("Violations = %d, want 2", len(obs.Failure.Violations))
	}
}
