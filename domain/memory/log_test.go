package memory_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/agent"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/memory"
)

// sealedTurn builds a sealed tool-call turn for log tests.
func sealedTurn(t *testing.T, index int, toolName string) *agent.Turn {
	t.Helper()

	turn := agent.NewTurn(index)
	if err := turn.SetAction(agent.NewToolCallAction(toolName, json.RawMessage(`{}`), "test")); err != nil {
		t.Fatalf("SetAction() error = %v", err)
	}
	if err := turn.SetObservation(agent.NewSuccessObservation(json.RawMessage(`"ok"`), time.Millisecond)); err != nil {
		t.Fatalf("SetObservation() error = %v", err)
	}
	turn.Seal()
	return turn
}

func TestLog_AppendOrdering(t *testing.T) {
	t.Parallel()

	log := memory.NewLog("run-1")

	if err := log.Append(sealedTurn(t, 0, "clock.now")); err != nil {
		t.Fatalf("Append(0) error = %v", err)
	}
	if err := log.Append(sealedTurn(t, 1, "clock.now")); err != nil {
		t.Fatalf("Append(1) error = %v", err)
	}

	if err := log.Append(sealedTurn(t, 1, "clock.now")); !errors.Is(err, memory.ErrDuplicateTurn) {
		t.Errorf("Append(duplicate) error = %v, want ErrDuplicateTurn", err)
	}
	if err := log.Append(sealedTurn(t, 5, "clock.now")); !errors.Is(err, memory.ErrTurnGap) {
		t.Errorf("Append(gap) error = %v, want ErrTurnGap", err)
	}

	if got := log.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
}

func TestLog_RejectsUnsealedTurn(t *testing.T) {
	t.Parallel()

	log := memory.NewLog("run-1")
	turn := agent.NewTurn(0)

	if err := log.Append(turn); !errors.Is(err, memory.ErrUnsealedTurn) {
		t.Errorf("Append(unsealed) error = %v, want ErrUnsealedTurn", err)
	}
}

func TestLog_TurnsReturnsCopy(t *testing.T) {
	t.Parallel()

	log := memory.NewLog("run-1")
	if err := log.Append(sealedTurn(t, 0, "calculator.add")); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	turns := log.Turns()
	turns[0].Reasoning = "mutated"

	if got := log.Turns()[0].Reasoning; got == "mutated" {
		t.Error("Turns() returned a slice sharing backing storage with the log")
	}
}

func TestLog_ToolUsage(t *testing.T) {
	t.Parallel()

	log := memory.NewLog("run-1")
	for i, name := range []string{"calculator.add", "clock.now", "calculator.add"} {
		if err := log.Append(sealedTurn(t, i, name)); err != nil {
			t.Fatalf("Append(%d) error = %v", i, err)
		}
	}

	usage := log.ToolUsage()
	if usage["calculator.add"] != 2 || usage["clock.now"] != 1 {
		t.Errorf("ToolUsage() = %v, want calculator.add:2 clock.now:1", usage)
	}

	used := log.ToolsUsed()
	want := []string{"calculator.add", "clock.now"}
	if len(used) != len(want) {
		t.Fatalf("ToolsUsed() = %v, want %v", used, want)
	}
	for i := range want {
		if used[i] != want[i] {
			t.Errorf("ToolsUsed()[%d] = %q, want %q", i, used[i], want[i])
		}
	}
}

func TestLog_Last(t *testing.T) {
	t.Parallel()

	log := memory.NewLog("run-1")
	if log.Last() != nil {
		t.Error("Last() on empty log should be nil")
	}

	if err := log.Append(sealedTurn(t, 0, "clock.now")); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := log.Append(sealedTurn(t, 1, "fs.read")); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	last := log.Last()
	if last == nil || last.Index != 1 {
		t.Fatalf("Last() = %+v, want turn with index 1", last)
	}
	if last.Action.ToolCall.Tool != "fs.read" {
		t.Errorf("Last().Action.ToolCall.Tool = %q, want %q", last.Action.ToolCall.Tool, "fs.read")
	}
}
