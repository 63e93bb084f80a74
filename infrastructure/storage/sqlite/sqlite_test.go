package sqlite_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/agent"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/memory"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/run"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/infrastructure/storage/sqlite"
)

// testConfig points the store at a throwaway database file.
func testConfig(t *testing.T) sqlite.Config {
	t.Helper()

	cfg := sqlite.DefaultConfig()
	cfg.DSN = fmt.Sprintf("file:%s?cache=shared&mode=rwc", filepath.Join(t.TempDir(), "test.db"))
	return cfg
}

func sealedToolTurn(index int, name string) agent.Turn {
	turn := agent.NewTurn(index)
	_ = turn.SetAction(agent.NewToolCallAction(name, json.RawMessage(`{"q":"x"}`), "testing"))
	_ = turn.SetObservation(agent.NewSuccessObservation(json.RawMessage(`"ok"`), time.Millisecond))
	turn.Seal()
	return *turn
}

func TestJournal_AppendAndLoad(t *testing.T) {
	t.Parallel()

	journal, err := sqlite.NewJournal(testConfig(t))
	if err != nil {
		t.Fatalf("NewJournal() error = %v", err)
	}
	defer journal.Close()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if err := journal.AppendTurn(ctx, "run-1", sealedToolTurn(i, "web.search")); err != nil {
			t.Fatalf("AppendTurn(%d) error = %v", i, err)
		}
	}

	turns, err := journal.LoadTurns(ctx, "run-1")
	if err != nil {
		t.Fatalf("LoadTurns() error = %v", err)
	}
	if len(turns) != 3 {
		t.Fatalf("LoadTurns() = %d turns, want 3", len(turns))
	}
	for i, turn := range turns {
		if turn.Index != i {
			t.Errorf("turns[%d].Index = %d, want %d", i, turn.Index, i)
		}
		if turn.Action.ToolCall == nil || turn.Action.ToolCall.Tool != "web.search" {
			t.Errorf("turns[%d] lost its tool call", i)
		}
		if turn.Observation == nil || turn.Observation.IsFailure() {
			t.Errorf("turns[%d] lost its observation", i)
		}
	}
}

func TestJournal_DuplicateTurnRejected(t *testing.T) {
	t.Parallel()

	journal, err := sqlite.NewJournal(testConfig(t))
	if err != nil {
		t.Fatalf("NewJournal() error = %v", err)
	}
	defer journal.Close()

	ctx := context.Background()
	if err := journal.AppendTurn(ctx, "run-1", sealedToolTurn(0, "clock.now")); err != nil {
		t.Fatalf("AppendTurn() error = %v", err)
	}
	if err := journal.AppendTurn(ctx, "run-1", sealedToolTurn(0, "clock.now")); !errors.Is(err, memory.ErrDuplicateTurn) {
		t.Errorf("AppendTurn(duplicate) error = %v, want ErrDuplicateTurn", err)
	}
}

func TestJournal_EmptyRunID(t *testing.T) {
	t.Parallel()

	journal, err := sqlite.NewJournal(testConfig(t))
	if err != nil {
		t.Fatalf("NewJournal() error = %v", err)
	}
	defer journal.Close()

	if err := journal.AppendTurn(context.Background(), "", sealedToolTurn(0, "clock.now")); !errors.Is(err, run.ErrInvalidRunID) {
		t.Errorf("AppendTurn(empty id) error = %v, want ErrInvalidRunID", err)
	}
}

func TestJournal_ToolUsage(t *testing.T) {
	t.Parallel()

	journal, err := sqlite.NewJournal(testConfig(t))
	if err != nil {
		t.Fatalf("NewJournal() error = %v", err)
	}
	defer journal.Close()

	ctx := context.Background()
	for i, name := range []string{"web.search", "web.fetch", "web.search"} {
		if err := journal.AppendTurn(ctx, "run-1", sealedToolTurn(i, name)); err != nil {
			t.Fatalf("AppendTurn(%d) error = %v", i, err)
		}
	}

	usage, err := journal.ToolUsage(ctx, "run-1")
	if err != nil {
		t.Fatalf("ToolUsage() error = %v", err)
	}
	if usage["web.search"] != 2 || usage["web.fetch"] != 1 {
		t.Errorf("ToolUsage() = %v, want web.search:2 web.fetch:1", usage)
	}
}

func TestRunStore_RoundTrip(t *testing.T) {
	t.Parallel()

	store, err := sqlite.NewRunStore(testConfig(t))
	if err != nil {
		t.Fatalf("NewRunStore() error = %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	r := agent.NewResult("run-1", "find the answer")
	r.Answer = json.RawMessage(`42`)
	r.Turns = 3
	r.Finish(agent.TerminationCompleted)

	if err := store.Save(ctx, r); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Save(ctx, r); !errors.Is(err, run.ErrRunExists) {
		t.Errorf("Save(duplicate) error = %v, want ErrRunExists", err)
	}

	got, err := store.Get(ctx, "run-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Goal != "find the answer" || got.Turns != 3 || string(got.Answer) != "42" {
		t.Errorf("Get() = %+v, want the saved result", got)
	}

	if _, err := store.Get(ctx, "run-2"); !errors.Is(err, run.ErrRunNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrRunNotFound", err)
	}

	if err := store.Delete(ctx, "run-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := store.Delete(ctx, "run-1"); !errors.Is(err, run.ErrRunNotFound) {
		t.Errorf("Delete(deleted) error = %v, want ErrRunNotFound", err)
	}
}

func TestRunStore_ListAndSummary(t *testing.T) {
	t.Parallel()

	store, err := sqlite.NewRunStore(testConfig(t))
	if err != nil {
		t.Fatalf("NewRunStore() error = %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	seed := []struct {
		id     string
		goal   string
		reason agent.TerminationReason
	}{
		{"run-a", "summarize the report", agent.TerminationCompleted},
		{"run-b", "fetch the weather", agent.TerminationCompleted},
		{"run-c", "fetch the news", agent.TerminationFailed},
	}
	for i, s := range seed {
		r := agent.NewResult(s.id, s.goal)
		r.StartTime = base.Add(time.Duration(i) * time.Minute)
		r.Finish(s.reason)
		r.EndTime = r.StartTime.Add(2 * time.Second)
		if err := store.Save(ctx, r); err != nil {
			t.Fatalf("Save(%s) error = %v", s.id, err)
		}
	}

	completed, err := store.List(ctx, run.ListFilter{
		Reasons: []agent.TerminationReason{agent.TerminationCompleted},
		OrderBy: run.OrderByStartTime,
	})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(completed) != 2 || completed[0].RunID != "run-a" {
		t.Errorf("List(completed) = %d results, want run-a first of 2", len(completed))
	}

	fetches, err := store.Count(ctx, run.ListFilter{GoalPattern: "fetch"})
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if fetches != 2 {
		t.Errorf("Count(fetch) = %d, want 2", fetches)
	}

	newest, err := store.List(ctx, run.ListFilter{OrderBy: run.OrderByStartTime, Descending: true, Limit: 1})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(newest) != 1 || newest[0].RunID != "run-c" {
		t.Errorf("List(newest) = %+v, want run-c", newest)
	}

	summary, err := store.Summary(ctx, run.ListFilter{})
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if summary.TotalRuns != 3 || summary.CompletedRuns != 2 || summary.FailedRuns != 1 {
		t.Errorf("Summary() = %+v, want 3 total, 2 completed, 1 failed", summary)
	}
	if summary.AverageDuration != 2*time.Second {
		t.Errorf("AverageDuration = %v, want 2s", summary.AverageDuration)
	}
}

func TestJournalAndRunStoreShareDatabase(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)

	journal, err := sqlite.NewJournal(cfg)
	if err != nil {
		t.Fatalf("NewJournal() error = %v", err)
	}
	defer journal.Close()

	store, err := sqlite.NewRunStore(cfg)
	if err != nil {
		t.Fatalf("NewRunStore() error = %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := journal.AppendTurn(ctx, "run-1", sealedToolTurn(0, "clock.now")); err != nil {
		t.Fatalf("AppendTurn() error = %v", err)
	}
	r := agent.NewResult("run-1", "shared db")
	r.Finish(agent.TerminationCompleted)
	if err := store.Save(ctx, r); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	turns, err := journal.LoadTurns(ctx, "run-1")
	if err != nil {
		t.Fatalf("LoadTurns() error = %v", err)
	}
	if len(turns) != 1 {
		t.Errorf("LoadTurns() = %d turns, want 1", len(turns))
	}
}
