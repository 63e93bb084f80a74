package memory_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/agent"
	domainmemory "github.com/ShivanshDubey1704/agentic-ai-assistant/domain/memory"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/run"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/infrastructure/storage/memory"
)

func finishedResult(id, goal string, reason agent.TerminationReason, start time.Time) *agent.Result {
	r := agent.NewResult(id, goal)
	r.StartTime = start
	r.Turns = 2
	r.Finish(reason)
	r.EndTime = start.Add(time.Second)
	return r
}

func TestRunStore_SaveAndGet(t *testing.T) {
	t.Parallel()

	store := memory.NewRunStore()
	ctx := context.Background()

	r := finishedResult("run-1", "compute pi", agent.TerminationCompleted, time.Now())
	r.Answer = json.RawMessage(`"3.14159"`)

	if err := store.Save(ctx, r); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Get(ctx, "run-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Goal != "compute pi" || got.Reason != agent.TerminationCompleted {
		t.Errorf("Get() = %+v, want saved result", got)
	}
	if string(got.Answer) != `"3.14159"` {
		t.Errorf("Answer = %s, want %q", got.Answer, `"3.14159"`)
	}

	// The stored copy must be independent of the caller's struct.
	r.Goal = "mutated"
	got2, err := store.Get(ctx, "run-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got2.Goal != "compute pi" {
		t.Error("stored result should not alias the caller's struct")
	}
}

func TestRunStore_SaveErrors(t *testing.T) {
	t.Parallel()

	store := memory.NewRunStore()
	ctx := context.Background()

	if err := store.Save(ctx, &agent.Result{}); !errors.Is(err, run.ErrInvalidRunID) {
		t.Errorf("Save(empty id) error = %v, want ErrInvalidRunID", err)
	}

	r := finishedResult("run-1", "goal", agent.TerminationCompleted, time.Now())
	if err := store.Save(ctx, r); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Save(ctx, r); !errors.Is(err, run.ErrRunExists) {
		t.Errorf("Save(duplicate) error = %v, want ErrRunExists", err)
	}
}

func TestRunStore_GetAndDeleteErrors(t *testing.T) {
	t.Parallel()

	store := memory.NewRunStore()
	ctx := context.Background()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, run.ErrRunNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrRunNotFound", err)
	}
	if err := store.Delete(ctx, "missing"); !errors.Is(err, run.ErrRunNotFound) {
		t.Errorf("Delete(missing) error = %v, want ErrRunNotFound", err)
	}
}

func TestRunStore_ListFilterAndOrder(t *testing.T) {
	t.Parallel()

	store := memory.NewRunStore()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	seed := []*agent.Result{
		finishedResult("run-a", "summarize report", agent.TerminationCompleted, base),
		finishedResult("run-b", "fetch weather", agent.TerminationFailed, base.Add(time.Minute)),
		finishedResult("run-c", "fetch news", agent.TerminationCompleted, base.Add(2*time.Minute)),
	}
	for _, r := range seed {
		if err := store.Save(ctx, r); err != nil {
			t.Fatalf("Save(%s) error = %v", r.RunID, err)
		}
	}

	completed, err := store.List(ctx, run.ListFilter{
		Reasons: []agent.TerminationReason{agent.TerminationCompleted},
		OrderBy: run.OrderByStartTime,
	})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(completed) != 2 || completed[0].RunID != "run-a" || completed[1].RunID != "run-c" {
		t.Errorf("List(completed) = %v runs, want run-a then run-c", len(completed))
	}

	fetches, err := store.List(ctx, run.ListFilter{GoalPattern: "fetch"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(fetches) != 2 {
		t.Errorf("List(fetch) = %d runs, want 2", len(fetches))
	}

	newest, err := store.List(ctx, run.ListFilter{
		OrderBy:    run.OrderByStartTime,
		Descending: true,
		Limit:      1,
	})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(newest) != 1 || newest[0].RunID != "run-c" {
		t.Errorf("List(newest) = %+v, want run-c", newest)
	}

	count, err := store.Count(ctx, run.ListFilter{})
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 3 {
		t.Errorf("Count() = %d, want 3", count)
	}
}

func TestRunStore_Summary(t *testing.T) {
	t.Parallel()

	store := memory.NewRunStore()
	ctx := context.Background()
	base := time.Now()

	for _, r := range []*agent.Result{
		finishedResult("run-1", "a", agent.TerminationCompleted, base),
		finishedResult("run-2", "b", agent.TerminationCompleted, base),
		finishedResult("run-3", "c", agent.TerminationFailed, base),
		finishedResult("run-4", "d", agent.TerminationBudgetExhausted, base),
	} {
		if err := store.Save(ctx, r); err != nil {
			t.Fatalf("Save(%s) error = %v", r.RunID, err)
		}
	}

	summary, err := store.Summary(ctx, run.ListFilter{})
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if summary.TotalRuns != 4 || summary.CompletedRuns != 2 || summary.FailedRuns != 1 || summary.ExhaustedRuns != 1 {
		t.Errorf("Summary() = %+v, want 4 total, 2 completed, 1 failed, 1 exhausted", summary)
	}
	if summary.AverageDuration != time.Second {
		t.Errorf("AverageDuration = %v, want 1s", summary.AverageDuration)
	}
}

func TestRunStore_Journal(t *testing.T) {
	t.Parallel()

	store := memory.NewRunStore()
	ctx := context.Background()

	turn := func(i int) agent.Turn {
		tn := agent.NewTurn(i)
		tn.SetAction(agent.NewToolCallAction("clock.now", json.RawMessage(`{}`), ""))
		tn.Seal()
		return *tn
	}

	if err := store.AppendTurn(ctx, "run-1", turn(0)); err != nil {
		t.Fatalf("AppendTurn(0) error = %v", err)
	}
	if err := store.AppendTurn(ctx, "run-1", turn(1)); err != nil {
		t.Fatalf("AppendTurn(1) error = %v", err)
	}

	if err := store.AppendTurn(ctx, "run-1", turn(0)); !errors.Is(err, domainmemory.ErrDuplicateTurn) {
		t.Errorf("AppendTurn(duplicate) error = %v, want ErrDuplicateTurn", err)
	}
	if err := store.AppendTurn(ctx, "run-1", turn(4)); !errors.Is(err, domainmemory.ErrTurnGap) {
		t.Errorf("AppendTurn(gap) error = %v, want ErrTurnGap", err)
	}

	turns, err := store.LoadTurns(ctx, "run-1")
	if err != nil {
		t.Fatalf("LoadTurns() error = %v", err)
	}
	if len(turns) != 2 || turns[0].Index != 0 || turns[1].Index != 1 {
		t.Errorf("LoadTurns() = %d turns, want indices 0,1", len(turns))
	}

	// Deleting the run drops its journal too.
	r := finishedResult("run-1", "goal", agent.TerminationCompleted, time.Now())
	if err := store.Save(ctx, r); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Delete(ctx, "run-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	turns, err = store.LoadTurns(ctx, "run-1")
	if err != nil {
		t.Fatalf("LoadTurns() error = %v", err)
	}
	if len(turns) != 0 {
		t.Errorf("LoadTurns() after delete = %d turns, want 0", len(turns))
	}
}
