package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/agent"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/memory"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/run"
)

// resultEntry holds a deep copy of a result for storage.
type resultEntry struct {
	data []byte
}

// RunStore is an in-memory implementation of run.Store and run.Journal.
// It serves tests and single-process deployments that do not need the
// SQLite backend.
type RunStore struct {
	results map[string]*resultEntry
	turns   map[string][]agent.Turn
	mu      sync.RWMutex
}

// NewRunStore creates a new in-memory run store.
func NewRunStore() *RunStore {
	return &RunStore{
		results: make(map[string]*resultEntry),
		turns:   make(map[string][]agent.Turn),
	}
}

// Save persists a finished run result.
func (s *RunStore) Save(ctx context.Context, r *agent.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if r.RunID == "" {
		return run.ErrInvalidRunID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.results[r.RunID]; exists {
		return run.ErrRunExists
	}

	data, err := json.Marshal(r)
	if err != nil {
		return err
	}

	s.results[r.RunID] = &resultEntry{data: data}
	return nil
}

// Get retrieves a run result by ID.
func (s *RunStore) Get(ctx context.Context, id string) (*agent.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if id == "" {
		return nil, run.ErrInvalidRunID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.results[id]
	if !ok {
		return nil, run.ErrRunNotFound
	}

	var r agent.Result
	if err := json.Unmarshal(entry.data, &r); err != nil {
		return nil, err
	}

	return &r, nil
}

// Delete removes a run result and its journaled turns.
func (s *RunStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if id == "" {
		return run.ErrInvalidRunID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.results[id]; !exists {
		return run.ErrRunNotFound
	}

	delete(s.results, id)
	delete(s.turns, id)
	return nil
}

// List returns run results matching the filter.
func (s *RunStore) List(ctx context.Context, filter run.ListFilter) ([]*agent.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []*agent.Result

	for _, entry := range s.results {
		var r agent.Result
		if err := json.Unmarshal(entry.data, &r); err != nil {
			continue
		}

		if !matchesFilter(&r, filter) {
			continue
		}

		results = append(results, &r)
	}

	sortResults(results, filter.OrderBy, filter.Descending)

	if filter.Offset > 0 {
		if filter.Offset >= len(results) {
			return []*agent.Result{}, nil
		}
		results = results[filter.Offset:]
	}

	if filter.Limit > 0 && len(results) > filter.Limit {
		results = results[:filter.Limit]
	}

	return results, nil
}

// Count returns the number of run results matching the filter.
func (s *RunStore) Count(ctx context.Context, filter run.ListFilter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64

	for _, entry := range s.results {
		var r agent.Result
		if err := json.Unmarshal(entry.data, &r); err != nil {
			continue
		}

		if matchesFilter(&r, filter) {
			count++
		}
	}

	return count, nil
}

// Summary returns aggregate statistics.
func (s *RunStore) Summary(ctx context.Context, filter run.ListFilter) (run.Summary, error) {
	if err := ctx.Err(); err != nil {
		return run.Summary{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var summary run.Summary
	var totalDuration time.Duration

	for _, entry := range s.results {
		var r agent.Result
		if err := json.Unmarshal(entry.data, &r); err != nil {
			continue
		}

		if !matchesFilter(&r, filter) {
			continue
		}

		summary.TotalRuns++
		totalDuration += r.Duration()

		switch r.Reason {
		case agent.TerminationCompleted:
			summary.CompletedRuns++
		case agent.TerminationFailed:
			summary.FailedRuns++
		case agent.TerminationBudgetExhausted:
			summary.ExhaustedRuns++
		}
	}

	if summary.TotalRuns > 0 {
		summary.AverageDuration = totalDuration / time.Duration(summary.TotalRuns)
	}

	return summary, nil
}

// AppendTurn records one sealed turn of a run.
func (s *RunStore) AppendTurn(ctx context.Context, runID string, t agent.Turn) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if runID == "" {
		return run.ErrInvalidRunID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	turns := s.turns[runID]
	if t.Index < len(turns) {
		return memory.ErrDuplicateTurn
	}
	if t.Index > len(turns) {
		return memory.ErrTurnGap
	}

	s.turns[runID] = append(turns, t)
	return nil
}

// LoadTurns returns all journaled turns of a run in index order.
func (s *RunStore) LoadTurns(ctx context.Context, runID string) ([]agent.Turn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := s.turns[runID]
	out := make([]agent.Turn, len(turns))
	copy(out, turns)
	return out, nil
}

// matchesFilter checks if a result matches the filter criteria.
func matchesFilter(r *agent.Result, filter run.ListFilter) bool {
	if len(filter.Reasons) > 0 {
		found := false
		for _, reason := range filter.Reasons {
			if r.Reason == reason {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if !filter.FromTime.IsZero() && r.StartTime.Before(filter.FromTime) {
		return false
	}

	if !filter.ToTime.IsZero() && r.StartTime.After(filter.ToTime) {
		return false
	}

	if filter.GoalPattern != "" && !strings.Contains(r.Goal, filter.GoalPattern) {
		return false
	}

	return true
}

// sortResults sorts results by the specified field.
func sortResults(results []*agent.Result, orderBy run.OrderBy, descending bool) {
	sort.Slice(results, func(i, j int) bool {
		var less bool

		switch orderBy {
		case run.OrderByEndTime:
			less = results[i].EndTime.Before(results[j].EndTime)
		case run.OrderByID:
			less = results[i].RunID < results[j].RunID
		case run.OrderByReason:
			less = string(results[i].Reason) < string(results[j].Reason)
		default:
			less = results[i].StartTime.Before(results[j].StartTime)
		}

		if descending {
			return !less
		}
		return less
	})
}

// Clear removes all stored results and turns.
func (s *RunStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = make(map[string]*resultEntry)
	s.turns = make(map[string][]agent.Turn)
}

// Len returns the number of stored results.
func (s *RunStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}

var (
	_ run.Store           = (*RunStore)(nil)
	_ run.Journal         = (*RunStore)(nil)
	_ run.SummaryProvider = (*RunStore)(nil)
)
