// Package run provides the domain interfaces for run persistence.
package run

import (
	"context"
	"time"

	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/agent"
)

// Journal persists turns as they are sealed, so a run's history survives
// the process. Implementations may be SQLite or any other backend.
type Journal interface {
	// AppendTurn records one sealed turn of a run.
	AppendTurn(ctx context.Context, runID string, t agent.Turn) error

	// LoadTurns returns all journaled turns of a run in index order.
	LoadTurns(ctx context.Context, runID string) ([]agent.Turn, error)
}

// Store defines the interface for run result persistence.
type Store interface {
	// Save persists a finished run result.
	Save(ctx context.Context, result *agent.Result) error

	// Get retrieves a run result by ID.
	Get(ctx context.Context, id string) (*agent.Result, error)

	// Delete removes a run result by ID.
	Delete(ctx context.Context, id string) error

	// List returns run results matching the filter.
	List(ctx context.Context, filter ListFilter) ([]*agent.Result, error)

	// Count returns the number of run results matching the filter.
	Count(ctx context.Context, filter ListFilter) (int64, error)
}

// ListFilter specifies criteria for listing run results.
type ListFilter struct {
	// Reasons filters by termination reason (empty means all).
	Reasons []agent.TerminationReason

	// FromTime filters runs started after this time.
	FromTime time.Time

	// ToTime filters runs started before this time.
	ToTime time.Time

	// GoalPattern filters by goal text (substring match).
	GoalPattern string

	// Limit is the maximum number of results to return (0 = no limit).
	Limit int

	// Offset is the number of results to skip for pagination.
	Offset int

	// OrderBy specifies the sort order.
	OrderBy OrderBy

	// Descending reverses the sort order.
	Descending bool
}

// OrderBy specifies how to sort run results.
type OrderBy string

const (
	// OrderByStartTime sorts by run start time.
	OrderByStartTime OrderBy = "start_time"

	// OrderByEndTime sorts by run end time.
	OrderByEndTime OrderBy = "end_time"

	// OrderByID sorts by run ID.
	OrderByID OrderBy = "id"

	// OrderByReason sorts by termination reason.
	OrderByReason OrderBy = "reason"
)

// Summary provides aggregate statistics about runs.
type Summary struct {
	// TotalRuns is the total number of recorded runs.
	TotalRuns int64

	// CompletedRuns is the number of runs that finished with an answer.
	CompletedRuns int64

	// FailedRuns is the number of failed runs.
	FailedRuns int64

	// ExhaustedRuns is the number of runs that hit the turn budget.
	ExhaustedRuns int64

	// AverageDuration is the average run duration.
	AverageDuration time.Duration
}

// SummaryProvider is an optional interface for stores that support summaries.
type SummaryProvider interface {
	// Summary returns aggregate statistics.
	Summary(ctx context.Context, filter ListFilter) (Summary, error)
}
