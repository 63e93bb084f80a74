package agent

import (
	"encoding/json"
	"time"
)

// TerminationReason explains why a run ended.
type TerminationReason string

const (
	TerminationCompleted       TerminationReason = "completed"
	TerminationBudgetExhausted TerminationReason = "budget_exhausted"
	TerminationFailed          TerminationReason = "failed"
	TerminationCancelled       TerminationReason = "cancelled"
	// TerminationClarification marks a run ended early because the planner
	// asked the caller a question instead of acting.
	TerminationClarification TerminationReason = "clarification"
)

// Result is the final output of a run. It is always populated, even on
// failure, so the caller can audit what happened.
type Result struct {
	RunID         string            `json:"run_id"`
	Goal          string            `json:"goal"`
	Reason        TerminationReason `json:"reason"`
	Answer        json.RawMessage   `json:"answer,omitempty"`
	Summary       string            `json:"summary,omitempty"`
	Clarification string            `json:"clarification,omitempty"`
	Turns         int               `json:"turns"`
	Err           string            `json:"error,omitempty"`
	// Transcript is the full sealed turn history of the run.
	Transcript []Turn `json:"transcript,omitempty"`
	// LastObservation preserves partial progress on abnormal termination.
	LastObservation *Observation `json:"last_observation,omitempty"`
	StartTime       time.Time    `json:"start_time"`
	EndTime         time.Time    `json:"end_time"`
}

// NewResult creates a result shell for a starting run.
func NewResult(runID, goal string) *Result {
	return &Result{
		RunID:     runID,
		Goal:      goal,
		StartTime: time.Now(),
	}
}

// Finish stamps the terminal reason and end time.
func (r *Result) Finish(reason TerminationReason) {
	r.Reason = reason
	r.EndTime = time.Now()
}

// Succeeded returns true if the run produced a final answer.
func (r *Result) Succeeded() bool {
	return r.Reason == TerminationCompleted
}

// Duration returns how long the run took.
func (r *Result) Duration() time.Duration {
	if r.EndTime.IsZero() {
		return time.Since(r.StartTime)
	}
	return r.EndTime.Sub(r.StartTime)
}
