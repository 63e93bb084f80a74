// Package memory provides the append-only turn log and the policies that
// bound how much of it the planner sees.
package memory

import (
	"sort"
	"sync"

	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/agent"
)

// Log is the append-only record of turns for a single run. It is the sole
// source of truth for planner context: the planner sees nothing that is not
// in the log. Each run owns an independent Log; instances are never shared
// across runs.
type Log struct {
	runID string
	turns []agent.Turn
	mu    sync.RWMutex
}

// NewLog creates an empty turn log for the given run.
func NewLog(runID string) *Log {
	return &Log{
		runID: runID,
		turns: make([]agent.Turn, 0),
	}
}

// Append adds a sealed turn to the log. Indices must arrive in order:
// a duplicate index returns ErrDuplicateTurn, a gap returns ErrTurnGap.
func (l *Log) Append(t *agent.Turn) error {
	if !t.Sealed() {
		return ErrUnsealedTurn
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	switch {
	case t.Index < len(l.turns):
		return ErrDuplicateTurn
	case t.Index > len(l.turns):
		return ErrTurnGap
	}

	l.turns = append(l.turns, *t)
	return nil
}

// Turns returns a copy of all recorded turns in order.
func (l *Log) Turns() []agent.Turn {
	l.mu.RLock()
	defer l.mu.RUnlock()

	turns := make([]agent.Turn, len(l.turns))
	copy(turns, l.turns)
	return turns
}

// Last returns the most recent turn, or nil if the log is empty.
func (l *Log) Last() *agent.Turn {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.turns) == 0 {
		return nil
	}
	t := l.turns[len(l.turns)-1]
	return &t
}

// Len returns the number of recorded turns.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.turns)
}

// RunID returns the owning run's identifier.
func (l *Log) RunID() string {
	return l.runID
}

// ToolUsage returns per-tool invocation counts across the log.
func (l *Log) ToolUsage() map[string]int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	usage := make(map[string]int)
	for _, t := range l.turns {
		if t.Action.Type == agent.ActionToolCall && t.Action.ToolCall != nil {
			usage[t.Action.ToolCall.Tool]++
		}
	}
	return usage
}

// ToolsUsed returns the sorted set of tool names invoked during the run.
func (l *Log) ToolsUsed() []string {
	usage := l.ToolUsage()
	names := make([]string, 0, len(usage))
	for name := range usage {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
