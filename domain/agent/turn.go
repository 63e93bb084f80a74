package agent

import "time"

// Turn records one cycle of the loop: the planner's action and its observation.
// A turn is created by the loop controller, populated by the planner and the
// tool executor, then sealed. Sealed turns are never mutated.
type Turn struct {
	Index       int          `json:"index"`
	Reasoning   string       `json:"reasoning,omitempty"`
	Action      Action       `json:"action"`
	Observation *Observation `json:"observation,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`

	sealed bool
}

// NewTurn creates an open turn with the given index.
func NewTurn(index int) *Turn {
	return &Turn{
		Index:     index,
		Timestamp: time.Now(),
	}
}

// SetAction records the planner's chosen action.
func (t *Turn) SetAction(a Action) error {
	if t.sealed {
		return ErrTurnSealed
	}
	t.Action = a
	if a.Type == ActionToolCall && a.ToolCall != nil {
		t.Reasoning = a.ToolCall.Reason
	}
	return nil
}

// SetObservation records the outcome of the turn's action.
func (t *Turn) SetObservation(o Observation) error {
	if t.sealed {
		return ErrTurnSealed
	}
	t.Observation = &o
	return nil
}

// Seal freezes the turn. Further mutation attempts return ErrTurnSealed.
func (t *Turn) Seal() {
	t.sealed = true
}

// Sealed returns true once the turn is frozen.
func (t *Turn) Sealed() bool {
	return t.sealed
}
