package statemachine

import (
	"github.com/felixgeelhaar/statekit"

	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/agent"
)

// TransitionPayload carries the target state and reason with an event.
type TransitionPayload struct {
	ToState agent.RunState
	Reason  string
}

// recordTransition appends the edge to the history and updates the context
// state. Actions receive a pointer to the context, so *Context becomes
// **Context here.
func recordTransition(ctx **Context, event statekit.Event) {
	if ctx == nil || *ctx == nil {
		return
	}
	c := *ctx

	var toState agent.RunState
	var reason string
	if payload, ok := event.Payload.(TransitionPayload); ok {
		toState = payload.ToState
		reason = payload.Reason
	} else {
		toState = stateFromEventType(event.Type)
	}

	c.History = append(c.History, Transition{
		From:   c.State,
		To:     toState,
		Reason: reason,
	})
	c.State = toState
}

// guardHasGoal rejects starting a run with an empty goal.
func guardHasGoal(ctx *Context, _ statekit.Event) bool {
	return ctx != nil && ctx.Goal != ""
}

// stateFromEventType derives the target state from an event type.
func stateFromEventType(eventType statekit.EventType) agent.RunState {
	switch eventType {
	case EventStart:
		return agent.StateRunning
	case EventComplete:
		return agent.StateCompleted
	case EventExhaust:
		return agent.StateBudgetExhausted
	case EventFail:
		return agent.StateFailed
	case EventCancel:
		return agent.StateCancelled
	default:
		return agent.RunState(eventType)
	}
}
