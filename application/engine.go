// Package application provides the application layer for the agent runtime.
package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/agent"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/memory"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/run"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/tool"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/infrastructure/logging"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/infrastructure/planner"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/infrastructure/resilience"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/infrastructure/statemachine"
)

// FailurePolicy controls how the loop reacts to failed tool calls.
type FailurePolicy string

const (
	// FailurePolicyObserve records the failure as an observation and lets
	// the planner decide what to do next. This is the default.
	FailurePolicyObserve FailurePolicy = "observe"

	// FailurePolicyAbort terminates the run on the first failed tool call.
	FailurePolicyAbort FailurePolicy = "abort"
)

// Engine drives the plan-act-observe loop for a goal.
type Engine struct {
	registry      tool.Registry
	planner       planner.Planner
	executor      *resilience.Executor
	memoryPolicy  memory.Policy
	summarizer    memory.Summarizer
	counter       memory.TokenCounter
	maxTurns      int
	failurePolicy FailurePolicy
	journal       run.Journal
	results       run.Store
}

// EngineConfig contains configuration for the engine.
type EngineConfig struct {
	Registry tool.Registry
	Planner  planner.Planner
	Executor *resilience.Executor

	// MemoryPolicy bounds the history the planner sees. Defaults to
	// full history.
	MemoryPolicy memory.Policy

	// Summarizer folds elided turns into a digest under the summarized
	// policy. Defaults to a deterministic headline summarizer.
	Summarizer memory.Summarizer

	// Counter measures prompt text for the summarized policy.
	Counter memory.TokenCounter

	// MaxTurns is the turn budget per run.
	MaxTurns int

	// FailurePolicy controls how failed tool calls are handled.
	FailurePolicy FailurePolicy

	// Journal, when set, persists every sealed turn.
	Journal run.Journal

	// Results, when set, persists the final result of every run.
	Results run.Store
}

// NewEngine creates a new engine with the given configuration.
func NewEngine(config EngineConfig) (*Engine, error) {
	if config.Registry == nil {
		return nil, errors.New("registry is required")
	}
	if config.Planner == nil {
		return nil, errors.New("planner is required")
	}

	e := &Engine{
		registry:      config.Registry,
		planner:       config.Planner,
		executor:      config.Executor,
		memoryPolicy:  config.MemoryPolicy,
		summarizer:    config.Summarizer,
		counter:       config.Counter,
		maxTurns:      config.MaxTurns,
		failurePolicy: config.FailurePolicy,
		journal:       config.Journal,
		results:       config.Results,
	}

	if e.executor == nil {
		e.executor = resilience.NewDefaultExecutor()
	}
	if e.memoryPolicy.Kind == "" {
		e.memoryPolicy = memory.FullHistory()
	}
	if err := e.memoryPolicy.Validate(); err != nil {
		return nil, err
	}
	if e.summarizer == nil {
		e.summarizer = memory.HeadlineSummarizer{}
	}
	if e.maxTurns == 0 {
		e.maxTurns = 20
	}
	if e.maxTurns < 0 {
		return nil, errors.New("max turns must be positive")
	}
	if e.failurePolicy == "" {
		e.failurePolicy = FailurePolicyObserve
	}

	return e, nil
}

// Execute runs the loop for a goal until a terminal state is reached.
// The result is always populated; the returned error is reserved for
// invalid invocations.
func (e *Engine) Execute(ctx context.Context, goal string) (*agent.Result, error) {
	if goal == "" {
		return nil, errors.New("goal is required")
	}

	runID := uuid.NewString()
	result := agent.NewResult(runID, goal)
	log := memory.NewLog(runID)

	machine, err := statemachine.NewRunMachine()
	if err != nil {
		return nil, fmt.Errorf("failed to create state machine: %w", err)
	}
	interp := statemachine.NewInterpreter(machine, statemachine.NewContext(runID, goal))
	interp.Start()
	defer interp.Stop()

	logging.Info().
		Add(logging.RunID(runID)).
		Add(logging.Goal(goal)).
		Msg("run started")

	if err := interp.Transition(agent.StateRunning, "goal accepted"); err != nil {
		return nil, err
	}

	for {
		// Cancellation is honored at turn boundaries only; a turn that
		// already started runs to completion.
		select {
		case <-ctx.Done():
			result.Err = ctx.Err().Error()
			e.finish(ctx, interp, log, result, agent.TerminationCancelled, ctx.Err().Error())
			return result, nil
		default:
		}

		if log.Len() >= e.maxTurns {
			e.finish(ctx, interp, log, result, agent.TerminationBudgetExhausted, "turn budget exhausted")
			return result, nil
		}

		view, err := memory.BuildView(ctx, log, e.memoryPolicy, e.summarizer, e.counter)
		if err != nil {
			result.Err = err.Error()
			e.finish(ctx, interp, log, result, agent.TerminationFailed, "memory view failed")
			return result, nil
		}

		action, err := e.planner.Plan(ctx, planner.PlanRequest{
			RunID:     runID,
			Goal:      goal,
			TurnIndex: log.Len(),
			View:      view,
			Tools:     tool.Describe(e.registry),
		})
		if err != nil {
			// No action was produced, so no turn is recorded.
			result.Err = err.Error()
			logging.Error().
				Add(logging.RunID(runID)).
				Add(logging.TurnIndex(log.Len())).
				Add(logging.ErrorField(err)).
				Msg("planning failed")
			e.finish(ctx, interp, log, result, agent.TerminationFailed, "planning failed")
			return result, nil
		}

		turn := agent.NewTurn(log.Len())
		if err := turn.SetAction(action); err != nil {
			result.Err = err.Error()
			e.finish(ctx, interp, log, result, agent.TerminationFailed, err.Error())
			return result, nil
		}

		switch action.Type {
		case agent.ActionFinalAnswer:
			e.record(ctx, log, runID, turn)
			result.Answer = action.FinalAnswer.Content
			result.Summary = action.FinalAnswer.Summary
			e.finish(ctx, interp, log, result, agent.TerminationCompleted, "final answer")
			return result, nil

		case agent.ActionClarification:
			e.record(ctx, log, runID, turn)
			result.Clarification = action.Clarification.Question
			e.finish(ctx, interp, log, result, agent.TerminationClarification, "clarification requested")
			return result, nil

		case agent.ActionToolCall:
			obs := e.observe(ctx, action.ToolCall)
			if err := turn.SetObservation(obs); err != nil {
				result.Err = err.Error()
				e.finish(ctx, interp, log, result, agent.TerminationFailed, err.Error())
				return result, nil
			}
			e.record(ctx, log, runID, turn)
			result.LastObservation = &obs

			logging.Debug().
				Add(logging.RunID(runID)).
				Add(logging.TurnIndex(turn.Index)).
				Add(logging.ToolName(action.ToolCall.Tool)).
				Add(logging.Duration(obs.Latency)).
				Add(logging.Cached(obs.Cached)).
				Add(logging.Str("status", string(obs.Status))).
				Msg("turn recorded")

			// Only permanent tool failures abort; validation and
			// unknown-tool observations always go back to the planner.
			if obs.FailureIs(agent.FailurePermanent) && e.failurePolicy == FailurePolicyAbort {
				result.Err = obs.Failure.Message
				e.finish(ctx, interp, log, result, agent.TerminationFailed, "permanent tool failure with abort policy")
				return result, nil
			}

		default:
			result.Err = fmt.Sprintf("unknown action type: %s", action.Type)
			e.finish(ctx, interp, log, result, agent.TerminationFailed, result.Err)
			return result, nil
		}
	}
}

// observe validates the call and, if the arguments are sound, executes it.
// Invalid calls never reach the executor; they come back as observations
// the planner can correct from.
func (e *Engine) observe(ctx context.Context, call *agent.ToolCallAction) agent.Observation {
	start := time.Now()

	if err := e.registry.Validate(call.Tool, call.Args); err != nil {
		if errors.Is(err, tool.ErrToolNotFound) {
			return agent.NewFailureObservation(
				agent.FailureUnknownTool,
				fmt.Sprintf("no tool named %q is registered", call.Tool),
				time.Since(start),
			)
		}
		var verr *tool.ValidationError
		if errors.As(err, &verr) {
			return agent.NewValidationObservation(verr.Error(), verr.Messages())
		}
		return agent.NewFailureObservation(agent.FailurePermanent, err.Error(), time.Since(start))
	}

	t, err := e.registry.Resolve(call.Tool)
	if err != nil {
		return agent.NewFailureObservation(agent.FailureUnknownTool, err.Error(), time.Since(start))
	}

	return e.executor.Execute(ctx, t, call.Args)
}

// record seals the turn, appends it to the log, and journals it.
func (e *Engine) record(ctx context.Context, log *memory.Log, runID string, turn *agent.Turn) {
	turn.Seal()
	if err := log.Append(turn); err != nil {
		// Indices are issued by this loop, so ordering violations are
		// programming errors worth surfacing loudly.
		logging.Error().
			Add(logging.RunID(runID)).
			Add(logging.TurnIndex(turn.Index)).
			Add(logging.ErrorField(err)).
			Msg("turn log append rejected")
		return
	}
	if e.journal != nil {
		if err := e.journal.AppendTurn(ctx, runID, *turn); err != nil {
			logging.Error().
				Add(logging.RunID(runID)).
				Add(logging.TurnIndex(turn.Index)).
				Add(logging.ErrorField(err)).
				Msg("turn journal append failed")
		}
	}
}

// finish stamps the result, drives the state machine to its terminal
// state, and persists the result when a store is configured.
func (e *Engine) finish(ctx context.Context, interp *statemachine.Interpreter, log *memory.Log, result *agent.Result, reason agent.TerminationReason, detail string) {
	result.Turns = log.Len()
	result.Transcript = log.Turns()
	result.Finish(reason)

	target := stateForReason(reason)
	if err := interp.Transition(target, detail); err != nil {
		logging.Error().
			Add(logging.RunID(result.RunID)).
			Add(logging.ToState(target)).
			Add(logging.ErrorField(err)).
			Msg("terminal transition rejected")
	}

	logging.Info().
		Add(logging.RunID(result.RunID)).
		Add(logging.Termination(reason)).
		Add(logging.Count("turns", result.Turns)).
		Add(logging.Duration(result.Duration())).
		Msg("run finished")

	if e.results != nil {
		// The run's context may already be cancelled; the result is
		// still worth persisting.
		if err := e.results.Save(context.WithoutCancel(ctx), result); err != nil {
			logging.Error().
				Add(logging.RunID(result.RunID)).
				Add(logging.ErrorField(err)).
				Msg("result save failed")
		}
	}
}

// stateForReason maps a termination reason to the machine's terminal state.
func stateForReason(reason agent.TerminationReason) agent.RunState {
	switch reason {
	case agent.TerminationCompleted, agent.TerminationClarification:
		return agent.StateCompleted
	case agent.TerminationBudgetExhausted:
		return agent.StateBudgetExhausted
	case agent.TerminationCancelled:
		return agent.StateCancelled
	default:
		return agent.StateFailed
	}
}

// Stats exposes the executor counters for inspection.
func (e *Engine) Stats() resilience.Stats {
	return e.executor.Stats()
}
