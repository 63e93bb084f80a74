// Package api provides the public API for the assistant runtime.
//
// The runtime executes goals through an iterative loop: a planner decides
// the next action, tools are executed with resilience policies, and every
// turn is recorded in an append-only log that feeds back into planning.
//
// # Quick Start
//
// Create a minimal assistant with a tool and a scripted planner:
//
//	// 1. Create a tool
//	echoTool := api.NewToolBuilder("echo").
//	    WithDescription("Echoes input").
//	    ReadOnly().
//	    WithHandler(func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
//	        return args, nil
//	    }).
//	    MustBuild()
//
//	// 2. Create a planner
//	planner := api.NewScriptedPlanner(
//	    api.ScriptStep{ExpectTurn: 0, Action: api.NewToolCallAction("echo", input, "echo the input")},
//	    api.ScriptStep{ExpectTurn: 1, Action: api.NewFinalAnswerAction(result, "done")},
//	)
//
//	// 3. Create and run the engine
//	engine, _ := api.New(
//	    api.WithTool(echoTool),
//	    api.WithPlanner(planner),
//	)
//	result, _ := engine.Execute(ctx, "Echo a message")
//
// # Termination
//
// Every run ends with exactly one reason:
//
//   - TerminationCompleted: the planner produced a final answer
//   - TerminationBudgetExhausted: the turn budget was spent
//   - TerminationFailed: planning failed, or a tool failure aborted the run
//   - TerminationCancelled: the caller cancelled the context
//   - TerminationClarification: the planner asked the caller a question
//
// # Tools
//
// Tools are capabilities the planner can invoke. Annotations describe
// their behavior: ReadOnly, Idempotent, Cacheable, and a per-tool Timeout.
// Arguments are validated against the tool's JSON schema before execution;
// a validation failure becomes an observation, never an executor call.
//
// # Planners
//
//   - ScriptedPlanner: predefined sequence for deterministic testing
//   - MockPlanner: returns specific actions for testing
//   - LLMPlanner: delegates decisions to an LLM provider
package api

import (
	"context"

	"github.com/ShivanshDubey1704/agentic-ai-assistant/application"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/agent"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/memory"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/pack"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/run"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/tool"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/infrastructure/planner"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/infrastructure/resilience"
	storagememory "github.com/ShivanshDubey1704/agentic-ai-assistant/infrastructure/storage/memory"
)

// Re-export core types for convenience.
type (
	// Result is the final output of a run.
	Result = agent.Result

	// Turn is one iteration of the loop: an action and its observation.
	Turn = agent.Turn

	// Action is the planner's output.
	Action = agent.Action

	// Observation is the recorded outcome of a turn's action.
	Observation = agent.Observation

	// TerminationReason explains why a run ended.
	TerminationReason = agent.TerminationReason

	// RunState is a phase in the run lifecycle.
	RunState = agent.RunState

	// Tool is a registered capability the planner can invoke.
	Tool = tool.Tool

	// Annotations describe tool behavior.
	Annotations = tool.Annotations

	// Schema is a JSON Schema used for argument validation.
	Schema = tool.Schema
)

// Re-export termination reasons.
const (
	TerminationCompleted       = agent.TerminationCompleted
	TerminationBudgetExhausted = agent.TerminationBudgetExhausted
	TerminationFailed          = agent.TerminationFailed
	TerminationCancelled       = agent.TerminationCancelled
	TerminationClarification   = agent.TerminationClarification
)

// Re-export run states.
const (
	StateIdle            = agent.StateIdle
	StateRunning         = agent.StateRunning
	StateCompleted       = agent.StateCompleted
	StateBudgetExhausted = agent.StateBudgetExhausted
	StateFailed          = agent.StateFailed
	StateCancelled       = agent.StateCancelled
)

// Re-export failure kinds.
const (
	FailureTransient        = agent.FailureTransient
	FailurePermanent        = agent.FailurePermanent
	FailureTimedOut         = agent.FailureTimedOut
	FailureRetriesExhausted = agent.FailureRetriesExhausted
	FailureSchemaValidation = agent.FailureSchemaValidation
	FailureUnknownTool      = agent.FailureUnknownTool
)

// Re-export failure policies.
const (
	FailurePolicyObserve = application.FailurePolicyObserve
	FailurePolicyAbort   = application.FailurePolicyAbort
)

// Engine is the main runtime for goal execution.
type Engine struct {
	engine *application.Engine
}

// New creates a new Engine with the provided options.
func New(opts ...Option) (*Engine, error) {
	config := &engineConfig{
		registry: storagememory.NewToolRegistry(),
	}

	for _, opt := range opts {
		opt(config)
	}

	appConfig := application.EngineConfig{
		Registry:      config.registry,
		Planner:       config.planner,
		Executor:      config.executor,
		MemoryPolicy:  config.memoryPolicy,
		Summarizer:    config.summarizer,
		Counter:       config.counter,
		MaxTurns:      config.maxTurns,
		FailurePolicy: config.failurePolicy,
		Journal:       config.journal,
		Results:       config.results,
	}

	engine, err := application.NewEngine(appConfig)
	if err != nil {
		return nil, err
	}

	return &Engine{engine: engine}, nil
}

// Execute runs the loop until a terminal outcome for the given goal.
// The returned Result is populated for every terminal reason, including
// failures; a non-nil error means the engine could not start at all.
func (e *Engine) Execute(ctx context.Context, goal string) (*Result, error) {
	return e.engine.Execute(ctx, goal)
}

// Stats reports execution counters from the underlying tool executor.
func (e *Engine) Stats() resilience.Stats {
	return e.engine.Stats()
}

// engineConfig holds configuration for engine creation.
type engineConfig struct {
	registry      tool.Registry
	planner       planner.Planner
	executor      *resilience.Executor
	memoryPolicy  memory.Policy
	summarizer    memory.Summarizer
	counter       memory.TokenCounter
	maxTurns      int
	failurePolicy application.FailurePolicy
	journal       run.Journal
	results       run.Store
}

// Option configures the Engine.
type Option func(*engineConfig)

// WithRegistry sets the tool registry.
func WithRegistry(r tool.Registry) Option {
	return func(c *engineConfig) {
		c.registry = r
	}
}

// WithTool registers a tool with the engine's registry.
// Can be called multiple times. Duplicate names are silently ignored;
// use WithRegistry for full control over registration errors.
func WithTool(t tool.Tool) Option {
	return func(c *engineConfig) {
		_ = c.registry.Register(t)
	}
}

// WithPlanner sets the planner.
func WithPlanner(p planner.Planner) Option {
	return func(c *engineConfig) {
		c.planner = p
	}
}

// WithExecutor sets the resilient tool executor.
func WithExecutor(e *resilience.Executor) Option {
	return func(c *engineConfig) {
		c.executor = e
	}
}

// WithMemoryPolicy sets how prior turns are presented to the planner.
func WithMemoryPolicy(p memory.Policy) Option {
	return func(c *engineConfig) {
		c.memoryPolicy = p
	}
}

// WithSummarizer sets the summarizer used by the summarized memory policy.
func WithSummarizer(s memory.Summarizer) Option {
	return func(c *engineConfig) {
		c.summarizer = s
	}
}

// WithTokenCounter sets the counter used for memory budget accounting.
func WithTokenCounter(tc memory.TokenCounter) Option {
	return func(c *engineConfig) {
		c.counter = tc
	}
}

// WithMaxTurns sets the turn budget per run.
func WithMaxTurns(n int) Option {
	return func(c *engineConfig) {
		c.maxTurns = n
	}
}

// WithFailurePolicy sets how tool failures are handled.
func WithFailurePolicy(p application.FailurePolicy) Option {
	return func(c *engineConfig) {
		c.failurePolicy = p
	}
}

// WithJournal sets the turn journal for durable per-turn persistence.
func WithJournal(j run.Journal) Option {
	return func(c *engineConfig) {
		c.journal = j
	}
}

// WithResultStore sets the store that terminal results are saved to.
func WithResultStore(s run.Store) Option {
	return func(c *engineConfig) {
		c.results = s
	}
}

// WithPack installs every tool from a pack into the engine's registry.
// Conflicting names are silently ignored.
func WithPack(p *pack.Pack) Option {
	return func(c *engineConfig) {
		for _, t := range p.Tools {
			_ = c.registry.Register(t)
		}
	}
}
