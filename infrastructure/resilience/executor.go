// Package resilience provides resilient tool execution using fortify.
package resilience

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/felixgeelhaar/fortify/bulkhead"
	"github.com/felixgeelhaar/fortify/circuitbreaker"
	"github.com/felixgeelhaar/fortify/retry"

	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/agent"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/cache"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/tool"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/infrastructure/logging"
)

// Executor runs tools behind bulkhead, circuit breaker, and retry patterns
// and reports every outcome as an observation. Tool failures never escape
// this boundary as errors; they come back classified so the planner can
// react to them.
type Executor struct {
	bulkhead   bulkhead.Bulkhead[json.RawMessage]
	breaker    circuitbreaker.CircuitBreaker[json.RawMessage]
	retry      retry.Retry[json.RawMessage]
	timeout    time.Duration
	maxRetries int
	cache      cache.Cache
	cacheTTL   time.Duration

	stats statsCounters
}

type statsCounters struct {
	executions atomic.Int64
	successes  atomic.Int64
	failures   atomic.Int64
	cacheHits  atomic.Int64
}

// Stats is a point-in-time snapshot of executor counters.
type Stats struct {
	Executions int64
	Successes  int64
	Failures   int64
	CacheHits  int64
}

// ExecutorConfig configures the resilient executor.
type ExecutorConfig struct {
	// MaxConcurrent limits concurrent tool executions.
	MaxConcurrent int

	// CircuitBreakerThreshold is the number of consecutive failures before opening.
	CircuitBreakerThreshold int

	// CircuitBreakerTimeout is how long the circuit stays open.
	CircuitBreakerTimeout time.Duration

	// MaxRetries is the number of additional attempts after a transient failure.
	MaxRetries int

	// RetryInitialDelay is the initial delay between retries.
	RetryInitialDelay time.Duration

	// RetryBackoffMultiplier is the exponential backoff multiplier.
	RetryBackoffMultiplier float64

	// DefaultTimeout applies to tools that declare no timeout of their own.
	DefaultTimeout time.Duration

	// Cache holds results of cacheable tools. Nil disables caching.
	Cache cache.Cache

	// CacheTTL bounds how long cached results live. Zero means no expiry.
	CacheTTL time.Duration
}

// DefaultExecutorConfig returns a configuration with sensible defaults.
func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{
		MaxConcurrent:           10,
		CircuitBreakerThreshold: 5,
		CircuitBreakerTimeout:   30 * time.Second,
		MaxRetries:              2,
		RetryInitialDelay:       100 * time.Millisecond,
		RetryBackoffMultiplier:  2.0,
		DefaultTimeout:          30 * time.Second,
	}
}

// NewExecutor creates a new resilient executor.
func NewExecutor(config ExecutorConfig) *Executor {
	maxConcurrent := config.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}
	threshold := config.CircuitBreakerThreshold
	if threshold <= 0 {
		threshold = 5
	}
	maxRetries := config.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Executor{
		bulkhead: bulkhead.New[json.RawMessage](bulkhead.Config{
			MaxConcurrent: maxConcurrent,
		}),
		breaker: circuitbreaker.New[json.RawMessage](circuitbreaker.Config{
			MaxRequests: uint32(maxConcurrent), // #nosec G115 -- bounds checked above
			Interval:    config.CircuitBreakerTimeout,
			Timeout:     config.CircuitBreakerTimeout,
			ReadyToTrip: func(counts circuitbreaker.Counts) bool {
				return counts.ConsecutiveFailures >= uint32(threshold) // #nosec G115 -- bounds checked above
			},
		}),
		retry: retry.New[json.RawMessage](retry.Config{
			MaxAttempts:   maxRetries + 1,
			InitialDelay:  config.RetryInitialDelay,
			BackoffPolicy: retry.BackoffExponential,
			Multiplier:    config.RetryBackoffMultiplier,
			NonRetryableErrors: []error{
				tool.ErrPermanent,
				context.Canceled,
				context.DeadlineExceeded,
			},
		}),
		timeout:    config.DefaultTimeout,
		maxRetries: maxRetries,
		cache:      config.Cache,
		cacheTTL:   config.CacheTTL,
	}
}

// NewDefaultExecutor creates an executor with default configuration.
func NewDefaultExecutor() *Executor {
	return NewExecutor(DefaultExecutorConfig())
}

// Execute runs a tool and returns the outcome as an observation.
// Composition order: cache -> bulkhead -> timeout -> circuit breaker -> retry.
func (e *Executor) Execute(ctx context.Context, t tool.Tool, args json.RawMessage) agent.Observation {
	start := time.Now()
	e.stats.executions.Add(1)

	cacheable := e.cache != nil && t.Annotations().CanCache()
	key := cacheKey(t.Name(), args)

	if cacheable {
		if payload, ok, err := e.cache.Get(ctx, key); err == nil && ok {
			e.stats.cacheHits.Add(1)
			e.stats.successes.Add(1)
			obs := agent.NewSuccessObservation(payload, time.Since(start))
			obs.Cached = true
			return obs
		}
	}

	payload, err := e.bulkhead.Execute(ctx, func(ctx context.Context) (json.RawMessage, error) {
		timeout := e.timeout
		if s := t.Annotations().Timeout; s > 0 {
			timeout = time.Duration(s) * time.Second
		}
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		return e.breaker.Execute(ctx, func(ctx context.Context) (json.RawMessage, error) {
			return e.retry.Do(ctx, func(ctx context.Context) (json.RawMessage, error) {
				return t.Invoke(ctx, args)
			})
		})
	})

	latency := time.Since(start)
	if err != nil {
		e.stats.failures.Add(1)
		obs := e.classifyFailure(t.Name(), err, latency)
		logging.Debug().
			Add(logging.ToolName(t.Name())).
			Add(logging.FailureKind(obs.Failure.Kind)).
			Add(logging.Duration(latency)).
			Add(logging.ErrorField(err)).
			Msg("tool execution failed")
		return obs
	}

	e.stats.successes.Add(1)
	if cacheable {
		if err := e.cache.Set(ctx, key, payload, cache.SetOptions{TTL: e.cacheTTL}); err != nil {
			logging.Debug().
				Add(logging.ToolName(t.Name())).
				Add(logging.ErrorField(err)).
				Msg("cache write failed")
		}
	}
	return agent.NewSuccessObservation(payload, latency)
}

// classifyFailure maps an execution error to a failure kind the planner
// can act on.
func (e *Executor) classifyFailure(name string, err error, latency time.Duration) agent.Observation {
	kind := agent.FailureRetriesExhausted
	if e.maxRetries == 0 {
		kind = agent.FailureTransient
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = agent.FailureTimedOut
	case errors.Is(err, context.Canceled):
		kind = agent.FailureTransient
	case tool.IsPermanent(err):
		kind = agent.FailurePermanent
	}
	return agent.NewFailureObservation(kind, fmt.Sprintf("%s: %s", name, err.Error()), latency)
}

// CircuitBreakerState returns the current state of the circuit breaker.
func (e *Executor) CircuitBreakerState() circuitbreaker.State {
	return e.breaker.State()
}

// Stats returns a snapshot of the executor counters.
func (e *Executor) Stats() Stats {
	return Stats{
		Executions: e.stats.executions.Load(),
		Successes:  e.stats.successes.Load(),
		Failures:   e.stats.failures.Load(),
		CacheHits:  e.stats.cacheHits.Load(),
	}
}

// cacheKey derives a stable cache key from the tool name and the exact
// argument bytes.
func cacheKey(name string, args json.RawMessage) string {
	sum := sha256.Sum256(args)
	return name + ":" + hex.EncodeToString(sum[:])
}
