package resilience_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/agent"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/tool"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/infrastructure/resilience"
	storage "github.com/ShivanshDubey1704/agentic-ai-assistant/infrastructure/storage/memory"
)

// fastConfig keeps retries quick so tests do not sleep through backoff.
func fastConfig() resilience.ExecutorConfig {
	cfg := resilience.DefaultExecutorConfig()
	cfg.RetryInitialDelay = time.Millisecond
	cfg.RetryBackoffMultiplier = 1.0
	return cfg
}

func buildTool(t *testing.T, name string, handler tool.Handler, opts ...func(*tool.Builder)) tool.Tool {
	t.Helper()

	b := tool.NewBuilder(name).WithHandler(handler)
	for _, opt := range opts {
		opt(b)
	}
	built, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return built
}

func TestExecutor_Success(t *testing.T) {
	t.Parallel()

	exec := resilience.NewExecutor(fastConfig())
	echo := buildTool(t, "echo", func(_ context.Context, args json.RawMessage) (json.RawMessage, error) {
		return args, nil
	})

	obs := exec.Execute(context.Background(), echo, json.RawMessage(`{"msg":"hi"}`))
	if obs.IsFailure() {
		t.Fatalf("Execute() failed: %+v", obs.Failure)
	}
	if string(obs.Payload) != `{"msg":"hi"}` {
		t.Errorf("Payload = %s, want the echoed args", obs.Payload)
	}
	if obs.Cached {
		t.Error("Cached = true, want false without a cache")
	}

	stats := exec.Stats()
	if stats.Executions != 1 || stats.Successes != 1 || stats.Failures != 0 {
		t.Errorf("Stats() = %+v, want 1 execution, 1 success", stats)
	}
}

func TestExecutor_RetriesTransientFailure(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	flaky := buildTool(t, "flaky", func(_ context.Context, _ json.RawMessage) (json.RawMessage, error) {
		if calls.Add(1) < 3 {
			return nil, errors.New("connection reset")
		}
		return json.RawMessage(`"ok"`), nil
	})

	exec := resilience.NewExecutor(fastConfig())
	obs := exec.Execute(context.Background(), flaky, json.RawMessage(`{}`))

	if obs.IsFailure() {
		t.Fatalf("Execute() failed after retries: %+v", obs.Failure)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("handler calls = %d, want 3 (two retries)", got)
	}
}

func TestExecutor_RetriesExhausted(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	broken := buildTool(t, "broken", func(_ context.Context, _ json.RawMessage) (json.RawMessage, error) {
		calls.Add(1)
		return nil, errors.New("connection reset")
	})

	exec := resilience.NewExecutor(fastConfig())
	obs := exec.Execute(context.Background(), broken, json.RawMessage(`{}`))

	if !obs.IsFailure() {
		t.Fatal("Execute() succeeded, want failure")
	}
	if obs.Failure.Kind != agent.FailureRetriesExhausted {
		t.Errorf("Failure.Kind = %v, want retries_exhausted", obs.Failure.Kind)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("handler calls = %d, want 3 (initial plus two retries)", got)
	}
}

func TestExecutor_PermanentFailureNotRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	rejecting := buildTool(t, "rejecting", func(_ context.Context, _ json.RawMessage) (json.RawMessage, error) {
		calls.Add(1)
		return nil, tool.Permanent(errors.New("path outside sandbox"))
	})

	exec := resilience.NewExecutor(fastConfig())
	obs := exec.Execute(context.Background(), rejecting, json.RawMessage(`{}`))

	if !obs.IsFailure() {
		t.Fatal("Execute() succeeded, want failure")
	}
	if obs.Failure.Kind != agent.FailurePermanent {
		t.Errorf("Failure.Kind = %v, want permanent", obs.Failure.Kind)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("handler calls = %d, want 1 (no retries for permanent failures)", got)
	}
}

func TestExecutor_Timeout(t *testing.T) {
	t.Parallel()

	slow := buildTool(t, "slow", func(ctx context.Context, _ json.RawMessage) (json.RawMessage, error) {
		select {
		case <-time.After(5 * time.Second):
			return json.RawMessage(`"late"`), nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})

	cfg := fastConfig()
	cfg.DefaultTimeout = 20 * time.Millisecond
	cfg.MaxRetries = 0
	exec := resilience.NewExecutor(cfg)

	obs := exec.Execute(context.Background(), slow, json.RawMessage(`{}`))
	if !obs.IsFailure() {
		t.Fatal("Execute() succeeded, want timeout failure")
	}
	if obs.Failure.Kind != agent.FailureTimedOut {
		t.Errorf("Failure.Kind = %v, want timed_out", obs.Failure.Kind)
	}
}

func TestExecutor_ZeroRetriesClassifiesTransient(t *testing.T) {
	t.Parallel()

	failing := buildTool(t, "failing", func(_ context.Context, _ json.RawMessage) (json.RawMessage, error) {
		return nil, errors.New("connection reset")
	})

	cfg := fastConfig()
	cfg.MaxRetries = 0
	exec := resilience.NewExecutor(cfg)

	obs := exec.Execute(context.Background(), failing, json.RawMessage(`{}`))
	if !obs.IsFailure() {
		t.Fatal("Execute() succeeded, want failure")
	}
	if obs.Failure.Kind != agent.FailureTransient {
		t.Errorf("Failure.Kind = %v, want transient when retries are disabled", obs.Failure.Kind)
	}
}

func TestExecutor_CacheHit(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	cacheable := buildTool(t, "cacheable",
		func(_ context.Context, _ json.RawMessage) (json.RawMessage, error) {
			calls.Add(1)
			return json.RawMessage(`"computed"`), nil
		},
		func(b *tool.Builder) { b.ReadOnly().Cacheable() },
	)

	cfg := fastConfig()
	cfg.Cache = storage.NewCache()
	exec := resilience.NewExecutor(cfg)

	args := json.RawMessage(`{"q":"x"}`)
	first := exec.Execute(context.Background(), cacheable, args)
	if first.IsFailure() || first.Cached {
		t.Fatalf("first Execute() = %+v, want uncached success", first)
	}

	second := exec.Execute(context.Background(), cacheable, args)
	if second.IsFailure() {
		t.Fatalf("second Execute() failed: %+v", second.Failure)
	}
	if !second.Cached {
		t.Error("second Execute() Cached = false, want cache hit")
	}
	if string(second.Payload) != `"computed"` {
		t.Errorf("cached Payload = %s, want %q", second.Payload, `"computed"`)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("handler calls = %d, want 1", got)
	}

	// Different args miss the cache.
	third := exec.Execute(context.Background(), cacheable, json.RawMessage(`{"q":"y"}`))
	if third.Cached {
		t.Error("third Execute() with different args should miss the cache")
	}

	stats := exec.Stats()
	if stats.CacheHits != 1 {
		t.Errorf("Stats().CacheHits = %d, want 1", stats.CacheHits)
	}
}

func TestExecutor_NonCacheableToolSkipsCache(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	mutating := buildTool(t, "mutating", func(_ context.Context, _ json.RawMessage) (json.RawMessage, error) {
		calls.Add(1)
		return json.RawMessage(`"done"`), nil
	})

	cfg := fastConfig()
	cfg.Cache = storage.NewCache()
	exec := resilience.NewExecutor(cfg)

	args := json.RawMessage(`{}`)
	exec.Execute(context.Background(), mutating, args)
	obs := exec.Execute(context.Background(), mutating, args)

	if obs.Cached {
		t.Error("Cached = true for a tool without cache annotations")
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("handler calls = %d, want 2", got)
	}
}
