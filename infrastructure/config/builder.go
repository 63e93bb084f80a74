package config

import (
	"fmt"

	"github.com/ShivanshDubey1704/agentic-ai-assistant/application"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/cache"
	domainconfig "github.com/ShivanshDubey1704/agentic-ai-assistant/domain/config"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/memory"
	domainpack "github.com/ShivanshDubey1704/agentic-ai-assistant/domain/pack"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/tool"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/infrastructure/logging"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/infrastructure/planner"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/infrastructure/resilience"
	storagememory "github.com/ShivanshDubey1704/agentic-ai-assistant/infrastructure/storage/memory"
	storageredis "github.com/ShivanshDubey1704/agentic-ai-assistant/infrastructure/storage/redis"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/infrastructure/storage/sqlite"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/infrastructure/tokenizer"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/pack/calc"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/pack/clock"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/pack/fileops"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/pack/weather"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/pack/web"
)

// Builder builds the engine and its collaborators from configuration.
type Builder struct {
	config *domainconfig.AssistantConfig
}

// NewBuilder creates a new configuration builder.
func NewBuilder(config *domainconfig.AssistantConfig) *Builder {
	return &Builder{config: config}
}

// BuildResult contains the built components.
type BuildResult struct {
	// Engine is the fully wired execution engine.
	Engine *application.Engine
	// Registry holds the tools installed from configured packs.
	Registry tool.Registry
	// Cleanup releases resources held by storage backends. Safe to call
	// even when nothing was opened.
	Cleanup func() error
}

// Build wires the engine from configuration. The caller owns Cleanup.
func (b *Builder) Build() (*BuildResult, error) {
	cfg := b.config

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	registry, err := b.BuildRegistry()
	if err != nil {
		return nil, err
	}

	memPolicy, counter, err := b.buildMemory()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainconfig.ErrBuildFailed, err)
	}

	pl, summarizer, err := b.buildPlanner()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainconfig.ErrBuildFailed, err)
	}

	executor, err := b.buildExecutor()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainconfig.ErrBuildFailed, err)
	}

	engineConfig := application.EngineConfig{
		Registry:      registry,
		Planner:       pl,
		Executor:      executor,
		MemoryPolicy:  memPolicy,
		Summarizer:    summarizer,
		Counter:       counter,
		MaxTurns:      cfg.Agent.MaxTurns,
		FailurePolicy: application.FailurePolicy(cfg.Agent.FailurePolicy),
	}

	cleanup := func() error { return nil }
	if cfg.Storage.SQLite.Enabled {
		journal, store, closeFn, err := b.buildSQLite()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domainconfig.ErrBuildFailed, err)
		}
		engineConfig.Journal = journal
		engineConfig.Results = store
		cleanup = closeFn
	}

	engine, err := application.NewEngine(engineConfig)
	if err != nil {
		_ = cleanup()
		return nil, fmt.Errorf("%w: %v", domainconfig.ErrBuildFailed, err)
	}

	return &BuildResult{
		Engine:   engine,
		Registry: registry,
		Cleanup:  cleanup,
	}, nil
}

// BuildRegistry creates a registry with the configured packs installed.
// Useful on its own for inspecting the tool surface without wiring a
// planner or storage.
func (b *Builder) BuildRegistry() (tool.Registry, error) {
	registry := storagememory.NewToolRegistry()
	if err := b.installPacks(registry); err != nil {
		return nil, fmt.Errorf("%w: %v", domainconfig.ErrBuildFailed, err)
	}
	return registry, nil
}

func (b *Builder) installPacks(registry tool.Registry) error {
	for _, pc := range b.config.Packs {
		var p *domainpack.Pack
		switch pc.Name {
		case "calc":
			p = calc.New()
		case "clock":
			p = clock.New()
		case "fileops":
			root := stringOption(pc.Config, "root")
			if root == "" {
				root = "."
			}
			p = fileops.New(root)
		case "web":
			p = web.New(web.Config{
				APIKey:     stringOption(pc.Config, "api_key"),
				MaxResults: intOption(pc.Config, "max_results"),
			})
		case "weather":
			p = weather.New(weather.Config{
				BaseURL: stringOption(pc.Config, "base_url"),
			})
		default:
			return fmt.Errorf("unknown pack: %s", pc.Name)
		}

		if err := p.Install(registry); err != nil {
			return fmt.Errorf("installing pack %s: %w", pc.Name, err)
		}
	}
	return nil
}

func (b *Builder) buildMemory() (memory.Policy, memory.TokenCounter, error) {
	mc := b.config.Memory

	var policy memory.Policy
	switch mc.Policy {
	case "", "full_history":
		policy = memory.FullHistory()
	case "sliding_window":
		policy = memory.SlidingWindow(mc.Window)
	case "summarized":
		policy = memory.Summarized(mc.TokenBudget)
	default:
		return memory.Policy{}, nil, fmt.Errorf("unknown memory policy: %s", mc.Policy)
	}

	// Token accounting only matters for the summarized policy. The
	// tiktoken encoding downloads lazily, so skip it otherwise.
	if policy.Kind != memory.PolicySummarized {
		return policy, nil, nil
	}

	encoding := mc.Encoding
	if encoding == "" {
		encoding = tokenizer.DefaultEncoding
	}
	counter, err := tokenizer.New(encoding)
	if err != nil {
		return memory.Policy{}, nil, fmt.Errorf("loading tokenizer %s: %w", encoding, err)
	}
	return policy, counter, nil
}

func (b *Builder) buildPlanner() (planner.Planner, memory.Summarizer, error) {
	pc := b.config.Planner

	switch pc.Provider {
	case "", "openai":
		provider := planner.NewOpenAIProvider(planner.OpenAIConfig{
			APIKey:  pc.APIKey,
			BaseURL: pc.BaseURL,
			Model:   pc.Model,
			Timeout: int(pc.Timeout.Duration().Seconds()),
		})
		pl := planner.NewLLMPlanner(planner.LLMPlannerConfig{
			Provider:     provider,
			Model:        pc.Model,
			Temperature:  float64(pc.Temperature),
			MaxTokens:    pc.MaxTokens,
			MaxReprompts: pc.MaxReprompts,
		})
		summarizer := planner.NewLLMSummarizer(provider, pc.Model, 0)
		return pl, summarizer, nil
	case "mock":
		return planner.NewMockPlanner(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown planner provider: %s", pc.Provider)
	}
}

func (b *Builder) buildExecutor() (*resilience.Executor, error) {
	rc := b.config.Resilience
	ec := resilience.DefaultExecutorConfig()

	if rc.Bulkhead.MaxConcurrent > 0 {
		ec.MaxConcurrent = rc.Bulkhead.MaxConcurrent
	}
	if rc.CircuitBreaker.Threshold > 0 {
		ec.CircuitBreakerThreshold = rc.CircuitBreaker.Threshold
	}
	if rc.CircuitBreaker.Timeout > 0 {
		ec.CircuitBreakerTimeout = rc.CircuitBreaker.Timeout.Duration()
	}
	if rc.Retry.MaxRetries > 0 {
		ec.MaxRetries = rc.Retry.MaxRetries
	}
	if rc.Retry.InitialDelay > 0 {
		ec.RetryInitialDelay = rc.Retry.InitialDelay.Duration()
	}
	if rc.Retry.Multiplier > 0 {
		ec.RetryBackoffMultiplier = rc.Retry.Multiplier
	}
	if rc.Timeout > 0 {
		ec.DefaultTimeout = rc.Timeout.Duration()
	}

	if rc.Cache.Enabled {
		store, err := b.buildCache()
		if err != nil {
			return nil, err
		}
		ec.Cache = store
		if rc.Cache.TTL > 0 {
			ec.CacheTTL = rc.Cache.TTL.Duration()
		}
	}

	return resilience.NewExecutor(ec), nil
}

func (b *Builder) buildCache() (cache.Cache, error) {
	cc := b.config.Resilience.Cache

	switch cc.Backend {
	case "", "memory":
		var opts []storagememory.CacheOption
		if cc.MaxSize > 0 {
			opts = append(opts, storagememory.WithMaxSize(cc.MaxSize))
		}
		return storagememory.NewCache(opts...), nil
	case "redis":
		rcfg := storageredis.DefaultConfig()
		rcfg.Address = cc.Redis.Addr
		rcfg.Password = cc.Redis.Password
		rcfg.DB = cc.Redis.DB
		if cc.Redis.KeyPrefix != "" {
			rcfg.KeyPrefix = cc.Redis.KeyPrefix
		}
		return storageredis.NewCache(rcfg)
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cc.Backend)
	}
}

func (b *Builder) buildSQLite() (*sqlite.Journal, *sqlite.RunStore, func() error, error) {
	scfg := sqlite.DefaultConfig()
	if path := b.config.Storage.SQLite.Path; path != "" {
		scfg.DSN = fmt.Sprintf("file:%s?cache=shared&mode=rwc", path)
	}

	journal, err := sqlite.NewJournal(scfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening journal: %w", err)
	}
	store, err := sqlite.NewRunStore(scfg)
	if err != nil {
		_ = journal.Close()
		return nil, nil, nil, fmt.Errorf("opening run store: %w", err)
	}

	cleanup := func() error {
		jerr := journal.Close()
		serr := store.Close()
		if jerr != nil {
			return jerr
		}
		return serr
	}
	return journal, store, cleanup, nil
}

func stringOption(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func intOption(m map[string]any, key string) int {
	switch n := m[key].(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
