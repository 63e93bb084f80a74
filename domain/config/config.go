// Package config provides domain models for assistant configuration.
package config

import "time"

// AssistantConfig represents the complete assistant configuration.
type AssistantConfig struct {
	// Name is a human-readable name for this configuration.
	Name string `json:"name" yaml:"name"`
	// Version is the configuration schema version.
	Version string `json:"version" yaml:"version"`
	// Description describes the assistant's purpose.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Agent contains core loop settings.
	Agent AgentSettings `json:"agent" yaml:"agent"`
	// Memory controls how prior turns are presented to the planner.
	Memory MemoryConfig `json:"memory,omitempty" yaml:"memory,omitempty"`
	// Planner configures the decision backend.
	Planner PlannerConfig `json:"planner,omitempty" yaml:"planner,omitempty"`
	// Resilience contains tool execution resilience settings.
	Resilience ResilienceConfig `json:"resilience,omitempty" yaml:"resilience,omitempty"`
	// Storage configures run persistence.
	Storage StorageConfig `json:"storage,omitempty" yaml:"storage,omitempty"`
	// Packs is a list of tool packs to load.
	Packs []PackConfig `json:"packs,omitempty" yaml:"packs,omitempty"`
	// Logging configures structured logging.
	Logging LoggingConfig `json:"logging,omitempty" yaml:"logging,omitempty"`
}

// AgentSettings contains core loop behavior settings.
type AgentSettings struct {
	// MaxTurns is the turn budget per run.
	MaxTurns int `json:"max_turns,omitempty" yaml:"max_turns,omitempty"`
	// FailurePolicy is how tool failures are handled (observe, abort).
	FailurePolicy string `json:"failure_policy,omitempty" yaml:"failure_policy,omitempty"`
}

// MemoryConfig controls context presentation.
type MemoryConfig struct {
	// Policy selects the strategy (full_history, sliding_window, summarized).
	Policy string `json:"policy,omitempty" yaml:"policy,omitempty"`
	// Window is the verbatim turn count for sliding_window.
	Window int `json:"window,omitempty" yaml:"window,omitempty"`
	// TokenBudget is the budget for summarized.
	TokenBudget int `json:"token_budget,omitempty" yaml:"token_budget,omitempty"`
	// Encoding is the tokenizer encoding used for budget accounting.
	Encoding string `json:"encoding,omitempty" yaml:"encoding,omitempty"`
}

// PlannerConfig configures the decision backend.
type PlannerConfig struct {
	// Provider selects the backend (openai, mock).
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty"`
	// Model is the model identifier.
	Model string `json:"model,omitempty" yaml:"model,omitempty"`
	// APIKey is the provider credential. Supports ${VAR} expansion.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	// BaseURL overrides the provider endpoint.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	// Temperature is the sampling temperature.
	Temperature float32 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	// MaxTokens caps completion length.
	MaxTokens int `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`
	// MaxReprompts is how many malformed replies to correct before failing.
	MaxReprompts int `json:"max_reprompts,omitempty" yaml:"max_reprompts,omitempty"`
	// Timeout bounds a single completion request.
	Timeout Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// ResilienceConfig contains tool execution resilience settings.
type ResilienceConfig struct {
	// Timeout is the default tool timeout.
	Timeout Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	// Retry configures retry behavior.
	Retry RetryConfig `json:"retry,omitempty" yaml:"retry,omitempty"`
	// CircuitBreaker configures circuit breaker behavior.
	CircuitBreaker CircuitBreakerConfig `json:"circuit_breaker,omitempty" yaml:"circuit_breaker,omitempty"`
	// Bulkhead configures bulkhead behavior.
	Bulkhead BulkheadConfig `json:"bulkhead,omitempty" yaml:"bulkhead,omitempty"`
	// Cache configures result caching for cacheable tools.
	Cache CacheConfig `json:"cache,omitempty" yaml:"cache,omitempty"`
}

// RetryConfig configures retry behavior.
type RetryConfig struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int `json:"max_retries,omitempty" yaml:"max_retries,omitempty"`
	// InitialDelay is the first retry delay.
	InitialDelay Duration `json:"initial_delay,omitempty" yaml:"initial_delay,omitempty"`
	// Multiplier is the backoff multiplier.
	Multiplier float64 `json:"multiplier,omitempty" yaml:"multiplier,omitempty"`
}

// CircuitBreakerConfig configures circuit breaker behavior.
type CircuitBreakerConfig struct {
	// Threshold is failures before opening.
	Threshold int `json:"threshold,omitempty" yaml:"threshold,omitempty"`
	// Timeout is how long the circuit stays open.
	Timeout Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// BulkheadConfig configures bulkhead behavior.
type BulkheadConfig struct {
	// MaxConcurrent is the maximum concurrent executions.
	MaxConcurrent int `json:"max_concurrent,omitempty" yaml:"max_concurrent,omitempty"`
}

// CacheConfig configures observation caching.
type CacheConfig struct {
	// Enabled enables caching.
	Enabled bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	// Backend selects the cache store (memory, redis).
	Backend string `json:"backend,omitempty" yaml:"backend,omitempty"`
	// TTL is how long entries stay fresh.
	TTL Duration `json:"ttl,omitempty" yaml:"ttl,omitempty"`
	// MaxSize caps the in-memory cache entry count.
	MaxSize int `json:"max_size,omitempty" yaml:"max_size,omitempty"`
	// Redis configures the redis backend.
	Redis RedisConfig `json:"redis,omitempty" yaml:"redis,omitempty"`
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	// Addr is the redis host:port.
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`
	// Password is the redis credential. Supports ${VAR} expansion.
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	// DB is the redis database number.
	DB int `json:"db,omitempty" yaml:"db,omitempty"`
	// KeyPrefix namespaces cache keys.
	KeyPrefix string `json:"key_prefix,omitempty" yaml:"key_prefix,omitempty"`
}

// StorageConfig configures run persistence.
type StorageConfig struct {
	// SQLite configures the SQLite journal and run store.
	SQLite SQLiteConfig `json:"sqlite,omitempty" yaml:"sqlite,omitempty"`
}

// SQLiteConfig configures the SQLite store.
type SQLiteConfig struct {
	// Enabled enables SQLite persistence.
	Enabled bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	// Path is the database file path.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// PackConfig configures a tool pack.
type PackConfig struct {
	// Name is the pack name (calc, clock, fileops, web, weather).
	Name string `json:"name" yaml:"name"`
	// Config contains pack-specific configuration.
	Config map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
	// Format selects the output handler (json, console).
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// Duration is a time.Duration that supports JSON/YAML string representation.
type Duration time.Duration

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(d).String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}

	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
