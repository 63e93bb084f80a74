package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Path is the path to the invalid field.
	Path string
	// Message describes the validation error.
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("%d validation errors:\n  - %s", len(e), strings.Join(msgs, "\n  - "))
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validator validates assistant configuration.
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate validates the configuration and returns any errors.
func (v *Validator) Validate(config *AssistantConfig) ValidationErrors {
	v.errors = nil

	v.validateRequired(config)
	v.validateAgent(config)
	v.validateMemory(config)
	v.validatePlanner(config)
	v.validateResilience(config)
	v.validatePacks(config)
	v.validateLogging(config)

	return v.errors
}

func (v *Validator) addError(path, message string) {
	v.errors = append(v.errors, ValidationError{Path: path, Message: message})
}

func (v *Validator) validateRequired(config *AssistantConfig) {
	if config.Name == "" {
		v.addError("name", "name is required")
	}
	if config.Version == "" {
		v.addError("version", "version is required")
	}
}

func (v *Validator) validateAgent(config *AssistantConfig) {
	if config.Agent.MaxTurns < 0 {
		v.addError("agent.max_turns", "max_turns must be non-negative")
	}

	switch config.Agent.FailurePolicy {
	case "", "observe", "abort":
	default:
		v.addError("agent.failure_policy", fmt.Sprintf("invalid policy: %s", config.Agent.FailurePolicy))
	}
}

func (v *Validator) validateMemory(config *AssistantConfig) {
	switch config.Memory.Policy {
	case "", "full_history":
	case "sliding_window":
		if config.Memory.Window < 0 {
			v.addError("memory.window", "window must be non-negative")
		}
	case "summarized":
		if config.Memory.TokenBudget <= 0 {
			v.addError("memory.token_budget", "token_budget must be positive")
		}
	default:
		v.addError("memory.policy", fmt.Sprintf("invalid policy: %s", config.Memory.Policy))
	}
}

func (v *Validator) validatePlanner(config *AssistantConfig) {
	switch config.Planner.Provider {
	case "", "openai", "mock":
	default:
		v.addError("planner.provider", fmt.Sprintf("unknown provider: %s", config.Planner.Provider))
	}

	if config.Planner.Provider == "openai" && config.Planner.APIKey == "" {
		v.addError("planner.api_key", "api_key is required for the openai provider")
	}

	if config.Planner.Temperature < 0 || config.Planner.Temperature > 2 {
		v.addError("planner.temperature", "temperature must be between 0 and 2")
	}
	if config.Planner.MaxTokens < 0 {
		v.addError("planner.max_tokens", "max_tokens must be non-negative")
	}
	if config.Planner.MaxReprompts < 0 {
		v.addError("planner.max_reprompts", "max_reprompts must be non-negative")
	}
}

func (v *Validator) validateResilience(config *AssistantConfig) {
	r := config.Resilience

	if r.Retry.MaxRetries < 0 {
		v.addError("resilience.retry.max_retries", "max_retries must be non-negative")
	}
	if r.Retry.Multiplier < 0 {
		v.addError("resilience.retry.multiplier", "multiplier must be non-negative")
	}
	if r.CircuitBreaker.Threshold < 0 {
		v.addError("resilience.circuit_breaker.threshold", "threshold must be non-negative")
	}
	if r.Bulkhead.MaxConcurrent < 0 {
		v.addError("resilience.bulkhead.max_concurrent", "max_concurrent must be non-negative")
	}

	if r.Cache.Enabled {
		switch r.Cache.Backend {
		case "", "memory":
		case "redis":
			if r.Cache.Redis.Addr == "" {
				v.addError("resilience.cache.redis.addr", "addr is required for the redis backend")
			}
		default:
			v.addError("resilience.cache.backend", fmt.Sprintf("unknown backend: %s", r.Cache.Backend))
		}
	}
}

func (v *Validator) validatePacks(config *AssistantConfig) {
	known := map[string]bool{
		"calc": true, "clock": true, "fileops": true, "web": true, "weather": true,
	}
	seen := make(map[string]bool)
	for i, p := range config.Packs {
		path := fmt.Sprintf("packs[%d]", i)
		if p.Name == "" {
			v.addError(path+".name", "pack name is required")
			continue
		}
		if !known[p.Name] {
			v.addError(path+".name", fmt.Sprintf("unknown pack: %s", p.Name))
		}
		if seen[p.Name] {
			v.addError(path+".name", fmt.Sprintf("duplicate pack: %s", p.Name))
		}
		seen[p.Name] = true
	}
}

func (v *Validator) validateLogging(config *AssistantConfig) {
	switch config.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		v.addError("logging.level", fmt.Sprintf("invalid level: %s", config.Logging.Level))
	}

	switch config.Logging.Format {
	case "", "json", "console":
	default:
		v.addError("logging.format", fmt.Sprintf("invalid format: %s", config.Logging.Format))
	}
}
