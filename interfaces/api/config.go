// Package api configuration exports.
package api

import (
	domainconfig "github.com/ShivanshDubey1704/agentic-ai-assistant/domain/config"
	infraconfig "github.com/ShivanshDubey1704/agentic-ai-assistant/infrastructure/config"
)

// Re-export domain configuration types.
type (
	// AssistantConfig represents the complete assistant configuration.
	AssistantConfig = domainconfig.AssistantConfig
	// AgentSettings contains core loop settings.
	AgentSettings = domainconfig.AgentSettings
	// MemoryConfig controls context presentation.
	MemoryConfig = domainconfig.MemoryConfig
	// PlannerConfig configures the decision backend.
	PlannerConfig = domainconfig.PlannerConfig
	// ResilienceConfig contains tool execution resilience settings.
	ResilienceConfig = domainconfig.ResilienceConfig
	// StorageConfig configures run persistence.
	StorageConfig = domainconfig.StorageConfig
	// PackConfig configures a tool pack.
	PackConfig = domainconfig.PackConfig
	// LoggingConfig configures structured logging.
	LoggingConfig = domainconfig.LoggingConfig
	// ConfigDuration is a time.Duration with JSON/YAML string support.
	ConfigDuration = domainconfig.Duration

	// ValidationError represents a configuration validation error.
	ValidationError = domainconfig.ValidationError
	// ValidationErrors is a collection of validation errors.
	ValidationErrors = domainconfig.ValidationErrors
)

// Re-export infrastructure configuration types.
type (
	// ConfigLoader loads assistant configuration from files.
	ConfigLoader = infraconfig.Loader
	// ConfigBuilder builds the engine from configuration.
	ConfigBuilder = infraconfig.Builder
	// ConfigBuildResult contains the built components from configuration.
	ConfigBuildResult = infraconfig.BuildResult
	// ConfigLoaderOption configures the loader.
	ConfigLoaderOption = infraconfig.LoaderOption
)

// Configuration format constants.
const (
	// ConfigFormatYAML is the YAML format.
	ConfigFormatYAML = infraconfig.FormatYAML
	// ConfigFormatJSON is the JSON format.
	ConfigFormatJSON = infraconfig.FormatJSON
)

// Configuration errors.
var (
	// ErrConfigNotFound indicates the configuration file was not found.
	ErrConfigNotFound = domainconfig.ErrConfigNotFound
	// ErrInvalidFormat indicates the configuration format is invalid.
	ErrInvalidFormat = domainconfig.ErrInvalidFormat
	// ErrUnsupportedFormat indicates the file format is not supported.
	ErrUnsupportedFormat = domainconfig.ErrUnsupportedFormat
	// ErrValidationFailed indicates configuration validation failed.
	ErrValidationFailed = domainconfig.ErrValidationFailed
	// ErrMissingEnvVar indicates a required environment variable is not set.
	ErrMissingEnvVar = domainconfig.ErrMissingEnvVar
	// ErrBuildFailed indicates engine building from config failed.
	ErrBuildFailed = domainconfig.ErrBuildFailed
)

// NewConfigLoader creates a new configuration loader with default settings.
func NewConfigLoader() *ConfigLoader {
	return infraconfig.NewLoader()
}

// NewConfigLoaderWithOptions creates a loader with the specified options.
func NewConfigLoaderWithOptions(opts ...ConfigLoaderOption) *ConfigLoader {
	return infraconfig.NewLoaderWithOptions(opts...)
}

// ConfigWithEnvExpansion enables or disables environment variable expansion.
func ConfigWithEnvExpansion(enabled bool) ConfigLoaderOption {
	return infraconfig.WithEnvExpansion(enabled)
}

// ConfigWithStrictEnv enables strict environment variable checking.
func ConfigWithStrictEnv(enabled bool) ConfigLoaderOption {
	return infraconfig.WithStrictEnv(enabled)
}

// ConfigWithValidation enables or disables configuration validation.
func ConfigWithValidation(enabled bool) ConfigLoaderOption {
	return infraconfig.WithValidation(enabled)
}

// NewConfigBuilder creates a new configuration builder.
func NewConfigBuilder(config *AssistantConfig) *ConfigBuilder {
	return infraconfig.NewBuilder(config)
}

// NewConfigValidator creates a new configuration validator.
func NewConfigValidator() *domainconfig.Validator {
	return domainconfig.NewValidator()
}

// ExpandEnv expands environment variables in a string.
// Supported patterns: ${VAR}, ${VAR:-default}, ${VAR:?error}
func ExpandEnv(input string) string {
	return infraconfig.ExpandEnv(input)
}

// ExpandEnvStrict expands environment variables and returns an error for missing vars.
func ExpandEnvStrict(input string) (string, error) {
	return infraconfig.ExpandEnvStrict(input)
}
