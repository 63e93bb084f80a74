package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	api "github.com/ShivanshDubey1704/agentic-ai-assistant/interfaces/api"
)

// validateOptions holds options for the validate command.
type validateOptions struct {
	configPath string
	strict     bool
}

// newValidateCmd creates the validate command.
func (a *App) newValidateCmd() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file",
		Long: `Validate an assistant configuration file for correctness.

This command checks:
  - File format (YAML or JSON)
  - Required fields (name, version)
  - Field types and constraints
  - Pack names and planner provider
  - Environment variable references (in strict mode)

Examples:
  # Validate a configuration file
  assistant validate -c config.yaml

  # Strict validation (fail on missing env vars)
  assistant validate -c config.yaml --strict`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.validateConfig(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file (required)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Enable strict validation (fail on missing env vars)")

	_ = cmd.MarkFlagRequired("config")

	return cmd
}

// validateConfig validates the configuration file.
func (a *App) validateConfig(opts *validateOptions) error {
	loaderOpts := []api.ConfigLoaderOption{
		api.ConfigWithValidation(true),
	}
	if opts.strict {
		loaderOpts = append(loaderOpts, api.ConfigWithStrictEnv(true))
	}

	loader := api.NewConfigLoaderWithOptions(loaderOpts...)
	config, err := loader.LoadFile(opts.configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(a.stdout, "✓ Configuration is valid\n")
	fmt.Fprintf(a.stdout, "  Name: %s\n", config.Name)
	fmt.Fprintf(a.stdout, "  Version: %s\n", config.Version)
	if config.Description != "" {
		fmt.Fprintf(a.stdout, "  Description: %s\n", config.Description)
	}

	fmt.Fprintf(a.stdout, "\nConfiguration summary:\n")
	fmt.Fprintf(a.stdout, "  Max turns: %d\n", config.Agent.MaxTurns)
	if config.Agent.FailurePolicy != "" {
		fmt.Fprintf(a.stdout, "  Failure policy: %s\n", config.Agent.FailurePolicy)
	}
	if config.Memory.Policy != "" {
		fmt.Fprintf(a.stdout, "  Memory policy: %s\n", config.Memory.Policy)
	}
	if config.Planner.Provider != "" {
		fmt.Fprintf(a.stdout, "  Planner: %s", config.Planner.Provider)
		if config.Planner.Model != "" {
			fmt.Fprintf(a.stdout, " (%s)", config.Planner.Model)
		}
		fmt.Fprintln(a.stdout)
	}

	if len(config.Packs) > 0 {
		fmt.Fprintf(a.stdout, "  Tool packs: %d\n", len(config.Packs))
		for _, pack := range config.Packs {
			fmt.Fprintf(a.stdout, "    - %s\n", pack.Name)
		}
	}

	if config.Resilience.Cache.Enabled {
		backend := config.Resilience.Cache.Backend
		if backend == "" {
			backend = "memory"
		}
		fmt.Fprintf(a.stdout, "  Cache: enabled (%s)\n", backend)
	}

	if config.Storage.SQLite.Enabled {
		fmt.Fprintf(a.stdout, "  Persistence: sqlite (%s)\n", config.Storage.SQLite.Path)
	}

	return nil
}
