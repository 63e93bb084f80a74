package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	api "github.com/ShivanshDubey1704/agentic-ai-assistant/interfaces/api"
)

// toolsOptions holds options for the tools command.
type toolsOptions struct {
	configPath string
	jsonOutput bool
}

// newToolsCmd creates the tools command.
func (a *App) newToolsCmd() *cobra.Command {
	opts := &toolsOptions{}

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the tools available to the assistant",
		Long: `List every tool installed by the configured packs, with its
annotations and input schema.

Examples:
  # List tools from a configuration
  assistant tools -c config.yaml

  # Emit tool descriptions as JSON
  assistant tools -c config.yaml --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.listTools(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file (required)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output tool descriptions as JSON")

	_ = cmd.MarkFlagRequired("config")

	return cmd
}

// listTools prints the tool surface of a configuration.
func (a *App) listTools(opts *toolsOptions) error {
	loader := api.NewConfigLoader()
	config, err := loader.LoadFile(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	registry, err := api.NewConfigBuilder(config).BuildRegistry()
	if err != nil {
		return fmt.Errorf("failed to install packs: %w", err)
	}

	tools := registry.List()

	if opts.jsonOutput {
		type toolInfo struct {
			Name        string          `json:"name"`
			Description string          `json:"description"`
			ReadOnly    bool            `json:"read_only,omitempty"`
			Idempotent  bool            `json:"idempotent,omitempty"`
			Cacheable   bool            `json:"cacheable,omitempty"`
			Timeout     int             `json:"timeout_seconds,omitempty"`
			InputSchema json.RawMessage `json:"input_schema,omitempty"`
		}
		infos := make([]toolInfo, 0, len(tools))
		for _, t := range tools {
			ann := t.Annotations()
			infos = append(infos, toolInfo{
				Name:        t.Name(),
				Description: t.Description(),
				ReadOnly:    ann.ReadOnly,
				Idempotent:  ann.Idempotent,
				Cacheable:   ann.Cacheable,
				Timeout:     ann.Timeout,
				InputSchema: t.InputSchema().Raw(),
			})
		}
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	if len(tools) == 0 {
		fmt.Fprintln(a.stdout, "No tools installed. Add packs to the configuration.")
		return nil
	}

	fmt.Fprintf(a.stdout, "%d tools available:\n\n", len(tools))
	for _, t := range tools {
		fmt.Fprintf(a.stdout, "  %s\n", t.Name())
		if t.Description() != "" {
			fmt.Fprintf(a.stdout, "      %s\n", t.Description())
		}
		if flags := annotationFlags(t.Annotations()); flags != "" {
			fmt.Fprintf(a.stdout, "      [%s]\n", flags)
		}
	}

	return nil
}

// annotationFlags renders annotations as a compact flag list.
func annotationFlags(ann api.Annotations) string {
	var flags []string
	if ann.ReadOnly {
		flags = append(flags, "read-only")
	}
	if ann.Idempotent {
		flags = append(flags, "idempotent")
	}
	if ann.Cacheable {
		flags = append(flags, "cacheable")
	}
	if ann.Timeout > 0 {
		flags = append(flags, fmt.Sprintf("timeout=%ds", ann.Timeout))
	}
	return strings.Join(flags, ", ")
}
