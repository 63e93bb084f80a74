package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	domainconfig "github.com/ShivanshDubey1704/agentic-ai-assistant/domain/config"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/infrastructure/config"
)

const validYAML = `
name: assistant
version: 0.1.0
agent:
  max_turns: 10
  failure_policy: observe
memory:
  policy: sliding_window
  window: 8
planner:
  provider: mock
packs:
  - name: calc
  - name: clock
logging:
  level: info
  format: console
`

func TestLoader_LoadString_YAML(t *testing.T) {
	t.Parallel()

	cfg, err := config.NewLoader().LoadString(validYAML, config.FormatYAML)
	if err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}

	if cfg.Name != "assistant" {
		t.Errorf("Name = %q, want %q", cfg.Name, "assistant")
	}
	if cfg.Agent.MaxTurns != 10 {
		t.Errorf("Agent.MaxTurns = %d, want 10", cfg.Agent.MaxTurns)
	}
	if cfg.Memory.Policy != "sliding_window" || cfg.Memory.Window != 8 {
		t.Errorf("Memory = %+v, want sliding_window with window 8", cfg.Memory)
	}
	if len(cfg.Packs) != 2 {
		t.Errorf("len(Packs) = %d, want 2", len(cfg.Packs))
	}
}

func TestLoader_LoadString_JSON(t *testing.T) {
	t.Parallel()

	content := `{
		"name": "assistant",
		"version": "0.1.0",
		"planner": {"provider": "mock"}
	}`

	cfg, err := config.NewLoader().LoadString(content, config.FormatJSON)
	if err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}
	if cfg.Planner.Provider != "mock" {
		t.Errorf("Planner.Provider = %q, want %q", cfg.Planner.Provider, "mock")
	}
}

func TestLoader_LoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(validYAML), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := config.NewLoader().LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Version != "0.1.0" {
		t.Errorf("Version = %q, want %q", cfg.Version, "0.1.0")
	}
}

func TestLoader_LoadFile_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr error
	}{
		{
			name:    "missing file",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.yaml") },
			wantErr: domainconfig.ErrConfigNotFound,
		},
		{
			name: "unsupported extension",
			path: func(t *testing.T) string {
				p := filepath.Join(t.TempDir(), "config.toml")
				if err := os.WriteFile(p, []byte("name = 'x'"), 0o644); err != nil {
					t.Fatalf("WriteFile() error = %v", err)
				}
				return p
			},
			wantErr: domainconfig.ErrUnsupportedFormat,
		},
		{
			name:    "directory",
			path:    func(t *testing.T) string { return t.TempDir() },
			wantErr: domainconfig.ErrInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.NewLoader().LoadFile(tt.path(t))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadFile() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoader_ValidationFailure(t *testing.T) {
	t.Parallel()

	content := `
name: assistant
version: 0.1.0
planner:
  provider: oracle
`
	_, err := config.NewLoader().LoadString(content, config.FormatYAML)
	if !errors.Is(err, domainconfig.ErrValidationFailed) {
		t.Errorf("LoadString() error = %v, want ErrValidationFailed", err)
	}
}

func TestLoader_ValidationDisabled(t *testing.T) {
	t.Parallel()

	content := `
name: assistant
version: 0.1.0
planner:
  provider: oracle
`
	loader := config.NewLoaderWithOptions(config.WithValidation(false))
	cfg, err := loader.LoadString(content, config.FormatYAML)
	if err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}
	if cfg.Planner.Provider != "oracle" {
		t.Errorf("Planner.Provider = %q, want %q", cfg.Planner.Provider, "oracle")
	}
}

func TestLoader_MalformedYAML(t *testing.T) {
	t.Parallel()

	_, err := config.NewLoader().LoadString("name: [unclosed", config.FormatYAML)
	if !errors.Is(err, domainconfig.ErrInvalidFormat) {
		t.Errorf("LoadString() error = %v, want ErrInvalidFormat", err)
	}
}

func TestLoader_EnvExpansion(t *testing.T) {
	t.Setenv("ASSISTANT_TEST_NAME", "env-assistant")

	content := `
name: ${ASSISTANT_TEST_NAME}
version: "${ASSISTANT_TEST_VERSION:-0.9.0}"
planner:
  provider: mock
`
	cfg, err := config.NewLoader().LoadString(content, config.FormatYAML)
	if err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}
	if cfg.Name != "env-assistant" {
		t.Errorf("Name = %q, want %q", cfg.Name, "env-assistant")
	}
	if cfg.Version != "0.9.0" {
		t.Errorf("Version = %q, want default %q", cfg.Version, "0.9.0")
	}
}
