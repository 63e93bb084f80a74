package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ShivanshDubey1704/agentic-ai-assistant/interfaces/cli"
)

func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := cli.New().WithOutput(&stdout, &stderr)
	err := app.ExecuteWithArgs(context.Background(), args)
	return stdout.String(), stderr.String(), err
}

func writeConfig(t *testing.T, doc string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := runApp(t, "version")
	if err != nil {
		t.Fatalf("ExecuteWithArgs(version) error = %v", err)
	}
	if !strings.Contains(stdout, "assistant version") {
		t.Errorf("output %q does not mention the version", stdout)
	}
}

func TestValidateCommand(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
name: test-assistant
version: 1.0.0
agent:
  max_turns: 8
  failure_policy: observe
planner:
  provider: mock
packs:
  - name: calc
  - name: clock
`)

	stdout, _, err := runApp(t, "validate", "-c", path)
	if err != nil {
		t.Fatalf("ExecuteWithArgs(validate) error = %v", err)
	}

	for _, want := range []string{"Configuration is valid", "test-assistant", "Max turns: 8", "calc", "clock"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestValidateCommand_InvalidConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
name: broken
version: 1.0.0
agent:
  max_turns: -3
`)

	if _, _, err := runApp(t, "validate", "-c", path); err == nil {
		t.Error("ExecuteWithArgs(validate) = nil error for a negative turn budget")
	}
}

func TestValidateCommand_MissingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "absent.yaml")
	if _, _, err := runApp(t, "validate", "-c", path); err == nil {
		t.Error("ExecuteWithArgs(validate) = nil error for a missing file")
	}
}

func TestToolsCommand(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
name: test-assistant
version: 1.0.0
planner:
  provider: mock
packs:
  - name: calc
  - name: clock
`)

	stdout, _, err := runApp(t, "tools", "-c", path)
	if err != nil {
		t.Fatalf("ExecuteWithArgs(tools) error = %v", err)
	}

	for _, want := range []string{"calculator.add", "calculator.eval", "clock.now"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestToolsCommand_JSON(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
name: test-assistant
version: 1.0.0
planner:
  provider: mock
packs:
  - name: calc
`)

	stdout, _, err := runApp(t, "tools", "-c", path, "--json")
	if err != nil {
		t.Fatalf("ExecuteWithArgs(tools --json) error = %v", err)
	}
	if !strings.Contains(stdout, `"calculator.add"`) || !strings.Contains(stdout, `"input_schema"`) {
		t.Errorf("JSON output missing tool fields:\n%s", stdout)
	}
}
