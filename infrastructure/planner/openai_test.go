package planner_test

import (
	"testing"

	"github.com/sashabaranov/go-openai"

	"github.com/ShivanshDubey1704/agentic-ai-assistant/infrastructure/planner"
)

func TestOpenAIProvider_DefaultModel(t *testing.T) {
	t.Parallel()

	p := planner.NewOpenAIProvider(planner.OpenAIConfig{APIKey: "k"})

	if p.Name() != "openai" {
		t.Errorf("Name() = %q, want %q", p.Name(), "openai")
	}
	if p.Model() != openai.GPT4o {
		t.Errorf("Model() = %q, want %q", p.Model(), openai.GPT4o)
	}
}

func TestOpenAIProvider_ModelOverride(t *testing.T) {
	t.Parallel()

	p := planner.NewOpenAIProvider(planner.OpenAIConfig{APIKey: "k", Model: "gpt-4o-mini"})

	if p.Model() != "gpt-4o-mini" {
		t.Errorf("Model() = %q, want %q", p.Model(), "gpt-4o-mini")
	}
}
