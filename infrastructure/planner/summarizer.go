package planner

import (
	"context"
	"fmt"
	"strings"

	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/agent"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/memory"
)

// LLMSummarizer folds elided turns into a digest using a completion backend.
type LLMSummarizer struct {
	provider  Provider
	model     string
	maxTokens int
}

// NewLLMSummarizer creates a summarizer over the given provider.
func NewLLMSummarizer(provider Provider, model string, maxTokens int) *LLMSummarizer {
	if maxTokens == 0 {
		maxTokens = 512
	}
	return &LLMSummarizer{
		provider:  provider,
		model:     model,
		maxTokens: maxTokens,
	}
}

const summarizerPrompt = `You condense the history of an agent run. Produce a short factual digest of what was attempted, what succeeded, what failed, and any results worth remembering. Plain text, no commentary.`

// Summarize implements memory.Summarizer.
func (s *LLMSummarizer) Summarize(ctx context.Context, digest string, turns []agent.Turn) (string, error) {
	var sb strings.Builder
	if digest != "" {
		fmt.Fprintf(&sb, "Existing digest:\n%s\n\n", digest)
	}
	sb.WriteString("Turns to fold in:\n")
	for _, t := range turns {
		sb.WriteString(memory.FormatTurn(t))
		sb.WriteString("\n")
	}

	resp, err := s.provider.Complete(ctx, CompletionRequest{
		Model: s.model,
		Messages: []Message{
			{Role: "system", Content: summarizerPrompt},
			{Role: "user", Content: sb.String()},
		},
		MaxTokens: s.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("summarize turns: %w", err)
	}
	return strings.TrimSpace(resp.Message.Content), nil
}
