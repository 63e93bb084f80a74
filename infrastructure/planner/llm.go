package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/agent"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/memory"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/infrastructure/logging"
)

// LLMPlanner asks a completion backend for the next action.
type LLMPlanner struct {
	provider     Provider
	model        string
	temperature  float64
	maxTokens    int
	systemPrompt string
	maxReprompts int
}

// LLMPlannerConfig configures the LLM planner.
type LLMPlannerConfig struct {
	Provider     Provider
	Model        string
	Temperature  float64
	MaxTokens    int
	SystemPrompt string

	// MaxReprompts is how many corrective prompts to send when the
	// backend produces unparseable output before giving up.
	MaxReprompts int
}

// DefaultSystemPrompt is the default system prompt for the agent.
const DefaultSystemPrompt = `You are an AI agent that accomplishes goals by calling tools.

Analyze the goal, the history of previous turns, and the available tools, then decide the next action.

## Response Format

You MUST respond with a JSON object in one of these formats:

### 1. Call a Tool
{"action": "tool_call", "tool": "<name>", "args": {...}, "reason": "<why>"}

### 2. Finish with the Answer
{"action": "final_answer", "content": <any>, "summary": "<brief summary>"}

### 3. Ask for Clarification
{"action": "clarification", "question": "<what you need to know>"}

## Guidelines

1. Call tools to gather information or perform work; do not guess results
2. Observe tool failures and adapt: retry differently or pick another tool
3. Finish as soon as the goal is achieved
4. Ask for clarification only when the goal is genuinely ambiguous
5. Respond ONLY with valid JSON, no additional text`

// NewLLMPlanner creates a new LLM-based planner.
func NewLLMPlanner(config LLMPlannerConfig) *LLMPlanner {
	systemPrompt := config.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}

	temperature := config.Temperature
	if temperature == 0 {
		temperature = 0.7
	}

	maxTokens := config.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1024
	}

	maxReprompts := config.MaxReprompts
	if maxReprompts == 0 {
		maxReprompts = 2
	}

	return &LLMPlanner{
		provider:     config.Provider,
		model:        config.Model,
		temperature:  temperature,
		maxTokens:    maxTokens,
		systemPrompt: systemPrompt,
		maxReprompts: maxReprompts,
	}
}

// Plan implements the Planner interface. Unparseable backend output is
// answered with a corrective prompt carrying the parse error; after the
// reprompt budget is spent the planner gives up with an unparseable error.
func (p *LLMPlanner) Plan(ctx context.Context, req PlanRequest) (agent.Action, error) {
	messages := p.buildMessages(req)

	attempts := 0
	for {
		attempts++

		logging.Debug().
			Add(logging.RunID(req.RunID)).
			Add(logging.TurnIndex(req.TurnIndex)).
			Add(logging.Attempt(attempts)).
			Add(logging.Str("provider", p.provider.Name())).
			Msg("requesting planner decision")

		resp, err := p.provider.Complete(ctx, CompletionRequest{
			Model:       p.model,
			Messages:    messages,
			Temperature: p.temperature,
			MaxTokens:   p.maxTokens,
		})
		if err != nil {
			return agent.Action{}, classifyBackendError(err, attempts)
		}

		action, parseErr := parseAction(resp.Message.Content)
		if parseErr == nil {
			logging.Debug().
				Add(logging.RunID(req.RunID)).
				Add(logging.ActionType(action.Type)).
				Msg("planner decision received")
			return action, nil
		}

		if attempts > p.maxReprompts {
			return agent.Action{}, &Error{
				Kind:     FailureUnparseable,
				Message:  parseErr.Error(),
				Attempts: attempts,
				Err:      parseErr,
			}
		}

		// Carry the bad output and the parse error back so the backend
		// can correct itself.
		messages = append(messages,
			Message{Role: "assistant", Content: resp.Message.Content},
			Message{Role: "user", Content: fmt.Sprintf(
				"Your previous response was not a valid action: %s. Respond again with ONLY a valid JSON action object.",
				parseErr.Error(),
			)},
		)
	}
}

// classifyBackendError maps a provider error to a planner error.
func classifyBackendError(err error, attempts int) error {
	kind := FailureBackend
	var apiErr *APIError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = FailureBackendTimeout
	case errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests:
		kind = FailureRateLimited
	}
	return &Error{
		Kind:     kind,
		Message:  err.Error(),
		Attempts: attempts,
		Err:      err,
	}
}

// buildMessages constructs the prompt for the backend.
func (p *LLMPlanner) buildMessages(req PlanRequest) []Message {
	messages := []Message{
		{Role: "system", Content: p.systemPrompt},
	}

	var sb strings.Builder

	sb.WriteString("## Goal\n")
	sb.WriteString(req.Goal)
	sb.WriteString("\n\n")

	if len(req.Tools) > 0 {
		sb.WriteString("## Available Tools\n")
		for _, t := range req.Tools {
			fmt.Fprintf(&sb, "- %s: %s\n", t.Name, t.Description)
			if len(t.InputSchema) > 0 {
				fmt.Fprintf(&sb, "  input schema: %s\n", string(t.InputSchema))
			}
		}
		sb.WriteString("\n")
	}

	if req.View.Digest != "" {
		fmt.Fprintf(&sb, "## Earlier Turns (%d summarized)\n%s\n\n", req.View.Elided, req.View.Digest)
	}

	if len(req.View.Turns) > 0 {
		sb.WriteString("## History\n")
		for _, t := range req.View.Turns {
			sb.WriteString(memory.FormatTurn(t))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("What is your next action? Respond with JSON only.")

	return append(messages, Message{Role: "user", Content: sb.String()})
}

// llmAction is the expected JSON shape of a backend response.
type llmAction struct {
	Action   string          `json:"action"`
	Tool     string          `json:"tool,omitempty"`
	Args     json.RawMessage `json:"args,omitempty"`
	Reason   string          `json:"reason,omitempty"`
	Content  json.RawMessage `json:"content,omitempty"`
	Summary  string          `json:"summary,omitempty"`
	Question string          `json:"question,omitempty"`
}

// parseAction parses a backend response into an action.
func parseAction(content string) (agent.Action, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	var resp llmAction
	if err := json.Unmarshal([]byte(content), &resp); err != nil {
		return agent.Action{}, fmt.Errorf("invalid JSON response: %w (content: %s)", err, truncate(content, 200))
	}

	switch resp.Action {
	case "tool_call":
		if resp.Tool == "" {
			return agent.Action{}, errors.New("tool_call action missing tool name")
		}
		args := resp.Args
		if args == nil {
			args = json.RawMessage(`{}`)
		}
		return agent.NewToolCallAction(resp.Tool, args, resp.Reason), nil

	case "final_answer":
		content := resp.Content
		if content == nil {
			content = json.RawMessage(`null`)
		}
		return agent.NewFinalAnswerAction(content, resp.Summary), nil

	case "clarification":
		if resp.Question == "" {
			return agent.Action{}, errors.New("clarification action missing question")
		}
		return agent.NewClarificationAction(resp.Question), nil

	default:
		return agent.Action{}, fmt.Errorf("unknown action type: %q", resp.Action)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
