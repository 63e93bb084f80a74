package planner

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements the Provider interface on the OpenAI API.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// OpenAIConfig configures the OpenAI provider.
type OpenAIConfig struct {
	APIKey  string // Required: OpenAI API key
	BaseURL string // Default: the public OpenAI endpoint
	Model   string // e.g. "gpt-4o", "gpt-4o-mini"
	Timeout int    // Timeout in seconds (default: 120)
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(config OpenAIConfig) *OpenAIProvider {
	cfg := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		cfg.BaseURL = config.BaseURL
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = 120
	}
	if httpClient, ok := cfg.HTTPClient.(*http.Client); ok {
		httpClient.Timeout = time.Duration(timeout) * time.Second
	}

	model := config.Model
	if model == "" {
		model = openai.GPT4o
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Model returns the model identifier requests are sent with.
func (p *OpenAIProvider) Model() string {
	return p.model
}

// Complete implements the Provider interface.
func (p *OpenAIProvider) Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	messages := make([]openai.ChatCompletionMessage, len(req.Messages))
	for i, msg := range req.Messages {
		messages[i] = openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	model := req.Model
	if model == "" {
		model = p.model
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: float32(req.Temperature),
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return CompletionResponse{}, &APIError{
				Provider:   p.Name(),
				StatusCode: apiErr.HTTPStatusCode,
				Message:    apiErr.Message,
			}
		}
		return CompletionResponse{}, fmt.Errorf("openai completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return CompletionResponse{}, &APIError{
			Provider: p.Name(),
			Message:  "no choices in response",
		}
	}

	choice := resp.Choices[0]
	return CompletionResponse{
		ID:    resp.ID,
		Model: resp.Model,
		Message: Message{
			Role:    choice.Message.Role,
			Content: choice.Message.Content,
		},
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}
