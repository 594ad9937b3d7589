package llm

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

// Message is a minimal chat message used by the chat orchestrator.
// Role must be one of: "system", "user", or "assistant".
type Message struct {
	Role    string
	Content string
}

// Client defines the completion call required by the chat orchestrator.
// Chat accepts the full message history (system + prior turns + latest user)
// and the model to use; an empty model means the configured default.
type Client interface {
	Chat(ctx context.Context, model string, messages []Message) (string, error)
}

// Options configures an OpenRouterClient.
type Options struct {
	APIKey       string
	BaseURL      string  // OpenRouter-compatible chat completions endpoint
	DefaultModel string  // used when a request names no model
	Temperature  float32 // sampling temperature for every request
	MaxTokens    int
}

// OpenRouterClient calls an OpenRouter (OpenAI-compatible) chat completion
// endpoint for assistant replies.
type OpenRouterClient struct {
	client       *openai.Client
	defaultModel string
	temperature  float32
	maxTokens    int
}

const (
	defaultBaseURL = "https://openrouter.ai/api/v1"
	defaultModel   = "openai/gpt-3.5-turbo"
)

// NewOpenRouterClient constructs a completion client backed by OpenRouter.
// Empty options fall back to sensible defaults.
func NewOpenRouterClient(opts Options) *OpenRouterClient {
	cfg := openai.DefaultConfig(opts.APIKey)
	cfg.BaseURL = opts.BaseURL
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	model := opts.DefaultModel
	if model == "" {
		model = defaultModel
	}
	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1000
	}
	return &OpenRouterClient{
		client:       openai.NewClientWithConfig(cfg),
		defaultModel: model,
		temperature:  opts.Temperature,
		maxTokens:    maxTokens,
	}
}

// Chat sends the message history to the completion endpoint and returns the
// assistant's response.
func (c *OpenRouterClient) Chat(ctx context.Context, model string, messages []Message) (string, error) {
	if c.client == nil {
		return "", errors.New("llm client not initialized")
	}
	if model == "" {
		model = c.defaultModel
	}

	oaMsgs := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		role := m.Role
		if role != openai.ChatMessageRoleSystem && role != openai.ChatMessageRoleUser && role != openai.ChatMessageRoleAssistant {
			// coerce anything unknown to user
			role = openai.ChatMessageRoleUser
		}
		oaMsgs = append(oaMsgs, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    oaMsgs,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
