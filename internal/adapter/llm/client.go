package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/domain"
)

// ErrNotConfigured is returned when the adapter has no API key.
var ErrNotConfigured = errors.New("llm: service not configured")

// brevityInstruction is appended to every prompt. Responses feed straight
// into speech synthesis, which caps input length, so the model is told to
// stay short up front.
const brevityInstruction = "\n\n(Please provide a concise response under 2500 characters)"

// Client talks to Gemini through its OpenAI-compatible endpoint.
type Client struct {
	client  *openai.Client
	apiKey  string
	model   string
	timeout time.Duration
}

// NewClient creates a new Gemini chat client. baseURL points at the
// OpenAI-compatible surface of the provider and is overridable for tests.
func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{
		client:  openai.NewClientWithConfig(cfg),
		apiKey:  apiKey,
		model:   model,
		timeout: timeout,
	}
}

// IsConfigured reports whether an API key is present.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// Generate sends the history plus prompt as a chat completion and returns
// the response text. An empty response body is treated as a failure.
func (c *Client) Generate(ctx context.Context, prompt string, history []domain.ConversationMessage) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	for _, msg := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    convertRole(msg.Role),
			Content: msg.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt + brevityInstruction,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("llm: completion failed: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errors.New("llm: empty response from model")
	}
	return resp.Choices[0].Message.Content, nil
}

// convertRole maps a conversation role to the provider's role vocabulary.
func convertRole(role domain.MessageRole) string {
	switch role {
	case domain.RoleAssistant:
		return openai.ChatMessageRoleAssistant
	default:
		return openai.ChatMessageRoleUser
	}
}
