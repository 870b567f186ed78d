package generation

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"textproc/internal/adapters/util"
	"textproc/internal/core/domain/models"
	"textproc/internal/core/domain/ports"
)

// Ensure OpenAIClient implements Generator
var _ ports.Generator = (*OpenAIClient)(nil)

type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient creates a chat-completions client. An empty baseURL uses the
// public API endpoint; tests point it at a local server.
func NewOpenAIClient(apiKey, model, baseURL, logLevel string) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{
		Transport: &util.LoggingTransport{LogLevel: logLevel},
		Timeout:   2 * time.Minute,
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Generate issues exactly one chat-completion request. No retry; any failure
// comes back as a single GenerationError carrying the original message.
func (c *OpenAIClient) Generate(ctx context.Context, prompt models.Prompt) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.System},
			{Role: openai.ChatMessageRoleUser, Content: prompt.User},
		},
		MaxTokens:   prompt.MaxTokens,
		Temperature: prompt.Temperature,
	})
	if err != nil {
		return "", &models.GenerationError{Backend: "OpenAI", Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", &models.GenerationError{Backend: "OpenAI", Err: fmt.Errorf("no completion choices returned")}
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (c *OpenAIClient) Name() string {
	return fmt.Sprintf("OpenAI (%s)", c.model)
}
