package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"textproc/internal/adapters/util"
	"textproc/internal/core/domain/models"
	"textproc/internal/core/domain/ports"
)

// Ensure OllamaClient implements Generator
var _ ports.Generator = (*OllamaClient)(nil)

// OllamaClient generates text by calling a local Ollama server. It exists so
// the pipeline can run without a hosted API credential.
type OllamaClient struct {
	host   string
	model  string
	client *http.Client
}

func NewOllamaClient(host, model, logLevel string) *OllamaClient {
	if host == "" {
		host = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3"
	}
	return &OllamaClient{
		host:  host,
		model: model,
		client: &http.Client{
			Transport: &util.LoggingTransport{LogLevel: logLevel},
			Timeout:   5 * time.Minute,
		},
	}
}

type ollamaRequest struct {
	Model   string         `json:"model"`
	System  string         `json:"system,omitempty"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options *ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	NumPredict  int     `json:"num_predict,omitempty"`
	Temperature float32 `json:"temperature,omitempty"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

func (c *OllamaClient) Generate(ctx context.Context, prompt models.Prompt) (string, error) {
	apiURL := fmt.Sprintf("%s/api/generate", c.host)

	reqBody, err := json.Marshal(ollamaRequest{
		Model:  c.model,
		System: prompt.System,
		Prompt: prompt.User,
		Stream: false,
		Options: &ollamaOptions{
			NumPredict:  prompt.MaxTokens,
			Temperature: prompt.Temperature,
		},
	})
	if err != nil {
		return "", &models.GenerationError{Backend: "Ollama", Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, "POST", apiURL, bytes.NewBuffer(reqBody))
	if err != nil {
		return "", &models.GenerationError{Backend: "Ollama", Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &models.GenerationError{Backend: "Ollama", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", &models.GenerationError{Backend: "Ollama", Err: fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(body))}
	}

	var out ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &models.GenerationError{Backend: "Ollama", Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return strings.TrimSpace(out.Response), nil
}

func (c *OllamaClient) Name() string {
	return fmt.Sprintf("Ollama (%s) [Local]", c.model)
}
