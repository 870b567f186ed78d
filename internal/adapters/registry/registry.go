package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"textproc/internal/adapters/util"
	"textproc/internal/core/domain/models"
	"textproc/internal/core/domain/ports"
)

// Ensure Client implements both registry-facing ports
var _ ports.TemplateStore = (*Client)(nil)
var _ ports.UsageTracker = (*Client)(nil)

// Client talks to a prompt-registry service: a key-value template store that
// also accepts request tags for observability.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewClient(baseURL, apiKey, logLevel string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Transport: &util.LoggingTransport{LogLevel: logLevel},
			Timeout:   10 * time.Second,
		},
	}
}

type templateResponse struct {
	Name     string `json:"name"`
	Version  int    `json:"version"`
	Template string `json:"template"`
}

// FetchTemplate retrieves the latest version of a named template.
func (c *Client) FetchTemplate(ctx context.Context, name string) (string, error) {
	u := fmt.Sprintf("%s/prompt-templates/%s?version=latest", c.baseURL, url.PathEscape(name))

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("registry request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("registry returned status %d: %s", resp.StatusCode, string(body))
	}

	var out templateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode registry response: %w", err)
	}

	if out.Template == "" {
		return "", fmt.Errorf("registry returned empty template for %s", name)
	}

	return out.Template, nil
}

type trackRequest struct {
	PromptName string `json:"prompt_name"`
	Input      string `json:"input"`
	Output     string `json:"output"`
}

// Track tags a completed request with its prompt name. Observability only;
// callers treat failures as non-fatal.
func (c *Client) Track(ctx context.Context, promptName string, prompt models.Prompt, output string) error {
	reqBody, err := json.Marshal(trackRequest{
		PromptName: promptName,
		Input:      prompt.User,
		Output:     output,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal track request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/track", bytes.NewBuffer(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create track request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("track request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("registry returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
