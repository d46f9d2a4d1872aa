package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	anthropicBaseURL   = "https://api.anthropic.com/v1/messages"
	anthropicModel     = "claude-sonnet-4-20250514"
	anthropicVersion   = "2023-06-01"
	anthropicMaxTokens = 500
)

// AnthropicConfig configures the Messages API client. Empty fields take the
// package defaults.
type AnthropicConfig struct {
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int
	Timeout   time.Duration
}

// AnthropicClient implements domain.LLMClient on the Anthropic Messages API.
// It makes exactly one request per call; retrying is up to the caller.
type AnthropicClient struct {
	apiKey    string
	model     string
	baseURL   string
	maxTokens int
	client    *http.Client
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

func NewAnthropicClient(cfg AnthropicConfig) *AnthropicClient {
	c := &AnthropicClient{
		apiKey:    strings.TrimSpace(cfg.APIKey),
		model:     cfg.Model,
		baseURL:   cfg.BaseURL,
		maxTokens: cfg.MaxTokens,
		client:    &http.Client{Timeout: cfg.Timeout},
	}
	if c.model == "" {
		c.model = anthropicModel
	}
	if c.baseURL == "" {
		c.baseURL = anthropicBaseURL
	}
	if c.maxTokens <= 0 {
		c.maxTokens = anthropicMaxTokens
	}
	if cfg.Timeout <= 0 {
		c.client.Timeout = 30 * time.Second
	}
	return c
}

// Configured reports whether an API key is present.
func (c *AnthropicClient) Configured() bool {
	return c.apiKey != ""
}

// GenerateReply sends prompt as a single user message and returns the first
// text block.
func (c *AnthropicClient) GenerateReply(ctx context.Context, prompt string) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("anthropic: API key not configured")
	}

	body, err := json.Marshal(anthropicRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    systemPrompt,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("anthropic: create request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("anthropic: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("anthropic: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("anthropic: API error (%d): %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var apiResp anthropicResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("anthropic: decode response: %w", err)
	}

	for _, block := range apiResp.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("anthropic: empty response content")
}
