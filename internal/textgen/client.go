// Package textgen provides the external text-generation service used as the
// last fallback of the response cascade.
package textgen

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

// Client generates text using the Gemini generateContent API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// Config holds generation client configuration.
type Config struct {
	APIKey  string
	Model   string // e.g., "gemini-2.0-flash"
	BaseURL string // Default: https://generativelanguage.googleapis.com/v1beta
	Timeout time.Duration
}

// NewClient creates a new generation client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}

	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
	}, nil
}

// generateRequest is the generateContent request body.
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// generateResponse is the generateContent response body.
type generateResponse struct {
	Candidates []candidate    `json:"candidates"`
	Error      *generateError `json:"error,omitempty"`
}

type candidate struct {
	Content content `json:"content"`
}

type generateError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Generate produces a text completion for the given prompt.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt is empty")
	}

	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp generateResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != nil {
			return "", fmt.Errorf("API error: %s (status: %s)", errResp.Error.Message, errResp.Error.Status)
		}
		return "", fmt.Errorf("API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	for _, cand := range genResp.Candidates {
		for _, p := range cand.Content.Parts {
			if text := strings.TrimSpace(p.Text); text != "" {
				return text, nil
			}
		}
	}

	return "", fmt.Errorf("no text candidate returned")
}

// Model returns the model being used.
func (c *Client) Model() string {
	return c.model
}

// MockGenerator provides a scripted generator for testing.
type MockGenerator struct {
	// Reply, when set, is returned for every prompt.
	Reply string
	// Err, when set, is returned for every prompt.
	Err error
	// Prompts records every prompt received.
	Prompts []string
}

// Generate returns the scripted reply or error.
func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Reply, nil
}

// Model returns the mock model name.
func (m *MockGenerator) Model() string {
	return "mock-generator"
}

// Generator defines the interface for text generation.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Ensure implementations satisfy interface.
var (
	_ Generator = (*Client)(nil)
	_ Generator = (*MockGenerator)(nil)
)
