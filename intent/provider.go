package intent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrMissingAPIKey is returned when an HTTPProvider is built without
// credentials.
var ErrMissingAPIKey = errors.New("api key is required")

const (
	defaultBaseURL     = "https://api.anthropic.com"
	defaultModel       = "claude-3-5-haiku-20241022"
	apiVersion         = "2023-06-01"
	completionMaxToken = 256
)

// HTTPProvider calls an Anthropic-compatible messages endpoint. It
// implements [Provider] for deployments that want model-assisted
// classification without pulling in a vendor SDK.
type HTTPProvider struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewHTTPProvider creates a provider for the given API key. An empty
// model selects a small default suited to classification.
func NewHTTPProvider(apiKey, model string) (*HTTPProvider, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		model = defaultModel
	}
	return &HTTPProvider{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// SetBaseURL overrides the API endpoint, for proxies and tests.
func (p *HTTPProvider) SetBaseURL(url string) {
	p.baseURL = url
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends one user message and returns the concatenated text
// blocks of the response.
func (p *HTTPProvider) Complete(ctx context.Context, system, prompt string) (string, error) {
	body, err := json.Marshal(messageRequest{
		Model:     p.model,
		MaxTokens: completionMaxToken,
		System:    system,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call messages api: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var parsed messageResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("messages api: %s: %s", parsed.Error.Type, parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("messages api: unexpected status %d", resp.StatusCode)
	}

	var text string
	for _, block := range parsed.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	return text, nil
}
