// Package groq implements the enhancement Provider using the Groq API
// (OpenAI-compatible chat completions).
package groq

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

const chatURL = "https://api.groq.com/openai/v1/chat/completions"

// Provider enhances text via Groq chat completions.
type Provider struct {
	apiKey string
	model  string
	url    string
	client *http.Client
}

// New creates a Groq provider. A zero timeout defaults to 30 seconds.
func New(apiKey, model string, timeout time.Duration) *Provider {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Provider{
		apiKey: apiKey,
		model:  model,
		url:    chatURL,
		client: &http.Client{Timeout: timeout},
	}
}

// NewWithURL creates a provider against a custom endpoint, for tests.
func NewWithURL(apiKey, model, url string, timeout time.Duration) *Provider {
	p := New(apiKey, model, timeout)
	p.url = url
	return p
}

// Name returns the provider identifier.
func (p *Provider) Name() string { return "groq" }

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Enhance sends text to the chat completions endpoint with a style-specific
// prompt and returns the model's rewrite.
func (p *Provider) Enhance(ctx context.Context, text, style string) (string, error) {
	reqBody := chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "user", Content: buildPrompt(text, style)},
		},
		MaxTokens:   500,
		Temperature: 0.7,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshalling chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("chat failed (status %d): %s", resp.StatusCode, respBody)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("decoding chat response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from chat API")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

func buildPrompt(text, style string) string {
	switch style {
	case "creative":
		return "Rewrite the following text with more creative and engaging language:\n\n" + text + "\n\nCreative version:"
	case "formal":
		return "Rewrite the following text in a more formal and professional style:\n\n" + text + "\n\nFormal version:"
	default:
		return "Improve and enhance the following text while maintaining its original meaning:\n\n" + text + "\n\nEnhanced version:"
	}
}
