// Package ollama implements the enhancement Provider using a self-hosted
// Ollama server's /api/generate endpoint.
package ollama

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

// Provider enhances text via a local Ollama model.
type Provider struct {
	endpoint string
	model    string
	client   *http.Client
}

// New creates an Ollama provider. endpoint is the full generate URL, e.g.
// "http://localhost:11434/api/generate". A zero timeout defaults to 30s.
func New(endpoint, model string, timeout time.Duration) *Provider {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Provider{
		endpoint: endpoint,
		model:    model,
		client:   &http.Client{Timeout: timeout},
	}
}

// Name returns the provider identifier.
func (p *Provider) Name() string { return "ollama" }

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Enhance asks the local model for a narration-friendly rewrite.
func (p *Provider) Enhance(ctx context.Context, text, style string) (string, error) {
	reqBody := generateRequest{
		Model:  p.model,
		Prompt: fmt.Sprintf("Enhance this text for audiobook narration (%s style): %s", style, text),
		Stream: false,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshalling generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("generate failed (status %d): %s", resp.StatusCode, respBody)
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding generate response: %w", err)
	}

	return strings.TrimSpace(result.Response), nil
}
