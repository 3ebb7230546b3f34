// Package hf implements the enhancement Provider using the Hugging Face
// Inference API.
package hf

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

const inferenceURL = "https://api-inference.huggingface.co/models"

// Provider enhances text via a hosted text-generation model.
type Provider struct {
	apiKey string
	model  string
	url    string
	client *http.Client
}

// New creates a Hugging Face provider. A zero timeout defaults to 30 seconds.
func New(apiKey, model string, timeout time.Duration) *Provider {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Provider{
		apiKey: apiKey,
		model:  model,
		url:    inferenceURL,
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
func (p *Provider) Name() string { return "huggingface" }

type inferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
}

type inferenceParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

// Enhance posts the text to the model's inference endpoint and returns the
// generated rewrite.
func (p *Provider) Enhance(ctx context.Context, text, style string) (string, error) {
	reqBody := inferenceRequest{
		Inputs: fmt.Sprintf("Enhance this text (%s style): %s", style, text),
		Parameters: inferenceParameters{
			MaxNewTokens:   200,
			Temperature:    0.7,
			ReturnFullText: false,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshalling inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url+"/"+p.model, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating inference request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("inference request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("inference failed (status %d): %s", resp.StatusCode, respBody)
	}

	var results []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return "", fmt.Errorf("decoding inference response: %w", err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("empty inference response")
	}

	return strings.TrimSpace(results[0].GeneratedText), nil
}
