// Package granite implements a client for the hosted tone-transform API.
//
// The service exposes a small JSON API: POST /transform with {text, tone}
// returns {status, transformed_text}, GET /health reports liveness, and
// GET /available-tones lists the tones the hosted model accepts.
package granite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Client talks to the remote tone-transform service.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a client for the service at baseURL. A zero timeout defaults
// to 30 seconds.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Transform sends text to the remote service and returns the transformed
// version. Any transport, status, or payload problem is returned as an
// error so the caller can fall back to local rules.
func (c *Client) Transform(ctx context.Context, text, tone string) (string, error) {
	body, err := json.Marshal(map[string]string{"text": text, "tone": tone})
	if err != nil {
		return "", fmt.Errorf("marshalling transform request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transform", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating transform request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("transform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("transform failed (status %d): %s", resp.StatusCode, respBody)
	}

	var result struct {
		Status          string `json:"status"`
		TransformedText string `json:"transformed_text"`
		Error           string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding transform response: %w", err)
	}

	if result.Status != "success" {
		return "", fmt.Errorf("transform service error: %s", result.Error)
	}
	if result.TransformedText == "" {
		return "", fmt.Errorf("transform service returned empty text")
	}

	slog.Debug("remote tone transform complete", "tone", tone, "text_length", len(result.TransformedText))
	return result.TransformedText, nil
}

// Health reports whether the service answers its health endpoint.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("creating health request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("health request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed (status %d)", resp.StatusCode)
	}
	return nil
}

// AvailableTones fetches the tone list from the service. Callers should
// treat an error as "use the built-in default set".
func (c *Client) AvailableTones(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/available-tones", nil)
	if err != nil {
		return nil, fmt.Errorf("creating tones request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tones request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tones request failed (status %d)", resp.StatusCode)
	}

	var result struct {
		Tones []string `json:"tones"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding tones response: %w", err)
	}
	return result.Tones, nil
}
