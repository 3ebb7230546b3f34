// Package gtts provides an HTTP client for the speech synthesis service.
// Requests are rate-limited client-side to stay under the upstream quota.
package gtts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// MaxTextSize is the upstream per-request character limit.
const MaxTextSize = 5000

const defaultRequestsPerMinute = 50

// Client talks to the speech synthesis HTTP endpoint.
type Client struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// Config holds speech client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration

	// RequestsPerMinute caps outgoing synthesis calls (defaults to 50).
	RequestsPerMinute int
}

// New creates a speech client from config.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("speech endpoint cannot be empty")
	}
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = defaultRequestsPerMinute
	}
	return &Client{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1),
	}, nil
}

type synthesizeRequest struct {
	Text     string `json:"text"`
	Language string `json:"lang"`
	Slow     bool   `json:"slow"`
}

// Synthesize converts text to MP3 audio bytes.
func (c *Client) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	if text == "" {
		return nil, errors.New("text cannot be empty")
	}
	if len(text) > MaxTextSize {
		return nil, fmt.Errorf("text too long: %d characters (max %d)", len(text), MaxTextSize)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait cancelled: %w", err)
	}

	body, err := json.Marshal(synthesizeRequest{Text: text, Language: language})
	if err != nil {
		return nil, fmt.Errorf("encoding synthesis request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/synthesize", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating synthesis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling speech service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("speech service returned status %d: %s", resp.StatusCode, string(detail))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading audio response: %w", err)
	}
	if len(audio) == 0 {
		return nil, errors.New("speech service returned no audio")
	}
	return audio, nil
}

// Health reports whether the speech service is reachable.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("creating health request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("speech service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("speech service unhealthy: status %d", resp.StatusCode)
	}
	return nil
}
