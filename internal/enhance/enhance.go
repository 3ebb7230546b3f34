// Package enhance rewrites text to improve it for narration. Providers are
// tried in priority order; the first result that is non-empty and different
// from the input wins. The chain never fails: the terminal local provider
// always returns something, and in the worst case the input passes through
// unchanged.
package enhance

import (
	"context"
	"log/slog"
	"strings"
)

// Styles accepted by Enhance. Unknown styles fall back to "general" inside
// the local provider; remote providers receive the style as a prompt hint.
const (
	StyleGeneral  = "general"
	StyleCreative = "creative"
	StyleFormal   = "formal"
)

// Provider is one interchangeable enhancement backend.
type Provider interface {
	// Name returns the provider identifier (e.g. "groq", "local").
	Name() string

	// Enhance rewrites text in the given style. An error or an unchanged
	// result moves the chain to the next provider.
	Enhance(ctx context.Context, text, style string) (string, error)
}

// Chain tries an ordered list of providers and keeps the first accepted
// result.
type Chain struct {
	providers []Provider
}

// NewChain builds a chain over providers in priority order.
func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers}
}

// Result carries the enhanced text and which provider produced it.
type Result struct {
	Text         string
	Provider     string
	UsedFallback bool
}

// Enhance runs the provider chain. Empty input is returned as-is; if every
// provider declines, the original text comes back unchanged.
func (c *Chain) Enhance(ctx context.Context, text, style string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Text: text}
	}

	for i, p := range c.providers {
		enhanced, err := p.Enhance(ctx, text, style)
		if err != nil {
			slog.Warn("enhancement provider failed", "provider", p.Name(), "error", err)
			continue
		}
		if enhanced == "" || enhanced == text {
			slog.Debug("enhancement provider declined", "provider", p.Name())
			continue
		}
		slog.Info("enhancement complete", "provider", p.Name(), "style", style)
		return Result{
			Text:         enhanced,
			Provider:     p.Name(),
			UsedFallback: i == len(c.providers)-1,
		}
	}

	return Result{Text: text, UsedFallback: true}
}

// Providers returns the chain's provider names in priority order.
func (c *Chain) Providers() []string {
	names := make([]string, len(c.providers))
	for i, p := range c.providers {
		names[i] = p.Name()
	}
	return names
}
