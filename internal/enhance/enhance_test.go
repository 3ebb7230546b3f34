package enhance_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/echoverse/echoverse/internal/enhance"
)

type stubProvider struct {
	name string
	out  string
	err  error
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Enhance(_ context.Context, text, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.out == "" {
		return text, nil // decline by returning input unchanged
	}
	return s.out, nil
}

func TestChainFirstAcceptedResultWins(t *testing.T) {
	t.Parallel()

	chain := enhance.NewChain(
		&stubProvider{name: "first", out: "first version"},
		&stubProvider{name: "second", out: "second version"},
	)

	res := chain.Enhance(context.Background(), "original", enhance.StyleGeneral)

	assert.Equal(t, "first version", res.Text)
	assert.Equal(t, "first", res.Provider)
	assert.False(t, res.UsedFallback)
}

func TestChainSkipsFailingProvider(t *testing.T) {
	t.Parallel()

	chain := enhance.NewChain(
		&stubProvider{name: "broken", err: errors.New("api down")},
		&stubProvider{name: "working", out: "improved"},
	)

	res := chain.Enhance(context.Background(), "original", enhance.StyleGeneral)

	assert.Equal(t, "improved", res.Text)
	assert.Equal(t, "working", res.Provider)
	assert.True(t, res.UsedFallback) // accepted by the last provider
}

func TestChainSkipsUnchangedResult(t *testing.T) {
	t.Parallel()

	chain := enhance.NewChain(
		&stubProvider{name: "lazy"}, // echoes input
		&stubProvider{name: "eager", out: "better text"},
	)

	res := chain.Enhance(context.Background(), "original", enhance.StyleCreative)

	assert.Equal(t, "better text", res.Text)
	assert.Equal(t, "eager", res.Provider)
}

func TestChainAllDeclineReturnsInput(t *testing.T) {
	t.Parallel()

	chain := enhance.NewChain(
		&stubProvider{name: "a", err: errors.New("down")},
		&stubProvider{name: "b"},
	)

	res := chain.Enhance(context.Background(), "untouched", enhance.StyleFormal)

	assert.Equal(t, "untouched", res.Text)
	assert.Empty(t, res.Provider)
	assert.True(t, res.UsedFallback)
}

func TestChainEmptyInputPassesThrough(t *testing.T) {
	t.Parallel()

	chain := enhance.NewChain(&stubProvider{name: "a", out: "should not run"})

	res := chain.Enhance(context.Background(), "  ", enhance.StyleGeneral)

	assert.Equal(t, "  ", res.Text)
	assert.False(t, res.UsedFallback)
}

func TestProviders(t *testing.T) {
	t.Parallel()

	chain := enhance.NewChain(
		&stubProvider{name: "groq"},
		&stubProvider{name: "local"},
	)

	assert.Equal(t, []string{"groq", "local"}, chain.Providers())
}
