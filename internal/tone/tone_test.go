package tone_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echoverse/echoverse/internal/tone"
)

type stubRemote struct {
	out string
	err error
}

func (s *stubRemote) Transform(_ context.Context, _, _ string) (string, error) {
	return s.out, s.err
}

func TestTransformUsesRemoteWhenAvailable(t *testing.T) {
	t.Parallel()

	tr := tone.New(&stubRemote{out: "remote result"})

	res := tr.Transform(context.Background(), "hello world", "dramatic")

	assert.Equal(t, "remote result", res.Text)
	assert.False(t, res.UsedFallback)
}

func TestTransformFallsBackOnRemoteError(t *testing.T) {
	t.Parallel()

	tr := tone.New(&stubRemote{err: errors.New("connection refused")})

	res := tr.Transform(context.Background(), "He walked away.", "suspenseful")

	assert.True(t, res.UsedFallback)
	assert.Contains(t, res.Text, "crept cautiously")
}

func TestTransformEmptyTextPassesThrough(t *testing.T) {
	t.Parallel()

	tr := tone.New(nil)

	res := tr.Transform(context.Background(), "   ", "dramatic")

	assert.Equal(t, "   ", res.Text)
	assert.False(t, res.UsedFallback)
}

func TestTransformUnknownToneCoercesToNeutral(t *testing.T) {
	t.Parallel()

	tr := tone.New(nil)

	res := tr.Transform(context.Background(), "Nothing changes here.", "sarcastic")

	// Neutral has no local rules, so the text survives untouched.
	assert.Equal(t, "Nothing changes here.", res.Text)
}

func TestFallbackReplacesWordsAndWrapsShortText(t *testing.T) {
	t.Parallel()

	got := tone.Fallback("He walked in and said hello. She looked up.", "suspenseful")

	assert.Contains(t, got, "crept cautiously")
	assert.Contains(t, got, "whispered ominously")
	assert.Contains(t, got, "peered suspiciously")
	assert.True(t, strings.HasPrefix(got, "In a spine-chilling turn of events, "))
	assert.True(t, strings.HasSuffix(got, "The tension was palpable, leaving everyone on edge."))
}

func TestFallbackHandlesCapitalizedWords(t *testing.T) {
	t.Parallel()

	got := tone.Fallback("Said the captain.", "formal")

	assert.Contains(t, got, "Stated formally")
}

func TestFallbackSkipsWrapperForLongText(t *testing.T) {
	t.Parallel()

	long := strings.TrimSpace(strings.Repeat("word ", 60))

	got := tone.Fallback(long, "dramatic")

	assert.False(t, strings.HasPrefix(got, "With overwhelming emotion"))
	assert.False(t, strings.HasSuffix(got, "intensity."))
}

func TestFallbackNeutralIsIdentity(t *testing.T) {
	t.Parallel()

	text := "He walked and said things."
	assert.Equal(t, text, tone.Fallback(text, "neutral"))
}

func TestFallbackCoversEveryNonNeutralTone(t *testing.T) {
	t.Parallel()

	for _, name := range tone.Tones {
		if name == "neutral" {
			continue
		}
		got := tone.Fallback("short text", name)
		require.NotEqual(t, "short text", got, "tone %s should wrap short text", name)
	}
}

func TestValid(t *testing.T) {
	t.Parallel()

	assert.True(t, tone.Valid("suspenseful"))
	assert.True(t, tone.Valid("neutral"))
	assert.False(t, tone.Valid("sarcastic"))
	assert.False(t, tone.Valid(""))
}
