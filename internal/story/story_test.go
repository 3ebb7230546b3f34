package story_test

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echoverse/echoverse/internal/enhance"
	"github.com/echoverse/echoverse/internal/story"
)

// rewriter returns a fixed suffix appended to the input, simulating an LLM
// that produces a longer rewrite.
type rewriter struct{ suffix string }

func (r *rewriter) Name() string { return "rewriter" }

func (r *rewriter) Enhance(_ context.Context, text, _ string) (string, error) {
	return text + r.suffix, nil
}

// truncator simulates an LLM that returns a drastically shortened rewrite.
type truncator struct{}

func (truncator) Name() string { return "truncator" }

func (truncator) Enhance(_ context.Context, text, _ string) (string, error) {
	return text[:len(text)/4], nil
}

func TestGenerateUsesTemplateAndCharacter(t *testing.T) {
	t.Parallel()

	g := story.NewGenerator(nil)

	st := g.Generate(context.Background(), "mystery", "medium", "Detective Rowan")

	assert.Contains(t, st.Text, "Detective Rowan")
	assert.Contains(t, st.Text, "Willowbrook")
	assert.Equal(t, "mystery", st.Theme)
	assert.Equal(t, "Detective Rowan", st.Character)
	assert.Positive(t, st.WordCount)
	assert.Regexp(t, `^\d+-\d+ minutes$`, st.EstimatedDuration)
}

func TestGenerateDefaultsCharacterAndLength(t *testing.T) {
	t.Parallel()

	g := story.NewGenerator(nil)

	st := g.Generate(context.Background(), "fantasy", "", "")

	assert.Equal(t, story.DefaultCharacter, st.Character)
	assert.Equal(t, "medium", st.Length)
	assert.Contains(t, st.Text, story.DefaultCharacter)
}

func TestGenerateUnknownThemeFallsBackToAdventure(t *testing.T) {
	t.Parallel()

	g := story.NewGenerator(nil)

	st := g.Generate(context.Background(), "western", "medium", "a lone rider")

	assert.Contains(t, st.Text, "extraordinary journey")
}

func TestGenerateAcceptsLongEnoughEnhancement(t *testing.T) {
	t.Parallel()

	chain := enhance.NewChain(&rewriter{suffix: " And so the tale grew richer."})
	g := story.NewGenerator(chain)

	st := g.Generate(context.Background(), "horror", "medium", "Mara")

	assert.Contains(t, st.Text, "And so the tale grew richer.")
}

func TestGenerateRejectsShortenedEnhancement(t *testing.T) {
	t.Parallel()

	chain := enhance.NewChain(truncator{})
	g := story.NewGenerator(chain)

	st := g.Generate(context.Background(), "romance", "medium", "Elena")

	// The truncated rewrite falls below the acceptance floor, so the
	// template survives intact.
	assert.Contains(t, st.Text, "love at first sight")
}

func TestGenerateShortLengthHalvesStory(t *testing.T) {
	t.Parallel()

	g := story.NewGenerator(nil)

	medium := g.Generate(context.Background(), "scifi", "medium", "Captain Vega")
	short := g.Generate(context.Background(), "scifi", "short", "Captain Vega")

	assert.True(t, strings.HasSuffix(short.Text, "..."))
	assert.Less(t, len(short.Text), len(medium.Text))
}

func TestGenerateShortLengthKeepsValidUTF8(t *testing.T) {
	t.Parallel()

	g := story.NewGenerator(nil)

	// Multibyte character names must never be cut mid-rune when the story
	// is halved. A name longer than the template's own text pulls the
	// midpoint inside the name; sweeping the length walks the cut across
	// rune boundaries.
	for k := 150; k <= 170; k++ {
		name := strings.Repeat("龍", k)
		st := g.Generate(context.Background(), "romance", "short", name)
		require.True(t, utf8.ValidString(st.Text), "name length %d", k)
	}
}

func TestGenerateLongLengthAppendsContinuation(t *testing.T) {
	t.Parallel()

	g := story.NewGenerator(nil)

	st := g.Generate(context.Background(), "adventure", "long", "Captain Vega")

	assert.Contains(t, st.Text, "The adventure continued as Captain Vega")
	assert.Contains(t, st.Text, "remembered for generations")
}
