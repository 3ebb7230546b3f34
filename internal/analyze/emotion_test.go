package analyze_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/echoverse/echoverse/internal/analyze"
)

func TestAnalyzeEmotionsNeutralDefault(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", "a plain factual sentence"} {
		p := analyze.AnalyzeEmotions(text)
		assert.Equal(t, "neutral", p.Primary)
		assert.InDelta(t, 0.5, p.Intensity, 1e-9)
		assert.InDelta(t, 0.8, p.Confidence, 1e-9)
		assert.InDelta(t, 0.5, p.Emotions["neutral"], 1e-9)
	}
}

func TestAnalyzeEmotionsIntensityClamped(t *testing.T) {
	t.Parallel()

	// One joy hit across two words scores 5.0 before clamping.
	p := analyze.AnalyzeEmotions("happy days")

	assert.Equal(t, "joy", p.Primary)
	assert.InDelta(t, 1.0, p.Intensity, 1e-9)
}

func TestAnalyzeEmotionsPrimaryArgmax(t *testing.T) {
	t.Parallel()

	// Two fear hits against one joy hit in a long enough text to avoid
	// clamping both to 1.0.
	text := "She was happy at first but panic and terror took over once the " +
		"storm rolled in across the valley and the night went completely dark"

	p := analyze.AnalyzeEmotions(text)

	assert.Equal(t, "fear", p.Primary)
	assert.Greater(t, p.Emotions["fear"], p.Emotions["joy"])
}

func TestAnalyzeEmotionsTiePrefersEarlierEmotion(t *testing.T) {
	t.Parallel()

	// One hit each for joy ("happy") and sadness ("sad") in a text long
	// enough that neither clamps differently: equal intensities.
	p := analyze.AnalyzeEmotions("happy sad")

	assert.Equal(t, "joy", p.Primary)
	assert.InDelta(t, p.Emotions["joy"], p.Emotions["sadness"], 1e-9)
}
