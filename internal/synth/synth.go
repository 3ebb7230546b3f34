// Package synth turns narration text into stored audio artifacts. It
// validates the language, adapts the voice style to the detected emotion,
// normalizes the text for speech, and fails hard when the speech backend
// cannot produce a usable file — audio is the one stage with no fallback.
package synth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/echoverse/echoverse/internal/analyze"
	"github.com/echoverse/echoverse/internal/artifact"
)

// SupportedLanguages maps language codes to display names.
var SupportedLanguages = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"ru": "Russian",
	"ja": "Japanese",
	"ko": "Korean",
	"zh": "Chinese",
	"ar": "Arabic",
	"hi": "Hindi",
}

// VoiceStyles lists the accepted voice style names.
var VoiceStyles = []string{"neutral", "dramatic", "energetic", "calm", "professional", "storytelling"}

// speakingRates holds average words per minute by language, used for
// duration estimates. Languages not listed fall back to 150.
var speakingRates = map[string]int{
	"en": 150,
	"es": 160,
	"fr": 140,
	"de": 130,
	"it": 155,
	"pt": 150,
	"ru": 135,
	"ja": 120,
	"ko": 125,
	"zh": 110,
	"ar": 140,
	"hi": 145,
}

// emotionStyles maps a primary emotion to the voice style that suits it.
// The override only applies when the emotion intensity exceeds the
// threshold; weaker signals keep the caller's requested style.
var emotionStyles = map[string]string{
	"joy":        "energetic",
	"excitement": "energetic",
	"surprise":   "energetic",
	"sadness":    "calm",
	"calm":       "calm",
	"fear":       "dramatic",
	"anger":      "dramatic",
	"neutral":    "neutral",
}

const emotionOverrideThreshold = 0.6

// abbreviations expanded before synthesis so the voice reads them out.
var abbreviations = []struct{ short, full string }{
	{"Dr.", "Doctor"},
	{"Mr.", "Mister"},
	{"Mrs.", "Missus"},
	{"Ms.", "Miss"},
	{"Prof.", "Professor"},
	{"St.", "Saint"},
	{"Ave.", "Avenue"},
	{"Rd.", "Road"},
	{"Blvd.", "Boulevard"},
}

// SpeechClient is the remote synthesis backend.
type SpeechClient interface {
	Synthesize(ctx context.Context, text, language string) ([]byte, error)
}

// Synthesizer generates audio artifacts from text.
type Synthesizer struct {
	speech SpeechClient
	store  *artifact.Store
}

// New returns a synthesizer writing into the given store.
func New(speech SpeechClient, store *artifact.Store) *Synthesizer {
	return &Synthesizer{speech: speech, store: store}
}

// Synthesize converts text to a stored audio artifact. Unsupported
// languages are coerced to English. A non-nil emotion profile with high
// intensity overrides the requested voice style.
func (s *Synthesizer) Synthesize(ctx context.Context, text, language, style string, profile *analyze.EmotionProfile) (*artifact.Artifact, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("text cannot be empty")
	}

	if _, ok := SupportedLanguages[language]; !ok {
		slog.Warn("unsupported language, using English", "language", language)
		language = "en"
	}

	style = s.adaptStyle(style, profile)

	processed := PreprocessText(text)

	slog.Info("generating audio",
		"chars", len(processed),
		"language", language,
		"style", style,
	)

	audio, err := s.speech.Synthesize(ctx, processed, language)
	if err != nil {
		return nil, fmt.Errorf("audio generation failed: %w", err)
	}

	art, err := s.store.Write(audio)
	if err != nil {
		return nil, fmt.Errorf("audio generation failed: %w", err)
	}
	art.DurationMinutes = EstimateDuration(text, language)

	slog.Info("audio generated", "artifact", art.ID, "bytes", art.ByteSize)
	return art, nil
}

// adaptStyle resolves the effective voice style from the requested one and
// the emotion profile.
func (s *Synthesizer) adaptStyle(style string, profile *analyze.EmotionProfile) string {
	if style == "" {
		style = "neutral"
	}
	if profile == nil || profile.Intensity <= emotionOverrideThreshold {
		return style
	}
	if mapped, ok := emotionStyles[profile.Primary]; ok {
		return mapped
	}
	return style
}

// PreprocessText normalizes text for speech: collapses whitespace, pads
// punctuation for pacing, expands common abbreviations and ordinals.
func PreprocessText(text string) string {
	processed := strings.Join(strings.Fields(text), " ")

	processed = strings.ReplaceAll(processed, ".", ". ")
	processed = strings.ReplaceAll(processed, ",", ", ")
	processed = strings.ReplaceAll(processed, ";", "; ")
	processed = strings.ReplaceAll(processed, ":", ": ")

	for _, a := range abbreviations {
		processed = strings.ReplaceAll(processed, a.short, a.full)
	}

	processed = strings.ReplaceAll(processed, "1st", "first")
	processed = strings.ReplaceAll(processed, "2nd", "second")
	processed = strings.ReplaceAll(processed, "3rd", "third")

	// Padding can leave double spaces; collapse to exactly one.
	return strings.Join(strings.Fields(processed), " ")
}

// EstimateDuration returns the estimated narration length in minutes for
// the given language, rounded to one decimal place.
func EstimateDuration(text, language string) float64 {
	words := len(strings.Fields(text))
	rate, ok := speakingRates[language]
	if !ok {
		rate = 150
	}
	minutes := float64(words) / float64(rate)
	return math.Round(minutes*10) / 10
}
