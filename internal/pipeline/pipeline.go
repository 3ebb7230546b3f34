// Package pipeline orchestrates the audiobook stages: tone transformation,
// content enhancement, analysis, voice recommendation, and audio synthesis.
// Stages run strictly in order and each consumes the previous stage's
// output. Every stage except synthesis degrades to a fallback instead of
// failing, so the only error a job can surface is a failed audio render.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/echoverse/echoverse/internal/analyze"
	"github.com/echoverse/echoverse/internal/artifact"
	"github.com/echoverse/echoverse/internal/enhance"
	"github.com/echoverse/echoverse/internal/synth"
	"github.com/echoverse/echoverse/internal/tone"
	"github.com/echoverse/echoverse/internal/voice"
)

// Request is one audiobook job.
type Request struct {
	Text       string `json:"text"`
	Tone       string `json:"tone"`
	Language   string `json:"language"`
	VoiceStyle string `json:"voice_style"`
}

// StageResult records how one stage resolved.
type StageResult struct {
	Stage        string `json:"stage"`
	Provider     string `json:"provider,omitempty"`
	UsedFallback bool   `json:"used_fallback"`
}

// Result is the completed job.
type Result struct {
	JobID           string                 `json:"job_id"`
	Status          string                 `json:"status"`
	AudioFile       string                 `json:"audio_file"`
	OriginalText    string                 `json:"original_text"`
	TransformedText string                 `json:"transformed_text"`
	EnhancedText    string                 `json:"enhanced_text"`
	Analysis        analyze.Analysis       `json:"analysis"`
	Emotions        analyze.EmotionProfile `json:"emotions"`
	Recommendations []voice.Recommendation `json:"voice_recommendations"`
	DurationMinutes float64                `json:"estimated_duration_minutes"`
	Stages          []StageResult          `json:"processing_steps"`
}

// Pipeline holds the stage handles. Construct once and share across
// requests; it carries no per-job state.
type Pipeline struct {
	tone     *tone.Transformer
	enhancer *enhance.Chain
	synth    *synth.Synthesizer
	store    *artifact.Store
}

// New wires the stages into a pipeline.
func New(t *tone.Transformer, e *enhance.Chain, s *synth.Synthesizer, store *artifact.Store) *Pipeline {
	return &Pipeline{tone: t, enhancer: e, synth: s, store: store}
}

// Process runs one job end to end.
func (p *Pipeline) Process(ctx context.Context, req Request) (*Result, error) {
	jobID := uuid.NewString()
	log := slog.With("job_id", jobID)
	log.Info("processing audiobook job", "chars", len(req.Text), "tone", req.Tone)

	stages := make([]StageResult, 0, 4)

	toneRes := p.tone.Transform(ctx, req.Text, req.Tone)
	stages = append(stages, StageResult{Stage: "tone_transformation", UsedFallback: toneRes.UsedFallback})

	enhRes := p.enhancer.Enhance(ctx, toneRes.Text, enhance.StyleGeneral)
	stages = append(stages, StageResult{
		Stage:        "content_enhancement",
		Provider:     enhRes.Provider,
		UsedFallback: enhRes.UsedFallback,
	})

	analysis := analyze.Analyze(enhRes.Text)
	emotions := analyze.AnalyzeEmotions(enhRes.Text)
	recs := voice.Recommend(enhRes.Text, analysis.DetectedGenre)
	analysis.RecommendedVoice = recs[0].Archetype
	stages = append(stages, StageResult{Stage: "content_analysis"})

	style := req.VoiceStyle
	if style == "" {
		style = analysis.RecommendedVoice
	}

	art, err := p.synth.Synthesize(ctx, enhRes.Text, req.Language, style, &emotions)
	if err != nil {
		log.Error("audio generation failed", "error", err)
		return nil, fmt.Errorf("audio generation failed: %w", err)
	}

	published, err := p.store.Publish(art.ID, jobID)
	if err != nil {
		log.Error("audio generation failed", "error", err)
		return nil, fmt.Errorf("audio generation failed: %w", err)
	}
	stages = append(stages, StageResult{Stage: "audio_generation"})

	log.Info("audiobook job completed", "audio_file", published)

	return &Result{
		JobID:           jobID,
		Status:          "completed",
		AudioFile:       published,
		OriginalText:    req.Text,
		TransformedText: toneRes.Text,
		EnhancedText:    enhRes.Text,
		Analysis:        analysis,
		Emotions:        emotions,
		Recommendations: recs,
		DurationMinutes: art.DurationMinutes,
		Stages:          stages,
	}, nil
}
