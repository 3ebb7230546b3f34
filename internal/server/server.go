// Package server exposes the audiobook pipeline over HTTP.
//
// All processing endpoints are request-scoped and share no mutable state,
// so requests run in parallel. The server also carries the liveness and
// readiness probes and the Swagger UI.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/echoverse/echoverse/internal/analyze"
	"github.com/echoverse/echoverse/internal/artifact"
	"github.com/echoverse/echoverse/internal/enhance"
	"github.com/echoverse/echoverse/internal/extract"
	"github.com/echoverse/echoverse/internal/pipeline"
	"github.com/echoverse/echoverse/internal/story"
	"github.com/echoverse/echoverse/internal/synth"
	"github.com/echoverse/echoverse/internal/tone"
	"github.com/echoverse/echoverse/internal/voice"
)

// Prober reports whether a remote collaborator is reachable.
type Prober interface {
	Health(ctx context.Context) error
}

// ToneLister reports the tones a remote tone service supports.
type ToneLister interface {
	AvailableTones(ctx context.Context) ([]string, error)
}

// Options carries the service handles the server routes to.
type Options struct {
	Pipeline    *pipeline.Pipeline
	Tone        *tone.Transformer
	Enhancer    *enhance.Chain
	Stories     *story.Generator
	Store       *artifact.Store
	ToneProbe   Prober     // nil when no remote tone service is configured
	ToneLister  ToneLister // nil when no remote tone service is configured
	SpeechProbe Prober

	// MaxUploadBytes caps multipart uploads (defaults to 16 MB).
	MaxUploadBytes int64

	// MaxRequestBytes caps JSON request bodies (defaults to 256 KB).
	MaxRequestBytes int64
}

// Server is the EchoVerse HTTP API.
type Server struct {
	port   int
	opts   Options
	ready  atomic.Bool
	server *http.Server
}

// New creates a server on the given port.
func New(port int, opts Options) *Server {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 16 << 20
	}
	if opts.MaxRequestBytes <= 0 {
		opts.MaxRequestBytes = 256 << 10
	}
	return &Server{port: port, opts: opts}
}

// SetReady marks the server as ready to accept traffic.
func (s *Server) SetReady(ready bool) {
	s.ready.Store(ready)
}

// Handler builds the route table. Exposed separately so tests can drive
// the mux through httptest without binding a port.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/process", s.handleProcess)
	mux.HandleFunc("POST /api/transform", s.handleTransform)
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	mux.HandleFunc("POST /api/voice-recommendations", s.handleVoiceRecommendations)
	mux.HandleFunc("POST /api/generate-story", s.handleGenerateStory)
	mux.HandleFunc("POST /api/extract-text", s.handleExtractText)
	mux.HandleFunc("GET /api/download/{job_id}", s.handleDownload)
	mux.HandleFunc("GET /api/models/status", s.handleModelsStatus)

	mux.HandleFunc("GET /healthz", s.handleProbe)
	mux.HandleFunc("GET /readyz", s.handleProbe)

	// Swagger UI — serves the generated OpenAPI docs.
	mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return mux
}

// ListenAndServe starts the HTTP server. It blocks until the context is
// cancelled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("http server listening", "port", s.port)

	go func() {
		<-ctx.Done()
		slog.Info("http server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	if err := s.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http listen: %w", err)
	}
	return nil
}

// handleProcess runs the full audiobook pipeline.
//
// @Summary     Process text into an audiobook
// @Description Runs tone transformation, enhancement, analysis, voice recommendation,
// @Description and audio synthesis, returning the completed job with its audio file id.
// @Tags        pipeline
// @Accept      json
// @Produce     json
// @Param       request  body      pipeline.Request  true  "Job request"
// @Success     200  {object}  pipeline.Result
// @Failure     400  {object}  map[string]string  "text is required"
// @Failure     500  {object}  map[string]string  "audio generation failed"
// @Router      /api/process [post]
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	var req pipeline.Request
	if !s.decode(w, r, &req) {
		return
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	if s.opts.Pipeline == nil {
		writeError(w, http.StatusInternalServerError, "services not initialized")
		return
	}

	result, err := s.opts.Pipeline.Process(r.Context(), req)
	if err != nil {
		slog.Error("processing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "audio generation failed")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type transformRequest struct {
	Text string `json:"text"`
	Tone string `json:"tone"`
}

type transformResponse struct {
	Status          string `json:"status"`
	TransformedText string `json:"transformed_text"`
	Tone            string `json:"tone"`
	UsedFallback    bool   `json:"used_fallback"`
}

// handleTransform rewrites text in a narration tone.
//
// @Summary  Transform text tone
// @Tags     pipeline
// @Accept   json
// @Produce  json
// @Param    request  body      transformRequest  true  "Text and target tone"
// @Success  200  {object}  transformResponse
// @Failure  400  {object}  map[string]string
// @Router   /api/transform [post]
func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	var req transformRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	res := s.opts.Tone.Transform(r.Context(), req.Text, req.Tone)
	writeJSON(w, http.StatusOK, transformResponse{
		Status:          "success",
		TransformedText: res.Text,
		Tone:            req.Tone,
		UsedFallback:    res.UsedFallback,
	})
}

type analyzeRequest struct {
	Text string `json:"text"`
}

// handleAnalyze returns content insights for the given text.
//
// @Summary  Analyze content
// @Tags     analysis
// @Accept   json
// @Produce  json
// @Param    request  body      analyzeRequest  true  "Text to analyze"
// @Success  200  {object}  map[string]any
// @Failure  400  {object}  map[string]string
// @Router   /api/analyze [post]
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	analysis := analyze.Analyze(req.Text)
	recs := voice.Recommend(req.Text, analysis.DetectedGenre)
	analysis.RecommendedVoice = recs[0].Archetype

	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "success",
		"analysis": analysis,
		"emotions": analyze.AnalyzeEmotions(req.Text),
	})
}

type voiceRequest struct {
	Content string `json:"content"`
	Genre   string `json:"genre"`
}

// handleVoiceRecommendations ranks voice archetypes for the content.
//
// @Summary  Recommend narration voices
// @Tags     analysis
// @Accept   json
// @Produce  json
// @Param    request  body      voiceRequest  true  "Content and optional genre"
// @Success  200  {object}  map[string]any
// @Router   /api/voice-recommendations [post]
func (s *Server) handleVoiceRecommendations(w http.ResponseWriter, r *http.Request) {
	var req voiceRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Genre == "" {
		req.Genre = "general"
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":          "success",
		"recommendations": voice.Recommend(req.Content, req.Genre),
	})
}

type storyRequest struct {
	Theme     string `json:"theme"`
	Length    string `json:"length"`
	Character string `json:"character"`
}

// handleGenerateStory produces a themed demo story.
//
// @Summary  Generate a story
// @Tags     story
// @Accept   json
// @Produce  json
// @Param    request  body      storyRequest  true  "Theme, length and character"
// @Success  200  {object}  story.Story
// @Router   /api/generate-story [post]
func (s *Server) handleGenerateStory(w http.ResponseWriter, r *http.Request) {
	var req storyRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Theme == "" {
		req.Theme = "adventure"
	}

	st := s.opts.Stories.Generate(r.Context(), req.Theme, req.Length, req.Character)
	writeJSON(w, http.StatusOK, map[string]any{
		"status":             "success",
		"story":              st.Text,
		"theme":              st.Theme,
		"length":             st.Length,
		"character":          st.Character,
		"word_count":         st.WordCount,
		"estimated_duration": st.EstimatedDuration,
	})
}

// handleExtractText pulls narration text out of an uploaded document.
//
// @Summary     Extract text from a file
// @Description Accepts a multipart upload (field "file") of a .txt, .md or .html document.
// @Tags        story
// @Accept      multipart/form-data
// @Produce     json
// @Param       file  formData  file  true  "Document to extract"
// @Success     200  {object}  map[string]any
// @Failure     400  {object}  map[string]string
// @Router      /api/extract-text [post]
func (s *Server) handleExtractText(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		writeError(w, http.StatusBadRequest, "no file selected")
		return
	}
	if !extract.Allowed(header.Filename) {
		writeError(w, http.StatusBadRequest, "invalid file type")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading upload: "+err.Error())
		return
	}

	text, err := extract.Text(header.Filename, data)
	if err != nil {
		writeError(w, http.StatusBadRequest, "no text could be extracted from the file")
		return
	}

	slog.Info("text extracted", "filename", header.Filename, "chars", len(text))
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "success",
		"text":     text,
		"filename": header.Filename,
		"length":   len(text),
	})
}

// handleDownload serves a completed job's audio file.
//
// @Summary  Download generated audio
// @Tags     pipeline
// @Produce  audio/mpeg
// @Param    job_id  path  string  true  "Job identifier"
// @Success  200  {file}    file
// @Failure  404  {object}  map[string]string
// @Router   /api/download/{job_id} [get]
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("job_id")

	path, err := s.opts.Store.Path(jobID + ".mp3")
	if err != nil {
		writeError(w, http.StatusNotFound, "audio file not found")
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "echoverse_audiobook_"+jobID+".mp3"))
	http.ServeFile(w, r, path)
}

type modelStatus struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

// handleModelsStatus probes the remote collaborators.
//
// @Summary  Report backend model status
// @Tags     status
// @Produce  json
// @Success  200  {object}  map[string]any
// @Router   /api/models/status [get]
func (s *Server) handleModelsStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	writeJSON(w, http.StatusOK, map[string]any{
		"tone": modelStatus{
			Name:        "granite",
			Status:      probe(ctx, s.opts.ToneProbe),
			Description: "Text tone transformation",
		},
		"tones": s.availableTones(ctx),
		"speech": modelStatus{
			Name:        "gtts",
			Status:      probe(ctx, s.opts.SpeechProbe),
			Description: "Audio synthesis",
		},
		"enhancers": map[string]any{
			"providers":   s.opts.Enhancer.Providers(),
			"description": "Content enhancement chain",
		},
		"languages":    synth.SupportedLanguages,
		"voice_styles": synth.VoiceStyles,
	})
}

func (s *Server) handleProbe(w http.ResponseWriter, r *http.Request) {
	if !s.ready.Load() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not_ready"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// availableTones asks the remote tone service for its tone list, falling
// back to the built-in set when none is configured or the call fails.
func (s *Server) availableTones(ctx context.Context) []string {
	if s.opts.ToneLister != nil {
		tones, err := s.opts.ToneLister.AvailableTones(ctx)
		if err == nil && len(tones) > 0 {
			return tones
		}
		if err != nil {
			slog.Warn("fetching remote tone list", "error", err)
		}
	}
	return tone.Tones
}

func probe(ctx context.Context, p Prober) string {
	if p == nil {
		return "not_configured"
	}
	if err := p.Health(ctx); err != nil {
		return "offline"
	}
	return "online"
}

// decode reads a size-limited JSON body into dst, writing the 400 itself
// on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxRequestBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
