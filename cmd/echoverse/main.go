// Echoverse is an AI audiobook generation service. It transforms raw text
// through a tone rewriter, an LLM enhancement chain, and content analysis,
// then renders narrated audio via a speech synthesis backend.
//
// Usage:
//
//	echoverse [flags]
//	echoverse --config /path/to/echoverse.yaml
//
// @title       EchoVerse API
// @version     1.0
// @description AI-powered audiobook generation pipeline.
// @BasePath    /
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/echoverse/echoverse/docs"
	"github.com/echoverse/echoverse/internal/artifact"
	"github.com/echoverse/echoverse/internal/config"
	"github.com/echoverse/echoverse/internal/enhance"
	groqenh "github.com/echoverse/echoverse/internal/enhance/groq"
	hfenh "github.com/echoverse/echoverse/internal/enhance/hf"
	localenh "github.com/echoverse/echoverse/internal/enhance/local"
	ollamaenh "github.com/echoverse/echoverse/internal/enhance/ollama"
	"github.com/echoverse/echoverse/internal/pipeline"
	"github.com/echoverse/echoverse/internal/server"
	"github.com/echoverse/echoverse/internal/story"
	"github.com/echoverse/echoverse/internal/synth"
	"github.com/echoverse/echoverse/internal/synth/gtts"
	"github.com/echoverse/echoverse/internal/tone"
	"github.com/echoverse/echoverse/internal/tone/granite"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configFile := flag.String("config", "", "path to config file (e.g. configs/echoverse.yaml)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("echoverse %s\n", version)
		os.Exit(0)
	}

	// Load configuration.
	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging.
	config.SetupLogging(cfg.Logging)
	slog.Info("echoverse starting", "version", version)

	// Create root context with signal handling for graceful shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Tone transformer: remote service when configured, local rules always.
	var toneRemote tone.RemoteTransformer
	var toneProbe server.Prober
	var toneLister server.ToneLister
	if cfg.Tone.Endpoint != "" {
		client := granite.New(cfg.Tone.Endpoint, time.Duration(cfg.Tone.TimeoutSeconds)*time.Second)
		toneRemote = client
		toneProbe = client
		toneLister = client
		slog.Info("using remote tone service", "endpoint", cfg.Tone.Endpoint)
	} else {
		slog.Info("no tone service configured, using local rules only")
	}
	toneTransformer := tone.New(toneRemote)

	// Enhancement chain in priority order; local rules terminate it.
	enhTimeout := time.Duration(cfg.Enhancers.TimeoutSeconds) * time.Second
	var providers []enhance.Provider
	if cfg.Enhancers.Groq.APIKey != "" {
		providers = append(providers, groqenh.New(cfg.Enhancers.Groq.APIKey, cfg.Enhancers.Groq.Model, enhTimeout))
	}
	if cfg.Enhancers.HuggingFace.APIKey != "" {
		providers = append(providers, hfenh.New(cfg.Enhancers.HuggingFace.APIKey, cfg.Enhancers.HuggingFace.Model, enhTimeout))
	}
	if cfg.Enhancers.Ollama.Endpoint != "" {
		providers = append(providers, ollamaenh.New(cfg.Enhancers.Ollama.Endpoint, cfg.Enhancers.Ollama.Model, enhTimeout))
	}
	providers = append(providers, localenh.New())
	chain := enhance.NewChain(providers...)
	slog.Info("enhancement chain ready", "providers", chain.Providers())

	// Artifact store and speech backend.
	store, err := artifact.NewStore(cfg.Artifacts.Dir)
	if err != nil {
		slog.Error("failed to create artifact store", "error", err)
		os.Exit(1)
	}

	if cfg.Speech.Endpoint == "" {
		slog.Error("speech.endpoint must be configured")
		os.Exit(1)
	}
	speech, err := gtts.New(gtts.Config{
		BaseURL:           cfg.Speech.Endpoint,
		Timeout:           time.Duration(cfg.Speech.TimeoutSeconds) * time.Second,
		RequestsPerMinute: cfg.Speech.RequestsPerMinute,
	})
	if err != nil {
		slog.Error("failed to create speech client", "error", err)
		os.Exit(1)
	}

	synthesizer := synth.New(speech, store)
	pipe := pipeline.New(toneTransformer, chain, synthesizer, store)
	stories := story.NewGenerator(chain)

	// Periodic artifact cleanup.
	go sweepArtifacts(ctx, store,
		time.Duration(cfg.Artifacts.MaxAgeHours)*time.Hour,
		time.Duration(cfg.Artifacts.SweepEveryHours)*time.Hour)

	srv := server.New(cfg.Server.Port, server.Options{
		Pipeline:        pipe,
		Tone:            toneTransformer,
		Enhancer:        chain,
		Stories:         stories,
		Store:           store,
		ToneProbe:       toneProbe,
		ToneLister:      toneLister,
		SpeechProbe:     speech,
		MaxUploadBytes:  cfg.Server.MaxUploadMB << 20,
		MaxRequestBytes: cfg.Server.MaxRequestKB << 10,
	})

	srv.SetReady(true)
	slog.Info("echoverse ready", "port", cfg.Server.Port, "artifacts_dir", store.Dir())

	if err := srv.ListenAndServe(ctx); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}

	slog.Info("echoverse stopped")
}

// sweepArtifacts removes expired audio files on a fixed interval until the
// context is cancelled.
func sweepArtifacts(ctx context.Context, store *artifact.Store, maxAge, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := store.Sweep(maxAge); err != nil {
				slog.Warn("artifact sweep failed", "error", err)
			}
		}
	}
}
