// Package config handles loading and validating the echoverse configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config is the root configuration for the echoverse daemon.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Tone      ToneConfig      `mapstructure:"tone"`
	Enhancers EnhancersConfig `mapstructure:"enhancers"`
	Speech    SpeechConfig    `mapstructure:"speech"`
	Artifacts ArtifactsConfig `mapstructure:"artifacts"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig holds the HTTP API server settings.
type ServerConfig struct {
	Port         int   `mapstructure:"port"`
	MaxUploadMB  int64 `mapstructure:"max_upload_mb"`
	MaxRequestKB int64 `mapstructure:"max_request_kb"`
}

// ToneConfig configures the remote tone-transform service.
type ToneConfig struct {
	// Endpoint is the base URL of the tone-transform API (e.g. an ngrok
	// tunnel in front of a hosted model). Empty means local fallback only.
	Endpoint       string `mapstructure:"endpoint"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// EnhancersConfig configures the ordered content-enhancement providers.
// A remote provider is tried only when its key or endpoint is set; the
// local rule-based provider always terminates the chain.
type EnhancersConfig struct {
	Groq           GroqConfig        `mapstructure:"groq"`
	HuggingFace    HuggingFaceConfig `mapstructure:"huggingface"`
	Ollama         OllamaConfig      `mapstructure:"ollama"`
	TimeoutSeconds int               `mapstructure:"timeout_seconds"`
}

// GroqConfig holds Groq API settings (OpenAI-compatible chat completions).
type GroqConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// HuggingFaceConfig holds Hugging Face Inference API settings.
type HuggingFaceConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// OllamaConfig holds self-hosted Ollama settings.
type OllamaConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Model    string `mapstructure:"model"`
}

// SpeechConfig configures the speech-synthesis backend.
type SpeechConfig struct {
	// Endpoint is the URL of the speech-synthesis HTTP service.
	Endpoint       string `mapstructure:"endpoint"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	// RequestsPerMinute rate-limits outbound synthesis calls.
	RequestsPerMinute int `mapstructure:"requests_per_minute"`
}

// ArtifactsConfig holds the generated-audio directory and cleanup policy.
type ArtifactsConfig struct {
	Dir             string `mapstructure:"dir"`
	MaxAgeHours     int    `mapstructure:"max_age_hours"`
	SweepEveryHours int    `mapstructure:"sweep_every_hours"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// Load reads the configuration from file, environment variables, and defaults.
// If configFile is non-empty it is used directly; otherwise the standard
// search order applies: ./echoverse.yaml, ./configs/echoverse.yaml,
// /etc/echoverse/echoverse.yaml.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.max_upload_mb", 16)
	v.SetDefault("server.max_request_kb", 512)
	v.SetDefault("tone.endpoint", "")
	v.SetDefault("tone.timeout_seconds", 30)
	v.SetDefault("enhancers.groq.api_key", "")
	v.SetDefault("enhancers.groq.model", "llama3-8b-8192")
	v.SetDefault("enhancers.huggingface.api_key", "")
	v.SetDefault("enhancers.huggingface.model", "microsoft/DialoGPT-large")
	v.SetDefault("enhancers.ollama.endpoint", "")
	v.SetDefault("enhancers.ollama.model", "llama3")
	v.SetDefault("enhancers.timeout_seconds", 30)
	v.SetDefault("speech.endpoint", "")
	v.SetDefault("speech.timeout_seconds", 30)
	v.SetDefault("speech.requests_per_minute", 50)
	v.SetDefault("artifacts.dir", "static/audio")
	v.SetDefault("artifacts.max_age_hours", 24)
	v.SetDefault("artifacts.sweep_every_hours", 1)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("echoverse")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/echoverse")
	}

	// Environment variables: ECHOVERSE_SERVER_PORT, ECHOVERSE_TONE_ENDPOINT, etc.
	v.SetEnvPrefix("ECHOVERSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (optional — env vars and defaults are sufficient)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		slog.Info("no config file found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Resolve env var references in sensitive fields (e.g., "${GROQ_API_KEY}")
	cfg.Enhancers.Groq.APIKey = resolveEnvRef(cfg.Enhancers.Groq.APIKey)
	cfg.Enhancers.HuggingFace.APIKey = resolveEnvRef(cfg.Enhancers.HuggingFace.APIKey)

	return &cfg, nil
}

// resolveEnvRef replaces "${VAR_NAME}" patterns with the corresponding env var value.
func resolveEnvRef(val string) string {
	if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
		envKey := val[2 : len(val)-1]
		if envVal := os.Getenv(envKey); envVal != "" {
			return envVal
		}
	}
	return val
}

// SetupLogging configures the global slog logger based on config.
func SetupLogging(cfg LoggingConfig) {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
