package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echoverse/echoverse/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, int64(16), cfg.Server.MaxUploadMB)
	assert.Equal(t, 30, cfg.Tone.TimeoutSeconds)
	assert.Equal(t, "llama3-8b-8192", cfg.Enhancers.Groq.Model)
	assert.Equal(t, 50, cfg.Speech.RequestsPerMinute)
	assert.Equal(t, "static/audio", cfg.Artifacts.Dir)
	assert.Equal(t, 24, cfg.Artifacts.MaxAgeHours)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "echoverse.yaml")
	yaml := `
server:
  port: 9000
tone:
  endpoint: https://tone.example.com
logging:
  level: debug
  format: text
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "https://tone.example.com", cfg.Tone.Endpoint)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	// Unset values keep their defaults.
	assert.Equal(t, 30, cfg.Enhancers.TimeoutSeconds)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ECHOVERSE_SERVER_PORT", "9999")
	t.Setenv("ECHOVERSE_SPEECH_ENDPOINT", "http://speech.internal:5002")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "http://speech.internal:5002", cfg.Speech.Endpoint)
}

func TestLoadResolvesAPIKeyReferences(t *testing.T) {
	t.Setenv("MY_GROQ_KEY", "gsk-secret")
	t.Setenv("ECHOVERSE_ENHANCERS_GROQ_API_KEY", "${MY_GROQ_KEY}")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "gsk-secret", cfg.Enhancers.Groq.APIKey)
}

func TestLoadMissingFileIsError(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
