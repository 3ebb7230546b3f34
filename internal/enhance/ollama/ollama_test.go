package ollama_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echoverse/echoverse/internal/enhance/ollama"
)

func TestEnhanceSuccess(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model  string `json:"model"`
			Prompt string `json:"prompt"`
			Stream bool   `json:"stream"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3", req.Model)
		assert.False(t, req.Stream)
		assert.Contains(t, req.Prompt, "audiobook narration")

		_ = json.NewEncoder(w).Encode(map[string]string{"response": "a finer telling"})
	}))
	defer srv.Close()

	p := ollama.New(srv.URL, "llama3", time.Second)

	got, err := p.Enhance(context.Background(), "a plain telling", "creative")
	require.NoError(t, err)
	assert.Equal(t, "a finer telling", got)
}

func TestEnhanceServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	p := ollama.New(srv.URL, "llama3", time.Second)

	_, err := p.Enhance(context.Background(), "text", "general")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestEnhanceUnreachable(t *testing.T) {
	t.Parallel()

	p := ollama.New("http://127.0.0.1:1/api/generate", "llama3", 200*time.Millisecond)

	_, err := p.Enhance(context.Background(), "text", "general")
	assert.Error(t, err)
}

func TestName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "ollama", ollama.New("", "", 0).Name())
}
