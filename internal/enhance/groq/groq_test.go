package groq_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echoverse/echoverse/internal/enhance/groq"
)

func TestEnhanceSuccess(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3-8b-8192", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Contains(t, req.Messages[0].Content, "raw draft")

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "  polished text  "}},
			},
		})
	}))
	defer srv.Close()

	p := groq.NewWithURL("test-key", "llama3-8b-8192", srv.URL, time.Second)

	got, err := p.Enhance(context.Background(), "raw draft", "general")
	require.NoError(t, err)
	assert.Equal(t, "polished text", got)
}

func TestEnhanceHTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := groq.NewWithURL("k", "m", srv.URL, time.Second)

	_, err := p.Enhance(context.Background(), "text", "general")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestEnhanceNoChoices(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	p := groq.NewWithURL("k", "m", srv.URL, time.Second)

	_, err := p.Enhance(context.Background(), "text", "general")
	require.Error(t, err)
}

func TestName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "groq", groq.New("k", "m", 0).Name())
}
