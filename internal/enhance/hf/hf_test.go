package hf_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echoverse/echoverse/internal/enhance/hf"
)

func TestEnhanceSuccess(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gpt2-large", r.URL.Path)
		assert.Equal(t, "Bearer hf-key", r.Header.Get("Authorization"))

		var req struct {
			Inputs string `json:"inputs"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Inputs, "draft text")

		_ = json.NewEncoder(w).Encode([]map[string]string{
			{"generated_text": " a better draft "},
		})
	}))
	defer srv.Close()

	p := hf.NewWithURL("hf-key", "gpt2-large", srv.URL, time.Second)

	got, err := p.Enhance(context.Background(), "draft text", "general")
	require.NoError(t, err)
	assert.Equal(t, "a better draft", got)
}

func TestEnhanceEmptyResponseIsError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]string{})
	}))
	defer srv.Close()

	p := hf.NewWithURL("k", "m", srv.URL, time.Second)

	_, err := p.Enhance(context.Background(), "text", "general")
	assert.Error(t, err)
}

func TestEnhanceModelLoadingStatus(t *testing.T) {
	t.Parallel()

	// The inference API answers 503 while a cold model loads; the provider
	// must surface that as an error so the chain can move on.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Model is currently loading"}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := hf.NewWithURL("k", "m", srv.URL, time.Second)

	_, err := p.Enhance(context.Background(), "text", "general")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "huggingface", hf.New("k", "m", 0).Name())
}
