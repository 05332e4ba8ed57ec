package agent

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novatitan/cloudwarden/pkg/config"
)

func TestOllamaGenerateCarriesLimits(t *testing.T) {
	var got generatePayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(map[string]string{"response": "  ok  "})
	}))
	defer srv.Close()

	settings := config.Settings{MaxTokens: 99, ContextLength: 512, KeepAlive: "2m"}
	p := NewOllamaProvider(srv.URL, 5, settings)

	out, err := p.Generate(context.Background(), GenerateRequest{
		Model:       "llama3.1:8b",
		Prompt:      "explain",
		Temperature: 0.2,
	})
	require.NoError(t, err)

	assert.Equal(t, "ok", out)
	assert.Equal(t, "llama3.1:8b", got.Model)
	assert.Equal(t, "explain", got.Prompt)
	assert.False(t, got.Stream)
	assert.Equal(t, 0.2, got.Options.Temperature)
	assert.Equal(t, 99, got.Options.NumPredict)
	assert.Equal(t, 512, got.Options.NumCtx)
	assert.Equal(t, "2m", got.KeepAlive)
}

func TestOllamaGenerateServerErrorIsInferenceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model crashed", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, 5, config.DefaultSettings())
	_, err := p.Generate(context.Background(), GenerateRequest{Model: "m", Prompt: "p"})

	var infErr *InferenceError
	require.ErrorAs(t, err, &infErr)
	assert.Equal(t, "ollama", infErr.Backend)
}

func TestOllamaGenerateTransportErrorIsInferenceError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	p := NewOllamaProvider(url, 1, config.DefaultSettings())
	_, err := p.Generate(context.Background(), GenerateRequest{Model: "m", Prompt: "p"})

	var infErr *InferenceError
	assert.True(t, errors.As(err, &infErr))
}

func TestOllamaListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"models": []map[string]string{
			{"name": "llama3.1:8b"},
			{"name": "deepseek-r1:7b"},
			{"name": ""},
		}})
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, 5, config.DefaultSettings())
	models, err := p.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"llama3.1:8b", "deepseek-r1:7b"}, models)
}

func TestOllamaListModelsNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, 5, config.DefaultSettings())
	_, err := p.ListModels(context.Background())
	assert.Error(t, err)
}
