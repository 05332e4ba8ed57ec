package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/novatitan/cloudwarden/pkg/config"
)

const (
	defaultGenerateTimeout = 120 * time.Second
	registryProbeTimeout   = 5 * time.Second
)

// OllamaProvider talks to a locally hosted Ollama server over its HTTP API.
// Generation carries the process-wide limits from config.Settings on every
// call; local model invocation is latency- and memory-sensitive, so output
// size is bounded to keep turnaround predictable.
type OllamaProvider struct {
	baseURL  string
	client   *http.Client
	probe    *http.Client
	settings config.Settings
}

// NewOllamaProvider builds a client for the server at baseURL. The generate
// timeout comes from timeoutSeconds; the registry probe uses a short fixed
// timeout of its own.
func NewOllamaProvider(baseURL string, timeoutSeconds int, settings config.Settings) *OllamaProvider {
	timeout := defaultGenerateTimeout
	if timeoutSeconds > 0 {
		timeout = time.Duration(timeoutSeconds) * time.Second
	}
	return &OllamaProvider{
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: timeout},
		probe:    &http.Client{Timeout: registryProbeTimeout},
		settings: settings,
	}
}

// ListModels queries /api/tags, the Ollama model registry endpoint.
func (p *OllamaProvider) ListModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.probe.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status: %s", resp.Status)
	}

	var result struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(result.Models))
	for _, m := range result.Models {
		if m.Name != "" {
			names = append(names, m.Name)
		}
	}
	return names, nil
}

// generatePayload mirrors the Ollama /api/generate request body.
type generatePayload struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	Stream  bool   `json:"stream"`
	Options struct {
		Temperature float64 `json:"temperature"`
		NumPredict  int     `json:"num_predict"`
		NumCtx      int     `json:"num_ctx"`
	} `json:"options"`
	KeepAlive string `json:"keep_alive"`
}

// Generate runs one non-streaming completion. Each call is attempted exactly
// once; the HTTP client timeout is the only bound.
func (p *OllamaProvider) Generate(ctx context.Context, genReq GenerateRequest) (string, error) {
	payload := generatePayload{
		Model:     genReq.Model,
		Prompt:    genReq.Prompt,
		KeepAlive: p.settings.KeepAlive,
	}
	payload.Options.Temperature = genReq.Temperature
	payload.Options.NumPredict = p.settings.MaxTokens
	payload.Options.NumCtx = p.settings.ContextLength

	body, err := json.Marshal(payload)
	if err != nil {
		return "", &InferenceError{Backend: "ollama", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", &InferenceError{Backend: "ollama", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", &InferenceError{Backend: "ollama", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &InferenceError{Backend: "ollama", Err: fmt.Errorf("server returned status: %s", resp.Status)}
	}

	var result struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &InferenceError{Backend: "ollama", Err: err}
	}
	return strings.TrimSpace(result.Response), nil
}
