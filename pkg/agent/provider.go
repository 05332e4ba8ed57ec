package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/novatitan/cloudwarden/pkg/config"
)

// GenerateRequest is a single bounded generation request against a resolved
// model.
type GenerateRequest struct {
	Model       string
	Prompt      string
	Temperature float64
}

// Provider is the capability surface the analysis layer needs from an
// inference backend.
type Provider interface {
	// ListModels returns the names of the models installed on the backend.
	ListModels(ctx context.Context) ([]string, error)
	// Generate runs one completion and returns the trimmed response text.
	// Transport, timeout and non-success failures are reported as
	// *InferenceError; they never escape as raw transport errors.
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// InferenceError wraps a failed generation call with the backend it hit.
type InferenceError struct {
	Backend string
	Err     error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("%s inference failed: %v", e.Backend, e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }

// NewProvider constructs the backend named in cfg. It never fails: unknown
// backends and failed client setup select the always-unavailable provider,
// so callers degrade gracefully instead of branching on setup errors.
func NewProvider(ctx context.Context, cfg config.AIAgentConfig, settings config.Settings, logger *slog.Logger) Provider {
	switch cfg.Backend {
	case "", config.BackendOllama:
		return NewOllamaProvider(cfg.BaseURL, cfg.TimeoutSeconds, settings)
	case config.BackendGemini:
		p, err := NewGeminiProvider(ctx, cfg.APIKey)
		if err != nil {
			logger.Warn("gemini client setup failed, AI features disabled", "error", err)
			return unavailableProvider{}
		}
		return p
	default:
		logger.Warn("unknown AI backend, AI features disabled", "backend", cfg.Backend)
		return unavailableProvider{}
	}
}

var errUnavailable = errors.New("no inference backend available")

// unavailableProvider is the no-op backend selected when no real client can
// be constructed. Every call fails, which the orchestrator treats as "run
// without a model".
type unavailableProvider struct{}

func (unavailableProvider) ListModels(context.Context) ([]string, error) {
	return nil, errUnavailable
}

func (unavailableProvider) Generate(context.Context, GenerateRequest) (string, error) {
	return "", &InferenceError{Backend: "none", Err: errUnavailable}
}
