package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/novatitan/cloudwarden/pkg/config"
	"github.com/novatitan/cloudwarden/pkg/engine"
)

// Confidence tiers reported on Analysis. Model-derived results carry 0.85,
// the deterministic synthetic fallback 0.3; callers read the score to judge
// reliability instead of handling errors.
const (
	modelConfidence     = 0.85
	syntheticConfidence = 0.3
)

// Analysis is the structured explanation produced for one finding.
// RemediationSteps and RiskFactors are never empty on return.
type Analysis struct {
	BusinessImpact       string   `json:"business_impact"`
	TechnicalExplanation string   `json:"technical_explanation"`
	RemediationSteps     []string `json:"remediation_steps"`
	RiskFactors          []string `json:"risk_factors"`
	ConfidenceScore      float64  `json:"confidence_score"`
}

// Agent orchestrates AI analysis of security findings. It is immutable once
// New returns and safe for concurrent Analyze calls.
type Agent struct {
	provider      Provider
	cfg           config.AIAgentConfig
	resolvedModel string
	available     bool
	logger        *slog.Logger
}

// New resolves a usable model through the provider's registry and fixes
// availability for the agent's lifetime. A connectivity change after
// construction is not detected; restart the process to re-probe.
func New(ctx context.Context, cfg config.AIAgentConfig, provider Provider, logger *slog.Logger) *Agent {
	a := &Agent{provider: provider, cfg: cfg, logger: logger}

	if !cfg.Enabled {
		logger.Info("AI agent disabled by configuration")
		return a
	}

	if model, ok := ResolveModel(ctx, provider, cfg.Model, cfg.FallbackModel, logger); ok {
		a.resolvedModel = model
		a.available = true
		logger.Info("AI agent initialized", "model", model)
	}
	return a
}

// Available reports whether a usable model was resolved at construction.
func (a *Agent) Available() bool { return a.available }

// ResolvedModel returns the model name selected at construction, or "" when
// the agent is unavailable.
func (a *Agent) ResolvedModel() string { return a.resolvedModel }

// Analyze produces an Analysis for the finding. It never fails: the combined
// strategy is tried first, then the decomposed strategy, then the synthetic
// fallback. Each inference call is attempted exactly once.
func (a *Agent) Analyze(ctx context.Context, f engine.Finding) Analysis {
	if !a.available {
		return a.synthetic(f)
	}

	log := a.logger.With("analysis_id", uuid.NewString())

	if analysis, ok := a.analyzeCombined(ctx, f, log); ok {
		return analysis
	}

	analysis, err := a.analyzeDecomposed(ctx, f)
	if err != nil {
		log.Error("AI analysis failed", "error", err)
		return a.synthetic(f)
	}
	return analysis
}

func (a *Agent) query(ctx context.Context, prompt string) (string, error) {
	return a.provider.Generate(ctx, GenerateRequest{
		Model:       a.resolvedModel,
		Prompt:      prompt,
		Temperature: a.cfg.Temperature,
	})
}

// analyzeCombined runs the fast single-call strategy: one generation asking
// for all four facets as JSON.
func (a *Agent) analyzeCombined(ctx context.Context, f engine.Finding, log *slog.Logger) (Analysis, bool) {
	raw, err := a.query(ctx, CombinedPrompt(f))
	if err != nil {
		log.Debug("combined call failed, falling back to multi-call", "error", err)
		return Analysis{}, false
	}

	analysis, ok := parseCombined(raw)
	if !ok {
		log.Debug("combined JSON parse failed, falling back to multi-call")
		return Analysis{}, false
	}

	// Valid JSON with empty lists still has to honor the non-empty guarantee.
	if len(analysis.RemediationSteps) == 0 {
		analysis.RemediationSteps = []string{raw}
	}
	if len(analysis.RiskFactors) == 0 {
		analysis.RiskFactors = riskFactorsOrDefault(f)
	}
	return analysis, true
}

// analyzeDecomposed runs the three single-facet calls in sequence. Risk
// factors on this path come from the deterministic scan, not the model.
func (a *Agent) analyzeDecomposed(ctx context.Context, f engine.Finding) (Analysis, error) {
	impact, err := a.query(ctx, BusinessImpactPrompt(f))
	if err != nil {
		return Analysis{}, err
	}
	technical, err := a.query(ctx, TechnicalExplanationPrompt(f))
	if err != nil {
		return Analysis{}, err
	}
	stepsRaw, err := a.query(ctx, RemediationPrompt(f))
	if err != nil {
		return Analysis{}, err
	}

	return Analysis{
		BusinessImpact:       impact,
		TechnicalExplanation: technical,
		RemediationSteps:     parseSteps(stepsRaw),
		RiskFactors:          riskFactorsOrDefault(f),
		ConfidenceScore:      modelConfidence,
	}, nil
}

// synthetic builds the deterministic model-free analysis.
func (a *Agent) synthetic(f engine.Finding) Analysis {
	severity := f.StringOr(engine.KeySeverity, "Medium")
	findingType := f.StringOr(engine.KeyType, "Security Issue")
	description := f.StringOr(engine.KeyDescription, "No details available")

	return Analysis{
		BusinessImpact:       fmt.Sprintf("This %s severity %s requires attention to maintain security posture.", severity, findingType),
		TechnicalExplanation: fmt.Sprintf("Security issue detected: %s", description),
		RemediationSteps: []string{
			"Review the security finding details",
			"Consult AWS security best practices",
			"Implement appropriate security controls",
			"Validate and test the remediation",
		},
		RiskFactors:     riskFactorsOrDefault(f),
		ConfidenceScore: syntheticConfidence,
	}
}

// riskFactorsOrDefault keeps the non-empty risk factor guarantee when the
// heuristic scan has nothing to report.
func riskFactorsOrDefault(f engine.Finding) []string {
	if factors := ScanRiskFactors(f); len(factors) > 0 {
		return factors
	}
	return []string{"Requires security review"}
}
