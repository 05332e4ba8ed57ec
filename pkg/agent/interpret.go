package agent

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/novatitan/cloudwarden/pkg/engine"
)

// parseCombined attempts to decode combined-call output as the four-key JSON
// object the prompt requests. Free-form model output regularly fails to
// decode; that is reported as not-ok, not as an error.
func parseCombined(raw string) (Analysis, bool) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return Analysis{}, false
	}
	return Analysis{
		BusinessImpact:       trimmedString(payload["business_impact"]),
		TechnicalExplanation: trimmedString(payload["technical_explanation"]),
		RemediationSteps:     trimmedList(payload["remediation_steps"]),
		RiskFactors:          trimmedList(payload["risk_factors"]),
		ConfidenceScore:      modelConfidence,
	}, true
}

func trimmedString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func trimmedList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		var s string
		switch t := item.(type) {
		case nil:
			continue
		case string:
			s = t
		default:
			s = fmt.Sprint(t)
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

const stepMarkers = "0123456789.-•) "

// parseSteps extracts remediation steps from free text. A line counts as a
// step when it starts with a digit or a bullet marker; numbering and markers
// are stripped. Text with no qualifying lines becomes a single raw step so
// callers never see an empty list.
func parseSteps(raw string) []string {
	var steps []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !isStepLine(line) {
			continue
		}
		if step := strings.TrimSpace(strings.TrimLeft(line, stepMarkers)); step != "" {
			steps = append(steps, step)
		}
	}
	if len(steps) == 0 {
		return []string{raw}
	}
	return steps
}

func isStepLine(line string) bool {
	r, _ := utf8.DecodeRuneInString(line)
	return unicode.IsDigit(r) || r == '-' || r == '•'
}

// ScanRiskFactors runs the deterministic keyword heuristics over the
// finding's serialized form. It is independent of the model and runs even
// when inference succeeds.
func ScanRiskFactors(f engine.Finding) []string {
	var factors []string

	raw, _ := json.Marshal(f)
	text := strings.ToLower(string(raw))
	if strings.Contains(text, "wildcard") || strings.Contains(text, "*:*") {
		factors = append(factors, "Overly broad permissions")
	}
	if strings.Contains(text, "public") {
		factors = append(factors, "Public internet exposure")
	}
	if strings.Contains(text, "mfa") {
		factors = append(factors, "Multi-factor authentication issues")
	}

	severity := strings.ToLower(f.StringOr(engine.KeySeverity, ""))
	if severity == "critical" || severity == "high" {
		factors = append(factors, "High severity security vulnerability")
	}
	return factors
}
