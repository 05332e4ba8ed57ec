package agent

import (
	"strings"
	"testing"

	"github.com/novatitan/cloudwarden/pkg/engine"
)

func TestCombinedPromptEmbedsFindingJSON(t *testing.T) {
	f := engine.Finding{"type": "public_s3_bucket", "severity": "Medium"}
	prompt := CombinedPrompt(f)

	for _, want := range []string{`"type":"public_s3_bucket"`, "business_impact", "technical_explanation", "remediation_steps", "risk_factors", "Return ONLY JSON"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("combined prompt missing %q", want)
		}
	}
}

func TestBusinessImpactPrompt(t *testing.T) {
	f := engine.Finding{"type": "iam_wildcard_policy", "severity": "High", "resource_id": "arn:aws:iam::123:role/x"}
	prompt := BusinessImpactPrompt(f)

	for _, want := range []string{"iam_wildcard_policy", "High", "arn:aws:iam::123:role/x", "80 words"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("business impact prompt missing %q", want)
		}
	}
}

func TestTechnicalExplanationPromptDefaults(t *testing.T) {
	prompt := TechnicalExplanationPrompt(engine.Finding{})

	for _, want := range []string{"Security Issue", "No details available", "120 words"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("technical prompt missing %q", want)
		}
	}
}

func TestRemediationPromptRequestsNumberedSteps(t *testing.T) {
	prompt := RemediationPrompt(engine.Finding{"type": "open_security_group"})

	if !strings.Contains(prompt, "3-5 short, numbered steps") {
		t.Errorf("remediation prompt missing step instruction: %q", prompt)
	}
	if !strings.Contains(prompt, "open_security_group") {
		t.Error("remediation prompt missing finding type")
	}
}
