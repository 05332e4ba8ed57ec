package agent

import (
	"bytes"
	"embed"
	"encoding/json"
	"strings"
	"text/template"

	"github.com/novatitan/cloudwarden/pkg/engine"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

var promptTemplates = template.Must(template.ParseFS(promptFS, "prompts/*.tmpl"))

type promptData struct {
	Type        string
	Severity    string
	Resource    string
	Details     string
	FindingJSON string
}

func renderPrompt(name string, data promptData) string {
	var buf bytes.Buffer
	if err := promptTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		// Templates are embedded and parsed at init; execution over plain
		// string fields cannot fail.
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}

// CombinedPrompt asks for all four analysis facets as a single JSON object,
// embedding the serialized finding.
func CombinedPrompt(f engine.Finding) string {
	raw, err := json.Marshal(f)
	if err != nil {
		raw = []byte("{}")
	}
	return renderPrompt("combined.tmpl", promptData{FindingJSON: string(raw)})
}

// BusinessImpactPrompt frames the finding for a non-technical audience.
func BusinessImpactPrompt(f engine.Finding) string {
	return renderPrompt("impact.tmpl", promptData{
		Type:     f.StringOr(engine.KeyType, "Security Issue"),
		Severity: f.StringOr(engine.KeySeverity, "Unknown"),
		Resource: f.StringOr(engine.KeyResourceID, "Unknown"),
	})
}

// TechnicalExplanationPrompt frames the finding for engineers.
func TechnicalExplanationPrompt(f engine.Finding) string {
	return renderPrompt("technical.tmpl", promptData{
		Type:    f.StringOr(engine.KeyType, "Security Issue"),
		Details: f.StringOr(engine.KeyDescription, "No details available"),
	})
}

// RemediationPrompt requests short numbered remediation steps.
func RemediationPrompt(f engine.Finding) string {
	return renderPrompt("remediation.tmpl", promptData{
		Type:     f.StringOr(engine.KeyType, "Security Issue"),
		Resource: f.StringOr(engine.KeyResourceID, "Unknown"),
	})
}
