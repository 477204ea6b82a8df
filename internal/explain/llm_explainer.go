package explain

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/olehluchkiv/capkit/internal/conformance"
	"github.com/olehluchkiv/capkit/internal/explain/llm"
)

const explainerSystemPrompt = `You are an expert on interface-based design in Go. Given capability contracts, variants, and conformance violations, explain each violation to a student and suggest a fix that does not involve type-testing inside drivers.

Respond with JSON only.`

const explainerUserPrompt = `Explain these conformance violations:

%s

Return JSON with this schema:
{"explanations": {"Variant:Contract": "Explanation with a suggested fix"}}

Rules:
- Each explanation must be under 200 characters
- Suggest implementing the missing operations or splitting the capability
- Never suggest detecting the concrete variant in a driver
- Cover every violation from the input`

// LLMExplainer asks a model to explain violations, falling back to the
// rule-based explainer whenever the response is unusable.
type LLMExplainer struct {
	ctx      context.Context
	client   *llm.Client
	fallback *RuleExplainer
	logger   *slog.Logger
}

// NewLLMExplainer creates an LLM-backed explainer.
func NewLLMExplainer(ctx context.Context, client *llm.Client, fallback *RuleExplainer, logger *slog.Logger) *LLMExplainer {
	return &LLMExplainer{
		ctx:      ctx,
		client:   client,
		fallback: fallback,
		logger:   logger.With("component", "llm-explainer"),
	}
}

func (e *LLMExplainer) Explain(report *conformance.Report) map[string]string {
	if len(report.Violations) == 0 {
		return nil
	}

	raw, err := e.client.Complete(e.ctx, explainerSystemPrompt,
		fmt.Sprintf(explainerUserPrompt, serializeViolations(report)))
	if err != nil {
		e.logger.Warn("LLM explainer failed, using default", "error", err)
		return e.fallback.Explain(report)
	}

	var resp struct {
		Explanations map[string]string `json:"explanations"`
	}
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		e.logger.Warn("LLM explainer returned invalid JSON, using default", "error", err)
		return e.fallback.Explain(report)
	}

	// Keep only keys that correspond to actual violations; backfill the
	// rest from the rule-based explainer so every violation has a line.
	known := make(map[string]bool, len(report.Violations))
	for _, v := range report.Violations {
		known[Key(v)] = true
	}

	out := make(map[string]string, len(report.Violations))
	for key, text := range resp.Explanations {
		if known[key] && strings.TrimSpace(text) != "" {
			out[key] = text
		}
	}
	if len(out) == 0 {
		e.logger.Warn("LLM explainer returned no usable explanations, using default")
		return e.fallback.Explain(report)
	}
	for _, v := range report.Violations {
		if _, ok := out[Key(v)]; !ok {
			out[Key(v)] = explainViolation(v)
		}
	}
	return out
}

// serializeViolations renders the report's violations (with their
// surrounding contract definitions) as prompt text.
func serializeViolations(report *conformance.Report) string {
	var b strings.Builder
	for _, c := range report.Contracts {
		b.WriteString(fmt.Sprintf("contract %s.%s:\n", c.PkgName, c.Name))
		for _, op := range c.Operations {
			b.WriteString("  " + op.Signature + "\n")
		}
	}
	b.WriteString("\nviolations:\n")
	for _, v := range report.Violations {
		b.WriteString(fmt.Sprintf("- %s", Key(v)))
		if v.Reason != "" {
			b.WriteString(" (" + v.Reason + ")")
		}
		if len(v.Missing) > 0 {
			b.WriteString(" missing: " + strings.Join(v.Missing, ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}
