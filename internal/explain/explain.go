// Package explain turns conformance violations into prose a student can
// act on. The default explainer is rule-based and deterministic; an
// LLM-backed explainer can be layered on top and falls back to the default
// whenever the model misbehaves.
package explain

import (
	"fmt"
	"strings"

	"github.com/olehluchkiv/capkit/internal/conformance"
)

// Explainer produces one explanation per violation, keyed by
// "Variant:Contract".
type Explainer interface {
	Explain(report *conformance.Report) map[string]string
}

// Key builds the explanation map key for a violation.
func Key(v conformance.Violation) string {
	return v.Requirement.Variant + ":" + v.Requirement.Contract
}

// RuleExplainer derives explanations mechanically from the diagnosis.
type RuleExplainer struct{}

// NewRuleExplainer returns the default explainer.
func NewRuleExplainer() *RuleExplainer { return &RuleExplainer{} }

func (e *RuleExplainer) Explain(report *conformance.Report) map[string]string {
	if len(report.Violations) == 0 {
		return nil
	}
	out := make(map[string]string, len(report.Violations))
	for _, v := range report.Violations {
		out[Key(v)] = explainViolation(v)
	}
	return out
}

func explainViolation(v conformance.Violation) string {
	if v.Reason != "" {
		return v.Reason
	}
	return fmt.Sprintf(
		"%s does not satisfy %s: it lacks %s. Either implement the missing operation(s) or stop requiring this capability of it — do not special-case the variant in a driver.",
		v.Requirement.Variant, v.Requirement.Contract, strings.Join(v.Missing, ", "))
}
