// Package diagram renders a conformance report as a Mermaid class diagram:
// contracts as interface blocks, variants as classes, satisfaction as
// realization edges, and violations as notes.
package diagram

import (
	"fmt"
	"sort"
	"strings"

	"github.com/olehluchkiv/capkit/internal/conformance"
)

// Options controls Mermaid generation.
type Options struct {
	MaxOpsPerBox int  // 0 means unlimited
	IncludeInit  bool // include %%{init:}%% directive for standalone .mmd files
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{MaxOpsPerBox: 5}
}

// Generate produces a Mermaid classDiagram string from a report.
func Generate(report *conformance.Report, opts Options) string {
	contracts := make([]conformance.ContractDef, len(report.Contracts))
	copy(contracts, report.Contracts)
	sort.Slice(contracts, func(i, j int) bool {
		return nodeID(contracts[i].PkgName, contracts[i].Name) < nodeID(contracts[j].PkgName, contracts[j].Name)
	})

	variants := make([]conformance.VariantDef, len(report.Variants))
	copy(variants, report.Variants)
	sort.Slice(variants, func(i, j int) bool {
		return nodeID(variants[i].PkgName, variants[i].Name) < nodeID(variants[j].PkgName, variants[j].Name)
	})

	relations := make([]conformance.Relation, len(report.Relations))
	copy(relations, report.Relations)
	sort.Slice(relations, func(i, j int) bool {
		ki := nodeID(relations[i].Variant.PkgName, relations[i].Variant.Name) + ">" +
			nodeID(relations[i].Contract.PkgName, relations[i].Contract.Name)
		kj := nodeID(relations[j].Variant.PkgName, relations[j].Variant.Name) + ">" +
			nodeID(relations[j].Contract.PkgName, relations[j].Contract.Name)
		return ki < kj
	})

	var b strings.Builder
	if opts.IncludeInit {
		b.WriteString("%%{init: {'theme': 'base'}}%%\n")
	}
	b.WriteString("classDiagram")
	if len(contracts) > 0 || len(variants) > 0 {
		b.WriteString("\n    direction LR")
	}

	for _, c := range contracts {
		b.WriteString("\n")
		writeContractBlock(&b, c, opts)
	}
	for _, v := range variants {
		b.WriteString("\n")
		writeVariantBlock(&b, v)
	}
	for _, rel := range relations {
		b.WriteString(fmt.Sprintf("\n    %s ..|> %s",
			nodeID(rel.Variant.PkgName, rel.Variant.Name),
			nodeID(rel.Contract.PkgName, rel.Contract.Name)))
	}
	for _, viol := range report.Violations {
		b.WriteString(fmt.Sprintf("\n    note \"violated: %s does not satisfy %s\"",
			sanitizeLabel(viol.Requirement.Variant), sanitizeLabel(viol.Requirement.Contract)))
	}

	return b.String()
}

func writeContractBlock(b *strings.Builder, c conformance.ContractDef, opts Options) {
	b.WriteString(fmt.Sprintf("    class %s {\n", nodeID(c.PkgName, c.Name)))
	b.WriteString("        <<interface>>\n")
	if c.SourceFile != "" {
		b.WriteString("        %% file: " + c.SourceFile + "\n")
	}
	limit := len(c.Operations)
	truncated := false
	if opts.MaxOpsPerBox > 0 && limit > opts.MaxOpsPerBox {
		limit = opts.MaxOpsPerBox
		truncated = true
	}
	for i := 0; i < limit; i++ {
		b.WriteString("        +" + sanitizeLabel(c.Operations[i].Signature) + "\n")
	}
	if truncated {
		b.WriteString("        ...\n")
	}
	b.WriteString("    }")
}

// writeVariantBlock writes a bare class block; a variant's operations are
// already visible through the contracts it satisfies.
func writeVariantBlock(b *strings.Builder, v conformance.VariantDef) {
	b.WriteString(fmt.Sprintf("    class %s {\n", nodeID(v.PkgName, v.Name)))
	if v.SourceFile != "" {
		b.WriteString("        %% file: " + v.SourceFile + "\n")
	}
	b.WriteString("    }")
}

// sanitizeLabel removes characters that break Mermaid class-diagram labels.
func sanitizeLabel(s string) string {
	s = strings.ReplaceAll(s, "<-chan", "chan")
	s = strings.ReplaceAll(s, "interface{}", "any")
	s = strings.ReplaceAll(s, "{}", "")
	return s
}

func nodeID(pkgName, name string) string {
	r := strings.NewReplacer("/", "_", ".", "_", "-", "_")
	return r.Replace(pkgName + "_" + name)
}
