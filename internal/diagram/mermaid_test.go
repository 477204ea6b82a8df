package diagram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/olehluchkiv/capkit/internal/conformance"
)

func sampleReport() *conformance.Report {
	r := &conformance.Report{
		Contracts: []conformance.ContractDef{
			{
				Name:    "Readable",
				PkgName: "devices",
				PkgPath: "example.com/devices",
				Operations: []conformance.OpSig{
					{Name: "Read", Signature: "Read() (int, error)"},
				},
				SourceFile: "devices.go",
			},
		},
		Variants: []conformance.VariantDef{
			{Name: "Keyboard", PkgName: "devices", PkgPath: "example.com/devices", IsStruct: true},
		},
	}
	r.Relations = []conformance.Relation{
		{Variant: &r.Variants[0], Contract: &r.Contracts[0]},
	}
	return r
}

func TestGenerate_Basic(t *testing.T) {
	out := Generate(sampleReport(), DefaultOptions())

	assert.True(t, strings.HasPrefix(out, "classDiagram"))
	assert.Contains(t, out, "class devices_Readable {")
	assert.Contains(t, out, "<<interface>>")
	assert.Contains(t, out, "+Read() (int, error)")
	assert.Contains(t, out, "%% file: devices.go")
	assert.Contains(t, out, "class devices_Keyboard {")
	assert.Contains(t, out, "devices_Keyboard ..|> devices_Readable")
}

func TestGenerate_IncludeInit(t *testing.T) {
	out := Generate(sampleReport(), Options{IncludeInit: true})
	assert.True(t, strings.HasPrefix(out, "%%{init:"))
}

func TestGenerate_EmptyReport(t *testing.T) {
	out := Generate(&conformance.Report{}, DefaultOptions())
	assert.Equal(t, "classDiagram", out)
}

func TestGenerate_TruncatesOperations(t *testing.T) {
	r := sampleReport()
	r.Contracts[0].Operations = []conformance.OpSig{
		{Signature: "A()"}, {Signature: "B()"}, {Signature: "C()"},
	}
	out := Generate(r, Options{MaxOpsPerBox: 2})
	assert.Contains(t, out, "+A()")
	assert.Contains(t, out, "+B()")
	assert.NotContains(t, out, "+C()")
	assert.Contains(t, out, "...")
}

func TestGenerate_ViolationNote(t *testing.T) {
	r := sampleReport()
	r.Violations = []conformance.Violation{
		{Requirement: conformance.Requirement{Variant: "Scanner", Contract: "Readable"}},
	}
	out := Generate(r, DefaultOptions())
	assert.Contains(t, out, `note "violated: Scanner does not satisfy Readable"`)
}

func TestSanitizeLabel(t *testing.T) {
	assert.Equal(t, "F(chan int)", sanitizeLabel("F(<-chan int)"))
	assert.Equal(t, "G(any)", sanitizeLabel("G(interface{})"))
	assert.Equal(t, "H(map[string]struct)", sanitizeLabel("H(map[string]struct{})"))
}

func TestGenerate_Deterministic(t *testing.T) {
	// Map-free rendering with explicit sorts: two runs agree byte for byte.
	a := Generate(sampleReport(), DefaultOptions())
	b := Generate(sampleReport(), DefaultOptions())
	assert.Equal(t, a, b)
}
