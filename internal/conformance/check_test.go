package conformance

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkTestdata(t *testing.T, dir string, opts Options) *Report {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	path, err := filepath.Abs(filepath.Join("..", "..", "testdata", dir))
	require.NoError(t, err)

	report, err := Check(context.Background(), path, opts, logger)
	require.NoError(t, err)
	return report
}

func contractNames(r *Report) []string {
	names := make([]string, len(r.Contracts))
	for i, c := range r.Contracts {
		names[i] = c.Name
	}
	return names
}

func variantNames(r *Report) []string {
	names := make([]string, len(r.Variants))
	for i, v := range r.Variants {
		names[i] = v.Name
	}
	return names
}

func hasRelation(r *Report, variant, contract string) bool {
	for _, rel := range r.Relations {
		if rel.Variant.Name == variant && rel.Contract.Name == contract {
			return true
		}
	}
	return false
}

func TestCheck_CollectsContractsAndVariants(t *testing.T) {
	report := checkTestdata(t, "devices", Options{})

	// Marker is empty and is not a contract; journal is unexported and
	// excluded by default.
	assert.ElementsMatch(t, []string{"Readable", "Writable"}, contractNames(report))
	assert.ElementsMatch(t, []string{"Keyboard", "Printer", "Tape", "Scanner"}, variantNames(report))
}

func TestCheck_ComputesRelations(t *testing.T) {
	report := checkTestdata(t, "devices", Options{})

	assert.True(t, hasRelation(report, "Keyboard", "Readable"))
	assert.True(t, hasRelation(report, "Printer", "Writable"))
	assert.True(t, hasRelation(report, "Tape", "Readable"))
	assert.True(t, hasRelation(report, "Tape", "Writable"))
	// Scanner's Read has the wrong signature.
	assert.False(t, hasRelation(report, "Scanner", "Readable"))
}

func TestCheck_PointerReceiverRelation(t *testing.T) {
	report := checkTestdata(t, "devices", Options{})

	for _, rel := range report.Relations {
		if rel.Variant.Name == "Printer" && rel.Contract.Name == "Writable" {
			assert.True(t, rel.ViaPointer)
			return
		}
	}
	t.Fatal("Printer -> Writable relation not found")
}

func TestCheck_IncludeUnexported(t *testing.T) {
	report := checkTestdata(t, "devices", Options{IncludeUnexported: true})

	assert.Contains(t, variantNames(report), "journal")
	assert.True(t, hasRelation(report, "journal", "Writable"))
}

func TestCheck_RequirementSatisfied(t *testing.T) {
	report := checkTestdata(t, "devices", Options{
		Require: []Requirement{
			{Variant: "Keyboard", Contract: "Readable"},
			{Variant: "Tape", Contract: "Writable"},
		},
	})
	assert.Empty(t, report.Violations)
}

func TestCheck_RequirementViolationNamesMissingOps(t *testing.T) {
	// The Scanner's Read returns the wrong type: the violation names the
	// exact operation signature it fails to provide.
	report := checkTestdata(t, "devices", Options{
		Require: []Requirement{{Variant: "Scanner", Contract: "Readable"}},
	})

	require.Len(t, report.Violations, 1)
	v := report.Violations[0]
	assert.Empty(t, v.Reason)
	assert.Equal(t, []string{"Read() (int, error)"}, v.Missing)
}

func TestCheck_RequirementUnknownVariant(t *testing.T) {
	report := checkTestdata(t, "devices", Options{
		Require: []Requirement{{Variant: "Ghost", Contract: "Readable"}},
	})

	require.Len(t, report.Violations, 1)
	assert.Contains(t, report.Violations[0].Reason, `variant "Ghost" not found`)
}

func TestCheck_RequirementUnknownContract(t *testing.T) {
	report := checkTestdata(t, "devices", Options{
		Require: []Requirement{{Variant: "Keyboard", Contract: "Teleport"}},
	})

	require.Len(t, report.Violations, 1)
	assert.Contains(t, report.Violations[0].Reason, `contract "Teleport" not found`)
}

func TestCheck_PackageQualifiedRequirement(t *testing.T) {
	report := checkTestdata(t, "devices", Options{
		Require: []Requirement{{
			Variant:  "example.com/devices.Keyboard",
			Contract: "example.com/devices.Readable",
		}},
	})
	assert.Empty(t, report.Violations)
}

func TestCheck_EmptyModule(t *testing.T) {
	report := checkTestdata(t, "empty", Options{})
	assert.Empty(t, report.Contracts)
	assert.Empty(t, report.Variants)
	assert.Empty(t, report.Relations)
}

func TestCheck_FilterExcludesEverything(t *testing.T) {
	report := checkTestdata(t, "devices", Options{Filter: "example.org/elsewhere"})
	assert.Empty(t, report.Contracts)
	assert.Empty(t, report.Variants)
}

func TestParseRequirement(t *testing.T) {
	req, err := ParseRequirement("Keyboard:Readable")
	require.NoError(t, err)
	assert.Equal(t, Requirement{Variant: "Keyboard", Contract: "Readable"}, req)

	req, err = ParseRequirement(" example.com/devices.Tape : Writable ")
	require.NoError(t, err)
	assert.Equal(t, "example.com/devices.Tape", req.Variant)
}

func TestParseRequirement_Malformed(t *testing.T) {
	for _, s := range []string{"", "Keyboard", ":Readable", "Keyboard:"} {
		_, err := ParseRequirement(s)
		assert.Error(t, err, s)
	}
}

func TestParseRequirements_List(t *testing.T) {
	reqs, err := ParseRequirements("Keyboard:Readable,Tape:Writable")
	require.NoError(t, err)
	assert.Len(t, reqs, 2)

	reqs, err = ParseRequirements("  ")
	require.NoError(t, err)
	assert.Nil(t, reqs)
}
