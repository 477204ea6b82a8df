// Package conformance statically verifies that variants satisfy capability
// contracts. It loads Go packages, collects interface and named-type
// definitions, computes which types satisfy which interfaces, and checks
// explicit requirements so that a missing operation is caught at
// composition time rather than discovered mid-run.
package conformance

import (
	"context"
	"fmt"
	"go/token"
	"go/types"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/tools/go/packages"
)

// Check loads the Go module at dir and produces a conformance report.
// Unmet requirements become Violations in the report, not an error; the
// error return covers genuine load failures only.
func Check(ctx context.Context, dir string, opts Options, logger *slog.Logger) (*Report, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedSyntax |
			packages.NeedTypesInfo | packages.NeedImports,
		Dir:     dir,
		Context: ctx,
	}

	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}
	logger.Info("packages loaded", "packages_count", len(pkgs))

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			logger.Warn("package load error", "package", pkg.PkgPath, "error", e.Msg)
		}
	}

	report := &Report{}
	for _, pkg := range pkgs {
		if pkg.Types == nil {
			continue
		}
		if opts.Filter != "" && !strings.HasPrefix(pkg.PkgPath, opts.Filter) {
			continue
		}
		collectDefs(pkg, dir, opts, report, logger)
	}
	logger.Info("definitions collected",
		"contracts", len(report.Contracts), "variants", len(report.Variants))

	matchRelations(report, logger)
	logger.Info("conformance computed", "relations", len(report.Relations))

	for _, req := range opts.Require {
		if v := verifyRequirement(report, req); v != nil {
			report.Violations = append(report.Violations, *v)
			logger.Warn("requirement violated",
				"variant", req.Variant, "contract", req.Contract, "reason", v.Reason, "missing", v.Missing)
		}
	}

	return report, nil
}

// collectDefs gathers contract and variant definitions from one package.
// Interfaces without operations are not contracts and are skipped; a
// capability names at least one operation.
func collectDefs(pkg *packages.Package, moduleRoot string, opts Options, report *Report, logger *slog.Logger) {
	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok {
			continue
		}
		named, ok := tn.Type().(*types.Named)
		if !ok {
			continue
		}
		if !opts.IncludeUnexported && isUnexported(tn.Name()) {
			continue
		}

		if iface, ok := named.Underlying().(*types.Interface); ok {
			if iface.NumMethods() == 0 {
				logger.Debug("skipping empty interface", "name", tn.Name(), "package", pkg.PkgPath)
				continue
			}
			report.Contracts = append(report.Contracts, ContractDef{
				Name:       tn.Name(),
				PkgPath:    pkg.PkgPath,
				PkgName:    pkg.Name,
				Operations: contractOps(iface),
				TypeObj:    iface,
				SourceFile: resolveSourceFile(pkg.Fset, tn.Pos(), moduleRoot),
			})
			logger.Debug("found contract", "name", tn.Name(), "package", pkg.PkgPath, "operations", iface.NumMethods())
			continue
		}

		report.Variants = append(report.Variants, VariantDef{
			Name:       tn.Name(),
			PkgPath:    pkg.PkgPath,
			PkgName:    pkg.Name,
			IsStruct:   isStruct(named),
			Operations: variantOps(named),
			TypeObj:    named,
			SourceFile: resolveSourceFile(pkg.Fset, tn.Pos(), moduleRoot),
		})
		logger.Debug("found variant", "name", tn.Name(), "package", pkg.PkgPath)
	}
}

// matchRelations fills in every variant↔contract satisfaction pair.
func matchRelations(report *Report, logger *slog.Logger) {
	for i := range report.Variants {
		v := &report.Variants[i]
		for j := range report.Contracts {
			c := &report.Contracts[j]
			if types.Implements(v.TypeObj, c.TypeObj) {
				report.Relations = append(report.Relations, Relation{Variant: v, Contract: c})
				logger.Debug("satisfies", "variant", v.Name, "contract", c.Name, "via_pointer", false)
			} else if types.Implements(types.NewPointer(v.TypeObj), c.TypeObj) {
				report.Relations = append(report.Relations, Relation{Variant: v, Contract: c, ViaPointer: true})
				logger.Debug("satisfies", "variant", v.Name, "contract", c.Name, "via_pointer", true)
			}
		}
	}
}

// verifyRequirement returns nil when the requirement holds, or a Violation
// diagnosing exactly which operations the variant lacks.
func verifyRequirement(report *Report, req Requirement) *Violation {
	variant := findVariant(report, req.Variant)
	if variant == nil {
		return &Violation{Requirement: req, Reason: fmt.Sprintf("variant %q not found", req.Variant)}
	}
	contract := findContract(report, req.Contract)
	if contract == nil {
		return &Violation{Requirement: req, Reason: fmt.Sprintf("contract %q not found", req.Contract)}
	}

	missing := missingOperations(variant.TypeObj, contract.TypeObj)
	if len(missing) == 0 {
		return nil
	}
	return &Violation{Requirement: req, Missing: missing}
}

// missingOperations lists contract operations the variant's pointer method
// set does not provide with an identical signature.
func missingOperations(named *types.Named, iface *types.Interface) []string {
	mset := types.NewMethodSet(types.NewPointer(named))
	var missing []string
	for i := 0; i < iface.NumMethods(); i++ {
		m := iface.Method(i)
		sel := mset.Lookup(m.Pkg(), m.Name())
		if sel == nil || !identicalSignature(sel.Obj().(*types.Func), m) {
			missing = append(missing, formatSignature(m))
		}
	}
	sort.Strings(missing)
	return missing
}

// identicalSignature compares two methods ignoring receivers.
func identicalSignature(got, want *types.Func) bool {
	gs := got.Type().(*types.Signature)
	ws := want.Type().(*types.Signature)
	if gs.Params().Len() != ws.Params().Len() || gs.Results().Len() != ws.Results().Len() {
		return false
	}
	for i := 0; i < ws.Params().Len(); i++ {
		if !types.Identical(gs.Params().At(i).Type(), ws.Params().At(i).Type()) {
			return false
		}
	}
	for i := 0; i < ws.Results().Len(); i++ {
		if !types.Identical(gs.Results().At(i).Type(), ws.Results().At(i).Type()) {
			return false
		}
	}
	return true
}

// findVariant resolves a bare or package-qualified variant name.
func findVariant(report *Report, name string) *VariantDef {
	for i := range report.Variants {
		v := &report.Variants[i]
		if v.Name == name || v.PkgPath+"."+v.Name == name {
			return v
		}
	}
	return nil
}

func findContract(report *Report, name string) *ContractDef {
	for i := range report.Contracts {
		c := &report.Contracts[i]
		if c.Name == name || c.PkgPath+"."+c.Name == name {
			return c
		}
	}
	return nil
}

func contractOps(iface *types.Interface) []OpSig {
	ops := make([]OpSig, iface.NumMethods())
	for i := 0; i < iface.NumMethods(); i++ {
		m := iface.Method(i)
		ops[i] = OpSig{Name: m.Name(), Signature: formatSignature(m)}
	}
	return ops
}

func variantOps(named *types.Named) []OpSig {
	var ops []OpSig
	for i := 0; i < named.NumMethods(); i++ {
		m := named.Method(i)
		ops = append(ops, OpSig{Name: m.Name(), Signature: formatSignature(m)})
	}
	return ops
}

func formatSignature(fn *types.Func) string {
	sig := fn.Type().(*types.Signature)
	var b strings.Builder
	b.WriteString(fn.Name())
	b.WriteString("(")
	params := sig.Params()
	for i := 0; i < params.Len(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(shortType(params.At(i).Type()))
	}
	b.WriteString(")")
	results := sig.Results()
	if results.Len() > 0 {
		b.WriteString(" ")
		if results.Len() == 1 {
			b.WriteString(shortType(results.At(0).Type()))
		} else {
			b.WriteString("(")
			for i := 0; i < results.Len(); i++ {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(shortType(results.At(i).Type()))
			}
			b.WriteString(")")
		}
	}
	return b.String()
}

func shortType(t types.Type) string {
	return types.TypeString(t, func(pkg *types.Package) string {
		return pkg.Name()
	})
}

func isStruct(named *types.Named) bool {
	_, ok := named.Underlying().(*types.Struct)
	return ok
}

func isUnexported(name string) bool {
	if name == "" {
		return true
	}
	return unicode.IsLower(rune(name[0]))
}

// resolveSourceFile resolves a token position to a path relative to
// moduleRoot.
func resolveSourceFile(fset *token.FileSet, pos token.Pos, moduleRoot string) string {
	if fset == nil || !pos.IsValid() {
		return ""
	}
	position := fset.Position(pos)
	if !position.IsValid() || position.Filename == "" {
		return ""
	}
	rel, err := filepath.Rel(moduleRoot, position.Filename)
	if err != nil {
		return position.Filename
	}
	return rel
}
