package conformance

import "go/types"

// ContractDef is a discovered interface, treated as a capability contract.
type ContractDef struct {
	Name       string
	PkgPath    string
	PkgName    string
	Operations []OpSig
	TypeObj    *types.Interface
	SourceFile string
}

// VariantDef is a discovered named concrete type.
type VariantDef struct {
	Name       string
	PkgPath    string
	PkgName    string
	IsStruct   bool
	Operations []OpSig
	TypeObj    *types.Named
	SourceFile string
}

// OpSig captures an operation name and its signature string.
type OpSig struct {
	Name      string
	Signature string
}

// Relation records that a variant satisfies a contract.
type Relation struct {
	Variant    *VariantDef
	Contract   *ContractDef
	ViaPointer bool // true if only *T (not T) satisfies the contract
}

// Requirement asserts that a variant must satisfy a contract. Names are
// bare ("Keyboard") or package-qualified ("example.com/dev.Keyboard").
type Requirement struct {
	Variant  string
	Contract string
}

// Violation is an unmet requirement with its diagnosis.
type Violation struct {
	Requirement Requirement
	Reason      string   // set when the variant or contract was not found
	Missing     []string // operation signatures the variant lacks
}

// Report holds the complete conformance check output.
type Report struct {
	Contracts  []ContractDef
	Variants   []VariantDef
	Relations  []Relation
	Violations []Violation
}

// Options controls the conformance check.
type Options struct {
	Filter            string // package path prefix filter
	IncludeUnexported bool
	Require           []Requirement
}
