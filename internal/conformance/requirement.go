package conformance

import (
	"fmt"
	"strings"
)

// ParseRequirement parses a "Variant:Contract" requirement string. Either
// side may be package-qualified.
func ParseRequirement(s string) (Requirement, error) {
	variant, contract, ok := strings.Cut(s, ":")
	variant, contract = strings.TrimSpace(variant), strings.TrimSpace(contract)
	if !ok || variant == "" || contract == "" {
		return Requirement{}, fmt.Errorf("requirement %q: want the form Variant:Contract", s)
	}
	return Requirement{Variant: variant, Contract: contract}, nil
}

// ParseRequirements parses a comma-separated requirement list.
func ParseRequirements(s string) ([]Requirement, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var reqs []Requirement
	for _, part := range strings.Split(s, ",") {
		req, err := ParseRequirement(part)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}
