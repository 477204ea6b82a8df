package capability

import "errors"

// ErrUnsupported marks an operation that is semantically inapplicable for a
// particular variant (a read-only settings source asked to persist, for
// example). Variants return it wrapped so callers can test with errors.Is;
// drivers decide what to do with it via a Policy instead of inspecting the
// variant's identity.
var ErrUnsupported = errors.New("operation not supported by this variant")

// Policy tells a driver how to treat an ErrUnsupported result.
type Policy int

const (
	// SkipUnsupported continues past variants that report ErrUnsupported.
	SkipUnsupported Policy = iota
	// FailUnsupported aborts the driver on the first ErrUnsupported.
	FailUnsupported
)

// Tolerates reports whether the policy lets a driver continue after err.
// Only ErrUnsupported results are ever tolerated; genuine operation
// failures always stop the driver.
func (p Policy) Tolerates(err error) bool {
	return p == SkipUnsupported && errors.Is(err, ErrUnsupported)
}
