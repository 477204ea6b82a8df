// Package capability implements dispatch over narrow behavioral contracts.
// A Capability names an interface, a variant is any value implementing it,
// and binding a variant to a capability it does not fully satisfy fails at
// composition time with a diagnosis of the missing operations. Drivers hold
// only capability-typed handles and never inspect a variant's concrete type.
package capability

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Capability is a named contract over the interface type T. The zero value
// is unusable; construct with Define.
type Capability[T any] struct {
	name  string
	iface reflect.Type
}

// Define declares a capability named name over the interface type T.
// Panics if T is not an interface type — that is a programming error at the
// declaration site, not a runtime condition.
func Define[T any](name string) Capability[T] {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() != reflect.Interface {
		panic(fmt.Sprintf("capability %q: type parameter %s is not an interface", name, t))
	}
	return Capability[T]{name: name, iface: t}
}

// Name returns the capability's declared name.
func (c Capability[T]) Name() string { return c.name }

// Operations returns the contract's operation signatures, sorted by name.
func (c Capability[T]) Operations() []string {
	ops := make([]string, 0, c.iface.NumMethod())
	for i := 0; i < c.iface.NumMethod(); i++ {
		m := c.iface.Method(i)
		ops = append(ops, formatSignature(m.Name, m.Type))
	}
	sort.Strings(ops)
	return ops
}

// Implements reports whether v satisfies every operation of the contract.
func (c Capability[T]) Implements(v any) bool {
	_, ok := v.(T)
	return ok
}

// Missing returns the signatures of contract operations v does not provide.
// Empty for a conforming variant.
func (c Capability[T]) Missing(v any) []string {
	if v == nil {
		return c.Operations()
	}
	vt := reflect.TypeOf(v)
	var missing []string
	for i := 0; i < c.iface.NumMethod(); i++ {
		want := c.iface.Method(i)
		got, ok := vt.MethodByName(want.Name)
		if !ok || !methodMatches(got, want) {
			missing = append(missing, formatSignature(want.Name, want.Type))
		}
	}
	sort.Strings(missing)
	return missing
}

// Bind returns a capability-typed handle for v, or a *BindError describing
// every missing operation. There are no partial bindings: a variant either
// satisfies the whole contract or the bind fails.
func (c Capability[T]) Bind(v any) (T, error) {
	h, ok := v.(T)
	if !ok {
		var zero T
		return zero, &BindError{
			Capability: c.name,
			Variant:    variantName(v),
			Missing:    c.Missing(v),
		}
	}
	return h, nil
}

// MustBind is Bind for composition roots where a mismatch is unrecoverable.
func (c Capability[T]) MustBind(v any) T {
	h, err := c.Bind(v)
	if err != nil {
		panic(err)
	}
	return h
}

// BindError reports a variant that does not satisfy a capability.
type BindError struct {
	Capability string
	Variant    string
	Missing    []string
}

func (e *BindError) Error() string {
	if len(e.Missing) == 0 {
		return fmt.Sprintf("%s does not satisfy capability %q", e.Variant, e.Capability)
	}
	return fmt.Sprintf("%s does not satisfy capability %q: missing %s",
		e.Variant, e.Capability, strings.Join(e.Missing, ", "))
}

// methodMatches checks that a concrete method's signature equals the
// contract's. Concrete method types carry the receiver as parameter 0, so
// comparison starts at parameter 1.
func methodMatches(got reflect.Method, want reflect.Method) bool {
	gt, wt := got.Type, want.Type
	if gt.NumIn()-1 != wt.NumIn() || gt.NumOut() != wt.NumOut() {
		return false
	}
	for i := 0; i < wt.NumIn(); i++ {
		if gt.In(i+1) != wt.In(i) {
			return false
		}
	}
	for i := 0; i < wt.NumOut(); i++ {
		if gt.Out(i) != wt.Out(i) {
			return false
		}
	}
	return true
}

func formatSignature(name string, fn reflect.Type) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteString("(")
	for i := 0; i < fn.NumIn(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(fn.In(i).String())
	}
	b.WriteString(")")
	if fn.NumOut() > 0 {
		b.WriteString(" ")
		if fn.NumOut() == 1 {
			b.WriteString(fn.Out(0).String())
		} else {
			b.WriteString("(")
			for i := 0; i < fn.NumOut(); i++ {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(fn.Out(i).String())
			}
			b.WriteString(")")
		}
	}
	return b.String()
}

func variantName(v any) string {
	if v == nil {
		return "<nil>"
	}
	return reflect.TypeOf(v).String()
}
