package capability

import (
	"fmt"
	"reflect"
	"sort"
)

// Contract is the non-generic view of a defined capability, used where
// capabilities of different interface types are handled uniformly.
type Contract interface {
	Name() string
	Operations() []string
	Implements(v any) bool
	Missing(v any) []string
}

// Registry is a named set of contracts supporting runtime capability
// discovery. It is not safe for concurrent mutation; populate it at
// composition time.
type Registry struct {
	contracts map[string]Contract
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{contracts: make(map[string]Contract)}
}

// Register adds a contract. Registering the same name twice is an error.
func (r *Registry) Register(c Contract) error {
	if c.Name() == "" {
		return fmt.Errorf("registering capability: empty name")
	}
	if _, dup := r.contracts[c.Name()]; dup {
		return fmt.Errorf("registering capability %q: already registered", c.Name())
	}
	r.contracts[c.Name()] = c
	return nil
}

// Lookup returns the contract registered under name.
func (r *Registry) Lookup(name string) (Contract, bool) {
	c, ok := r.contracts[name]
	return c, ok
}

// List returns all registered capability names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.contracts))
	for name := range r.contracts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Satisfied returns the names of every registered capability v implements.
func (r *Registry) Satisfied(v any) []string {
	var names []string
	for name, c := range r.contracts {
		if c.Implements(v) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Bind checks v against the named contract and returns a dynamic handle.
// Fails if the capability is unknown or v does not satisfy it; a returned
// handle is always fully bound.
func (r *Registry) Bind(name string, v any) (*Handle, error) {
	c, ok := r.contracts[name]
	if !ok {
		return nil, fmt.Errorf("bind: unknown capability %q", name)
	}
	if !c.Implements(v) {
		return nil, &BindError{Capability: name, Variant: variantName(v), Missing: c.Missing(v)}
	}
	return &Handle{contract: c, variant: reflect.ValueOf(v)}, nil
}

// Handle is a dynamically bound capability reference. Every operation the
// contract names is guaranteed to exist on the bound variant.
type Handle struct {
	contract Contract
	variant  reflect.Value
}

// Capability returns the contract this handle was bound through.
func (h *Handle) Capability() Contract { return h.contract }

// Invoke calls the named contract operation on the bound variant. If the
// operation's final result is an error it is returned separately; the
// remaining results come back as values. An operation name outside the
// contract is a caller error, reported without touching the variant.
func (h *Handle) Invoke(op string, args ...any) ([]any, error) {
	m := h.variant.MethodByName(op)
	if !m.IsValid() || !h.contractHasOp(op) {
		return nil, fmt.Errorf("invoke: capability %q has no operation %q", h.contract.Name(), op)
	}
	mt := m.Type()
	if mt.NumIn() != len(args) {
		return nil, fmt.Errorf("invoke %s.%s: want %d args, got %d", h.contract.Name(), op, mt.NumIn(), len(args))
	}
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		if a == nil {
			in[i] = reflect.Zero(mt.In(i))
			continue
		}
		av := reflect.ValueOf(a)
		if !av.Type().AssignableTo(mt.In(i)) {
			return nil, fmt.Errorf("invoke %s.%s: arg %d is %s, want %s", h.contract.Name(), op, i, av.Type(), mt.In(i))
		}
		in[i] = av
	}

	outs := m.Call(in)
	results := make([]any, 0, len(outs))
	var callErr error
	for i, o := range outs {
		if i == len(outs)-1 && mt.Out(i) == errorType {
			if !o.IsNil() {
				callErr = o.Interface().(error)
			}
			continue
		}
		results = append(results, o.Interface())
	}
	return results, callErr
}

func (h *Handle) contractHasOp(op string) bool {
	prefix := op + "("
	for _, sig := range h.contract.Operations() {
		if len(sig) >= len(prefix) && sig[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()
