// Package flight implements the flying-things example. A variant that
// cannot fly simply does not implement Flyable; nothing downstream ever
// asks "is this a decoy?". A capability-level default flight exists as an
// explicit decorator for variants that fly but have nothing special to say
// about it.
package flight

import "fmt"

// Flyable is a thing that can fly.
type Flyable interface {
	Fly() string
}

// Floatable is a thing that can sit on water.
type Floatable interface {
	Float() string
}

// Launch flies every member of the flock in order. Membership is decided
// at composition time: only Flyable variants can be in the slice at all.
func Launch(flock []Flyable) []string {
	reports := make([]string, len(flock))
	for i, f := range flock {
		reports[i] = f.Fly()
	}
	return reports
}

// Mallard flies and floats.
type Mallard struct {
	name string
}

// NewMallard returns a mallard with the given name.
func NewMallard(name string) *Mallard {
	return &Mallard{name: name}
}

func (m *Mallard) Fly() string {
	return fmt.Sprintf("%s flies south", m.name)
}

func (m *Mallard) Float() string {
	return fmt.Sprintf("%s paddles", m.name)
}

// Decoy floats but does not fly: it has no Fly operation rather than a
// stubbed-out one.
type Decoy struct{}

func (Decoy) Float() string {
	return "decoy bobs in place"
}

// defaultFlight carries the capability-level default operation body for
// variants that do not supply their own.
type defaultFlight struct {
	inner any
}

func (d defaultFlight) Fly() string {
	return fmt.Sprintf("%v flaps along at a modest pace", d.inner)
}

// WithDefault returns v as a Flyable. A variant with its own Fly operation
// is returned unchanged; anything else is wrapped with the default flight.
// The fallback is this explicit decorator, never an implicit inherited
// body.
func WithDefault(v any) Flyable {
	if f, ok := v.(Flyable); ok {
		return f
	}
	return defaultFlight{inner: v}
}

// RubberDuck floats and squeaks but defines no flight of its own; put it
// through WithDefault to field it in a flock.
type RubberDuck struct{}

func (RubberDuck) Float() string {
	return "rubber duck drifts"
}

func (RubberDuck) String() string {
	return "rubber duck"
}
