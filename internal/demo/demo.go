// Package demo sequences the capability examples end to end: each scenario
// builds variants, hands them to a driver through capability-typed handles
// only, and reports what happened step by step.
package demo

import (
	"context"
	"fmt"
	"log/slog"
)

// Step is one observable action inside a scenario.
type Step struct {
	Label  string
	Detail string
}

// Env carries the knobs a scenario may use.
type Env struct {
	Seed   uint64
	DBPath string
	Logger *slog.Logger
}

// Scenario is a named, self-contained example.
type Scenario struct {
	Name    string
	Summary string
	Run     func(ctx context.Context, env Env) ([]Step, error)
}

// All returns every scenario in presentation order.
func All() []Scenario {
	return []Scenario{
		{
			Name:    "copy",
			Summary: "move values between devices through Readable and Writable",
			Run:     runCopy,
		},
		{
			Name:    "power",
			Summary: "one button drives a lamp and an adapted motor",
			Run:     runPower,
		},
		{
			Name:    "billing",
			Summary: "checkout against interchangeable payment processors",
			Run:     runBilling,
		},
		{
			Name:    "settings",
			Summary: "sync settings between stores, skipping read-only targets",
			Run:     runSettings,
		},
		{
			Name:    "shape",
			Summary: "independent dimensions are their own capability",
			Run:     runShape,
		},
		{
			Name:    "flight",
			Summary: "a decoy is not a broken flyer, it is not a flyer",
			Run:     runFlight,
		},
		{
			Name:    "dispatch",
			Summary: "runtime capability discovery and dynamic invocation",
			Run:     runDispatch,
		},
	}
}

// ByName finds a scenario.
func ByName(name string) (Scenario, error) {
	for _, s := range All() {
		if s.Name == name {
			return s, nil
		}
	}
	return Scenario{}, fmt.Errorf("unknown scenario %q", name)
}
