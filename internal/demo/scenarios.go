package demo

import (
	"context"
	"fmt"
	"strings"

	"github.com/olehluchkiv/capkit/internal/billing"
	"github.com/olehluchkiv/capkit/internal/capability"
	"github.com/olehluchkiv/capkit/internal/flight"
	"github.com/olehluchkiv/capkit/internal/power"
	"github.com/olehluchkiv/capkit/internal/settings"
	"github.com/olehluchkiv/capkit/internal/shape"
	"github.com/olehluchkiv/capkit/internal/transfer"
)

func runCopy(_ context.Context, env Env) ([]Step, error) {
	var steps []Step

	keyboard := transfer.NewKeyboard(env.Seed)
	sink := transfer.NewRecordingSink()
	n, err := transfer.Copy(sink, keyboard, 10)
	if err != nil {
		return steps, fmt.Errorf("copying keystrokes: %w", err)
	}
	steps = append(steps, Step{
		Label:  "keyboard -> sink",
		Detail: fmt.Sprintf("copied %d keystrokes: %v", n, sink.Values()),
	})

	// The same driver moves the recorded values through a disk, a device
	// that is source and destination at once.
	disk := transfer.NewDisk()
	if _, err := transfer.CopyAll(disk, transfer.NewSequenceSource(sink.Values()...)); err != nil {
		return steps, fmt.Errorf("filling disk: %w", err)
	}
	replay := transfer.NewRecordingSink()
	if _, err := transfer.CopyAll(replay, disk); err != nil {
		return steps, fmt.Errorf("draining disk: %w", err)
	}
	steps = append(steps, Step{
		Label:  "sink -> disk -> sink",
		Detail: fmt.Sprintf("replayed through combined device: %v", replay.Values()),
	})
	return steps, nil
}

func runPower(_ context.Context, _ Env) ([]Step, error) {
	var steps []Step

	lamp := power.NewLamp()
	button := power.NewButton(lamp)
	if err := button.Press(); err != nil {
		return steps, err
	}
	steps = append(steps, Step{
		Label:  "button -> lamp",
		Detail: fmt.Sprintf("pressed once, lamp lit: %v", lamp.Lit()),
	})

	motor := power.NewMotor()
	button = power.NewButton(power.AdaptMotor(motor, 1200))
	if err := button.Press(); err != nil {
		return steps, err
	}
	steps = append(steps, Step{
		Label:  "button -> motor adapter",
		Detail: fmt.Sprintf("same button, motor at %d rpm", motor.RPM()),
	})
	if err := button.Press(); err != nil {
		return steps, err
	}
	steps = append(steps, Step{
		Label:  "button again",
		Detail: fmt.Sprintf("motor at %d rpm", motor.RPM()),
	})
	return steps, nil
}

func runBilling(_ context.Context, _ Env) ([]Step, error) {
	var steps []Step

	for _, proc := range []struct {
		name string
		p    billing.Chargeable
	}{
		{"card", billing.NewCardProcessor("visa")},
		{"gift card", billing.NewGiftCard("XY12", 5000)},
	} {
		receipt, err := billing.Checkout(proc.p, "ada", 2500)
		if err != nil {
			return steps, fmt.Errorf("checkout via %s: %w", proc.name, err)
		}
		steps = append(steps, Step{
			Label:  "checkout via " + proc.name,
			Detail: fmt.Sprintf("charged %d cents, receipt %s", receipt.Amount, receipt.Reference),
		})
	}

	// An explicit operation-level failure: the driver reports it, nothing
	// crashes, and the processor's identity stays out of the picture.
	_, err := billing.Checkout(billing.NewGiftCard("AB34", 100), "ada", 2500)
	steps = append(steps, Step{
		Label:  "checkout over balance",
		Detail: fmt.Sprintf("refused as expected: %v", err),
	})
	return steps, nil
}

func runSettings(ctx context.Context, env Env) ([]Step, error) {
	var steps []Step

	store, err := settings.OpenSQLite(env.DBPath)
	if err != nil {
		return steps, fmt.Errorf("opening settings store: %w", err)
	}
	defer func() { _ = store.Close() }()

	src := settings.NewEnvStore("CAPKIT_SETTING_")
	if err := settings.Sync(ctx, store, src, capability.FailUnsupported, env.Logger); err != nil {
		return steps, fmt.Errorf("syncing env -> sqlite: %w", err)
	}
	loaded, err := store.Load(ctx)
	if err != nil {
		return steps, fmt.Errorf("loading synced settings: %w", err)
	}
	steps = append(steps, Step{
		Label:  "env -> sqlite",
		Detail: fmt.Sprintf("synced %d keys into %s", len(loaded), env.DBPath),
	})

	// Syncing back into the environment is unsupported; the skip policy
	// turns that into a no-op instead of a special case.
	if err := settings.Sync(ctx, src, store, capability.SkipUnsupported, env.Logger); err != nil {
		return steps, fmt.Errorf("syncing sqlite -> env: %w", err)
	}
	steps = append(steps, Step{
		Label:  "sqlite -> env",
		Detail: "persist unsupported on the env store, skipped by policy",
	})
	return steps, nil
}

func runShape(_ context.Context, _ Env) ([]Step, error) {
	var steps []Step

	rect, err := shape.NewRectangle(0, 0)
	if err != nil {
		return steps, err
	}
	area, err := shape.Stretch(rect, 5, 4)
	if err != nil {
		return steps, err
	}
	steps = append(steps, Step{
		Label:  "stretch rectangle",
		Detail: fmt.Sprintf("width 5, height 4, area %d", area),
	})

	// The square never reaches Stretch: it does not satisfy the
	// independent-dimension contract, and the bind says exactly why.
	square, err := shape.NewSquare(3)
	if err != nil {
		return steps, err
	}
	dimensioned := capability.Define[shape.Dimensioned]("dimensioned")
	_, bindErr := dimensioned.Bind(square)
	steps = append(steps, Step{
		Label:  "bind square as rectangle",
		Detail: fmt.Sprintf("rejected at composition time: %v", bindErr),
	})

	drawn := shape.Render([]shape.Drawable{rect, square, shape.NewCircle(2)})
	steps = append(steps, Step{
		Label:  "render all figures",
		Detail: strings.Join(drawn, "; "),
	})
	return steps, nil
}

func runFlight(_ context.Context, _ Env) ([]Step, error) {
	var steps []Step

	flock := []flight.Flyable{
		flight.NewMallard("anna"),
		flight.WithDefault(flight.RubberDuck{}),
	}
	steps = append(steps, Step{
		Label:  "launch flock",
		Detail: strings.Join(flight.Launch(flock), "; "),
	})

	flyable := capability.Define[flight.Flyable]("flyable")
	steps = append(steps, Step{
		Label:  "decoy stays home",
		Detail: fmt.Sprintf("implements flyable: %v (it lacks the capability, nobody type-tests it)", flyable.Implements(flight.Decoy{})),
	})
	return steps, nil
}

func runDispatch(_ context.Context, env Env) ([]Step, error) {
	var steps []Step

	reg := capability.NewRegistry()
	for _, c := range []capability.Contract{
		capability.Define[transfer.Readable]("readable"),
		capability.Define[transfer.Writable]("writable"),
		capability.Define[power.Switchable]("switchable"),
	} {
		if err := reg.Register(c); err != nil {
			return steps, err
		}
	}

	disk := transfer.NewDisk()
	steps = append(steps, Step{
		Label:  "discover disk capabilities",
		Detail: fmt.Sprintf("disk satisfies %v", reg.Satisfied(disk)),
	})

	handle, err := reg.Bind("writable", disk)
	if err != nil {
		return steps, err
	}
	for _, v := range []int{3, 1, 4} {
		if _, err := handle.Invoke("Write", v); err != nil {
			return steps, fmt.Errorf("dynamic write: %w", err)
		}
	}
	drained := transfer.NewRecordingSink()
	if _, err := transfer.CopyAll(drained, disk); err != nil {
		return steps, err
	}
	steps = append(steps, Step{
		Label:  "invoke through dynamic handle",
		Detail: fmt.Sprintf("wrote via reflection, read back %v", drained.Values()),
	})

	_, err = reg.Bind("switchable", disk)
	steps = append(steps, Step{
		Label:  "bind disk as switchable",
		Detail: fmt.Sprintf("rejected at composition time: %v", err),
	})
	return steps, nil
}
