// Package power implements switching of electrical devices. A Button works
// against anything Switchable; devices with foreign control surfaces join
// in through adapters rather than by teaching the button about them.
package power

import "fmt"

// Switchable is a device that can be switched on and off.
type Switchable interface {
	TurnOn() error
	TurnOff() error
}

// Lamp is a directly switchable device.
type Lamp struct {
	lit bool
}

// NewLamp returns a lamp that is off.
func NewLamp() *Lamp {
	return &Lamp{}
}

func (l *Lamp) TurnOn() error {
	l.lit = true
	return nil
}

func (l *Lamp) TurnOff() error {
	l.lit = false
	return nil
}

// Lit reports whether the lamp is on.
func (l *Lamp) Lit() bool {
	return l.lit
}

// Motor is a pre-existing device with its own control surface. It knows
// nothing about Switchable and is not modified to fit it.
type Motor struct {
	rpm int
}

// NewMotor returns a stopped motor.
func NewMotor() *Motor {
	return &Motor{}
}

// Start spins the motor up to its working speed.
func (m *Motor) Start(rpm int) error {
	if rpm <= 0 {
		return fmt.Errorf("starting motor: rpm must be positive, got %d", rpm)
	}
	m.rpm = rpm
	return nil
}

// Stop halts the motor.
func (m *Motor) Stop() {
	m.rpm = 0
}

// RPM reports the current speed.
func (m *Motor) RPM() int {
	return m.rpm
}

// MotorAdapter re-exposes a Motor under the Switchable capability. The
// wrapped motor is untouched; the adapter carries the fixed speed the
// switch semantics need.
type MotorAdapter struct {
	motor *Motor
	rpm   int
}

// AdaptMotor wraps motor so that switching it on starts it at rpm.
func AdaptMotor(motor *Motor, rpm int) *MotorAdapter {
	return &MotorAdapter{motor: motor, rpm: rpm}
}

func (a *MotorAdapter) TurnOn() error {
	if err := a.motor.Start(a.rpm); err != nil {
		return fmt.Errorf("switching motor on: %w", err)
	}
	return nil
}

func (a *MotorAdapter) TurnOff() error {
	a.motor.Stop()
	return nil
}

// Button toggles a Switchable. It holds only the capability handle and a
// notion of its own position; which device sits behind the handle is
// invisible to it.
type Button struct {
	device Switchable
	on     bool
}

// NewButton wires a button to a device.
func NewButton(device Switchable) *Button {
	return &Button{device: device}
}

// Press flips the button and drives the device to the new position.
func (b *Button) Press() error {
	if b.on {
		if err := b.device.TurnOff(); err != nil {
			return fmt.Errorf("pressing button: %w", err)
		}
		b.on = false
		return nil
	}
	if err := b.device.TurnOn(); err != nil {
		return fmt.Errorf("pressing button: %w", err)
	}
	b.on = true
	return nil
}

// On reports the button's position.
func (b *Button) On() bool {
	return b.on
}
