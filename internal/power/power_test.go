package power

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestButton_TogglesLamp(t *testing.T) {
	lamp := NewLamp()
	button := NewButton(lamp)

	require.NoError(t, button.Press())
	assert.True(t, button.On())
	assert.True(t, lamp.Lit())

	require.NoError(t, button.Press())
	assert.False(t, button.On())
	assert.False(t, lamp.Lit())
}

func TestButton_TogglesAdaptedMotor(t *testing.T) {
	// The same button drives a motor through its adapter. The button never
	// learns it is talking to a motor; the adapter supplies the speed.
	motor := NewMotor()
	button := NewButton(AdaptMotor(motor, 1200))

	require.NoError(t, button.Press())
	assert.Equal(t, 1200, motor.RPM())

	require.NoError(t, button.Press())
	assert.Equal(t, 0, motor.RPM())
}

func TestMotorAdapter_PropagatesStartError(t *testing.T) {
	// A misconfigured adapter surfaces the motor's own error; the button
	// stays in its previous position.
	motor := NewMotor()
	button := NewButton(AdaptMotor(motor, 0))

	err := button.Press()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rpm must be positive")
	assert.False(t, button.On())
	assert.Equal(t, 0, motor.RPM())
}

func TestMotor_StartValidatesSpeed(t *testing.T) {
	motor := NewMotor()
	require.NoError(t, motor.Start(600))
	assert.Equal(t, 600, motor.RPM())

	motor.Stop()
	assert.Equal(t, 0, motor.RPM())

	assert.Error(t, motor.Start(-1))
}

func TestButton_SubstitutableDevices(t *testing.T) {
	// Any conforming device behaves identically from the button's point
	// of view: press on, press off, no special cases.
	devices := map[string]Switchable{
		"lamp":  NewLamp(),
		"motor": AdaptMotor(NewMotor(), 900),
	}
	for name, device := range devices {
		button := NewButton(device)
		require.NoError(t, button.Press(), name)
		assert.True(t, button.On(), name)
		require.NoError(t, button.Press(), name)
		assert.False(t, button.On(), name)
	}
}
