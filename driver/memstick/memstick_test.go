package memstick

import (
	"testing"

	"gotest.tools/assert"

	"joytick/joystick"
)

func TestPolarity(t *testing.T) {
	s := New()

	// pull-up wiring: idle high reads unpressed
	v, err := s.ReadValue()
	assert.NilError(t, err)
	assert.Equal(t, v, false)

	s.Press()
	v, _ = s.ReadValue()
	assert.Equal(t, v, true)

	// flipping polarity while the line is low inverts the reading
	assert.NilError(t, s.SetActiveLevel(joystick.ActiveHigh))
	v, _ = s.ReadValue()
	assert.Equal(t, v, false)

	s.SetLevel(true)
	v, _ = s.ReadValue()
	assert.Equal(t, v, true)
}

func TestADCChannels(t *testing.T) {
	a := NewADC()

	v, err := a.ReadChannel(0, 0)
	assert.NilError(t, err)
	assert.Equal(t, v, int32(0))

	a.Set(0, 0, 2048)
	a.Set(1, 3, -7)
	v, _ = a.ReadChannel(0, 0)
	assert.Equal(t, v, int32(2048))
	v, _ = a.ReadChannel(1, 3)
	assert.Equal(t, v, int32(-7))
}
