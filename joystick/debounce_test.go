package joystick_test

import (
	"testing"

	"gotest.tools/assert"

	. "joytick/joystick"
)

// debounce 60ms at a 20ms scan period commits on the third consistent
// sample.

func TestDebounceRejectsShortGlitch(t *testing.T) {
	m, dev, st, _, rec := newReadyStick(t, testConfig())

	// two ticks of pressed level, then back: below the threshold
	pressTicks(m, dev, st, 2)
	releaseTicks(m, dev, st, 4)
	rec.expectNone(t)
	assert.Equal(t, dev.CommittedStatus(), false)
}

func TestDebounceCommitAtThreshold(t *testing.T) {
	m, dev, st, _, rec := newReadyStick(t, testConfig())

	pressTicks(m, dev, st, 2)
	rec.expectNone(t)
	tick(m, dev) // third consistent sample commits
	rec.expect(t, PressDown)
	assert.Equal(t, dev.CommittedStatus(), true)
}

func TestDebounceSymmetricOnRelease(t *testing.T) {
	m, dev, st, _, rec := newReadyStick(t, testConfig())

	pressTicks(m, dev, st, 3)
	rec.expect(t, PressDown)

	// a two-tick release glitch while pressed must not report PressUp
	releaseTicks(m, dev, st, 2)
	pressTicks(m, dev, st, 2)
	rec.expectNone(t)
	assert.Equal(t, dev.CommittedStatus(), true)
}

func TestDebounceCounterRestartsAfterGlitch(t *testing.T) {
	m, dev, st, _, rec := newReadyStick(t, testConfig())

	// noise, settle, noise: the counter must restart from zero each
	// time the raw level matches the committed one
	pressTicks(m, dev, st, 2)
	releaseTicks(m, dev, st, 1)
	pressTicks(m, dev, st, 2)
	rec.expectNone(t)
	tick(m, dev)
	rec.expect(t, PressDown)
}
