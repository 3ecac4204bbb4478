package joystick

import "time"

// Test-only exports: the gesture tests live in the external package
// joystick_test (they import driver/memstick, which imports this
// package, so they cannot compile in-package). These shims expose the
// unexported pieces those tests drive and inspect.

const EventMax = eventMax

func Calibrate(raw, adcMin, adcMax, normalized int32) int32 {
	return calibrate(raw, adcMin, adcMax, normalized)
}

// SetStartLoops toggles scheduler loop startup so tests can drive
// ticks synchronously.
func (m *Manager) SetStartLoops(v bool) { m.startLoops = v }

// StepDevice runs one synchronous debounce+FSM tick.
func (m *Manager) StepDevice(d *Device, scan time.Duration) bool {
	return m.stepDevice(d, scan)
}

// CommittedStatus returns the debounced status.
func (d *Device) CommittedStatus() bool { return d.status }

// CreatedFlag reports whether the device is in the scan rotation.
func (d *Device) CreatedFlag() bool { return d.created }

// CreatedFlagLocked is CreatedFlag under the device lock, for driver
// teardowns that inspect scan state concurrently.
func (d *Device) CreatedFlagLocked() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.created
}

// ConfigSnapshot returns a copy of the device's active config.
func (d *Device) ConfigSnapshot() Config { return d.cfg }

// CallbackSlot returns the callback registered for ev.
func (d *Device) CallbackSlot(ev Event) Callback { return d.callbacks[ev] }
