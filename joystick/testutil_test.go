package joystick_test

import (
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"gotest.tools/assert"

	"joytick/driver/memstick"
	. "joytick/joystick"
)

// testScan matches the default hardware scan period; with the config
// below that makes debounce 3 ticks, long press 10, click window 5,
// hold interval 5.
const testScan = 20 * time.Millisecond

func testConfig() *Config {
	return &Config{
		DebounceTime:    60 * time.Millisecond,
		LongPressStart:  200 * time.Millisecond,
		LongPressHold:   100 * time.Millisecond,
		ClickWindow:     100 * time.Millisecond,
		ADCMin:          0,
		ADCMax:          4096,
		Sensitivity:     50,
		NormalizedRange: 100,
	}
}

type recordedEvent struct {
	name string
	ev   Event
	val  int
}

// recorder collects dispatched events. Callbacks may fire from a
// scheduler goroutine, so access is locked.
type recorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *recorder) callback() Callback {
	return func(name string, ev Event, val int) {
		r.mu.Lock()
		r.events = append(r.events, recordedEvent{name, ev, val})
		r.mu.Unlock()
	}
}

// next pops the oldest recorded event, failing the test if none is
// pending.
func (r *recorder) next(t *testing.T) recordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		t.Fatal("no event recorded")
	}
	e := r.events[0]
	r.events = r.events[1:]
	return e
}

func (r *recorder) expect(t *testing.T, ev Event) recordedEvent {
	e := r.next(t)
	assert.Equal(t, e.ev, ev, "unexpected event kind")
	return e
}

func (r *recorder) expectNone(t *testing.T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) != 0 {
		t.Fatalf("unexpected event %s", r.events[0].ev)
	}
}

func (r *recorder) count(ev Event) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.ev == ev {
			n++
		}
	}
	return n
}

func (r *recorder) drain() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

// newTestStick builds a manager whose scheduler loops are not started,
// so tests drive ticks synchronously through tick(). The device starts
// not ready, mirroring power-on.
func newTestStick(t *testing.T, cfg *Config) (*Manager, *Device, *memstick.Stick, *memstick.ADC, *recorder) {
	m := New(clockwork.NewFakeClock())
	m.SetStartLoops(false)

	st := memstick.New()
	adc := memstick.NewADC()
	// both axes centered
	adc.Set(0, 0, 2048)
	adc.Set(0, 1, 2048)

	hw := HardwareConfig{Mode: ScanMode, ADC: adc, ADCUnit: 0, ChannelX: 0, ChannelY: 1}
	assert.NilError(t, m.Register("stick", st, hw))
	dev, err := m.Create("stick", cfg)
	assert.NilError(t, err)

	rec := &recorder{}
	for ev := Event(0); ev < EventMax; ev++ {
		assert.NilError(t, m.OnEvent(dev, ev, rec.callback()))
	}
	return m, dev, st, adc, rec
}

// newReadyStick is newTestStick with the power-on filter bypassed,
// which is what most gesture tests want.
func newReadyStick(t *testing.T, cfg *Config) (*Manager, *Device, *memstick.Stick, *memstick.ADC, *recorder) {
	m, dev, st, adc, rec := newTestStick(t, cfg)
	assert.NilError(t, m.SetReadyFlag("stick", true))
	return m, dev, st, adc, rec
}

func tick(m *Manager, d *Device) {
	m.StepDevice(d, testScan)
}

func tickN(m *Manager, d *Device, n int) {
	for i := 0; i < n; i++ {
		tick(m, d)
	}
}

// pressTicks/releaseTicks change the stick level and run n ticks.
func pressTicks(m *Manager, d *Device, st *memstick.Stick, n int) {
	st.Press()
	tickN(m, d, n)
}

func releaseTicks(m *Manager, d *Device, st *memstick.Stick, n int) {
	st.Release()
	tickN(m, d, n)
}
