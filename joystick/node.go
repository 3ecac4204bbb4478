package joystick

import "sync"

// pressPhase tags the button state machine. Every scan tick has a
// defined transition for every phase.
type pressPhase int

const (
	phaseIdle         pressPhase = iota // released, no gesture pending
	phasePressed                        // first press of a gesture
	phaseReleaseWait                    // released, click window open
	phasePressedAgain                   // pressed again inside the window
	phaseLongHold                       // long press confirmed, held
	phaseRecover                        // suppressing a power-on press
)

// Device is one registered input. The manager owns it exclusively; the
// pointer doubles as the public handle and is validated against the
// registry on every API call.
type Device struct {
	name string
	drv  Driver
	hw   HardwareConfig

	// mu serializes the debounce+FSM step with API access. It is never
	// held across a sleep or a blocking call.
	mu  sync.Mutex
	cfg Config

	created bool // scanned and dispatching; cleared first thing on Delete
	hwUp    bool // driver Create done, no Delete yet; survives DeleteWithoutHardware

	// debounce filter
	rawStatus   bool
	status      bool // committed status
	debounceCnt int

	// button FSM
	phase  pressPhase
	ticks  int
	repeat int

	// power-on handling: until ready, a scan-mode device that boots
	// into a pressed level is ignored, and the eventual release is
	// reported as RecoverPressUp instead of a click.
	ready        bool
	sawBootPress bool

	// direction FSM
	lastDir  Event
	dirTicks int

	callbacks [eventMax]Callback
}

// setPhase changes the FSM phase and resets the tick counter, which by
// invariant restarts on every phase change.
func (d *Device) setPhase(p pressPhase) {
	d.phase = p
	d.ticks = 0
}

// emit dispatches one event to its registered callback, if any. Runs
// with d.mu held.
func (d *Device) emit(ev Event, val int) {
	if ev < 0 || ev >= eventMax {
		return
	}
	if cb := d.callbacks[ev]; cb != nil {
		cb(d.name, ev, val)
	}
}

// resetRuntime clears all gesture state but keeps the registration and
// hardware binding.
func (d *Device) resetRuntime() {
	d.rawStatus = false
	d.status = false
	d.debounceCnt = 0
	d.phase = phaseIdle
	d.ticks = 0
	d.repeat = 0
	d.ready = false
	d.sawBootPress = false
	d.lastDir = noDirection
	d.dirTicks = 0
}
