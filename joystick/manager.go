// Package joystick turns raw button and two-axis stick samples into
// debounced, timed input events: press/release, single/double/N-click,
// long-press start and hold, and four-direction short/long gestures.
//
// Devices are registered with a hardware Driver, created with a user
// Config, and scanned by one of two scheduler goroutines depending on
// their mode. Detected events are dispatched synchronously to
// per-device callback slots.
package joystick

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Manager owns the device registry and the two scheduler loops. All
// methods are safe for concurrent use.
type Manager struct {
	clock  clockwork.Clock
	logger *log.Logger

	// mu guards the registry and the scheduler bookkeeping below. It
	// is held only for list mutation and loop start/stop, never across
	// a driver call or a sleep.
	mu      sync.Mutex
	devices []*Device

	scanTime    time.Duration
	burstWindow time.Duration

	startLoops bool
	scanOn     bool
	burstOn    bool
	scanStop   chan struct{}
	burstStop  chan struct{}
	wake       chan struct{}

	modeInUse [2]bool
}

// New builds an empty manager. A nil clock means wall-clock time;
// tests pass a clockwork.FakeClock to drive the scheduler manually.
func New(clock clockwork.Clock) *Manager {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Manager{
		clock:       clock,
		logger:      log.New(os.Stderr, "", log.LstdFlags),
		scanTime:    DefaultScanTime,
		burstWindow: DefaultBurstWindow,
		startLoops:  true,
		wake:        make(chan struct{}, 1),
	}
}

// SetLogger replaces the manager's logger.
func (m *Manager) SetLogger(l *log.Logger) {
	if l != nil {
		m.logger = l
	}
}

// findByName returns the named device. Caller holds m.mu.
func (m *Manager) findByName(name string) *Device {
	for _, d := range m.devices {
		if d.name == name {
			return d
		}
	}
	return nil
}

// lookup validates a handle against the registry, so a deleted device
// cannot be operated on through a stale pointer.
func (m *Manager) lookup(h *Device) error {
	if h == nil {
		return ErrInvalidParam
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.devices {
		if d == h {
			return nil
		}
	}
	return ErrNotFound
}

// Register binds a driver and hardware description to a unique name.
// Registration alone does not touch the hardware or start scanning;
// that happens at Create.
func (m *Manager) Register(name string, drv Driver, hw HardwareConfig) error {
	if name == "" || drv == nil {
		return ErrInvalidParam
	}
	if hw.Mode != ScanMode && hw.Mode != BurstMode {
		return ErrInvalidParam
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findByName(name) != nil {
		return ErrAlreadyExists
	}
	d := &Device{name: name, drv: drv, hw: hw, lastDir: noDirection}
	m.devices = append(m.devices, d)
	return nil
}

// Create initializes a registered device: applies the user config
// (nil means defaults), brings up the hardware and joins the scheduler
// loop for the device's mode. The returned handle is used for all
// further per-device calls.
func (m *Manager) Create(name string, cfg *Config) (*Device, error) {
	m.mu.Lock()
	d := m.findByName(name)
	m.mu.Unlock()
	if d == nil {
		return nil, ErrNotFound
	}

	if cfg == nil {
		cfg = defaultConfig()
	}
	if cfg.DebounceTime < 0 || cfg.LongPressStart < 0 ||
		cfg.LongPressHold < 0 || cfg.ClickWindow < 0 {
		return nil, ErrInvalidParam
	}

	// DeleteWithoutHardware keeps the binding alive; don't bring the
	// hardware up a second time.
	d.mu.Lock()
	up := d.hwUp
	d.mu.Unlock()
	if !up {
		if err := d.drv.Create(); err != nil {
			return nil, fmt.Errorf("%w: create %s: %v", ErrDriver, name, err)
		}
	}

	d.mu.Lock()
	d.resetRuntime()
	d.cfg = *cfg
	d.created = true
	d.hwUp = true
	d.mu.Unlock()

	m.mu.Lock()
	m.modeInUse[d.hw.Mode] = true
	if m.startLoops {
		m.startLoopLocked(d.hw.Mode)
	}
	m.mu.Unlock()

	m.logger.Printf("joystick: created %s", name)
	return d, nil
}

// Delete tears down the hardware and unlinks the device. The handle is
// stale afterwards.
func (m *Manager) Delete(h *Device) error {
	if err := m.lookup(h); err != nil {
		return err
	}

	// take the device out of the scan rotation before the hardware
	// goes away, so no loop reads a torn-down driver
	h.mu.Lock()
	wasCreated := h.created
	h.created = false
	h.mu.Unlock()

	if err := h.drv.Delete(); err != nil {
		h.mu.Lock()
		h.created = wasCreated
		h.mu.Unlock()
		return fmt.Errorf("%w: delete %s: %v", ErrDriver, h.name, err)
	}

	h.mu.Lock()
	h.hwUp = false
	h.mu.Unlock()

	m.mu.Lock()
	for i, d := range m.devices {
		if d == h {
			m.devices = append(m.devices[:i], m.devices[i+1:]...)
			break
		}
	}
	m.mu.Unlock()

	m.logger.Printf("joystick: deleted %s", h.name)
	return nil
}

// DeleteWithoutHardware resets the device's software state, config and
// callbacks but keeps the registration and hardware binding alive for
// reuse via a later Create.
func (m *Manager) DeleteWithoutHardware(h *Device) error {
	if err := m.lookup(h); err != nil {
		return err
	}
	h.mu.Lock()
	h.cfg = Config{}
	h.callbacks = [eventMax]Callback{}
	h.resetRuntime()
	h.created = false
	h.mu.Unlock()
	return nil
}

// OnEvent installs the callback for one event kind. Re-registering
// overwrites the slot; a nil callback clears it.
func (m *Manager) OnEvent(h *Device, ev Event, cb Callback) error {
	if ev < 0 || ev >= eventMax {
		return ErrInvalidParam
	}
	if err := m.lookup(h); err != nil {
		return err
	}
	h.mu.Lock()
	h.callbacks[ev] = cb
	h.mu.Unlock()
	return nil
}

// ReadStatus samples the raw pressed level straight from the driver,
// bypassing the debounce filter.
func (m *Manager) ReadStatus(h *Device) (bool, error) {
	if err := m.lookup(h); err != nil {
		return false, err
	}
	v, err := h.drv.ReadValue()
	if err != nil {
		return false, fmt.Errorf("%w: read %s: %v", ErrDriver, h.name, err)
	}
	return v, nil
}

// RawXY samples both ADC channels of an analog device.
func (m *Manager) RawXY(h *Device) (int32, int32, error) {
	if err := m.lookup(h); err != nil {
		return 0, 0, err
	}
	return h.rawXY()
}

// CalibratedXY samples both axes centered and scaled per the device
// config.
func (m *Manager) CalibratedXY(h *Device) (int32, int32, error) {
	if err := m.lookup(h); err != nil {
		return 0, 0, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.calibratedXY()
}

// SetScanTime tunes the scheduler period. Values below the default
// floor are rejected; every ms-to-ticks conversion picks up the new
// period on the next pass.
func (m *Manager) SetScanTime(d time.Duration) error {
	if d < DefaultScanTime {
		return ErrInvalidParam
	}
	m.mu.Lock()
	m.scanTime = d
	m.mu.Unlock()
	return nil
}

// ScanTime reports the active scheduler period.
func (m *Manager) ScanTime() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scanTime
}

// SetBurstWindow tunes how long the burst loop keeps polling after the
// last activity before going back to sleep.
func (m *Manager) SetBurstWindow(d time.Duration) error {
	if d <= 0 {
		return ErrInvalidParam
	}
	m.mu.Lock()
	m.burstWindow = d
	m.mu.Unlock()
	return nil
}

// SetReadyFlag overrides the power-on suppression state. Devices start
// not ready: a scan-mode device that boots into a pressed level stays
// silent until released, then reports RecoverPressUp. Marking a device
// ready up front disables that filtering.
func (m *Manager) SetReadyFlag(name string, ready bool) error {
	m.mu.Lock()
	d := m.findByName(name)
	m.mu.Unlock()
	if d == nil {
		return ErrNotFound
	}
	d.mu.Lock()
	d.ready = ready
	d.sawBootPress = false
	d.mu.Unlock()
	return nil
}

// SetActiveLevel switches which electrical level counts as pressed,
// for drivers that support it.
func (m *Manager) SetActiveLevel(h *Device, level Level) error {
	if err := m.lookup(h); err != nil {
		return err
	}
	ls, ok := h.drv.(LevelSetter)
	if !ok {
		return ErrInvalidParam
	}
	if err := ls.SetActiveLevel(level); err != nil {
		return fmt.Errorf("%w: set level %s: %v", ErrDriver, h.name, err)
	}
	return nil
}

// DeepSleepCtrl stops (enable=false) or restarts (enable=true) the
// scheduler loops. Device state is preserved across a disable/enable
// cycle; only the scanning stops.
func (m *Manager) DeepSleepCtrl(enable bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !enable {
		m.stopLoopsLocked()
		return nil
	}
	for mode, used := range m.modeInUse {
		if used {
			m.startLoopLocked(Mode(mode))
		}
	}
	return nil
}

// WakeBurst opens the burst loop's polling window. It is the hook for
// the external low-frequency wake timer; a wake posted while a window
// is already open is absorbed.
func (m *Manager) WakeBurst() {
	select {
	case m.wake <- struct{}{}:
	default:
	}
}

// Close stops the scheduler loops. Registered devices stay in the
// registry; hardware teardown is per-device via Delete.
func (m *Manager) Close() {
	m.mu.Lock()
	m.stopLoopsLocked()
	m.mu.Unlock()
}
