package joystick

import "time"

// Mode selects which scheduler loop scans a device. The choice is made
// at registration and never migrated.
type Mode int

const (
	// ScanMode devices are polled on the fixed-period scan loop.
	ScanMode Mode = iota
	// BurstMode devices are polled only while a burst window is open;
	// the burst loop sleeps otherwise to save power and is woken by
	// WakeBurst.
	BurstMode
)

// Level selects which electrical level counts as "pressed".
type Level int

const (
	// ActiveLow means a low read is a press (pull-up wiring, button
	// grounds the pin). This is the default for every bundled driver.
	ActiveLow Level = iota
	ActiveHigh
)

// Driver is the hardware binding the manager calls into. One Driver
// value is bound per device at registration; the manager treats it as
// exclusively owned by that device.
type Driver interface {
	// Create brings up the hardware. Called once from Manager.Create.
	Create() error
	// Delete tears the hardware down. Called from Manager.Delete.
	Delete() error
	// ReadValue samples the raw digital level, true meaning pressed.
	// It must be fast and non-blocking; it is called every scan tick.
	ReadValue() (bool, error)
}

// LevelSetter is an optional Driver capability for sticks whose center
// button polarity is switchable at runtime.
type LevelSetter interface {
	SetActiveLevel(Level) error
}

// ADCReader samples one analog channel. It is consumed as a black box;
// analog sticks get their two axes through it.
type ADCReader interface {
	ReadChannel(unit, channel int) (int32, error)
}

// HardwareConfig describes the physical side of a device. ADC is nil
// for button-only devices; such devices skip direction processing.
type HardwareConfig struct {
	Mode     Mode
	ADC      ADCReader
	ADCUnit  int
	ChannelX int
	ChannelY int
}

// Defaults applied when Create is handed a nil Config.
const (
	DefaultDebounceTime   = 60 * time.Millisecond
	DefaultLongPressStart = 1500 * time.Millisecond
	DefaultLongPressHold  = 100 * time.Millisecond
	DefaultClickWindow    = 500 * time.Millisecond

	// DefaultScanTime is also the floor for SetScanTime.
	DefaultScanTime = 20 * time.Millisecond

	// DefaultBurstWindow is how long the burst loop keeps polling
	// after the last activity before going back to sleep.
	DefaultBurstWindow = 10 * time.Second
)

// Config is the per-device user configuration.
type Config struct {
	// DebounceTime is how long a raw level must stay stable before it
	// is committed.
	DebounceTime time.Duration

	// LongPressStart is the hold duration that turns a press into a
	// long press. Zero disables long presses entirely.
	LongPressStart time.Duration

	// LongPressHold is the re-emission interval of LongPressHold
	// events while a long press is held. It also paces repeated
	// long-direction events.
	LongPressHold time.Duration

	// ClickWindow is the time after a release during which the next
	// press still counts toward the same multi-click gesture.
	ClickWindow time.Duration

	// ClickMaxCount, when greater than 2, makes a gesture of exactly
	// that many clicks emit PressRepeat. Repeat counts between 2 and
	// ClickMaxCount are absorbed silently.
	ClickMaxCount int

	// ADC calibration range and output scaling for analog sticks.
	ADCMin          int32
	ADCMax          int32
	Sensitivity     int32
	NormalizedRange int32
}

func defaultConfig() *Config {
	return &Config{
		DebounceTime:   DefaultDebounceTime,
		LongPressStart: DefaultLongPressStart,
		LongPressHold:  DefaultLongPressHold,
		ClickWindow:    DefaultClickWindow,
	}
}

// msToTicks converts a duration threshold into scan ticks, rounding up
// so a threshold is never committed early.
func msToTicks(d, scan time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + scan - 1) / scan)
}
