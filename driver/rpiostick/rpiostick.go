// Package rpiostick reads a joystick button wired to a Raspberry Pi
// GPIO pin through github.com/stianeikeland/go-rpio. Pins are put in
// pull-up input mode, so grounding the pin is a press.
package rpiostick

import (
	"sync"

	"github.com/stianeikeland/go-rpio"

	"joytick/joystick"
)

// rpio.Open maps /dev/gpiomem once for the whole process; refcount so
// the last deleted stick closes it.
var (
	openMu  sync.Mutex
	openCnt int
)

// Stick implements joystick.Driver and joystick.LevelSetter for one
// GPIO pin.
type Stick struct {
	pin rpio.Pin

	mu     sync.Mutex
	active joystick.Level
}

func New(pin int) *Stick {
	return &Stick{pin: rpio.Pin(pin), active: joystick.ActiveLow}
}

func (s *Stick) Create() error {
	openMu.Lock()
	defer openMu.Unlock()
	if openCnt == 0 {
		if err := rpio.Open(); err != nil {
			return err
		}
	}
	openCnt++

	s.pin.Input()
	s.pin.PullUp() // GND => button press
	return nil
}

func (s *Stick) Delete() error {
	openMu.Lock()
	defer openMu.Unlock()
	openCnt--
	if openCnt == 0 {
		return rpio.Close()
	}
	return nil
}

func (s *Stick) ReadValue() (bool, error) {
	state := s.pin.Read()
	s.mu.Lock()
	active := s.active
	s.mu.Unlock()
	if active == joystick.ActiveLow {
		return state == rpio.Low, nil
	}
	return state == rpio.High, nil
}

func (s *Stick) SetActiveLevel(l joystick.Level) error {
	s.mu.Lock()
	s.active = l
	s.mu.Unlock()
	return nil
}
