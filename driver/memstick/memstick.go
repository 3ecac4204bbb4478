// Package memstick is an in-memory joystick driver. It backs the core
// tests and joywatch's simulation mode: tests poke the electrical
// level and ADC channel values directly.
package memstick

import (
	"sync"

	"joytick/joystick"
)

// Stick implements joystick.Driver and joystick.LevelSetter. The zero
// state models pull-up wiring: line high, active low, not pressed.
type Stick struct {
	mu      sync.Mutex
	high    bool
	active  joystick.Level
	created bool

	// error injection for tests
	CreateErr error
	DeleteErr error
	ReadErr   error
}

func New() *Stick {
	return &Stick{high: true, active: joystick.ActiveLow}
}

func (s *Stick) Create() error {
	if s.CreateErr != nil {
		return s.CreateErr
	}
	s.mu.Lock()
	s.created = true
	s.mu.Unlock()
	return nil
}

func (s *Stick) Delete() error {
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	s.mu.Lock()
	s.created = false
	s.mu.Unlock()
	return nil
}

func (s *Stick) ReadValue() (bool, error) {
	if s.ReadErr != nil {
		return false, s.ReadErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == joystick.ActiveLow {
		return !s.high, nil
	}
	return s.high, nil
}

func (s *Stick) SetActiveLevel(l joystick.Level) error {
	s.mu.Lock()
	s.active = l
	s.mu.Unlock()
	return nil
}

// Press drives the line to the active level.
func (s *Stick) Press() { s.SetPressed(true) }

// Release drives the line back to idle.
func (s *Stick) Release() { s.SetPressed(false) }

func (s *Stick) SetPressed(pressed bool) {
	s.mu.Lock()
	s.high = pressed == (s.active == joystick.ActiveHigh)
	s.mu.Unlock()
}

// SetLevel pokes the raw electrical level, bypassing the polarity
// interpretation.
func (s *Stick) SetLevel(high bool) {
	s.mu.Lock()
	s.high = high
	s.mu.Unlock()
}

// Created reports whether the fake hardware is up.
func (s *Stick) Created() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.created
}

// ADC implements joystick.ADCReader over a settable channel map.
type ADC struct {
	mu   sync.Mutex
	vals map[[2]int]int32

	Err error
}

func NewADC() *ADC {
	return &ADC{vals: make(map[[2]int]int32)}
}

func (a *ADC) ReadChannel(unit, channel int) (int32, error) {
	if a.Err != nil {
		return 0, a.Err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.vals[[2]int{unit, channel}], nil
}

// Set stores the value the given channel will read.
func (a *ADC) Set(unit, channel int, v int32) {
	a.mu.Lock()
	a.vals[[2]int{unit, channel}] = v
	a.mu.Unlock()
}
