// Package gpiostick reads a joystick button through the periph.io GPIO
// stack. Pins are looked up by name in the host registry and put in
// pull-up input mode.
package gpiostick

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"joytick/joystick"
)

var (
	hostOnce sync.Once
	hostErr  error
)

// Stick implements joystick.Driver and joystick.LevelSetter for one
// named host pin, e.g. "GPIO13".
type Stick struct {
	name string
	pin  gpio.PinIO

	mu     sync.Mutex
	active joystick.Level
}

func New(pinName string) *Stick {
	return &Stick{name: pinName, active: joystick.ActiveLow}
}

func (s *Stick) Create() error {
	hostOnce.Do(func() {
		_, hostErr = host.Init()
	})
	if hostErr != nil {
		return hostErr
	}

	pin := gpioreg.ByName(s.name)
	if pin == nil {
		return fmt.Errorf("gpiostick: no pin named %q", s.name)
	}
	if err := pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return fmt.Errorf("gpiostick: %s: %w", s.name, err)
	}
	s.pin = pin
	return nil
}

func (s *Stick) Delete() error {
	if s.pin == nil {
		return nil
	}
	return s.pin.Halt()
}

func (s *Stick) ReadValue() (bool, error) {
	if s.pin == nil {
		return false, fmt.Errorf("gpiostick: %s not created", s.name)
	}
	level := s.pin.Read()
	s.mu.Lock()
	active := s.active
	s.mu.Unlock()
	if active == joystick.ActiveLow {
		return level == gpio.Low, nil
	}
	return level == gpio.High, nil
}

func (s *Stick) SetActiveLevel(l joystick.Level) error {
	s.mu.Lock()
	s.active = l
	s.mu.Unlock()
	return nil
}
