// Package keystick simulates joystick buttons with keyboard keys for
// desktop development. Each stick is bound to one rune; pressing that
// key toggles the stick between pressed and released (a tap can't be
// held on a terminal, so toggling stands in for press/release).
package keystick

import (
	"fmt"
	"sync"

	"github.com/nsf/termbox-go"
)

// termbox owns the whole terminal, so one package-level poll loop
// serves every stick.
var (
	pollMu  sync.Mutex
	sticks  map[rune]*Stick
	running bool
	stop    chan struct{}
)

// Stick implements joystick.Driver over a single keyboard key.
type Stick struct {
	key rune

	mu      sync.Mutex
	pressed bool
}

func New(key rune) *Stick {
	return &Stick{key: key}
}

func (s *Stick) Create() error {
	pollMu.Lock()
	defer pollMu.Unlock()

	if sticks == nil {
		sticks = make(map[rune]*Stick)
	}
	if _, dup := sticks[s.key]; dup {
		return fmt.Errorf("keystick: key %q already bound", s.key)
	}

	if !running {
		if err := termbox.Init(); err != nil {
			return err
		}
		termbox.SetInputMode(termbox.InputEsc)
		termbox.Flush()
		stop = make(chan struct{})
		running = true
		go pollLoop(stop)
	}

	sticks[s.key] = s
	return nil
}

func (s *Stick) Delete() error {
	pollMu.Lock()
	defer pollMu.Unlock()
	delete(sticks, s.key)
	if len(sticks) == 0 && running {
		close(stop)
		running = false
		// the poll loop is blocked in PollEvent; kick it
		termbox.Interrupt()
	}
	return nil
}

func (s *Stick) ReadValue() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pressed, nil
}

func pollLoop(stop chan struct{}) {
	defer termbox.Close()
	for {
		select {
		case <-stop:
			return
		default:
		}

		ev := termbox.PollEvent()
		if ev.Type != termbox.EventKey {
			continue
		}
		pollMu.Lock()
		st := sticks[ev.Ch]
		pollMu.Unlock()
		if st != nil {
			st.mu.Lock()
			st.pressed = !st.pressed
			st.mu.Unlock()
		}
	}
}
