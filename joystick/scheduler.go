package joystick

import "time"

// Two scheduler goroutines exist at most, regardless of device count:
// the scan loop polls every scan-mode device at a fixed period forever,
// and the burst loop sleeps on the wake channel, then polls every
// burst-mode device densely until the burst window closes with no
// activity. A device is scanned by exactly one of them.

// startLoopLocked launches the loop for one mode if it is not already
// running. Caller holds m.mu.
func (m *Manager) startLoopLocked(mode Mode) {
	switch mode {
	case ScanMode:
		if m.scanOn {
			return
		}
		m.scanStop = make(chan struct{})
		m.scanOn = true
		go m.scanLoop(m.scanStop)
	case BurstMode:
		if m.burstOn {
			return
		}
		m.burstStop = make(chan struct{})
		m.burstOn = true
		go m.burstLoop(m.burstStop)
	}
}

// stopLoopsLocked signals both loops to exit. Caller holds m.mu.
func (m *Manager) stopLoopsLocked() {
	if m.scanOn {
		close(m.scanStop)
		m.scanOn = false
	}
	if m.burstOn {
		close(m.burstStop)
		m.burstOn = false
	}
}

func (m *Manager) scanLoop(stop chan struct{}) {
	for {
		select {
		case <-stop:
			m.logger.Printf("joystick: scan loop stopped")
			return
		default:
		}

		scan := m.ScanTime()
		m.scanPass(ScanMode, scan)
		m.clock.Sleep(scan)
	}
}

func (m *Manager) burstLoop(stop chan struct{}) {
	for {
		select {
		case <-stop:
			m.logger.Printf("joystick: burst loop stopped")
			return
		case <-m.wake:
		}

		cnt := 0
		for {
			scan := m.ScanTime()
			if m.scanPass(BurstMode, scan) {
				// something is happening; keep the window open
				cnt = 0
			}
			cnt++
			if cnt >= m.burstTicks(scan) {
				break
			}
			m.clock.Sleep(scan)

			select {
			case <-stop:
				m.logger.Printf("joystick: burst loop stopped")
				return
			default:
			}
		}

		// absorb a wake that arrived while the window was open
		select {
		case <-m.wake:
		default:
		}
	}
}

func (m *Manager) burstTicks(scan time.Duration) int {
	m.mu.Lock()
	w := m.burstWindow
	m.mu.Unlock()
	n := int(w / scan)
	if n < 1 {
		n = 1
	}
	return n
}

// scanPass runs one debounce+FSM step over every device of the given
// mode. Reports whether any of them has a gesture in flight.
func (m *Manager) scanPass(mode Mode, scan time.Duration) bool {
	m.mu.Lock()
	devs := make([]*Device, 0, len(m.devices))
	for _, d := range m.devices {
		if d.hw.Mode == mode {
			devs = append(devs, d)
		}
	}
	m.mu.Unlock()

	active := false
	for _, d := range devs {
		if m.stepDevice(d, scan) {
			active = true
		}
	}
	return active
}

// stepDevice locks one device for the duration of a single
// debounce+FSM step. The lock is never held across a sleep, so the two
// loops contend for at most one step of one device.
func (m *Manager) stepDevice(d *Device, scan time.Duration) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return m.handleDevice(d, scan)
}

// handleDevice is the per-tick pipeline: driver sample, power-on
// filtering, tick counting, debounce, button FSM, direction FSM.
// Runs with d.mu held.
func (m *Manager) handleDevice(d *Device, scan time.Duration) bool {
	if !d.created {
		return false
	}
	raw, err := d.drv.ReadValue()
	if err != nil {
		m.logger.Printf("joystick: %s: read: %v", d.name, err)
		return false
	}

	// A scan-mode device that powers on into a pressed level must not
	// report that press as a gesture. Swallow samples until the first
	// release, then let the FSM report a one-shot RecoverPressUp.
	// Burst-mode devices only scan after an explicit wake and don't
	// need this.
	if d.hw.Mode == ScanMode && !d.ready {
		if raw {
			d.sawBootPress = true
			return false
		}
		if d.sawBootPress {
			d.setPhase(phaseRecover)
		}
		d.ready = true
	}

	if d.phase != phaseIdle {
		d.ticks++
	}

	threshold := msToTicks(d.cfg.DebounceTime, scan)
	if threshold < 1 {
		threshold = 1
	}
	d.debounce(raw, threshold)

	active := d.stepButton(scan)
	d.stepDirection(scan)
	return active
}
