package joystick

import "time"

// stepButton advances the button state machine one scan tick. It runs
// with d.mu held, after the tick counter update and the debounce step.
// The return value reports whether a gesture is in flight, which the
// burst loop uses to keep its window open.
//
// Thresholds are converted from durations to ticks with the active
// scan period, rounding up.
func (d *Device) stepButton(scan time.Duration) bool {
	longTicks := msToTicks(d.cfg.LongPressStart, scan)
	windowTicks := msToTicks(d.cfg.ClickWindow, scan)

	switch d.phase {
	case phaseIdle:
		if d.status {
			d.setPhase(phasePressed)
			d.repeat = 1
			d.emit(PressDown, d.repeat)
		}

	case phasePressed:
		if d.status {
			// longTicks == 0 disables the long-press path; the phase
			// stays here until release.
			if longTicks > 0 && d.ticks >= longTicks {
				d.emit(LongPressStart, d.heldMs(scan))
				d.setPhase(phaseLongHold)
			}
		} else {
			d.emit(PressUp, d.repeat)
			d.setPhase(phaseReleaseWait)
		}

	case phaseReleaseWait:
		if d.status {
			d.repeat++
			d.emit(PressDown, d.repeat)
			d.setPhase(phasePressedAgain)
		} else if d.ticks >= windowTicks {
			// window expired: the gesture is complete. Only repeat
			// counts of 1, 2 and exactly ClickMaxCount are reported;
			// anything in between is absorbed.
			switch {
			case d.repeat == 1:
				d.emit(SingleClick, d.repeat)
			case d.repeat == 2:
				d.emit(DoubleClick, d.repeat)
			case d.repeat == d.cfg.ClickMaxCount && d.cfg.ClickMaxCount > 2:
				d.emit(PressRepeat, d.repeat)
			}
			d.setPhase(phaseIdle)
		}

	case phasePressedAgain:
		if !d.status {
			d.emit(PressUp, d.repeat)
			if d.ticks >= windowTicks {
				d.setPhase(phaseIdle)
			} else {
				d.setPhase(phaseReleaseWait)
			}
		}

	case phaseLongHold:
		if d.status {
			holdTicks := msToTicks(d.cfg.LongPressHold, scan)
			if holdTicks == 0 {
				holdTicks = 1
			}
			if d.ticks >= holdTicks && d.ticks%holdTicks == 0 {
				d.emit(LongPressHold, d.heldMs(scan))
			}
		} else {
			d.emit(PressUp, d.heldMs(scan))
			d.setPhase(phaseIdle)
		}

	case phaseRecover:
		// one-shot: the level the hardware booted with has finally
		// been released. Report it and start from a clean slate.
		d.emit(RecoverPressUp, 0)
		d.repeat = 0
		d.setPhase(phaseIdle)
	}

	return d.status || d.phase != phaseIdle
}

// heldMs is the callback value for long-press events: how long the
// press has been held, in milliseconds. In phaseLongHold the tick
// counter restarts at the long-press boundary, so the threshold is
// added back.
func (d *Device) heldMs(scan time.Duration) int {
	held := time.Duration(d.ticks) * scan
	if d.phase == phaseLongHold {
		held += d.cfg.LongPressStart
	}
	return int(held / time.Millisecond)
}
