package joystick

import (
	"fmt"
	"time"
)

// rawXY samples both ADC channels. Only valid for analog devices.
func (d *Device) rawXY() (int32, int32, error) {
	if d.hw.ADC == nil {
		return 0, 0, ErrInvalidParam
	}
	x, err := d.hw.ADC.ReadChannel(d.hw.ADCUnit, d.hw.ChannelX)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: x axis: %v", ErrDriver, err)
	}
	y, err := d.hw.ADC.ReadChannel(d.hw.ADCUnit, d.hw.ChannelY)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: y axis: %v", ErrDriver, err)
	}
	return x, y, nil
}

// calibratedXY reads both axes and centers them per the configured ADC
// range. Cheap enough to recompute every tick; nothing is cached.
func (d *Device) calibratedXY() (int32, int32, error) {
	rx, ry, err := d.rawXY()
	if err != nil {
		return 0, 0, err
	}
	cx := calibrate(rx, d.cfg.ADCMin, d.cfg.ADCMax, d.cfg.NormalizedRange)
	cy := calibrate(ry, d.cfg.ADCMin, d.cfg.ADCMax, d.cfg.NormalizedRange)
	return cx, cy, nil
}

func longDirection(dir Event) Event {
	switch dir {
	case Up:
		return LongUp
	case Down:
		return LongDown
	case Left:
		return LongLeft
	case Right:
		return LongRight
	}
	return noDirection
}

// stepDirection advances the direction state machine one scan tick.
// Runs every tick for analog devices, regardless of the button phase.
//
// The axis mapping follows the stick's physical wiring: a calibrated X
// below the threshold means the stick is pushed right. X wins over Y
// when both axes exceed the threshold.
func (d *Device) stepDirection(scan time.Duration) {
	if d.hw.ADC == nil {
		return
	}
	x, y, err := d.calibratedXY()
	if err != nil {
		return
	}

	sens := d.cfg.Sensitivity
	cur := noDirection
	switch {
	case x < -sens:
		cur = Right
	case x > sens:
		cur = Left
	case y < -sens:
		cur = Up
	case y > sens:
		cur = Down
	}

	longTicks := msToTicks(d.cfg.LongPressStart, scan)

	if cur != d.lastDir {
		// leaving a direction: report it as a short event, but only
		// if it was held long enough to not be noise and short enough
		// to not have been a long hold.
		if d.lastDir != noDirection && longTicks > 0 &&
			d.dirTicks > longTicks/30 && d.dirTicks < longTicks {
			d.emit(d.lastDir, 0)
		}
		d.dirTicks = 0
		d.lastDir = cur
		return
	}

	if cur == noDirection {
		d.dirTicks = 0
		return
	}

	d.dirTicks++
	if longTicks == 0 {
		return
	}
	if d.dirTicks == longTicks {
		d.emit(longDirection(cur), 0)
		return
	}
	if d.dirTicks > longTicks {
		holdTicks := msToTicks(d.cfg.LongPressHold, scan)
		if holdTicks == 0 {
			holdTicks = 1
		}
		if (d.dirTicks-longTicks)%holdTicks == 0 {
			d.emit(longDirection(cur), 0)
		}
	}
}
