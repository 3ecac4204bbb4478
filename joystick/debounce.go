package joystick

// debounce commits a raw sample into the device status once it has
// been observed for threshold consecutive ticks. Symmetric: press and
// release edges are filtered identically. A single noisy sample only
// bumps the counter and is absorbed, never treated as an error.
func (d *Device) debounce(raw bool, threshold int) {
	d.rawStatus = raw
	if raw != d.status {
		d.debounceCnt++
		if d.debounceCnt >= threshold {
			d.status = raw
			d.debounceCnt = 0
		}
	} else {
		d.debounceCnt = 0
	}
}
