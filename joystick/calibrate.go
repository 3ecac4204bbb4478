package joystick

// calibrate centers a raw ADC reading around zero and scales it into
// [-normalized, normalized]. mid is the midpoint of the configured ADC
// range; a stick at rest reads mid and maps to zero.
func calibrate(raw, adcMin, adcMax, normalized int32) int32 {
	mid := (adcMax + adcMin) / 2
	if mid == 0 {
		return 0
	}
	return (mid - raw) * normalized / mid
}
