package joystick

import "errors"

// API failures are returned synchronously to the caller and never
// retried internally.
var (
	// ErrInvalidParam marks a nil or out-of-range argument.
	ErrInvalidParam = errors.New("joystick: invalid parameter")

	// ErrAlreadyExists is returned when registering a name twice.
	ErrAlreadyExists = errors.New("joystick: name already registered")

	// ErrNotFound is returned for unknown names and stale handles.
	ErrNotFound = errors.New("joystick: no such device")

	// ErrDriver wraps a failure reported by the hardware driver.
	ErrDriver = errors.New("joystick: driver failure")
)
