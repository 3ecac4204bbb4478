package joystick

// Event identifies a gesture detected on a device. One callback slot
// exists per event kind per device.
type Event int

// Button events carry the click repeat count as the callback value;
// long-press events carry the held duration in milliseconds; direction
// events carry no value.
const (
	PressDown Event = iota
	PressUp
	SingleClick
	DoubleClick
	PressRepeat
	LongPressStart
	LongPressHold
	RecoverPressUp
	Up
	Down
	Left
	Right
	LongUp
	LongDown
	LongLeft
	LongRight

	eventMax
)

// noDirection marks a centered stick; it is never dispatched.
const noDirection Event = -1

var eventNames = map[Event]string{
	PressDown:      "PressDown",
	PressUp:        "PressUp",
	SingleClick:    "SingleClick",
	DoubleClick:    "DoubleClick",
	PressRepeat:    "PressRepeat",
	LongPressStart: "LongPressStart",
	LongPressHold:  "LongPressHold",
	RecoverPressUp: "RecoverPressUp",
	Up:             "Up",
	Down:           "Down",
	Left:           "Left",
	Right:          "Right",
	LongUp:         "LongUp",
	LongDown:       "LongDown",
	LongLeft:       "LongLeft",
	LongRight:      "LongRight",
}

func (e Event) String() string {
	if s, ok := eventNames[e]; ok {
		return s
	}
	return "Unknown"
}

// Callback receives the device name, the event kind and the event value
// (see the Event constants for the value semantics). Callbacks run on
// the scheduler goroutine that detected the transition, with the device
// lock held; they must not call back into the Manager for the same
// device.
type Callback func(name string, ev Event, val int)
