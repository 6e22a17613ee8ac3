package actions

import "time"

// SourcePointer is the input source type of pointer devices.
const SourcePointer = "pointer"

// Pointer types.
const (
	PointerMouse = "mouse"
	PointerPen   = "pen"
	PointerTouch = "touch"
)

// Action item types.
const (
	typePause       = "pause"
	typePointerMove = "pointerMove"
	typePointerDown = "pointerDown"
	typePointerUp   = "pointerUp"
)

// Origins for pointer moves that are not relative to an element.
const (
	OriginViewport = "viewport"
	OriginPointer  = "pointer"
)

// MouseButton identifies a pointer button.
type MouseButton int

// Mouse buttons.
const (
	LeftButton MouseButton = iota
	MiddleButton
	RightButton
)

// DefaultMoveDuration is the duration of a pointer move when none is given.
const DefaultMoveDuration = 250 * time.Millisecond

// Action is one item of an input source's action list, in the wire format of
// the W3C "Perform Actions" command.
type Action map[string]interface{}

func millis(d time.Duration) int64 {
	return int64(d / time.Millisecond)
}

func pause(d time.Duration) Action {
	return Action{"type": typePause, "duration": millis(d)}
}
