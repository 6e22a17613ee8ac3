package actions

import (
	"fmt"
	"time"

	"github.com/tebeka/selenium"
)

// PointerInput is a pointer input source.
type PointerInput struct {
	InputDevice
	kind string
}

// NewPointerInput returns a pointer source of the given kind. An empty name
// is replaced by a random id.
func NewPointerInput(kind, name string) (*PointerInput, error) {
	switch kind {
	case PointerMouse, PointerPen, PointerTouch:
	default:
		return nil, fmt.Errorf("invalid pointer kind %q", kind)
	}
	return &PointerInput{InputDevice: newInputDevice(name), kind: kind}, nil
}

// moveToElement moves to the in-view center point of el plus the offset. The
// element is sent as the move origin and serializes itself as a web element
// reference.
func (p *PointerInput) moveToElement(el selenium.WebElement, x, y int, d time.Duration) {
	p.add(Action{
		"type":     typePointerMove,
		"duration": millis(d),
		"x":        x,
		"y":        y,
		"origin":   el,
	})
}

func (p *PointerInput) moveBy(x, y int, d time.Duration) {
	p.add(Action{
		"type":     typePointerMove,
		"duration": millis(d),
		"x":        x,
		"y":        y,
		"origin":   OriginPointer,
	})
}

func (p *PointerInput) down(b MouseButton) {
	p.add(Action{"type": typePointerDown, "button": int(b)})
}

func (p *PointerInput) up(b MouseButton) {
	p.add(Action{"type": typePointerUp, "button": int(b)})
}

func (p *PointerInput) pause(d time.Duration) {
	p.add(pause(d))
}

// Encode returns the wire form of the source and its pending actions.
func (p *PointerInput) Encode() Sequence {
	actions := make([]Action, len(p.actions))
	copy(actions, p.actions)
	return Sequence{
		Type:       SourcePointer,
		ID:         p.name,
		Parameters: &Parameters{PointerType: p.kind},
		Actions:    actions,
	}
}
