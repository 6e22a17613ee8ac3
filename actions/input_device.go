package actions

import "github.com/google/uuid"

// Sequence is the encoded action list of a single input source.
type Sequence struct {
	Type       string      `json:"type"`
	ID         string      `json:"id"`
	Parameters *Parameters `json:"parameters,omitempty"`
	Actions    []Action    `json:"actions"`
}

// Parameters are the pointer parameters of a pointer input source.
type Parameters struct {
	PointerType string `json:"pointerType"`
}

// InputDevice accumulates the actions of one input source.
type InputDevice struct {
	name    string
	actions []Action
}

func newInputDevice(name string) InputDevice {
	if name == "" {
		name = uuid.NewString()
	}
	return InputDevice{name: name}
}

// Name returns the input source id.
func (d *InputDevice) Name() string { return d.name }

func (d *InputDevice) add(a Action) {
	d.actions = append(d.actions, a)
}

func (d *InputDevice) clear() {
	d.actions = d.actions[:0]
}
