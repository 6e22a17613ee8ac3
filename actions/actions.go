// Package actions builds W3C WebDriver input action chains, such as moving
// the mouse onto an element and clicking it, and sends them to a session.
package actions

import (
	"fmt"
	"time"

	"github.com/tebeka/selenium"
)

// Performer executes encoded action sequences in a WebDriver session.
type Performer interface {
	// PerformActions dispatches the sequences, tick by tick.
	PerformActions(seqs []Sequence) error
	// ReleaseActions releases all pressed keys and buttons.
	ReleaseActions() error
}

// Chain is a sequence of pointer actions performed in one request. Methods
// return the chain so calls can be strung together; Perform sends them.
type Chain struct {
	performer Performer
	pointer   *PointerInput
	// MoveDuration is the duration of each pointer move.
	MoveDuration time.Duration
}

// NewChain returns an empty chain driving a mouse.
func NewChain(p Performer) *Chain {
	mouse, err := NewPointerInput(PointerMouse, "")
	if err != nil {
		panic(err) // PointerMouse is always valid.
	}
	return &Chain{performer: p, pointer: mouse, MoveDuration: DefaultMoveDuration}
}

// MoveToElement moves the mouse to the center of el.
func (c *Chain) MoveToElement(el selenium.WebElement) *Chain {
	c.pointer.moveToElement(el, 0, 0, c.MoveDuration)
	return c
}

// MoveByOffset moves the mouse relative to its current position.
func (c *Chain) MoveByOffset(x, y int) *Chain {
	c.pointer.moveBy(x, y, c.MoveDuration)
	return c
}

// Click presses and releases the left button at the current position.
func (c *Chain) Click() *Chain {
	c.pointer.down(LeftButton)
	c.pointer.up(LeftButton)
	return c
}

// DoubleClick clicks twice.
func (c *Chain) DoubleClick() *Chain {
	return c.Click().Click()
}

// Pause waits for d before the next action.
func (c *Chain) Pause(d time.Duration) *Chain {
	c.pointer.pause(d)
	return c
}

// Sequences returns the encoded chain.
func (c *Chain) Sequences() []Sequence {
	return []Sequence{c.pointer.Encode()}
}

// Perform sends the chain and then releases the input state, even if
// performing failed. The chain is empty afterwards.
func (c *Chain) Perform() error {
	defer c.pointer.clear()
	if len(c.pointer.actions) == 0 {
		return nil
	}
	err := c.performer.PerformActions(c.Sequences())
	if rerr := c.performer.ReleaseActions(); rerr != nil && err == nil {
		err = fmt.Errorf("releasing actions: %w", rerr)
	}
	return err
}
