// Package fakedriver provides an in-memory selenium.WebDriver for testing code
// that drives a browser. Only the methods the suite uses are implemented;
// calling any other method panics.
package fakedriver

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/log"

	"github.com/sentact/uitest/actions"
)

// webElementKey is the W3C web element identifier.
const webElementKey = "element-6066-11e4-a52e-4f735466cecf"

// Element is a node of a fake page.
type Element struct {
	selenium.WebElement

	ID        string
	InnerText string
	Attrs     map[string]string
	Displayed bool
	// RevealOnScroll makes the element displayed once a script scrolls it
	// into view.
	RevealOnScroll bool
	// Frame, if set, is the document embedded by this element, keyed by
	// XPath.
	Frame map[string]*Element
	// OnClick runs after each click.
	OnClick  func()
	ClickErr error

	Clicks   int
	Scrolled int
	Cleared  int
	Value    string
}

// Click implements selenium.WebElement.
func (e *Element) Click() error {
	if e.ClickErr != nil {
		return e.ClickErr
	}
	e.Clicks++
	if e.OnClick != nil {
		e.OnClick()
	}
	return nil
}

// Clear implements selenium.WebElement.
func (e *Element) Clear() error {
	e.Cleared++
	e.Value = ""
	return nil
}

// SendKeys implements selenium.WebElement.
func (e *Element) SendKeys(keys string) error {
	e.Value += keys
	return nil
}

// Text implements selenium.WebElement.
func (e *Element) Text() (string, error) {
	return e.InnerText, nil
}

// GetAttribute implements selenium.WebElement. Like the remote client, it
// returns an error for attributes that are not set.
func (e *Element) GetAttribute(name string) (string, error) {
	v, ok := e.Attrs[name]
	if !ok {
		return "", errors.New("nil return value")
	}
	return v, nil
}

// IsDisplayed implements selenium.WebElement.
func (e *Element) IsDisplayed() (bool, error) {
	return e.Displayed, nil
}

// MarshalJSON encodes the element as a web element reference.
func (e *Element) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		"ELEMENT":     e.ID,
		webElementKey: e.ID,
	})
}

// Script is a recorded ExecuteScript call.
type Script struct {
	Script string
	Args   []interface{}
}

// Driver is a fake WebDriver session over a static page.
type Driver struct {
	selenium.WebDriver

	// Page holds the top-level document, keyed by XPath.
	Page map[string]*Element
	// Build is the version reported by Status.
	Build     string
	StatusErr error
	GetErr    error
	QuitErr   error
	// Screenshot, Source and Logs are returned by the diagnostic methods.
	PNG    []byte
	Source string
	Logs   []log.Message

	URL          string
	ImplicitWait time.Duration
	Scripts      []Script
	Quits        int
	FrameEntries int
	FrameExits   int

	frame *Element
}

// New returns a driver serving page.
func New(page map[string]*Element) *Driver {
	return &Driver{Page: page, Build: "114.0.5735.90 (386bc09e8f4f-refs/branch-heads/5735@{#1052})"}
}

// InFrame reports whether lookups currently resolve in an embedded frame.
func (d *Driver) InFrame() bool { return d.frame != nil }

// Status implements selenium.WebDriver.
func (d *Driver) Status() (*selenium.Status, error) {
	if d.StatusErr != nil {
		return nil, d.StatusErr
	}
	s := &selenium.Status{Ready: true}
	s.Build.Version = d.Build
	return s, nil
}

// SessionID implements selenium.WebDriver.
func (d *Driver) SessionID() string { return "fake-session" }

// SetImplicitWaitTimeout implements selenium.WebDriver.
func (d *Driver) SetImplicitWaitTimeout(timeout time.Duration) error {
	d.ImplicitWait = timeout
	return nil
}

// Get implements selenium.WebDriver.
func (d *Driver) Get(url string) error {
	if d.GetErr != nil {
		return d.GetErr
	}
	d.URL = url
	return nil
}

// CurrentURL implements selenium.WebDriver.
func (d *Driver) CurrentURL() (string, error) { return d.URL, nil }

// Quit implements selenium.WebDriver.
func (d *Driver) Quit() error {
	d.Quits++
	return d.QuitErr
}

// FindElement implements selenium.WebDriver for XPath lookups in the current
// frame.
func (d *Driver) FindElement(by, value string) (selenium.WebElement, error) {
	if by != selenium.ByXPATH {
		return nil, &selenium.Error{Err: "invalid argument", Message: fmt.Sprintf("unsupported locator strategy %q", by), HTTPCode: 400}
	}
	if !strings.HasPrefix(value, "/") && !strings.HasPrefix(value, "(") {
		return nil, &selenium.Error{Err: "invalid selector", Message: fmt.Sprintf("invalid selector: %q is not a valid XPath expression", value), HTTPCode: 400}
	}
	doc := d.Page
	if d.frame != nil {
		doc = d.frame.Frame
	}
	el, ok := doc[value]
	if !ok {
		return nil, &selenium.Error{
			Err:      "no such element",
			Message:  fmt.Sprintf("no such element: Unable to locate element: {\"method\":\"xpath\",\"selector\":%q}", value),
			HTTPCode: 404,
		}
	}
	return el, nil
}

// ExecuteScript implements selenium.WebDriver. Scrolling an element into view
// reveals it if it has RevealOnScroll set.
func (d *Driver) ExecuteScript(script string, args []interface{}) (interface{}, error) {
	d.Scripts = append(d.Scripts, Script{Script: script, Args: args})
	if strings.Contains(script, "scrollIntoView") && len(args) > 0 {
		if el, ok := args[0].(*Element); ok {
			el.Scrolled++
			if el.RevealOnScroll {
				el.Displayed = true
			}
		}
	}
	return nil, nil
}

// SwitchFrame implements selenium.WebDriver.
func (d *Driver) SwitchFrame(frame interface{}) error {
	switch f := frame.(type) {
	case nil:
		d.frame = nil
		d.FrameExits++
		return nil
	case *Element:
		if f.Frame == nil {
			return &selenium.Error{Err: "no such frame", Message: "element is not a frame", HTTPCode: 404}
		}
		d.frame = f
		d.FrameEntries++
		return nil
	}
	return fmt.Errorf("unsupported frame reference %T", frame)
}

// Screenshot implements selenium.WebDriver.
func (d *Driver) Screenshot() ([]byte, error) {
	if d.PNG == nil {
		return nil, errors.New("no screenshot available")
	}
	return d.PNG, nil
}

// PageSource implements selenium.WebDriver.
func (d *Driver) PageSource() (string, error) { return d.Source, nil }

// Log implements selenium.WebDriver.
func (d *Driver) Log(typ log.Type) ([]log.Message, error) {
	if typ != log.Browser {
		return nil, fmt.Errorf("log type %q not configured", typ)
	}
	return d.Logs, nil
}

// Performer dispatches pointer actions to the elements of a fake page:
// a button press and release following a move onto an element clicks it.
type Performer struct {
	Performed [][]actions.Sequence
	Released  int
	Err       error
}

// PerformActions implements actions.Performer.
func (p *Performer) PerformActions(seqs []actions.Sequence) error {
	p.Performed = append(p.Performed, seqs)
	if p.Err != nil {
		return p.Err
	}
	for _, seq := range seqs {
		var over *Element
		pressed := false
		for _, a := range seq.Actions {
			switch a["type"] {
			case "pointerMove":
				if el, ok := a["origin"].(*Element); ok {
					over = el
				}
			case "pointerDown":
				pressed = true
			case "pointerUp":
				if pressed && over != nil {
					if err := over.Click(); err != nil {
						return err
					}
				}
				pressed = false
			}
		}
	}
	return nil
}

// ReleaseActions implements actions.Performer.
func (p *Performer) ReleaseActions() error {
	p.Released++
	return nil
}
