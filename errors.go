package uitest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tebeka/selenium"
)

// Kind classifies a scenario failure.
type Kind int

// The kinds of failure a scenario can report.
const (
	// Driver is any WebDriver failure that is not one of the kinds below, e.g.
	// a click intercepted by another element.
	Driver Kind = iota
	// NotFound means a locator expression matched no element, or could not be
	// evaluated at all.
	NotFound
	// Timeout means a wait condition did not hold within its bound.
	Timeout
	// Assertion means the observed page state did not match the expectation.
	Assertion
	// Setup means the browser session could not be constructed.
	Setup
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case Timeout:
		return "timeout"
	case Assertion:
		return "assertion"
	case Setup:
		return "setup"
	}
	return "driver"
}

// Error is the error type returned by the session, the locator and the
// scenarios.
type Error struct {
	Kind Kind
	// Op names the step that failed, e.g. "find" or "wait visible".
	Op string
	// Expr is the locator expression involved, if any.
	Expr string
	Err  error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Op != "" {
		b.WriteString(": ")
		b.WriteString(e.Op)
	}
	if e.Expr != "" {
		fmt.Fprintf(&b, " %q", e.Expr)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Assertf returns an Assertion error with a formatted message.
func Assertf(format string, args ...interface{}) error {
	return &Error{Kind: Assertion, Err: fmt.Errorf(format, args...)}
}

// KindOf reports the Kind of the first *Error in err's chain. Errors that do
// not carry a Kind are reported as Driver.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Driver
}

// IsNotFound reports whether err is a NotFound failure.
func IsNotFound(err error) bool { return err != nil && KindOf(err) == NotFound }

// IsTimeout reports whether err is a Timeout failure.
func IsTimeout(err error) bool { return err != nil && KindOf(err) == Timeout }

// IsAssertion reports whether err is an Assertion failure.
func IsAssertion(err error) bool { return err != nil && KindOf(err) == Assertion }

// IsSetup reports whether err is a Setup failure.
func IsSetup(err error) bool { return err != nil && KindOf(err) == Setup }

// lookupErrors are the W3C error codes that mean the expression did not
// resolve to an element.
var lookupErrors = map[string]bool{
	"no such element":  true,
	"invalid selector": true,
}

// Wrap classifies an error returned by the selenium client for step op on the
// element located by expr. It returns nil if err is nil.
func Wrap(op, expr string, err error) error {
	return wrapDriver(op, expr, err)
}

func wrapDriver(op, expr string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	kind := Driver
	var se *selenium.Error
	if errors.As(err, &se) {
		if lookupErrors[se.Err] {
			kind = NotFound
		}
	} else {
		// Servers in legacy mode do not produce *selenium.Error.
		msg := err.Error()
		for code := range lookupErrors {
			if strings.Contains(msg, code) {
				kind = NotFound
				break
			}
		}
	}
	return &Error{Kind: kind, Op: op, Expr: expr, Err: err}
}

func setupError(op string, err error) error {
	return &Error{Kind: Setup, Op: op, Err: err}
}
