package uitest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tebeka/selenium"
	"k8s.io/apimachinery/pkg/util/wait"
)

// DefaultPollInterval is how often wait conditions are re-evaluated.
const DefaultPollInterval = 100 * time.Millisecond

// scrollIntoView is executed with the element as its only argument.
const scrollIntoView = "arguments[0].scrollIntoView();"

// Locator finds elements by XPath in the current frame context of a
// WebDriver session and waits for them to become visible.
type Locator struct {
	wd selenium.WebDriver
	// Timeout bounds visibility waits.
	Timeout time.Duration
	// Interval is the polling interval for waits. Zero means
	// DefaultPollInterval.
	Interval time.Duration
}

// NewLocator returns a Locator over wd whose waits are bounded by timeout.
func NewLocator(wd selenium.WebDriver, timeout time.Duration) *Locator {
	return &Locator{wd: wd, Timeout: timeout, Interval: DefaultPollInterval}
}

// Find returns the first element matching the XPath expression. Lookups are
// subject to the session's implicit wait.
func (l *Locator) Find(expr string) (selenium.WebElement, error) {
	debugLog("find %q", expr)
	el, err := l.wd.FindElement(selenium.ByXPATH, expr)
	if err != nil {
		return nil, wrapDriver("find", expr, err)
	}
	return el, nil
}

// LocateAndReveal finds the first element matching expr, scrolls it into the
// viewport and waits until it is visible. It fails with NotFound if nothing
// matches and with Timeout if the element does not become visible within
// l.Timeout.
func (l *Locator) LocateAndReveal(expr string) (selenium.WebElement, error) {
	el, err := l.Find(expr)
	if err != nil {
		return nil, err
	}
	if _, err := l.wd.ExecuteScript(scrollIntoView, []interface{}{el}); err != nil {
		return nil, wrapDriver("scroll into view", expr, err)
	}
	if err := l.waitVisible(el, expr, l.Timeout); err != nil {
		return nil, err
	}
	return el, nil
}

// WaitVisible blocks until el is displayed or timeout elapses.
func (l *Locator) WaitVisible(el selenium.WebElement, timeout time.Duration) error {
	return l.waitVisible(el, "", timeout)
}

func (l *Locator) waitVisible(el selenium.WebElement, expr string, timeout time.Duration) error {
	debugLog("wait visible %q (%v)", expr, timeout)
	err := l.poll(timeout, func() (bool, error) {
		ok, err := el.IsDisplayed()
		if err != nil {
			return false, wrapDriver("check visibility", expr, err)
		}
		return ok, nil
	})
	return waitError("wait visible", expr, timeout, err)
}

// WaitLocatedVisible blocks until an element matching expr exists and is
// displayed, and returns it. Lookup misses do not end the wait.
func (l *Locator) WaitLocatedVisible(expr string, timeout time.Duration) (selenium.WebElement, error) {
	debugLog("wait located and visible %q (%v)", expr, timeout)
	var found selenium.WebElement
	err := l.poll(timeout, func() (bool, error) {
		el, err := l.Find(expr)
		if err != nil {
			if IsNotFound(err) {
				return false, nil
			}
			return false, err
		}
		ok, err := el.IsDisplayed()
		if err != nil {
			// The element may have been replaced between lookup and check.
			return false, nil
		}
		if ok {
			found = el
		}
		return ok, nil
	})
	if err := waitError("wait located and visible", expr, timeout, err); err != nil {
		return nil, err
	}
	return found, nil
}

func (l *Locator) poll(timeout time.Duration, cond func() (bool, error)) error {
	interval := l.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return wait.PollUntilContextTimeout(context.Background(), interval, timeout, true, func(context.Context) (bool, error) {
		return cond()
	})
}

// waitError converts an interrupted poll into a Timeout error and passes any
// condition error through.
func waitError(op, expr string, timeout time.Duration, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	if wait.Interrupted(err) {
		return &Error{Kind: Timeout, Op: op, Expr: expr, Err: fmt.Errorf("condition not met within %v", timeout)}
	}
	return &Error{Kind: Driver, Op: op, Expr: expr, Err: err}
}
