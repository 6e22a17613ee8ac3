package scenario

import (
	"strconv"
	"strings"
	"time"

	"github.com/tebeka/selenium"

	"github.com/sentact/uitest"
)

// attribute returns the value of the named attribute of el, and false if the
// element does not carry it.
func attribute(el selenium.WebElement, expr, name string) (string, bool, error) {
	v, err := el.GetAttribute(name)
	if err != nil {
		// The client reports an absent attribute as a null value.
		if strings.Contains(err.Error(), "nil return value") {
			return "", false, nil
		}
		return "", false, uitest.Wrap("get attribute "+name, expr, err)
	}
	return v, true, nil
}

func text(el selenium.WebElement, expr string) (string, error) {
	t, err := el.Text()
	if err != nil {
		return "", uitest.Wrap("get text", expr, err)
	}
	return t, nil
}

// assertContains fails unless the text of el contains want.
func assertContains(el selenium.WebElement, expr, want string) error {
	got, err := text(el, expr)
	if err != nil {
		return err
	}
	if !strings.Contains(got, want) {
		return uitest.Assertf("text of %s is %q, want it to contain %q", expr, got, want)
	}
	return nil
}

// parsePosition parses a player position such as "01:07 of 02:05" into the
// elapsed and total durations.
func parsePosition(s string) (elapsed, total time.Duration, ok bool) {
	a, b, found := strings.Cut(s, " of ")
	if !found {
		return 0, 0, false
	}
	if elapsed, ok = parseClock(a); !ok {
		return 0, 0, false
	}
	if total, ok = parseClock(b); !ok {
		return 0, 0, false
	}
	return elapsed, total, true
}

// parseClock parses "MM:SS" or "HH:MM:SS".
func parseClock(s string) (time.Duration, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	var d time.Duration
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || i > 0 && n >= 60 {
			return 0, false
		}
		d = d*60 + time.Duration(n)
	}
	return d * time.Second, true
}

// assertPlaying fails unless the time bar text shows playback has started.
// Text in the player's position format must show elapsed time; any other
// text must differ from the text before playback.
func assertPlaying(valueText, initial string) error {
	if elapsed, _, ok := parsePosition(valueText); ok {
		if elapsed <= 0 {
			return uitest.Assertf("video position %q shows no playback", valueText)
		}
		return nil
	}
	if valueText == initial {
		return uitest.Assertf("video position is still %q", valueText)
	}
	return nil
}
