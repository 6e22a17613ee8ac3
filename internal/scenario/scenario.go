// Package scenario holds the UI scenarios checked against the site, the
// suite data they run with, and the harness that runs each of them in its
// own browser session.
package scenario

import (
	"fmt"

	"github.com/sentact/uitest"
)

// Func is a scenario body. It runs against a session already navigated to the
// site and returns the first failure.
type Func func(*uitest.Session, *Suite) error

// Scenario is a named scenario.
type Scenario struct {
	Name string
	Run  Func
}

var scenarios = []Scenario{
	{"CarouselTurn", CarouselTurn},
	{"VideoPlayback", VideoPlayback},
	{"ContactForm", ContactForm},
	{"TopHeader", TopHeader},
	{"MidHeader", MidHeader},
	{"BottomHeader", BottomHeader},
}

// All returns every scenario in run order.
func All() []Scenario {
	return append([]Scenario(nil), scenarios...)
}

// Names returns the names of all scenarios in run order.
func Names() []string {
	var names []string
	for _, s := range scenarios {
		names = append(names, s.Name)
	}
	return names
}

// Lookup returns the scenario with the given name.
func Lookup(name string) (Scenario, bool) {
	for _, s := range scenarios {
		if s.Name == name {
			return s, true
		}
	}
	return Scenario{}, false
}

// Select returns the named scenarios in run order, or all of them if no name
// is given.
func Select(names ...string) ([]Scenario, error) {
	if len(names) == 0 {
		return All(), nil
	}
	want := make(map[string]bool)
	for _, n := range names {
		if _, ok := Lookup(n); !ok {
			return nil, fmt.Errorf("unknown scenario %q", n)
		}
		want[n] = true
	}
	var selected []Scenario
	for _, s := range scenarios {
		if want[s.Name] {
			selected = append(selected, s)
		}
	}
	return selected, nil
}

// CarouselTurn turns the product carousel right with a mouse move and click,
// and checks the first slide is then hidden.
func CarouselTurn(s *uitest.Session, suite *Suite) error {
	c := suite.Carousel
	arrow, err := s.LocateAndReveal(c.NextArrow)
	if err != nil {
		return err
	}
	if err := s.Actions().MoveToElement(arrow).Click().Perform(); err != nil {
		return uitest.Wrap("move and click", c.NextArrow, err)
	}

	slide, err := s.Find(c.FirstSlide)
	if err != nil {
		return err
	}
	hidden, ok, err := attribute(slide, c.FirstSlide, "aria-hidden")
	if err != nil {
		return err
	}
	if !ok || hidden != "true" {
		return uitest.Assertf("first slide aria-hidden = %q (set: %t), want \"true\"", hidden, ok)
	}
	return nil
}

// VideoPlayback mutes and starts the embedded video, lets it play and checks
// its position has advanced. The session is back in the top-level document
// when it returns.
func VideoPlayback(s *uitest.Session, suite *Suite) (err error) {
	v := suite.Video
	frame, err := s.LocateAndReveal(v.Frame)
	if err != nil {
		return err
	}
	if err := s.EnterFrame(frame); err != nil {
		return err
	}
	defer func() {
		if xerr := s.ExitFrame(); xerr != nil && err == nil {
			err = xerr
		}
	}()

	for _, expr := range []string{v.Mute, v.Play} {
		if err := click(s, expr); err != nil {
			return err
		}
	}

	s.Pause(s.Config().Timeouts.Playback)

	bar, err := s.Find(v.TimeBar)
	if err != nil {
		return err
	}
	pos, ok, err := attribute(bar, v.TimeBar, "aria-valuetext")
	if err != nil {
		return err
	}
	if !ok {
		return uitest.Assertf("time bar has no aria-valuetext")
	}
	return assertPlaying(pos, v.InitialTime)
}

// ContactForm fills in and submits the contact form and checks the
// confirmation shown.
func ContactForm(s *uitest.Session, suite *Suite) error {
	c := suite.Contact
	if err := fill(s, c.Name, c.NameInput); err != nil {
		return err
	}
	if err := fill(s, c.Email, c.EmailInput); err != nil {
		return err
	}
	if err := click(s, c.Submit); err != nil {
		return err
	}

	result, err := s.WaitLocatedVisible(c.Result, s.Config().Timeouts.Result)
	if err != nil {
		return err
	}
	return assertContains(result, c.Result, c.Success)
}

// TopHeader checks the heading at the top of the page.
func TopHeader(s *uitest.Session, suite *Suite) error {
	return checkHeader(s, suite.Headers.Top)
}

// MidHeader checks the heading in the middle of the page.
func MidHeader(s *uitest.Session, suite *Suite) error {
	return checkHeader(s, suite.Headers.Mid)
}

// BottomHeader checks the heading at the bottom of the page.
func BottomHeader(s *uitest.Session, suite *Suite) error {
	return checkHeader(s, suite.Headers.Bottom)
}

func checkHeader(s *uitest.Session, h Header) error {
	el, err := s.LocateAndReveal(h.XPath)
	if err != nil {
		return err
	}
	return assertContains(el, h.XPath, h.Text)
}

func click(s *uitest.Session, expr string) error {
	el, err := s.Find(expr)
	if err != nil {
		return err
	}
	return uitest.Wrap("click", expr, el.Click())
}

func fill(s *uitest.Session, expr, value string) error {
	el, err := s.Find(expr)
	if err != nil {
		return err
	}
	if err := el.Clear(); err != nil {
		return uitest.Wrap("clear", expr, err)
	}
	return uitest.Wrap("send keys", expr, el.SendKeys(value))
}
