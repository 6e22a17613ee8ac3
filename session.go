package uitest

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang/glog"
	"github.com/tebeka/selenium"

	"github.com/sentact/uitest/actions"
)

// DefaultURL is the site under test.
const DefaultURL = "https://sentact.com/"

// DefaultWait is the bound used for the implicit element wait and for every
// explicit wait of the suite.
const DefaultWait = 3 * time.Second

// Timeouts are the waits a session applies.
type Timeouts struct {
	// Implicit is how long each element lookup waits for a match.
	Implicit time.Duration
	// Visibility bounds the wait in LocateAndReveal.
	Visibility time.Duration
	// Result bounds waits for the outcome of an action, such as a form
	// submission.
	Result time.Duration
	// Playback is how long media is left playing before it is inspected.
	Playback time.Duration
}

// DefaultTimeouts returns DefaultWait for every wait.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Implicit:   DefaultWait,
		Visibility: DefaultWait,
		Result:     DefaultWait,
		Playback:   DefaultWait,
	}
}

// Config configures a browser session.
type Config struct {
	// Name identifies the session in logs and diagnostic files.
	Name string
	// URL is navigated to once the session is created.
	URL string
	// Executor is the URL of a running WebDriver server. If empty, a
	// ChromeDriver is started for the session and stopped when it closes.
	Executor string
	// Service configures the ChromeDriver started when Executor is empty.
	Service ServiceConfig
	// Options are the browser switches. Nil means DefaultOptions.
	Options []Option
	// BrowserBinary is the Chrome binary to launch. If empty, ChromeDriver
	// picks the installed one.
	BrowserBinary string
	Timeouts      Timeouts
	// ArtifactDir, if set, receives a screenshot, the page source and the
	// browser log of sessions whose body fails.
	ArtifactDir string

	// NewRemote and NewPerformer, if set, replace the WebDriver client and
	// the input action transport. Tests use them to run against a fake
	// browser.
	NewRemote    func(caps selenium.Capabilities, addr string) (selenium.WebDriver, error)
	NewPerformer func(addr, sessionID string) actions.Performer
}

// DefaultConfig returns the configuration every scenario session uses unless
// overridden.
func DefaultConfig() Config {
	return Config{
		URL:      DefaultURL,
		Options:  DefaultOptions,
		Timeouts: DefaultTimeouts(),
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.URL == "" {
		c.URL = d.URL
	}
	if c.Options == nil {
		c.Options = d.Options
	}
	if c.Timeouts.Implicit == 0 {
		c.Timeouts.Implicit = d.Timeouts.Implicit
	}
	if c.Timeouts.Visibility == 0 {
		c.Timeouts.Visibility = d.Timeouts.Visibility
	}
	if c.Timeouts.Result == 0 {
		c.Timeouts.Result = d.Timeouts.Result
	}
	if c.Timeouts.Playback == 0 {
		c.Timeouts.Playback = d.Timeouts.Playback
	}
	return c
}

// These are replaced in tests.
var (
	newRemote    = selenium.NewRemote
	newPerformer = func(addr, sessionID string) actions.Performer {
		return actions.NewHTTPPerformer(addr, sessionID)
	}
)

// Session is a live browser owned by a single scenario. It is not safe for
// concurrent use.
type Session struct {
	cfg       Config
	wd        selenium.WebDriver
	svc       *Service
	locator   *Locator
	performer actions.Performer
	sleep     func(time.Duration)
	inFrame   bool
	closed    bool
}

// NewSession launches a browser with the configured options, sets the
// implicit wait and navigates to the configured URL. All failures are of
// kind Setup, and whatever was started before the failure is shut down.
func NewSession(cfg Config) (*Session, error) {
	cfg = cfg.withDefaults()
	caps, err := capabilities(cfg.Options, cfg.BrowserBinary)
	if err != nil {
		return nil, setupError("configure browser", err)
	}

	s := &Session{cfg: cfg, sleep: time.Sleep}
	if err := s.open(caps); err != nil {
		if cerr := s.Close(); cerr != nil {
			glog.Warningf("Releasing partially created session %q: %v", cfg.Name, cerr)
		}
		return nil, err
	}
	glog.Infof("Session %q (%s) opened at %s", cfg.Name, s.wd.SessionID(), cfg.URL)
	return s, nil
}

func (s *Session) open(caps selenium.Capabilities) error {
	addr := s.cfg.Executor
	if addr == "" {
		svc, err := StartService(s.cfg.Service)
		if err != nil {
			return setupError("start driver", err)
		}
		s.svc = svc
		addr = svc.Addr()
	}

	dial, perf := newRemote, newPerformer
	if s.cfg.NewRemote != nil {
		dial = s.cfg.NewRemote
	}
	if s.cfg.NewPerformer != nil {
		perf = s.cfg.NewPerformer
	}

	wd, err := dial(caps, addr)
	if err != nil {
		return setupError("new session", err)
	}
	s.wd = wd
	if err := checkDriverVersion(wd); err != nil {
		return setupError("check driver", err)
	}
	if err := wd.SetImplicitWaitTimeout(s.cfg.Timeouts.Implicit); err != nil {
		return setupError("set implicit wait", err)
	}
	if err := wd.Get(s.cfg.URL); err != nil {
		return setupError(fmt.Sprintf("navigate to %s", s.cfg.URL), err)
	}
	s.locator = NewLocator(wd, s.cfg.Timeouts.Visibility)
	s.performer = perf(addr, wd.SessionID())
	return nil
}

// Close quits the browser and stops the ChromeDriver the session started, if
// any. Calling Close more than once is a no-op.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	var errs []error
	if s.wd != nil {
		if err := s.wd.Quit(); err != nil {
			errs = append(errs, fmt.Errorf("quitting session: %w", err))
		}
	}
	if err := s.svc.Stop(); err != nil {
		errs = append(errs, err)
	}
	debugLog("session %q closed", s.cfg.Name)
	return errors.Join(errs...)
}

// WithSession runs body with a fresh session and closes the session on every
// exit path, including panics and t.FailNow. If body fails and the config has
// an ArtifactDir, diagnostics are written there first. An error from closing
// is returned only if body succeeded.
func WithSession(cfg Config, body func(*Session) error) (err error) {
	s, err := NewSession(cfg)
	if err != nil {
		return err
	}
	failed := true
	defer func() {
		if failed && s.cfg.ArtifactDir != "" {
			if paths, derr := s.Dump(s.cfg.ArtifactDir, s.cfg.Name); derr != nil {
				glog.Warningf("Dumping diagnostics of session %q: %v", s.cfg.Name, derr)
			} else {
				glog.Infof("Diagnostics of session %q written to %v", s.cfg.Name, paths)
			}
		}
		if cerr := s.Close(); cerr != nil {
			if err == nil && !failed {
				err = cerr
				return
			}
			glog.Warningf("Closing session %q: %v", s.cfg.Name, cerr)
		}
	}()
	err = body(s)
	failed = err != nil
	return err
}

// Driver returns the underlying WebDriver.
func (s *Session) Driver() selenium.WebDriver { return s.wd }

// Config returns the effective configuration of the session.
func (s *Session) Config() Config { return s.cfg }

// Locator returns the session's element locator.
func (s *Session) Locator() *Locator { return s.locator }

// Find returns the first element matching the XPath expression in the current
// frame.
func (s *Session) Find(expr string) (selenium.WebElement, error) {
	return s.locator.Find(expr)
}

// LocateAndReveal finds the element matching expr, scrolls it into view and
// waits until it is visible.
func (s *Session) LocateAndReveal(expr string) (selenium.WebElement, error) {
	return s.locator.LocateAndReveal(expr)
}

// WaitLocatedVisible waits until an element matching expr is present and
// visible.
func (s *Session) WaitLocatedVisible(expr string, timeout time.Duration) (selenium.WebElement, error) {
	return s.locator.WaitLocatedVisible(expr, timeout)
}

// EnterFrame makes lookups resolve inside the document embedded by el.
func (s *Session) EnterFrame(el selenium.WebElement) error {
	if err := s.wd.SwitchFrame(el); err != nil {
		return wrapDriver("enter frame", "", err)
	}
	s.inFrame = true
	return nil
}

// ExitFrame makes lookups resolve in the top-level document again.
func (s *Session) ExitFrame() error {
	if err := s.wd.SwitchFrame(nil); err != nil {
		return wrapDriver("exit frame", "", err)
	}
	s.inFrame = false
	return nil
}

// InFrame reports whether the session is inside an embedded frame.
func (s *Session) InFrame() bool { return s.inFrame }

// Actions returns an empty input action chain for the session.
func (s *Session) Actions() *actions.Chain {
	return actions.NewChain(s.performer)
}

// Pause blocks for d.
func (s *Session) Pause(d time.Duration) {
	debugLog("pause %v", d)
	s.sleep(d)
}
