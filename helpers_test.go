package uitest

import (
	"testing"
	"time"

	"github.com/tebeka/selenium"

	"github.com/sentact/uitest/actions"
	"github.com/sentact/uitest/internal/fakedriver"
)

// fakeBrowser replaces the WebDriver client with wd for the duration of the
// test and records the capabilities and executor sessions are created with.
type fakeBrowser struct {
	wd        *fakedriver.Driver
	performer *fakedriver.Performer
	caps      selenium.Capabilities
	addr      string
	remoteErr error
}

func installFake(t *testing.T, wd *fakedriver.Driver) *fakeBrowser {
	t.Helper()
	fb := &fakeBrowser{wd: wd, performer: &fakedriver.Performer{}}
	oldRemote, oldPerformer := newRemote, newPerformer
	newRemote = func(caps selenium.Capabilities, addr string) (selenium.WebDriver, error) {
		fb.caps, fb.addr = caps, addr
		if fb.remoteErr != nil {
			return nil, fb.remoteErr
		}
		return fb.wd, nil
	}
	newPerformer = func(string, string) actions.Performer { return fb.performer }
	t.Cleanup(func() {
		newRemote, newPerformer = oldRemote, oldPerformer
	})
	return fb
}

// testConfig returns a configuration with short waits against a fake
// executor.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Name = "TestSession"
	cfg.Executor = "http://127.0.0.1:4444/wd/hub"
	cfg.Timeouts = Timeouts{
		Implicit:   10 * time.Millisecond,
		Visibility: 200 * time.Millisecond,
		Result:     200 * time.Millisecond,
		Playback:   time.Millisecond,
	}
	return cfg
}

func openSession(t *testing.T, page map[string]*fakedriver.Element) (*Session, *fakeBrowser) {
	t.Helper()
	fb := installFake(t, fakedriver.New(page))
	s, err := NewSession(testConfig())
	if err != nil {
		t.Fatalf("NewSession() returned error: %v", err)
	}
	s.locator.Interval = 5 * time.Millisecond
	t.Cleanup(func() { s.Close() })
	return s, fb
}
