package scenario

import (
	"fmt"
	"testing"

	"github.com/golang/glog"

	"github.com/sentact/uitest"
)

// Config configures a run of the scenarios.
type Config struct {
	// Session is the configuration of each scenario's browser session. If
	// its URL is empty, the suite URL is used.
	Session uitest.Config
	// Suite is the data the scenarios check. Nil means DefaultSuite.
	Suite *Suite
}

func (c Config) sessionConfig(name string) uitest.Config {
	cfg := c.Session
	cfg.Name = name
	if cfg.URL == "" {
		cfg.URL = c.suite().URL
	}
	return cfg
}

func (c Config) suite() *Suite {
	if c.Suite == nil {
		return DefaultSuite()
	}
	return c.Suite
}

// runOne runs sc in a fresh session that is closed before it returns.
func runOne(sc Scenario, c Config, name string) error {
	suite := c.suite()
	return uitest.WithSession(c.sessionConfig(name), func(s *uitest.Session) error {
		glog.Infof("Running scenario %s", sc.Name)
		if err := sc.Run(s, suite); err != nil {
			return fmt.Errorf("%s: %w", sc.Name, err)
		}
		return nil
	})
}

func runTest(sc Scenario, c Config) func(*testing.T) {
	return func(t *testing.T) {
		err := runOne(sc, c, t.Name())
		switch {
		case err == nil:
		case uitest.IsSetup(err):
			t.Fatalf("setup: %v", err)
		default:
			t.Error(err)
		}
	}
}

// RunScenarios runs every scenario as a subtest, each in its own browser
// session.
func RunScenarios(t *testing.T, c Config) {
	for _, sc := range All() {
		t.Run(sc.Name, runTest(sc, c))
	}
}
