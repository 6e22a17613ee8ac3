package scenario

import (
	"fmt"
	"time"

	"github.com/golang/glog"
)

// Result is the outcome of one scenario run by Run.
type Result struct {
	Name     string
	Err      error
	Duration time.Duration
}

// Passed reports whether the scenario succeeded.
func (r Result) Passed() bool { return r.Err == nil }

// Run runs the named scenarios, or all of them, one after the other, each in
// a fresh session. A failing scenario does not stop the run. A panic in a
// scenario is reported as its failure.
func Run(c Config, names ...string) ([]Result, error) {
	selected, err := Select(names...)
	if err != nil {
		return nil, err
	}
	var results []Result
	for _, sc := range selected {
		start := time.Now()
		err := runRecovered(sc, c)
		r := Result{Name: sc.Name, Err: err, Duration: time.Since(start)}
		if err != nil {
			glog.Errorf("Scenario %s failed after %v: %v", sc.Name, r.Duration, err)
		} else {
			glog.Infof("Scenario %s passed in %v", sc.Name, r.Duration)
		}
		results = append(results, r)
	}
	return results, nil
}

func runRecovered(sc Scenario, c Config) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: panic: %v", sc.Name, r)
		}
	}()
	return runOne(sc, c, sc.Name)
}
