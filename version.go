package uitest

import (
	"fmt"
	"strings"

	"github.com/blang/semver"
	"github.com/golang/glog"
	"github.com/tebeka/selenium"
)

// MinDriverVersion is the oldest ChromeDriver that speaks W3C WebDriver by
// default, which the input actions require.
var MinDriverVersion = semver.MustParse("75.0.0")

// parseDriverVersion extracts a semantic version from a ChromeDriver build
// string such as "114.0.5735.90 (386bc09e8f4f...-refs/branch-heads/5735@{#1052})".
// Chrome versions have four components; the last one is dropped.
func parseDriverVersion(build string) (semver.Version, error) {
	fields := strings.Fields(build)
	if len(fields) == 0 {
		return semver.Version{}, fmt.Errorf("empty driver version")
	}
	parts := strings.Split(fields[0], ".")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return semver.ParseTolerant(strings.Join(parts, "."))
}

// checkDriverVersion rejects drivers older than MinDriverVersion. Drivers
// that do not report a parseable version are accepted.
func checkDriverVersion(wd selenium.WebDriver) error {
	status, err := wd.Status()
	if err != nil {
		glog.Warningf("Unable to query WebDriver status: %v", err)
		return nil
	}
	v, err := parseDriverVersion(status.Build.Version)
	if err != nil {
		glog.Warningf("Unable to parse WebDriver version %q: %v", status.Build.Version, err)
		return nil
	}
	debugLog("WebDriver version %s", v)
	if v.LT(MinDriverVersion) {
		return fmt.Errorf("ChromeDriver %s is older than the minimum supported version %s", v, MinDriverVersion)
	}
	return nil
}
