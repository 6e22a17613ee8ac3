// Package binpath finds the ChromeDriver and Chrome binaries the suite runs
// against.
package binpath

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"

	"github.com/golang/glog"
)

// DefaultDriverGlob is where a locally downloaded ChromeDriver is looked for
// when no path is given.
const DefaultDriverGlob = "third_party/chromedriver*"

// FindBest returns the lexically greatest regular file matching glob, or ""
// if there is none. If binary is set, only executable files are considered.
func FindBest(glob string, binary bool) string {
	matches, err := filepath.Glob(glob)
	if err != nil {
		glog.Warningf("Error globbing %q: %s", glob, err)
		return ""
	}
	if len(matches) == 0 {
		return ""
	}
	// Iterate backwards: newer versions should be sorted to the end.
	sort.Strings(matches)
	for i := len(matches) - 1; i >= 0; i-- {
		path := matches[i]
		fi, err := os.Stat(path)
		if err != nil {
			glog.Warningf("Error statting %q: %s", path, err)
			continue
		}
		if !fi.Mode().IsRegular() {
			continue
		}
		if binary && fi.Mode().Perm()&0111 == 0 {
			continue
		}
		return path
	}
	return ""
}

// Resolve returns the path of an executable. name may be a path to an
// existing file or a bare name to be searched for in PATH.
func Resolve(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("no binary name given")
	}
	if fi, err := os.Stat(name); err == nil {
		if !fi.Mode().IsRegular() {
			return "", fmt.Errorf("%q is not a regular file", name)
		}
		return name, nil
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("binary %q not found: %w", name, err)
	}
	return path, nil
}

// Driver returns the ChromeDriver to use: path if set, otherwise the best
// match for DefaultDriverGlob, otherwise "chromedriver" from PATH.
func Driver(path string) (string, error) {
	if path != "" {
		return Resolve(path)
	}
	if p := FindBest(DefaultDriverGlob, true); p != "" {
		return p, nil
	}
	return Resolve("chromedriver")
}
