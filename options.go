package uitest

import (
	"fmt"

	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"github.com/tebeka/selenium/log"
)

// Option is a recognized browser option. Each is passed to Chrome as a
// command-line switch of the same name.
type Option string

// The recognized browser options.
const (
	// NoSandbox disables the OS-level sandbox. The sandbox requires a setuid
	// binary, which is usually absent in containers.
	NoSandbox Option = "no-sandbox"
	// DisableExtensions disables browser extensions.
	DisableExtensions Option = "disable-extensions"
	// Incognito starts the browser in private-browsing mode.
	Incognito Option = "incognito"
	// Headless runs the browser without a visible UI.
	Headless Option = "headless"
	// DisableGPU disables hardware acceleration.
	DisableGPU Option = "disable-gpu"
)

var knownOptions = map[Option]bool{
	NoSandbox:         true,
	DisableExtensions: true,
	Incognito:         true,
	Headless:          true,
	DisableGPU:        true,
}

// DefaultOptions is the fixed option set every scenario session uses.
var DefaultOptions = []Option{NoSandbox, DisableExtensions, Incognito, Headless, DisableGPU}

// ParseOption returns the Option named s, or an error if it is not recognized.
func ParseOption(s string) (Option, error) {
	o := Option(s)
	if !knownOptions[o] {
		return "", fmt.Errorf("unrecognized browser option %q", s)
	}
	return o, nil
}

// Arg returns the command-line switch for o.
func (o Option) Arg() string { return "--" + string(o) }

// WithoutOption returns opts with every occurrence of o removed.
func WithoutOption(opts []Option, o Option) []Option {
	var out []Option
	for _, opt := range opts {
		if opt != o {
			out = append(out, opt)
		}
	}
	return out
}

// capabilities renders the browser configuration as WebDriver capabilities.
// Browser console logging is always requested so that failures can be
// diagnosed.
func capabilities(opts []Option, binary string) (selenium.Capabilities, error) {
	var args []string
	seen := make(map[Option]bool)
	for _, o := range opts {
		if !knownOptions[o] {
			return nil, fmt.Errorf("unrecognized browser option %q", string(o))
		}
		if seen[o] {
			continue
		}
		seen[o] = true
		args = append(args, o.Arg())
	}

	// W3C mode is required for the input actions endpoint.
	chrOpts := map[string]interface{}{
		"args": args,
		"w3c":  true,
	}
	if binary != "" {
		chrOpts["binary"] = binary
	}
	caps := selenium.Capabilities{
		"browserName":          "chrome",
		chrome.CapabilitiesKey: chrOpts,
	}
	caps.AddLogging(log.Capabilities{log.Browser: log.All})
	return caps, nil
}
