package uitest

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/tebeka/selenium"
)

var debugFlag = false

// SetDebug enables step tracing in this package and wire-level tracing in the
// WebDriver client.
func SetDebug(debug bool) {
	debugFlag = debug
	selenium.SetDebug(debug)
}

func debugLog(format string, args ...interface{}) {
	if !debugFlag && !bool(glog.V(1)) {
		return
	}
	glog.InfoDepth(1, fmt.Sprintf(format, args...))
}
