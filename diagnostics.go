package uitest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/tebeka/selenium/log"
)

// Dump writes what the browser currently shows into dir: a screenshot
// (<name>.png), the top-level page source (<name>.html) and the browser
// console log (<name>.console.log). Parts that cannot be fetched are logged
// and skipped. It returns the paths written.
func (s *Session) Dump(dir, name string) ([]string, error) {
	if s.wd == nil {
		return nil, fmt.Errorf("session %q has no browser", s.cfg.Name)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	if name == "" {
		name = "session"
	}
	base := filepath.Join(dir, artifactName(name))

	var paths []string
	write := func(suffix string, data []byte) {
		path := base + suffix
		if err := os.WriteFile(path, data, 0644); err != nil {
			glog.Warningf("Writing %q: %v", path, err)
			return
		}
		paths = append(paths, path)
	}

	if url, err := s.wd.CurrentURL(); err == nil {
		glog.Infof("Browser URL at end of %q: %s", name, url)
	}

	if png, err := s.wd.Screenshot(); err != nil {
		glog.Warningf("Taking screenshot of %q: %v", name, err)
	} else {
		write(".png", png)
	}

	if s.inFrame {
		if err := s.ExitFrame(); err != nil {
			glog.Warningf("Leaving frame of %q: %v", name, err)
		}
	}
	if src, err := s.wd.PageSource(); err != nil {
		glog.Warningf("Fetching page source of %q: %v", name, err)
	} else {
		write(".html", []byte(src))
	}

	if msgs, err := s.wd.Log(log.Browser); err != nil {
		glog.Warningf("Fetching browser log of %q: %v", name, err)
	} else {
		write(".console.log", []byte(formatLog(msgs)))
	}

	return paths, nil
}

func formatLog(msgs []log.Message) string {
	var b strings.Builder
	for _, m := range msgs {
		fmt.Fprintf(&b, "%s %-7s %s\n", m.Timestamp.UTC().Format(time.RFC3339Nano), m.Level, m.Message)
	}
	return b.String()
}

// artifactName makes name safe to use as a file name.
func artifactName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ' ', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
}
