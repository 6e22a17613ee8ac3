package uitest

import (
	"fmt"
	"io"
	"net"

	"github.com/golang/glog"
	"github.com/tebeka/selenium"

	"github.com/sentact/uitest/internal/binpath"
)

// ServiceConfig configures a locally-running ChromeDriver.
type ServiceConfig struct {
	// DriverPath is the ChromeDriver binary. If empty, a binary matching
	// third_party/chromedriver* is used, then "chromedriver" from PATH.
	DriverPath string
	// Port is the port to listen on. If zero, an unused port is picked.
	Port int
	// FrameBuffer starts an Xvfb server for the browser to render into. It is
	// only needed when the browser does not run headless on a machine without
	// a display.
	FrameBuffer bool
	// Output receives the driver's log output. Nil discards it.
	Output io.Writer
}

// Service controls a ChromeDriver subprocess.
type Service struct {
	svc  stopper
	addr string
}

type stopper interface {
	Stop() error
}

// startChromeDriver is replaced in tests.
var startChromeDriver = func(path string, port int, opts ...selenium.ServiceOption) (stopper, error) {
	return selenium.NewChromeDriverService(path, port, opts...)
}

// StartService starts ChromeDriver in the background and waits until it
// answers on its status endpoint.
func StartService(c ServiceConfig) (*Service, error) {
	path, err := binpath.Driver(c.DriverPath)
	if err != nil {
		return nil, fmt.Errorf("locating ChromeDriver: %w", err)
	}
	port := c.Port
	if port == 0 {
		if port, err = pickUnusedPort(); err != nil {
			return nil, fmt.Errorf("picking a port for ChromeDriver: %w", err)
		}
	}

	var opts []selenium.ServiceOption
	if c.FrameBuffer {
		opts = append(opts, selenium.StartFrameBuffer())
	}
	if c.Output != nil {
		opts = append(opts, selenium.Output(c.Output))
	}

	svc, err := startChromeDriver(path, port, opts...)
	if err != nil {
		return nil, fmt.Errorf("starting ChromeDriver %q on port %d: %w", path, port, err)
	}
	s := &Service{
		svc:  svc,
		addr: fmt.Sprintf("http://127.0.0.1:%d/wd/hub", port),
	}
	glog.Infof("ChromeDriver %s listening at %s", path, s.addr)
	return s, nil
}

// Addr returns the WebDriver executor URL of the service.
func (s *Service) Addr() string { return s.addr }

// Stop shuts down ChromeDriver, and the frame buffer if one was started.
func (s *Service) Stop() error {
	if s == nil || s.svc == nil {
		return nil
	}
	err := s.svc.Stop()
	s.svc = nil
	if err != nil {
		return fmt.Errorf("stopping ChromeDriver at %s: %w", s.addr, err)
	}
	glog.Infof("ChromeDriver at %s stopped", s.addr)
	return nil
}

func pickUnusedPort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	port := l.Addr().(*net.TCPAddr).Port
	if err := l.Close(); err != nil {
		return 0, err
	}
	return port, nil
}
