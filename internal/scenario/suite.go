package scenario

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed sentact.yaml
var defaultSuite []byte

// Suite holds the locator expressions and expected content the scenarios
// check. Locators are XPath expressions.
type Suite struct {
	URL      string   `yaml:"url"`
	Carousel Carousel `yaml:"carousel"`
	Video    Video    `yaml:"video"`
	Contact  Contact  `yaml:"contact"`
	Headers  Headers  `yaml:"headers"`
}

// Carousel locates the product carousel.
type Carousel struct {
	// NextArrow is the control that turns the carousel right.
	NextArrow string `yaml:"next_arrow"`
	// FirstSlide is the slide shown before the carousel turns.
	FirstSlide string `yaml:"first_slide"`
}

// Video locates the embedded video player.
type Video struct {
	// Frame is the iframe embedding the player. The other locators are
	// resolved inside it.
	Frame   string `yaml:"frame"`
	Mute    string `yaml:"mute"`
	Play    string `yaml:"play"`
	TimeBar string `yaml:"time_bar"`
	// InitialTime is the time bar text before playback starts.
	InitialTime string `yaml:"initial_time"`
}

// Contact locates the contact form and holds what is typed into it.
type Contact struct {
	Name       string `yaml:"name"`
	Email      string `yaml:"email"`
	Submit     string `yaml:"submit"`
	Result     string `yaml:"result"`
	NameInput  string `yaml:"name_input"`
	EmailInput string `yaml:"email_input"`
	// Success is expected in the result text after submission.
	Success string `yaml:"success"`
}

// Header is a heading and text it must contain.
type Header struct {
	XPath string `yaml:"xpath"`
	Text  string `yaml:"text"`
}

// Headers are the page headings checked at the top, middle and bottom of the
// page.
type Headers struct {
	Top    Header `yaml:"top"`
	Mid    Header `yaml:"mid"`
	Bottom Header `yaml:"bottom"`
}

// DefaultSuite returns the suite for https://sentact.com/.
func DefaultSuite() *Suite {
	s, err := parseSuite(&Suite{}, defaultSuite)
	if err != nil {
		panic(fmt.Sprintf("embedded suite: %v", err))
	}
	return s
}

// LoadSuite reads a suite file. Keys missing from the file keep their value
// from DefaultSuite.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := parseSuite(DefaultSuite(), data)
	if err != nil {
		return nil, fmt.Errorf("suite %s: %w", path, err)
	}
	return s, nil
}

func parseSuite(base *Suite, data []byte) (*Suite, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(base); err != nil && err != io.EOF {
		return nil, err
	}
	if err := base.Validate(); err != nil {
		return nil, err
	}
	return base, nil
}

type field struct {
	name, value string
}

func (s *Suite) locators() []field {
	return []field{
		{"carousel.next_arrow", s.Carousel.NextArrow},
		{"carousel.first_slide", s.Carousel.FirstSlide},
		{"video.frame", s.Video.Frame},
		{"video.mute", s.Video.Mute},
		{"video.play", s.Video.Play},
		{"video.time_bar", s.Video.TimeBar},
		{"contact.name", s.Contact.Name},
		{"contact.email", s.Contact.Email},
		{"contact.submit", s.Contact.Submit},
		{"contact.result", s.Contact.Result},
		{"headers.top.xpath", s.Headers.Top.XPath},
		{"headers.mid.xpath", s.Headers.Mid.XPath},
		{"headers.bottom.xpath", s.Headers.Bottom.XPath},
	}
}

func (s *Suite) literals() []field {
	return []field{
		{"video.initial_time", s.Video.InitialTime},
		{"contact.name_input", s.Contact.NameInput},
		{"contact.email_input", s.Contact.EmailInput},
		{"contact.success", s.Contact.Success},
		{"headers.top.text", s.Headers.Top.Text},
		{"headers.mid.text", s.Headers.Mid.Text},
		{"headers.bottom.text", s.Headers.Bottom.Text},
	}
}

// Validate reports every empty field, every locator that is not an absolute
// XPath expression, and a URL that is not http or https.
func (s *Suite) Validate() error {
	var errs []error
	if u, err := url.Parse(s.URL); err != nil {
		errs = append(errs, fmt.Errorf("url: %v", err))
	} else if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		errs = append(errs, fmt.Errorf("url: %q is not an http(s) URL", s.URL))
	}
	for _, f := range s.locators() {
		switch {
		case f.value == "":
			errs = append(errs, fmt.Errorf("%s: empty locator", f.name))
		case !strings.HasPrefix(f.value, "/") && !strings.HasPrefix(f.value, "("):
			errs = append(errs, fmt.Errorf("%s: %q is not an absolute XPath expression", f.name, f.value))
		}
	}
	for _, f := range s.literals() {
		if f.value == "" {
			errs = append(errs, fmt.Errorf("%s: empty", f.name))
		}
	}
	return errors.Join(errs...)
}
