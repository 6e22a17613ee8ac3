package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sentact/uitest"
	"github.com/sentact/uitest/internal/scenario"
)

// runScenarios is replaced in tests.
var runScenarios = scenario.Run

type runOptions struct {
	scenarios      []string
	suite          string
	url            string
	driver         string
	executor       string
	chromeBinary   string
	browserOptions []string
	artifacts      string
	headful        bool
	frameBuffer    bool
	wait           time.Duration
	noColor        bool
	debug          bool
}

func (o *runOptions) flagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("run", pflag.ContinueOnError)
	flags.StringArrayVarP(&o.scenarios, "scenario", "s", nil, "scenario to run; repeat to run several (default all)")
	flags.StringVar(&o.suite, "suite", "", "YAML file overriding the built-in locators and expected content")
	flags.StringVar(&o.url, "url", "", "site to test (default the suite URL)")
	flags.StringVar(&o.driver, "driver", "", "ChromeDriver binary (default third_party/chromedriver* or chromedriver in PATH)")
	flags.StringVar(&o.executor, "executor", "", "URL of a running WebDriver server; no ChromeDriver is started if set")
	flags.StringVar(&o.chromeBinary, "chrome-binary", "", "Chrome binary (default the installed Chrome)")
	flags.StringSliceVar(&o.browserOptions, "browser-option", nil, "browser switches replacing the default set, e.g. no-sandbox,headless")
	flags.StringVar(&o.artifacts, "artifacts", "", "directory receiving a screenshot, page source and console log of each failed scenario")
	flags.BoolVar(&o.headful, "headful", false, "show the browser window")
	flags.BoolVar(&o.frameBuffer, "frame-buffer", false, "run the browser in an Xvfb server started for each scenario")
	flags.DurationVar(&o.wait, "wait", uitest.DefaultWait, "bound of the implicit element wait and of every explicit wait")
	flags.BoolVar(&o.noColor, "no-color", false, "disable colored output")
	flags.BoolVar(&o.debug, "debug", false, "log every WebDriver request")
	must(cobra.MarkFlagFilename(flags, "suite", "yaml", "yml"))
	return flags
}

func (o *runOptions) config() (scenario.Config, error) {
	suite := scenario.DefaultSuite()
	if o.suite != "" {
		var err error
		if suite, err = scenario.LoadSuite(o.suite); err != nil {
			return scenario.Config{}, err
		}
	}

	cfg := uitest.DefaultConfig()
	cfg.URL = o.url
	cfg.Executor = o.executor
	cfg.Service = uitest.ServiceConfig{DriverPath: o.driver, FrameBuffer: o.frameBuffer}
	cfg.BrowserBinary = o.chromeBinary
	if len(o.browserOptions) > 0 {
		cfg.Options = nil
		for _, s := range o.browserOptions {
			opt, err := uitest.ParseOption(s)
			if err != nil {
				return scenario.Config{}, err
			}
			cfg.Options = append(cfg.Options, opt)
		}
	}
	if o.headful {
		cfg.Options = uitest.WithoutOption(cfg.Options, uitest.Headless)
	}
	if o.wait <= 0 {
		return scenario.Config{}, fmt.Errorf("--wait must be positive, got %v", o.wait)
	}
	cfg.Timeouts = uitest.Timeouts{Implicit: o.wait, Visibility: o.wait, Result: o.wait, Playback: o.wait}
	cfg.ArtifactDir = o.artifacts
	return scenario.Config{Session: cfg, Suite: suite}, nil
}

func newRunCommand(out io.Writer) *cobra.Command {
	o := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run scenarios, each in a fresh browser session",
		Long: `Run scenarios, each in a fresh browser session.

Each scenario is reported as PASS, FAIL, or SETUP if no browser session could
be created for it. The command fails if any scenario did not pass.`,
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			uitest.SetDebug(o.debug)
			cfg, err := o.config()
			if err != nil {
				return err
			}
			results, err := runScenarios(cfg, o.scenarios...)
			if err != nil {
				return err
			}
			if failed := report(out, results, o.noColor); failed > 0 {
				return fmt.Errorf("%d of %d scenarios failed", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().AddFlagSet(o.flagSet())
	return cmd
}

// report writes one line per result and a summary, and returns the number of
// scenarios that did not pass.
func report(w io.Writer, results []scenario.Result, noColor bool) int {
	newColor := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if noColor {
			c.DisableColor()
		}
		return c
	}
	pass, fail, setup, gray := newColor(color.FgGreen), newColor(color.FgRed), newColor(color.FgYellow), newColor(color.Faint)

	failed := 0
	for _, r := range results {
		label, c := "PASS", pass
		if !r.Passed() {
			failed++
			label, c = "FAIL", fail
			if uitest.IsSetup(r.Err) {
				label, c = "SETUP", setup
			}
		}
		fmt.Fprintf(w, "%s %s %s\n", c.Sprintf("%-5s", label), r.Name, gray.Sprintf("(%v)", r.Duration.Round(time.Millisecond)))
		if r.Err != nil {
			fmt.Fprintf(w, "      %v\n", r.Err)
		}
	}
	fmt.Fprintf(w, "\n%d passed, %d failed\n", len(results)-failed, failed)
	return failed
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
