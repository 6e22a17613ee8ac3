/*
Package uitest drives a Chrome browser through WebDriver for the end-to-end
UI tests of the sentact.com website.

A Session is one browser, navigated to the site and owned by exactly one test
scenario. WithSession creates it, runs the scenario body and quits the browser
on every exit path:

	cfg := uitest.DefaultConfig()
	cfg.Executor = "http://127.0.0.1:9515"
	err := uitest.WithSession(cfg, func(s *uitest.Session) error {
		h, err := s.LocateAndReveal(`//*[@id="content"]//h1`)
		if err != nil {
			return err
		}
		text, err := h.Text()
		if err != nil {
			return err
		}
		if !strings.Contains(text, "The Care Experience") {
			return uitest.Assertf("header %q", text)
		}
		return nil
	})

If Executor is empty, the session starts its own ChromeDriver, found at
Config.Service.DriverPath, under third_party/, or in PATH.

Failures carry a Kind (NotFound, Timeout, Assertion, Setup or Driver) that can
be tested with KindOf and the Is* helpers.
*/
package uitest
