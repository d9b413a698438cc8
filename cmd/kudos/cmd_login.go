package main

import (
	"fmt"

	"github.com/lolasanchezz/kudos/internal/browser"
	"github.com/lolasanchezz/kudos/internal/config"
	"github.com/lolasanchezz/kudos/internal/login"
)

// LoginCmd signs in with a headless browser and verifies the dashboard
type LoginCmd struct {
	Email    string `help:"Account email, overrides STRAVA_EMAIL"`
	Password string `help:"Account password, overrides STRAVA_PASSWORD (prefer the environment variable)"`

	SiteFlags `embed:""`

	Screenshot string `env:"KUDOS_SCREENSHOT" default:"${screenshot}" help:"Where to write the screenshot on failure"`
	Headless   bool   `env:"KUDOS_HEADLESS" default:"true" negatable:"" help:"Run the browser without a window"`
	NoSandbox  bool   `env:"KUDOS_NO_SANDBOX" help:"Disable the Chromium sandbox (needed as root in most containers)"`
	BrowserBin string `env:"KUDOS_BROWSER_BIN" help:"Chromium binary to launch"`
	ControlURL string `env:"KUDOS_CONTROL_URL" help:"DevTools URL of an already running browser"`
}

// config starts from the credentials visible through lookup and layers
// the flags over them.
func (c *LoginCmd) config(lookup config.LookupFunc) config.Config {
	cfg := config.FromLookup(lookup)
	if c.Email != "" {
		cfg.Email = c.Email
	}
	if c.Password != "" {
		cfg.Password = c.Password
	}
	c.SiteFlags.apply(&cfg)
	cfg.ScreenshotPath = c.Screenshot
	cfg.Headless = c.Headless
	cfg.NoSandbox = c.NoSandbox
	cfg.BrowserBin = c.BrowserBin
	cfg.ControlURL = c.ControlURL
	return cfg
}

// Run executes the login command
func (c *LoginCmd) Run(cli *CLI) error {
	cfg := c.config(cli.lookup)

	launcher := browser.NewLauncher(browser.Options{
		Headless:   cfg.Headless,
		NoSandbox:  cfg.NoSandbox,
		Bin:        cfg.BrowserBin,
		ControlURL: cfg.ControlURL,
		Logger:     cli.logger,
	})
	step := 0
	runner := login.NewRunner(launcher,
		login.WithLogger(cli.logger),
		login.WithObserver(func(e login.Event) {
			step++
			fmt.Printf("%d. %s\n", step, e.Message)
		}),
	)

	out, err := runner.Run(cli.ctx, cfg)
	if err != nil {
		if out.Screenshot != "" {
			fmt.Printf("Screenshot saved to %s\n", out.Screenshot)
		}
		return err
	}
	fmt.Println("SUCCESS: Login test passed! Dashboard reached and element found.")
	return nil
}
