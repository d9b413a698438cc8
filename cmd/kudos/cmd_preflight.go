package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/lolasanchezz/kudos/internal/config"
	"github.com/lolasanchezz/kudos/internal/preflight"
)

// PreflightCmd fetches the login page over HTTP and reports which form
// controls it serves
type PreflightCmd struct {
	SiteFlags `embed:""`

	Strict bool `help:"Fail when a required control is missing from the served HTML"`
}

// Run executes the preflight command
func (c *PreflightCmd) Run(cli *CLI) error {
	cfg := config.Default()
	c.SiteFlags.apply(&cfg)

	report, err := preflight.Check(cli.ctx, cfg, cli.logger)
	if err != nil {
		return err
	}

	fmt.Printf("%s -> %s (%d)\n", report.URL, report.FinalURL, report.StatusCode)
	for _, name := range slices.Sorted(maps.Keys(report.Labels)) {
		fmt.Printf("  label  %-24q %s\n", name, found(report.Labels[name]))
	}
	for _, name := range slices.Sorted(maps.Keys(report.Buttons)) {
		fmt.Printf("  button %-24q %s\n", name, found(report.Buttons[name]))
	}

	missing := report.Missing(cfg)
	if len(missing) == 0 {
		return nil
	}
	cli.logger.Warn("login form not found in served HTML; the page may render it with script", "missing", missing)
	if c.Strict {
		return fmt.Errorf("login page is missing %s", strings.Join(missing, ", "))
	}
	return nil
}

func found(ok bool) string {
	if ok {
		return "found"
	}
	return "missing"
}
