// Package preflight checks over plain HTTP that a login page is reachable and
// serves the expected form, without starting a browser or sending
// credentials.
package preflight

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly"

	"github.com/lolasanchezz/kudos/internal/config"
	"github.com/lolasanchezz/kudos/internal/login"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// Report describes what the served login page contains.
type Report struct {
	URL        string
	FinalURL   string
	StatusCode int

	// Labels and Buttons map each configured accessible name to whether
	// it appears in the served HTML.
	Labels  map[string]bool
	Buttons map[string]bool
}

// Missing lists the required names that were not found. The password
// toggle is optional and never reported.
func (r Report) Missing(cfg config.Config) []string {
	var out []string
	for _, name := range []string{cfg.EmailLabel, cfg.PasswordLabel} {
		if !r.Labels[name] {
			out = append(out, name)
		}
	}
	if !r.Buttons[cfg.SubmitName] {
		out = append(out, cfg.SubmitName)
	}
	return out
}

// Check fetches cfg.LoginURL once. Pages rendered by script may serve an
// empty form; callers should treat missing names as a warning.
//
// colly v1 cannot cancel a request in flight, so ctx is consulted before
// the request starts and its deadline caps the request timeout. Cancelling
// ctx after that does not stop the fetch; it ends when the timeout does.
func Check(ctx context.Context, cfg config.Config, logger *slog.Logger) (Report, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	report := Report{
		URL:     cfg.LoginURL,
		Labels:  map[string]bool{},
		Buttons: map[string]bool{},
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}

	c := colly.NewCollector(colly.UserAgent(userAgent))
	c.IgnoreRobotsTxt = true
	c.SetRequestTimeout(requestTimeout(ctx, cfg.StepTimeout))

	c.OnRequest(func(r *colly.Request) {
		logger.Debug("fetching login page", "url", r.URL.String())
	})
	c.OnResponse(func(r *colly.Response) {
		report.StatusCode = r.StatusCode
		report.FinalURL = r.Request.URL.String()
	})
	c.OnHTML("html", func(e *colly.HTMLElement) {
		scan(e.DOM, cfg, &report)
	})

	var visitErr error
	c.OnError(func(r *colly.Response, err error) {
		report.StatusCode = r.StatusCode
		visitErr = err
		logger.Warn("login page fetch failed", "url", r.Request.URL.String(), "status", r.StatusCode, "error", err)
	})

	if err := c.Visit(cfg.LoginURL); err != nil && visitErr == nil {
		visitErr = err
	}
	if visitErr != nil {
		return report, fmt.Errorf("%w: %s: %w", login.ErrNavigation, cfg.LoginURL, visitErr)
	}
	return report, nil
}

func requestTimeout(ctx context.Context, step time.Duration) time.Duration {
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < step {
			return left
		}
	}
	return step
}

func scan(doc *goquery.Selection, cfg config.Config, report *Report) {
	labels := []string{cfg.EmailLabel, cfg.PasswordLabel}
	buttons := []string{cfg.SubmitName}
	if cfg.ToggleEnabled() {
		buttons = append(buttons, cfg.PasswordToggle)
	}

	for _, name := range labels {
		report.Labels[name] = hasLabel(doc, name)
	}
	for _, name := range buttons {
		report.Buttons[name] = hasButton(doc, name)
	}
}

func norm(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func hasLabel(doc *goquery.Selection, name string) bool {
	found := false
	doc.Find("label").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		found = norm(s.Text()) == name
		return !found
	})
	if found {
		return true
	}
	doc.Find("input, textarea, select").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		aria, _ := s.Attr("aria-label")
		placeholder, _ := s.Attr("placeholder")
		found = norm(aria) == name || norm(placeholder) == name
		return !found
	})
	return found
}

func hasButton(doc *goquery.Selection, name string) bool {
	found := false
	doc.Find(`button, [role="button"], input[type="submit"], input[type="button"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		aria, _ := s.Attr("aria-label")
		value, _ := s.Attr("value")
		found = norm(aria) == name || norm(s.Text()) == name || norm(value) == name
		return !found
	})
	return found
}
