package main

import (
	"time"

	"github.com/alecthomas/kong"

	"github.com/lolasanchezz/kudos/internal/config"
)

func defaultVars() kong.Vars {
	return kong.Vars{
		"login_url":         config.DefaultLoginURL,
		"dashboard_pattern": config.DefaultDashboardPattern,
		"success_text":      config.DefaultSuccessText,
		"email_label":       config.DefaultEmailLabel,
		"password_label":    config.DefaultPasswordLabel,
		"password_toggle":   config.DefaultPasswordToggle,
		"submit_name":       config.DefaultSubmitName,
		"step_timeout":      config.DefaultStepTimeout.String(),
		"screenshot":        config.DefaultScreenshotPath,
	}
}

// SiteFlags describe the login page. They are shared by every command.
type SiteFlags struct {
	LoginURL           string        `env:"KUDOS_LOGIN_URL" default:"${login_url}" help:"Login page URL"`
	DashboardPattern   string        `env:"KUDOS_DASHBOARD_PATTERN" default:"${dashboard_pattern}" help:"Glob the URL must match after signing in"`
	SuccessText        string        `env:"KUDOS_SUCCESS_TEXT" default:"${success_text}" help:"Text that must be visible once signed in"`
	EmailLabel         string        `env:"KUDOS_EMAIL_LABEL" default:"${email_label}" help:"Accessible label of the email field"`
	PasswordLabel      string        `env:"KUDOS_PASSWORD_LABEL" default:"${password_label}" help:"Accessible label of the password field"`
	PasswordToggle     string        `env:"KUDOS_PASSWORD_TOGGLE" default:"${password_toggle}" help:"Button that switches the form to password entry, clicked only if visible"`
	SkipPasswordToggle bool          `env:"KUDOS_SKIP_PASSWORD_TOGGLE" help:"Never look for the password toggle"`
	SubmitName         string        `env:"KUDOS_SUBMIT_NAME" default:"${submit_name}" help:"Accessible name of the submit button"`
	StepTimeout        time.Duration `env:"KUDOS_STEP_TIMEOUT" default:"${step_timeout}" help:"Upper bound for each wait"`
}

func (s SiteFlags) apply(cfg *config.Config) {
	cfg.LoginURL = s.LoginURL
	cfg.DashboardPattern = s.DashboardPattern
	cfg.SuccessText = s.SuccessText
	cfg.EmailLabel = s.EmailLabel
	cfg.PasswordLabel = s.PasswordLabel
	cfg.PasswordToggle = s.PasswordToggle
	cfg.SkipPasswordToggle = s.SkipPasswordToggle
	cfg.SubmitName = s.SubmitName
	cfg.StepTimeout = s.StepTimeout
}
