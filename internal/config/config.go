package config

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Canonical environment contract with CI. Both credential variables are
// required; everything else has a default.
const (
	EnvEmail    = "STRAVA_EMAIL"
	EnvPassword = "STRAVA_PASSWORD"
)

const (
	DefaultLoginURL         = "https://www.strava.com/login"
	DefaultDashboardPattern = "**/dashboard"
	DefaultSuccessText      = "Welcome, Athlete!"
	DefaultEmailLabel       = "Email Address"
	DefaultPasswordLabel    = "Password"
	DefaultPasswordToggle   = "Use Password Option"
	DefaultSubmitName       = "Sign In"
	DefaultStepTimeout      = 30 * time.Second
	DefaultScreenshotPath   = "login_failure_screenshot.png"
)

// ErrInvalid marks configuration problems. They are detected before any
// browser activity and are never retried.
var ErrInvalid = errors.New("configuration error")

// Credentials is the identifier/secret pair used to sign in.
type Credentials struct {
	Email    string `env:"STRAVA_EMAIL" validate:"notblank"`
	Password string `env:"STRAVA_PASSWORD" validate:"notblank"`
}

// String never includes the password.
func (c Credentials) String() string {
	return fmt.Sprintf("%s/%s", c.Email, redact(c.Password))
}

// LogValue keeps the password out of structured logs.
func (c Credentials) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("email", c.Email),
		slog.String("password", redact(c.Password)),
	)
}

func redact(s string) string {
	if s == "" {
		return ""
	}
	return "[redacted]"
}

// Config is the explicit value handed to the login runner. Nothing in the
// runner reads the process environment.
type Config struct {
	Credentials

	LoginURL         string `env:"KUDOS_LOGIN_URL" validate:"required,url"`
	DashboardPattern string `env:"KUDOS_DASHBOARD_PATTERN" validate:"required"`
	SuccessText      string `env:"KUDOS_SUCCESS_TEXT" validate:"required"`

	EmailLabel         string `env:"KUDOS_EMAIL_LABEL" validate:"required"`
	PasswordLabel      string `env:"KUDOS_PASSWORD_LABEL" validate:"required"`
	PasswordToggle     string `env:"KUDOS_PASSWORD_TOGGLE"`
	SkipPasswordToggle bool   `env:"KUDOS_SKIP_PASSWORD_TOGGLE"`
	SubmitName         string `env:"KUDOS_SUBMIT_NAME" validate:"required"`

	// StepTimeout bounds every individual wait in the workflow.
	StepTimeout    time.Duration `env:"KUDOS_STEP_TIMEOUT" validate:"gt=0"`
	ScreenshotPath string        `env:"KUDOS_SCREENSHOT" validate:"required"`

	Headless   bool   `env:"KUDOS_HEADLESS"`
	NoSandbox  bool   `env:"KUDOS_NO_SANDBOX"`
	BrowserBin string `env:"KUDOS_BROWSER_BIN"`
	ControlURL string `env:"KUDOS_CONTROL_URL" validate:"omitempty,url"`
}

// Default returns a Config with every site constant filled in and no
// credentials.
func Default() Config {
	return Config{
		LoginURL:         DefaultLoginURL,
		DashboardPattern: DefaultDashboardPattern,
		SuccessText:      DefaultSuccessText,
		EmailLabel:       DefaultEmailLabel,
		PasswordLabel:    DefaultPasswordLabel,
		PasswordToggle:   DefaultPasswordToggle,
		SubmitName:       DefaultSubmitName,
		StepTimeout:      DefaultStepTimeout,
		ScreenshotPath:   DefaultScreenshotPath,
		Headless:         true,
	}
}

// ToggleEnabled reports whether the optional password-toggle step applies
// to this deployment.
func (c Config) ToggleEnabled() bool {
	return !c.SkipPasswordToggle && strings.TrimSpace(c.PasswordToggle) != ""
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	// Report fields by the variable that sets them.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("env"); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

// Validate checks c and returns an error wrapping ErrInvalid that names
// the offending variables.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, describe(e))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func describe(e validator.FieldError) string {
	switch e.Tag() {
	case "notblank", "required":
		return fmt.Sprintf("%s must be set", e.Field())
	case "url":
		return fmt.Sprintf("%s is not a valid URL", e.Field())
	case "gt":
		return fmt.Sprintf("%s must be positive", e.Field())
	default:
		return fmt.Sprintf("%s failed %q", e.Field(), e.Tag())
	}
}
