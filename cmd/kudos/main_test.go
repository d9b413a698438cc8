package main

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lolasanchezz/kudos/internal/config"
	"github.com/lolasanchezz/kudos/internal/login"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, defaultVars())
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cli, kctx
}

func lookup(m map[string]string) config.LookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestLoginIsDefaultCommand(t *testing.T) {
	cli, kctx := parse(t, "--email", "a@b.c", "--password", "pw")
	assert.Equal(t, "login", kctx.Command())

	cfg := cli.Login.config(lookup(nil))
	assert.Equal(t, "a@b.c", cfg.Email)
	assert.Equal(t, "pw", cfg.Password)
	assert.Equal(t, config.DefaultLoginURL, cfg.LoginURL)
	assert.Equal(t, config.DefaultStepTimeout, cfg.StepTimeout)
	assert.True(t, cfg.Headless)
	require.NoError(t, cfg.Validate())
}

func TestLoginReadsCredentialsFromLookup(t *testing.T) {
	t.Setenv("KUDOS_STEP_TIMEOUT", "5s")

	cli, _ := parse(t, "login", "--no-headless", "--no-sandbox")
	cfg := cli.Login.config(lookup(map[string]string{
		config.EnvEmail:    "env@example.com",
		config.EnvPassword: "env-pw",
	}))
	assert.Equal(t, "env@example.com", cfg.Email)
	assert.Equal(t, "env-pw", cfg.Password)
	assert.Equal(t, 5*time.Second, cfg.StepTimeout)
	assert.False(t, cfg.Headless)
	assert.True(t, cfg.NoSandbox)
}

func TestLoginFlagsOverrideLookup(t *testing.T) {
	cli, _ := parse(t, "login", "--email", "flag@example.com")
	cfg := cli.Login.config(lookup(map[string]string{
		config.EnvEmail:    "env@example.com",
		config.EnvPassword: "env-pw",
	}))
	assert.Equal(t, "flag@example.com", cfg.Email)
	assert.Equal(t, "env-pw", cfg.Password)
}

func TestLoginWithoutCredentialsIsConfigError(t *testing.T) {
	cli, _ := parse(t, "login")
	err := cli.Login.config(lookup(nil)).Validate()
	require.ErrorIs(t, err, login.ErrConfig)
	assert.Equal(t, ExitConfig, exitCode(err))
}

func TestPreflightCommandFlags(t *testing.T) {
	cli, kctx := parse(t, "preflight", "--login-url", "http://localhost:8080/login", "--skip-password-toggle", "--strict")
	assert.Equal(t, "preflight", kctx.Command())
	assert.Equal(t, "http://localhost:8080/login", cli.Preflight.LoginURL)
	assert.True(t, cli.Preflight.SkipPasswordToggle)
	assert.True(t, cli.Preflight.Strict)
}

func TestExitCode(t *testing.T) {
	step := func(err error) error {
		return &login.StepError{State: login.StateSubmittedForm, Step: "verify", Err: err}
	}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"config", fmt.Errorf("%w: STRAVA_EMAIL must be set", login.ErrConfig), ExitConfig},
		{"assertion timeout", step(fmt.Errorf("%w: %w", login.ErrAssertion, login.ErrTimeout)), ExitAuth},
		{"navigation", step(fmt.Errorf("%w: dns", login.ErrNavigation)), ExitNetwork},
		{"timeout", step(fmt.Errorf("%w: %w", login.ErrTimeout, context.DeadlineExceeded)), ExitTimeout},
		{"interrupted", step(context.Canceled), ExitInterrupted},
		{"other", errors.New("boom"), ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLogLevel("debug").String())
	assert.Equal(t, "WARN", parseLogLevel("warning").String())
	assert.Equal(t, "INFO", parseLogLevel("bogus").String())
}
