package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/lolasanchezz/kudos/internal/config"
)

// CLI represents the main CLI structure
type CLI struct {
	LogLevel string `default:"info" env:"KUDOS_LOG_LEVEL" enum:"debug,info,warn,error" help:"Log level"`

	Login     LoginCmd     `cmd:"" default:"withargs" help:"Sign in and verify the dashboard (default)"`
	Preflight PreflightCmd `cmd:"" help:"Check the login page over HTTP without a browser"`

	ctx    context.Context
	logger *slog.Logger
	lookup config.LookupFunc
}

func main() {
	// Dotenv values must be in the environment before kong reads env tags.
	envErr := config.LoadEnvFiles(config.DefaultEnvFiles()...)

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("kudos"),
		kong.Description("Sign in to Strava with a headless browser and verify the dashboard"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		defaultVars(),
	)

	cli.logger = createCLILogger(cli.LogLevel)
	cli.lookup = os.LookupEnv
	if envErr != nil {
		cli.logger.Warn("reading env files", "error", envErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cli.ctx = ctx
	err := kctx.Run(&cli)
	stop()

	HandleError(cli.logger, err)
}
