package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/lolasanchezz/kudos/internal/login"
)

// Exit codes following standard conventions
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error
	ExitConfig      = 3 // Configuration error
	ExitAuth        = 4 // Login submitted but not verified
	ExitNetwork     = 6 // Page could not be loaded
	ExitTimeout     = 7 // A wait ran out
	ExitInterrupted = 8 // Interrupted by user
)

// exitCode maps an error to the process exit status CI sees.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, login.ErrConfig):
		return ExitConfig
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.Is(err, login.ErrAssertion):
		return ExitAuth
	case errors.Is(err, login.ErrNavigation):
		return ExitNetwork
	case errors.Is(err, login.ErrTimeout):
		return ExitTimeout
	default:
		return ExitError
	}
}

// HandleError reports err and exits with the matching code. A nil error
// returns normally.
func HandleError(logger *slog.Logger, err error) {
	if err == nil {
		return
	}
	code := exitCode(err)
	logger.Debug("command failed", "error", err, "exit_code", code)
	fmt.Fprintf(os.Stderr, "FAILURE: %v\n", err)
	os.Exit(code)
}
