package login

import (
	"context"
	"errors"
	"fmt"

	"github.com/lolasanchezz/kudos/internal/config"
)

var (
	// ErrConfig is returned before any browser activity when the
	// configuration is incomplete.
	ErrConfig = config.ErrInvalid

	// ErrTimeout means a bounded wait ran out.
	ErrTimeout = errors.New("timed out")

	// ErrNavigation means a page could not be loaded.
	ErrNavigation = errors.New("navigation failed")

	// ErrAssertion means the form was submitted but the authenticated
	// page was not verified.
	ErrAssertion = errors.New("login not verified")
)

// StepError records which step failed and the state the run had reached.
type StepError struct {
	State State
	Step  string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s (after %s): %v", e.Step, e.State, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// classify tags deadline errors with ErrTimeout so callers can use
// errors.Is without knowing about contexts.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, ErrTimeout) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return err
}
