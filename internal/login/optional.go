package login

import (
	"context"

	"github.com/lolasanchezz/kudos/internal/config"
)

// OptionalStep runs Do only when Present reports true. A step whose
// control is missing is a no-op rather than a failure.
type OptionalStep struct {
	Name    string
	Present func(ctx context.Context, p Page) (bool, error)
	Do      func(ctx context.Context, p Page) error
}

// Apply reports whether the step ran.
func (s OptionalStep) Apply(ctx context.Context, p Page) (bool, error) {
	ok, err := s.Present(ctx, p)
	if err != nil || !ok {
		return false, err
	}
	return true, s.Do(ctx, p)
}

// passwordToggle clicks the control that swaps the form into password
// mode and waits for the email field to come back.
func passwordToggle(cfg config.Config) OptionalStep {
	return OptionalStep{
		Name: cfg.PasswordToggle,
		Present: func(ctx context.Context, p Page) (bool, error) {
			return p.Visible(ctx, RoleButton, cfg.PasswordToggle)
		},
		Do: func(ctx context.Context, p Page) error {
			if err := p.Click(ctx, RoleButton, cfg.PasswordToggle); err != nil {
				return err
			}
			return p.WaitLabelVisible(ctx, cfg.EmailLabel)
		},
	}
}
