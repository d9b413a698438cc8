package login

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/lolasanchezz/kudos/internal/config"
)

// Event is a progress notification emitted as the run moves along.
type Event struct {
	State   State
	Message string
}

// Observer receives progress events. It is called synchronously.
type Observer func(Event)

// Runner executes the login workflow. It holds no per-run state, so one
// Runner may be reused for any number of sequential runs.
type Runner struct {
	launcher Launcher
	fs       afero.Fs
	logger   *slog.Logger
	observe  Observer

	// screenshotTimeout bounds the diagnostic capture on failure.
	screenshotTimeout time.Duration
}

type Option func(*Runner)

// WithFs sets where failure screenshots are written.
func WithFs(fs afero.Fs) Option {
	return func(r *Runner) { r.fs = fs }
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(r *Runner) { r.observe = o }
}

// NewRunner returns a Runner that opens sessions with launcher.
func NewRunner(launcher Launcher, opts ...Option) *Runner {
	r := &Runner{
		launcher:          launcher,
		fs:                afero.NewOsFs(),
		logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
		screenshotTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run signs in with cfg and verifies the authenticated page. Incomplete
// configuration fails with ErrConfig before the launcher is touched. Any
// later failure writes one screenshot to cfg.ScreenshotPath and returns
// the original error.
func (r *Runner) Run(ctx context.Context, cfg config.Config) (Outcome, error) {
	if err := cfg.Validate(); err != nil {
		r.logger.Error("invalid configuration", "error", err)
		return Outcome{State: StateFailed, Reached: StateInit, Err: err}, err
	}

	r.logger.Info("starting login", "url", cfg.LoginURL, "credentials", cfg.Credentials)

	sess, err := r.launcher.Launch(ctx)
	if err != nil {
		err = &StepError{State: StateInit, Step: "launch browser", Err: classify(err)}
		return Outcome{State: StateFailed, Reached: StateInit, Err: err}, err
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			r.logger.Warn("closing browser session", "error", cerr)
		}
	}()

	page := bound(sess.Page(), cfg.StepTimeout)
	w := &workflow{r: r, cfg: cfg, page: page, state: StateInit}

	if err := w.run(ctx); err != nil {
		out := Outcome{State: StateFailed, Reached: w.state, Err: err}
		out.Screenshot = r.screenshot(ctx, sess.Page(), cfg.ScreenshotPath)
		r.logger.Error("login failed", "state", w.state, "error", err, "screenshot", out.Screenshot)
		return out, err
	}

	r.logger.Info("login verified", "pattern", cfg.DashboardPattern)
	return Outcome{State: StateAuthenticatedVerified, Reached: StateSubmittedForm}, nil
}

// screenshot is best effort: failures are logged and an empty path is
// returned so the caller still reports the original error.
func (r *Runner) screenshot(ctx context.Context, p Page, path string) string {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.screenshotTimeout)
	defer cancel()

	data, err := p.Screenshot(ctx)
	if err != nil {
		r.logger.Warn("capturing failure screenshot", "error", err)
		return ""
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := r.fs.MkdirAll(dir, 0o755); err != nil {
			r.logger.Warn("creating screenshot directory", "dir", dir, "error", err)
			return ""
		}
	}
	if err := afero.WriteFile(r.fs, path, data, 0o644); err != nil {
		r.logger.Warn("writing failure screenshot", "path", path, "error", err)
		return ""
	}
	return path
}

type workflow struct {
	r     *Runner
	cfg   config.Config
	page  Page
	state State
}

func (w *workflow) emit(msg string) {
	w.r.logger.Debug(msg, "state", w.state)
	if w.r.observe != nil {
		w.r.observe(Event{State: w.state, Message: msg})
	}
}

func (w *workflow) advance(s State) {
	w.state = s
}

func (w *workflow) fail(step string, err error) error {
	return &StepError{State: w.state, Step: step, Err: err}
}

func (w *workflow) run(ctx context.Context) error {
	cfg, p := w.cfg, w.page

	w.emit(fmt.Sprintf("Navigating to %s", cfg.LoginURL))
	if err := p.Navigate(ctx, cfg.LoginURL); err != nil {
		if !errors.Is(err, ErrTimeout) && !errors.Is(err, ErrNavigation) {
			err = fmt.Errorf("%w: %w", ErrNavigation, err)
		}
		return w.fail("navigate", err)
	}
	w.advance(StateNavigatedToLogin)

	if err := p.Fill(ctx, cfg.EmailLabel, cfg.Email); err != nil {
		return w.fail("fill "+cfg.EmailLabel, err)
	}

	if cfg.ToggleEnabled() {
		step := passwordToggle(cfg)
		w.emit(fmt.Sprintf("Checking for %q", step.Name))
		ran, err := step.Apply(ctx, p)
		if err != nil {
			return w.fail("toggle "+step.Name, err)
		}
		if ran {
			w.emit(fmt.Sprintf("%q clicked", step.Name))
		} else {
			w.emit(fmt.Sprintf("%q not present, continuing", step.Name))
		}
	}

	w.emit("Entering credentials")
	if err := p.Fill(ctx, cfg.PasswordLabel, cfg.Password); err != nil {
		return w.fail("fill "+cfg.PasswordLabel, err)
	}
	w.advance(StateCredentialsEntered)

	if err := p.WaitEnabled(ctx, RoleButton, cfg.SubmitName); err != nil {
		return w.fail("wait for "+cfg.SubmitName, err)
	}
	w.emit(fmt.Sprintf("Clicking %s", cfg.SubmitName))
	if err := p.Click(ctx, RoleButton, cfg.SubmitName); err != nil {
		return w.fail("click "+cfg.SubmitName, err)
	}
	w.advance(StateSubmittedForm)

	w.emit("Verifying successful login")
	if err := p.WaitURL(ctx, cfg.DashboardPattern); err != nil {
		return w.fail("wait for "+cfg.DashboardPattern, fmt.Errorf("%w: %w", ErrAssertion, err))
	}
	if err := p.WaitText(ctx, cfg.SuccessText); err != nil {
		return w.fail(fmt.Sprintf("find %q", cfg.SuccessText), fmt.Errorf("%w: %w", ErrAssertion, err))
	}
	w.advance(StateAuthenticatedVerified)
	w.emit("Dashboard reached and success text found")
	return nil
}
