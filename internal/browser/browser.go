// Package browser implements the login capabilities on top of go-rod.
package browser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"

	"github.com/lolasanchezz/kudos/internal/login"
)

const closeTimeout = 10 * time.Second

// Options controls how the browser is started.
type Options struct {
	Headless bool
	Logger   *slog.Logger

	// Bin is an explicit Chromium binary. Empty lets rod find or download one.
	Bin string

	// NoSandbox disables the Chromium sandbox, which root and most
	// containers need.
	NoSandbox bool

	// ControlURL connects to an already running browser instead of
	// launching one.
	ControlURL string
}

// Launcher starts a browser per session.
type Launcher struct {
	opts Options
}

func NewLauncher(opts Options) *Launcher {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Launcher{opts: opts}
}

// Launch opens an incognito context and a stealth page in it.
func (l *Launcher) Launch(ctx context.Context) (login.Session, error) {
	s := &session{logger: l.opts.Logger}

	controlURL := l.opts.ControlURL
	if controlURL == "" {
		s.proc = launcher.New().Context(ctx).Headless(l.opts.Headless)
		if l.opts.NoSandbox {
			s.proc = s.proc.NoSandbox(true)
		}
		if l.opts.Bin != "" {
			s.proc = s.proc.Bin(l.opts.Bin)
		}
		u, err := s.proc.Launch()
		if err != nil {
			return nil, fmt.Errorf("launch browser: %w", err)
		}
		controlURL = u
	}
	l.opts.Logger.Debug("connecting to browser", "url", controlURL, "launched", s.proc != nil)

	s.root = rod.New().ControlURL(controlURL).Context(ctx)
	if err := s.root.Connect(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	s.connected = true

	incognito, err := s.root.Incognito()
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("open incognito context: %w", err)
	}
	s.incognito = incognito

	page, err := stealth.Page(incognito)
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("open page: %w", err)
	}
	s.page = &Page{page: page}
	return s, nil
}

type session struct {
	logger    *slog.Logger
	proc      *launcher.Launcher
	root      *rod.Browser
	incognito *rod.Browser
	page      *Page
	connected bool
	closed    bool
}

func (s *session) Page() login.Page { return s.page }

// Close disposes the incognito context and, when the browser was launched
// by us, the browser process. Calling it twice is a no-op.
func (s *session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	// The run context may already be cancelled; teardown gets its own.
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	var errs []error
	if s.incognito != nil {
		if err := s.incognito.Context(ctx).Close(); err != nil {
			errs = append(errs, fmt.Errorf("close incognito context: %w", err))
		}
	}
	if s.proc != nil {
		if s.connected {
			if err := s.root.Context(ctx).Close(); err != nil {
				errs = append(errs, fmt.Errorf("close browser: %w", err))
			}
		}
		s.proc.Kill()
		s.proc.Cleanup()
	}
	s.logger.Debug("browser session closed", "errors", len(errs))
	return errors.Join(errs...)
}
