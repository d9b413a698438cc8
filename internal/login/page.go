// Package login drives a browser through a site's sign-in form and
// verifies that an authenticated page was reached.
package login

import "context"

// Page is the set of browser capabilities the workflow needs. Elements
// are addressed by accessible label, or by role plus accessible name,
// never by document position. Every method must return once ctx is done.
type Page interface {
	// Navigate loads url and returns once the DOM content has loaded.
	Navigate(ctx context.Context, url string) error
	// Fill replaces the value of the field labelled label.
	Fill(ctx context.Context, label, value string) error
	// WaitLabelVisible waits for the field labelled label to be visible.
	WaitLabelVisible(ctx context.Context, label string) error
	// Visible reports whether a control is present and visible right now.
	// Absence is (false, nil), not an error.
	Visible(ctx context.Context, role, name string) (bool, error)
	WaitEnabled(ctx context.Context, role, name string) error
	Click(ctx context.Context, role, name string) error
	// WaitURL waits for the current URL to match a glob pattern.
	WaitURL(ctx context.Context, pattern string) error
	// WaitText waits for visible text containing text.
	WaitText(ctx context.Context, text string) error
	// Screenshot captures the current viewport as PNG.
	Screenshot(ctx context.Context) ([]byte, error)
}

// Session is one isolated browsing context.
type Session interface {
	Page() Page
	Close() error
}

// Launcher opens sessions. Each call must return a fresh context with its
// own cookies and storage.
type Launcher interface {
	Launch(ctx context.Context) (Session, error)
}

// RoleButton is the role used for the submit and toggle controls.
const RoleButton = "button"
