package login

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// fakeSite is an in-memory login page. Waits that can never succeed block
// until their context ends, like a real browser would.
type fakeSite struct {
	mu sync.Mutex

	password      string
	toggleVisible bool
	successText   string

	// errs makes the named call fail immediately.
	errs          map[string]error
	screenshotErr error

	filled   map[string]string
	loggedIn bool
	calls    []string
}

func newFakeSite(password string) *fakeSite {
	return &fakeSite{
		password:    password,
		successText: "Welcome, Athlete!",
		errs:        map[string]error{},
		filled:      map[string]string{},
	}
}

func (f *fakeSite) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.errs[call]
}

func (f *fakeSite) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeSite) count(call string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == call {
			n++
		}
	}
	return n
}

func block(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func (f *fakeSite) Navigate(ctx context.Context, url string) error {
	return f.record("navigate")
}

func (f *fakeSite) Fill(ctx context.Context, label, value string) error {
	if err := f.record("fill:" + label); err != nil {
		return err
	}
	f.mu.Lock()
	f.filled[label] = value
	f.mu.Unlock()
	return nil
}

func (f *fakeSite) WaitLabelVisible(ctx context.Context, label string) error {
	return f.record("wait_label:" + label)
}

func (f *fakeSite) Visible(ctx context.Context, role, name string) (bool, error) {
	if err := f.record("visible:" + name); err != nil {
		return false, err
	}
	if name == "Use Password Option" {
		return f.toggleVisible, nil
	}
	return true, nil
}

func (f *fakeSite) WaitEnabled(ctx context.Context, role, name string) error {
	return f.record("wait_enabled:" + name)
}

func (f *fakeSite) Click(ctx context.Context, role, name string) error {
	if err := f.record("click:" + name); err != nil {
		return err
	}
	if name == "Sign In" {
		f.mu.Lock()
		f.loggedIn = f.filled["Password"] == f.password
		f.mu.Unlock()
	}
	return nil
}

func (f *fakeSite) WaitURL(ctx context.Context, pattern string) error {
	if err := f.record("wait_url"); err != nil {
		return err
	}
	f.mu.Lock()
	ok := f.loggedIn
	f.mu.Unlock()
	if ok {
		return nil
	}
	return block(ctx)
}

func (f *fakeSite) WaitText(ctx context.Context, text string) error {
	if err := f.record("wait_text"); err != nil {
		return err
	}
	if f.successText == text {
		return nil
	}
	return block(ctx)
}

func (f *fakeSite) Screenshot(ctx context.Context) ([]byte, error) {
	if err := f.record("screenshot"); err != nil {
		return nil, err
	}
	if f.screenshotErr != nil {
		return nil, f.screenshotErr
	}
	return []byte("\x89PNG fake"), nil
}

type fakeSession struct {
	page     Page
	closes   int
	closeErr error
}

func (s *fakeSession) Page() Page { return s.page }

func (s *fakeSession) Close() error {
	s.closes++
	return s.closeErr
}

type fakeLauncher struct {
	site      *fakeSite
	sessions  []*fakeSession
	launchErr error
	closeErr  error
}

func (l *fakeLauncher) Launch(ctx context.Context) (Session, error) {
	if l.launchErr != nil {
		return nil, l.launchErr
	}
	s := &fakeSession{page: l.site, closeErr: l.closeErr}
	l.sessions = append(l.sessions, s)
	return s, nil
}

func (l *fakeLauncher) closes() []int {
	out := make([]int, len(l.sessions))
	for i, s := range l.sessions {
		out[i] = s.closes
	}
	return out
}

var errBoom = errors.New("boom")

func callIndex(calls []string, call string) int {
	for i, c := range calls {
		if c == call {
			return i
		}
	}
	panic(fmt.Sprintf("call %q not recorded in %v", call, calls))
}
