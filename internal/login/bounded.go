package login

import (
	"context"
	"time"
)

// boundedPage gives every call on the wrapped page its own deadline so
// the timeout budget is explicit instead of whatever the driver defaults to.
type boundedPage struct {
	p       Page
	timeout time.Duration
}

func bound(p Page, timeout time.Duration) Page {
	return &boundedPage{p: p, timeout: timeout}
}

func (b *boundedPage) with(ctx context.Context, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()
	return classify(fn(ctx))
}

func (b *boundedPage) Navigate(ctx context.Context, url string) error {
	return b.with(ctx, func(ctx context.Context) error { return b.p.Navigate(ctx, url) })
}

func (b *boundedPage) Fill(ctx context.Context, label, value string) error {
	return b.with(ctx, func(ctx context.Context) error { return b.p.Fill(ctx, label, value) })
}

func (b *boundedPage) WaitLabelVisible(ctx context.Context, label string) error {
	return b.with(ctx, func(ctx context.Context) error { return b.p.WaitLabelVisible(ctx, label) })
}

func (b *boundedPage) Visible(ctx context.Context, role, name string) (bool, error) {
	var ok bool
	err := b.with(ctx, func(ctx context.Context) error {
		var err error
		ok, err = b.p.Visible(ctx, role, name)
		return err
	})
	return ok, err
}

func (b *boundedPage) WaitEnabled(ctx context.Context, role, name string) error {
	return b.with(ctx, func(ctx context.Context) error { return b.p.WaitEnabled(ctx, role, name) })
}

func (b *boundedPage) Click(ctx context.Context, role, name string) error {
	return b.with(ctx, func(ctx context.Context) error { return b.p.Click(ctx, role, name) })
}

func (b *boundedPage) WaitURL(ctx context.Context, pattern string) error {
	return b.with(ctx, func(ctx context.Context) error { return b.p.WaitURL(ctx, pattern) })
}

func (b *boundedPage) WaitText(ctx context.Context, text string) error {
	return b.with(ctx, func(ctx context.Context) error { return b.p.WaitText(ctx, text) })
}

func (b *boundedPage) Screenshot(ctx context.Context) ([]byte, error) {
	var data []byte
	err := b.with(ctx, func(ctx context.Context) error {
		var err error
		data, err = b.p.Screenshot(ctx)
		return err
	})
	return data, err
}
