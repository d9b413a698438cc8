package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/rod/lib/utils"
	"github.com/gobwas/glob"

	"github.com/lolasanchezz/kudos/internal/login"
)

const (
	urlPollInterval = 100 * time.Millisecond
	urlPollMax      = time.Second
)

// Page adapts a rod page to login.Page. Every call is bound to the ctx it
// is given.
type Page struct {
	page *rod.Page
}

var _ login.Page = (*Page)(nil)

func (p *Page) at(ctx context.Context) *rod.Page {
	return p.page.Context(ctx)
}

func (p *Page) Navigate(ctx context.Context, url string) error {
	pg := p.at(ctx)
	wait := pg.WaitNavigation(proto.PageLifecycleEventNameDOMContentLoaded)
	if err := pg.Navigate(url); err != nil {
		return fmt.Errorf("%w: %s: %w", login.ErrNavigation, url, err)
	}
	wait()
	return ctx.Err()
}

func (p *Page) byLabel(ctx context.Context, label string) (*rod.Element, error) {
	el, err := p.at(ctx).ElementByJS(rod.Eval(findByLabelJS, label))
	if err != nil {
		return nil, fmt.Errorf("field labelled %q: %w", label, err)
	}
	return el, nil
}

func (p *Page) byRole(ctx context.Context, role, name string) (*rod.Element, error) {
	el, err := p.at(ctx).ElementByJS(rod.Eval(findByRoleJS, roleSelector(role), name))
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", role, name, err)
	}
	return el, nil
}

func (p *Page) Fill(ctx context.Context, label, value string) error {
	el, err := p.byLabel(ctx, label)
	if err != nil {
		return err
	}
	if err := el.SelectAllText(); err != nil {
		return fmt.Errorf("select %q: %w", label, err)
	}
	if err := el.Input(value); err != nil {
		return fmt.Errorf("type into %q: %w", label, err)
	}
	return nil
}

func (p *Page) WaitLabelVisible(ctx context.Context, label string) error {
	el, err := p.byLabel(ctx, label)
	if err != nil {
		return err
	}
	return el.WaitVisible()
}

func (p *Page) Visible(ctx context.Context, role, name string) (bool, error) {
	res, err := p.at(ctx).Eval(isVisibleJS, roleSelector(role), name)
	if err != nil {
		return false, fmt.Errorf("check %s %q: %w", role, name, err)
	}
	return res.Value.Bool(), nil
}

func (p *Page) WaitEnabled(ctx context.Context, role, name string) error {
	el, err := p.byRole(ctx, role, name)
	if err != nil {
		return err
	}
	return el.WaitEnabled()
}

func (p *Page) Click(ctx context.Context, role, name string) error {
	el, err := p.byRole(ctx, role, name)
	if err != nil {
		return err
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click %s %q: %w", role, name, err)
	}
	return nil
}

func (p *Page) WaitURL(ctx context.Context, pattern string) error {
	g, err := compileURLPattern(pattern)
	if err != nil {
		return err
	}
	pg := p.at(ctx)
	var last string
	err = utils.Retry(ctx, utils.BackoffSleeper(urlPollInterval, urlPollMax, nil), func() (bool, error) {
		info, err := pg.Info()
		if err != nil {
			return true, err
		}
		last = info.URL
		return g.Match(last), nil
	})
	if err != nil {
		return fmt.Errorf("url %s never matched %s: %w", last, pattern, err)
	}
	return nil
}

func (p *Page) WaitText(ctx context.Context, text string) error {
	el, err := p.at(ctx).ElementByJS(rod.Eval(findTextJS, text))
	if err != nil {
		return fmt.Errorf("text %q: %w", text, err)
	}
	return el.WaitVisible()
}

func (p *Page) Screenshot(ctx context.Context) ([]byte, error) {
	return p.at(ctx).Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
}

// compileURLPattern compiles a glob such as "**/dashboard" that must match
// the whole URL.
func compileURLPattern(pattern string) (glob.Glob, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("bad url pattern %q: %w", pattern, err)
	}
	return g, nil
}

func roleSelector(role string) string {
	switch role {
	case login.RoleButton:
		return `button, [role="button"], input[type="submit"], input[type="button"]`
	case "link":
		return `a[href], [role="link"]`
	default:
		return fmt.Sprintf(`[role=%q]`, role)
	}
}
