package driver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/umputun/whipcheck/pkg/locator"
)

// Playwright drives a chromium page through playwright-go.
type Playwright struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	bctx    playwright.BrowserContext
	page    playwright.Page
	log     Logger
}

// NewPlaywright installs the playwright driver if needed, launches chromium and opens one page.
// the returned driver owns the browser process until Close.
func NewPlaywright(opts Options) (*Playwright, error) {
	if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
		return nil, fmt.Errorf("install playwright: %w", err)
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("run playwright: %w", err)
	}

	launch := playwright.BrowserTypeLaunchOptions{Headless: playwright.Bool(opts.Headless)}
	if opts.SlowMo > 0 {
		launch.SlowMo = playwright.Float(float64(opts.SlowMo / time.Millisecond))
	}

	browser, err := pw.Chromium.Launch(launch)
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	bctx, err := browser.NewContext()
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("create browser context: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("create page: %w", err)
	}
	page.SetDefaultTimeout(float64(opts.ActionTimeout / time.Millisecond))
	page.SetDefaultNavigationTimeout(float64(opts.ActionTimeout / time.Millisecond))

	opts.Log.Logf("[DEBUG] playwright chromium started, headless=%v", opts.Headless)
	return &Playwright{pw: pw, browser: browser, bctx: bctx, page: page, log: opts.Log}, nil
}

// Navigate loads url in the page and waits for the load event.
func (p *Playwright) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := p.page.Goto(url); err != nil {
		return p.wrap("navigate "+url, err)
	}
	return nil
}

// FindElements returns a handle per node matching loc, in document order.
func (p *Playwright) FindElements(ctx context.Context, loc locator.Locator) ([]Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !loc.Valid() {
		return nil, fmt.Errorf("find elements: invalid locator %s", loc)
	}
	all, err := p.page.Locator(loc.Selector()).All()
	if err != nil {
		return nil, p.wrap("find "+loc.String(), err)
	}
	res := make([]Element, 0, len(all))
	for _, l := range all {
		res = append(res, &playwrightElement{loc: l, owner: p})
	}
	return res, nil
}

// CurrentURL returns the page URL, including the hash route.
func (p *Playwright) CurrentURL(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if p.page.IsClosed() {
		return "", fault("current url", errors.New("page closed"))
	}
	return p.page.URL(), nil
}

// CurrentTitle returns document.title.
func (p *Playwright) CurrentTitle(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	title, err := p.page.Title()
	if err != nil {
		return "", p.wrap("title", err)
	}
	return title, nil
}

// Close shuts down the page, the browser and the playwright driver process.
func (p *Playwright) Close() error {
	var errs []error
	if err := p.bctx.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close browser context: %w", err))
	}
	if err := p.browser.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close browser: %w", err))
	}
	if err := p.pw.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("stop playwright: %w", err))
	}
	p.log.Logf("[DEBUG] playwright stopped")
	return errors.Join(errs...)
}

// wrap marks errors as faults when the page or browser is gone, otherwise just adds context.
func (p *Playwright) wrap(op string, err error) error {
	if errors.Is(err, playwright.ErrTargetClosed) || p.page.IsClosed() || !p.browser.IsConnected() {
		return fault(op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

type playwrightElement struct {
	loc   playwright.Locator
	owner *Playwright
}

// Text returns the rendered text with surrounding whitespace trimmed, like WebDriver's getText.
func (e *playwrightElement) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, err := e.loc.InnerText()
	if err != nil {
		return "", e.owner.wrap("element text", err)
	}
	return trimText(text), nil
}

func (e *playwrightElement) Attribute(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var (
		v   string
		err error
	)
	if name == "value" {
		v, err = e.loc.InputValue()
	} else {
		v, err = e.loc.GetAttribute(name)
	}
	if err != nil {
		return "", e.owner.wrap("element attribute "+name, err)
	}
	return v, nil
}

func (e *playwrightElement) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.loc.Click(); err != nil {
		return e.owner.wrap("click", err)
	}
	return nil
}

// SendKeys types text key by key so client-side input listeners fire as for a real user.
func (e *playwrightElement) SendKeys(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.loc.PressSequentially(text); err != nil {
		return e.owner.wrap("send keys", err)
	}
	return nil
}
