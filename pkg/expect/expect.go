// Package expect provides "eventually the page looks like X" assertions on top of the poller.
// every check either returns nil once satisfied or an error describing expected vs observed.
package expect

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/umputun/whipcheck/pkg/driver"
	"github.com/umputun/whipcheck/pkg/locator"
	"github.com/umputun/whipcheck/pkg/poll"
)

// MismatchError reports a value that never matched within the poll deadline,
// or a snapshot check that failed. Err is the underlying *poll.TimeoutError, nil for snapshots.
type MismatchError struct {
	Subject  string
	Expected string
	Observed string
	Err      error
}

func (e *MismatchError) Error() string {
	msg := fmt.Sprintf("%s: expected %s, observed %s", e.Subject, e.Expected, e.Observed)
	if e.Err != nil {
		msg += " (" + e.Err.Error() + ")"
	}
	return msg
}

func (e *MismatchError) Unwrap() error { return e.Err }

// PageExpectation is what a page must look like after a navigation.
// empty URL, Title and Heading are not checked; Footer is checked only when non-nil
// because an empty footer is a meaningful state.
type PageExpectation struct {
	URL     string
	Title   string
	Heading string
	Footer  *string
}

// Footer builds the Footer field of PageExpectation.
func Footer(text string) *string { return &text }

// Page runs assertions against the current browser page.
type Page struct {
	drv     driver.Driver
	poller  poll.Poller
	heading locator.Locator
	footer  locator.Locator
}

// Option customizes Page.
type Option func(*Page)

// WithHeading sets where the page heading is read from, the first h4 by default.
func WithHeading(loc locator.Locator) Option { return func(p *Page) { p.heading = loc } }

// WithFooter sets where the footer text is read from. required for PageExpectation.Footer.
func WithFooter(loc locator.Locator) Option { return func(p *Page) { p.footer = loc } }

// New makes a Page using drv for reads and poller for timing.
func New(drv driver.Driver, poller poll.Poller, opts ...Option) *Page {
	p := &Page{drv: drv, poller: poll.New(poller.Timeout, poller.Interval), heading: locator.ByTagName("h4")}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Poller returns the timing used by all waits.
func (p *Page) Poller() poll.Poller { return p.poller }

// WaitElement polls until exactly one element matches loc and returns it.
func (p *Page) WaitElement(ctx context.Context, loc locator.Locator) (driver.Element, error) {
	observed := "never queried"
	el, err := poll.For(ctx, p.poller, func(ctx context.Context) (driver.Element, error) {
		els, err := p.drv.FindElements(ctx, loc)
		if err != nil {
			return nil, retryable(ctx, err)
		}
		observed = plural(len(els))
		if len(els) != 1 {
			return nil, poll.NotReady("element %s: found %s", loc, observed)
		}
		return els[0], nil
	})
	if err != nil {
		return nil, mismatch(err, "element "+loc.String(), "exactly 1 element", observed)
	}
	return el, nil
}

// ElementPresent waits until exactly one element matches loc.
func (p *Page) ElementPresent(ctx context.Context, loc locator.Locator) error {
	_, err := p.WaitElement(ctx, loc)
	return err
}

// ElementAbsent checks that nothing matches loc right now. it does not wait: absence can't be
// awaited reliably, so a pre-render snapshot may pass.
func (p *Page) ElementAbsent(ctx context.Context, loc locator.Locator) error {
	n, err := p.Count(ctx, loc)
	if err != nil {
		return err
	}
	if n != 0 {
		return &MismatchError{Subject: "element " + loc.String(), Expected: "no elements", Observed: plural(n)}
	}
	return nil
}

// Count returns how many elements match loc right now.
func (p *Page) Count(ctx context.Context, loc locator.Locator) (int, error) {
	els, err := p.drv.FindElements(ctx, loc)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", loc, err)
	}
	return len(els), nil
}

// TitleEquals waits until the document title is exactly expected.
func (p *Page) TitleEquals(ctx context.Context, expected string) error {
	return p.equals(ctx, "title", expected, p.drv.CurrentTitle)
}

// URLEquals waits until the current URL is exactly expected.
func (p *Page) URLEquals(ctx context.Context, expected string) error {
	return p.equals(ctx, "url", expected, p.drv.CurrentURL)
}

// TextEquals waits until the text of the first element matching loc is exactly expected.
// used for headings, popup messages, footer and record cells alike.
func (p *Page) TextEquals(ctx context.Context, loc locator.Locator, expected string) error {
	return p.equals(ctx, "text of "+loc.String(), expected, func(ctx context.Context) (string, error) {
		els, err := p.drv.FindElements(ctx, loc)
		if err != nil {
			return "", err
		}
		if len(els) == 0 {
			return "", poll.NotReady("element %s not found", loc)
		}
		return els[0].Text(ctx)
	})
}

// Matches checks every set field of exp in order: url, title, heading, footer.
func (p *Page) Matches(ctx context.Context, exp PageExpectation) error {
	if exp.URL != "" {
		if err := p.URLEquals(ctx, exp.URL); err != nil {
			return err
		}
	}
	if exp.Title != "" {
		if err := p.TitleEquals(ctx, exp.Title); err != nil {
			return err
		}
	}
	if exp.Heading != "" {
		if err := p.TextEquals(ctx, p.heading, exp.Heading); err != nil {
			return err
		}
	}
	if exp.Footer != nil {
		if !p.footer.Valid() {
			return errors.New("footer expectation set but no footer locator configured")
		}
		if err := p.TextEquals(ctx, p.footer, *exp.Footer); err != nil {
			return err
		}
	}
	return nil
}

// Click waits for loc to be present and clicks it.
func (p *Page) Click(ctx context.Context, loc locator.Locator) error {
	el, err := p.WaitElement(ctx, loc)
	if err != nil {
		return err
	}
	if err := el.Click(ctx); err != nil {
		return fmt.Errorf("click %s: %w", loc, err)
	}
	return nil
}

// Type waits for loc to be present, types text into it and checks the field's value ends with text.
// the value is not echoed in errors, fields may hold a password.
func (p *Page) Type(ctx context.Context, loc locator.Locator, text string) error {
	el, err := p.WaitElement(ctx, loc)
	if err != nil {
		return err
	}
	if err := el.SendKeys(ctx, text); err != nil {
		return fmt.Errorf("type into %s: %w", loc, err)
	}
	value, err := el.Attribute(ctx, "value")
	if err != nil {
		return fmt.Errorf("read back %s: %w", loc, err)
	}
	if !strings.HasSuffix(value, text) {
		return fmt.Errorf("type into %s: field holds %d characters, typed text of %d not found",
			loc, len([]rune(value)), len([]rune(text)))
	}
	return nil
}

// AllPresent runs ElementPresent for each locator in order.
func (p *Page) AllPresent(ctx context.Context, locs ...locator.Locator) error {
	for _, l := range locs {
		if err := p.ElementPresent(ctx, l); err != nil {
			return err
		}
	}
	return nil
}

// AllAbsent runs ElementAbsent for each locator in order.
func (p *Page) AllAbsent(ctx context.Context, locs ...locator.Locator) error {
	for _, l := range locs {
		if err := p.ElementAbsent(ctx, l); err != nil {
			return err
		}
	}
	return nil
}

// equals polls read until it returns expected. the last value read is reported on timeout.
func (p *Page) equals(ctx context.Context, subject, expected string, read func(context.Context) (string, error)) error {
	observed := "nothing"
	err := poll.Until(ctx, p.poller, func(ctx context.Context) (bool, string, error) {
		v, err := read(ctx)
		if err != nil {
			return false, "", retryable(ctx, err)
		}
		observed = fmt.Sprintf("%q", v)
		return v == expected, fmt.Sprintf("%s is %s", subject, observed), nil
	})
	if err != nil {
		return mismatch(err, subject, fmt.Sprintf("%q", expected), observed)
	}
	return nil
}

// retryable keeps faults and cancellation fatal and turns any other driver error into a retry,
// reads on half-rendered pages fail transiently.
func retryable(ctx context.Context, err error) error {
	if errors.Is(err, poll.ErrNotReady) || errors.Is(err, driver.ErrFault) || ctx.Err() != nil {
		return err
	}
	return poll.NotReady("%v", err)
}

// mismatch converts a poll timeout into a MismatchError and passes other errors through.
func mismatch(err error, subject, expected, observed string) error {
	if errors.Is(err, poll.ErrTimeout) {
		return &MismatchError{Subject: subject, Expected: expected, Observed: observed, Err: err}
	}
	return fmt.Errorf("%s: %w", subject, err)
}

func plural(n int) string {
	if n == 1 {
		return "1 element"
	}
	return fmt.Sprintf("%d elements", n)
}
