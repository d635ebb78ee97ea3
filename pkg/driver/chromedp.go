package driver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"

	"github.com/umputun/whipcheck/pkg/locator"
)

// Chromedp drives a chrome tab through the DevTools protocol.
type Chromedp struct {
	browserCtx    context.Context
	cancelAlloc   context.CancelFunc
	cancelBrowser context.CancelFunc
	actionTimeout time.Duration
	log           Logger
}

// NewChromedp starts a chrome subprocess and opens one tab.
// parent only scopes start-up; the browser lives until Close.
func NewChromedp(parent context.Context, opts Options) (*Chromedp, error) {
	allocOpts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if !opts.Headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false), chromedp.Flag("hide-scrollbars", false))
	}
	if runtime.GOOS == "linux" {
		// inside CI containers chrome refuses to start with the sandbox enabled
		allocOpts = append(allocOpts, chromedp.NoSandbox)
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...any) { opts.Log.Logf("[DEBUG] chromedp: "+format, args...) }),
		chromedp.WithErrorf(func(format string, args ...any) { opts.Log.Logf("[WARN] chromedp: "+format, args...) }),
	)

	d := &Chromedp{
		browserCtx:    browserCtx,
		cancelAlloc:   cancelAlloc,
		cancelBrowser: cancelBrowser,
		actionTimeout: opts.ActionTimeout,
		log:           opts.Log,
	}

	// the first Run starts the browser; no timeout here or the browser dies with it
	if err := parent.Err(); err != nil {
		d.cancel()
		return nil, err
	}
	if err := chromedp.Run(browserCtx); err != nil {
		d.cancel()
		return nil, fmt.Errorf("start chrome: %w", err)
	}

	opts.Log.Logf("[DEBUG] chromedp chrome started, headless=%v", opts.Headless)
	return d, nil
}

// Navigate loads url and waits for the document to be ready.
func (d *Chromedp) Navigate(ctx context.Context, url string) error {
	return d.run(ctx, "navigate "+url, chromedp.Navigate(url))
}

// FindElements queries all nodes matching loc without waiting for any to appear.
func (d *Chromedp) FindElements(ctx context.Context, loc locator.Locator) ([]Element, error) {
	if !loc.Valid() {
		return nil, fmt.Errorf("find elements: invalid locator %s", loc)
	}
	var nodes []*cdp.Node
	if err := d.run(ctx, "find "+loc.String(), chromedp.Nodes(loc.Selector(), &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0))); err != nil {
		return nil, err
	}
	res := make([]Element, 0, len(nodes))
	for _, n := range nodes {
		res = append(res, &chromedpElement{node: n, owner: d})
	}
	return res, nil
}

func (d *Chromedp) CurrentURL(ctx context.Context) (string, error) {
	var url string
	if err := d.run(ctx, "current url", chromedp.Location(&url)); err != nil {
		return "", err
	}
	return url, nil
}

func (d *Chromedp) CurrentTitle(ctx context.Context) (string, error) {
	var title string
	if err := d.run(ctx, "title", chromedp.Title(&title)); err != nil {
		return "", err
	}
	return title, nil
}

// Close stops the browser and the allocator.
func (d *Chromedp) Close() error {
	err := chromedp.Cancel(d.browserCtx)
	d.cancel()
	d.log.Logf("[DEBUG] chromedp stopped")
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("close chrome: %w", err)
	}
	return nil
}

func (d *Chromedp) cancel() {
	d.cancelBrowser()
	d.cancelAlloc()
}

// run executes actions bounded by the action timeout and by the caller's ctx.
// a dead browser context means the session is gone and is reported as a fault.
func (d *Chromedp) run(ctx context.Context, op string, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := d.browserCtx.Err(); err != nil {
		return fault(op, err)
	}

	runCtx, cancel := context.WithTimeout(d.browserCtx, d.actionTimeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(runCtx, actions...)
	switch {
	case err == nil:
		return nil
	case d.browserCtx.Err() != nil, errors.Is(err, chromedp.ErrChannelClosed):
		return fault(op, err)
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

type chromedpElement struct {
	node  *cdp.Node
	owner *Chromedp
}

func (e *chromedpElement) ids() []cdp.NodeID { return []cdp.NodeID{e.node.NodeID} }

func (e *chromedpElement) Text(ctx context.Context) (string, error) {
	var text string
	if err := e.owner.run(ctx, "element text", chromedp.Text(e.ids(), &text, chromedp.ByNodeID)); err != nil {
		return "", err
	}
	return trimText(text), nil
}

func (e *chromedpElement) Attribute(ctx context.Context, name string) (string, error) {
	var (
		value string
		ok    bool
	)
	action := chromedp.AttributeValue(e.ids(), name, &value, &ok, chromedp.ByNodeID)
	if name == "value" {
		action = chromedp.Value(e.ids(), &value, chromedp.ByNodeID)
	}
	if err := e.owner.run(ctx, "element attribute "+name, action); err != nil {
		return "", err
	}
	return value, nil
}

func (e *chromedpElement) Click(ctx context.Context) error {
	return e.owner.run(ctx, "click", chromedp.MouseClickNode(e.node))
}

func (e *chromedpElement) SendKeys(ctx context.Context, text string) error {
	return e.owner.run(ctx, "send keys", chromedp.SendKeys(e.ids(), text, chromedp.ByNodeID))
}

// trimText strips the surrounding whitespace browsers keep in rendered text.
func trimText(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\u00a0", " "))
}
