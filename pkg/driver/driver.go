// Package driver wraps a browser-automation engine behind a small synchronous capability
// used by the assertion engine. Two engines are provided, playwright (default) and chromedp.
package driver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/umputun/whipcheck/pkg/locator"
)

//go:generate moq -out mocks/driver.go -pkg mocks -skip-ensure -fmt goimports . Driver
//go:generate moq -out mocks/element.go -pkg mocks -skip-ensure -fmt goimports . Element

// ErrFault marks errors after which the browser session is unusable (crashed, closed, disconnected).
// callers abort the whole run when errors.Is(err, ErrFault).
var ErrFault = errors.New("browser driver fault")

// Engine names a supported browser-automation backend.
type Engine string

// supported engines
const (
	EnginePlaywright Engine = "playwright"
	EngineChromedp   Engine = "chromedp"
)

// Driver is the browser capability consumed by the harness.
// FindElements returns an empty slice (not an error) when nothing matches.
type Driver interface {
	Navigate(ctx context.Context, url string) error
	FindElements(ctx context.Context, loc locator.Locator) ([]Element, error)
	CurrentURL(ctx context.Context) (string, error)
	CurrentTitle(ctx context.Context) (string, error)
	Close() error
}

// Element is a handle to one DOM node returned by FindElements.
// handles may go stale when the page re-renders; re-query instead of caching them.
type Element interface {
	Text(ctx context.Context) (string, error)
	// Attribute returns the named attribute; "value" is the live value of a form field.
	Attribute(ctx context.Context, name string) (string, error)
	Click(ctx context.Context) error
	SendKeys(ctx context.Context, text string) error
}

// Logger is the minimal logging sink the engines report to.
type Logger interface {
	Logf(format string, args ...any)
}

// Options configures engine start-up.
type Options struct {
	Headless      bool
	SlowMo        time.Duration // delay between browser operations, useful with Headless=false
	ActionTimeout time.Duration // upper bound for a single browser call
	Log           Logger
}

// New starts a browser with the requested engine and returns a ready Driver.
func New(ctx context.Context, engine Engine, opts Options) (Driver, error) {
	if opts.ActionTimeout <= 0 {
		opts.ActionTimeout = 10 * time.Second
	}
	if opts.Log == nil {
		opts.Log = nopLogger{}
	}

	switch engine {
	case EnginePlaywright, "":
		return NewPlaywright(opts)
	case EngineChromedp:
		return NewChromedp(ctx, opts)
	default:
		return nil, fmt.Errorf("unknown browser engine %q", engine)
	}
}

// ParseEngine validates an engine name from config or flags.
func ParseEngine(s string) (Engine, error) {
	switch e := Engine(s); e {
	case EnginePlaywright, EngineChromedp:
		return e, nil
	case "":
		return EnginePlaywright, nil
	default:
		return "", fmt.Errorf("unknown browser engine %q, expected %q or %q", s, EnginePlaywright, EngineChromedp)
	}
}

// fault wraps err so that errors.Is(result, ErrFault) holds.
func fault(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrFault, err)
}

type nopLogger struct{}

func (nopLogger) Logf(string, ...any) {}
