// Package poll bridges asynchronously rendered UI state to blocking test logic.
// a single generic primitive, For, repeatedly evaluates an extraction until it yields a value
// or the poller's deadline passes.
package poll

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// default timings, sub-second ticks are enough for client-side re-renders.
const (
	DefaultTimeout  = 5 * time.Second
	DefaultInterval = 100 * time.Millisecond
)

// ErrNotReady signals "not yet available, try again". extract functions wrap it via NotReady.
var ErrNotReady = errors.New("not ready")

// ErrTimeout is matched by every *TimeoutError.
var ErrTimeout = errors.New("poll timeout")

// NotReady returns a retryable error carrying the reason shown if the poll eventually times out.
func NotReady(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotReady, fmt.Sprintf(format, args...))
}

// TimeoutError is returned when the deadline passes before extract succeeded.
type TimeoutError struct {
	Timeout  time.Duration
	Attempts int
	Reason   string // last not-ready reason
	Cause    error  // error of an attempt cut off by the deadline, nil if it ended between attempts
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out after %v (%d attempts): %s", e.Timeout, e.Attempts, e.Reason)
}

// Unwrap exposes the cut-off attempt's error, so a driver fault stays detectable.
func (e *TimeoutError) Unwrap() error { return e.Cause }

// Is makes errors.Is(err, ErrTimeout) true for any TimeoutError.
func (e *TimeoutError) Is(target error) bool { return target == ErrTimeout }

// Poller holds the timing shared by all waits of one session.
type Poller struct {
	Timeout  time.Duration
	Interval time.Duration
}

// New makes a Poller, zero or negative values fall back to the defaults.
func New(timeout, interval time.Duration) Poller {
	return Poller{Timeout: timeout, Interval: interval}.normalized()
}

func (p Poller) normalized() Poller {
	if p.Timeout <= 0 {
		p.Timeout = DefaultTimeout
	}
	if p.Interval <= 0 {
		p.Interval = DefaultInterval
	}
	return p
}

// For invokes extract immediately and then every p.Interval until it returns a value,
// returns an error not wrapping ErrNotReady, or p.Timeout elapses.
// the deadline is absolute: extract gets a ctx expiring with it, so a slow read can't extend the wait.
// extract must be free of side effects other than the read it performs.
func For[T any](ctx context.Context, p Poller, extract func(ctx context.Context) (T, error)) (T, error) {
	p = p.normalized()

	var zero T
	deadline := time.Now().Add(p.Timeout)
	attempts := 0
	reason := "no attempt made"
	timeout := func(cause error) error {
		return &TimeoutError{Timeout: p.Timeout, Attempts: attempts, Reason: reason, Cause: cause}
	}

	pollCtx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		attempts++
		v, err := extract(pollCtx)
		switch {
		case err == nil:
			return v, nil
		case errors.Is(err, ErrNotReady):
			reason = notReadyReason(err)
		case ctx.Err() == nil && pollCtx.Err() != nil:
			// attempt cut off by the deadline
			if !errors.Is(err, context.DeadlineExceeded) {
				reason = err.Error()
			}
			return zero, timeout(err)
		default:
			return zero, err
		}

		if ctx.Err() != nil {
			return zero, interrupted(ctx, attempts, reason)
		}
		if !time.Now().Before(deadline) {
			return zero, timeout(nil)
		}
		select {
		case <-ctx.Done():
			return zero, interrupted(ctx, attempts, reason)
		case <-pollCtx.Done():
			return zero, timeout(nil)
		case <-ticker.C:
		}
	}
}

// Until is For for boolean conditions; cond returns false with a reason while not satisfied.
func Until(ctx context.Context, p Poller, cond func(ctx context.Context) (bool, string, error)) error {
	_, err := For(ctx, p, func(ctx context.Context) (struct{}, error) {
		ok, why, err := cond(ctx)
		if err != nil {
			return struct{}{}, err
		}
		if !ok {
			return struct{}{}, NotReady("%s", why)
		}
		return struct{}{}, nil
	})
	return err
}

func interrupted(ctx context.Context, attempts int, reason string) error {
	return fmt.Errorf("poll interrupted after %d attempts (%s): %w", attempts, reason, ctx.Err())
}

// notReadyReason strips the "not ready: " prefix added by NotReady.
func notReadyReason(err error) string {
	msg := err.Error()
	prefix := ErrNotReady.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}
