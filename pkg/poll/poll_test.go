package poll

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fast = Poller{Timeout: 200 * time.Millisecond, Interval: 5 * time.Millisecond}

func TestFor_ImmediateSuccess(t *testing.T) {
	calls := 0
	v, err := For(context.Background(), fast, func(context.Context) (string, error) {
		calls++
		return "ready", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ready", v)
	assert.Equal(t, 1, calls)
}

func TestFor_EventualSuccess(t *testing.T) {
	calls := 0
	v, err := For(context.Background(), fast, func(context.Context) (int, error) {
		calls++
		if calls < 4 {
			return 0, NotReady("attempt %d", calls)
		}
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 4, calls)
}

func TestFor_TimeoutCarriesLastReason(t *testing.T) {
	calls := 0
	start := time.Now()
	_, err := For(context.Background(), fast, func(context.Context) (string, error) {
		calls++
		return "", NotReady("element id=popup not found, call %d", calls)
	})
	require.Error(t, err)
	assert.GreaterOrEqual(t, time.Since(start), fast.Timeout)

	var te *TimeoutError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, fast.Timeout, te.Timeout)
	assert.Equal(t, calls, te.Attempts)
	assert.Equal(t, fmt.Sprintf("element id=popup not found, call %d", calls), te.Reason)
	require.ErrorIs(t, err, ErrTimeout)
	assert.Contains(t, err.Error(), "timed out after 200ms")
}

func TestFor_DeadlineBoundsSlowAttempt(t *testing.T) {
	p := Poller{Timeout: 100 * time.Millisecond, Interval: 5 * time.Millisecond}

	t.Run("blocking read is cut off", func(t *testing.T) {
		calls := 0
		start := time.Now()
		_, err := For(context.Background(), p, func(ctx context.Context) (string, error) {
			calls++
			if calls == 1 {
				return "", NotReady("title is other")
			}
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			select {
			case <-ctx.Done():
				return "", fmt.Errorf("title: %w", ctx.Err())
			case <-time.After(2 * time.Second):
				return "late", nil
			}
		})
		assert.Less(t, time.Since(start), time.Second)

		var te *TimeoutError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, "title is other", te.Reason)
		assert.Equal(t, 2, te.Attempts)
		require.ErrorIs(t, err, ErrTimeout)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("cut-off error stays inspectable", func(t *testing.T) {
		gone := errors.New("browser gone")
		_, err := For(context.Background(), p, func(ctx context.Context) (string, error) {
			<-ctx.Done()
			return "", fmt.Errorf("read: %w", gone)
		})
		require.ErrorIs(t, err, ErrTimeout)
		require.ErrorIs(t, err, gone)
		assert.Contains(t, err.Error(), "read: browser gone")
	})

	t.Run("parent cancel is not a timeout", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		_, err := For(ctx, Poller{Timeout: 10 * time.Second, Interval: time.Millisecond},
			func(ctx context.Context) (string, error) {
				cancel()
				<-ctx.Done()
				return "", ctx.Err()
			})
		require.ErrorIs(t, err, context.Canceled)
		assert.NotErrorIs(t, err, ErrTimeout)
	})
}

func TestFor_FatalErrorStopsImmediately(t *testing.T) {
	boom := errors.New("session crashed")
	calls := 0
	_, err := For(context.Background(), fast, func(context.Context) (string, error) {
		calls++
		return "", boom
	})
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrTimeout)
	assert.Equal(t, 1, calls)
}

func TestFor_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := Poller{Timeout: 10 * time.Second, Interval: 5 * time.Millisecond}

	calls := 0
	_, err := For(ctx, p, func(context.Context) (string, error) {
		calls++
		if calls == 3 {
			cancel()
		}
		return "", NotReady("waiting")
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "waiting")
	assert.Equal(t, 3, calls)
}

func TestFor_ZeroPollerUsesDefaults(t *testing.T) {
	v, err := For(context.Background(), Poller{}, func(context.Context) (bool, error) { return true, nil })
	require.NoError(t, err)
	assert.True(t, v)

	p := New(0, -1)
	assert.Equal(t, DefaultTimeout, p.Timeout)
	assert.Equal(t, DefaultInterval, p.Interval)
}

func TestUntil(t *testing.T) {
	t.Run("satisfied", func(t *testing.T) {
		n := 0
		err := Until(context.Background(), fast, func(context.Context) (bool, string, error) {
			n++
			return n == 2, "title mismatch", nil
		})
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("times out", func(t *testing.T) {
		err := Until(context.Background(), fast, func(context.Context) (bool, string, error) {
			return false, "title mismatch", nil
		})
		var te *TimeoutError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, "title mismatch", te.Reason)
	})

	t.Run("error", func(t *testing.T) {
		boom := errors.New("boom")
		err := Until(context.Background(), fast, func(context.Context) (bool, string, error) {
			return false, "", boom
		})
		require.ErrorIs(t, err, boom)
	})
}

func TestNotReady(t *testing.T) {
	err := NotReady("found %d elements", 2)
	require.ErrorIs(t, err, ErrNotReady)
	assert.Equal(t, "not ready: found 2 elements", err.Error())
	assert.Equal(t, "found 2 elements", notReadyReason(err))
	assert.Equal(t, "plain", notReadyReason(errors.New("plain")))
}
