package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/whipcheck/pkg/driver"
	"github.com/umputun/whipcheck/pkg/expect"
	"github.com/umputun/whipcheck/pkg/fakeapp"
	"github.com/umputun/whipcheck/pkg/poll"
	"github.com/umputun/whipcheck/pkg/whipbird"
)

const startURL = "http://localhost:8080/"

var creds = Credentials{Email: "user@example.com", Password: "secret"}

type warnLog struct{ warnings []string }

func (l *warnLog) Warn(format string, args ...any) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

func setup(t *testing.T) (*fakeapp.App, *expect.Page, *Workflow) {
	t.Helper()
	app := fakeapp.New(startURL, creds.Email, creds.Password, "Test User")
	app.RenderDelay = 2
	require.NoError(t, app.Navigate(context.Background(), startURL))
	page := expect.New(app, poll.Poller{Timeout: 500 * time.Millisecond, Interval: 2 * time.Millisecond},
		expect.WithFooter(whipbird.FooterUser))
	return app, page, New(page, creds)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "anonymous", Anonymous.String())
	assert.Equal(t, "authenticated", Authenticated.String())
}

func TestCredentials_Invalid(t *testing.T) {
	inv := creds.Invalid()
	assert.Equal(t, "user@example.com.nothing", inv.Email)
	assert.Equal(t, "secret-invalid", inv.Password)
	assert.NotEqual(t, creds, inv)
}

func TestWorkflow_CurrentState(t *testing.T) {
	ctx := context.Background()
	app, _, w := setup(t)

	st, err := w.CurrentState(ctx)
	require.NoError(t, err)
	assert.Equal(t, Anonymous, st)

	require.NoError(t, w.LogIn(ctx, true))
	st, err = w.CurrentState(ctx)
	require.NoError(t, err)
	assert.Equal(t, Authenticated, st)

	app.Crash()
	_, err = w.CurrentState(ctx)
	require.ErrorIs(t, err, driver.ErrFault)
}

func TestWorkflow_LogIn(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials land on my whipbirds", func(t *testing.T) {
		app, page, w := setup(t)
		require.NoError(t, w.LogIn(ctx, true))
		assert.True(t, app.LoggedIn())
		require.NoError(t, page.Matches(ctx, expect.PageExpectation{
			URL:     whipbird.MyWhipbirdsPage.URL(startURL),
			Title:   whipbird.MyWhipbirdsPage.Title,
			Heading: whipbird.MyWhipbirdsPage.Heading,
			Footer:  expect.Footer("Test User"),
		}))
		assert.Equal(t, []string{"login-menu", "login-button"}, app.Clicks())
	})

	t.Run("invalid credentials stay anonymous with popup", func(t *testing.T) {
		app, page, w := setup(t)
		require.NoError(t, w.LogIn(ctx, false))
		assert.False(t, app.LoggedIn())
		require.NoError(t, page.TextEquals(ctx, whipbird.PopupMessage, whipbird.MsgLogInFailed))
		require.NoError(t, page.TitleEquals(ctx, whipbird.LogInPage.Title))
	})

	t.Run("no-op when already authenticated", func(t *testing.T) {
		app, _, w := setup(t)
		require.NoError(t, w.LogIn(ctx, true))
		require.NoError(t, w.LogIn(ctx, true))
		assert.Len(t, app.Clicks(), 2, "second login must not click anything")
	})

	t.Run("wrong account never reaches landing page", func(t *testing.T) {
		app, _, _ := setup(t)
		page := expect.New(app, poll.Poller{Timeout: 100 * time.Millisecond, Interval: 2 * time.Millisecond})
		w := New(page, Credentials{Email: "other@example.com", Password: "nope"})
		err := w.LogIn(ctx, true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "landing page not reached")
		require.ErrorIs(t, err, poll.ErrTimeout)
	})
}

func TestWorkflow_LogOut(t *testing.T) {
	ctx := context.Background()

	t.Run("logs out from authenticated", func(t *testing.T) {
		app, page, w := setup(t)
		require.NoError(t, w.LogIn(ctx, true))
		require.NoError(t, w.LogOut(ctx))
		assert.False(t, app.LoggedIn())
		require.NoError(t, page.ElementPresent(ctx, whipbird.LogInMenu))
		require.NoError(t, page.TitleEquals(ctx, whipbird.LogInPage.Title))
	})

	t.Run("idempotent when anonymous", func(t *testing.T) {
		app, _, w := setup(t)
		require.NoError(t, w.LogOut(ctx))
		require.NoError(t, w.LogOut(ctx))
		assert.Empty(t, app.Clicks())
	})
}

func TestWorkflow_ForceLogOut(t *testing.T) {
	ctx := context.Background()

	t.Run("quiet on success", func(t *testing.T) {
		app, _, w := setup(t)
		require.NoError(t, w.LogIn(ctx, true))
		log := &warnLog{}
		w.ForceLogOut(ctx, log)
		assert.Empty(t, log.warnings)
		assert.False(t, app.LoggedIn())
	})

	t.Run("failure is logged, not returned", func(t *testing.T) {
		app, _, w := setup(t)
		app.Crash()
		log := &warnLog{}
		w.ForceLogOut(ctx, log)
		require.Len(t, log.warnings, 1)
		assert.Contains(t, log.warnings[0], "teardown logout failed")
	})
}

func TestWorkflow_OpenLogOutPage(t *testing.T) {
	ctx := context.Background()
	app, page, w := setup(t)
	require.NoError(t, w.LogIn(ctx, true))
	require.NoError(t, w.OpenLogOutPage(ctx))
	require.NoError(t, page.Matches(ctx, expect.PageExpectation{
		URL:     whipbird.LogOutPage.URL(startURL),
		Title:   whipbird.LogOutPage.Title,
		Heading: whipbird.LogOutPage.Heading,
	}))
	require.NoError(t, page.ElementPresent(ctx, whipbird.LogOutButton))
	assert.True(t, app.LoggedIn(), "opening the page alone must not log out")
}
