// Package auth implements the two state-changing flows of the suite: logging in and logging out.
// the authentication state is never assumed from a click, it is read back from the page.
package auth

import (
	"context"
	"fmt"

	"github.com/umputun/whipcheck/pkg/expect"
	"github.com/umputun/whipcheck/pkg/poll"
	"github.com/umputun/whipcheck/pkg/whipbird"
)

// State is the authentication regime observed on the page.
type State int

// states
const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Credentials is an email/password pair.
type Credentials struct {
	Email    string
	Password string
}

// Invalid derives a deliberately wrong pair from valid credentials.
func (c Credentials) Invalid() Credentials {
	return Credentials{Email: c.Email + ".nothing", Password: c.Password + "-invalid"}
}

// Logger is the warning sink used by ForceLogOut.
type Logger interface {
	Warn(format string, args ...any)
}

// Workflow drives login/logout through the page.
type Workflow struct {
	page  *expect.Page
	creds Credentials
}

// New makes a Workflow. creds must be the valid account; the invalid pair is derived from it.
func New(page *expect.Page, creds Credentials) *Workflow {
	return &Workflow{page: page, creds: creds}
}

// CurrentState waits until the menu bar has rendered one of the two regimes and reports it:
// Authenticated when the logout menu entry is shown, Anonymous when the login entry is.
func (w *Workflow) CurrentState(ctx context.Context) (State, error) {
	state, err := poll.For(ctx, w.page.Poller(), func(ctx context.Context) (State, error) {
		out, err := w.page.Count(ctx, whipbird.LogOutMenu)
		if err != nil {
			return Anonymous, err
		}
		if out > 0 {
			return Authenticated, nil
		}
		in, err := w.page.Count(ctx, whipbird.LogInMenu)
		if err != nil {
			return Anonymous, err
		}
		if in > 0 {
			return Anonymous, nil
		}
		return Anonymous, poll.NotReady("menu bar not rendered")
	})
	if err != nil {
		return Anonymous, fmt.Errorf("read auth state: %w", err)
	}
	return state, nil
}

// LogIn submits the login form with the valid or the derived invalid credentials.
// with valid credentials it returns once the post-login page title is observed; with invalid ones
// it returns right after submit and the caller asserts the error state.
// it is a no-op when already authenticated.
func (w *Workflow) LogIn(ctx context.Context, valid bool) error {
	state, err := w.CurrentState(ctx)
	if err != nil {
		return fmt.Errorf("log in: %w", err)
	}
	if state == Authenticated {
		return nil
	}

	creds := w.creds
	if !valid {
		creds = creds.Invalid()
	}

	if err := w.page.Click(ctx, whipbird.LogInMenu); err != nil {
		return fmt.Errorf("log in: %w", err)
	}
	if err := w.page.Type(ctx, whipbird.EmailInput, creds.Email); err != nil {
		return fmt.Errorf("log in: %w", err)
	}
	if err := w.page.Type(ctx, whipbird.PasswordInput, creds.Password); err != nil {
		return fmt.Errorf("log in: %w", err)
	}
	if err := w.page.Click(ctx, whipbird.LogInButton); err != nil {
		return fmt.Errorf("log in: %w", err)
	}

	if !valid {
		return nil
	}
	if err := w.page.TitleEquals(ctx, whipbird.MyWhipbirdsPage.Title); err != nil {
		return fmt.Errorf("log in: landing page not reached: %w", err)
	}
	return nil
}

// LogOut leaves the authenticated state via the logout menu and the confirmation button.
// it is a no-op when already anonymous, so it is safe to call after every scenario.
func (w *Workflow) LogOut(ctx context.Context) error {
	state, err := w.CurrentState(ctx)
	if err != nil {
		return fmt.Errorf("log out: %w", err)
	}
	if state == Anonymous {
		return nil
	}

	if err := w.page.Click(ctx, whipbird.LogOutMenu); err != nil {
		return fmt.Errorf("log out: %w", err)
	}
	if err := w.page.Click(ctx, whipbird.LogOutButton); err != nil {
		return fmt.Errorf("log out: %w", err)
	}
	return nil
}

// ForceLogOut is LogOut for teardown: failures are logged, never returned,
// so they can't mask the scenario's own result.
func (w *Workflow) ForceLogOut(ctx context.Context, log Logger) {
	if err := w.LogOut(ctx); err != nil {
		log.Warn("teardown logout failed: %v", err)
	}
}

// OpenLogOutPage clicks the logout menu entry without confirming, leaving the logout page shown.
func (w *Workflow) OpenLogOutPage(ctx context.Context) error {
	if err := w.page.Click(ctx, whipbird.LogOutMenu); err != nil {
		return fmt.Errorf("open logout page: %w", err)
	}
	return nil
}
