package scenario

import (
	"context"
	"fmt"
	"regexp"

	"github.com/umputun/whipcheck/pkg/expect"
	"github.com/umputun/whipcheck/pkg/poll"
	"github.com/umputun/whipcheck/pkg/whipbird"
)

// Scenario is one independent test case. Run starts on the freshly loaded start URL.
type Scenario struct {
	Name        string
	Description string
	Run         func(ctx context.Context, s *Session) error
}

// record used by the create scenarios
const (
	recordName = "Mavis"
	recordAge  = "10"
)

// Catalogue returns all scenarios in execution order.
func Catalogue() []Scenario {
	return []Scenario{
		{
			Name:        "not_logged_in/check_menus",
			Description: "anonymous menus are shown, authenticated ones are not",
			Run: func(ctx context.Context, s *Session) error {
				return anonymousMenus(ctx, s)
			},
		},
		{
			Name:        "not_logged_in/check_current_page",
			Description: "start URL lands on the login page with an empty footer",
			Run: func(ctx context.Context, s *Session) error {
				return s.Page.Matches(ctx, s.expectPage(whipbird.LogInPage, expect.Footer("")))
			},
		},
		{
			Name:        "not_logged_in/click_about_menu",
			Description: "about menu opens the about page",
			Run: func(ctx context.Context, s *Session) error {
				if err := s.Page.Click(ctx, whipbird.AboutMenu); err != nil {
					return err
				}
				return s.Page.Matches(ctx, s.expectPage(whipbird.AboutPage, nil))
			},
		},
		{
			Name:        "not_logged_in/log_in_with_incorrect_credentials",
			Description: "invalid credentials keep the user on the login page with an error popup",
			Run: func(ctx context.Context, s *Session) error {
				if err := s.Auth.LogIn(ctx, false); err != nil {
					return err
				}
				if err := s.Page.TextEquals(ctx, whipbird.PopupMessage, whipbird.MsgLogInFailed); err != nil {
					return err
				}
				if err := s.Page.URLEquals(ctx, whipbird.LogInPage.URL(s.StartURL)); err != nil {
					return err
				}
				return anonymousMenus(ctx, s)
			},
		},
		{
			Name:        "logged_in/check_menus",
			Description: "authenticated menus are shown, anonymous ones are not",
			Run: func(ctx context.Context, s *Session) error {
				if err := s.Auth.LogIn(ctx, true); err != nil {
					return err
				}
				if err := s.Page.AllPresent(ctx, whipbird.AuthenticatedMenus...); err != nil {
					return err
				}
				return s.Page.AllAbsent(ctx, whipbird.AnonymousMenus...)
			},
		},
		{
			Name:        "logged_in/check_current_page",
			Description: "login lands on my whipbirds with the display name in the footer and authenticated menus",
			Run: func(ctx context.Context, s *Session) error {
				if err := s.Auth.LogIn(ctx, true); err != nil {
					return err
				}
				if err := s.Page.Matches(ctx, s.expectPage(whipbird.MyWhipbirdsPage, expect.Footer(s.DisplayName))); err != nil {
					return err
				}
				return s.Page.AllPresent(ctx, whipbird.AuthenticatedMenus...)
			},
		},
		{
			Name:        "logged_in/click_log_out_menu",
			Description: "logout menu opens the logout confirmation page",
			Run: func(ctx context.Context, s *Session) error {
				if err := s.Auth.LogIn(ctx, true); err != nil {
					return err
				}
				if err := s.Auth.OpenLogOutPage(ctx); err != nil {
					return err
				}
				if err := s.Page.Matches(ctx, s.expectPage(whipbird.LogOutPage, nil)); err != nil {
					return err
				}
				return s.Page.ElementPresent(ctx, whipbird.LogOutButton)
			},
		},
		{
			Name:        "logged_in/add_new_whipbird",
			Description: "a new whipbird is confirmed and listed first",
			Run: func(ctx context.Context, s *Session) error {
				if err := s.Auth.LogIn(ctx, true); err != nil {
					return err
				}
				if err := DeleteAllRecords(ctx, s); err != nil {
					return err
				}
				if err := AddRecord(ctx, s, recordName, recordAge); err != nil {
					return err
				}
				if err := s.Page.TextEquals(ctx, whipbird.PopupMessage, whipbird.MsgWhipbirdAdded(recordName)); err != nil {
					return err
				}
				if err := s.Page.TextEquals(ctx, whipbird.RecordName(0), recordName); err != nil {
					return err
				}
				return s.Page.TextEquals(ctx, whipbird.RecordAge(0), recordAge)
			},
		},
		{
			Name:        "logged_in/add_new_whipbird_then_delete_it",
			Description: "deleting the only whipbird brings back the empty list marker",
			Run: func(ctx context.Context, s *Session) error {
				if err := s.Auth.LogIn(ctx, true); err != nil {
					return err
				}
				if err := DeleteAllRecords(ctx, s); err != nil {
					return err
				}
				if err := AddRecord(ctx, s, recordName, recordAge); err != nil {
					return err
				}
				if err := s.Page.TextEquals(ctx, whipbird.RecordName(0), recordName); err != nil {
					return err
				}
				if err := DeleteAllRecords(ctx, s); err != nil {
					return err
				}
				if err := s.Page.ElementPresent(ctx, whipbird.NoWhipbirds); err != nil {
					return err
				}
				return s.Page.AllAbsent(ctx, whipbird.DeleteControl, whipbird.RecordName(0), whipbird.RecordAge(0))
			},
		},
	}
}

func anonymousMenus(ctx context.Context, s *Session) error {
	if err := s.Page.AllPresent(ctx, whipbird.AnonymousMenus...); err != nil {
		return err
	}
	return s.Page.AllAbsent(ctx, whipbird.AuthenticatedMenus...)
}

// DeleteAllRecords clicks the first rendered delete control until no rows are left.
// it first waits for the list to render (rows or the empty marker), then after each click waits
// for the row count to drop, so every step is bounded by the session's poll timeout.
func DeleteAllRecords(ctx context.Context, s *Session) error {
	rows, err := poll.For(ctx, s.Page.Poller(), func(ctx context.Context) (int, error) {
		n, err := s.Page.Count(ctx, whipbird.DeleteControl)
		if err != nil || n > 0 {
			return n, err
		}
		empty, err := s.Page.Count(ctx, whipbird.NoWhipbirds)
		if err != nil {
			return 0, err
		}
		if empty == 0 {
			return 0, poll.NotReady("whipbird list not rendered")
		}
		return 0, nil
	})
	if err != nil {
		return fmt.Errorf("delete all whipbirds: %w", err)
	}

	for rows > 0 {
		els, err := s.Driver.FindElements(ctx, whipbird.DeleteControl)
		if err != nil {
			return fmt.Errorf("delete all whipbirds: %w", err)
		}
		if len(els) == 0 {
			return nil
		}
		if err := els[0].Click(ctx); err != nil {
			return fmt.Errorf("delete all whipbirds: click %s: %w", whipbird.DeleteControl, err)
		}

		before := len(els)
		rows, err = poll.For(ctx, s.Page.Poller(), func(ctx context.Context) (int, error) {
			n, err := s.Page.Count(ctx, whipbird.DeleteControl)
			if err != nil {
				return 0, err
			}
			if n >= before {
				return 0, poll.NotReady("%d rows left", n)
			}
			return n, nil
		})
		if err != nil {
			return fmt.Errorf("delete all whipbirds: %w", err)
		}
	}
	return nil
}

// AddRecord fills the new whipbird form and submits it.
func AddRecord(ctx context.Context, s *Session, name, age string) error {
	if err := s.Page.Type(ctx, whipbird.NameInput, name); err != nil {
		return fmt.Errorf("add whipbird: %w", err)
	}
	if err := s.Page.Type(ctx, whipbird.AgeInput, age); err != nil {
		return fmt.Errorf("add whipbird: %w", err)
	}
	if err := s.Page.Click(ctx, whipbird.AddButton); err != nil {
		return fmt.Errorf("add whipbird: %w", err)
	}
	return nil
}

// Filter keeps scenarios whose name matches pattern, preserving order. empty pattern keeps all.
func Filter(scenarios []Scenario, pattern string) ([]Scenario, error) {
	if pattern == "" {
		return scenarios, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid scenario filter %q: %w", pattern, err)
	}
	var res []Scenario
	for _, sc := range scenarios {
		if re.MatchString(sc.Name) {
			res = append(res, sc)
		}
	}
	return res, nil
}
