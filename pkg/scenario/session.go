// Package scenario holds the acceptance suite: the shared browser session, the ordered
// catalogue of scenarios, the runner applying per-scenario setup/teardown, and the run report.
package scenario

import (
	"github.com/umputun/whipcheck/pkg/auth"
	"github.com/umputun/whipcheck/pkg/driver"
	"github.com/umputun/whipcheck/pkg/expect"
	"github.com/umputun/whipcheck/pkg/poll"
	"github.com/umputun/whipcheck/pkg/whipbird"
)

// Session is the single browser session shared by all scenarios of a run.
// the caller creates it once and closes Driver once after the run.
type Session struct {
	Driver      driver.Driver
	StartURL    string
	DisplayName string // account display name shown in the footer when logged in
	Page        *expect.Page
	Auth        *auth.Workflow
}

// NewSession wires page assertions and the auth workflow over drv.
func NewSession(drv driver.Driver, startURL string, creds auth.Credentials, displayName string, poller poll.Poller) *Session {
	page := expect.New(drv, poller, expect.WithHeading(whipbird.Heading), expect.WithFooter(whipbird.FooterUser))
	return &Session{
		Driver:      drv,
		StartURL:    startURL,
		DisplayName: displayName,
		Page:        page,
		Auth:        auth.New(page, creds),
	}
}

// expectPage builds the expectation for p, with the footer checked only when footer is non-nil.
func (s *Session) expectPage(p whipbird.Page, footer *string) expect.PageExpectation {
	return expect.PageExpectation{URL: p.URL(s.StartURL), Title: p.Title, Heading: p.Heading, Footer: footer}
}
