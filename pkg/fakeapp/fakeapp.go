// Package fakeapp is an in-memory stand-in for the whipbird application implementing
// driver.Driver. it renders the same DOM contract as the real app, including delayed
// client-side rendering, so workflows and scenarios can be tested without a browser.
package fakeapp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/umputun/whipcheck/pkg/driver"
	"github.com/umputun/whipcheck/pkg/locator"
	"github.com/umputun/whipcheck/pkg/whipbird"
)

// Record is one whipbird row.
type Record struct {
	Name string
	Age  string
}

// App is the fake application state plus the single page showing it.
type App struct {
	StartURL    string
	Email       string
	Password    string
	DisplayName string

	// RenderDelay is how many reads after a route change see an empty, untitled page.
	RenderDelay int

	// Pages maps hash routes to page identity. tests may alter entries to inject regressions.
	Pages map[string]whipbird.Page

	// Records persists across navigations the way the real backend database does.
	Records []Record

	mu       sync.Mutex
	route    string
	loggedIn bool
	popup    string
	inputs   map[string]string
	pending  int
	crashed  bool
	closed   bool
	clicks   []string
}

// New makes an App with one known account and no records.
func New(startURL, email, password, displayName string) *App {
	a := &App{
		StartURL: startURL, Email: email, Password: password, DisplayName: displayName,
		Pages:  map[string]whipbird.Page{},
		inputs: map[string]string{},
	}
	for _, p := range []whipbird.Page{whipbird.LogInPage, whipbird.AboutPage, whipbird.MyWhipbirdsPage, whipbird.LogOutPage} {
		a.Pages[p.Route] = p
	}
	return a
}

// Crash makes every further call fail with a driver fault.
func (a *App) Crash() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.crashed = true
}

// LoggedIn reports the server-side session state.
func (a *App) LoggedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loggedIn
}

// Closed reports whether Close was called.
func (a *App) Closed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closed
}

// Clicks returns ids (or class names) of clicked elements in order.
func (a *App) Clicks() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.clicks...)
}

// Navigate implements driver.Driver. the start URL routes to login or, with a live session, to my-whipbirds.
func (a *App) Navigate(ctx context.Context, url string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.check(ctx); err != nil {
		return err
	}
	route := ""
	if i := strings.Index(url, "#"); i >= 0 {
		route = url[i:]
	}
	if _, ok := a.Pages[route]; !ok {
		route = whipbird.LogInPage.Route
		if a.loggedIn {
			route = whipbird.MyWhipbirdsPage.Route
		}
	}
	a.popup = ""
	a.show(route)
	return nil
}

// FindElements implements driver.Driver.
func (a *App) FindElements(ctx context.Context, loc locator.Locator) ([]driver.Element, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.check(ctx); err != nil {
		return nil, err
	}
	if a.rendering() {
		return nil, nil
	}

	var res []driver.Element
	for _, e := range a.dom() {
		if e.matches(loc) {
			res = append(res, e)
		}
	}
	return res, nil
}

// CurrentURL implements driver.Driver.
func (a *App) CurrentURL(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.check(ctx); err != nil {
		return "", err
	}
	return a.Pages[a.route].URL(a.StartURL), nil
}

// CurrentTitle implements driver.Driver. the title is empty until the route has rendered.
func (a *App) CurrentTitle(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.check(ctx); err != nil {
		return "", err
	}
	if a.rendering() {
		return "", nil
	}
	return a.Pages[a.route].Title, nil
}

// Close implements driver.Driver.
func (a *App) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	return nil
}

func (a *App) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if a.crashed || a.closed {
		return fmt.Errorf("fake app: %w", driver.ErrFault)
	}
	return nil
}

// show switches route and restarts the render delay. caller holds the lock.
func (a *App) show(route string) {
	a.route = route
	a.pending = a.RenderDelay
}

// rendering consumes one pending read. caller holds the lock.
func (a *App) rendering() bool {
	if a.pending > 0 {
		a.pending--
		return true
	}
	return false
}

// dom lists the elements rendered for the current state. caller holds the lock.
func (a *App) dom() []*element {
	els := []*element{{app: a, tag: "h4", text: a.Pages[a.route].Heading}}

	footer := ""
	if a.loggedIn {
		footer = a.DisplayName
	}
	els = append(els, &element{app: a, id: whipbird.FooterUser.Value(), text: footer})

	if a.loggedIn {
		els = append(els,
			&element{app: a, id: whipbird.LogOutMenu.Value(), text: "Log out"},
			&element{app: a, id: whipbird.MyWhipbirdsMenu.Value(), text: "My whipbirds"})
	} else {
		els = append(els,
			&element{app: a, id: whipbird.LogInMenu.Value(), text: "Log in"},
			&element{app: a, id: whipbird.AboutMenu.Value(), text: "About"})
	}

	if a.popup != "" {
		els = append(els, &element{app: a, id: whipbird.PopupMessage.Value(), text: a.popup})
	}

	switch a.route {
	case whipbird.LogInPage.Route:
		els = append(els,
			&element{app: a, id: whipbird.EmailInput.Value(), input: true},
			&element{app: a, id: whipbird.PasswordInput.Value(), input: true},
			&element{app: a, id: whipbird.LogInButton.Value(), text: "Log in"})
	case whipbird.LogOutPage.Route:
		els = append(els, &element{app: a, id: whipbird.LogOutButton.Value(), text: "Log out"})
	case whipbird.MyWhipbirdsPage.Route:
		if !a.loggedIn {
			break
		}
		els = append(els,
			&element{app: a, id: whipbird.NameInput.Value(), input: true},
			&element{app: a, id: whipbird.AgeInput.Value(), input: true},
			&element{app: a, id: whipbird.AddButton.Value(), text: "Add"})
		if len(a.Records) == 0 {
			els = append(els, &element{app: a, id: whipbird.NoWhipbirds.Value(), text: "No whipbirds"})
		}
		for i, r := range a.Records {
			els = append(els,
				&element{app: a, id: whipbird.RecordName(i).Value(), text: r.Name},
				&element{app: a, id: whipbird.RecordAge(i).Value(), text: r.Age},
				&element{app: a, class: whipbird.DeleteControl.Value(), row: i, text: "Delete"})
		}
	}
	return els
}

// click applies the effect of clicking e. caller holds the lock.
func (a *App) click(e *element) error {
	name := e.id
	if name == "" {
		name = e.class + "[" + strconv.Itoa(e.row) + "]"
	}
	a.clicks = append(a.clicks, name)

	switch {
	case e.id == whipbird.LogInMenu.Value():
		a.show(whipbird.LogInPage.Route)
	case e.id == whipbird.AboutMenu.Value():
		a.show(whipbird.AboutPage.Route)
	case e.id == whipbird.LogOutMenu.Value():
		a.show(whipbird.LogOutPage.Route)
	case e.id == whipbird.MyWhipbirdsMenu.Value():
		a.show(whipbird.MyWhipbirdsPage.Route)
	case e.id == whipbird.LogInButton.Value():
		if a.inputs[whipbird.EmailInput.Value()] == a.Email && a.inputs[whipbird.PasswordInput.Value()] == a.Password {
			a.loggedIn = true
			a.popup = ""
			a.show(whipbird.MyWhipbirdsPage.Route)
		} else {
			a.popup = whipbird.MsgLogInFailed
		}
		a.clearInputs()
	case e.id == whipbird.LogOutButton.Value():
		a.loggedIn = false
		a.popup = ""
		a.show(whipbird.LogInPage.Route)
	case e.id == whipbird.AddButton.Value():
		name := a.inputs[whipbird.NameInput.Value()]
		a.Records = append(a.Records, Record{Name: name, Age: a.inputs[whipbird.AgeInput.Value()]})
		a.popup = whipbird.MsgWhipbirdAdded(name)
		a.clearInputs()
	case e.class == whipbird.DeleteControl.Value():
		if e.row >= len(a.Records) {
			return errors.New("fake app: element is detached")
		}
		a.popup = "Whipbird deleted: " + a.Records[e.row].Name
		a.Records = append(a.Records[:e.row], a.Records[e.row+1:]...)
	}
	return nil
}

func (a *App) clearInputs() {
	a.inputs = map[string]string{}
}

type element struct {
	app   *App
	id    string
	class string
	tag   string
	text  string
	row   int
	input bool
}

func (e *element) matches(loc locator.Locator) bool {
	switch loc.Kind() {
	case locator.KindID:
		return e.id != "" && e.id == loc.Value()
	case locator.KindClassName:
		return e.class != "" && e.class == loc.Value()
	case locator.KindTagName:
		return e.tag != "" && e.tag == loc.Value()
	}
	return false
}

func (e *element) Text(ctx context.Context) (string, error) {
	e.app.mu.Lock()
	defer e.app.mu.Unlock()
	if err := e.app.check(ctx); err != nil {
		return "", err
	}
	if e.input {
		return "", nil
	}
	return e.text, nil
}

func (e *element) Attribute(ctx context.Context, name string) (string, error) {
	e.app.mu.Lock()
	defer e.app.mu.Unlock()
	if err := e.app.check(ctx); err != nil {
		return "", err
	}
	switch name {
	case "id":
		return e.id, nil
	case "class":
		return e.class, nil
	case "value":
		return e.app.inputs[e.id], nil
	}
	return "", nil
}

func (e *element) Click(ctx context.Context) error {
	e.app.mu.Lock()
	defer e.app.mu.Unlock()
	if err := e.app.check(ctx); err != nil {
		return err
	}
	return e.app.click(e)
}

func (e *element) SendKeys(ctx context.Context, text string) error {
	e.app.mu.Lock()
	defer e.app.mu.Unlock()
	if err := e.app.check(ctx); err != nil {
		return err
	}
	if !e.input {
		return fmt.Errorf("fake app: element %s is not an input", e.id)
	}
	e.app.inputs[e.id] += text
	return nil
}
