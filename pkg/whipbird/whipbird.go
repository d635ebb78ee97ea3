// Package whipbird holds the fixed DOM contract of the whipbird application under test:
// element ids, classes, routes, page titles and popup messages the suite relies on.
package whipbird

import (
	"strconv"
	"strings"

	"github.com/umputun/whipcheck/pkg/locator"
)

// menu entries. anonymous and authenticated sets are mutually exclusive on screen.
var (
	LogInMenu       = locator.ByID("login-menu")
	LogOutMenu      = locator.ByID("logout-menu")
	AboutMenu       = locator.ByID("about-menu")
	MyWhipbirdsMenu = locator.ByID("my-whipbirds-menu")
)

// login and logout forms.
var (
	EmailInput    = locator.ByID("email")
	PasswordInput = locator.ByID("password")
	LogInButton   = locator.ByID("login-button")
	LogOutButton  = locator.ByID("logout-button")
)

// page furniture.
var (
	PopupMessage = locator.ByID("popup-message")
	Heading      = locator.ByTagName("h4")
	FooterUser   = locator.ByID("footer-user")
)

// whipbird list and add form.
var (
	NameInput     = locator.ByID("whipbird-name")
	AgeInput      = locator.ByID("whipbird-age")
	AddButton     = locator.ByID("add-whipbird-button")
	NoWhipbirds   = locator.ByID("no-whipbirds")
	DeleteControl = locator.ByClassName("delete-whipbird")
)

// AnonymousMenus are shown only when logged out.
var AnonymousMenus = []locator.Locator{LogInMenu, AboutMenu}

// AuthenticatedMenus are shown only when logged in.
var AuthenticatedMenus = []locator.Locator{LogOutMenu, MyWhipbirdsMenu}

// Page describes the fixed identity of one routed page.
type Page struct {
	Route   string // hash route appended to the start URL
	Title   string
	Heading string
}

// known pages
var (
	LogInPage       = Page{Route: "#!/login", Title: "whipbird: log in", Heading: "Log in"}
	AboutPage       = Page{Route: "#!/about", Title: "whipbird: about", Heading: "About this app"}
	MyWhipbirdsPage = Page{Route: "#!/my-whipbirds", Title: "whipbird: my whipbirds"} // heading text is not fixed
	LogOutPage      = Page{Route: "#!/logout", Title: "whipbird: log out", Heading: "Log out"}
)

// URL joins the start URL and the page route, tolerating a missing trailing slash.
func (p Page) URL(startURL string) string {
	if !strings.HasSuffix(startURL, "/") {
		startURL += "/"
	}
	return startURL + p.Route
}

// popup messages
const (
	MsgLogInFailed = "Username or password incorrect"
)

// MsgWhipbirdAdded is the popup shown after a whipbird was created.
func MsgWhipbirdAdded(name string) string { return "Whipbird added: " + name }

// RecordName locates the name cell of the row at position i (0 is the first row).
func RecordName(i int) locator.Locator { return locator.ByID("whipbird-name-" + strconv.Itoa(i)) }

// RecordAge locates the age cell of the row at position i.
func RecordAge(i int) locator.Locator { return locator.ByID("whipbird-age-" + strconv.Itoa(i)) }
