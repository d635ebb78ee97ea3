// Package locator describes how to find DOM nodes on a page.
package locator

import "fmt"

// Kind is the strategy used to find elements.
type Kind int

// Kind values. zero value is invalid so an unset Locator is detectable.
const (
	KindID Kind = iota + 1
	KindTagName
	KindClassName
)

// String returns the kind name as used in log lines.
func (k Kind) String() string {
	switch k {
	case KindID:
		return "id"
	case KindTagName:
		return "tag"
	case KindClassName:
		return "class"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Locator is an immutable description of a DOM query.
type Locator struct {
	kind  Kind
	value string
}

// ByID finds the element with the given id attribute.
func ByID(id string) Locator { return Locator{kind: KindID, value: id} }

// ByTagName finds elements by tag name, e.g. "h4".
func ByTagName(tag string) Locator { return Locator{kind: KindTagName, value: tag} }

// ByClassName finds elements carrying the given class token.
func ByClassName(class string) Locator { return Locator{kind: KindClassName, value: class} }

// Kind returns the locator strategy.
func (l Locator) Kind() Kind { return l.kind }

// Value returns the raw id, tag or class name.
func (l Locator) Value() string { return l.value }

// Valid reports whether the locator was built by one of the constructors with a non-empty value.
func (l Locator) Valid() bool {
	return l.kind >= KindID && l.kind <= KindClassName && l.value != ""
}

// Selector renders the locator as a CSS selector.
// ids and class names are escaped so values with dots or colons still match literally.
func (l Locator) Selector() string {
	switch l.kind {
	case KindID:
		return "#" + cssEscape(l.value)
	case KindTagName:
		return l.value
	case KindClassName:
		return "." + cssEscape(l.value)
	default:
		return ""
	}
}

// String returns a readable form like id=login-menu.
func (l Locator) String() string {
	return fmt.Sprintf("%s=%s", l.kind, l.value)
}

// cssEscape escapes characters that have meaning inside a CSS identifier.
// leading digits are escaped as code points per CSS syntax.
func cssEscape(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '-', c == '_', c >= 0x80:
			out = append(out, c)
		case c >= '0' && c <= '9':
			if i == 0 {
				out = append(out, fmt.Sprintf("\\%x ", c)...)
				continue
			}
			out = append(out, c)
		default:
			out = append(out, '\\', c)
		}
	}
	return string(out)
}
