// Package render turns the markdown run report into terminal output.
package render

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// DefaultWidth is the word wrap width used when none is given.
const DefaultWidth = 100

// Options control report rendering.
type Options struct {
	NoColor bool // return markdown unchanged
	Width   int  // word wrap width, DefaultWidth if zero
}

// Markdown renders markdown content for terminal display with glamour's auto-detected style.
// with NoColor the content is returned as is, it is readable enough and safe for log capture.
func Markdown(content string, opts Options) (string, error) {
	if opts.NoColor {
		return content, nil
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(opts.Width),
	)
	if err != nil {
		return "", fmt.Errorf("create renderer: %w", err)
	}

	result, err := renderer.Render(content)
	if err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return result, nil
}
