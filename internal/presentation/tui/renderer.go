// Package tui renders markdown help content for the terminal.
package tui

import (
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour,
// matching the detected light/dark background.
func NewRenderer(width int) func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}
