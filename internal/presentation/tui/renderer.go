package tui

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() (func(string) (string, error), error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	return r.Render, nil
}

// RenderCode highlights Python source for the terminal.
func RenderCode(code string) (string, error) {
	render, err := NewRenderer()
	if err != nil {
		return "", err
	}
	return render("```python\n" + code + "```\n")
}
