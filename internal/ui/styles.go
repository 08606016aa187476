package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StyleManager holds the lipgloss styles used by non-interactive output
type StyleManager struct {
	Name  lipgloss.Style
	Date  lipgloss.Style
	Match lipgloss.Style
	Meta  lipgloss.Style
}

// DefaultStyles returns styles bound to a renderer for w. The renderer
// drops colors when w is not a terminal.
func DefaultStyles(w io.Writer) *StyleManager {
	r := lipgloss.NewRenderer(w)
	// same 256-color palette as the picker
	dim := lipgloss.Color("245")
	return &StyleManager{
		Name:  r.NewStyle(),
		Date:  r.NewStyle().Foreground(dim),
		Match: r.NewStyle().Bold(true).Foreground(lipgloss.Color("226")),
		Meta:  r.NewStyle().Foreground(dim),
	}
}

// PlainStyles returns styles that render text unchanged
func PlainStyles() *StyleManager {
	return &StyleManager{
		Name:  lipgloss.NewStyle(),
		Date:  lipgloss.NewStyle(),
		Match: lipgloss.NewStyle(),
		Meta:  lipgloss.NewStyle(),
	}
}

// highlight renders text with the runes at positions in the match style and
// the first dimmed runes in the date style
func (s *StyleManager) highlight(text string, positions []int, dimmed int) string {
	var b strings.Builder
	var run []rune
	var current *lipgloss.Style
	flush := func() {
		if len(run) > 0 {
			b.WriteString(current.Render(string(run)))
			run = run[:0]
		}
	}

	next := 0
	for i, r := range []rune(text) {
		style := &s.Name
		switch {
		case next < len(positions) && positions[next] == i:
			style = &s.Match
			next++
		case i < dimmed:
			style = &s.Date
		}
		if style != current {
			flush()
			current = style
		}
		run = append(run, r)
	}
	flush()
	return b.String()
}
