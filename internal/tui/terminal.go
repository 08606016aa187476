package tui

import (
	"os"

	"github.com/charmbracelet/x/term"
)

// Fallback dimensions when no terminal answers a size query
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// TerminalSize returns the columns and rows of the first file that is a
// terminal. Failures are not errors; the 80x24 default is returned instead.
func TerminalSize(files ...*os.File) (width, height int) {
	for _, f := range files {
		if f == nil {
			continue
		}
		w, h, err := term.GetSize(f.Fd())
		if err == nil && w > 0 && h > 0 {
			return w, h
		}
	}
	return DefaultWidth, DefaultHeight
}
