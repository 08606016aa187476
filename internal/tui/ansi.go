// Package tui paints frames of styled rows to an ANSI terminal.
package tui

import "strconv"

// ANSI control sequences written by the renderer
const (
	Home           = "\x1b[H"
	HideCursor     = "\x1b[?25l"
	ShowCursor     = "\x1b[?25h"
	ClearEOL       = "\x1b[K"
	ClearScreen    = "\x1b[2J"
	Reset          = "\x1b[0m"
	Bold           = "\x1b[1m"
	ResetIntensity = "\x1b[22m"
	ResetFg        = "\x1b[39m"
	ResetBg        = "\x1b[49m"
	ReverseOn      = "\x1b[7m"
	ReverseOff     = "\x1b[27m"
	AltScreenOn    = "\x1b[?1049h"
	AltScreenOff   = "\x1b[?1049l"
	CursorBlink    = "\x1b[1 q"
	CursorDefault  = "\x1b[0 q"
)

const esc = '\x1b'

// Fg returns the 256-color foreground sequence for n
func Fg(n uint8) string {
	return "\x1b[38;5;" + strconv.Itoa(int(n)) + "m"
}

// Bg returns the 256-color background sequence for n
func Bg(n uint8) string {
	return "\x1b[48;5;" + strconv.Itoa(int(n)) + "m"
}

// MoveTo positions the cursor at a 1-based row and column
func MoveTo(row, col int) string {
	return "\x1b[" + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H"
}

// escapeLen returns the byte length of the escape sequence starting at s[i].
// A sequence runs from ESC up to and including the first ASCII letter; an
// unterminated sequence runs to the end of s.
func escapeLen(s string, i int) int {
	for j := i + 1; j < len(s); j++ {
		if isLetter(s[j]) {
			return j - i + 1
		}
	}
	return len(s) - i
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
