package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Ellipsis is the default overflow marker for Truncate
const Ellipsis = "…"

// WidthPolicy selects which runes occupy two terminal columns
type WidthPolicy uint8

const (
	// WidthEmoji treats only the emoji block U+1F300..U+1FAFF as wide
	WidthEmoji WidthPolicy = iota
	// WidthEastAsian additionally treats East-Asian wide and fullwidth runes as wide
	WidthEastAsian
)

// ParseWidthPolicy maps a config value to a WidthPolicy
func ParseWidthPolicy(s string) (WidthPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "emoji":
		return WidthEmoji, nil
	case "eastasian", "east-asian", "cjk":
		return WidthEastAsian, nil
	default:
		return WidthEmoji, fmt.Errorf("unknown width policy: %q (supported: emoji, eastasian)", s)
	}
}

func (p WidthPolicy) String() string {
	if p == WidthEastAsian {
		return "eastasian"
	}
	return "emoji"
}

// eastAsian classifies wide runes without treating ambiguous-width runes as wide
var eastAsian = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// Metrics measures and truncates strings in terminal columns
type Metrics struct {
	Policy WidthPolicy
}

var defaultMetrics = Metrics{Policy: WidthEmoji}

// RuneWidth returns the column width of a single rune (0, 1 or 2)
func (m Metrics) RuneWidth(r rune) int {
	if isZeroWidth(r) {
		return 0
	}
	if r >= 0x1F300 && r <= 0x1FAFF {
		return 2
	}
	if m.Policy == WidthEastAsian && r >= 0x1100 && eastAsian.RuneWidth(r) == 2 {
		return 2
	}
	return 1
}

func isZeroWidth(r rune) bool {
	switch {
	case r >= 0xFE00 && r <= 0xFE0F:
		return true
	case r >= 0x200B && r <= 0x200D:
		return true
	case r >= 0x0300 && r <= 0x036F:
		return true
	case r >= 0xE0100 && r <= 0xE01EF:
		return true
	}
	return false
}

// VisibleWidth returns the number of terminal columns text occupies,
// ignoring escape sequences.
func (m Metrics) VisibleWidth(text string) int {
	if isPlainASCII(text) {
		return len(text)
	}
	width := 0
	for i := 0; i < len(text); {
		if text[i] == esc {
			i += escapeLen(text, i)
			continue
		}
		r, size := utf8.DecodeRuneInString(text[i:])
		width += m.RuneWidth(r)
		i += size
	}
	return width
}

// Truncate cuts text to maxWidth columns and appends overflow. Escape
// sequences before the cut are kept whole. Text that already fits is
// returned unchanged. The marker is dropped when it alone exceeds maxWidth.
func (m Metrics) Truncate(text string, maxWidth int, overflow string) string {
	if m.VisibleWidth(text) <= maxWidth {
		return text
	}
	if maxWidth <= 0 {
		return ""
	}

	overflowWidth := m.VisibleWidth(overflow)
	if overflowWidth > maxWidth {
		overflow, overflowWidth = "", 0
	}
	target := maxWidth - overflowWidth

	var b strings.Builder
	b.Grow(len(text))
	width := 0
	for i := 0; i < len(text); {
		if text[i] == esc {
			n := escapeLen(text, i)
			b.WriteString(text[i : i+n])
			i += n
			continue
		}
		r, size := utf8.DecodeRuneInString(text[i:])
		cw := m.RuneWidth(r)
		if width+cw > target {
			break
		}
		b.WriteString(text[i : i+size])
		width += cw
		i += size
	}

	return strings.TrimRight(b.String(), " \t\r\n\v\f\x00") + overflow
}

// TruncateFromStart keeps the trailing maxWidth columns of text. Escape
// sequences found before the first visible rune are carried over so the
// kept tail keeps its styling. No overflow marker is added.
func (m Metrics) TruncateFromStart(text string, maxWidth int) string {
	total := m.VisibleWidth(text)
	if total <= maxWidth {
		return text
	}
	if maxWidth <= 0 {
		return ""
	}

	i := 0
	for i < len(text) && text[i] == esc {
		i += escapeLen(text, i)
	}
	leading := text[:i]

	skip := total - maxWidth
	skipped := 0
	kept := false
	var b strings.Builder
	for i < len(text) {
		if text[i] == esc {
			n := escapeLen(text, i)
			if skipped >= skip {
				b.WriteString(text[i : i+n])
			}
			i += n
			continue
		}
		r, size := utf8.DecodeRuneInString(text[i:])
		cw := m.RuneWidth(r)
		switch {
		case skipped < skip:
			skipped += cw
		case !kept && cw == 0:
			// combining mark belonging to a skipped rune
		default:
			b.WriteString(text[i : i+size])
			kept = true
		}
		i += size
	}

	return leading + b.String()
}

func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf || s[i] == esc {
			return false
		}
	}
	return true
}

// VisibleWidth measures text with the emoji-only width policy
func VisibleWidth(text string) int {
	return defaultMetrics.VisibleWidth(text)
}

// Truncate cuts text with the emoji-only width policy
func Truncate(text string, maxWidth int, overflow string) string {
	return defaultMetrics.Truncate(text, maxWidth, overflow)
}

// TruncateFromStart keeps the tail of text with the emoji-only width policy
func TruncateFromStart(text string, maxWidth int) string {
	return defaultMetrics.TruncateFromStart(text, maxWidth)
}
