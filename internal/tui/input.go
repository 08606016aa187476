package tui

import "strings"

// InputField is a single-line text buffer with a cursor, rebuilt every frame
// from the caller's text and cursor position.
type InputField struct {
	placeholder string
	text        []rune
	cursor      int
}

// NewInputField creates a field with cursor clamped to [0, len(text)] runes
func NewInputField(placeholder, text string, cursor int) *InputField {
	runes := []rune(text)
	return &InputField{
		placeholder: placeholder,
		text:        runes,
		cursor:      min(max(cursor, 0), len(runes)),
	}
}

// Text returns the buffer contents
func (f *InputField) Text() string { return string(f.text) }

// Cursor returns the rune index of the cursor
func (f *InputField) Cursor() int { return f.cursor }

// Placeholder returns the text shown while the buffer is empty
func (f *InputField) Placeholder() string { return f.placeholder }

// Render draws the buffer with a reverse-video block at the cursor, or the
// dimmed placeholder when the buffer is empty.
func (f *InputField) Render(colors bool) string {
	if len(f.text) == 0 {
		return StyleDim.Wrap(f.placeholder, colors)
	}

	var b strings.Builder
	b.WriteString(string(f.text[:f.cursor]))
	under := " "
	if f.cursor < len(f.text) {
		under = string(f.text[f.cursor])
	}
	if colors {
		b.WriteString(ReverseOn)
	}
	b.WriteString(under)
	if colors {
		b.WriteString(ReverseOff)
	}
	if f.cursor < len(f.text) {
		b.WriteString(string(f.text[f.cursor+1:]))
	}
	return b.String()
}
