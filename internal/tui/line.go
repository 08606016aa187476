package tui

import "strings"

// Line is one screen row with independent left, center and right lanes
type Line struct {
	// Background is applied across the row when colors are enabled
	Background Style
	// Truncate cuts the left lane to width-1 so the row never wraps
	Truncate bool

	left   *SegmentWriter
	center *SegmentWriter
	right  *SegmentWriter

	hasInput    bool
	inputPrefix int

	screen *Screen
}

// NewLine creates a detached line with truncation enabled
func NewLine() *Line {
	return &Line{Truncate: true, left: NewSegmentWriter()}
}

// Write returns the left lane
func (l *Line) Write() *SegmentWriter { return l.left }

// Left returns the left lane
func (l *Line) Left() *SegmentWriter { return l.left }

// Center returns the center lane, creating it on first use
func (l *Line) Center() *SegmentWriter {
	if l.center == nil {
		l.center = NewSegmentWriter()
	}
	return l.center
}

// Right returns the right lane, creating it on first use
func (l *Line) Right() *SegmentWriter {
	if l.right == nil {
		l.right = NewSegmentWriter()
	}
	return l.right
}

// MarkInput records that an input field starts prefixWidth columns into the row
func (l *Line) MarkInput(prefixWidth int) {
	l.hasInput = true
	l.inputPrefix = prefixWidth
}

// HasInput reports whether the line carries the input field
func (l *Line) HasInput() bool { return l.hasInput }

// CursorColumn returns the 1-based terminal column of the field's cursor
func (l *Line) CursorColumn(f *InputField) int {
	return l.inputPrefix + f.Cursor() + 1
}

// WriteInput appends the rendered field to the left lane and marks the line
// so the terminal cursor is placed on it after flush.
func (l *Line) WriteInput(f *InputField) *Line {
	ctx := l.context()
	_, prefix, err := l.left.render(ctx)
	if err != nil {
		prefix = 0
	}
	l.left.Write(f.Render(ctx.Colors))
	l.MarkInput(prefix)
	return l
}

func (l *Line) context() RenderContext {
	if l.screen != nil {
		return l.screen.Context()
	}
	return RenderContext{Colors: true, Metrics: defaultMetrics}
}

// Render lays the three lanes out across ctx.Width columns. The result
// carries no trailing newline.
func (l *Line) Render(ctx RenderContext) (string, error) {
	width := max(ctx.Width, 1)
	ctx.Width = width
	m := ctx.Metrics
	maxContent := width - 1

	leftText, leftWidth, err := l.left.render(ctx)
	if err != nil {
		return "", err
	}
	centerText, centerWidth, err := l.center.render(ctx)
	if err != nil {
		return "", err
	}
	rightText, rightWidth, err := l.right.render(ctx)
	if err != nil {
		return "", err
	}

	if l.Truncate && leftText != "" && leftWidth > maxContent {
		leftText = m.Truncate(leftText, maxContent, Ellipsis)
		leftWidth = m.VisibleWidth(leftText)
	}

	if centerText != "" {
		maxCenter := maxContent - leftWidth - 4
		if maxCenter <= 0 {
			centerText, centerWidth = "", 0
		} else if centerWidth > maxCenter {
			centerText = m.Truncate(centerText, maxCenter, Ellipsis)
			centerWidth = m.VisibleWidth(centerText)
		}
	}

	used := leftWidth + centerWidth
	if centerWidth > 0 {
		used += 2
	}
	if rightText != "" {
		available := maxContent - used - 1
		if available <= 0 {
			rightText, rightWidth = "", 0
		} else if rightWidth > available {
			rightText = m.TruncateFromStart(rightText, available)
			rightWidth = m.VisibleWidth(rightText)
		}
	}

	centerCol := 0
	if centerText != "" {
		centerCol = max((maxContent-centerWidth)/2, leftWidth+1)
	}

	var b strings.Builder
	b.Grow(len(leftText) + len(centerText) + len(rightText) + width + 16)
	if l.Background != StyleNone && ctx.Colors {
		b.WriteString(l.Background.On())
	}

	b.WriteString(leftText)
	pos := leftWidth

	if centerText != "" {
		pad(&b, centerCol-pos)
		b.WriteString(centerText)
		pos = centerCol + centerWidth
	}

	if rightText != "" {
		// a centered lane can push past the budget computed above
		if pos+1+rightWidth > maxContent {
			rightText = m.TruncateFromStart(rightText, maxContent-pos-1)
			rightWidth = m.VisibleWidth(rightText)
		}
	}

	fillEnd := maxContent
	if rightText != "" {
		fillEnd = maxContent - rightWidth
	}
	pad(&b, fillEnd-pos)
	b.WriteString(rightText)
	b.WriteString(Reset)

	return b.String(), nil
}

func pad(b *strings.Builder, n int) {
	for ; n > 0; n-- {
		b.WriteByte(' ')
	}
}

// Section is an ordered group of lines: header, body or footer
type Section struct {
	screen *Screen
	lines  []*Line
}

// AddLine appends a new line with truncation enabled
func (s *Section) AddLine() *Line {
	l := NewLine()
	l.screen = s.screen
	s.lines = append(s.lines, l)
	return l
}

// Divider appends a line holding char repeated across the screen width
func (s *Section) Divider(char string) *Line {
	if char == "" {
		char = "─"
	}
	width := 80
	if s.screen != nil {
		width = s.screen.Width()
	}
	l := s.AddLine()
	l.Write().Write(strings.Repeat(char, max(width-1, 1)))
	return l
}

// Lines returns the lines in insertion order
func (s *Section) Lines() []*Line { return s.lines }

// Len returns the number of lines
func (s *Section) Len() int { return len(s.lines) }

// Clear removes all lines
func (s *Section) Clear() {
	clear(s.lines)
	s.lines = s.lines[:0]
}
