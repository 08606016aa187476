package tui

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// ErrFillWithoutWidth is returned when a fill segment is rendered without a
// width to fill against.
var ErrFillWithoutWidth = errors.New("tui: fill segment requires a width context")

// SegmentKind discriminates the Segment variants
type SegmentKind uint8

const (
	KindPlain SegmentKind = iota
	KindFill
	KindWide
)

// Segment is one renderable piece of a writer
type Segment struct {
	kind  SegmentKind
	text  string
	style Style
	width int
}

// Plain is literal text, optionally styled via WithStyle
func Plain(text string) Segment {
	return Segment{kind: KindPlain, text: text}
}

// Fill repeats pattern until the writer's remaining width is used up
func Fill(pattern string) Segment {
	if pattern == "" {
		pattern = " "
	}
	return Segment{kind: KindFill, text: pattern}
}

// Wide is a token whose width is classified once here and never recomputed.
// Use it for emoji icons so layout math does not depend on string length.
func Wide(text string) Segment {
	return WideWith(defaultMetrics, text)
}

// WideWith classifies a wide token with the given metrics
func WideWith(m Metrics, text string) Segment {
	w := 0
	for _, r := range text {
		w += m.RuneWidth(r)
	}
	return Segment{kind: KindWide, text: text, width: w}
}

// WithStyle returns a copy of the segment rendered with style. Wide tokens
// are never styled.
func (s Segment) WithStyle(style Style) Segment {
	if s.kind != KindWide {
		s.style = style
	}
	return s
}

// Kind reports the variant
func (s Segment) Kind() SegmentKind { return s.kind }

// Text returns the raw text or fill pattern
func (s Segment) Text() string { return s.text }

// Width returns the precomputed width of a wide token; other kinds report 0
func (s Segment) Width() int { return s.width }

// widthDelta is how many columns the token takes beyond its rune count
func (s Segment) widthDelta() int {
	return s.width - utf8.RuneCountInString(s.text)
}

// RenderContext carries everything a render needs instead of global state
type RenderContext struct {
	// Width is the line width; zero means no width context
	Width   int
	Colors  bool
	Metrics Metrics
}

// SegmentWriter accumulates segments for one lane of a line
type SegmentWriter struct {
	segments   []Segment
	hasWide    bool
	widthDelta int
}

// NewSegmentWriter creates an empty writer
func NewSegmentWriter() *SegmentWriter {
	return &SegmentWriter{}
}

// Write appends plain text. Empty text is skipped.
func (w *SegmentWriter) Write(text string) *SegmentWriter {
	if text == "" {
		return w
	}
	return w.Append(Plain(text))
}

// Append adds any segment. Empty plain and wide segments are skipped.
func (w *SegmentWriter) Append(seg Segment) *SegmentWriter {
	if seg.kind != KindFill && seg.text == "" {
		return w
	}
	if seg.kind == KindWide {
		w.hasWide = true
		w.widthDelta += seg.widthDelta()
	}
	w.segments = append(w.segments, seg)
	return w
}

// WriteStyled appends text rendered with style
func (w *SegmentWriter) WriteStyled(text string, style Style) *SegmentWriter {
	if text == "" {
		return w
	}
	return w.Append(Plain(text).WithStyle(style))
}

func (w *SegmentWriter) WriteDim(text string) *SegmentWriter {
	return w.WriteStyled(text, StyleDim)
}

func (w *SegmentWriter) WriteBold(text string) *SegmentWriter {
	return w.WriteStyled(text, StyleBold)
}

func (w *SegmentWriter) WriteHighlight(text string) *SegmentWriter {
	return w.WriteStyled(text, StyleHighlight)
}

func (w *SegmentWriter) WriteAccent(text string) *SegmentWriter {
	return w.WriteStyled(text, StyleAccent)
}

// Empty reports whether nothing has been written
func (w *SegmentWriter) Empty() bool {
	return w == nil || len(w.segments) == 0
}

// HasWide reports whether a wide token has been written
func (w *SegmentWriter) HasWide() bool {
	return w.hasWide
}

// WidthDelta is the sum of (width - rune count) over all wide tokens
func (w *SegmentWriter) WidthDelta() int {
	return w.widthDelta
}

// Width returns the visible width of a string rendered by this writer
// without classifying runes: the rune count of the escape-free text plus
// the wide-token delta. It assumes wide content only arrives as wide tokens.
func (w *SegmentWriter) Width(rendered string) int {
	n := 0
	for i := 0; i < len(rendered); {
		if rendered[i] == esc {
			i += escapeLen(rendered, i)
			continue
		}
		_, size := utf8.DecodeRuneInString(rendered[i:])
		n++
		i += size
	}
	return n + w.widthDelta
}

// Render joins the segments. Fill segments need ctx.Width > 0.
func (w *SegmentWriter) Render(ctx RenderContext) (string, error) {
	s, _, err := w.render(ctx)
	return s, err
}

// render returns the joined string together with its visible width
func (w *SegmentWriter) render(ctx RenderContext) (string, int, error) {
	if w.Empty() {
		return "", 0, nil
	}
	var b strings.Builder
	width := 0
	for _, seg := range w.segments {
		switch seg.kind {
		case KindPlain:
			b.WriteString(seg.style.Wrap(seg.text, ctx.Colors))
			width += ctx.Metrics.VisibleWidth(seg.text)
		case KindWide:
			b.WriteString(seg.text)
			width += seg.width
		case KindFill:
			if ctx.Width <= 0 {
				return "", 0, ErrFillWithoutWidth
			}
			filler, fw := renderFill(seg, ctx, width)
			b.WriteString(filler)
			width += fw
		}
	}
	return b.String(), width, nil
}

// renderFill repeats the pattern over the columns left before width-1
func renderFill(seg Segment, ctx RenderContext, used int) (string, int) {
	remaining := ctx.Width - 1 - used
	if remaining <= 0 {
		return "", 0
	}
	patternWidth := max(ctx.Metrics.VisibleWidth(seg.text), 1)
	repeat := (remaining + patternWidth - 1) / patternWidth
	filler := ctx.Metrics.Truncate(strings.Repeat(seg.text, repeat), remaining, "")
	return seg.style.Wrap(filler, ctx.Colors), ctx.Metrics.VisibleWidth(filler)
}
