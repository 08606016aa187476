package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrInputAttached is returned when a second input field is attached to a frame
var ErrInputAttached = errors.New("tui: screen already has an input")

// SizeFunc reports the terminal's columns and rows
type SizeFunc func() (width, height int)

// Options configures a Screen
type Options struct {
	// Width and Height pin the screen size when positive
	Width  int
	Height int
	Colors bool
	Policy WidthPolicy
	// Size overrides the terminal size query
	Size   SizeFunc
	Logger *log.Logger
}

// Screen composes header, body and footer sections and paints them with
// per-row diffing against the previous frame.
type Screen struct {
	out io.Writer
	log *log.Logger

	size        SizeFunc
	fixedWidth  int
	fixedHeight int
	width       int
	height      int
	sizeValid   bool

	colors  bool
	metrics Metrics

	header *Section
	body   *Section
	footer *Section
	input  *InputField

	// prev holds the rows written by the last successful flush
	prev []string
}

// NewScreen creates a screen writing to out
func NewScreen(out io.Writer, opts Options) *Screen {
	s := &Screen{
		out:         out,
		log:         opts.Logger,
		size:        opts.Size,
		fixedWidth:  opts.Width,
		fixedHeight: opts.Height,
		colors:      opts.Colors,
		metrics:     Metrics{Policy: opts.Policy},
	}
	if s.log == nil {
		s.log = log.New(io.Discard)
	}
	if s.size == nil {
		s.size = querySize(out)
	}
	s.header = &Section{screen: s}
	s.body = &Section{screen: s}
	s.footer = &Section{screen: s}
	s.RefreshSize()
	return s
}

func querySize(out io.Writer) SizeFunc {
	return func() (int, int) {
		files := make([]*os.File, 0, 3)
		if f, ok := out.(*os.File); ok {
			files = append(files, f)
		}
		files = append(files, os.Stdout, os.Stdin)
		return TerminalSize(files...)
	}
}

func (s *Screen) Header() *Section { return s.header }
func (s *Screen) Body() *Section   { return s.body }
func (s *Screen) Footer() *Section { return s.footer }

// InputField returns the field attached to the current frame, if any
func (s *Screen) InputField() *InputField { return s.input }

// Width returns the screen columns
func (s *Screen) Width() int {
	if !s.sizeValid {
		s.RefreshSize()
	}
	return s.width
}

// Height returns the screen rows
func (s *Screen) Height() int {
	if !s.sizeValid {
		s.RefreshSize()
	}
	return s.height
}

// Metrics returns the width rules in use
func (s *Screen) Metrics() Metrics { return s.metrics }

// Colors reports whether SGR styling is emitted
func (s *Screen) Colors() bool { return s.colors }

// SetColors toggles styling; the next flush repaints every row
func (s *Screen) SetColors(enabled bool) {
	if s.colors != enabled {
		s.colors = enabled
		s.prev = nil
	}
}

// Context returns the render context for the current size and style
func (s *Screen) Context() RenderContext {
	return RenderContext{Width: s.Width(), Colors: s.colors, Metrics: s.metrics}
}

// RefreshSize queries the terminal unless both dimensions are pinned.
// A size change drops the previous frame so every row is repainted.
func (s *Screen) RefreshSize() *Screen {
	w, h := s.fixedWidth, s.fixedHeight
	if w <= 0 || h <= 0 {
		qw, qh := s.size()
		if w <= 0 {
			w = qw
		}
		if h <= 0 {
			h = qh
		}
	}
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	if s.sizeValid && (w != s.width || h != s.height) {
		s.prev = nil
	}
	s.width, s.height = w, h
	s.sizeValid = true
	return s
}

// InvalidateSize marks the cached size stale after a terminal resize. The
// next flush queries the size again and repaints every row.
func (s *Screen) InvalidateSize() {
	s.sizeValid = false
	s.prev = nil
}

// Input attaches the frame's input field. Only one field may be attached
// between flushes.
func (s *Screen) Input(placeholder, value string, cursor int) (*InputField, error) {
	if s.input != nil {
		return nil, ErrInputAttached
	}
	s.input = NewInputField(placeholder, value, cursor)
	return s.input, nil
}

// Clear empties all sections and detaches the input field
func (s *Screen) Clear() *Screen {
	s.header.Clear()
	s.body.Clear()
	s.footer.Clear()
	s.input = nil
	return s
}

// Flush renders the frame and writes only the rows that differ from the
// previous flush, then positions or hides the cursor. Sections are cleared
// whether or not the write succeeds.
func (s *Screen) Flush() error {
	defer s.Clear()

	s.RefreshSize()

	// a dead stream must not stop the frame from being laid out
	if _, err := io.WriteString(s.out, Home); err != nil {
		s.log.Debug("home write failed", "err", err)
	}

	frame, cursorRow, cursorCol, err := s.layout()
	if err != nil {
		return err
	}

	var b strings.Builder
	rewritten := 0
	for i, row := range frame {
		if i < len(s.prev) && s.prev[i] == row {
			continue
		}
		b.WriteString(MoveTo(i+1, 1))
		b.WriteString(ClearEOL)
		b.WriteString(row)
		rewritten++
	}
	for i := len(frame); i < len(s.prev); i++ {
		b.WriteString(MoveTo(i+1, 1))
		b.WriteString(ClearEOL)
	}

	if cursorRow > 0 {
		b.WriteString(MoveTo(cursorRow, cursorCol))
		b.WriteString(ShowCursor)
	} else {
		b.WriteString(HideCursor)
	}

	if _, err := io.WriteString(s.out, b.String()); err != nil {
		s.prev = nil
		return fmt.Errorf("write frame: %w", err)
	}
	s.prev = frame

	if f, ok := s.out.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("flush output: %w", err)
		}
	}

	s.log.Debug("frame flushed", "rows", len(frame), "rewritten", rewritten, "width", s.width, "height", s.height)
	return nil
}

// layout renders every visible row. cursorRow is 0 unless exactly one line
// carries the input field.
func (s *Screen) layout() (frame []string, cursorRow, cursorCol int, err error) {
	ctx := s.Context()
	frame = make([]string, 0, s.height)
	inputLines := 0

	add := func(l *Line) error {
		row, err := l.Render(ctx)
		if err != nil {
			return err
		}
		if l.hasInput {
			inputLines++
			if s.input != nil {
				cursorRow = len(frame) + 1
				cursorCol = l.CursorColumn(s.input)
			}
		}
		frame = append(frame, row)
		return nil
	}

	for _, l := range s.header.lines {
		if err := add(l); err != nil {
			return nil, 0, 0, err
		}
	}

	bodySpace := s.height - s.header.Len() - s.footer.Len()
	bodyRows := 0
	for _, l := range s.body.lines {
		if bodyRows >= bodySpace {
			break
		}
		if err := add(l); err != nil {
			return nil, 0, 0, err
		}
		bodyRows++
	}

	blank := strings.Repeat(" ", max(s.width-1, 0))
	for ; bodyRows < bodySpace; bodyRows++ {
		frame = append(frame, blank)
	}

	for _, l := range s.footer.lines {
		if err := add(l); err != nil {
			return nil, 0, 0, err
		}
	}

	// every row but the last ends in a newline so the bottom row never scrolls
	for i := 0; i < len(frame)-1; i++ {
		frame[i] += "\n"
	}

	if inputLines != 1 {
		cursorRow, cursorCol = 0, 0
	}
	return frame, cursorRow, cursorCol, nil
}
