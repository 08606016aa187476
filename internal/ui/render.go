package ui

import (
	"fmt"

	"github.com/gubarz/trypick/internal/corpus"
	"github.com/gubarz/trypick/internal/fuzzy"
	"github.com/gubarz/trypick/internal/tui"
)

const (
	folderIcon = "📁"
	createIcon = "📂"
	hints      = "↑↓: Navigate  Enter: Select  Esc: Cancel"
)

// datePrefixLen covers "YYYY-MM-DD-"
const datePrefixLen = 11

// paint lays out the current state and flushes it to the terminal
func (m *pickerModel) paint() error {
	m.adjustOffset()
	if err := m.buildFrame(); err != nil {
		m.screen.Clear()
		return err
	}
	return m.screen.Flush()
}

func (m *pickerModel) buildFrame() error {
	if err := m.renderHeader(); err != nil {
		return err
	}
	m.renderBody()
	m.renderFooter()
	return nil
}

// divider adds a dimmed rule spanning the row
func divider(s *tui.Section) {
	s.AddLine().Write().Append(tui.Fill("─").WithStyle(tui.StyleDim))
}

func (m *pickerModel) renderHeader() error {
	s := m.screen
	h := s.Header()

	title := h.AddLine()
	title.Write().
		Append(tui.WideWith(s.Metrics(), folderIcon)).
		WriteStyled(" Try Selector", tui.StyleHeader)
	title.Right().WriteDim(m.root)

	divider(h)

	field, err := s.Input(m.textInput.Placeholder, m.textInput.Value(), m.textInput.Position())
	if err != nil {
		return fmt.Errorf("search field: %w", err)
	}
	search := h.AddLine()
	search.Write().WriteDim("Search: ")
	search.WriteInput(field)

	divider(h)
	return nil
}

func (m *pickerModel) renderBody() {
	body := m.screen.Body()
	total := m.total()

	if total == 0 {
		body.AddLine().Write().WriteDim("  no tries yet, type a name to create one")
		return
	}

	start, end := scrollWindow(m.cursor, total, m.listHeight(), &m.offset)
	for i := start; i < end; i++ {
		line := body.AddLine()
		selected := i == m.cursor
		if selected {
			line.Background = tui.StyleSelected
			line.Write().WriteBold("→ ")
		} else {
			line.Write().Write("  ")
		}

		if i < len(m.results) {
			m.renderEntry(line, m.results[i])
		} else {
			m.renderCreate(line)
		}
	}
}

// renderEntry draws "📁 name" with matched runes highlighted and the
// "age, score" metadata in the right lane
func (m *pickerModel) renderEntry(line *tui.Line, r fuzzy.Match[*corpus.Dir]) {
	w := line.Write()
	w.Append(tui.WideWith(m.screen.Metrics(), folderIcon)).Write(" ")

	dimmed := 0
	if _, ok := r.Data.DatePrefix(); ok {
		dimmed = datePrefixLen
	}
	writeHighlighted(w, r.Text, r.Positions, dimmed)

	age := corpus.RelativeTime(r.Data.ModTime, m.now())
	line.Right().WriteDim(fmt.Sprintf("%s, %.1f", age, r.Score))
}

func (m *pickerModel) renderCreate(line *tui.Line) {
	line.Write().
		Append(tui.WideWith(m.screen.Metrics(), createIcon)).
		Write(" Create new: ").
		WriteAccent(corpus.NewName(m.textInput.Value(), m.now()))
}

func (m *pickerModel) renderFooter() {
	f := m.screen.Footer()
	divider(f)

	line := f.AddLine()
	line.Write().WriteDim(hints)
	line.Center().WriteDim(fmt.Sprintf("%d/%d", len(m.results), m.matcher.Len()))
}

// writeHighlighted writes text with the runes at positions in the match
// style and the first dimmed runes in the dim style. positions must be
// increasing rune indices.
func writeHighlighted(w *tui.SegmentWriter, text string, positions []int, dimmed int) {
	var run []rune
	current := tui.StyleNone
	flush := func() {
		if len(run) > 0 {
			w.WriteStyled(string(run), current)
			run = run[:0]
		}
	}

	next := 0
	for i, r := range []rune(text) {
		style := tui.StyleNone
		switch {
		case next < len(positions) && positions[next] == i:
			style = tui.StyleMatch
			next++
		case i < dimmed:
			style = tui.StyleDim
		}
		if style != current {
			flush()
			current = style
		}
		run = append(run, r)
	}
	flush()
}
