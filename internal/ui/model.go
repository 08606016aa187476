package ui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/gubarz/trypick/internal/corpus"
	"github.com/gubarz/trypick/internal/fuzzy"
	"github.com/gubarz/trypick/internal/tui"
)

// Selection is the outcome of a picker session. Exactly one of Dir and
// NewName is set.
type Selection struct {
	Dir     *corpus.Dir
	NewName string
}

// resizeMsg is sent when the terminal changes size
type resizeMsg struct{}

// Rows taken by the header (title, divider, search, divider) and the footer
// (divider, hints)
const (
	headerRows = 4
	footerRows = 2
	pageSize   = 10
)

// pickerModel is the Bubble Tea model for directory selection. Bubble Tea
// only decodes keys; every frame is painted through the tui.Screen.
type pickerModel struct {
	screen    *tui.Screen
	textInput textinput.Model
	matcher   *fuzzy.Matcher[*corpus.Dir]
	root      string
	limit     int
	now       func() time.Time
	log       *log.Logger

	results   []fuzzy.Match[*corpus.Dir]
	lastQuery string
	cursor    int
	offset    int // viewport scroll offset

	selected *Selection
	quitting bool
	err      error
}

// newPickerModel creates a picker over dirs painting to screen
func newPickerModel(screen *tui.Screen, dirs []*corpus.Dir, opts Options) pickerModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "type to filter"
	ti.CharLimit = 256
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := pickerModel{
		screen:    screen,
		textInput: ti,
		matcher:   fuzzy.New(corpus.Candidates(dirs)),
		root:      opts.Root,
		limit:     opts.Limit,
		now:       now,
		log:       logger,
	}
	if opts.Query != "" {
		m.textInput.SetValue(opts.Query)
	}
	m.filter()
	return m
}

// Init implements tea.Model
func (m pickerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. Every handled message ends with a repaint.
func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	case tea.WindowSizeMsg, resizeMsg:
		m.screen.InvalidateSize()
	default:
		return m, nil
	}

	if m.quitting || m.selected != nil {
		return m, tea.Quit
	}
	if err := m.paint(); err != nil {
		m.err = err
		return m, tea.Quit
	}
	return m, cmd
}

// View implements tea.Model. Rendering happens in paint; Bubble Tea runs
// without a renderer.
func (m pickerModel) View() string {
	return ""
}

// handleKey processes keyboard input
func (m *pickerModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return nil
	case "enter":
		m.selectCurrent()
		return nil
	case "up", "ctrl+p":
		m.moveCursor(-1)
		return nil
	case "down", "ctrl+n":
		m.moveCursor(1)
		return nil
	case "pgup":
		m.moveCursor(-pageSize)
		return nil
	case "pgdown":
		m.moveCursor(pageSize)
		return nil
	case "home":
		m.cursor = 0
		m.adjustOffset()
		return nil
	case "end":
		m.cursor = max(0, m.total()-1)
		m.adjustOffset()
		return nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	if m.textInput.Value() != m.lastQuery {
		// a new query starts again from the best match
		m.cursor = 0
		m.filter()
	}
	return cmd
}

// showCreate reports whether the "create new" row is offered
func (m *pickerModel) showCreate() bool {
	return m.textInput.Value() != ""
}

// total is the number of selectable rows
func (m *pickerModel) total() int {
	n := len(m.results)
	if m.showCreate() {
		n++
	}
	return n
}

func (m *pickerModel) selectCurrent() {
	switch {
	case m.cursor < len(m.results):
		m.selected = &Selection{Dir: m.results[m.cursor].Data}
	case m.showCreate():
		m.selected = &Selection{NewName: m.textInput.Value()}
	}
}

// moveCursor moves the cursor by delta, clamping to valid range
func (m *pickerModel) moveCursor(delta int) {
	m.cursor = clamp(m.cursor+delta, 0, max(0, m.total()-1))
	m.adjustOffset()
}

// listHeight is the number of body rows available for entries
func (m *pickerModel) listHeight() int {
	return max(m.screen.Height()-headerRows-footerRows, 1)
}

// adjustOffset ensures cursor is visible within viewport
func (m *pickerModel) adjustOffset() {
	scrollWindow(m.cursor, m.total(), m.listHeight(), &m.offset)
}

// filter ranks the corpus against the current query
func (m *pickerModel) filter() {
	query := m.textInput.Value()
	result := m.matcher.Match(query)
	if m.limit > 0 {
		result = result.Limit(m.limit)
	}
	m.results = result.Collect()
	m.lastQuery = query

	m.cursor = clamp(m.cursor, 0, max(0, m.total()-1))
	m.adjustOffset()
	m.log.Debug("filtered", "query", query, "matches", len(m.results), "corpus", m.matcher.Len())
}

// clamp restricts v to the range [minV, maxV]
func clamp(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// scrollWindow calculates the visible range for a scrollable list
func scrollWindow(pos, total, height int, offset *int) (start, end int) {
	if pos < *offset {
		*offset = pos
	}
	if pos >= *offset+height {
		*offset = pos - height + 1
	}
	maxOffset := max(0, total-height)
	*offset = clamp(*offset, 0, maxOffset)

	start = *offset
	end = min(start+height, total)
	return
}
