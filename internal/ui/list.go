package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/gubarz/trypick/internal/corpus"
	"github.com/gubarz/trypick/internal/fuzzy"
)

// List writes the directories ranked for query to w, one per line: the name
// padded to a common width, then the age and score. A positive limit caps
// the number of lines.
func List(w io.Writer, dirs []*corpus.Dir, query string, limit int, now time.Time, styles *StyleManager) error {
	result := fuzzy.New(corpus.Candidates(dirs)).Match(query)
	if limit > 0 {
		result = result.Limit(limit)
	}
	matches := result.Collect()

	width := 0
	for _, m := range matches {
		width = max(width, lipgloss.Width(m.Text))
	}

	for _, m := range matches {
		dimmed := 0
		if _, ok := m.Data.DatePrefix(); ok {
			dimmed = datePrefixLen
		}
		name := styles.highlight(m.Text, m.Positions, dimmed)
		pad := strings.Repeat(" ", width-lipgloss.Width(m.Text))
		meta := styles.Meta.Render(fmt.Sprintf("%s, %.1f", corpus.RelativeTime(m.Data.ModTime, now), m.Score))
		if _, err := fmt.Fprintf(w, "%s%s  %s\n", name, pad, meta); err != nil {
			return err
		}
	}
	return nil
}
