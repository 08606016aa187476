package corpus

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gubarz/trypick/internal/fuzzy"
)

// Dir represents a single try directory
type Dir struct {
	Name      string    // Directory base name
	Path      string    // Full path
	ModTime   time.Time // Last modification time
	BaseScore float64   // Recency score used as the ranking floor
}

// DatePrefix reports the YYYY-MM-DD part of a dated name, if any
func (d *Dir) DatePrefix() (string, bool) {
	if !datePrefixRegex.MatchString(d.Name) {
		return "", false
	}
	return d.Name[:10], true
}

var datePrefixRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-`)

// Scan lists the immediate subdirectories of root. Hidden entries and
// plain files are skipped. Scores are computed against now.
func Scan(root string, now time.Time) ([]*Dir, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	dirs := make([]*Dir, 0, len(entries))
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		path := filepath.Join(root, e.Name())
		// os.Stat follows symlinks so linked directories are included
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			continue
		}
		dirs = append(dirs, &Dir{
			Name:      e.Name(),
			Path:      path,
			ModTime:   info.ModTime(),
			BaseScore: BaseScore(e.Name(), info.ModTime(), now),
		})
	}
	return dirs, nil
}

// BaseScore favors recently touched directories and dated names
func BaseScore(name string, modTime, now time.Time) float64 {
	hours := max(now.Sub(modTime).Hours(), 0)
	score := 3.0 / math.Sqrt(hours+1)
	if datePrefixRegex.MatchString(name) {
		score += 2.0
	}
	return score
}

// RelativeTime formats the age of t as "just now", "5m ago", "3h ago",
// "2d ago" or "4w ago"
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return "?"
	}
	d := max(now.Sub(t), 0)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return fmt.Sprintf("%dw ago", int(d.Hours()/(24*7)))
	}
}

// Candidates turns scanned directories into matcher input
func Candidates(dirs []*Dir) []fuzzy.Candidate[*Dir] {
	out := make([]fuzzy.Candidate[*Dir], len(dirs))
	for i, d := range dirs {
		out[i] = fuzzy.Candidate[*Dir]{Data: d, Text: d.Name, BaseScore: d.BaseScore}
	}
	return out
}

// NewName builds a dated directory name for query, e.g. 2024-01-15-my-idea.
// Whitespace runs become a single dash.
func NewName(query string, now time.Time) string {
	slug := strings.Join(strings.Fields(query), "-")
	return now.Format("2006-01-02") + "-" + slug
}

// Create makes a new dated directory for query under root. An existing name
// gets a numeric suffix: name-2, name-3, ...
func Create(root, query string, now time.Time) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("create: empty name")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", root, err)
	}

	base := NewName(query, now)
	name := base
	for n := 2; ; n++ {
		path := filepath.Join(root, name)
		err := os.Mkdir(path, 0o755)
		if err == nil {
			return path, nil
		}
		if !os.IsExist(err) {
			return "", fmt.Errorf("create %s: %w", path, err)
		}
		name = fmt.Sprintf("%s-%d", base, n)
	}
}
