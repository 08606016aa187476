package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/gubarz/trypick/internal/corpus"
)

func listDirs() []*corpus.Dir {
	return []*corpus.Dir{
		{Name: "scratch", ModTime: testNow.Add(-49 * time.Hour), BaseScore: 0.5},
		{Name: "2024-01-15-project-alpha", ModTime: testNow.Add(-3 * time.Hour), BaseScore: 3.0},
	}
}

func TestList(t *testing.T) {
	tests := []struct {
		name  string
		query string
		limit int
		want  []string
	}{
		{
			name: "all ranked by base score",
			want: []string{
				"2024-01-15-project-alpha  3h ago, 3.0",
				"scratch" + strings.Repeat(" ", 17) + "  2d ago, 0.5",
			},
		},
		{
			name:  "limit",
			limit: 1,
			want:  []string{"2024-01-15-project-alpha  3h ago, 3.0"},
		},
		{
			name:  "filtered",
			query: "scr",
			want:  []string{"scratch  2d ago, 5.0"},
		},
		{
			name:  "no matches",
			query: "zzz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := List(&buf, listDirs(), tt.query, tt.limit, testNow, PlainStyles()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
			if buf.Len() == 0 {
				got = nil
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d lines, got %d: %q", len(tt.want), len(got), buf.String())
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestListDefaultStylesWithoutTerminal(t *testing.T) {
	var plain, styled bytes.Buffer
	if err := List(&plain, listDirs(), "proj", 0, testNow, PlainStyles()); err != nil {
		t.Fatal(err)
	}
	// a buffer is not a terminal, so the renderer drops colors
	if err := List(&styled, listDirs(), "proj", 0, testNow, DefaultStyles(&styled)); err != nil {
		t.Fatal(err)
	}
	if plain.String() != styled.String() {
		t.Errorf("expected identical output, got %q and %q", plain.String(), styled.String())
	}
}

func TestHighlightGroupsRuns(t *testing.T) {
	s := PlainStyles()
	if got := s.highlight("2024-01-15-project-alpha", []int{11, 12, 13, 14}, datePrefixLen); got != "2024-01-15-project-alpha" {
		t.Errorf("expected plain styles to leave text unchanged, got %q", got)
	}
	if got := s.highlight("", nil, 0); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}
