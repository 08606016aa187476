package fuzzy

import (
	"fmt"
	"math"
	"slices"
	"testing"
)

func corpus() []Candidate[string] {
	return []Candidate[string]{
		{Data: "alpha", Text: "2024-01-15-project-alpha", BaseScore: 3.0},
		{Data: "beta", Text: "2024-02-20-project-beta", BaseScore: 2.0},
		{Data: "else", Text: "2024-03-10-something-else", BaseScore: 1.0},
		{Data: "test", Text: "2024-04-05-beta-test", BaseScore: 0.5},
	}
}

func texts[T any](matches []Match[T]) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Text
	}
	return out
}

func TestEmptyQueryRanksByBaseScore(t *testing.T) {
	results := New(corpus()).Match("").Collect()

	want := []string{
		"2024-01-15-project-alpha",
		"2024-02-20-project-beta",
		"2024-03-10-something-else",
		"2024-04-05-beta-test",
	}
	if got := texts(results); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if results[0].Score != 3.0 {
		t.Errorf("expected score 3.0, got %v", results[0].Score)
	}
	if len(results[0].Positions) != 0 {
		t.Errorf("expected no positions, got %v", results[0].Positions)
	}
}

func TestMatchFilters(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{query: "xyz", want: 0},
		{query: "projectxyz", want: 0},
		{query: "proj", want: 2},
		{query: "PROJ", want: 2},
		{query: "beta", want: 2},
		{query: "2024", want: 4},
	}

	m := New(corpus())
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := len(m.Match(tt.query).Collect()); got != tt.want {
				t.Errorf("expected %d matches, got %d", tt.want, got)
			}
		})
	}
}

func TestMatchPositions(t *testing.T) {
	results := New(corpus()).Match("proj").Collect()
	if len(results) == 0 {
		t.Fatal("expected matches")
	}

	top := results[0]
	if top.Data != "alpha" {
		t.Errorf("expected alpha first, got %s", top.Data)
	}
	if want := []int{11, 12, 13, 14}; !slices.Equal(top.Positions, want) {
		t.Errorf("expected positions %v, got %v", want, top.Positions)
	}
}

func TestPositionsMatchQueryLength(t *testing.T) {
	m := New(corpus())
	for _, q := range []string{"p", "pa", "2-1", "tst", "-b-t", "0115"} {
		for _, r := range m.Match(q).Collect() {
			if len(r.Positions) != len([]rune(q)) {
				t.Errorf("%q on %q: expected %d positions, got %v", q, r.Text, len(q), r.Positions)
			}
			for i := 1; i < len(r.Positions); i++ {
				if r.Positions[i] <= r.Positions[i-1] {
					t.Errorf("%q on %q: positions not increasing: %v", q, r.Text, r.Positions)
				}
			}
		}
	}
}

func TestPositionsAreRuneIndices(t *testing.T) {
	_, positions, ok := Score("caf\u00e9-bar", "b", 0)
	if !ok {
		t.Fatal("expected match")
	}
	if !slices.Equal(positions, []int{5}) {
		t.Errorf("expected [5], got %v", positions)
	}
}

func TestWordBoundary(t *testing.T) {
	_, positions, ok := Score("foo-bar", "b", 0)
	if !ok || !slices.Equal(positions, []int{4}) {
		t.Errorf("expected [4], got %v (ok=%v)", positions, ok)
	}

	boundary, _, _ := Score("foo-bar", "b", 0)
	inside, _, _ := Score("foobbar", "b", 0)
	if boundary <= inside {
		t.Errorf("expected boundary match %v to beat mid-word match %v", boundary, inside)
	}
}

func TestScoreFormula(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		query string
		base  float64
		want  float64
	}{
		{
			// 1 match + 1 boundary, density 1/1, length 10/15
			name: "single char at start", text: "alpha", query: "a",
			want: 2.0 * 1.0 * (10.0 / 15.0),
		},
		{
			// base 1, p: 1+1, r: 1+2 (gap 0), density 2/2, length 10/12
			name: "consecutive with base", text: "pr", query: "pr", base: 1,
			want: (1 + 2 + 3) * 1.0 * (10.0 / 12.0),
		},
		{
			// a: 1+1, c: 1 + 2/sqrt(2), density 2/3, length 10/13
			name: "one gap", text: "abc", query: "ac",
			want: (2 + 1 + 2/math.Sqrt2) * (2.0 / 3.0) * (10.0 / 13.0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, ok := Score(tt.text, tt.query, tt.base)
			if !ok {
				t.Fatal("expected match")
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestProximityPreference(t *testing.T) {
	results := New([]Candidate[string]{
		{Text: "p-r-o-j-e-c-t"},
		{Text: "project"},
	}).Match("proj").Collect()

	if results[0].Text != "project" {
		t.Errorf("expected project first, got %v", texts(results))
	}
	if results[0].Score <= results[1].Score {
		t.Errorf("expected strictly higher score, got %v", results)
	}
}

func TestLengthPenalty(t *testing.T) {
	results := New([]Candidate[string]{
		{Text: "project-with-long-suffix"},
		{Text: "project"},
	}).Match("proj").Collect()

	if results[0].Text != "project" {
		t.Errorf("expected shorter text first, got %v", texts(results))
	}
	if results[0].Score <= results[1].Score {
		t.Errorf("expected strictly higher score, got %v", results)
	}
}

func TestBaseScoreDominance(t *testing.T) {
	tests := []struct {
		name       string
		candidates []Candidate[string]
		query      string
		want       string
	}{
		{
			name: "identical text",
			candidates: []Candidate[string]{
				{Data: "old", Text: "project", BaseScore: 1.0},
				{Data: "new", Text: "project", BaseScore: 10.0},
			},
			query: "proj",
			want:  "new",
		},
		{
			name: "recency",
			candidates: []Candidate[string]{
				{Data: "old", Text: "project-old", BaseScore: 1.0},
				{Data: "new", Text: "project-new", BaseScore: 10.0},
			},
			query: "proj",
			want:  "new",
		},
		{
			name: "base score on a prefix",
			candidates: []Candidate[string]{
				{Data: "alphabravo", Text: "alphabravo", BaseScore: 1.0},
				{Data: "alpha", Text: "alpha", BaseScore: 10.0},
			},
			query: "alpha",
			want:  "alpha",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := New(tt.candidates).Match(tt.query).Collect()
			if results[0].Data != tt.want {
				t.Errorf("expected %s first, got %s", tt.want, results[0].Data)
			}
		})
	}
}

func TestLimit(t *testing.T) {
	var candidates []Candidate[int]
	for i := range 200 {
		candidates = append(candidates, Candidate[int]{
			Data:      i,
			Text:      fmt.Sprintf("%03d-project-%d", i, i%7),
			BaseScore: float64(i % 13),
		})
	}
	m := New(candidates)

	for _, query := range []string{"", "proj", "p-3", "1"} {
		full := m.Match(query).Collect()
		for _, k := range []int{1, 2, 5, 10, 50, len(full), len(full) + 5} {
			t.Run(fmt.Sprintf("%q/%d", query, k), func(t *testing.T) {
				limited := m.Match(query).Limit(k).Collect()
				if want := min(k, len(full)); len(limited) != want {
					t.Fatalf("expected %d results, got %d", want, len(limited))
				}
				for i := range limited {
					if limited[i].Data != full[i].Data || limited[i].Score != full[i].Score {
						t.Fatalf("result %d: expected %v, got %v", i, full[i], limited[i])
					}
				}
			})
		}
	}
}

func TestLimitEdgeCases(t *testing.T) {
	m := New(corpus())

	if got := m.Match("").Limit(0).Collect(); len(got) != 0 {
		t.Errorf("expected no results for limit 0, got %d", len(got))
	}
	if got := m.Match("").Limit(-1).Collect(); len(got) != 4 {
		t.Errorf("expected all results for negative limit, got %d", len(got))
	}

	r := m.Match("")
	_ = r.Limit(1)
	if got := len(r.Collect()); got != 4 {
		t.Errorf("expected Limit to leave the receiver unchanged, got %d results", got)
	}
}

func TestAll(t *testing.T) {
	r := New(corpus()).Match("").Limit(2)

	count := 0
	for range r.All() {
		count++
	}
	if count != 2 {
		t.Errorf("expected 2 matches, got %d", count)
	}

	for m := range r.All() {
		if m.Data != "alpha" {
			t.Errorf("expected alpha first on a second pass, got %s", m.Data)
		}
		break
	}
}

func TestEmptyCorpus(t *testing.T) {
	m := New[string](nil)
	if m.Len() != 0 {
		t.Errorf("expected empty matcher, got %d", m.Len())
	}
	if got := m.Match("anything").Collect(); len(got) != 0 {
		t.Errorf("expected no results, got %v", got)
	}
}

func TestProximityTable(t *testing.T) {
	for _, gap := range []int{0, 1, 5, 64, 65, 200} {
		want := 2.0 / math.Sqrt(float64(gap+1))
		if got := proximityBonus(gap); math.Abs(got-want) > 1e-12 {
			t.Errorf("gap %d: expected %v, got %v", gap, want, got)
		}
	}
}
