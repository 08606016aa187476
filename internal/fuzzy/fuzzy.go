package fuzzy

import (
	"cmp"
	"container/heap"
	"iter"
	"math"
	"slices"
	"unicode"
)

// Candidate is one searchable entry handed to New
type Candidate[T any] struct {
	Data      T
	Text      string
	BaseScore float64
}

// Match is a candidate that matched a query. Positions are rune indices
// into Text, strictly increasing, one per query rune.
type Match[T any] struct {
	Data      T
	Text      string
	Positions []int
	Score     float64
}

type entry[T any] struct {
	data  T
	text  string
	lower []rune
	base  float64
}

// Matcher ranks a fixed corpus against queries. It is not safe for
// concurrent use.
type Matcher[T any] struct {
	entries []entry[T]
}

// New builds a matcher, lowercasing every candidate once
func New[T any](candidates []Candidate[T]) *Matcher[T] {
	m := &Matcher[T]{entries: make([]entry[T], len(candidates))}
	for i, c := range candidates {
		m.entries[i] = entry[T]{
			data:  c.Data,
			text:  c.Text,
			lower: lowerRunes(c.Text),
			base:  c.BaseScore,
		}
	}
	return m
}

// Len returns the corpus size
func (m *Matcher[T]) Len() int { return len(m.entries) }

// Match prepares a result set for query. Nothing is scored until the
// result is read.
func (m *Matcher[T]) Match(query string) *Result[T] {
	return &Result[T]{matcher: m, query: lowerRunes(query), limit: -1}
}

// Result is a lazily evaluated ranking
type Result[T any] struct {
	matcher *Matcher[T]
	query   []rune
	limit   int
}

// Limit returns a copy of the result capped at k matches. A negative k
// removes the cap.
func (r *Result[T]) Limit(k int) *Result[T] {
	c := *r
	c.limit = k
	return &c
}

// All iterates over the ranked matches. Each call rescans the corpus.
func (r *Result[T]) All() iter.Seq[Match[T]] {
	return func(yield func(Match[T]) bool) {
		for _, m := range r.Collect() {
			if !yield(m) {
				return
			}
		}
	}
}

// Collect scores the corpus and returns matches by descending score. Equal
// scores keep corpus order.
func (r *Result[T]) Collect() []Match[T] {
	if r.limit == 0 {
		return []Match[T]{}
	}

	found := make([]ranked[T], 0, len(r.matcher.entries))
	for i := range r.matcher.entries {
		e := &r.matcher.entries[i]
		score, positions, ok := scoreEntry(e.lower, e.base, r.query)
		if !ok {
			continue
		}
		found = append(found, ranked[T]{
			Match: Match[T]{Data: e.data, Text: e.text, Positions: positions, Score: score},
			index: i,
		})
	}

	if r.limit > 0 && r.limit < len(found) {
		found = topK(found, r.limit)
	} else {
		slices.SortFunc(found, compareRanked[T])
	}

	out := make([]Match[T], len(found))
	for i, f := range found {
		out[i] = f.Match
	}
	return out
}

// Score rates a single text against query. ok is false when query is not a
// subsequence of text.
func Score(text, query string, baseScore float64) (score float64, positions []int, ok bool) {
	return scoreEntry(lowerRunes(text), baseScore, lowerRunes(query))
}

func scoreEntry(text []rune, base float64, query []rune) (float64, []int, bool) {
	score := base
	if len(query) == 0 {
		return score, nil, true
	}

	positions := make([]int, 0, len(query))
	last := -1
	qi := 0
	for i := 0; i < len(text) && qi < len(query); i++ {
		if text[i] != query[qi] {
			continue
		}
		positions = append(positions, i)
		score += 1.0
		if i == 0 || isBoundary(text[i-1]) {
			score += 1.0
		}
		if last >= 0 {
			score += proximityBonus(i - last - 1)
		}
		last = i
		qi++
	}
	if qi < len(query) {
		return 0, nil, false
	}

	score *= float64(len(query)) / float64(last+1)
	score *= 10.0 / (float64(len(text)) + 10.0)
	return score, positions, true
}

var proximity = func() (t [65]float64) {
	for gap := range t {
		t[gap] = 2.0 / math.Sqrt(float64(gap+1))
	}
	return t
}()

func proximityBonus(gap int) float64 {
	if gap < len(proximity) {
		return proximity[gap]
	}
	return 2.0 / math.Sqrt(float64(gap+1))
}

// wordChar marks [a-z0-9]; anything else before a match is a word boundary
var wordChar = func() (t [128]bool) {
	for c := 'a'; c <= 'z'; c++ {
		t[c] = true
	}
	for c := '0'; c <= '9'; c++ {
		t[c] = true
	}
	return t
}()

func isBoundary(r rune) bool {
	return r < 0 || r >= 128 || !wordChar[r]
}

func lowerRunes(s string) []rune {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}

type ranked[T any] struct {
	Match[T]
	index int
}

func compareRanked[T any](a, b ranked[T]) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	return cmp.Compare(a.index, b.index)
}

// worstFirst is a min-heap: the root is the weakest match kept so far
type worstFirst[T any] []ranked[T]

func (h worstFirst[T]) Len() int           { return len(h) }
func (h worstFirst[T]) Less(i, j int) bool { return compareRanked(h[i], h[j]) > 0 }
func (h worstFirst[T]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *worstFirst[T]) Push(x any)        { *h = append(*h, x.(ranked[T])) }
func (h *worstFirst[T]) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// topK keeps the k best matches in O(n log k) and returns them sorted
func topK[T any](found []ranked[T], k int) []ranked[T] {
	h := make(worstFirst[T], 0, k)
	for _, f := range found {
		if h.Len() < k {
			heap.Push(&h, f)
			continue
		}
		if compareRanked(f, h[0]) < 0 {
			h[0] = f
			heap.Fix(&h, 0)
		}
	}
	slices.SortFunc(h, compareRanked[T])
	return h
}
