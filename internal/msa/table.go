package msa

import (
	"fmt"
	"slices"
	"sort"
)

// ColumnEntry ties a column's position in the current alignment to the
// quality score the external evaluator assigned it. Scores are produced once
// and never recomputed; only Index is rewritten as the alignment shrinks.
type ColumnEntry struct {
	Index int     // column position in the current alignment
	Score float64 // evaluator score for that column
}

// ScoreTable is the ranking of all surviving columns, sorted ascending by
// score. Order among exactly equal scores is whatever the stable sort
// produced from input order; equal evaluator outputs are rare and their
// relative order carries no meaning.
type ScoreTable struct {
	entries []ColumnEntry
}

// NewScoreTable ranks the evaluator's raw per-column output. The value on
// line i is taken to score column i.
func NewScoreTable(scores []float64) (*ScoreTable, error) {
	if len(scores) == 0 {
		return nil, ErrNoScores
	}
	entries := make([]ColumnEntry, len(scores))
	for i, s := range scores {
		entries[i] = ColumnEntry{Index: i, Score: s}
	}
	slices.SortStableFunc(entries, func(a, b ColumnEntry) int {
		switch {
		case a.Score < b.Score:
			return -1
		case a.Score > b.Score:
			return 1
		default:
			return 0
		}
	})
	return &ScoreTable{entries: entries}, nil
}

// Len returns the number of ranked columns.
func (t *ScoreTable) Len() int { return len(t.entries) }

// Lowest returns the worst-scoring surviving column.
func (t *ScoreTable) Lowest() ColumnEntry {
	if len(t.entries) == 0 {
		panic("lowest entry requested from empty score table")
	}
	return t.entries[0]
}

// Scores returns all surviving scores in ascending order.
func (t *ScoreTable) Scores() []float64 {
	scores := make([]float64, len(t.entries))
	for i, e := range t.entries {
		scores[i] = e.Score
	}
	return scores
}

// Entries returns a copy of the ranked entries.
func (t *ScoreTable) Entries() []ColumnEntry {
	return slices.Clone(t.entries)
}

func (t *ScoreTable) Clone() *ScoreTable {
	return &ScoreTable{entries: slices.Clone(t.entries)}
}

// dropLowest removes the n worst entries and returns their column indices,
// sorted ascending.
func (t *ScoreTable) dropLowest(n int) ([]int, error) {
	if n < 1 || n >= len(t.entries) {
		return nil, fmt.Errorf("%w, dropping %d of %d entries", ErrRemoval, n, len(t.entries))
	}
	dropped := make([]int, n)
	for i, e := range t.entries[:n] {
		dropped[i] = e.Index
	}
	t.entries = t.entries[n:]
	sort.Ints(dropped)
	return dropped, nil
}

// reindex shifts every surviving entry's column index down by the number of
// just-removed columns that preceded it. removed must be sorted ascending.
// After the shift, entry i's Index is that column's position in the rebuilt
// alignment; an off-by-one here silently corrupts every later round.
func (t *ScoreTable) reindex(removed []int) {
	for i := range t.entries {
		t.entries[i].Index -= sort.SearchInts(removed, t.entries[i].Index)
	}
}
