package msa

import "fmt"

// RemoveLowest drops the n worst-scoring columns from the alignment and its
// score table in one step, keeping the two in lock-step: the alignment is
// compacted and every surviving table entry is reindexed against the removed
// set. Returns the removed column positions (pre-removal coordinates, sorted
// ascending). n must leave at least one column standing.
func RemoveLowest(a *Alignment, t *ScoreTable, n int) ([]int, error) {
	if t.Len() != a.Length() {
		panic(fmt.Sprintf("score table out of sync with alignment (%d entries, %d columns)",
			t.Len(), a.Length()))
	}
	removed, err := t.dropLowest(n)
	if err != nil {
		return nil, err
	}
	if err := a.deleteColumns(removed); err != nil {
		// dropLowest succeeded, so the removal set is valid; reaching this
		// means the lock-step invariant was already broken.
		panic(fmt.Sprintf("alignment rejected removal set from its own score table: %s", err))
	}
	t.reindex(removed)
	if t.Len() != a.Length() {
		panic(fmt.Sprintf("score table out of sync after removal (%d entries, %d columns)",
			t.Len(), a.Length()))
	}
	return removed, nil
}
