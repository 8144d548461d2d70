package opt

import (
	"fmt"

	"topiary/internal/msa"
)

// RunState owns everything a strategy mutates across rounds: the pristine
// original alignment and ranking (bisection restarts every step from these),
// the current shrinking copies, the best alignment seen so far, and the full
// support history feeding the outlier stop criterion. Exactly one RunState is
// live per optimization run and it is owned exclusively by the running
// strategy.
type RunState struct {
	origAln *msa.Alignment
	origTab *msa.ScoreTable

	curAln *msa.Alignment
	curTab *msa.ScoreTable

	bestAln     *msa.Alignment
	bestSupport float64
	hasBest     bool

	supports []float64
	records  []Record
	round    int
}

func NewRunState(aln *msa.Alignment, tab *msa.ScoreTable) (*RunState, error) {
	if aln.Length() != tab.Len() {
		return nil, fmt.Errorf("%w, %d column scores for alignment of length %d",
			msa.ErrDimensions, tab.Len(), aln.Length())
	}
	return &RunState{
		origAln: aln,
		origTab: tab,
		curAln:  aln.Clone(),
		curTab:  tab.Clone(),
	}, nil
}

// Current returns the mutable alignment and ranking for the round in
// progress.
func (rs *RunState) Current() (*msa.Alignment, *msa.ScoreTable) {
	return rs.curAln, rs.curTab
}

// OriginalLength returns the column count before any removal.
func (rs *RunState) OriginalLength() int { return rs.origAln.Length() }

// Reset discards the current alignment and ranking and starts over from the
// originals. Bisection calls this before every step, since "remove the N
// worst columns" is only meaningful against the original ranking.
func (rs *RunState) Reset() {
	rs.curAln = rs.origAln.Clone()
	rs.curTab = rs.origTab.Clone()
}

// RecordRound appends the completed round to the history and keeps the best
// alignment up to date. The first-seen maximum wins ties, so the engine
// result is stable even when the final report ranks equal supports.
func (rs *RunState) RecordRound(support float64) Record {
	rec := Record{
		Round:   rs.round,
		Length:  rs.curAln.Length(),
		Lowest:  rs.curTab.Lowest().Score,
		Support: support,
	}
	rs.records = append(rs.records, rec)
	rs.supports = append(rs.supports, support)
	if !rs.hasBest || support > rs.bestSupport {
		rs.bestAln = rs.curAln.Clone()
		rs.bestSupport = support
		rs.hasBest = true
	}
	rs.round++
	return rec
}

// Best returns the best-scoring alignment seen so far and its support.
func (rs *RunState) Best() (*msa.Alignment, float64) {
	if !rs.hasBest {
		panic("best alignment requested before any round completed")
	}
	return rs.bestAln, rs.bestSupport
}

// Records returns the round history in execution order.
func (rs *RunState) Records() []Record {
	out := make([]Record, len(rs.records))
	copy(out, rs.records)
	return out
}
