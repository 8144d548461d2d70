package opt

import "slices"

// Optimality is the reporting label attached to each round once a run
// completes. It reflects the final ranking of the history table only; the
// engine's best alignment is tracked separately (first-seen maximum).
type Optimality int

const (
	Suboptimal Optimality = iota
	Optimal
)

func (o Optimality) String() string {
	if o == Optimal {
		return "Optimal"
	}
	return "Sub-optimal"
}

// Record describes one completed round. Immutable once appended; the label is
// attached in a final pass over the whole history.
type Record struct {
	Round   int        // 0-based round number in execution order
	Length  int        // alignment column count after this round's removal
	Lowest  float64    // lowest surviving column score this round
	Support float64    // summed internal-branch support of this round's tree
	Label   Optimality // attached by LabelRecords
}

// LabelRecords returns the history sorted by support descending, with the top
// record labeled Optimal and every other Sub-optimal. Records with equal
// support keep their execution order, so ties resolve to exactly one Optimal
// label. The input is not modified.
func LabelRecords(records []Record) []Record {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b Record) int {
		switch {
		case a.Support > b.Support:
			return -1
		case a.Support < b.Support:
			return 1
		default:
			return 0
		}
	})
	for i := range out {
		if i == 0 {
			out[i].Label = Optimal
		} else {
			out[i].Label = Suboptimal
		}
	}
	return out
}
