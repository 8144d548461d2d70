// Package msa holds the in-memory alignment matrix and the per-column score
// bookkeeping that the optimization strategies mutate between rounds. The two
// structures are kept in lock-step: entry i of a ScoreTable always describes
// column i's score ranking for the Alignment it was built against.
package msa

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrDimensions = errors.New("inconsistent alignment dimensions")
	ErrNoScores   = errors.New("no column scores")
	ErrRemoval    = errors.New("invalid column removal")
)

// Alignment is a sequence matrix. Rows never change; columns are removed in
// batches between rounds. Column indices always refer to positions in the
// current state of the matrix.
type Alignment struct {
	names []string
	seqs  [][]byte
}

// NewAlignment builds an alignment from named rows. All rows must be
// non-empty and of equal length.
func NewAlignment(names []string, seqs [][]byte) (*Alignment, error) {
	if len(names) != len(seqs) || len(seqs) == 0 {
		return nil, fmt.Errorf("%w, %d names for %d sequences", ErrDimensions, len(names), len(seqs))
	}
	width := len(seqs[0])
	if width == 0 {
		return nil, fmt.Errorf("%w, empty sequences", ErrDimensions)
	}
	for i, s := range seqs {
		if len(s) != width {
			return nil, fmt.Errorf("%w, sequence %s has length %d (want %d)",
				ErrDimensions, names[i], len(s), width)
		}
	}
	return &Alignment{names: names, seqs: seqs}, nil
}

// NbSequences returns the number of rows.
func (a *Alignment) NbSequences() int { return len(a.seqs) }

// Length returns the current number of columns.
func (a *Alignment) Length() int { return len(a.seqs[0]) }

// Name returns the identifier of row i.
func (a *Alignment) Name(i int) string { return a.names[i] }

// Sequence returns the current characters of row i. The returned slice is the
// alignment's backing storage and must not be modified.
func (a *Alignment) Sequence(i int) []byte { return a.seqs[i] }

// Column returns a copy of the vertical slice at position j.
func (a *Alignment) Column(j int) []byte {
	col := make([]byte, len(a.seqs))
	for i, s := range a.seqs {
		col[i] = s[j]
	}
	return col
}

func (a *Alignment) Clone() *Alignment {
	seqs := make([][]byte, len(a.seqs))
	for i, s := range a.seqs {
		seqs[i] = slices.Clone(s)
	}
	return &Alignment{names: slices.Clone(a.names), seqs: seqs}
}

// deleteColumns rebuilds every row without the columns listed in cols, which
// must be sorted, unique, in range, and leave at least one column standing.
func (a *Alignment) deleteColumns(cols []int) error {
	if len(cols) == 0 || len(cols) >= a.Length() {
		return fmt.Errorf("%w, removing %d of %d columns", ErrRemoval, len(cols), a.Length())
	}
	for i, c := range cols {
		if c < 0 || c >= a.Length() {
			return fmt.Errorf("%w, column %d out of range [0, %d)", ErrRemoval, c, a.Length())
		}
		if i > 0 && cols[i-1] >= c {
			return fmt.Errorf("%w, removal set not sorted and unique", ErrRemoval)
		}
	}
	for i, s := range a.seqs {
		kept := make([]byte, 0, len(s)-len(cols))
		next := 0
		for j, ch := range s {
			if next < len(cols) && cols[next] == j {
				next++
				continue
			}
			kept = append(kept, ch)
		}
		a.seqs[i] = kept
	}
	return nil
}
