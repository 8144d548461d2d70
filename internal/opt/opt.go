// Package opt implements the column-selection optimization engine: the run
// state shared by all rounds and the two search strategies (histogram-driven
// greedy removal and bisection over removal counts) that decide how many
// low-scoring columns to discard before each tree rebuild.
package opt

import (
	"context"
	"errors"

	"topiary/internal/msa"
)

var ErrOptimization = errors.New("optimization failed")

// Executor turns the current alignment into a single scalar tree-support
// score. The production implementation shells out to a tree builder; tests
// substitute scripted values.
type Executor interface {
	Score(ctx context.Context, aln *msa.Alignment, round int) (float64, error)
}

// Strategy runs one optimization pass over a run state and returns the
// completed round history. The best alignment is retrieved from the run
// state afterwards.
type Strategy interface {
	Run(ctx context.Context, rs *RunState) ([]Record, error)
}
