package opt

import (
	"context"
	"fmt"
	"log"

	"topiary/internal/msa"
)

// BisectionStrategy binary-searches over how many of the lowest-scoring
// columns to remove, operating on an integer interval [start, stop) of
// removal counts rather than on column identities. Every step starts fresh
// from the original alignment and ranking, since "remove the N worst" is
// only meaningful against the original ordering.
//
// The search assumes support versus removal count is roughly unimodal. That
// assumption is not validated; this is a practical local-search heuristic,
// not a proven-optimal algorithm.
type BisectionStrategy struct {
	Exec Executor
}

func (s BisectionStrategy) Run(ctx context.Context, rs *RunState) ([]Record, error) {
	// Baseline round on the full alignment seeds the comparison support.
	prev, err := s.executeRound(ctx, rs)
	if err != nil {
		return nil, err
	}
	start, stop := 0, rs.OriginalLength()
	for {
		num := (stop - start) / 2
		if num < 1 {
			break
		}
		n := start + num
		if n >= rs.OriginalLength() {
			n = rs.OriginalLength() - 1
		}
		rs.Reset()
		aln, tab := rs.Current()
		if _, err := msa.RemoveLowest(aln, tab, n); err != nil {
			// interval arithmetic ran out of removable columns; this branch
			// is resolved
			log.Printf("cannot remove %d columns; stopping\n", n)
			break
		}
		support, err := s.executeRound(ctx, rs)
		if err != nil {
			return nil, err
		}
		if support > prev {
			start += num
		} else {
			stop -= num
		}
		// the new support is always the baseline for the next step
		prev = support
	}
	return rs.Records(), nil
}

func (s BisectionStrategy) executeRound(ctx context.Context, rs *RunState) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %s", ErrOptimization, err)
	}
	aln, _ := rs.Current()
	support, err := s.Exec.Score(ctx, aln, rs.round)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrOptimization, err)
	}
	rec := rs.RecordRound(support)
	log.Printf("round %d: %d columns, support %f\n", rec.Round, rec.Length, rec.Support)
	return support, nil
}
