package opt

import (
	"context"
	"fmt"
	"log"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"topiary/internal/msa"
)

// HistogramStrategy greedily removes batches of the lowest-scoring columns.
// The batch size for each round is read off the score distribution itself:
// the population of the lowest histogram bin, scaled by how much of the
// original alignment remains, never less than one column. The loop is
// open-ended, bounded only by the outlier stop criterion or by the alignment
// shrinking to a single column.
type HistogramStrategy struct {
	Exec Executor
}

func (s HistogramStrategy) Run(ctx context.Context, rs *RunState) ([]Record, error) {
	// Baseline round on the full alignment; every later decision needs it.
	if err := s.executeRound(ctx, rs); err != nil {
		return nil, err
	}
	for {
		aln, tab := rs.Current()
		n := removalCount(tab.Scores(), rs.OriginalLength())
		if n >= aln.Length() {
			n = aln.Length() - 1
		}
		if n < 1 {
			log.Println("no further removal possible; stopping")
			break
		}
		if _, err := msa.RemoveLowest(aln, tab, n); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrOptimization, err)
		}
		if err := s.executeRound(ctx, rs); err != nil {
			return nil, err
		}
		if rs.converged() {
			log.Println("support score converged; stopping")
			break
		}
	}
	return rs.Records(), nil
}

func (s HistogramStrategy) executeRound(ctx context.Context, rs *RunState) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %s", ErrOptimization, err)
	}
	aln, _ := rs.Current()
	support, err := s.Exec.Score(ctx, aln, rs.round)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrOptimization, err)
	}
	rec := rs.RecordRound(support)
	log.Printf("round %d: %d columns, support %f\n", rec.Round, rec.Length, rec.Support)
	return nil
}

// removalCount computes the next batch size from the current score
// distribution: bin the scores with an automatic binning rule, take the
// population of the lowest bin, and scale it by the fraction of the original
// alignment still standing. Always at least 1 so every round makes progress.
// scores must be sorted ascending.
func removalCount(scores []float64, originalLen int) int {
	n := len(scores)
	if n < 2 || scores[0] == scores[n-1] {
		return 1
	}
	dividers := make([]float64, autoBins(scores)+1)
	floats.Span(dividers, scores[0], scores[n-1])
	// counting is half-open on bins, so nudge the top edge past the maximum
	dividers[len(dividers)-1] = math.Nextafter(scores[n-1], math.Inf(1))
	counts := stat.Histogram(nil, dividers, scores, nil)
	scaled := int(counts[0] * float64(n) / float64(originalLen))
	return max(scaled, 1)
}

// autoBins picks a bin count for the score distribution: the larger of the
// Sturges and Freedman-Diaconis estimates, the same compromise the common
// "auto" binning rules use. sorted must be ascending.
func autoBins(sorted []float64) int {
	n := len(sorted)
	sturges := int(math.Ceil(math.Log2(float64(n)))) + 1
	iqr := stat.Quantile(0.75, stat.Empirical, sorted, nil) -
		stat.Quantile(0.25, stat.Empirical, sorted, nil)
	if iqr <= 0 {
		return max(sturges, 1)
	}
	width := 2 * iqr / math.Cbrt(float64(n))
	fd := int(math.Ceil((sorted[n-1] - sorted[0]) / width))
	return max(sturges, fd, 1)
}
