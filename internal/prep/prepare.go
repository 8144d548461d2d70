package prep

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"topiary/internal/msa"
)

// ScoreRunner produces a per-column score file for the alignment at alnPath
// and returns the path of the file it wrote. The production implementation
// runs the external column evaluator.
type ScoreRunner interface {
	Run(ctx context.Context, alnPath string) (string, error)
}

// PrepareInputs builds the starting alignment and column ranking.
//
// The evaluator only needs the alignment file path, so running it overlaps
// with parsing the alignment into memory; both must succeed. When scoresPath
// is non-empty the evaluator is skipped and the precomputed file is read
// instead.
func PrepareInputs(ctx context.Context, alnPath string, format Format, scoresPath string, runner ScoreRunner) (*msa.Alignment, *msa.ScoreTable, error) {
	var (
		aln    *msa.Alignment
		scores []float64
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		aln, err = ReadAlignment(alnPath, format)
		return err
	})
	g.Go(func() error {
		path := scoresPath
		if path == "" {
			if runner == nil {
				return fmt.Errorf("%w, no score file and no evaluator configured", ErrInvalidFile)
			}
			var err error
			if path, err = runner.Run(ctx, alnPath); err != nil {
				return err
			}
		}
		var err error
		scores, err = ReadScores(path)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if len(scores) != aln.Length() {
		return nil, nil, fmt.Errorf("%w, %d scores for alignment of length %d",
			ErrInvalidFile, len(scores), aln.Length())
	}
	tab, err := msa.NewScoreTable(scores)
	if err != nil {
		return nil, nil, err
	}
	return aln, tab, nil
}
