package exe

import (
	"context"
	"fmt"
	"path/filepath"

	"topiary/internal/msa"
	"topiary/internal/prep"
)

// ToolExecutor performs one full external round: serialize the current
// alignment as relaxed phylip, run the tree builder on it, and sum the
// supports of the resulting tree. It satisfies the optimizer's Executor
// interface. Per-round artifacts are left in Workdir for inspection.
type ToolExecutor struct {
	Builder Builder
	Workdir string
}

func (x ToolExecutor) Score(ctx context.Context, aln *msa.Alignment, round int) (float64, error) {
	alnPath := filepath.Join(x.Workdir, fmt.Sprintf("round%d.phy", round))
	if err := prep.WriteAlignment(aln, prep.Phylip, alnPath); err != nil {
		return 0, err
	}
	treePath, err := x.Builder.Build(ctx, alnPath, x.Workdir, round)
	if err != nil {
		return 0, err
	}
	return SupportSum(treePath)
}
