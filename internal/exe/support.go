package exe

import (
	"errors"
	"fmt"
	"os"

	"github.com/evolbioinfo/gotree/io/newick"
	"github.com/evolbioinfo/gotree/tree"
)

var ErrInvalidTree = errors.New("invalid tree")

// SupportSum parses the newick tree at path and sums branch support over
// internal edges. Terminal edges are skipped (leaves carry a conventional
// default support that is not informative), as are internal edges with no
// support annotation at all.
func SupportSum(path string) (float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("error opening %s, %w", path, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			panic(fmt.Sprintf("could not close file %s, %s", path, err))
		}
	}()
	t, err := newick.NewParser(file).Parse()
	if err != nil {
		return 0, fmt.Errorf("%w, error parsing newick tree from %s: %s",
			ErrInvalidTree, path, err.Error())
	}
	return sumInternalSupports(t), nil
}

func sumInternalSupports(t *tree.Tree) float64 {
	var sum float64
	for _, e := range t.Edges() {
		if e.Right().Tip() || e.Support() == tree.NIL_SUPPORT {
			continue
		}
		sum += e.Support()
	}
	return sum
}
