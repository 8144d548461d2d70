package exe

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"topiary/internal/msa"
	"topiary/internal/prep"
)

func TestSupportSum(t *testing.T) {
	testCases := []struct {
		name        string
		treeFile    string
		expected    float64
		expectedErr error
	}{
		{
			name:        "supported internal branches",
			treeFile:    "testdata/supported.nwk",
			expected:    1.75, // 0.5 + 1.25, terminal branches skipped
			expectedErr: nil,
		},
		{
			name:        "no support annotations",
			treeFile:    "testdata/nosupport.nwk",
			expected:    0,
			expectedErr: nil,
		},
		{
			name:        "bad newick",
			treeFile:    "testdata/bad.nwk",
			expectedErr: ErrInvalidTree,
		},
	}
	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			sum, err := SupportSum(test.treeFile)
			switch {
			case !errors.Is(err, test.expectedErr):
				t.Errorf("failed with unexpected error %+v", err)
			case errors.Is(err, test.expectedErr) && err != nil:
				t.Logf("%s", err)
			default:
				if sum != test.expected {
					t.Errorf("support sum %f, expected %f", sum, test.expected)
				}
			}
		})
	}
}

func TestEvaluatorRun(t *testing.T) {
	ev := Evaluator{
		Cmd:     "sh",
		Args:    []string{"-c", `printf '0.5\n0.25\n'`},
		Workdir: t.TempDir(),
	}
	path, err := ev.Run(context.Background(), "unused.fa")
	if err != nil {
		t.Fatalf("evaluator failed: %s", err)
	}
	scores, err := prep.ReadScores(path)
	if err != nil {
		t.Fatalf("could not read captured scores: %s", err)
	}
	if !reflect.DeepEqual(scores, []float64{0.5, 0.25}) {
		t.Errorf("scores %v, expected [0.5 0.25]", scores)
	}
}

func TestEvaluatorFailure(t *testing.T) {
	ev := Evaluator{
		Cmd:     "sh",
		Args:    []string{"-c", "echo broken >&2; exit 1"},
		Workdir: t.TempDir(),
	}
	_, err := ev.Run(context.Background(), "unused.fa")
	if !errors.Is(err, ErrToolFailed) {
		t.Fatalf("error %+v does not wrap ErrToolFailed", err)
	}
	// the tool's stderr must survive into the error for diagnosis
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("error %q does not carry the tool's stderr", err.Error())
	}
}

// End-to-end round via the shell: serialize the alignment, "build" a fixed
// supported tree, sum its internal supports.
func TestToolExecutorScore(t *testing.T) {
	names := []string{"A", "B", "C", "D"}
	seqs := [][]byte{[]byte("ACGT"), []byte("ACGA"), []byte("TCGT"), []byte("TCGA")}
	aln, err := msa.NewAlignment(names, seqs)
	if err != nil {
		t.Fatalf("could not build alignment: %s", err)
	}
	x := ToolExecutor{
		Builder: Builder{Cmd: "sh", Args: []string{"-c", `printf '((A,B)0.5,(C,D)0.75);\n'`}},
		Workdir: t.TempDir(),
	}
	support, err := x.Score(context.Background(), aln, 0)
	if err != nil {
		t.Fatalf("executor failed: %s", err)
	}
	if support != 1.25 {
		t.Errorf("support %f, expected 1.25", support)
	}
}

func TestBuilderFailurePropagates(t *testing.T) {
	names := []string{"A", "B"}
	aln, err := msa.NewAlignment(names, [][]byte{[]byte("AC"), []byte("AG")})
	if err != nil {
		t.Fatalf("could not build alignment: %s", err)
	}
	x := ToolExecutor{
		Builder: Builder{Cmd: "sh", Args: []string{"-c", "exit 3"}},
		Workdir: t.TempDir(),
	}
	if _, err := x.Score(context.Background(), aln, 0); !errors.Is(err, ErrToolFailed) {
		t.Fatalf("error %+v does not wrap ErrToolFailed", err)
	}
}
