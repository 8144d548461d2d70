package opt

import (
	"context"
	"errors"
	"testing"
)

func TestRemovalCount(t *testing.T) {
	uniform := func(n int) []float64 {
		scores := make([]float64, n)
		for i := 0; i < n; i++ {
			scores[i] = float64(i)
		}
		return scores
	}
	skewed := make([]float64, 50)
	for i := range skewed {
		skewed[i] = 0.9 + float64(i)/500
	}
	skewed[0] = 0.0
	testCases := []struct {
		name        string
		scores      []float64
		originalLen int
		expected    int
	}{
		{
			name:        "single score",
			scores:      []float64{0.5},
			originalLen: 100,
			expected:    1,
		},
		{
			name:        "all scores equal",
			scores:      []float64{0.5, 0.5, 0.5, 0.5},
			originalLen: 100,
			expected:    1,
		},
		{
			name:        "uniform at full length",
			scores:      uniform(100),
			originalLen: 100,
			expected:    13, // 8 bins over [0,99], 13 scores below 12.375
		},
		{
			name:        "uniform at half of original",
			scores:      uniform(100),
			originalLen: 200,
			expected:    6, // same bin population scaled by 100/200
		},
		{
			name:        "scaling floors at one",
			scores:      skewed,
			originalLen: 10000,
			expected:    1,
		},
	}
	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			if got := removalCount(test.scores, test.originalLen); got != test.expected {
				t.Errorf("removal count %d, expected %d", got, test.expected)
			}
		})
	}
}

func TestRemovalCountAlwaysPositive(t *testing.T) {
	distributions := [][]float64{
		{0.1, 0.2},
		{0, 0, 0, 1},
		{1, 2, 4, 8, 16, 32, 64},
		func() []float64 {
			s := make([]float64, 500)
			for i := range s {
				s[i] = float64(i * i)
			}
			return s
		}(),
	}
	for _, scores := range distributions {
		if got := removalCount(scores, 100000); got < 1 {
			t.Errorf("removal count %d for %d scores, expected >= 1", got, len(scores))
		}
	}
}

func TestHistogramStrategy(t *testing.T) {
	// the sixth support is far below the bulk of the history, so the outlier
	// criterion fires exactly after round 5
	exec := &scriptExec{supports: []float64{100, 101, 99, 100, 100, 20}}
	rs := testRunState(t, 200)
	history, err := HistogramStrategy{Exec: exec}.Run(context.Background(), rs)
	if err != nil {
		t.Fatalf("strategy failed: %s", err)
	}
	if exec.calls != 6 {
		t.Errorf("executor called %d times, expected 6", exec.calls)
	}
	if len(history) != 6 {
		t.Fatalf("history has %d rounds, expected 6", len(history))
	}
	if history[0].Length != 200 {
		t.Errorf("baseline round ran on %d columns, expected 200", history[0].Length)
	}
	for i := 1; i < len(history); i++ {
		if history[i].Length >= history[i-1].Length {
			t.Errorf("round %d did not shrink the alignment (%d -> %d)",
				i, history[i-1].Length, history[i].Length)
		}
	}
	best, support := rs.Best()
	if support != 101 {
		t.Errorf("best support %f, expected 101", support)
	}
	if best.Length() != history[1].Length {
		t.Errorf("best alignment has %d columns, expected round 1's %d", best.Length(), history[1].Length)
	}
}

// With two columns the strategy must remove down to one column and then stop
// cleanly rather than trying to empty the alignment.
func TestHistogramStrategyFloor(t *testing.T) {
	exec := &scriptExec{supports: []float64{10, 9}}
	rs := testRunState(t, 2)
	history, err := HistogramStrategy{Exec: exec}.Run(context.Background(), rs)
	if err != nil {
		t.Fatalf("strategy failed: %s", err)
	}
	if exec.calls != 2 {
		t.Errorf("executor called %d times, expected 2", exec.calls)
	}
	if last := history[len(history)-1]; last.Length != 1 {
		t.Errorf("final round has %d columns, expected 1", last.Length)
	}
}

func TestHistogramStrategyExecutorFailure(t *testing.T) {
	// scripted executor fails once its supports run out
	exec := &scriptExec{supports: []float64{100, 101}}
	rs := testRunState(t, 200)
	_, err := HistogramStrategy{Exec: exec}.Run(context.Background(), rs)
	if err == nil {
		t.Fatal("expected executor failure to propagate")
	}
	if !errors.Is(err, ErrOptimization) {
		t.Errorf("error %+v does not wrap ErrOptimization", err)
	}
}
