package opt

import "testing"

func TestShouldStop(t *testing.T) {
	testCases := []struct {
		name     string
		history  []float64
		best     float64
		expected bool
	}{
		{
			name:     "no history",
			history:  []float64{},
			best:     0,
			expected: false,
		},
		{
			name:     "too few observations",
			history:  []float64{1, 100, 1},
			best:     100,
			expected: false,
		},
		{
			name:     "too few observations even when extreme",
			history:  []float64{100, 100, 0},
			best:     100,
			expected: false,
		},
		{
			name:     "stable history continues",
			history:  []float64{100, 101, 99, 100, 100},
			best:     101,
			expected: false,
		},
		{
			name:     "latest far below the bulk",
			history:  []float64{100, 101, 99, 100, 100, 20},
			best:     101,
			expected: true,
		},
		{
			name:     "best far above the bulk",
			history:  []float64{100, 101, 99, 100, 100},
			best:     180,
			expected: true,
		},
		{
			name:     "flat history never stops",
			history:  []float64{50, 50, 50, 50, 50},
			best:     50,
			expected: false,
		},
	}
	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			if got := shouldStop(test.history, test.best); got != test.expected {
				t.Errorf("shouldStop = %v, expected %v", got, test.expected)
			}
		})
	}
}
