package opt

import "gonum.org/v1/gonum/stat"

// Heuristic convergence detector, not a hypothesis test: once enough rounds
// have accumulated, a run stops when the latest support or the best-ever
// support drifts a fixed number of standard deviations away from the bulk of
// the history (latest far below, or best far above).
const (
	minObservations = 4
	zThreshold      = 2.0
)

// shouldStop reports whether the most recent round is a statistical outlier
// justifying termination. history holds every recorded support score, latest
// last; best is the best-ever support. With fewer than minObservations
// scores it never stops.
func shouldStop(history []float64, best float64) bool {
	if len(history) < minObservations {
		return false
	}
	mean, sd := stat.MeanStdDev(history, nil)
	if sd == 0 {
		return false
	}
	latest := history[len(history)-1]
	return (latest-mean)/sd <= -zThreshold || (best-mean)/sd >= zThreshold
}

func (rs *RunState) converged() bool {
	return shouldStop(rs.supports, rs.bestSupport)
}
