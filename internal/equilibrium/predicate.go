package equilibrium

import "github.com/montanaflynn/stats"

// StagnationWindow is the number of trailing consecutive identical triples
// required to declare a run stagnated. It is a fixed part of the contract,
// not a tunable.
const StagnationWindow = 1000

// Converged reports whether all values lie within epsilon of each other,
// i.e. max(values) - min(values) <= epsilon. Zero or one value is vacuously
// convergent.
func Converged(values []float64, epsilon float64) bool {
	if len(values) < 2 {
		return true
	}
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)
	return max-min <= epsilon
}

// Stagnated reports whether the last StagnationWindow entries of history
// are all exactly identical. Equality is element-wise and exact - no
// tolerance. Histories shorter than the window are never stagnated.
func Stagnated(history []Triple) bool {
	if len(history) < StagnationWindow {
		return false
	}
	window := history[len(history)-StagnationWindow:]
	first := window[0]
	for _, t := range window[1:] {
		if t != first {
			return false
		}
	}
	return true
}
