package equilibrium

import "testing"

func TestConverged(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		epsilon float64
		want    bool
	}{
		{"spread within epsilon", []float64{5.0, 5.0004, 5.0002}, 0.001, true},
		{"spread exceeds epsilon", []float64{5.0, 5.0004, 5.0002}, 0.0001, false},
		{"spread exactly epsilon", []float64{1.0, 1.001}, 0.001, true},
		{"identical values, zero epsilon", []float64{7, 7, 7}, 0, true},
		{"empty is vacuously convergent", nil, 0.001, true},
		{"single value is vacuously convergent", []float64{3}, 0.001, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Converged(tt.values, tt.epsilon); got != tt.want {
				t.Errorf("Converged(%v, %v) = %v, want %v", tt.values, tt.epsilon, got, tt.want)
			}
		})
	}
}

// repeatTriples builds a history of n copies of tr.
func repeatTriples(tr Triple, n int) []Triple {
	history := make([]Triple, n)
	for i := range history {
		history[i] = tr
	}
	return history
}

func TestStagnated_FullWindowIdentical(t *testing.T) {
	seven := Triple{Mean: 7, Median: 7, Mode: 7}

	// Earlier entries differ; the trailing window is uniform.
	history := []Triple{{Mean: 1, Median: 2, Mode: 3}, {Mean: 4, Median: 5, Mode: 6}}
	history = append(history, repeatTriples(seven, StagnationWindow)...)

	if !Stagnated(history) {
		t.Error("Expected stagnation with 1000 identical trailing entries")
	}
}

func TestStagnated_WindowNotYetFull(t *testing.T) {
	seven := Triple{Mean: 7, Median: 7, Mode: 7}

	if Stagnated(repeatTriples(seven, StagnationWindow-1)) {
		t.Error("999 identical entries must not count as stagnation")
	}
	if Stagnated(nil) {
		t.Error("Empty history must not count as stagnation")
	}
}

func TestStagnated_DifferenceInsideWindowBlocks(t *testing.T) {
	seven := Triple{Mean: 7, Median: 7, Mode: 7}

	history := repeatTriples(seven, StagnationWindow+5)
	// Perturb one entry inside the trailing window. Equality is exact, so
	// even a tiny difference blocks stagnation.
	history[len(history)-500].Mode = 7.0000001

	if Stagnated(history) {
		t.Error("A differing entry inside the window must block stagnation")
	}
}

func TestStagnated_OnlyTrailingWindowMatters(t *testing.T) {
	seven := Triple{Mean: 7, Median: 7, Mode: 7}

	// A long varied prefix followed by exactly one full uniform window.
	history := make([]Triple, 0, 50+StagnationWindow)
	for i := 0; i < 50; i++ {
		history = append(history, Triple{Mean: float64(i), Median: float64(i), Mode: float64(i)})
	}
	history = append(history, repeatTriples(seven, StagnationWindow)...)

	if !Stagnated(history) {
		t.Error("Varied prefix must not block stagnation of the trailing window")
	}
}
