package equilibrium

import "time"

// Triple is one iteration's output: the mean, median, and mode of the
// dataset the iteration consumed. After the first iteration the triple is
// also the next iteration's input dataset.
type Triple struct {
	Mean   float64
	Median float64
	Mode   float64
}

// Values returns the triple as a slice, in mean/median/mode order.
func (t Triple) Values() []float64 {
	return []float64{t.Mean, t.Median, t.Mode}
}

// Spread is the difference between the largest and smallest component.
func (t Triple) Spread() float64 {
	min, max := t.Mean, t.Mean
	for _, v := range []float64{t.Median, t.Mode} {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return max - min
}

// Average is the arithmetic mean of the three components. The equilibrium
// statistic is the Average of the final triple.
func (t Triple) Average() float64 {
	return (t.Mean + t.Median + t.Mode) / 3
}

// Criterion controls how a run terminates.
type Criterion struct {
	// Epsilon is the convergence threshold: the run converges once the
	// spread (max - min) of an iteration's triple is <= Epsilon. Must be
	// positive unless StagnationOnly is set. Ignored in stagnation-only
	// mode.
	Epsilon float64

	// StagnationOnly disables the convergence check entirely; only
	// stagnation (1000 consecutive identical triples) can end the run.
	// Such a run has no guaranteed upper bound - callers wanting one must
	// cancel the context passed to Run.
	StagnationOnly bool
}

// Termination identifies which condition ended a run.
type Termination string

const (
	// TerminationConverged means the triple's spread fell within epsilon.
	TerminationConverged Termination = "converged"

	// TerminationStagnated means the last StagnationWindow triples were
	// identical.
	TerminationStagnated Termination = "stagnated"
)

// Result captures the outcome of a run.
type Result struct {
	// Value is the equilibrium statistic: the average of the final triple.
	Value float64

	// History holds one Triple per iteration, in iteration order. When the
	// run stagnated the trailing 999 duplicates are dropped, so the last
	// entry is the first of the stagnated repeats (see Run).
	History []Triple

	// Iterations is the number of iterations performed, counting the
	// duplicates a stagnated history omits.
	Iterations int

	// Termination records which condition ended the run.
	Termination Termination

	// Elapsed is the total duration of the run.
	Elapsed time.Duration
}

// Observer receives per-iteration notifications from Run. Implementations
// render progress, collect metrics, or impose external limits by canceling
// the run's context; the engine itself never prints.
//
// This interface is optional - callers can pass nil to Run to disable
// observation.
type Observer interface {
	// RecordIterationStart is called at the beginning of each iteration
	// with the dataset that iteration will consume.
	RecordIterationStart(iteration int, input []float64)

	// RecordIterationEnd is called after the iteration's triple has been
	// computed and appended to the history.
	RecordIterationEnd(iteration int, triple Triple)

	// RecordRunComplete is called once, after the run terminates.
	RecordRunComplete(result *Result)
}
