// Package equilibrium computes the equilibrium statistic: the scalar a
// numeric dataset settles on when it is repeatedly replaced by the triple
// {mean, median, mode} of its previous state.
//
// # Overview
//
// Each iteration summarizes the current dataset into a Triple and the
// triple becomes the next iteration's dataset. Two conditions can end the
// run:
//
//   - Convergence: the spread (max - min) of the triple is within an
//     epsilon supplied by the caller.
//   - Stagnation: the last 1000 iteration triples are exactly identical.
//
// Convergence is evaluated first each round, so it wins ties. A Criterion
// with StagnationOnly set skips the convergence check entirely; such a run
// can only stagnate, and is unbounded for inputs that cycle without ever
// repeating 1000 times in a row. That is a documented property, not a bug -
// callers wanting a bound cancel the context.
//
// # Core Types
//
// Triple is one iteration's {mean, median, mode} output. Criterion selects
// bounded-spread or stagnation-only termination. Result carries the final
// value (the average of the last triple), the per-iteration history, the
// iteration count, and which condition fired.
//
// When a run stagnates, the returned history drops the trailing 999
// duplicate entries: its last entry is the first triple of the stagnated
// stretch, which keeps downstream charts from plotting a 1000-entry flat
// line. Iterations still counts every round performed.
//
// # Statistic Semantics
//
// Mean and median are the usual definitions. Mode is the most frequent
// value, with two deliberate wrinkles: ties between equally frequent values
// break to the numerically smallest one, and a dataset where every value is
// distinct has no true mode, so the mode degrades to the mean (reported via
// ModeResult.Fallback). Mode never fails for a non-empty dataset.
//
// # Usage Example
//
//	result, err := equilibrium.Run(ctx, []float64{1, 2, 2, 3, 100},
//	    equilibrium.Criterion{Epsilon: 0.001}, nil)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("equilibrium statistic: %g after %d iterations\n",
//	    result.Value, result.Iterations)
//
// Pass an Observer to receive per-iteration notifications; the engine
// itself performs no I/O.
package equilibrium
