package equilibrium

import (
	"context"
	"fmt"
	"time"
)

// Run iterates the {mean, median, mode} transform from the initial dataset
// until the run converges or stagnates. The function handles iteration
// mechanics (loop, count, history) while the Criterion decides which
// termination conditions apply.
//
// Each round:
// 1. Computes the triple (mean, median, mode) of the current dataset
// 2. Appends the triple to the history
// 3. In bounded-spread mode, terminates CONVERGED if the triple's spread
//    is <= Criterion.Epsilon (convergence is checked first, so it wins
//    any tie with stagnation)
// 4. Terminates STAGNATED if the last StagnationWindow triples are
//    identical, dropping the trailing 999 duplicates from the returned
//    history so downstream reporting sees only the first of the repeats
// 5. Otherwise the triple becomes the next round's dataset
//
// The final value is the average of the last triple in either case.
//
// In stagnation-only mode the loop has no guaranteed upper bound: an input
// whose iteration sequence cycles without ever holding 1000 consecutive
// identical triples will run forever. That risk is part of the contract;
// callers wanting a bound must cancel ctx (an Observer that counts
// iterations and cancels is enough).
//
// Run returns an error, without having computed anything, if the initial
// dataset is empty or if a bounded-spread Criterion carries a non-positive
// epsilon.
func Run(ctx context.Context, initial []float64, criterion Criterion, observer Observer) (*Result, error) {
	startTime := time.Now()

	if len(initial) == 0 {
		return nil, fmt.Errorf("run: %w", ErrEmptyDataset)
	}
	if !criterion.StagnationOnly && criterion.Epsilon <= 0 {
		return nil, fmt.Errorf("run: epsilon must be positive, got %g", criterion.Epsilon)
	}

	current := append([]float64(nil), initial...)
	var history []Triple
	iteration := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run canceled after %d iterations: %w", iteration, err)
		}

		iteration++
		if observer != nil {
			observer.RecordIterationStart(iteration, current)
		}

		triple, err := summarize(current)
		if err != nil {
			// Unreachable while the dataset invariant holds (current is
			// never empty), but never silently drop a statistic error.
			return nil, fmt.Errorf("iteration %d: %w", iteration, err)
		}
		history = append(history, triple)

		if observer != nil {
			observer.RecordIterationEnd(iteration, triple)
		}

		if !criterion.StagnationOnly && Converged(triple.Values(), criterion.Epsilon) {
			result := &Result{
				Value:       triple.Average(),
				History:     history,
				Iterations:  iteration,
				Termination: TerminationConverged,
				Elapsed:     time.Since(startTime),
			}
			if observer != nil {
				observer.RecordRunComplete(result)
			}
			return result, nil
		}

		if Stagnated(history) {
			if len(history) >= StagnationWindow {
				history = history[:len(history)-(StagnationWindow-1)]
			}
			result := &Result{
				Value:       triple.Average(),
				History:     history,
				Iterations:  iteration,
				Termination: TerminationStagnated,
				Elapsed:     time.Since(startTime),
			}
			if observer != nil {
				observer.RecordRunComplete(result)
			}
			return result, nil
		}

		current = triple.Values()
	}
}
