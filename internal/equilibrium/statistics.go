package equilibrium

import (
	"errors"
	"fmt"

	"github.com/montanaflynn/stats"
)

// ErrEmptyDataset is returned when a statistic is requested for a dataset
// with no elements. The engine's own invariants keep it from ever computing
// on an empty dataset, so callers only see this for malformed input.
var ErrEmptyDataset = errors.New("dataset must not be empty")

// Mean returns the arithmetic mean of data. No rounding is applied; display
// rounding is a presentation concern.
func Mean(data []float64) (float64, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("mean: %w", ErrEmptyDataset)
	}
	return stats.Mean(data)
}

// Median returns the standard median of data: the middle value of the
// sorted sequence for odd counts, the mean of the two middle values for
// even counts. The input ordering is not mutated.
func Median(data []float64) (float64, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("median: %w", ErrEmptyDataset)
	}
	return stats.Median(data)
}

// ModeResult is the tagged outcome of a mode calculation. Mode cannot fail
// for a non-empty dataset; when no single representative value exists it
// substitutes the mean and says so via Fallback rather than erroring.
type ModeResult struct {
	// Value is the mode, or the mean when Fallback is set.
	Value float64

	// Fallback is true when every value was distinct (no true mode) or the
	// tie-break could not be computed, and Value is the dataset's mean.
	Fallback bool
}

// Mode returns the most frequent value in data. Ties between equally
// frequent values break toward the numerically smallest one - not the first
// seen. When every value occurs exactly once there is no true mode and the
// result falls back to the mean.
//
// Note: stats.Mode is not used here because it reports "no mode" whenever
// the tied modes cover the whole dataset (e.g. [1,1,2,2]), where this
// calculator must return the smallest tied value.
func Mode(data []float64) (ModeResult, error) {
	if len(data) == 0 {
		return ModeResult{}, fmt.Errorf("mode: %w", ErrEmptyDataset)
	}

	counts := make(map[float64]int, len(data))
	maxCount := 0
	for _, v := range data {
		counts[v]++
		if counts[v] > maxCount {
			maxCount = counts[v]
		}
	}

	if maxCount <= 1 {
		return fallbackToMean(data)
	}

	modes := make([]float64, 0, len(counts))
	for v, n := range counts {
		if n == maxCount {
			modes = append(modes, v)
		}
	}

	smallest, err := stats.Min(modes)
	if err != nil {
		// Cannot happen for a non-empty dataset; degrade to the mean
		// rather than failing outward.
		return fallbackToMean(data)
	}
	return ModeResult{Value: smallest}, nil
}

func fallbackToMean(data []float64) (ModeResult, error) {
	mean, err := Mean(data)
	if err != nil {
		return ModeResult{}, err
	}
	return ModeResult{Value: mean, Fallback: true}, nil
}

// summarize computes one iteration's triple from the current dataset.
func summarize(data []float64) (Triple, error) {
	mean, err := Mean(data)
	if err != nil {
		return Triple{}, err
	}
	median, err := Median(data)
	if err != nil {
		return Triple{}, err
	}
	mode, err := Mode(data)
	if err != nil {
		return Triple{}, err
	}
	return Triple{Mean: mean, Median: median, Mode: mode.Value}, nil
}
