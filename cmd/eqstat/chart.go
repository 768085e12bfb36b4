package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/guptarohit/asciigraph"

	"github.com/hello2himel/equilibrium-statistic/internal/config"
	"github.com/hello2himel/equilibrium-statistic/internal/equilibrium"
)

// renderChart plots the mean, median, and mode series over iterations.
func renderChart(out io.Writer, history []equilibrium.Triple, cfg *config.Config) {
	if len(history) == 0 {
		fmt.Fprintln(out, "No data to chart.")
		return
	}

	means := make([]float64, len(history))
	medians := make([]float64, len(history))
	modes := make([]float64, len(history))
	for i, tr := range history {
		means[i] = tr.Mean
		medians[i] = tr.Median
		modes[i] = tr.Mode
	}

	chart := asciigraph.PlotMany(
		[][]float64{means, medians, modes},
		asciigraph.Height(cfg.ChartHeight),
		asciigraph.Width(cfg.ChartWidth),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red, asciigraph.Green),
		asciigraph.SeriesLegends("mean", "median", "mode"),
		asciigraph.Caption("value per iteration"),
	)
	fmt.Fprintln(out, chart)
}

// printAnalysis renders the post-run convergence summary: iteration count
// and how far the spread shrank from first to last triple.
func printAnalysis(out io.Writer, result *equilibrium.Result, precision int) {
	if len(result.History) == 0 {
		return
	}

	first := result.History[0]
	last := result.History[len(result.History)-1]

	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Fprintf(out, "\n%s\n", cyan("Convergence analysis:"))
	fmt.Fprintf(out, "  Total iterations: %d\n", result.Iterations)
	fmt.Fprintf(out, "  Initial spread:   %s\n", formatFloat(first.Spread(), precision))
	fmt.Fprintf(out, "  Final spread:     %s\n", formatFloat(last.Spread(), precision))

	finalSpread := last.Spread()
	if finalSpread < 1e-10 {
		finalSpread = 1e-10 // avoid dividing by an exactly-flat final triple
	}
	fmt.Fprintf(out, "  Spread reduction: %.2fx\n", first.Spread()/finalSpread)
	fmt.Fprintf(out, "  Elapsed:          %s\n", result.Elapsed.Round(time.Microsecond))
}
