package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/hello2himel/equilibrium-statistic/internal/equilibrium"
)

const divider = "------------------------------------------------------------"

// progressPrinter renders per-iteration progress. It implements
// equilibrium.Observer so the engine stays free of output concerns.
type progressPrinter struct {
	out       io.Writer
	precision int
	criterion equilibrium.Criterion

	input []float64
}

func (p *progressPrinter) RecordIterationStart(iteration int, input []float64) {
	p.input = input
}

func (p *progressPrinter) RecordIterationEnd(iteration int, triple equilibrium.Triple) {
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(p.out, "%s\n", bold(fmt.Sprintf("Iteration %d:", iteration)))
	fmt.Fprintf(p.out, "  Input:  %s\n", formatValues(p.input, p.precision))
	fmt.Fprintf(p.out, "  Mean:   %s\n", formatFloat(triple.Mean, p.precision))
	fmt.Fprintf(p.out, "  Median: %s\n", formatFloat(triple.Median, p.precision))
	fmt.Fprintf(p.out, "  Mode:   %s\n", formatFloat(triple.Mode, p.precision))
	if p.criterion.StagnationOnly {
		fmt.Fprintf(p.out, "  Status: running until stagnation\n")
	} else {
		fmt.Fprintf(p.out, "  Spread: %s (target: <= %s)\n",
			formatFloat(triple.Spread(), p.precision),
			formatFloat(p.criterion.Epsilon, p.precision))
	}
	fmt.Fprintln(p.out)
}

func (p *progressPrinter) RecordRunComplete(result *equilibrium.Result) {}

// iterationCap cancels the run's context once the iteration count reaches
// the limit. This is the external bound for stagnation-only runs - the
// engine itself has none.
type iterationCap struct {
	limit   int
	cancel  context.CancelFunc
	tripped bool
}

func (c *iterationCap) RecordIterationStart(iteration int, input []float64) {}

func (c *iterationCap) RecordIterationEnd(iteration int, triple equilibrium.Triple) {
	if c.limit > 0 && iteration >= c.limit && !c.tripped {
		c.tripped = true
		c.cancel()
	}
}

func (c *iterationCap) RecordRunComplete(result *equilibrium.Result) {}

// multiObserver fans notifications out to several observers in order.
type multiObserver []equilibrium.Observer

func (m multiObserver) RecordIterationStart(iteration int, input []float64) {
	for _, o := range m {
		o.RecordIterationStart(iteration, input)
	}
}

func (m multiObserver) RecordIterationEnd(iteration int, triple equilibrium.Triple) {
	for _, o := range m {
		o.RecordIterationEnd(iteration, triple)
	}
}

func (m multiObserver) RecordRunComplete(result *equilibrium.Result) {
	for _, o := range m {
		o.RecordRunComplete(result)
	}
}

// formatFloat rounds v to the given number of decimal places for display,
// trimming trailing zeros. The engine itself never rounds.
func formatFloat(v float64, precision int) string {
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

// formatValues renders a dataset as [a, b, c] with display rounding.
func formatValues(values []float64, precision int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatFloat(v, precision)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
