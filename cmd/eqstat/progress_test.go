package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/hello2himel/equilibrium-statistic/internal/equilibrium"
)

func TestIterationCap_BoundsStagnationOnlyRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	capObs := &iterationCap{limit: 10, cancel: cancel}

	_, err := equilibrium.Run(ctx, []float64{7, 7, 7},
		equilibrium.Criterion{StagnationOnly: true}, capObs)
	if err == nil {
		t.Fatal("Expected the cap to abort the run")
	}
	if !capObs.tripped {
		t.Error("Expected the cap to report tripping")
	}
}

func TestIterationCap_ZeroLimitNeverTrips(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	capObs := &iterationCap{limit: 0, cancel: cancel}

	result, err := equilibrium.Run(ctx, []float64{1, 2, 2, 3, 100},
		equilibrium.Criterion{Epsilon: 0.001}, capObs)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if capObs.tripped {
		t.Error("Unlimited cap must not trip")
	}
	if result.Termination != equilibrium.TerminationConverged {
		t.Errorf("Expected convergence, got %s", result.Termination)
	}
}

func TestProgressPrinter_Output(t *testing.T) {
	var buf bytes.Buffer
	printer := &progressPrinter{
		out:       &buf,
		precision: 6,
		criterion: equilibrium.Criterion{Epsilon: 0.001},
	}

	ctx := context.Background()
	result, err := equilibrium.Run(ctx, []float64{1, 2, 2, 3, 100},
		equilibrium.Criterion{Epsilon: 0.001}, multiObserver{printer})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Iteration 1:") {
		t.Error("Expected first iteration header")
	}
	if !strings.Contains(out, "Input:  [1, 2, 2, 3, 100]") {
		t.Errorf("Expected initial dataset echo, got:\n%s", out)
	}
	if !strings.Contains(out, "Mean:   21.6") {
		t.Errorf("Expected first mean, got:\n%s", out)
	}
	if strings.Count(out, "Iteration ") != result.Iterations {
		t.Errorf("Expected %d iteration blocks", result.Iterations)
	}
}

func TestProgressPrinter_StagnationOnlyStatusLine(t *testing.T) {
	var buf bytes.Buffer
	printer := &progressPrinter{
		out:       &buf,
		precision: 6,
		criterion: equilibrium.Criterion{StagnationOnly: true},
	}

	printer.RecordIterationStart(1, []float64{7, 7, 7})
	printer.RecordIterationEnd(1, equilibrium.Triple{Mean: 7, Median: 7, Mode: 7})

	out := buf.String()
	if !strings.Contains(out, "running until stagnation") {
		t.Errorf("Expected stagnation status line, got:\n%s", out)
	}
	if strings.Contains(out, "Spread:") {
		t.Error("Stagnation-only mode must not print a spread target")
	}
}
