package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hello2himel/equilibrium-statistic/internal/equilibrium"
	"github.com/hello2himel/equilibrium-statistic/internal/runlog"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the equilibrium statistic calculation",
	Long: `Iterate the {mean, median, mode} transform on a dataset until it
converges within epsilon or stagnates.

The dataset comes from --data, or from interactive prompts when the flag
is omitted. Pass --stagnation-only (or enter '*' at the epsilon prompt)
to disable the convergence check and run until 1000 identical iterations.

A stagnation-only run has no guaranteed upper bound; use --max-iterations
to impose one from the outside.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dataFlag, _ := cmd.Flags().GetString("data")
		epsilonFlag, _ := cmd.Flags().GetFloat64("epsilon")
		stagnationOnly, _ := cmd.Flags().GetBool("stagnation-only")
		maxIterations, _ := cmd.Flags().GetInt("max-iterations")
		noSave, _ := cmd.Flags().GetBool("no-save")

		precision := cfg.Precision
		if cmd.Flags().Changed("precision") {
			precision, _ = cmd.Flags().GetInt("precision")
		}

		showGraph := cfg.Graph
		if cmd.Flags().Changed("graph") {
			showGraph, _ = cmd.Flags().GetBool("graph")
		}

		var data []float64
		var criterion equilibrium.Criterion

		if dataFlag != "" {
			var err error
			data, err = parseDataset(dataFlag)
			if err != nil {
				return err
			}
			criterion = equilibrium.Criterion{Epsilon: cfg.Epsilon, StagnationOnly: stagnationOnly}
			if cmd.Flags().Changed("epsilon") {
				if stagnationOnly {
					return fmt.Errorf("--epsilon and --stagnation-only are mutually exclusive")
				}
				criterion.Epsilon = epsilonFlag
			}
		} else {
			var err error
			data, criterion, showGraph, err = acquireInteractive()
			if err != nil {
				return err
			}
		}

		return executeRun(cmd.Context(), data, criterion, runOptions{
			precision:     precision,
			showGraph:     showGraph,
			maxIterations: maxIterations,
			save:          cfg.HistoryEnabled && !noSave,
		})
	},
}

type runOptions struct {
	precision     int
	showGraph     bool
	maxIterations int
	save          bool
}

func executeRun(parent context.Context, data []float64, criterion equilibrium.Criterion, opts runOptions) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Printf("%s\n", cyan("=== Equilibrium Statistic ==="))
	fmt.Printf("Dataset: %s\n", formatValues(data, opts.precision))
	if criterion.StagnationOnly {
		fmt.Printf("Mode:    %s\n", yellow("stagnation-only (run until 1000 identical iterations)"))
	} else {
		fmt.Printf("Epsilon: %s\n", yellow(formatFloat(criterion.Epsilon, opts.precision)))
	}
	fmt.Println()

	var observers multiObserver
	if !quiet {
		observers = append(observers, &progressPrinter{
			out:       os.Stdout,
			precision: opts.precision,
			criterion: criterion,
		})
	}
	capObs := &iterationCap{limit: opts.maxIterations, cancel: cancel}
	observers = append(observers, capObs)

	result, err := equilibrium.Run(ctx, data, criterion, observers)
	if err != nil {
		if capObs.tripped {
			return fmt.Errorf("stopped by --max-iterations: no termination within %d iterations", opts.maxIterations)
		}
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("interrupted")
		}
		return err
	}

	printResult(result, criterion, opts.precision)

	if opts.save {
		saveRun(parent, data, criterion, result)
	}

	if opts.showGraph {
		fmt.Println()
		renderChart(os.Stdout, result.History, cfg)
		printAnalysis(os.Stdout, result, opts.precision)
	}

	return nil
}

// printResult renders the termination banner and final value.
func printResult(result *equilibrium.Result, criterion equilibrium.Criterion, precision int) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	magenta := color.New(color.FgMagenta, color.Bold).SprintFunc()

	fmt.Println(divider)
	switch result.Termination {
	case equilibrium.TerminationConverged:
		fmt.Printf("%s after %d iterations\n", green("CONVERGENCE ACHIEVED"), result.Iterations)
	case equilibrium.TerminationStagnated:
		label := "STAGNATION DETECTED"
		if criterion.StagnationOnly {
			label = "STAGNATION ACHIEVED"
		}
		fmt.Printf("%s after %d iterations\n", magenta(label), result.Iterations)
		fmt.Println("Values were identical for the last 1000 iterations.")
	}
	fmt.Printf("Equilibrium statistic: %s\n", green(formatFloat(result.Value, precision)))
}

// saveRun records the completed run in the run log. Persistence problems
// are warnings, not failures - the result has already been reported.
func saveRun(ctx context.Context, data []float64, criterion equilibrium.Criterion, result *equilibrium.Result) {
	log, err := runlog.Open(cfg.HistoryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run log: %v\n", err)
		return
	}
	defer func() { _ = log.Close() }()

	_, err = log.Record(ctx, &runlog.Record{
		Dataset:     data,
		Criterion:   criterion,
		Termination: result.Termination,
		Iterations:  result.Iterations,
		Value:       result.Value,
		Elapsed:     result.Elapsed,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not record run: %v\n", err)
	}
}

func init() {
	runCmd.Flags().StringP("data", "d", "", "Comma-separated dataset, e.g. \"1,2,2,3,100\"")
	runCmd.Flags().Float64P("epsilon", "e", 0.001, "Convergence threshold (default from config)")
	runCmd.Flags().Bool("stagnation-only", false, "Disable the convergence check; run until stagnation")
	runCmd.Flags().Bool("graph", true, "Show the convergence chart after the run")
	runCmd.Flags().Int("max-iterations", 0, "Abort if no termination within N iterations (0 = unlimited)")
	runCmd.Flags().Int("precision", 6, "Decimal places for displayed values (default from config)")
	runCmd.Flags().Bool("no-save", false, "Do not record this run in the history log")
	rootCmd.AddCommand(runCmd)
}
