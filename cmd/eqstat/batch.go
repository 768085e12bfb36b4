package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hello2himel/equilibrium-statistic/internal/equilibrium"
	"github.com/hello2himel/equilibrium-statistic/internal/runlog"
)

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Run the calculation for every dataset in a file",
	Long: `Read datasets from a file (one comma-separated list per line; blank
lines and lines starting with '#' are skipped) and compute the
equilibrium statistic for each. Runs execute concurrently and results
print in input order once all complete.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		epsilon, _ := cmd.Flags().GetFloat64("epsilon")
		stagnationOnly, _ := cmd.Flags().GetBool("stagnation-only")
		parallel, _ := cmd.Flags().GetInt("parallel")
		maxIterations, _ := cmd.Flags().GetInt("max-iterations")
		noSave, _ := cmd.Flags().GetBool("no-save")

		if !cmd.Flags().Changed("epsilon") {
			epsilon = cfg.Epsilon
		}
		criterion := equilibrium.Criterion{Epsilon: epsilon, StagnationOnly: stagnationOnly}
		if stagnationOnly {
			criterion.Epsilon = 0
		}

		jobs, err := readDatasets(args[0])
		if err != nil {
			return err
		}
		if len(jobs) == 0 {
			return fmt.Errorf("%s contains no datasets", args[0])
		}

		results := make([]*equilibrium.Result, len(jobs))

		g, ctx := errgroup.WithContext(cmd.Context())
		if parallel < 1 {
			parallel = 1
		}
		g.SetLimit(parallel)

		for i, job := range jobs {
			i, job := i, job
			g.Go(func() error {
				runCtx, cancel := context.WithCancel(ctx)
				defer cancel()

				capObs := &iterationCap{limit: maxIterations, cancel: cancel}
				result, err := equilibrium.Run(runCtx, job.data, criterion, capObs)
				if err != nil {
					if capObs.tripped {
						return fmt.Errorf("line %d: no termination within %d iterations", job.line, maxIterations)
					}
					return fmt.Errorf("line %d: %w", job.line, err)
				}
				results[i] = result
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		printBatchResults(jobs, results, cfg.Precision)

		if cfg.HistoryEnabled && !noSave {
			saveBatch(cmd.Context(), jobs, results, criterion)
		}
		return nil
	},
}

type batchJob struct {
	line int
	raw  string
	data []float64
}

// readDatasets parses one dataset per non-empty, non-comment line.
func readDatasets(path string) ([]batchJob, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open datasets file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var jobs []batchJob
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		data, err := parseDataset(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		jobs = append(jobs, batchJob{line: lineNo, raw: line, data: data})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read datasets file: %w", err)
	}
	return jobs, nil
}

func printBatchResults(jobs []batchJob, results []*equilibrium.Result, precision int) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()

	fmt.Printf("%s\n", cyan("=== Batch Results ==="))
	fmt.Printf("%-6s %-32s %-11s %6s  %s\n", "LINE", "DATASET", "RESULT", "ITER", "VALUE")
	for i, job := range jobs {
		result := results[i]
		fmt.Printf("%-6d %-32s %-11s %6d  %s\n",
			job.line,
			truncate(job.raw, 32),
			string(result.Termination),
			result.Iterations,
			formatFloat(result.Value, precision),
		)
	}
}

func saveBatch(ctx context.Context, jobs []batchJob, results []*equilibrium.Result, criterion equilibrium.Criterion) {
	log, err := runlog.Open(cfg.HistoryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run log: %v\n", err)
		return
	}
	defer func() { _ = log.Close() }()

	for i, job := range jobs {
		result := results[i]
		_, err := log.Record(ctx, &runlog.Record{
			Dataset:     job.data,
			Criterion:   criterion,
			Termination: result.Termination,
			Iterations:  result.Iterations,
			Value:       result.Value,
			Elapsed:     result.Elapsed,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not record run for line %d: %v\n", job.line, err)
		}
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func init() {
	batchCmd.Flags().Float64P("epsilon", "e", 0.001, "Convergence threshold for every dataset (default from config)")
	batchCmd.Flags().Bool("stagnation-only", false, "Disable the convergence check; run until stagnation")
	batchCmd.Flags().IntP("parallel", "p", 4, "Maximum number of concurrent runs")
	batchCmd.Flags().Int("max-iterations", 0, "Abort a run if it does not terminate within N iterations (0 = unlimited)")
	batchCmd.Flags().Bool("no-save", false, "Do not record these runs in the history log")
	rootCmd.AddCommand(batchCmd)
}
