package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hello2himel/equilibrium-statistic/internal/runlog"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show previously computed runs",
	Long: `List the most recent recorded runs from the local run log, newest
first. Use --clear --yes to empty the log.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		clear, _ := cmd.Flags().GetBool("clear")
		yes, _ := cmd.Flags().GetBool("yes")

		if !cfg.HistoryEnabled {
			fmt.Println("Run history is disabled (set EQSTAT_HISTORY_ENABLED=true to enable)")
			return nil
		}

		log, err := runlog.Open(cfg.HistoryPath)
		if err != nil {
			return fmt.Errorf("failed to open run log: %w", err)
		}
		defer func() { _ = log.Close() }()

		if clear {
			if !yes {
				return fmt.Errorf("refusing to clear the run log without --yes")
			}
			n, err := log.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Cleared %d recorded runs\n", n)
			return nil
		}

		records, err := log.List(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No recorded runs yet")
			return nil
		}

		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		fmt.Printf("%s\n", cyan("=== Run History ==="))
		fmt.Printf("%-17s %-28s %-16s %-10s %8s  %s\n",
			"STARTED", "DATASET", "CRITERION", "RESULT", "ITER", "VALUE")
		for _, rec := range records {
			criterion := fmt.Sprintf("eps=%g", rec.Criterion.Epsilon)
			if rec.Criterion.StagnationOnly {
				criterion = "stagnation-only"
			}
			fmt.Printf("%-17s %-28s %-16s %-10s %8d  %s\n",
				rec.StartedAt.Local().Format("2006-01-02 15:04"),
				truncate(formatValues(rec.Dataset, cfg.Precision), 28),
				criterion,
				string(rec.Termination),
				rec.Iterations,
				formatFloat(rec.Value, cfg.Precision),
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to list")
	historyCmd.Flags().Bool("clear", false, "Delete every recorded run")
	historyCmd.Flags().Bool("yes", false, "Confirm a destructive operation")
	rootCmd.AddCommand(historyCmd)
}
