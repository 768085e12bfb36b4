package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hello2himel/equilibrium-statistic/internal/config"
)

var (
	// cfg is the effective configuration, loaded before any command runs.
	cfg *config.Config

	configPath string
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:   "eqstat",
	Short: "Compute the equilibrium statistic of a numeric dataset",
	Long: `eqstat repeatedly replaces a dataset with the triple {mean, median, mode}
of its previous state until the triple converges within an epsilon or
stagnates (1000 identical iterations), then reports the average of the
final triple: the equilibrium statistic.

Run without flags for interactive prompts, or pass --data directly.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.eqstat/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress per-iteration progress output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
