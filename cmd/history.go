package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vaxnet-sim/vaxnet/sim/results"
)

var (
	historyPolicy string // Filter listed runs by policy
	historyLimit  int    // Max runs listed
	historyStats  bool   // Print per-policy aggregates instead of runs
)

// historyCmd lists runs recorded by run and compare
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded runs or per-policy statistics from a results database",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging(logLevel)
		if resultsDB == "" {
			logrus.Fatalf("--results-db (or VAXNET_RESULTS_DB) is required")
		}

		store, err := results.Open(resultsDB)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		defer store.Close()

		if historyStats {
			stats, err := store.Stats(cmd.Context())
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			printPolicyStats(os.Stdout, stats)
			return
		}
		runs, err := store.List(cmd.Context(), historyPolicy, historyLimit)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		printRuns(os.Stdout, runs)
	},
}

func init() {
	historyCmd.Flags().StringVar(&resultsDB, "results-db", "", "SQLite results database (env VAXNET_RESULTS_DB)")
	historyCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (env VAXNET_LOG)")
	historyCmd.Flags().StringVar(&historyPolicy, "policy", "", "Only list runs of this policy")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Max runs to list (0 = all)")
	historyCmd.Flags().BoolVar(&historyStats, "stats", false, "Print per-policy aggregates")

	rootCmd.AddCommand(historyCmd)
}
