package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/vaxnet-sim/vaxnet/sim"
	"github.com/vaxnet-sim/vaxnet/sim/results"
)

var (
	// Shared flags
	seed         int64  // Seed for infection draws, seeding and policy sampling
	logLevel     string // Log verbosity level
	scenarioPath string // Path to scenario YAML
	resultsDB    string // SQLite results database; empty disables recording

	// run flags
	policyName string // Overrides the scenario's policy
	maxRounds  int    // Overrides the scenario's max_rounds
	jsonOutput bool   // Print metrics as JSON instead of a table
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "vaxnet",
	Short: "Turn-based vaccination game on a contact network",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return applyEnv(cmd)
	},
}

// applyEnv fills flags the user did not set from VAXNET_* variables.
func applyEnv(cmd *cobra.Command) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Lookup("seed") != nil && !flags.Changed("seed") {
		seed = e.Seed
	}
	if flags.Lookup("log") != nil && !flags.Changed("log") {
		logLevel = e.LogLevel
	}
	if flags.Lookup("results-db") != nil && !flags.Changed("results-db") {
		resultsDB = e.ResultsDB
	}
	return nil
}

// setupLogging sets the logrus level or exits on an unknown name.
func setupLogging(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", level)
	}
	logrus.SetLevel(lvl)
}

// loadScenario reads, validates and builds the graph of a scenario file.
func loadScenario(path string) (*sim.Scenario, *sim.AdjacencyGraph, error) {
	if path == "" {
		return nil, nil, fmt.Errorf("--scenario is required")
	}
	sc, err := sim.LoadScenario(path)
	if err != nil {
		return nil, nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	g, err := sc.BuildGraph()
	if err != nil {
		return nil, nil, err
	}
	return sc, g, nil
}

// runOptions carries the resolved flags of the run command.
type runOptions struct {
	Scenario  string
	Seed      int64
	Policy    string
	MaxRounds int // 0 keeps the scenario's value
	JSON      bool
	ResultsDB string
}

// runGame plays one game and writes its report to w.
func runGame(ctx context.Context, w io.Writer, opts runOptions) (*sim.GameReport, error) {
	sc, g, err := loadScenario(opts.Scenario)
	if err != nil {
		return nil, err
	}
	if opts.MaxRounds > 0 {
		sc.MaxRounds = opts.MaxRounds
	}
	game, err := sim.NewGame(sc, g, sim.NewSimulationKey(opts.Seed), opts.Policy)
	if err != nil {
		return nil, err
	}
	logrus.Infof("Seeded %d infections on %d nodes (%d edges)", len(game.Seeds), len(g.Nodes()), g.EdgeCount())

	report := game.Play()
	if opts.JSON {
		if err := sim.WriteJSON(w, report.Output); err != nil {
			return nil, err
		}
	} else {
		game.Metrics.Print(w, report.Output)
		if report.Summary != nil {
			printTraceSummary(w, report.Summary)
		}
	}

	if opts.ResultsDB != "" {
		store, err := results.Open(opts.ResultsDB)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		id, err := store.Record(ctx, toRun(opts.Scenario, report.Output, ""))
		if err != nil {
			return nil, err
		}
		logrus.Infof("Recorded run %s in %s", id, opts.ResultsDB)
	}
	return report, nil
}

// toRun converts a finished game's output into a stored run.
func toRun(scenario string, out sim.MetricsOutput, batch string) results.Run {
	return results.Run{
		Batch:              batch,
		Scenario:           scenario,
		Policy:             out.Policy,
		Seed:               out.Seed,
		Rounds:             out.Rounds,
		EndReason:          out.EndReason,
		TotalCost:          out.TotalCost,
		Rank:               out.Rank,
		VaccinationsUsed:   out.VaccinationsUsed,
		InfectionsOccurred: out.InfectionsOccurred,
		PeakInfected:       out.PeakInfected,
	}
}

// runCmd plays a single game using a scenario file
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play one game with an automated or scripted vaccination policy",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging(logLevel)

		opts := runOptions{
			Scenario:  scenarioPath,
			Seed:      seed,
			Policy:    policyName,
			JSON:      jsonOutput,
			ResultsDB: resultsDB,
		}
		if cmd.Flags().Changed("max-rounds") {
			opts.MaxRounds = maxRounds
		}
		if _, err := runGame(cmd.Context(), os.Stdout, opts); err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.Info("Game complete.")
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addSharedFlags registers the flags every game-playing command takes.
func addSharedFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "Path to scenario YAML (graph, game parameters, policy)")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Seed for infection draws, initial seeding and policy sampling (env VAXNET_SEED)")
	cmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic) (env VAXNET_LOG)")
	cmd.Flags().StringVar(&resultsDB, "results-db", "", "SQLite file to record finished runs in (env VAXNET_RESULTS_DB)")
}

// init sets up CLI flags and subcommands
func init() {
	addSharedFlags(runCmd)
	runCmd.Flags().StringVar(&policyName, "policy", "", "Vaccination policy: none, random, ring, density, greedy (default: scenario's)")
	runCmd.Flags().IntVar(&maxRounds, "max-rounds", sim.DefaultMaxRounds, "Round cap for autoplay (default: scenario's, else 20)")
	runCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print metrics as JSON")

	rootCmd.AddCommand(runCmd)
}
