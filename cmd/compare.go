package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	sim "github.com/vaxnet-sim/vaxnet/sim"
	"github.com/vaxnet-sim/vaxnet/sim/results"
)

var trials int // Games per strategy in compare

// StrategyStats aggregates one strategy's games across all trials.
type StrategyStats struct {
	Policy     string
	Trials     int
	MeanCost   float64
	StdDevCost float64
	MinCost    int
	MaxCost    int
	MeanRounds float64
	Eradicated int
	Runs       []sim.MetricsOutput // indexed by trial
}

// trialKeys derives one key per trial. Trial 0 uses the seed itself so a
// single-trial comparison matches `run --seed`.
func trialKeys(seed int64, n int) []sim.SimulationKey {
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(seed))
	keys := make([]sim.SimulationKey, n)
	for i := range keys {
		if i == 0 {
			keys[i] = rng.Key()
			continue
		}
		keys[i] = sim.NewSimulationKey(rng.ForSubsystem(sim.SubsystemTrial(i)).Int63())
	}
	return keys
}

// compareStrategies plays every policy once per trial. Within a trial all
// policies share the key, so they face the same initial infections. Games run
// concurrently; each owns its state and only the graph is shared.
func compareStrategies(ctx context.Context, sc *sim.Scenario, g sim.Graph, seed int64, n int, policies []string) ([]StrategyStats, error) {
	if n <= 0 {
		return nil, fmt.Errorf("trials must be positive, got %d", n)
	}
	keys := trialKeys(seed, n)
	outputs := make([][]sim.MetricsOutput, len(policies))
	for i := range outputs {
		outputs[i] = make([]sim.MetricsOutput, n)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for pi, policy := range policies {
		for ti, key := range keys {
			eg.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				game, err := sim.NewGame(sc, g, key, policy)
				if err != nil {
					return fmt.Errorf("%s trial %d: %w", policy, ti, err)
				}
				outputs[pi][ti] = game.Play().Output
				return nil
			})
		}
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	stats := make([]StrategyStats, len(policies))
	for pi, policy := range policies {
		stats[pi] = summarizeStrategy(policy, outputs[pi])
	}
	return stats, nil
}

func summarizeStrategy(policy string, runs []sim.MetricsOutput) StrategyStats {
	costs := make([]float64, len(runs))
	rounds := make([]float64, len(runs))
	s := StrategyStats{Policy: policy, Trials: len(runs), Runs: runs}
	for i, r := range runs {
		costs[i] = float64(r.TotalCost)
		rounds[i] = float64(r.Rounds)
		if i == 0 || r.TotalCost < s.MinCost {
			s.MinCost = r.TotalCost
		}
		if r.TotalCost > s.MaxCost {
			s.MaxCost = r.TotalCost
		}
		if r.EndReason == string(sim.EndEradicated) {
			s.Eradicated++
		}
	}
	s.MeanCost = stat.Mean(costs, nil)
	s.MeanRounds = stat.Mean(rounds, nil)
	if len(costs) > 1 {
		s.StdDevCost = stat.StdDev(costs, nil)
	}
	return s
}

// recordComparison stores every game of a comparison under one batch id.
func recordComparison(ctx context.Context, path, scenario string, stats []StrategyStats) (string, error) {
	store, err := results.Open(path)
	if err != nil {
		return "", err
	}
	defer store.Close()
	batch := results.NewBatchID()
	for _, s := range stats {
		for _, out := range s.Runs {
			if _, err := store.Record(ctx, toRun(scenario, out, batch)); err != nil {
				return "", err
			}
		}
	}
	return batch, nil
}

// compareCmd plays all four automated strategies on the same scenario
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare the random, ring, density and greedy strategies on one scenario",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging(logLevel)

		sc, g, err := loadScenario(scenarioPath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		stats, err := compareStrategies(cmd.Context(), sc, g, seed, trials, sim.StrategyNames)
		if err != nil {
			logrus.Fatalf("Comparison failed: %v", err)
		}
		printComparison(os.Stdout, stats)

		if resultsDB != "" {
			batch, err := recordComparison(cmd.Context(), resultsDB, scenarioPath, stats)
			if err != nil {
				logrus.Fatalf("Recording results: %v", err)
			}
			logrus.Infof("Recorded batch %s in %s", batch, resultsDB)
		}
	},
}

func init() {
	addSharedFlags(compareCmd)
	compareCmd.Flags().IntVar(&trials, "trials", 1, "Games per strategy; each trial uses a different derived seed")

	rootCmd.AddCommand(compareCmd)
}
