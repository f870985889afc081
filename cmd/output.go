package cmd

import (
	"fmt"
	"io"

	"github.com/vaxnet-sim/vaxnet/sim/results"
	"github.com/vaxnet-sim/vaxnet/sim/trace"
)

func printTraceSummary(w io.Writer, s *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Trace Summary ===")
	fmt.Fprintf(w, "Rounds traced        : %d (%d without vaccination)\n", s.TotalRounds, s.IdleRounds)
	fmt.Fprintf(w, "Selected / vaccinated: %d / %d (%d rejected)\n", s.TotalSelected, s.TotalVaccinated, s.TotalRejected)
	fmt.Fprintf(w, "Infections / recovery: %d / %d\n", s.TotalInfections, s.TotalRecoveries)
	fmt.Fprintf(w, "Worst round          : %d new infections (round %d)\n", s.PeakNewInfection, s.PeakRound)
}

func printComparison(w io.Writer, stats []StrategyStats) {
	fmt.Fprintln(w, "=== Strategy Comparison ===")
	fmt.Fprintf(w, "%-10s %6s %10s %9s %8s %8s %8s %10s\n",
		"Strategy", "Trials", "MeanCost", "StdDev", "Min", "Max", "Rounds", "Eradicated")
	for _, s := range stats {
		fmt.Fprintf(w, "%-10s %6d %10.1f %9.1f %8d %8d %8.1f %7d/%-2d\n",
			s.Policy, s.Trials, s.MeanCost, s.StdDevCost, s.MinCost, s.MaxCost, s.MeanRounds, s.Eradicated, s.Trials)
	}
	if best := bestStrategy(stats); best != "" {
		fmt.Fprintf(w, "Best strategy by mean cost: %s\n", best)
	}
}

// bestStrategy returns the policy with the lowest mean cost; earlier entries
// win ties.
func bestStrategy(stats []StrategyStats) string {
	best := ""
	bestCost := 0.0
	for _, s := range stats {
		if best == "" || s.MeanCost < bestCost {
			best, bestCost = s.Policy, s.MeanCost
		}
	}
	return best
}

func printRuns(w io.Writer, runs []results.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}
	fmt.Fprintf(w, "%-36s %-20s %-8s %8s %6s %-10s %-17s\n", "ID", "Created", "Policy", "Cost", "Rounds", "End", "Rank")
	for _, r := range runs {
		fmt.Fprintf(w, "%-36s %-20s %-8s %8d %6d %-10s %-17s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Policy, r.TotalCost, r.Rounds, r.EndReason, r.Rank)
	}
}

func printPolicyStats(w io.Writer, stats []results.PolicyStats) {
	if len(stats) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}
	fmt.Fprintf(w, "%-10s %6s %10s %8s %8s %8s %11s\n", "Policy", "Runs", "MeanCost", "Min", "Max", "Rounds", "Eradicated")
	for _, s := range stats {
		fmt.Fprintf(w, "%-10s %6d %10.1f %8d %8d %8.1f %10.1f%%\n",
			s.Policy, s.Runs, s.MeanCost, s.MinCost, s.MaxCost, s.MeanRounds, s.EradicatedPct)
	}
}
