package trace

// TraceSummary aggregates statistics from a GameTrace.
type TraceSummary struct {
	TotalRounds      int
	TotalSelected    int
	TotalVaccinated  int
	TotalRejected    int
	TotalInfections  int
	TotalRecoveries  int
	PeakNewInfection int // largest single-round infection count
	PeakRound        int // first round reaching PeakNewInfection
	IdleRounds       int // rounds in which nothing was vaccinated
	FinalCost        int
}

// Summarize computes aggregate statistics from a GameTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(gt *GameTrace) *TraceSummary {
	summary := &TraceSummary{}
	if gt == nil {
		return summary
	}

	summary.TotalRounds = len(gt.Rounds)
	for _, r := range gt.Rounds {
		summary.TotalSelected += len(r.Selected)
		summary.TotalVaccinated += len(r.Vaccinated)
		summary.TotalRejected += len(r.Rejected)
		summary.TotalInfections += r.NewInfections
		summary.TotalRecoveries += r.Recoveries
		if r.NewInfections > summary.PeakNewInfection {
			summary.PeakNewInfection = r.NewInfections
			summary.PeakRound = r.Round
		}
		if len(r.Vaccinated) == 0 {
			summary.IdleRounds++
		}
		summary.FinalCost = r.TotalCost
	}
	return summary
}
