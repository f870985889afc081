// Tracks per-round compartment counts and cost for end-of-game reporting.

package sim

import (
	"encoding/json"
	"fmt"
	"io"
)

// Metrics collects the snapshot history of a game. Useful for presentation
// layers that plot the epidemic curve or compare strategies.
type Metrics struct {
	History      []Snapshot // index 0 is the state before round 1
	PeakInfected int        // max simultaneously infected nodes
	PeakRound    int        // round at which PeakInfected was first reached
}

// NewMetrics returns an empty Metrics.
func NewMetrics() *Metrics {
	return &Metrics{History: make([]Snapshot, 0)}
}

// Record appends a snapshot and updates the peak.
func (m *Metrics) Record(s Snapshot) {
	m.History = append(m.History, s)
	if s.Infected > m.PeakInfected {
		m.PeakInfected = s.Infected
		m.PeakRound = s.Round
	}
}

// MetricsOutput is the JSON form of a finished game.
type MetricsOutput struct {
	Policy             string     `json:"policy"`
	Seed               int64      `json:"seed"`
	Rounds             int        `json:"rounds"`
	EndReason          string     `json:"end_reason"`
	TotalCost          int        `json:"total_cost"`
	Rank               string     `json:"rank"`
	VaccinationsUsed   int        `json:"vaccinations_used"`
	InfectionsOccurred int        `json:"infections_occurred"`
	PeakInfected       int        `json:"peak_infected"`
	PeakRound          int        `json:"peak_round"`
	History            []Snapshot `json:"history"`
}

// Output assembles the JSON-ready summary of a finished run.
func (m *Metrics) Output(policy string, seed int64, state *State, res RunResult) MetricsOutput {
	return MetricsOutput{
		Policy:             policy,
		Seed:               seed,
		Rounds:             res.Rounds,
		EndReason:          string(res.Reason),
		TotalCost:          state.TotalCost,
		Rank:               string(res.Rank),
		VaccinationsUsed:   state.VaccinationsUsed,
		InfectionsOccurred: state.InfectionsOccurred,
		PeakInfected:       m.PeakInfected,
		PeakRound:          m.PeakRound,
		History:            m.History,
	}
}

// Print writes a human-readable per-round table followed by the final totals.
func (m *Metrics) Print(w io.Writer, out MetricsOutput) {
	fmt.Fprintln(w, "=== Game Metrics ===")
	for _, s := range m.History {
		fmt.Fprintf(w, "Round %3d: S:%d I:%d R:%d V:%d Cost:$%d\n",
			s.Round, s.Susceptible, s.Infected, s.Recovered, s.Vaccinated, s.TotalCost)
	}
	fmt.Fprintf(w, "Policy               : %s\n", out.Policy)
	fmt.Fprintf(w, "Rounds played        : %d (%s)\n", out.Rounds, out.EndReason)
	fmt.Fprintf(w, "Total cost           : $%d\n", out.TotalCost)
	fmt.Fprintf(w, "Vaccinations used    : %d\n", out.VaccinationsUsed)
	fmt.Fprintf(w, "Infections occurred  : %d\n", out.InfectionsOccurred)
	fmt.Fprintf(w, "Peak infected        : %d (round %d)\n", out.PeakInfected, out.PeakRound)
	fmt.Fprintf(w, "Final rank           : %s\n", out.Rank)
}

// WriteJSON writes out as indented JSON.
func WriteJSON(w io.Writer, out any) error {
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
