// Package trace provides per-round decision recording for vaccination policy analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// RoundRecord captures one round's vaccination decision and its outcome.
type RoundRecord struct {
	Round         int
	Policy        string
	Selected      []int // node ids returned by the policy, in selection order
	Vaccinated    []int // subset of Selected that moved S->V
	Rejected      []int // subset of Selected that was refused
	NewInfections int
	Recoveries    int
	Infected      int // infected nodes after the round
	TotalCost     int // cumulative cost after the round
}
