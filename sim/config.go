package sim

import (
	"fmt"
	"math"
)

// GameConfig groups the parameters that stay fixed for the duration of a game.
type GameConfig struct {
	InfectionProbability    float64 // per infected neighbor, per round, in [0, 1]
	RecoveryTime            int     // rounds until an infected node recovers (must be > 0)
	VaccinationCost         int     // cost per successful vaccination (>= 0)
	InfectionPenalty        int     // cost per new infection (>= 0)
	MaxVaccinationsPerRound int     // selection cap per round (must be > 0)
}

// NewGameConfig constructs a GameConfig. It does not validate; call Validate.
func NewGameConfig(infectionProbability float64, recoveryTime, vaccinationCost, infectionPenalty, maxVaccinationsPerRound int) GameConfig {
	return GameConfig{
		InfectionProbability:    infectionProbability,
		RecoveryTime:            recoveryTime,
		VaccinationCost:         vaccinationCost,
		InfectionPenalty:        infectionPenalty,
		MaxVaccinationsPerRound: maxVaccinationsPerRound,
	}
}

// DefaultGameConfig returns the standard game parameters.
func DefaultGameConfig() GameConfig {
	return NewGameConfig(0.3, 3, 50, 100, 2)
}

// DefaultInitialInfectionRate is the fraction of nodes seeded as infected
// when a scenario names neither a rate nor explicit seeds.
const DefaultInitialInfectionRate = 0.05

// Validate rejects out-of-range parameters. Values are never clamped.
func (c GameConfig) Validate() error {
	p := c.InfectionProbability
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("infection_probability must be in [0, 1], got %v", p)
	}
	if c.RecoveryTime <= 0 {
		return fmt.Errorf("recovery_time must be positive, got %d", c.RecoveryTime)
	}
	if c.VaccinationCost < 0 {
		return fmt.Errorf("vaccination_cost must be non-negative, got %d", c.VaccinationCost)
	}
	if c.InfectionPenalty < 0 {
		return fmt.Errorf("infection_penalty must be non-negative, got %d", c.InfectionPenalty)
	}
	if c.MaxVaccinationsPerRound <= 0 {
		return fmt.Errorf("max_vaccinations_per_round must be positive, got %d", c.MaxVaccinationsPerRound)
	}
	return nil
}

// validateFraction checks a rate such as the initial infection rate.
func validateFraction(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return fmt.Errorf("%s must be in [0, 1], got %v", name, v)
	}
	return nil
}
