package sim

import (
	"bytes"
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vaxnet-sim/vaxnet/sim/trace"
)

// Scenario holds a complete game setup, loadable from a YAML file.
// Nil pointer fields mean "not set in YAML" and fall back to defaults.
// String fields use empty string for "not set".
type Scenario struct {
	Policy               string        `yaml:"policy"`
	MaxRounds            int           `yaml:"max_rounds"`
	InitialInfectionRate *float64      `yaml:"initial_infection_rate"`
	InitialInfected      []int         `yaml:"initial_infected"`
	TraceLevel           string        `yaml:"trace_level"`
	Game                 GameParams    `yaml:"game"`
	Graph                GraphSpec     `yaml:"graph"`
	Manual               map[int][]int `yaml:"manual"`
}

// GameParams holds overrides for GameConfig.
type GameParams struct {
	InfectionProbability    *float64 `yaml:"infection_probability"`
	RecoveryTime            *int     `yaml:"recovery_time"`
	VaccinationCost         *int     `yaml:"vaccination_cost"`
	InfectionPenalty        *int     `yaml:"infection_penalty"`
	MaxVaccinationsPerRound *int     `yaml:"max_vaccinations_per_round"`
}

// GraphSpec describes the contact graph as data. Either Nodes lists the ids
// explicitly or NodeCount labels them 0..NodeCount-1.
type GraphSpec struct {
	NodeCount int      `yaml:"node_count"`
	Nodes     []int    `yaml:"nodes"`
	Edges     [][2]int `yaml:"edges"`
}

// LoadScenario reads and parses a YAML scenario file.
// Unknown keys are rejected so typos surface as errors.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &sc, nil
}

// GameConfig merges the scenario's overrides onto DefaultGameConfig.
func (sc *Scenario) GameConfig() GameConfig {
	cfg := DefaultGameConfig()
	p := sc.Game
	if p.InfectionProbability != nil {
		cfg.InfectionProbability = *p.InfectionProbability
	}
	if p.RecoveryTime != nil {
		cfg.RecoveryTime = *p.RecoveryTime
	}
	if p.VaccinationCost != nil {
		cfg.VaccinationCost = *p.VaccinationCost
	}
	if p.InfectionPenalty != nil {
		cfg.InfectionPenalty = *p.InfectionPenalty
	}
	if p.MaxVaccinationsPerRound != nil {
		cfg.MaxVaccinationsPerRound = *p.MaxVaccinationsPerRound
	}
	return cfg
}

// Validate checks policy names, parameter ranges and graph shape.
func (sc *Scenario) Validate() error {
	if !IsValidVaccinationPolicy(sc.Policy) && sc.Policy != PolicyManual {
		return fmt.Errorf("unknown policy %q", sc.Policy)
	}
	if sc.Policy == PolicyManual && len(sc.Manual) == 0 {
		return fmt.Errorf("policy %q requires a manual plan", PolicyManual)
	}
	if sc.MaxRounds < 0 {
		return fmt.Errorf("max_rounds must be non-negative, got %d", sc.MaxRounds)
	}
	if !trace.IsValidTraceLevel(sc.TraceLevel) {
		return fmt.Errorf("unknown trace_level %q", sc.TraceLevel)
	}
	if err := sc.GameConfig().Validate(); err != nil {
		return err
	}
	if sc.InitialInfectionRate != nil {
		if err := validateFraction("initial_infection_rate", *sc.InitialInfectionRate); err != nil {
			return err
		}
		if len(sc.InitialInfected) > 0 {
			return fmt.Errorf("initial_infection_rate and initial_infected are mutually exclusive")
		}
	}
	if sc.Graph.NodeCount < 0 {
		return fmt.Errorf("graph.node_count must be non-negative, got %d", sc.Graph.NodeCount)
	}
	if sc.Graph.NodeCount > 0 && len(sc.Graph.Nodes) > 0 {
		return fmt.Errorf("graph.node_count and graph.nodes are mutually exclusive")
	}
	for round := range sc.Manual {
		if round < 1 {
			return fmt.Errorf("manual plan round must be >= 1, got %d", round)
		}
	}
	return nil
}

// BuildGraph constructs the contact graph described by the scenario.
func (sc *Scenario) BuildGraph() (*AdjacencyGraph, error) {
	var nodes []NodeID
	if len(sc.Graph.Nodes) > 0 {
		nodes = toNodeIDs(sc.Graph.Nodes)
	} else {
		nodes = NewNodeRange(sc.Graph.NodeCount)
	}
	edges := make([]Edge, len(sc.Graph.Edges))
	for i, e := range sc.Graph.Edges {
		edges[i] = Edge{A: NodeID(e[0]), B: NodeID(e[1])}
	}
	g, err := NewAdjacencyGraph(nodes, edges)
	if err != nil {
		return nil, fmt.Errorf("building graph: %w", err)
	}
	return g, nil
}

// Seed applies the scenario's initial infections to a fresh state.
// Explicit initial_infected wins; otherwise a random fraction is seeded
// (DefaultInitialInfectionRate when unset).
func (sc *Scenario) Seed(state *State, rng *rand.Rand) ([]NodeID, error) {
	if len(sc.InitialInfected) > 0 {
		ids := toNodeIDs(sc.InitialInfected)
		if err := state.SeedInfected(ids...); err != nil {
			return nil, fmt.Errorf("seeding infections: %w", err)
		}
		return ids, nil
	}
	rate := DefaultInitialInfectionRate
	if sc.InitialInfectionRate != nil {
		rate = *sc.InitialInfectionRate
	}
	return state.SeedRandom(rng, rate)
}

// NewPolicy creates the scenario's vaccination policy.
func (sc *Scenario) NewPolicy(rng *rand.Rand) VaccinationPolicy {
	if sc.Policy == PolicyManual {
		plan := &ManualPlan{Rounds: make(map[int][]NodeID, len(sc.Manual))}
		for round, ids := range sc.Manual {
			plan.Rounds[round] = toNodeIDs(ids)
		}
		return plan
	}
	return NewVaccinationPolicy(sc.Policy, rng)
}

func toNodeIDs(ids []int) []NodeID {
	out := make([]NodeID, len(ids))
	for i, id := range ids {
		out[i] = NodeID(id)
	}
	return out
}
