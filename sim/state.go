package sim

import (
	"fmt"
	"math/rand"
)

// Counts is the number of nodes in each compartment.
type Counts struct {
	Susceptible int `json:"S"`
	Infected    int `json:"I"`
	Recovered   int `json:"R"`
	Vaccinated  int `json:"V"`
}

// Snapshot is the per-round view handed to presentation layers.
type Snapshot struct {
	Counts
	TotalCost int `json:"total_cost"`
	Round     int `json:"round"`
}

// State holds per-node status and infection age plus the game counters.
// A State is owned by exactly one Engine; external consumers only read it.
type State struct {
	graph Graph
	cfg   GameConfig

	status map[NodeID]Status
	age    map[NodeID]int
	fresh  map[NodeID]bool // infected by the latest spread, not yet aged

	TotalCost          int
	VaccinationsUsed   int
	InfectionsOccurred int
	Round              int
}

// NewState creates a fresh game state with every node susceptible.
func NewState(g Graph, cfg GameConfig) *State {
	nodes := g.Nodes()
	s := &State{
		graph:  g,
		cfg:    cfg,
		status: make(map[NodeID]Status, len(nodes)),
		age:    make(map[NodeID]int, len(nodes)),
		fresh:  make(map[NodeID]bool),
	}
	for _, id := range nodes {
		s.status[id] = StatusSusceptible
	}
	return s
}

// Graph returns the contact graph the state was built on.
func (s *State) Graph() Graph { return s.graph }

// Config returns the game configuration.
func (s *State) Config() GameConfig { return s.cfg }

// Status returns the status of id and whether id exists.
func (s *State) Status(id NodeID) (Status, bool) {
	st, ok := s.status[id]
	return st, ok
}

// InfectionAge returns the rounds since id became infected.
// Only meaningful while the node is infected.
func (s *State) InfectionAge(id NodeID) int { return s.age[id] }

// SeedInfected marks the given susceptible nodes as infected with age 0.
// Seeding is not an infection event: it neither costs nor counts.
// On error no node is changed.
func (s *State) SeedInfected(ids ...NodeID) error {
	seen := make(map[NodeID]bool, len(ids))
	for _, id := range ids {
		st, ok := s.status[id]
		if !ok {
			return fmt.Errorf("seed node %d: %w", id, ErrUnknownNode)
		}
		if st != StatusSusceptible {
			return fmt.Errorf("seed node %d has status %s: %w", id, st, ErrNotSusceptible)
		}
		if seen[id] {
			return fmt.Errorf("seed node %d: %w", id, ErrDuplicateNode)
		}
		seen[id] = true
	}
	for _, id := range ids {
		s.setStatus(id, StatusInfected)
		s.age[id] = 0
	}
	return nil
}

// SeedRandom infects int(n*fraction) nodes sampled uniformly without replacement
// and returns the seeded ids.
func (s *State) SeedRandom(rng *rand.Rand, fraction float64) ([]NodeID, error) {
	if err := validateFraction("initial infection rate", fraction); err != nil {
		return nil, err
	}
	nodes := s.graph.Nodes()
	k := int(float64(len(nodes)) * fraction)
	seeds := sampleWithoutReplacement(rng, nodes, k)
	if err := s.SeedInfected(seeds...); err != nil {
		return nil, err
	}
	return seeds, nil
}

// InfectedNeighbors counts the infected neighbors of id.
func (s *State) InfectedNeighbors(id NodeID) int {
	k := 0
	for _, nb := range s.graph.Neighbors(id) {
		if s.status[nb] == StatusInfected {
			k++
		}
	}
	return k
}

// NodesWithStatus returns the nodes currently in st, in graph order.
func (s *State) NodesWithStatus(st Status) []NodeID {
	var out []NodeID
	for _, id := range s.graph.Nodes() {
		if s.status[id] == st {
			out = append(out, id)
		}
	}
	return out
}

// Susceptible returns the susceptible nodes in graph order.
func (s *State) Susceptible() []NodeID { return s.NodesWithStatus(StatusSusceptible) }

// Counts tallies nodes per compartment.
func (s *State) Counts() Counts {
	var c Counts
	for _, st := range s.status {
		switch st {
		case StatusSusceptible:
			c.Susceptible++
		case StatusInfected:
			c.Infected++
		case StatusRecovered:
			c.Recovered++
		case StatusVaccinated:
			c.Vaccinated++
		}
	}
	return c
}

// Snapshot returns the current counts, cost and round.
func (s *State) Snapshot() Snapshot {
	return Snapshot{Counts: s.Counts(), TotalCost: s.TotalCost, Round: s.Round}
}

// IsGameOver reports whether no node is infected. A game seeded with zero
// infections is over before it starts.
func (s *State) IsGameOver() bool {
	for _, st := range s.status {
		if st == StatusInfected {
			return false
		}
	}
	return true
}

// StatusMap returns a copy of the per-node statuses.
func (s *State) StatusMap() map[NodeID]Status {
	out := make(map[NodeID]Status, len(s.status))
	for id, st := range s.status {
		out[id] = st
	}
	return out
}

// setStatus applies a transition. Callers only request legal transitions.
func (s *State) setStatus(id NodeID, to Status) {
	from := s.status[id]
	if !CanTransition(from, to) {
		panic(fmt.Sprintf("illegal transition %s->%s on node %d", from, to, id))
	}
	s.status[id] = to
}
