package sim

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/sirupsen/logrus"
)

// VaccinationPolicy chooses which nodes to vaccinate before a round's spread.
// Implementations return at most cfg.MaxVaccinationsPerRound distinct nodes,
// all susceptible at call time, and an empty slice when nothing qualifies.
type VaccinationPolicy interface {
	Select(state *State, cfg GameConfig) []NodeID
}

// Policy names accepted by NewVaccinationPolicy.
const (
	PolicyNone    = "none"
	PolicyRandom  = "random"
	PolicyRing    = "ring"
	PolicyDensity = "density"
	PolicyGreedy  = "greedy"

	// PolicyManual replays a scripted plan; it is built from a scenario,
	// not by NewVaccinationPolicy.
	PolicyManual = "manual"
)

// validVaccinationPolicies is the set of recognized policy names.
// Empty string defaults to none.
var validVaccinationPolicies = map[string]bool{
	"": true, PolicyNone: true, PolicyRandom: true, PolicyRing: true, PolicyDensity: true, PolicyGreedy: true,
}

// StrategyNames lists the four automated strategies in presentation order.
var StrategyNames = []string{PolicyRandom, PolicyRing, PolicyDensity, PolicyGreedy}

// IsValidVaccinationPolicy returns true if name is a recognized policy.
func IsValidVaccinationPolicy(name string) bool {
	return validVaccinationPolicies[name]
}

// NoVaccination never vaccinates. It is the "skip" choice.
type NoVaccination struct{}

// Select implements VaccinationPolicy for NoVaccination.
func (NoVaccination) Select(_ *State, _ GameConfig) []NodeID { return []NodeID{} }

// RandomVaccination samples uniformly without replacement from all
// susceptible nodes, in graph order before sampling.
type RandomVaccination struct {
	rng *rand.Rand
}

// Select implements VaccinationPolicy for RandomVaccination.
func (rv *RandomVaccination) Select(state *State, cfg GameConfig) []NodeID {
	return sampleWithoutReplacement(rv.rng, state.Susceptible(), cfg.MaxVaccinationsPerRound)
}

// RingVaccination samples uniformly without replacement from the susceptible
// neighbors of infected nodes. Candidates are deduplicated and sorted by
// ascending id before sampling so a fixed seed gives a fixed choice.
type RingVaccination struct {
	rng *rand.Rand
}

// Select implements VaccinationPolicy for RingVaccination.
func (rv *RingVaccination) Select(state *State, cfg GameConfig) []NodeID {
	return sampleWithoutReplacement(rv.rng, RingCandidates(state), cfg.MaxVaccinationsPerRound)
}

// RingCandidates returns the susceptible nodes adjacent to at least one
// infected node, ascending by id.
func RingCandidates(state *State) []NodeID {
	seen := make(map[NodeID]bool)
	var out []NodeID
	for _, id := range state.NodesWithStatus(StatusInfected) {
		for _, nb := range state.graph.Neighbors(id) {
			if state.status[nb] == StatusSusceptible && !seen[nb] {
				seen[nb] = true
				out = append(out, nb)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// HighDensity targets the susceptible nodes with the highest degree.
// Ties are broken by ascending node id.
type HighDensity struct{}

// Select implements VaccinationPolicy for HighDensity.
func (HighDensity) Select(state *State, cfg GameConfig) []NodeID {
	g := state.graph
	return topBy(state.Susceptible(), cfg.MaxVaccinationsPerRound, g.Degree)
}

// Greedy targets the susceptible nodes with the most infected neighbors.
// Ties are broken by ascending node id.
type Greedy struct{}

// Select implements VaccinationPolicy for Greedy.
func (Greedy) Select(state *State, cfg GameConfig) []NodeID {
	return topBy(state.Susceptible(), cfg.MaxVaccinationsPerRound, state.InfectedNeighbors)
}

// topBy returns the k candidates with the largest key, descending, ties by
// ascending id. candidates is not modified.
func topBy(candidates []NodeID, k int, key func(NodeID) int) []NodeID {
	type ranked struct {
		id  NodeID
		key int
	}
	rs := make([]ranked, len(candidates))
	for i, id := range candidates {
		rs[i] = ranked{id: id, key: key(id)}
	}
	sort.Slice(rs, func(i, j int) bool {
		if rs[i].key != rs[j].key {
			return rs[i].key > rs[j].key
		}
		return rs[i].id < rs[j].id
	})
	if k > len(rs) {
		k = len(rs)
	}
	if k < 0 {
		k = 0
	}
	out := make([]NodeID, k)
	for i := 0; i < k; i++ {
		out[i] = rs[i].id
	}
	return out
}

// NewVaccinationPolicy creates a vaccination policy by name.
// Valid names are defined in validVaccinationPolicies.
// Empty string defaults to none. rng is used by the sampling policies
// (random, ring) and ignored by the others.
// Panics on unrecognized names.
func NewVaccinationPolicy(name string, rng *rand.Rand) VaccinationPolicy {
	if !IsValidVaccinationPolicy(name) {
		panic(fmt.Sprintf("unknown vaccination policy %q", name))
	}
	switch name {
	case "", PolicyNone:
		return NoVaccination{}
	case PolicyRandom:
		return &RandomVaccination{rng: rng}
	case PolicyRing:
		return &RingVaccination{rng: rng}
	case PolicyDensity:
		return HighDensity{}
	case PolicyGreedy:
		return Greedy{}
	default:
		panic(fmt.Sprintf("unhandled vaccination policy %q", name))
	}
}

// === Manual selection ===

var (
	// ErrUnknownNode is returned for ids not present in the graph.
	ErrUnknownNode = errors.New("node does not exist")
	// ErrNotSusceptible is returned for nodes that are infected, recovered or vaccinated.
	ErrNotSusceptible = errors.New("node is not susceptible")
	// ErrDuplicateNode is returned when the same node is chosen twice.
	ErrDuplicateNode = errors.New("node chosen more than once")
	// ErrSelectionTooLarge is returned for choices past the per-round cap.
	ErrSelectionTooLarge = errors.New("too many nodes selected")
)

// Rejection pairs a refused manual choice with the reason.
type Rejection struct {
	Node NodeID
	Err  error
}

func (r Rejection) Error() string {
	return fmt.Sprintf("node %d: %v", r.Node, r.Err)
}

// CheckSelection splits a manual choice into the nodes that may be vaccinated
// and the rejected ones. It never mutates state. Accepted nodes keep their
// input order; once cfg.MaxVaccinationsPerRound nodes are accepted, further
// valid choices are rejected with ErrSelectionTooLarge.
func CheckSelection(state *State, cfg GameConfig, ids []NodeID) ([]NodeID, []Rejection) {
	accepted := []NodeID{}
	var rejected []Rejection
	seen := make(map[NodeID]bool, len(ids))
	for _, id := range ids {
		st, ok := state.Status(id)
		switch {
		case !ok:
			rejected = append(rejected, Rejection{Node: id, Err: ErrUnknownNode})
		case seen[id]:
			rejected = append(rejected, Rejection{Node: id, Err: ErrDuplicateNode})
		case st != StatusSusceptible:
			rejected = append(rejected, Rejection{Node: id, Err: fmt.Errorf("%w (status: %s)", ErrNotSusceptible, st)})
		case len(accepted) >= cfg.MaxVaccinationsPerRound:
			rejected = append(rejected, Rejection{Node: id, Err: ErrSelectionTooLarge})
		default:
			seen[id] = true
			accepted = append(accepted, id)
		}
	}
	return accepted, rejected
}

// ManualPlan replays a scripted per-round choice, validated with CheckSelection.
// Rounds absent from the plan vaccinate nobody.
type ManualPlan struct {
	Rounds map[int][]NodeID // 1-based round number -> chosen nodes
}

// Select implements VaccinationPolicy for ManualPlan.
func (mp *ManualPlan) Select(state *State, cfg GameConfig) []NodeID {
	round := state.Round + 1
	accepted, rejected := CheckSelection(state, cfg, mp.Rounds[round])
	for _, r := range rejected {
		logrus.Warnf("[round %03d] manual choice rejected: %v", round, r)
	}
	return accepted
}
