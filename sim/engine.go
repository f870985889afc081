// sim/engine.go
package sim

import (
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/vaxnet-sim/vaxnet/sim/trace"
)

// DefaultMaxRounds caps autoplay when a scenario does not set one.
const DefaultMaxRounds = 20

// RoundResult reports what happened in one round.
type RoundResult struct {
	Round         int
	Vaccinated    []NodeID // selections that moved S->V
	Rejected      []NodeID // selections that were not susceptible or unknown
	NewInfections int
	Recoveries    int
	Snapshot      Snapshot
}

// Engine advances a game one round at a time. It holds exclusive ownership
// of its State; the Graph behind the state is shared read-only.
type Engine struct {
	State *State
	rng   *rand.Rand
}

// NewEngine creates an engine over state using rng for infection draws.
func NewEngine(state *State, rng *rand.Rand) *Engine {
	return &Engine{State: state, rng: rng}
}

// Vaccinate moves a susceptible node to vaccinated and charges the vaccination
// cost. Unknown ids and nodes in any other status are left untouched and
// false is returned.
func (e *Engine) Vaccinate(id NodeID) bool {
	s := e.State
	if st, ok := s.status[id]; !ok || st != StatusSusceptible {
		return false
	}
	s.setStatus(id, StatusVaccinated)
	s.TotalCost += s.cfg.VaccinationCost
	s.VaccinationsUsed++
	return true
}

// SpreadInfection runs one synchronous infection sweep and returns the number
// of new infections. Infection chances are computed for every susceptible node
// from the pre-sweep statuses, then all transitions are committed together, so
// nodes infected in this sweep cannot infect others until the next one.
func (e *Engine) SpreadInfection() int {
	s := e.State
	p := s.cfg.InfectionProbability

	// Phase 1: compute against the current statuses without mutating them.
	var toInfect []NodeID
	for _, id := range s.graph.Nodes() {
		if s.status[id] != StatusSusceptible {
			continue
		}
		k := s.InfectedNeighbors(id)
		if k == 0 {
			continue
		}
		chance := 1 - math.Pow(1-p, float64(k))
		if e.rng.Float64() < chance {
			toInfect = append(toInfect, id)
		}
	}

	// Phase 2: commit.
	for _, id := range toInfect {
		s.setStatus(id, StatusInfected)
		s.age[id] = 0
		s.fresh[id] = true
		s.InfectionsOccurred++
		s.TotalCost += s.cfg.InfectionPenalty
	}
	return len(toInfect)
}

// UpdateRecoveries ages every infected node by one round and recovers those
// whose age reached the recovery time. Nodes infected by the spread step just
// before keep age 0 until the next call. Recovery is free.
func (e *Engine) UpdateRecoveries() int {
	s := e.State
	recovered := 0
	for _, id := range s.graph.Nodes() {
		if s.status[id] != StatusInfected {
			continue
		}
		if s.fresh[id] {
			delete(s.fresh, id)
			continue
		}
		s.age[id]++
		if s.age[id] >= s.cfg.RecoveryTime {
			s.setStatus(id, StatusRecovered)
			recovered++
		}
	}
	return recovered
}

// PlayRound advances the game by one round: the selection is vaccinated first,
// then infection spreads, then recoveries are applied. The order matters: a
// node vaccinated this round is immune this round, and a node infected this
// round cannot recover until a later round.
func (e *Engine) PlayRound(selection []NodeID) RoundResult {
	e.State.Round++
	res := RoundResult{Round: e.State.Round}
	for _, id := range selection {
		if e.Vaccinate(id) {
			res.Vaccinated = append(res.Vaccinated, id)
		} else {
			res.Rejected = append(res.Rejected, id)
		}
	}
	res.NewInfections = e.SpreadInfection()
	res.Recoveries = e.UpdateRecoveries()
	res.Snapshot = e.State.Snapshot()
	logrus.Debugf("[round %03d] vaccinated=%d rejected=%d new_infections=%d recovered=%d cost=%d",
		res.Round, len(res.Vaccinated), len(res.Rejected), res.NewInfections, res.Recoveries, res.Snapshot.TotalCost)
	return res
}

// EndReason explains why Run stopped.
type EndReason string

const (
	EndEradicated EndReason = "eradicated"
	EndRoundCap   EndReason = "round cap"
)

// RunResult is the outcome of an autoplay run.
type RunResult struct {
	Rounds int
	Reason EndReason
	Final  Snapshot
	Score  int
	Rank   Rank
}

// Run plays rounds with policy until no node is infected or maxRounds rounds
// have been played (maxRounds <= 0 means DefaultMaxRounds). Each round is
// recorded in metrics and, when tr is non-nil, in the decision trace.
func (e *Engine) Run(policy VaccinationPolicy, policyName string, maxRounds int, metrics *Metrics, tr *trace.GameTrace) RunResult {
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}
	s := e.State
	logrus.Infof("Starting game: policy=%s nodes=%d infected=%d max_rounds=%d",
		policyName, len(s.graph.Nodes()), s.Counts().Infected, maxRounds)
	if metrics != nil {
		metrics.Record(s.Snapshot())
	}

	played := 0
	for !s.IsGameOver() && played < maxRounds {
		selection := policy.Select(s, s.cfg)
		res := e.PlayRound(selection)
		played++
		if metrics != nil {
			metrics.Record(res.Snapshot)
		}
		if tr != nil {
			tr.RecordRound(toRoundRecord(policyName, selection, res))
		}
	}

	reason := EndRoundCap
	if s.IsGameOver() {
		reason = EndEradicated
	}
	result := RunResult{
		Rounds: played,
		Reason: reason,
		Final:  s.Snapshot(),
		Score:  Score(s),
		Rank:   RankFor(Score(s)),
	}
	logrus.Infof("Game ended after %d rounds (%s): cost=%d rank=%s", result.Rounds, result.Reason, result.Score, result.Rank)
	return result
}

func toRoundRecord(policyName string, selection []NodeID, res RoundResult) trace.RoundRecord {
	return trace.RoundRecord{
		Round:         res.Round,
		Policy:        policyName,
		Selected:      toInts(selection),
		Vaccinated:    toInts(res.Vaccinated),
		Rejected:      toInts(res.Rejected),
		NewInfections: res.NewInfections,
		Recoveries:    res.Recoveries,
		Infected:      res.Snapshot.Infected,
		TotalCost:     res.Snapshot.TotalCost,
	}
}

func toInts(ids []NodeID) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}
	return out
}
