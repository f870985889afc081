package sim

import (
	"fmt"
	"time"

	"github.com/vaxnet-sim/vaxnet/sim/trace"
)

// Game wires a scenario to an engine, a policy and the reporting collectors.
// Games built from the same scenario, graph and key seed the same initial
// infections whatever the policy, so strategies can be compared fairly.
type Game struct {
	Engine     *Engine
	Policy     VaccinationPolicy
	PolicyName string
	Seeds      []NodeID
	MaxRounds  int
	Key        SimulationKey
	Metrics    *Metrics
	Trace      *trace.GameTrace // nil if trace_level is "none"
}

// NewGame builds a ready-to-play game. policyName overrides the scenario's
// policy when non-empty. The scenario must already be validated.
func NewGame(sc *Scenario, g Graph, key SimulationKey, policyName string) (*Game, error) {
	if policyName == "" {
		policyName = sc.Policy
	}
	if !IsValidVaccinationPolicy(policyName) && policyName != PolicyManual {
		return nil, fmt.Errorf("unknown policy %q", policyName)
	}
	if policyName == "" {
		policyName = PolicyNone
	}

	rng := NewPartitionedRNG(key)
	state := NewState(g, sc.GameConfig())
	seeds, err := sc.Seed(state, rng.ForSubsystem(SubsystemSeeding))
	if err != nil {
		return nil, err
	}

	withPolicy := *sc
	withPolicy.Policy = policyName
	return &Game{
		Engine:     NewEngine(state, rng.ForSubsystem(SubsystemSpread)),
		Policy:     withPolicy.NewPolicy(rng.ForSubsystem(SubsystemPolicy)),
		PolicyName: policyName,
		Seeds:      seeds,
		MaxRounds:  sc.MaxRounds,
		Key:        key,
		Metrics:    NewMetrics(),
		Trace:      trace.NewGameTrace(trace.TraceConfig{Level: trace.TraceLevel(sc.TraceLevel)}),
	}, nil
}

// GameReport bundles all outputs from a finished game.
type GameReport struct {
	Result   RunResult
	Output   MetricsOutput
	Trace    *trace.GameTrace    // nil if tracing is disabled
	Summary  *trace.TraceSummary // nil if tracing is disabled
	WallTime time.Duration
}

// Play runs the game to completion and collects the report.
func (g *Game) Play() *GameReport {
	start := time.Now()
	res := g.Engine.Run(g.Policy, g.PolicyName, g.MaxRounds, g.Metrics, g.Trace)
	report := &GameReport{
		Result:   res,
		Output:   g.Metrics.Output(g.PolicyName, int64(g.Key), g.Engine.State, res),
		Trace:    g.Trace,
		WallTime: time.Since(start),
	}
	if g.Trace != nil {
		report.Summary = trace.Summarize(g.Trace)
	}
	return report
}
