// Package sim provides the turn-based epidemic engine for vaxnet: an SIR
// process over a static contact graph with a fourth Vaccinated compartment.
//
// # Reading Guide
//
// Start with these files to understand the game kernel:
//   - state.go: per-node status (S, I, R, V), infection age and the cost counters
//   - engine.go: one round = vaccinate, then spread, then recover
//   - policy.go: the four automated vaccination strategies and manual selection
//
// # Round semantics
//
// Spread is a synchronous two-phase sweep: every susceptible node's chance
// 1-(1-p)^k is computed from the statuses at the start of the sweep and all
// new infections are committed together. A node infected in round r starts at
// infection age 0 and is first aged by the recovery step of round r+1.
//
// # Determinism
//
// All randomness flows from a PartitionedRNG (rng.go). Infection draws,
// policy sampling and initial seeding use separate subsystems, so changing the
// policy never changes which nodes are seeded.
//
// # Sub-packages
//   - sim/trace/: per-round decision trace records and summaries
//   - sim/results/: SQLite persistence of finished runs for cross-run comparison
package sim
