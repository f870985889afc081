package sim

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// pathGraph builds 0-1-2-...-(n-1).
func pathGraph(t *testing.T, n int) *AdjacencyGraph {
	t.Helper()
	var edges []Edge
	for i := 0; i+1 < n; i++ {
		edges = append(edges, Edge{A: NodeID(i), B: NodeID(i + 1)})
	}
	g, err := NewAdjacencyGraph(NewNodeRange(n), edges)
	require.NoError(t, err)
	return g
}

// starGraph builds a hub 0 connected to leaves 1..leaves.
func starGraph(t *testing.T, leaves int) *AdjacencyGraph {
	t.Helper()
	var edges []Edge
	for i := 1; i <= leaves; i++ {
		edges = append(edges, Edge{A: 0, B: NodeID(i)})
	}
	g, err := NewAdjacencyGraph(NewNodeRange(leaves+1), edges)
	require.NoError(t, err)
	return g
}

// randomGraph builds an Erdos-Renyi style graph for property tests.
func randomGraph(t *testing.T, n int, p float64, seed int64) *AdjacencyGraph {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	var edges []Edge
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rng.Float64() < p {
				edges = append(edges, Edge{A: NodeID(i), B: NodeID(j)})
			}
		}
	}
	g, err := NewAdjacencyGraph(NewNodeRange(n), edges)
	require.NoError(t, err)
	return g
}

// newTestEngine builds a state with the given seeds and an engine with a fixed RNG.
func newTestEngine(t *testing.T, g Graph, cfg GameConfig, seeds ...NodeID) *Engine {
	t.Helper()
	require.NoError(t, cfg.Validate())
	state := NewState(g, cfg)
	require.NoError(t, state.SeedInfected(seeds...))
	return NewEngine(state, rand.New(rand.NewSource(42)))
}

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func float64Ptr(v float64) *float64 { return &v }
func intPtr(v int) *int             { return &v }
