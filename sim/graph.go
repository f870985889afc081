package sim

import "fmt"

// NodeID identifies a node in the contact graph.
type NodeID int

// Edge is an undirected contact between two nodes.
type Edge struct {
	A NodeID
	B NodeID
}

// Graph is the read-only contact network consumed by the simulation.
// Topology never changes during a game, so one Graph may be shared by
// reference across every round and every State built on it.
type Graph interface {
	// Nodes returns every node id. Order is stable across calls.
	Nodes() []NodeID
	// Neighbors returns the adjacent node ids of id (nil for unknown ids).
	Neighbors(id NodeID) []NodeID
	// Degree returns the number of neighbors of id.
	Degree(id NodeID) int
	// HasNode reports whether id is part of the graph.
	HasNode(id NodeID) bool
}

// AdjacencyGraph is an undirected simple graph stored as adjacency lists.
// Node order is insertion order; neighbor order is edge insertion order.
type AdjacencyGraph struct {
	nodes []NodeID
	adj   map[NodeID][]NodeID
}

// NewAdjacencyGraph builds a graph from a node list and an edge list.
// Duplicate edges (in either orientation) are collapsed. Duplicate nodes,
// self loops and edges naming unknown nodes are rejected.
func NewAdjacencyGraph(nodes []NodeID, edges []Edge) (*AdjacencyGraph, error) {
	g := &AdjacencyGraph{
		nodes: make([]NodeID, 0, len(nodes)),
		adj:   make(map[NodeID][]NodeID, len(nodes)),
	}
	for _, id := range nodes {
		if _, dup := g.adj[id]; dup {
			return nil, fmt.Errorf("duplicate node %d", id)
		}
		g.nodes = append(g.nodes, id)
		g.adj[id] = nil
	}

	seen := make(map[Edge]bool, len(edges))
	for i, e := range edges {
		if !g.HasNode(e.A) || !g.HasNode(e.B) {
			return nil, fmt.Errorf("edge[%d] (%d-%d) references unknown node", i, e.A, e.B)
		}
		if e.A == e.B {
			return nil, fmt.Errorf("edge[%d] is a self loop on node %d", i, e.A)
		}
		key := e
		if key.A > key.B {
			key.A, key.B = key.B, key.A
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		g.adj[e.A] = append(g.adj[e.A], e.B)
		g.adj[e.B] = append(g.adj[e.B], e.A)
	}
	return g, nil
}

// NewNodeRange returns the ids 0..n-1, the usual labelling for generated graphs.
func NewNodeRange(n int) []NodeID {
	ids := make([]NodeID, n)
	for i := range ids {
		ids[i] = NodeID(i)
	}
	return ids
}

// Nodes implements Graph.
func (g *AdjacencyGraph) Nodes() []NodeID { return g.nodes }

// Neighbors implements Graph.
func (g *AdjacencyGraph) Neighbors(id NodeID) []NodeID { return g.adj[id] }

// Degree implements Graph.
func (g *AdjacencyGraph) Degree(id NodeID) int { return len(g.adj[id]) }

// HasNode implements Graph.
func (g *AdjacencyGraph) HasNode(id NodeID) bool {
	_, ok := g.adj[id]
	return ok
}

// EdgeCount returns the number of distinct undirected edges.
func (g *AdjacencyGraph) EdgeCount() int {
	total := 0
	for _, id := range g.nodes {
		total += len(g.adj[id])
	}
	return total / 2
}
