package flow

import "github.com/kbukum/flowreport/bpmn"

// Graph is a mutable adjacency list over node ids. Successor order follows
// the order edges were added.
type Graph struct {
	adj   map[string][]string
	edges []bpmn.Edge
}

// NewGraph builds a graph from edges in the given order.
func NewGraph(edges []bpmn.Edge) *Graph {
	g := &Graph{adj: make(map[string][]string, len(edges))}
	for _, e := range edges {
		g.adj[e.Source] = append(g.adj[e.Source], e.Target)
	}
	g.edges = append(g.edges, edges...)
	return g
}

// Successors returns the current successors of id.
func (g *Graph) Successors(id string) []string {
	return g.adj[id]
}

// Edges returns the edges the graph was built from, unaffected by Sever.
func (g *Graph) Edges() []bpmn.Edge {
	return g.edges
}

// InDegree counts incoming edges per target over every edge, parallel edges
// included.
func (g *Graph) InDegree() map[string]int {
	in := make(map[string]int)
	for _, e := range g.edges {
		in[e.Target]++
	}
	return in
}

// Sever removes every outgoing edge of id and returns the removed targets.
func (g *Graph) Sever(id string) []string {
	removed := g.adj[id]
	if len(removed) == 0 {
		return nil
	}
	g.adj[id] = nil
	return removed
}
