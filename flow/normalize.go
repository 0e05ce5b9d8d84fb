package flow

import (
	"strings"

	"github.com/kbukum/flowreport/bpmn"
)

// Severance records the virtual cuts applied by Normalize.
type Severance struct {
	// Gateways severed, in the order they were first detected.
	Gateways []string
	// RestartNodes are the former successors of severed gateways, in
	// gateway order then adjacency order.
	RestartNodes []string
}

// Normalize severs converging gateways reached from an intermediate catch
// event. A gateway qualifies when some edge runs from a node whose raw tag
// contains "intermediateCatchEvent" into it and its in-degree is above one.
// Edges are examined in document order, so the result is deterministic.
func Normalize(m *bpmn.Model, g *Graph) Severance {
	inDegree := g.InDegree()

	var sev Severance
	marked := make(map[string]bool)
	for _, e := range g.Edges() {
		if marked[e.Target] {
			continue
		}
		if !strings.Contains(m.Tag(e.Source), "intermediateCatchEvent") {
			continue
		}
		if !strings.Contains(m.Tag(e.Target), "Gateway") || inDegree[e.Target] <= 1 {
			continue
		}
		marked[e.Target] = true
		sev.Gateways = append(sev.Gateways, e.Target)
	}

	for _, gw := range sev.Gateways {
		sev.RestartNodes = append(sev.RestartNodes, g.Sever(gw)...)
	}
	return sev
}
