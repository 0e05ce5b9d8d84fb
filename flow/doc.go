// Package flow turns a loaded process model into an ordered list of visits.
//
// Normalize detects converging gateways that are entered from an
// intermediate catch event and severs their outgoing flows, recording the
// severed targets as priority restart points. A Traverser then walks the
// graph depth-first in three tiers: from every start event, from every
// restart point, and finally from local roots of whatever is still
// unvisited. Each node is visited at most once, so traversal terminates on
// any graph, cycles included.
//
//	g := flow.NewGraph(model.Edges())
//	sev := flow.Normalize(model, g)
//	visits := flow.NewTraverser(model, g, roles, flow.DefaultLabels()).Run(sev)
package flow
