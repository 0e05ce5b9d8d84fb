package flow

import (
	"github.com/kbukum/flowreport/bpmn"
)

func start(id, name string) *bpmn.Node {
	return &bpmn.Node{ID: id, Name: name, Category: bpmn.CategoryStart, Tag: "startEvent"}
}

func task(id, name string) *bpmn.Node {
	return &bpmn.Node{ID: id, Name: name, Category: bpmn.CategoryTask, Tag: "userTask"}
}

func gateway(id string) *bpmn.Node {
	return &bpmn.Node{ID: id, Category: bpmn.CategoryGateway, Tag: "exclusiveGateway"}
}

func catchEvent(id, name string) *bpmn.Node {
	return &bpmn.Node{ID: id, Name: name, Category: bpmn.CategoryEvent, Tag: "intermediateCatchEvent"}
}

func end(id string) *bpmn.Node {
	return &bpmn.Node{ID: id, Category: bpmn.CategoryEnd, Tag: "endEvent"}
}

func edges(pairs ...string) []bpmn.Edge {
	out := make([]bpmn.Edge, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, bpmn.Edge{Source: pairs[i], Target: pairs[i+1]})
	}
	return out
}

// run normalizes and traverses a model built from nodes and edges.
func run(nodes []*bpmn.Node, es []bpmn.Edge, lanes map[string]string) ([]Visit, Severance) {
	m := bpmn.NewModel("P", nodes, es, lanes)
	g := NewGraph(m.Edges())
	sev := Normalize(m, g)
	tr := NewTraverser(m, g, bpmn.NewRoleResolver(m, ""), DefaultLabels())
	return tr.Run(sev), sev
}

type step struct {
	id    string
	group string
	order int
}

func steps(visits []Visit) []step {
	out := make([]step, len(visits))
	for i, v := range visits {
		out[i] = step{v.NodeID, v.Group, v.Order}
	}
	return out
}
