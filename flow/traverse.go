package flow

import (
	"github.com/kbukum/flowreport/bpmn"
	"github.com/kbukum/flowreport/util"
)

// Labels name the traversal groups.
type Labels struct {
	// MainFlow is used for a start event without a name.
	MainFlow     string
	Continuation string
	OtherFlows   string
}

// DefaultLabels returns the standard group labels.
func DefaultLabels() Labels {
	return Labels{
		MainFlow:     "Main Flow",
		Continuation: "Post-Gateway Continuation",
		OtherFlows:   "Other Flows",
	}
}

func (l Labels) withDefaults() Labels {
	d := DefaultLabels()
	return Labels{
		MainFlow:     util.Coalesce(l.MainFlow, d.MainFlow),
		Continuation: util.Coalesce(l.Continuation, d.Continuation),
		OtherFlows:   util.Coalesce(l.OtherFlows, d.OtherFlows),
	}
}

// Visit is one node as met by a traversal run. Name and Description are
// already cleaned of markup.
type Visit struct {
	Process     string        `json:"process" yaml:"process"`
	Group       string        `json:"group" yaml:"group"`
	Order       int           `json:"order" yaml:"order"`
	Role        string        `json:"role" yaml:"role"`
	Name        string        `json:"name" yaml:"name"`
	Description string        `json:"description" yaml:"description"`
	Category    bpmn.Category `json:"category" yaml:"category"`
	NodeID      string        `json:"node_id" yaml:"node_id"`
}

// Root is a pending traversal starting point.
type Root struct {
	NodeID string
	Group  string
}

// Traverser walks one process. It owns the visited set and is discarded
// after Run.
type Traverser struct {
	model   *bpmn.Model
	graph   *Graph
	roles   *bpmn.RoleResolver
	labels  Labels
	visited map[string]bool
	visits  []Visit
}

// NewTraverser prepares a traversal of m over g. Empty labels take their
// default values.
func NewTraverser(m *bpmn.Model, g *Graph, roles *bpmn.RoleResolver, labels Labels) *Traverser {
	return &Traverser{
		model:   m,
		graph:   g,
		roles:   roles,
		labels:  labels.withDefaults(),
		visited: make(map[string]bool),
	}
}

// Visited reports whether id has been reached by any run.
func (t *Traverser) Visited(id string) bool {
	return t.visited[id]
}

// Visits returns the visits emitted so far in emission order.
func (t *Traverser) Visits() []Visit {
	return t.visits
}

// Traverse runs a pre-order depth-first walk from startID. Emitted visits are
// numbered from startOrder; the next unused number is returned. Nodes that
// are already visited are skipped, so the walk terminates on cycles.
func (t *Traverser) Traverse(startID, group string, startOrder int) int {
	order := startOrder
	stack := []string{startID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if t.visited[id] {
			continue
		}
		t.visited[id] = true

		if v, ok := t.visit(id, group, order); ok {
			t.visits = append(t.visits, v)
			order++
		}

		// Reverse push keeps adjacency order on pop.
		next := t.graph.Successors(id)
		for i := len(next) - 1; i >= 0; i-- {
			if !t.visited[next[i]] {
				stack = append(stack, next[i])
			}
		}
	}
	return order
}

// visit builds the record for id, or reports false when the node is not
// worth a row: it has no name and is not a start, end, gateway or task.
func (t *Traverser) visit(id, group string, order int) (Visit, bool) {
	n, ok := t.model.Node(id)
	if !ok {
		n = &bpmn.Node{ID: id, Category: bpmn.CategoryUnknown}
	}
	switch n.Category {
	case bpmn.CategoryStart, bpmn.CategoryEnd, bpmn.CategoryGateway, bpmn.CategoryTask:
	default:
		if n.Name == "" {
			return Visit{}, false
		}
	}
	return Visit{
		Process:     t.model.Name,
		Group:       group,
		Order:       order,
		Role:        t.roles.Resolve(id),
		Name:        util.CleanMarkup(n.Name),
		Description: util.CleanMarkup(n.Description),
		Category:    n.Category,
		NodeID:      id,
	}, true
}

// PendingRoots lists the first two tiers of runs: each start event in load
// order, then each restart node of sev.
func (t *Traverser) PendingRoots(sev Severance) []Root {
	var roots []Root
	for _, n := range t.model.Nodes() {
		if n.Category == bpmn.CategoryStart {
			roots = append(roots, Root{NodeID: n.ID, Group: util.Coalesce(util.CleanMarkup(n.Name), t.labels.MainFlow)})
		}
	}
	for _, id := range sev.RestartNodes {
		roots = append(roots, Root{NodeID: id, Group: t.labels.Continuation})
	}
	return roots
}

// Run consumes the pending roots, then covers every remaining element with
// "other flows" runs. Every run numbers its visits from 1.
func (t *Traverser) Run(sev Severance) []Visit {
	for _, r := range t.PendingRoots(sev) {
		if !t.visited[r.NodeID] {
			t.Traverse(r.NodeID, r.Group, 1)
		}
	}
	for {
		root, ok := t.nextOrphanRoot()
		if !ok {
			break
		}
		t.Traverse(root, t.labels.OtherFlows, 1)
	}
	return t.visits
}

// nextOrphanRoot picks the first unvisited element that no unvisited element
// points at, falling back to the first unvisited element when every candidate
// sits on a cycle.
func (t *Traverser) nextOrphanRoot() (string, bool) {
	var unvisited []string
	for _, n := range t.model.Nodes() {
		if !t.visited[n.ID] {
			unvisited = append(unvisited, n.ID)
		}
	}
	if len(unvisited) == 0 {
		return "", false
	}

	targeted := make(map[string]bool)
	for _, id := range unvisited {
		for _, next := range t.graph.Successors(id) {
			targeted[next] = true
		}
	}
	for _, id := range unvisited {
		if !targeted[id] {
			return id, true
		}
	}
	return unvisited[0], true
}
