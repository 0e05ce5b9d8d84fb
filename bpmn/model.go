package bpmn

import "fmt"

// Category classifies a flow element. It is assigned once at load time from
// the element's local tag.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryStart
	CategoryEnd
	CategoryGateway
	CategoryTask
	CategoryEvent
)

var categoryNames = map[Category]string{
	CategoryUnknown: "Unknown",
	CategoryStart:   "Start",
	CategoryEnd:     "End",
	CategoryGateway: "Gateway",
	CategoryTask:    "Task",
	CategoryEvent:   "Event",
}

func (c Category) String() string {
	if s, ok := categoryNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// MarshalText renders the category by name in JSON and YAML output.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses a category name.
func (c *Category) UnmarshalText(b []byte) error {
	for k, v := range categoryNames {
		if v == string(b) {
			*c = k
			return nil
		}
	}
	return fmt.Errorf("bpmn: unknown category %q", string(b))
}

// Node is a categorized flow element of a process.
type Node struct {
	ID       string
	Name     string
	Category Category
	// Tag is the raw local tag name, kept for pattern matching.
	Tag string
	// Description is the documentation text, verbatim.
	Description string
	// Role is the explicitly assigned resource name, if any.
	Role string
}

// Edge is a directed sequence flow. Parallel edges are allowed.
type Edge struct {
	Source string
	Target string
}

// Document is the result of parsing one definition.
type Document struct {
	// Resources maps resource id to role name across the whole document.
	Resources map[string]string
	// Processes in document order.
	Processes []*Model
}

// Model holds the lookup tables of a single process.
type Model struct {
	ID   string
	Name string

	nodes     map[string]*Node
	order     []string
	edges     []Edge
	lanes     map[string]string
	tags      map[string]string
	resources map[string]string
}

func newModel(id, name string, resources map[string]string) *Model {
	return &Model{
		ID:        id,
		Name:      name,
		nodes:     make(map[string]*Node),
		lanes:     make(map[string]string),
		tags:      make(map[string]string),
		resources: resources,
	}
}

// Node returns the element with the given id.
func (m *Model) Node(id string) (*Node, bool) {
	n, ok := m.nodes[id]
	return n, ok
}

// Nodes returns all categorized elements in load order.
func (m *Model) Nodes() []*Node {
	out := make([]*Node, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.nodes[id])
	}
	return out
}

// Edges returns the sequence flows in document order.
func (m *Model) Edges() []Edge {
	return m.edges
}

// Lane returns the name of the lane holding id, or "" when there is none.
func (m *Model) Lane(id string) string {
	return m.lanes[id]
}

// Tag returns the raw local tag recorded for id, including elements that were
// not categorized. Unknown ids return "".
func (m *Model) Tag(id string) string {
	return m.tags[id]
}

// Resource returns the role name of a resource id.
func (m *Model) Resource(id string) (string, bool) {
	name, ok := m.resources[id]
	return name, ok
}

// addNode inserts or updates an element, keeping its first load position.
func (m *Model) addNode(n *Node) {
	prev, ok := m.nodes[n.ID]
	if !ok {
		m.nodes[n.ID] = n
		m.order = append(m.order, n.ID)
		return
	}
	prev.Name = n.Name
	prev.Category = n.Category
	prev.Tag = n.Tag
	if n.Description != "" {
		prev.Description = n.Description
	}
	if n.Role != "" {
		prev.Role = n.Role
	}
}

// NewModel builds a model directly from tables. Nodes keep the given order.
// It is used by callers that assemble graphs without XML, such as tests.
func NewModel(name string, nodes []*Node, edges []Edge, lanes map[string]string) *Model {
	m := newModel("", name, map[string]string{})
	for _, n := range nodes {
		m.tags[n.ID] = n.Tag
		m.addNode(n)
	}
	m.edges = append(m.edges, edges...)
	for id, lane := range lanes {
		m.lanes[id] = lane
	}
	return m
}
