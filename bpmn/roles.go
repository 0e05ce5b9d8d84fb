package bpmn

import "github.com/kbukum/flowreport/util"

// DefaultRole is assigned when a node has neither an explicit role nor a lane.
const DefaultRole = "Unassigned/System"

// RoleResolver picks the responsible role of a node within one process.
type RoleResolver struct {
	model       *Model
	defaultRole string
}

// NewRoleResolver returns a resolver over m. An empty defaultRole falls back
// to DefaultRole.
func NewRoleResolver(m *Model, defaultRole string) *RoleResolver {
	return &RoleResolver{
		model:       m,
		defaultRole: util.Coalesce(defaultRole, DefaultRole),
	}
}

// Resolve returns the explicit role, else the lane name, else the default.
// Ids outside the element table resolve through their lane, if any.
func (r *RoleResolver) Resolve(nodeID string) string {
	var explicit string
	if n, ok := r.model.Node(nodeID); ok {
		explicit = n.Role
	}
	return util.Coalesce(explicit, r.model.Lane(nodeID), r.defaultRole)
}
