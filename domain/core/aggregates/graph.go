package aggregates

import (
	"strings"

	"portfolio-backend/domain/core/entities"
)

// Graph is the Mindscape: nodes plus the connections between them
type Graph struct {
	Nodes       []entities.Node       `json:"nodes"`
	Connections []entities.Connection `json:"connections"`
}

// NewGraph never returns nil slices so the JSON always carries arrays
func NewGraph(nodes []entities.Node, connections []entities.Connection) Graph {
	if nodes == nil {
		nodes = []entities.Node{}
	}
	if connections == nil {
		connections = []entities.Connection{}
	}
	return Graph{Nodes: nodes, Connections: connections}
}

// PublicView keeps only public nodes and the connections whose two endpoints survive
func (g Graph) PublicView() Graph {
	return g.keep(func(n entities.Node) bool { return n.IsPublic })
}

// Filter keeps nodes matching query and nodeType. query matches the title or any
// tag, case-insensitively; an empty query or a nodeType of "" or "all" matches everything.
func (g Graph) Filter(query, nodeType string) Graph {
	q := strings.ToLower(strings.TrimSpace(query))
	t := strings.TrimSpace(nodeType)
	if q == "" && (t == "" || t == "all") {
		return g.keep(func(entities.Node) bool { return true })
	}
	return g.keep(func(n entities.Node) bool {
		return matchesQuery(n, q) && matchesType(n, t)
	})
}

// NodeIDs returns the set of node ids in the graph
func (g Graph) NodeIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		ids[n.ID] = struct{}{}
	}
	return ids
}

func (g Graph) keep(pred func(entities.Node) bool) Graph {
	kept := Graph{Nodes: make([]entities.Node, 0, len(g.Nodes))}
	for _, n := range g.Nodes {
		if pred(n) {
			kept.Nodes = append(kept.Nodes, n)
		}
	}
	ids := kept.NodeIDs()

	connections := make([]entities.Connection, 0, len(g.Connections))
	for _, c := range g.Connections {
		_, src := ids[c.SourceNodeID]
		_, dst := ids[c.TargetNodeID]
		if src && dst {
			connections = append(connections, c)
		}
	}
	return Graph{Nodes: kept.Nodes, Connections: connections}
}

func matchesQuery(n entities.Node, q string) bool {
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(n.Title), q) {
		return true
	}
	for _, tag := range n.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func matchesType(n entities.Node, t string) bool {
	return t == "" || t == "all" || string(n.Type) == t
}
