// Package graph holds the validated, immutable game graph produced by the
// algebra engine: positions (nodes) and the legal moves between them (edges).
package graph

import (
	"encoding/json"
	"slices"

	"github.com/Veraticus/groupgame/internal/model"
)

// Graph is a validated game graph. Every edge references existing nodes and
// node ids are unique. A Graph is never modified after New returns it, so it
// may be shared by any number of sessions.
type Graph struct {
	index    map[int]int
	children map[int][]int
	nodes    []model.Node
	edges    []model.Edge
}

// New builds a Graph, rejecting duplicate node ids and dangling edges.
func New(nodes []model.Node, edges []model.Edge) (*Graph, error) {
	g := &Graph{
		index:    make(map[int]int, len(nodes)),
		children: make(map[int][]int),
		nodes:    slices.Clone(nodes),
		edges:    slices.Clone(edges),
	}

	for i, node := range g.nodes {
		if _, exists := g.index[node.ID]; exists {
			return nil, malformed(nil, "duplicate node id %d", node.ID)
		}
		g.index[node.ID] = i
	}

	for i, edge := range g.edges {
		if _, ok := g.index[edge.From]; !ok {
			return nil, malformed(nil, "edge %d references unknown node %d", i, edge.From)
		}
		if _, ok := g.index[edge.To]; !ok {
			return nil, malformed(nil, "edge %d references unknown node %d", i, edge.To)
		}
		g.children[edge.From] = append(g.children[edge.From], edge.To)
	}

	return g, nil
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Nodes returns the nodes in document order.
func (g *Graph) Nodes() []model.Node {
	return slices.Clone(g.nodes)
}

// Edges returns the edges in document order.
func (g *Graph) Edges() []model.Edge {
	return slices.Clone(g.edges)
}

// HasNode reports whether id is a node of the graph.
func (g *Graph) HasNode(id int) bool {
	_, ok := g.index[id]
	return ok
}

// Node looks up a node by id.
func (g *Graph) Node(id int) (model.Node, error) {
	i, ok := g.index[id]
	if !ok {
		return model.Node{}, &NodeNotFoundError{ID: id}
	}
	return g.nodes[i], nil
}

// DescriptionOf returns the description of a node.
func (g *Graph) DescriptionOf(id int) (string, error) {
	node, err := g.Node(id)
	if err != nil {
		return "", err
	}
	return node.Description, nil
}

// ChildrenOf returns the targets of all edges leaving id, in edge order.
// Parallel edges yield repeated ids.
func (g *Graph) ChildrenOf(id int) []int {
	return slices.Clone(g.children[id])
}

// IsTerminal reports whether id has no outgoing edges.
func (g *Graph) IsTerminal(id int) bool {
	return len(g.children[id]) == 0
}

// Terminals returns the ids of all nodes without outgoing edges, in node order.
func (g *Graph) Terminals() []int {
	var ids []int
	for _, node := range g.nodes {
		if g.IsTerminal(node.ID) {
			ids = append(ids, node.ID)
		}
	}
	return ids
}

// Options lists every node as a chooser option, in node order.
func (g *Graph) Options() []model.Option {
	options := make([]model.Option, 0, len(g.nodes))
	for _, node := range g.nodes {
		options = append(options, model.Option{ID: node.ID, Description: node.Description})
	}
	return options
}

// ChildOptions lists the children of id as chooser options, in edge order.
func (g *Graph) ChildOptions(id int) []model.Option {
	children := g.children[id]
	options := make([]model.Option, 0, len(children))
	for _, child := range children {
		node := g.nodes[g.index[child]]
		options = append(options, model.Option{ID: node.ID, Description: node.Description})
	}
	return options
}

// MarshalJSON writes the graph in the same document shape Parse accepts.
func (g *Graph) MarshalJSON() ([]byte, error) {
	doc := struct {
		Nodes []model.Node `json:"nodes"`
		Edges []model.Edge `json:"edges"`
	}{
		Nodes: g.nodes,
		Edges: g.edges,
	}
	if doc.Nodes == nil {
		doc.Nodes = []model.Node{}
	}
	if doc.Edges == nil {
		doc.Edges = []model.Edge{}
	}
	return json.Marshal(doc)
}
