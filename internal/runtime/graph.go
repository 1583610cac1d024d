package runtime

import (
	"fmt"

	"github.com/aretw0/fsmgraph/pkg/domain"
)

// Edge is one outgoing transition of a node.
type Edge struct {
	To   string
	Kind domain.TransitionKind
}

// Graph owns every node of a machine and the adjacency between them.
// It is populated once at load time and is not safe for concurrent mutation.
type Graph struct {
	nodes map[string]domain.Node
	order []string
	edges map[string][]Edge
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]domain.Node),
		edges: make(map[string][]Edge),
	}
}

// AddNode registers n. A node whose identifier is already present is ignored
// and AddNode reports false; the first registration wins.
func (g *Graph) AddNode(n domain.Node) bool {
	if n == nil {
		return false
	}
	if _, exists := g.nodes[n.ID()]; exists {
		return false
	}
	g.nodes[n.ID()] = n
	g.order = append(g.order, n.ID())
	return true
}

// AddEdge appends (to, kind) to the outgoing list of from.
// When the target is a Gate its expected fan-in grows by one.
func (g *Graph) AddEdge(from, to string, kind domain.TransitionKind) error {
	if kind != domain.TransitionCompleted && kind != domain.TransitionContinued {
		return fmt.Errorf("%w: %s", domain.ErrInvalidTransition, kind)
	}
	if _, ok := g.nodes[from]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownNode, from)
	}
	target, ok := g.nodes[to]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownNode, to)
	}

	g.edges[from] = append(g.edges[from], Edge{To: to, Kind: kind})
	if gate, ok := target.(*domain.Gate); ok {
		gate.AddExpectedInput()
	}
	return nil
}

// Node returns the node registered under id.
func (g *Graph) Node(id string) (domain.Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Lookup returns the node registered under id when it has type T.
// Absent identifiers and nodes of another kind both report false.
func Lookup[T domain.Node](g *Graph, id string) (T, bool) {
	var zero T
	n, ok := g.nodes[id]
	if !ok {
		return zero, false
	}
	typed, ok := n.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// Nodes returns every node in registration order.
func (g *Graph) Nodes() []domain.Node {
	out := make([]domain.Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// Edges returns a copy of the outgoing edges of from, in insertion order.
func (g *Graph) Edges(from string) []Edge {
	src := g.edges[from]
	out := make([]Edge, len(src))
	copy(out, src)
	return out
}

// Len is the number of registered nodes.
func (g *Graph) Len() int { return len(g.order) }

// ResetGates drops partially buffered gate inputs.
func (g *Graph) ResetGates() {
	for _, n := range g.nodes {
		if gate, ok := n.(*domain.Gate); ok {
			gate.Reset()
		}
	}
}
