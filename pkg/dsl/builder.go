package dsl

import (
	"github.com/aretw0/fsmgraph/pkg/adapters/memory"
	"github.com/aretw0/fsmgraph/pkg/domain"
)

// Builder manages the graph construction.
// Nodes and transitions keep the order they were declared in.
type Builder struct {
	name        string
	order       []string
	nodes       map[string]*NodeBuilder
	transitions []domain.TransitionDescriptor
}

// New creates a new graph builder.
func New(name string) *Builder {
	return &Builder{
		name:  name,
		nodes: make(map[string]*NodeBuilder),
	}
}

// Entry declares the state the machine starts in.
func (b *Builder) Entry(target string) *Builder {
	b.edge(domain.EntryNodeID, target, domain.TransitionContinued)
	return b
}

// Add creates a new node in the graph. Nodes default to the plain "state" kind.
// If the node already exists, it returns the existing builder.
func (b *Builder) Add(id string) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{
		node:    domain.NodeDescriptor{ID: id, Kind: domain.KindState},
		builder: b,
	}
	b.nodes[id] = nb
	b.order = append(b.order, id)
	return nb
}

// State is shorthand for Add(id).Kind(kind) on a state.
func (b *Builder) State(id string) *NodeBuilder {
	return b.Add(id).Kind(domain.KindState)
}

// Condition adds a condition node of the given registered kind.
func (b *Builder) Condition(id, kind string) *NodeBuilder {
	return b.Add(id).Kind(kind)
}

// Gate adds a logical gate.
func (b *Builder) Gate(id string, op domain.GateKind) *NodeBuilder {
	return b.Add(id).Kind(string(op))
}

// Edge adds an explicit transition.
func (b *Builder) Edge(from, to string, kind domain.TransitionKind) *Builder {
	b.edge(from, to, kind)
	return b
}

func (b *Builder) edge(from, to string, kind domain.TransitionKind) {
	b.transitions = append(b.transitions, domain.TransitionDescriptor{
		From: from,
		To:   to,
		Kind: kind.String(),
	})
}

// Build returns the description declared so far.
func (b *Builder) Build() *domain.GraphDescription {
	desc := &domain.GraphDescription{
		Name:        b.name,
		Nodes:       make([]domain.NodeDescriptor, 0, len(b.order)),
		Transitions: append([]domain.TransitionDescriptor(nil), b.transitions...),
	}
	for _, id := range b.order {
		desc.Nodes = append(desc.Nodes, b.nodes[id].node)
	}
	return desc.Clone()
}

// Loader wraps the built description in an in-memory loader.
func (b *Builder) Loader() *memory.Loader {
	return memory.NewLoader(b.Build())
}
