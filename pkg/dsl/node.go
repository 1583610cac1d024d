package dsl

import (
	"strconv"

	"github.com/aretw0/fsmgraph/pkg/domain"
)

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	node    domain.NodeDescriptor
	builder *Builder
}

// Kind sets the registered kind the node is instantiated from.
func (n *NodeBuilder) Kind(kind string) *NodeBuilder {
	n.node.Kind = kind
	return n
}

// Field sets a raw field value, parsed into the node's settings at load time.
func (n *NodeBuilder) Field(key, value string) *NodeBuilder {
	if n.node.Fields == nil {
		n.node.Fields = make(map[string]string)
	}
	n.node.Fields[key] = value
	return n
}

// Duration sets how long a state runs before its Completed transitions fire.
func (n *NodeBuilder) Duration(seconds float64) *NodeBuilder {
	return n.Field("duration", strconv.FormatFloat(seconds, 'g', -1, 64))
}

// Then adds a Completed transition: followed once the state is done.
func (n *NodeBuilder) Then(target string) *NodeBuilder {
	n.builder.edge(n.node.ID, target, domain.TransitionCompleted)
	return n
}

// Go adds a Continued transition: followed on every tick.
func (n *NodeBuilder) Go(target string) *NodeBuilder {
	n.builder.edge(n.node.ID, target, domain.TransitionContinued)
	return n
}

// Build returns the underlying descriptor.
// This is primarily used by the Builder, but exposed for advanced usage.
func (n *NodeBuilder) Build() domain.NodeDescriptor {
	return n.node
}
