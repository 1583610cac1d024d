// Package compiler turns a declarative graph description into a populated runtime graph.
package compiler

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/fsmgraph/internal/runtime"
	"github.com/aretw0/fsmgraph/pkg/domain"
	"github.com/aretw0/fsmgraph/pkg/registry"
)

// Result is the outcome of a compilation.
type Result struct {
	Graph *runtime.Graph

	// Entry is the state designated by the entry transition, or "" when the
	// description has no usable entry.
	Entry string

	Diagnostics []domain.Diagnostic
}

// Option configures Compile.
type Option func(*compiler)

// WithLogger reports diagnostics through logger as they are found.
func WithLogger(logger *slog.Logger) Option {
	return func(c *compiler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithEntryNode overrides the reserved entry identifier (default: "ENTRY").
func WithEntryNode(id string) Option {
	return func(c *compiler) {
		if id != "" {
			c.entryID = id
		}
	}
}

type compiler struct {
	registry *registry.Registry
	logger   *slog.Logger
	entryID  string
	result   *Result
}

// Compile instantiates every node through reg, injects its fields, wires the
// transitions and resolves the entry state.
//
// Structural problems are collected as diagnostics and the offending element is
// skipped. Only a nil description is fatal.
func Compile(desc *domain.GraphDescription, reg *registry.Registry, opts ...Option) (*Result, error) {
	if desc == nil {
		return nil, domain.ErrNilDescription
	}
	if reg == nil {
		reg = registry.Default()
	}

	c := &compiler{
		registry: reg,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		entryID:  domain.EntryNodeID,
		result:   &Result{Graph: runtime.NewGraph()},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.addNodes(desc.Nodes)
	c.addTransitions(desc.Transitions)
	c.resolveEntry(desc.Transitions)

	return c.result, nil
}

func (c *compiler) addNodes(nodes []domain.NodeDescriptor) {
	g := c.result.Graph
	for _, nd := range nodes {
		if nd.ID == c.entryID {
			// the entry marker has no runtime counterpart
			continue
		}
		if strings.TrimSpace(nd.ID) == "" {
			c.report(domain.SeverityError, "", fmt.Errorf("node of kind %q has no id", nd.Kind))
			continue
		}
		if _, exists := g.Node(nd.ID); exists {
			c.report(domain.SeverityError, nd.ID, fmt.Errorf("duplicate node id"))
			continue
		}

		node, err := c.registry.New(nd.Kind, nd.ID)
		if err != nil {
			c.report(domain.SeverityError, nd.ID, err)
			continue
		}

		for _, err := range InjectFields(node, nd.Fields) {
			c.report(domain.SeverityWarning, nd.ID, err)
		}
		g.AddNode(node)
	}
}

func (c *compiler) addTransitions(transitions []domain.TransitionDescriptor) {
	for _, td := range transitions {
		if td.From == c.entryID {
			continue
		}
		kind, err := domain.ParseTransitionKind(td.Kind)
		if err != nil {
			c.report(domain.SeverityError, td.From, fmt.Errorf("transition to %q: %w", td.To, err))
			continue
		}
		if err := c.result.Graph.AddEdge(td.From, td.To, kind); err != nil {
			c.report(domain.SeverityError, td.From, fmt.Errorf("transition to %q skipped: %w", td.To, err))
		}
	}
}

func (c *compiler) resolveEntry(transitions []domain.TransitionDescriptor) {
	var targets []string
	for _, td := range transitions {
		if td.From == c.entryID {
			targets = append(targets, td.To)
		}
	}

	if len(targets) == 0 {
		c.report(domain.SeverityWarning, c.entryID, fmt.Errorf("no entry transition; machine starts without a current state"))
		return
	}
	if len(targets) > 1 {
		c.report(domain.SeverityWarning, c.entryID, fmt.Errorf("%d entry transitions; using the first (%q)", len(targets), targets[0]))
	}

	target := targets[0]
	if _, ok := runtime.Lookup[*domain.State](c.result.Graph, target); !ok {
		c.report(domain.SeverityWarning, c.entryID, fmt.Errorf("entry target %q is not a state; machine starts without a current state", target))
		return
	}
	c.result.Entry = target
}

func (c *compiler) report(sev domain.Severity, nodeID string, err error) {
	d := domain.Diagnostic{Severity: sev, NodeID: nodeID, Message: err.Error(), Err: err}
	c.result.Diagnostics = append(c.result.Diagnostics, d)
	c.logger.Warn("graph load problem", "severity", sev, "node", nodeID, "err", err)
}
