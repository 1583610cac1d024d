package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/fsmgraph/internal/compiler"
	"github.com/aretw0/fsmgraph/pkg/domain"
	"github.com/aretw0/fsmgraph/pkg/registry"
)

// Validate statically checks a description without running it.
//
// Besides what the compiler reports (unknown kinds, duplicate ids, bad fields,
// dangling edges, entry problems) it flags unreachable nodes, gates without
// inputs and NOT gates whose arity is not one.
func Validate(desc *domain.GraphDescription, reg *registry.Registry, entryID string) []domain.Diagnostic {
	if desc == nil {
		return []domain.Diagnostic{diag(domain.SeverityError, "", domain.ErrNilDescription)}
	}
	if reg == nil {
		reg = registry.Default()
	}
	if entryID == "" {
		entryID = domain.EntryNodeID
	}

	v := &validation{
		entryID: entryID,
		nodes:   make(map[string]domain.Node),
		adj:     make(map[string][]string),
		fanIn:   make(map[string]int),
	}
	v.checkNodes(desc.Nodes, reg)
	v.checkTransitions(desc.Transitions)
	v.checkEntry(desc.Transitions)
	v.checkReachability(desc.Nodes)
	v.checkGates(desc.Nodes)
	return v.diags
}

// Err folds error-severity diagnostics into a single error, or nil when there are none.
func Err(diags []domain.Diagnostic) error {
	var lines []string
	for _, d := range diags {
		if d.Severity == domain.SeverityError {
			lines = append(lines, d.String())
		}
	}
	if len(lines) == 0 {
		return nil
	}
	return fmt.Errorf("found %d errors:\n- %s", len(lines), strings.Join(lines, "\n- "))
}

type validation struct {
	entryID string
	nodes   map[string]domain.Node
	adj     map[string][]string
	fanIn   map[string]int
	diags   []domain.Diagnostic
}

func diag(sev domain.Severity, nodeID string, err error) domain.Diagnostic {
	return domain.Diagnostic{Severity: sev, NodeID: nodeID, Message: err.Error(), Err: err}
}

func (v *validation) report(sev domain.Severity, nodeID string, err error) {
	v.diags = append(v.diags, diag(sev, nodeID, err))
}

func (v *validation) checkNodes(nodes []domain.NodeDescriptor, reg *registry.Registry) {
	for _, nd := range nodes {
		if nd.ID == v.entryID {
			continue
		}
		if strings.TrimSpace(nd.ID) == "" {
			v.report(domain.SeverityError, "", fmt.Errorf("node of kind %q has no id", nd.Kind))
			continue
		}
		if _, dup := v.nodes[nd.ID]; dup {
			v.report(domain.SeverityError, nd.ID, fmt.Errorf("duplicate node id"))
			continue
		}
		node, err := reg.New(nd.Kind, nd.ID)
		if err != nil {
			v.report(domain.SeverityError, nd.ID, err)
			continue
		}
		for _, ferr := range compiler.InjectFields(node, nd.Fields) {
			v.report(domain.SeverityWarning, nd.ID, ferr)
		}
		v.nodes[nd.ID] = node
	}
}

func (v *validation) checkTransitions(transitions []domain.TransitionDescriptor) {
	for _, t := range transitions {
		if t.From == v.entryID {
			continue
		}
		if _, err := domain.ParseTransitionKind(t.Kind); err != nil {
			v.report(domain.SeverityError, t.From, fmt.Errorf("transition to %q: %w", t.To, err))
			continue
		}
		_, fromOK := v.nodes[t.From]
		_, toOK := v.nodes[t.To]
		if !fromOK {
			v.report(domain.SeverityError, t.From, fmt.Errorf("transition to %q leaves an unknown node: %w", t.To, domain.ErrUnknownNode))
		}
		if !toOK {
			v.report(domain.SeverityError, t.From, fmt.Errorf("transition targets unknown node %q: %w", t.To, domain.ErrUnknownNode))
		}
		if !fromOK || !toOK {
			continue
		}
		v.adj[t.From] = append(v.adj[t.From], t.To)
		v.fanIn[t.To]++
	}
}

func (v *validation) checkEntry(transitions []domain.TransitionDescriptor) {
	var targets []string
	for _, t := range transitions {
		if t.From == v.entryID {
			targets = append(targets, t.To)
		}
	}
	switch {
	case len(targets) == 0:
		v.report(domain.SeverityError, v.entryID, fmt.Errorf("no entry transition"))
		return
	case len(targets) > 1:
		v.report(domain.SeverityWarning, v.entryID, fmt.Errorf("%d entry transitions; only the first (%q) is used", len(targets), targets[0]))
	}

	node, ok := v.nodes[targets[0]]
	switch {
	case !ok:
		v.report(domain.SeverityError, v.entryID, fmt.Errorf("entry targets unknown node %q: %w", targets[0], domain.ErrUnknownNode))
	case node.Kind() != domain.NodeState:
		v.report(domain.SeverityError, v.entryID, fmt.Errorf("entry target %q is a %s: %w", targets[0], node.Kind(), domain.ErrNotAState))
	default:
		v.adj[v.entryID] = []string{targets[0]}
	}
}

func (v *validation) checkReachability(nodes []domain.NodeDescriptor) {
	start, ok := v.adj[v.entryID]
	if !ok {
		return
	}

	visited := map[string]bool{}
	queue := append([]string(nil), start...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			continue
		}
		visited[id] = true
		for _, next := range v.adj[id] {
			if !visited[next] {
				queue = append(queue, next)
			}
		}
	}

	for _, nd := range nodes {
		if _, known := v.nodes[nd.ID]; known && !visited[nd.ID] {
			v.report(domain.SeverityWarning, nd.ID, fmt.Errorf("unreachable from the entry state"))
		}
	}
}

func (v *validation) checkGates(nodes []domain.NodeDescriptor) {
	for _, nd := range nodes {
		gate, ok := v.nodes[nd.ID].(*domain.Gate)
		if !ok {
			continue
		}
		inputs := v.fanIn[nd.ID]
		switch {
		case inputs == 0:
			v.report(domain.SeverityWarning, nd.ID, fmt.Errorf("%s gate has no inputs and never fires", gate.Operator()))
		case gate.Operator() == domain.GateNot && inputs != 1:
			v.report(domain.SeverityWarning, nd.ID, fmt.Errorf("not gate has %d inputs; it fires true only when all are false", inputs))
		}
	}
}
