package fsmgraph

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/fsmgraph/internal/compiler"
	"github.com/aretw0/fsmgraph/internal/runtime"
	"github.com/aretw0/fsmgraph/pkg/domain"
	"github.com/aretw0/fsmgraph/pkg/ports"
	"github.com/aretw0/fsmgraph/pkg/registry"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// Machine is the high-level entry point for the fsmgraph library.
// It wraps the internal runtime and provides a simplified API for hosts.
//
// A Machine is not safe for concurrent use; see pkg/supervisor for hosts that
// drive machines from several goroutines.
type Machine struct {
	engine      *runtime.Engine
	desc        *domain.GraphDescription
	diagnostics []domain.Diagnostic
	entry       string

	registry    *registry.Registry
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	carryOver   bool
	entryNodeID string
}

// Option defines a functional option for configuring the Machine.
type Option func(*Machine)

// WithLogger sets a custom structured logger for the machine.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Machine) {
		m.hooks = hooks
	}
}

// WithRegistry sets the kind registry used to instantiate nodes (default: registry.Default()).
func WithRegistry(reg *registry.Registry) Option {
	return func(m *Machine) {
		m.registry = reg
	}
}

// WithGateCarryOver keeps partially filled gate buffers between propagation passes.
func WithGateCarryOver(enabled bool) Option {
	return func(m *Machine) {
		m.carryOver = enabled
	}
}

// WithEntryNode configures the reserved entry identifier (default: "ENTRY").
func WithEntryNode(nodeID string) Option {
	return func(m *Machine) {
		m.entryNodeID = nodeID
	}
}

// New compiles desc and enters its entry state.
//
// Structural problems in desc do not fail New; they are available from
// Diagnostics. A description without a usable entry yields an idle machine.
func New(desc *domain.GraphDescription, opts ...Option) (*Machine, error) {
	m := &Machine{entryNodeID: domain.EntryNodeID}
	for _, opt := range opts {
		opt(m)
	}

	if m.logger == nil {
		m.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if m.registry == nil {
		m.registry = registry.Default()
	}
	if desc != nil && desc.Name != "" {
		m.logger = m.logger.With("graph", desc.Name)
	}

	res, err := compiler.Compile(desc, m.registry,
		compiler.WithLogger(m.logger),
		compiler.WithEntryNode(m.entryNodeID),
	)
	if err != nil {
		return nil, fmt.Errorf("compile graph: %w", err)
	}
	m.desc = desc.Clone()
	m.diagnostics = res.Diagnostics
	m.entry = res.Entry

	m.engine = runtime.NewEngine(res.Graph,
		runtime.WithLogger(m.logger),
		runtime.WithLifecycleHooks(m.hooks),
		runtime.WithGateCarryOver(m.carryOver),
	)

	if m.entry != "" {
		if err := m.engine.SetState(context.Background(), m.entry); err != nil {
			return nil, fmt.Errorf("enter %q: %w", m.entry, err)
		}
	}
	return m, nil
}

// Load reads a description through loader and builds a Machine from it.
func Load(ctx context.Context, loader ports.GraphLoader, opts ...Option) (*Machine, error) {
	desc, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load graph: %w", err)
	}
	return New(desc, opts...)
}

// Name returns the description's name, if any.
func (m *Machine) Name() string { return m.desc.Name }

// Description returns a copy of the description the machine was built from.
func (m *Machine) Description() *domain.GraphDescription { return m.desc.Clone() }

// Diagnostics returns the problems found while compiling the description.
func (m *Machine) Diagnostics() []domain.Diagnostic {
	return append([]domain.Diagnostic(nil), m.diagnostics...)
}

// Entry returns the resolved entry state, or "" for an idle machine.
func (m *Machine) Entry() string { return m.entry }

// Tick advances the current state by dt seconds and runs propagation.
func (m *Machine) Tick(ctx context.Context, dt float64) {
	m.engine.Tick(ctx, dt)
}

// FixedTick runs the current state's fixed-step hook.
func (m *Machine) FixedTick(ctx context.Context) {
	m.engine.FixedTick(ctx)
}

// SetState forces the machine into the state id.
func (m *Machine) SetState(ctx context.Context, id string) error {
	return m.engine.SetState(ctx, id)
}

// CurrentState returns the id of the current state.
func (m *Machine) CurrentState() (string, bool) {
	return m.engine.CurrentID()
}

// Node returns any node by id.
func (m *Machine) Node(id string) (domain.Node, bool) {
	return m.engine.Graph().Node(id)
}

// State returns the state id.
func (m *Machine) State(id string) (*domain.State, bool) {
	return runtime.Lookup[*domain.State](m.engine.Graph(), id)
}

// Condition returns the condition id.
func (m *Machine) Condition(id string) (*domain.Condition, bool) {
	return runtime.Lookup[*domain.Condition](m.engine.Graph(), id)
}

// Gate returns the gate id.
func (m *Machine) Gate(id string) (*domain.Gate, bool) {
	return runtime.Lookup[*domain.Gate](m.engine.Graph(), id)
}

// Snapshot captures the status of every node in registration order.
func (m *Machine) Snapshot() domain.Snapshot {
	snap := domain.Snapshot{Name: m.desc.Name}
	current, _ := m.engine.CurrentID()
	snap.Current = current
	for _, n := range m.engine.Graph().Nodes() {
		st := domain.StatusOf(n)
		st.Current = n.ID() == current
		snap.Nodes = append(snap.Nodes, st)
	}
	return snap
}
