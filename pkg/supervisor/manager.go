package supervisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/aretw0/fsmgraph"
	"github.com/aretw0/fsmgraph/internal/logging"
	"github.com/aretw0/fsmgraph/pkg/domain"
	"github.com/aretw0/fsmgraph/pkg/ports"
)

var (
	// ErrMachineNotFound is returned for names that were never registered or were removed.
	ErrMachineNotFound = errors.New("machine not found")
	// ErrMachineExists is returned when registering a name twice.
	ErrMachineExists = errors.New("machine already registered")
)

// instance pairs a machine with the lock that serializes access to it.
type instance struct {
	mu      sync.Mutex
	machine *fsmgraph.Machine
}

// Manager owns a set of named machines.
type Manager struct {
	mu        sync.RWMutex
	instances map[string]*instance

	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager creates an empty Manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		instances: make(map[string]*instance),
		logger:    logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register adds machine under name.
func (m *Manager) Register(name string, machine *fsmgraph.Machine) error {
	if name == "" {
		return fmt.Errorf("machine name cannot be empty")
	}
	if machine == nil {
		return fmt.Errorf("machine %q is nil", name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.instances[name]; exists {
		return fmt.Errorf("%w: %s", ErrMachineExists, name)
	}
	m.instances[name] = &instance{machine: machine}
	m.logger.Debug("machine registered", "machine", name)
	return nil
}

// Start loads a description, builds a machine and registers it under name.
func (m *Manager) Start(ctx context.Context, name string, loader ports.GraphLoader, opts ...fsmgraph.Option) (*fsmgraph.Machine, error) {
	machine, err := fsmgraph.Load(ctx, loader, opts...)
	if err != nil {
		return nil, fmt.Errorf("start %q: %w", name, err)
	}
	for _, d := range machine.Diagnostics() {
		m.logger.Warn("graph diagnostic", "machine", name, "diagnostic", d.String())
	}
	if err := m.Register(name, machine); err != nil {
		return nil, err
	}
	return machine, nil
}

// Remove forgets name. Calls already holding the machine's lock complete normally.
func (m *Manager) Remove(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.instances[name]; !exists {
		return false
	}
	delete(m.instances, name)
	return true
}

// Names returns the registered names in lexical order.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.instances))
	for name := range m.instances {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *Manager) lookup(name string) (*instance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	inst, ok := m.instances[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMachineNotFound, name)
	}
	return inst, nil
}

// WithMachine executes fn while holding the lock of the named machine.
// fn must not call back into the Manager for the same name.
func (m *Manager) WithMachine(ctx context.Context, name string, fn func(context.Context, *fsmgraph.Machine) error) error {
	inst, err := m.lookup(name)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	inst.mu.Lock()
	defer inst.mu.Unlock()
	return fn(ctx, inst.machine)
}

// Tick advances the named machine by dt seconds.
func (m *Manager) Tick(ctx context.Context, name string, dt float64) error {
	return m.WithMachine(ctx, name, func(ctx context.Context, fm *fsmgraph.Machine) error {
		fm.Tick(ctx, dt)
		return nil
	})
}

// FixedTick runs the fixed-step hook of the named machine.
func (m *Manager) FixedTick(ctx context.Context, name string) error {
	return m.WithMachine(ctx, name, func(ctx context.Context, fm *fsmgraph.Machine) error {
		fm.FixedTick(ctx)
		return nil
	})
}

// TickAll ticks every machine in name order and stops at the first error
// (only a cancelled context or a concurrent removal can produce one).
func (m *Manager) TickAll(ctx context.Context, dt float64) error {
	for _, name := range m.Names() {
		if err := m.Tick(ctx, name, dt); err != nil {
			if errors.Is(err, ErrMachineNotFound) {
				continue
			}
			return err
		}
	}
	return nil
}

// FixedTickAll runs the fixed-step hook of every machine in name order.
func (m *Manager) FixedTickAll(ctx context.Context) error {
	for _, name := range m.Names() {
		if err := m.FixedTick(ctx, name); err != nil {
			if errors.Is(err, ErrMachineNotFound) {
				continue
			}
			return err
		}
	}
	return nil
}

// SetState forces the named machine into state id.
func (m *Manager) SetState(ctx context.Context, name, id string) error {
	return m.WithMachine(ctx, name, func(ctx context.Context, fm *fsmgraph.Machine) error {
		return fm.SetState(ctx, id)
	})
}

// Snapshot captures the named machine between ticks.
func (m *Manager) Snapshot(ctx context.Context, name string) (domain.Snapshot, error) {
	var snap domain.Snapshot
	err := m.WithMachine(ctx, name, func(_ context.Context, fm *fsmgraph.Machine) error {
		snap = fm.Snapshot()
		return nil
	})
	return snap, err
}

// Describe returns the description the named machine was built from.
func (m *Manager) Describe(ctx context.Context, name string) (*domain.GraphDescription, error) {
	var desc *domain.GraphDescription
	err := m.WithMachine(ctx, name, func(_ context.Context, fm *fsmgraph.Machine) error {
		desc = fm.Description()
		return nil
	})
	return desc, err
}

// Handle returns a view of the named machine whose calls go through the Manager's lock.
func (m *Manager) Handle(name string) *Handle {
	return &Handle{manager: m, name: name}
}

// Handle drives a single supervised machine. It satisfies runner.Ticker.
type Handle struct {
	manager *Manager
	name    string
}

func (h *Handle) Name() string { return h.name }

func (h *Handle) Tick(ctx context.Context, dt float64) {
	if err := h.manager.Tick(ctx, h.name, dt); err != nil {
		h.manager.logger.Debug("tick skipped", "machine", h.name, "err", err)
	}
}

func (h *Handle) FixedTick(ctx context.Context) {
	if err := h.manager.FixedTick(ctx, h.name); err != nil {
		h.manager.logger.Debug("fixed tick skipped", "machine", h.name, "err", err)
	}
}
