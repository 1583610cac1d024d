package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/aretw0/fsmgraph/pkg/domain"
)

// Factory builds a fresh node for the given identifier.
type Factory func(id string) domain.Node

// Registry maps descriptor kind tags to node factories.
type Registry struct {
	mu    sync.RWMutex
	kinds map[string]Factory
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		kinds: make(map[string]Factory),
	}
}

// Default returns a registry holding the built-in kinds: plain states, the three
// gates and the constant/every conditions.
func Default() *Registry {
	r := NewRegistry()
	r.RegisterState(domain.KindState, nil)
	r.RegisterGate(domain.KindAnd, domain.GateAnd)
	r.RegisterGate(domain.KindOr, domain.GateOr)
	r.RegisterGate(domain.KindNot, domain.GateNot)
	r.RegisterCondition(domain.KindConstant, func(string) domain.Predicate { return &Constant{} })
	r.RegisterCondition(domain.KindEvery, func(string) domain.Predicate { return &Every{} })
	return r
}

// Register adds a factory. Kind tags are case-insensitive.
// If a kind with the same name exists, it is overwritten.
func (r *Registry) Register(kind string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds[normalize(kind)] = f
}

// RegisterState registers a state kind. newBehavior may be nil for plain timed states;
// otherwise its result may implement any of the state capability interfaces and
// domain.Configurable.
func (r *Registry) RegisterState(kind string, newBehavior func(id string) any) {
	r.Register(kind, func(id string) domain.Node {
		var behavior any
		if newBehavior != nil {
			behavior = newBehavior(id)
		}
		return domain.NewState(id, behavior)
	})
}

// RegisterCondition registers a condition kind.
func (r *Registry) RegisterCondition(kind string, newPredicate func(id string) domain.Predicate) {
	r.Register(kind, func(id string) domain.Node {
		return domain.NewCondition(id, newPredicate(id))
	})
}

// RegisterGate registers a gate kind.
func (r *Registry) RegisterGate(kind string, op domain.GateKind) {
	r.Register(kind, func(id string) domain.Node {
		return domain.NewGate(id, op)
	})
}

// New instantiates a node of the given kind.
// Returns domain.ErrUnknownKind if nothing is registered under kind.
func (r *Registry) New(kind, id string) (domain.Node, error) {
	r.mu.RLock()
	f, ok := r.kinds[normalize(kind)]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}
	n := f(id)
	if n == nil {
		return nil, fmt.Errorf("factory for %q returned no node", kind)
	}
	return n, nil
}

// Has reports whether kind is registered.
func (r *Registry) Has(kind string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.kinds[normalize(kind)]
	return ok
}

// Kinds lists the registered kind tags in lexical order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.kinds))
	for k := range r.kinds {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func normalize(kind string) string {
	return strings.ToLower(strings.TrimSpace(kind))
}

// NodeKindOf reports which node variant kind instantiates.
func (r *Registry) NodeKindOf(kind string) (domain.NodeKind, bool) {
	n, err := r.New(kind, "")
	if err != nil {
		return 0, false
	}
	return n.Kind(), true
}
