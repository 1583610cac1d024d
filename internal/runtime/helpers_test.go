package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/fsmgraph/internal/runtime"
	"github.com/aretw0/fsmgraph/pkg/domain"
	"github.com/stretchr/testify/require"
)

// graphFixture builds small graphs by hand for engine tests.
type graphFixture struct {
	t     *testing.T
	graph *runtime.Graph
	flags map[string]bool
	evals map[string]int
}

func newFixture(t *testing.T) *graphFixture {
	t.Helper()
	return &graphFixture{
		t:     t,
		graph: runtime.NewGraph(),
		flags: make(map[string]bool),
		evals: make(map[string]int),
	}
}

func (f *graphFixture) state(id string, duration float64) *domain.State {
	f.t.Helper()
	s := domain.NewState(id, nil)
	require.NoError(f.t, s.SetDuration(duration))
	require.True(f.t, f.graph.AddNode(s))
	return s
}

// condition registers a condition whose value is read from f.flags[id].
func (f *graphFixture) condition(id string, value bool) *domain.Condition {
	f.t.Helper()
	f.flags[id] = value
	c := domain.NewCondition(id, domain.PredicateFunc(func() bool {
		f.evals[id]++
		return f.flags[id]
	}))
	require.True(f.t, f.graph.AddNode(c))
	return c
}

func (f *graphFixture) gate(id string, kind domain.GateKind) *domain.Gate {
	f.t.Helper()
	g := domain.NewGate(id, kind)
	require.True(f.t, f.graph.AddNode(g))
	return g
}

func (f *graphFixture) completed(from, to string) {
	f.t.Helper()
	require.NoError(f.t, f.graph.AddEdge(from, to, domain.TransitionCompleted))
}

func (f *graphFixture) continued(from, to string) {
	f.t.Helper()
	require.NoError(f.t, f.graph.AddEdge(from, to, domain.TransitionContinued))
}

// start creates an engine that records transitions and enters the state id.
func (f *graphFixture) start(id string, opts ...runtime.EngineOption) (*runtime.Engine, *[]string) {
	f.t.Helper()
	var log []string
	hooks := domain.LifecycleHooks{
		OnTransition: func(_ context.Context, ev *domain.TransitionEvent) {
			log = append(log, ev.From+"->"+ev.To+"("+ev.Trigger.String()+")")
		},
	}
	eng := runtime.NewEngine(f.graph, append([]runtime.EngineOption{runtime.WithLifecycleHooks(hooks)}, opts...)...)
	require.NoError(f.t, eng.SetState(context.Background(), id))
	return eng, &log
}

func currentID(t *testing.T, eng *runtime.Engine) string {
	t.Helper()
	id, ok := eng.CurrentID()
	require.True(t, ok, "engine has no current state")
	return id
}
