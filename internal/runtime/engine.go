package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/fsmgraph/pkg/domain"
)

// Engine drives one State at a time and runs signal propagation once per tick.
// It is single-threaded: callers must serialize Tick, FixedTick and SetState.
type Engine struct {
	graph     *Graph
	current   string
	active    bool
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	carryOver bool
	now       func() time.Time

	// scratch space reused across passes
	visited map[string]struct{}
	queue   []pulse
}

// NewEngine creates an engine over g with no current state.
func NewEngine(g *Graph, opts ...EngineOption) *Engine {
	e := &Engine{
		graph:   g,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
		visited: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Graph returns the graph the engine runs on.
func (e *Engine) Graph() *Graph { return e.graph }

// CurrentID returns the identifier of the current state.
func (e *Engine) CurrentID() (string, bool) {
	return e.current, e.active
}

// Current resolves the current state through the graph.
func (e *Engine) Current() (*domain.State, bool) {
	if !e.active {
		return nil, false
	}
	return Lookup[*domain.State](e.graph, e.current)
}

// SetState exits the current state (if any) and enters the state id.
// Setting the already-current state exits and re-enters it.
func (e *Engine) SetState(ctx context.Context, id string) error {
	next, ok := Lookup[*domain.State](e.graph, id)
	if !ok {
		if _, exists := e.graph.Node(id); exists {
			return fmt.Errorf("%w: %s", domain.ErrNotAState, id)
		}
		return fmt.Errorf("%w: %s", domain.ErrUnknownNode, id)
	}
	e.switchTo(ctx, next, domain.TransitionManual)
	return nil
}

// Tick advances the current state by dt seconds and propagates from it.
// Without a current state Tick does nothing.
func (e *Engine) Tick(ctx context.Context, dt float64) {
	origin, ok := e.Current()
	if !ok {
		return
	}

	origin.Tick(dt)

	if origin.IsDone() {
		if e.propagate(ctx, origin, domain.TransitionCompleted) {
			// the Continued pass would start from a state that is no longer current
			return
		}
	}
	e.propagate(ctx, origin, domain.TransitionContinued)
}

// FixedTick runs the fixed-step hook of the current state.
func (e *Engine) FixedTick(ctx context.Context) {
	if st, ok := e.Current(); ok {
		st.FixedTick()
	}
}

// Propagate runs a single pass from the state origin under filter and reports
// whether it changed the current state.
func (e *Engine) Propagate(ctx context.Context, origin string, filter domain.TransitionKind) bool {
	st, ok := Lookup[*domain.State](e.graph, origin)
	if !ok {
		e.logger.Debug("propagation origin is not a state", "node", origin)
		return false
	}
	return e.propagate(ctx, st, filter)
}

func (e *Engine) switchTo(ctx context.Context, next *domain.State, trigger domain.TransitionKind) {
	from := ""
	if prev, ok := e.Current(); ok {
		from = prev.ID()
		prev.Exit()
		if e.hooks.OnStateExit != nil {
			e.hooks.OnStateExit(ctx, &domain.StateEvent{Timestamp: e.now(), StateID: from})
		}
	}

	e.current = next.ID()
	e.active = true
	next.Enter()

	e.logger.Debug("state changed", "from", from, "to", next.ID(), "trigger", trigger)

	if e.hooks.OnStateEnter != nil {
		e.hooks.OnStateEnter(ctx, &domain.StateEvent{Timestamp: e.now(), StateID: next.ID()})
	}
	if e.hooks.OnTransition != nil {
		e.hooks.OnTransition(ctx, &domain.TransitionEvent{
			Timestamp: e.now(),
			From:      from,
			To:        next.ID(),
			Trigger:   trigger,
		})
	}
}
