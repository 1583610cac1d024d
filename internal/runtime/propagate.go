package runtime

import (
	"context"

	"github.com/aretw0/fsmgraph/pkg/domain"
)

// pulse is a queued node together with the signal it emits.
type pulse struct {
	id     string
	signal bool
}

// propagate is a breadth-first sweep seeded with (origin, true).
//
// Conditions and gates are visited at most once per pass, which bounds the pass by
// the node count even when they form cycles. The first state reached by a true
// signal becomes current and ends the pass; insertion order of edges breaks ties.
func (e *Engine) propagate(ctx context.Context, origin *domain.State, filter domain.TransitionKind) bool {
	if !e.carryOver {
		e.graph.ResetGates()
	}
	clear(e.visited)
	e.queue = append(e.queue[:0], pulse{id: origin.ID(), signal: true})
	e.visited[origin.ID()] = struct{}{}

	target := ""
	defer func() {
		if e.hooks.OnPropagate != nil {
			e.hooks.OnPropagate(ctx, &domain.PropagationEvent{
				Timestamp: e.now(),
				Origin:    origin.ID(),
				Filter:    filter,
				Visited:   len(e.visited),
				Target:    target,
			})
		}
	}()

	for head := 0; head < len(e.queue); head++ {
		p := e.queue[head]

		for _, edge := range e.graph.edges[p.id] {
			// Completed/Continued only gates the edges of the root state.
			if p.id == origin.ID() && edge.Kind == domain.TransitionCompleted && filter != domain.TransitionCompleted {
				continue
			}

			node, ok := e.graph.Node(edge.To)
			if !ok {
				e.logger.Debug("edge references unknown node", "from", p.id, "to", edge.To)
				continue
			}

			switch node.Kind() {
			case domain.NodeState:
				if !p.signal {
					continue
				}
				next, ok := node.(*domain.State)
				if !ok {
					continue
				}
				target = next.ID()
				e.switchTo(ctx, next, filter)
				return true

			case domain.NodeCondition:
				cond, ok := node.(*domain.Condition)
				if !ok || e.seen(cond.ID()) {
					continue
				}
				out := cond.Propagate()
				e.visited[cond.ID()] = struct{}{}
				e.queue = append(e.queue, pulse{id: cond.ID(), signal: out})

			case domain.NodeGate:
				gate, ok := node.(*domain.Gate)
				if !ok || e.seen(gate.ID()) {
					continue
				}
				if out, fired := gate.Offer(p.signal); fired {
					e.visited[gate.ID()] = struct{}{}
					e.queue = append(e.queue, pulse{id: gate.ID(), signal: out})
				}
			}
		}
	}
	return false
}

func (e *Engine) seen(id string) bool {
	_, ok := e.visited[id]
	return ok
}
