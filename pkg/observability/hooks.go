package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/fsmgraph/pkg/domain"
)

// Chain returns hooks that call every non-nil hook of sets in order.
func Chain(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks

	var enter, exit []func(context.Context, *domain.StateEvent)
	var transition []func(context.Context, *domain.TransitionEvent)
	var propagate []func(context.Context, *domain.PropagationEvent)
	for _, s := range sets {
		if s.OnStateEnter != nil {
			enter = append(enter, s.OnStateEnter)
		}
		if s.OnStateExit != nil {
			exit = append(exit, s.OnStateExit)
		}
		if s.OnTransition != nil {
			transition = append(transition, s.OnTransition)
		}
		if s.OnPropagate != nil {
			propagate = append(propagate, s.OnPropagate)
		}
	}

	if len(enter) > 0 {
		out.OnStateEnter = fanOut(enter)
	}
	if len(exit) > 0 {
		out.OnStateExit = fanOut(exit)
	}
	if len(transition) > 0 {
		out.OnTransition = fanOut(transition)
	}
	if len(propagate) > 0 {
		out.OnPropagate = fanOut(propagate)
	}
	return out
}

func fanOut[E any](fns []func(context.Context, *E)) func(context.Context, *E) {
	return func(ctx context.Context, ev *E) {
		for _, fn := range fns {
			fn(ctx, ev)
		}
	}
}

// LogHooks logs transitions at info level and propagation passes at debug level.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			logger.InfoContext(ctx, "transition",
				"from", e.From,
				"to", e.To,
				"trigger", e.Trigger.String(),
			)
		},
		OnPropagate: func(ctx context.Context, e *domain.PropagationEvent) {
			logger.DebugContext(ctx, "propagate",
				"origin", e.Origin,
				"filter", e.Filter.String(),
				"visited", e.Visited,
				"target", e.Target,
			)
		},
	}
}
