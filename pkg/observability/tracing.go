package observability

import (
	"context"

	"github.com/aretw0/fsmgraph/pkg/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/aretw0/fsmgraph"

// Tracer turns lifecycle events into OpenTelemetry spans.
//
// Events are instantaneous, so each span is started with the event timestamp
// and ended immediately.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer creates a Tracer from provider.
func NewTracer(provider trace.TracerProvider) *Tracer {
	return &Tracer{tracer: provider.Tracer(instrumentationName)}
}

// Hooks returns lifecycle hooks emitting spans.
func (t *Tracer) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			_, span := t.tracer.Start(ctx, "fsmgraph.transition",
				trace.WithTimestamp(e.Timestamp),
				trace.WithAttributes(
					attribute.String("fsm.from", e.From),
					attribute.String("fsm.to", e.To),
					attribute.String("fsm.trigger", e.Trigger.String()),
				),
			)
			span.End(trace.WithTimestamp(e.Timestamp))
		},
		OnPropagate: func(ctx context.Context, e *domain.PropagationEvent) {
			_, span := t.tracer.Start(ctx, "fsmgraph.propagate",
				trace.WithTimestamp(e.Timestamp),
				trace.WithAttributes(
					attribute.String("fsm.origin", e.Origin),
					attribute.String("fsm.filter", e.Filter.String()),
					attribute.Int("fsm.visited", e.Visited),
					attribute.String("fsm.target", e.Target),
				),
			)
			span.End(trace.WithTimestamp(e.Timestamp))
		},
	}
}
