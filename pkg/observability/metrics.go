package observability

import (
	"context"

	"github.com/aretw0/fsmgraph/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records machine activity as Prometheus collectors.
type Metrics struct {
	Transitions *prometheus.CounterVec
	Passes      *prometheus.CounterVec
	Visited     prometheus.Histogram
	Active      *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg (skipped when reg is nil).
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	m := &Metrics{
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transitions_total",
				Help:      "Total number of state changes",
			},
			[]string{"from", "to", "trigger"},
		),
		Passes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "propagation_passes_total",
				Help:      "Total number of propagation passes",
			},
			[]string{"filter", "outcome"},
		),
		Visited: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "propagation_visited_nodes",
				Help:      "Number of nodes visited per propagation pass, origin included",
				Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 64},
			},
		),
		Active: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_state",
				Help:      "1 for the current state, 0 for states that were current before",
			},
			[]string{"state"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Transitions, m.Passes, m.Visited, m.Active)
	}
	return m
}

// Hooks returns lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStateEnter: func(_ context.Context, e *domain.StateEvent) {
			m.Active.WithLabelValues(e.StateID).Set(1)
		},
		OnStateExit: func(_ context.Context, e *domain.StateEvent) {
			m.Active.WithLabelValues(e.StateID).Set(0)
		},
		OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
			m.Transitions.WithLabelValues(e.From, e.To, e.Trigger.String()).Inc()
		},
		OnPropagate: func(_ context.Context, e *domain.PropagationEvent) {
			outcome := "idle"
			if e.Target != "" {
				outcome = "transitioned"
			}
			m.Passes.WithLabelValues(e.Filter.String(), outcome).Inc()
			m.Visited.Observe(float64(e.Visited))
		},
	}
}
