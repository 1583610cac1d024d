/*
Package observability provides domain.LifecycleHooks implementations for fsmgraph machines.

  - LogHooks: structured slog records for transitions and propagation passes.
  - Metrics: Prometheus counters, gauges and histograms.
  - Tracer: OpenTelemetry spans for transitions and propagation passes.
  - Chain: combines several hook sets into one.

Example:

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer, "fsmgraph")
	hooks := observability.Chain(
		observability.LogHooks(logger),
		metrics.Hooks(),
		observability.NewTracer(otel.GetTracerProvider()).Hooks(),
	)
	m, err := fsmgraph.New(desc, fsmgraph.WithLifecycleHooks(hooks))
*/
package observability
