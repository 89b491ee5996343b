// Package middleware provides production observability for toast
// deployments: Prometheus instrumentation over the engine's event
// stream and OpenTelemetry tracing over the bridge's inbound frames.
//
// # Prometheus Metrics
//
// Metrics subscribes instruments to a manager and keeps them current
// as toasts are shown and dismissed:
//   - melba_toasts_shown_total: Counter of shown toasts by type
//   - melba_toasts_dismissed_total: Counter of dismissals by reason
//   - melba_active_toasts: Gauge of toasts currently tracked
//   - melba_toast_lifetime_seconds: Histogram of show-to-dismiss time
//
//	stop := middleware.Metrics(manager,
//	    middleware.WithNamespace("myapp"),
//	)
//	defer stop()
//
//	// Expose the metrics endpoint
//	http.Handle("/metrics", promhttp.Handler())
//
// # OpenTelemetry Tracing
//
// The OpenTelemetry middleware traces every inbound client frame the
// bridge dispatches. Spans carry the frame type and the target toast
// id; errors from dispatch are recorded on the span.
//
//	handler := web.Handler(manager,
//	    web.WithMiddleware(
//	        middleware.OpenTelemetry(
//	            middleware.WithTracerName("my-app"),
//	        ),
//	    ),
//	)
//
// The span's context flows through the dispatch chain, so anything a
// toast action callback reaches via the ambient context inherits the
// trace. The tracer comes from the global OpenTelemetry provider;
// configure that in main() before serving.
package middleware
