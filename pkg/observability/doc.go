// Package observability provides logging, Prometheus metrics, and OpenTelemetry tracing.
//
// # Logging
//
// Create logger:
//
//	logger := observability.NewLogger("debug", os.Stderr)
//	logger.WithField("run_id", runID).Info("Rendering man pages")
//
// Loggers travel in the context:
//
//	ctx = observability.WithLogger(ctx, entry)
//	observability.FromContext(ctx).Debug("page unchanged")
//
// # Prometheus Metrics
//
// Initialize metrics:
//
//	registry := prometheus.NewRegistry()
//	metrics := observability.NewMetrics(registry)
//	metrics.RecordPage(changed, cached)
//
// One-shot runs dump the registry for the node_exporter textfile collector:
//
//	err := metrics.WriteTextfile("/var/lib/node_exporter/apiman.prom")
//
// # OpenTelemetry
//
// Initialize tracing:
//
//	tp, err := observability.InitTracing(ctx, observability.OTelConfig{
//		Enabled:     true,
//		ServiceName: "apiman",
//		Endpoint:    "otel-collector:4317",
//	}, logger)
//	defer observability.ShutdownTracing(ctx, tp, logger)
//
// # Related Packages
//
//   - pkg/config: Observability configuration
//   - pkg/cli: wires all of the above per subcommand
package observability
