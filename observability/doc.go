// Package observability provides OpenTelemetry tracing and metrics for
// flowreport.
//
// Tracing and metrics are both optional. When they are not initialized the
// global OpenTelemetry providers are no-ops, so instrumented code runs
// unchanged:
//
//	tp, err := observability.InitTracer(ctx, &cfg)
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanAnalyze)
//	defer span.End()
//
// Metrics:
//
//	metrics, err := observability.NewMetrics(observability.Meter("flowreport"))
//	metrics.RecordAnalysis(ctx, "ok", processes, rows, duration)
//
// Applications usually register Component instead, which installs both
// providers from Config on Start and flushes them on Stop.
package observability
