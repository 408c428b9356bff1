// Package metrics provides Prometheus metrics for observability.
//
// This package exposes metrics for the asset lifecycle pipeline:
//   - Media store operation latency broken down by operation and status
//   - Sweep phase durations, scanned document/asset counts and orphan totals
//   - Reconciliation latency and queued/dropped deletion counts
//   - Deletion queue depth, submissions and per-delete outcomes
//
// Metrics are exposed via a dedicated HTTP server on /metrics in Prometheus
// format.
//
// Usage:
//
//	// Create and register metrics
//	storeMetrics := metrics.NewMediaStoreMetrics()
//	sweepMetrics := metrics.NewSweepMetrics()
//
//	// Wire into components
//	store := mediastore.NewInstrumentedStore(s3store, storeMetrics)
//	sweeper := sweep.New(db, store, reg, sweep.DefaultConfig(), logger, sweepMetrics)
//
//	// Start metrics server
//	metricsServer := metrics.NewServer(":9090")
//	metricsServer.Start()
package metrics
