// Package otel provides OpenTelemetry integration for hashcons table metrics.
//
// # Overview
//
// This package implements the hashcons.MetricsCollector interface using
// OpenTelemetry, so a table's hashcons latency, hit ratio, release/destroy
// counts and sweep activity can be exported to any OTEL-compatible backend
// (Prometheus, Jaeger, DataDog, Grafana).
//
// It is a separate module so the hashcons core stays free of OTEL
// dependencies for callers who don't want them.
//
// # Quick Start
//
//	exporter, err := prometheus.New()
//	provider := metric.NewMeterProvider(metric.WithReader(exporter))
//	defer provider.Shutdown(context.Background())
//
//	collector, err := hashconsotel.NewOTelMetricsCollector(provider)
//
//	table := hashcons.New[string](hashcons.Config{
//	    MetricsCollector: collector,
//	})
//
// # Metrics Exposed
//
//   - hashcons_hashcons_latency_ns: histogram of Hashcons call latency
//   - hashcons_hits_total / hashcons_misses_total: intern hit/miss counters
//   - hashcons_releases_total / hashcons_destroys_total: release and destroy counters
//   - hashcons_sweep_removed_total / hashcons_sweep_passes: Cleanup activity
//   - hashcons_table_size: gauge of the table's current distinct-value count
//
// # Thread Safety
//
// All methods are safe for concurrent use; the underlying OTEL
// instruments are lock-free.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package otel
