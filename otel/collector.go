// Package otel provides OpenTelemetry integration for hashcons table metrics.
//
// This package implements the hashcons.MetricsCollector interface using
// OpenTelemetry, enabling percentile-aware observability of a table's
// hashcons latency plus counters for hit/miss, release/destroy and sweep
// activity.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package otel

import (
	"context"
	"errors"

	"github.com/agilira/hashcons"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetricsCollector implements hashcons.MetricsCollector using
// OpenTelemetry.
//
// Thread-safety: safe for concurrent use by multiple goroutines - the
// underlying OTEL instruments are thread-safe and lock-free.
type OTelMetricsCollector struct {
	hashconsLatency metric.Int64Histogram
	hits            metric.Int64Counter
	misses          metric.Int64Counter
	released        metric.Int64Counter
	destroyed       metric.Int64Counter
	sweepRemoved    metric.Int64Counter
	sweepPasses     metric.Int64Histogram
	size            metric.Int64Gauge
}

// Options for configuring OTelMetricsCollector.
type Options struct {
	// MeterName is the name of the OpenTelemetry meter.
	// Default: "github.com/agilira/hashcons"
	MeterName string
}

// Option is a functional option for configuring OTelMetricsCollector.
type Option func(*Options)

// WithMeterName sets a custom meter name. Useful for distinguishing
// metrics from multiple table instances.
func WithMeterName(name string) Option {
	return func(o *Options) {
		o.MeterName = name
	}
}

// NewOTelMetricsCollector creates a new OpenTelemetry metrics collector
// backed by provider, which must not be nil.
func NewOTelMetricsCollector(provider metric.MeterProvider, opts ...Option) (*OTelMetricsCollector, error) {
	if provider == nil {
		return nil, errors.New("meter provider cannot be nil")
	}

	options := Options{MeterName: "github.com/agilira/hashcons"}
	for _, opt := range opts {
		opt(&options)
	}

	meter := provider.Meter(options.MeterName)
	collector := &OTelMetricsCollector{}

	var err error
	collector.hashconsLatency, err = meter.Int64Histogram(
		"hashcons_hashcons_latency_ns",
		metric.WithDescription("Latency of Hashcons calls in nanoseconds"),
		metric.WithUnit("ns"),
	)
	if err != nil {
		return nil, err
	}

	collector.hits, err = meter.Int64Counter(
		"hashcons_hits_total",
		metric.WithDescription("Total Hashcons calls that found an existing live slot"),
	)
	if err != nil {
		return nil, err
	}

	collector.misses, err = meter.Int64Counter(
		"hashcons_misses_total",
		metric.WithDescription("Total Hashcons calls that created a new slot"),
	)
	if err != nil {
		return nil, err
	}

	collector.released, err = meter.Int64Counter(
		"hashcons_releases_total",
		metric.WithDescription("Total Handle.Release calls"),
	)
	if err != nil {
		return nil, err
	}

	collector.destroyed, err = meter.Int64Counter(
		"hashcons_destroys_total",
		metric.WithDescription("Total releases that destroyed their slot"),
	)
	if err != nil {
		return nil, err
	}

	collector.sweepRemoved, err = meter.Int64Counter(
		"hashcons_sweep_removed_total",
		metric.WithDescription("Total entries removed across all Cleanup calls"),
	)
	if err != nil {
		return nil, err
	}

	collector.sweepPasses, err = meter.Int64Histogram(
		"hashcons_sweep_passes",
		metric.WithDescription("Passes a Cleanup call took to reach a fixed point"),
	)
	if err != nil {
		return nil, err
	}

	collector.size, err = meter.Int64Gauge(
		"hashcons_table_size",
		metric.WithDescription("Number of distinct values currently tracked by the table"),
	)
	if err != nil {
		return nil, err
	}

	return collector, nil
}

// RecordHashcons implements hashcons.MetricsCollector.
func (c *OTelMetricsCollector) RecordHashcons(latencyNs int64, hit bool) {
	ctx := context.Background()
	c.hashconsLatency.Record(ctx, latencyNs)
	if hit {
		c.hits.Add(ctx, 1)
	} else {
		c.misses.Add(ctx, 1)
	}
}

// RecordRelease implements hashcons.MetricsCollector.
func (c *OTelMetricsCollector) RecordRelease(destroyed bool) {
	ctx := context.Background()
	c.released.Add(ctx, 1)
	if destroyed {
		c.destroyed.Add(ctx, 1)
	}
}

// RecordSweep implements hashcons.MetricsCollector.
func (c *OTelMetricsCollector) RecordSweep(removed int, passes int) {
	ctx := context.Background()
	c.sweepRemoved.Add(ctx, int64(removed))
	c.sweepPasses.Record(ctx, int64(passes))
}

// RecordSize implements hashcons.MetricsCollector.
func (c *OTelMetricsCollector) RecordSize(size int) {
	c.size.Record(context.Background(), int64(size))
}

// Compile-time interface check.
var _ hashcons.MetricsCollector = (*OTelMetricsCollector)(nil)
