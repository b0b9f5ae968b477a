// config.go: configuration for hashcons tables
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package hashcons

import (
	"github.com/agilira/go-timecache"
)

// Config holds construction-time parameters shared by Table and
// ConcurrentTable. The zero Config is valid and selects all defaults.
type Config struct {
	// AutoCleanup selects the cleanup policy. DefaultConfig sets it to
	// true; the zero Config leaves it false. When true,
	// releasing a value's last handle removes its table entry
	// immediately. When false, releasing handles never touches the
	// table; call Cleanup() to sweep dead entries to a fixed point.
	AutoCleanup bool

	// SizeHint pre-sizes the internal map, the same way map[K]V{} can be
	// constructed with make(map[K]V, n). Zero means no hint.
	SizeHint int

	// Logger receives diagnostics for degenerate conditions: a double
	// release (logged as an error) and a panic recovered from a GC
	// backstop release (logged as a warning). A PeriodicSweeper takes its
	// own Logger in SweeperOptions. If nil, NoOpLogger is used.
	Logger Logger

	// TimeProvider times Hashcons calls for the latency metric. Never used for
	// expiration - hash-consed values never expire. If nil, a
	// go-timecache-backed provider is used.
	TimeProvider TimeProvider

	// MetricsCollector records intern hit/miss counts, slot population,
	// and sweep activity. If nil, NoOpMetricsCollector is used (zero
	// overhead).
	MetricsCollector MetricsCollector
}

// normalize returns a copy of c with every nil collaborator replaced by
// its no-op default. Unlike the teacher cache's Validate, there are no
// numeric bounds to clamp - AutoCleanup and SizeHint have no invalid
// values - so this never reports an error.
func (c Config) normalize() Config {
	if c.Logger == nil {
		c.Logger = NoOpLogger{}
	}
	if c.TimeProvider == nil {
		c.TimeProvider = &systemTimeProvider{}
	}
	if c.MetricsCollector == nil {
		c.MetricsCollector = NoOpMetricsCollector{}
	}
	return c
}

// DefaultConfig returns a Config with auto-cleanup enabled and every
// collaborator set to its default implementation.
func DefaultConfig() Config {
	return Config{
		AutoCleanup:      true,
		Logger:           NoOpLogger{},
		TimeProvider:     &systemTimeProvider{},
		MetricsCollector: NoOpMetricsCollector{},
	}
}

// systemTimeProvider is the default time provider, backed by
// go-timecache's cached clock rather than time.Now() on every call.
type systemTimeProvider struct{}

func (t *systemTimeProvider) Now() int64 {
	return timecache.CachedTimeNano()
}
