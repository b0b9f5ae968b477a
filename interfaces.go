// interfaces.go: public collaborator interfaces for hashcons
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package hashcons

// Logger defines a minimal logging interface with zero overhead.
// Implementations should use structured logging and be allocation-free.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs.
	Debug(msg string, keyvals ...interface{})

	// Info logs an info message with optional key-value pairs.
	Info(msg string, keyvals ...interface{})

	// Warn logs a warning message with optional key-value pairs.
	// hashcons uses this for degenerate, recoverable conditions: a panic
	// recovered from a GC backstop release or from a background sweeper
	// tick, or an unparseable sweep interval in a reloaded config file.
	Warn(msg string, keyvals ...interface{})

	// Error logs an error message with optional key-value pairs.
	Error(msg string, keyvals ...interface{})
}

// NoOpLogger is a logger that does nothing. Used as default to avoid nil checks.
type NoOpLogger struct{}

func (NoOpLogger) Debug(msg string, keyvals ...interface{}) {}
func (NoOpLogger) Info(msg string, keyvals ...interface{})  {}
func (NoOpLogger) Warn(msg string, keyvals ...interface{})  {}
func (NoOpLogger) Error(msg string, keyvals ...interface{}) {}

// TimeProvider provides current time with caching for performance. Used
// only to time Hashcons calls for metrics - hash-consed values never expire.
type TimeProvider interface {
	// Now returns the current time in nanoseconds since epoch.
	Now() int64
}

// MetricsCollector receives counts and latencies for table operations.
// Implementations must be safe for concurrent use by ConcurrentTable.
type MetricsCollector interface {
	// RecordHashcons is called once per Hashcons call with its latency
	// and whether it hit an existing live slot (hit) or created a new
	// one (miss, including the "occupied but dead" replacement case).
	RecordHashcons(latencyNs int64, hit bool)

	// RecordRelease is called once per Handle.Release call, with
	// destroyed true iff the release caused the slot to be destroyed.
	RecordRelease(destroyed bool)

	// RecordSweep is called once per Cleanup call with the number of
	// entries removed and the number of passes the fixed-point loop
	// took to reach it.
	RecordSweep(removed int, passes int)

	// RecordSize is called whenever the table's size is observed, so a
	// collector can maintain a gauge without polling.
	RecordSize(size int)
}

// NoOpMetricsCollector discards everything. Used as the default so a
// Config with no collector attached pays zero overhead.
type NoOpMetricsCollector struct{}

func (NoOpMetricsCollector) RecordHashcons(latencyNs int64, hit bool) {}
func (NoOpMetricsCollector) RecordRelease(destroyed bool)             {}
func (NoOpMetricsCollector) RecordSweep(removed int, passes int)      {}
func (NoOpMetricsCollector) RecordSize(size int)                      {}
