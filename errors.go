// errors.go: structured error types for hashcons operations
//
// hashcons is total in the happy path - Hashcons, Size, Cleanup, Clone,
// Value and Release never fail under normal use. This file exists for the
// handful of misuse conditions that can be rejected, and for the
// always-on double-release detector that turns an otherwise silent
// refcount corruption into a reportable, logged error.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package hashcons

import (
	goerrors "errors"
	"fmt"

	"github.com/agilira/go-errors"
)

// Error codes for hashcons operations.
const (
	// ErrCodeDoubleRelease marks a Handle.Release call observed after
	// the handle's slot had already reached a zero reference count.
	// Go cannot make a second Release a compile error the way Rust's
	// move semantics make a double drop impossible, so it is detected
	// at runtime instead of silently corrupting the count.
	ErrCodeDoubleRelease errors.ErrorCode = "HASHCONS_DOUBLE_RELEASE"

	// ErrCodeSweeperPanic marks a panic recovered from a background
	// PeriodicSweeper tick. The sweeper itself is never load-bearing
	// for table correctness - a tick that panics just means one less
	// scheduled Cleanup call - so the error is logged, not propagated.
	ErrCodeSweeperPanic errors.ErrorCode = "HASHCONS_SWEEPER_PANIC"

	// ErrCodeNilLogger and ErrCodeNilMetricsCollector are never actually
	// returned - Config.normalize silently replaces a nil Logger or
	// MetricsCollector with its no-op default, mirroring the teacher's
	// Config.Validate. They are kept as documented, recognizable codes
	// for callers that want errors.HasCode(err, hashcons.ErrCodeNilLogger)
	// to compile against a stable identifier even though it will never
	// fire.
	ErrCodeNilLogger           errors.ErrorCode = "HASHCONS_NIL_LOGGER"
	ErrCodeNilMetricsCollector errors.ErrorCode = "HASHCONS_NIL_METRICS_COLLECTOR"
)

const (
	msgDoubleRelease = "handle released more times than it was cloned"
	msgSweeperPanic  = "panic recovered in periodic sweeper tick"
)

// NewErrDoubleRelease creates an error describing a refcount underflow.
func NewErrDoubleRelease(operation string) error {
	return errors.NewWithField(ErrCodeDoubleRelease, msgDoubleRelease, "operation", operation).
		WithSeverity("critical")
}

// NewErrSweeperPanic wraps a panic value recovered from a sweeper tick.
func NewErrSweeperPanic(panicValue interface{}) error {
	return errors.NewWithContext(ErrCodeSweeperPanic, msgSweeperPanic, map[string]interface{}{
		"panic_value": fmt.Sprintf("%v", panicValue),
	}).WithSeverity("warning")
}

// IsDoubleRelease reports whether err is a double-release error.
func IsDoubleRelease(err error) bool {
	return errors.HasCode(err, ErrCodeDoubleRelease)
}

// GetErrorCode extracts the error code from an error, or "" if err does
// not carry one.
func GetErrorCode(err error) errors.ErrorCode {
	if err == nil {
		return ""
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		return coder.ErrorCode()
	}
	return ""
}
