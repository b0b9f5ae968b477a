// syncslot.go: concurrent slot storage
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package hashcons

import "sync/atomic"

// syncSlot is the unique, owned storage for one interned value in a
// ConcurrentTable. Every field that can be touched from more than one
// goroutine either is atomic or is set once at construction and never
// mutated again.
type syncSlot[V comparable] struct {
	elem V

	// refCount is atomic: Retain and Release race against each other
	// and against a concurrent Cleanup sweep with no outer lock of their
	// own, only the store's RWMutex guarding entry removal itself.
	refCount atomic.Int64

	// back is the owning store. A plain pointer is sufficient: Go's
	// garbage collector traces cycles correctly, unlike the reference
	// counting a Rust Rc<RefCell<_>> back-edge would need to break with
	// Weak, so there is nothing to gain here by making this a weak
	// reference - it would only add an upgrade check with no
	// corresponding safety benefit.
	back *syncStore[V]

	// autoCleanup, logger and metrics are copied from the owning
	// ConcurrentTable's Config at construction. All three are set once
	// and read-only thereafter, so no synchronization is needed to read
	// them from any goroutine.
	autoCleanup bool
	logger      Logger
	metrics     MetricsCollector
}

// retain atomically increments the slot's reference count.
func (s *syncSlot[V]) retain() {
	s.refCount.Add(1)
}

// release atomically decrements the slot's reference count and, if it
// reaches zero, runs the destruction protocol. Returns true iff this
// call destroyed the slot.
//
// The decrement and the store removal are not one atomic step: between
// them, a concurrent Hashcons for the same value can observe the store
// entry with refCount == 0 ("occupied but dead") and must replace it
// with a fresh slot rather than resurrecting this one - see
// syncStore.intern.
//
// Because refCount.Add is a single atomic fetch-and-add, exactly one
// caller ever observes the 1->0 transition, no matter how many
// goroutines call release concurrently; any call observing a result
// below zero is a double release and is logged rather than treated as a
// second destruction.
func (s *syncSlot[V]) release() bool {
	remaining := s.refCount.Add(-1)
	if remaining < 0 {
		if s.logger != nil {
			s.logger.Error("hashcons: double release", "error", NewErrDoubleRelease("ConcurrentHandle.Release"))
		}
		return false
	}

	destroyed := remaining == 0
	if destroyed && s.autoCleanup && s.back != nil {
		s.back.remove(s.elem, s)
	}
	if s.metrics != nil {
		s.metrics.RecordRelease(destroyed)
	}
	return destroyed
}

// alive reports whether the slot's reference count is still positive.
// Used by syncStore under its read or write lock to distinguish a live
// entry from one that has been logically destroyed but not yet purged.
func (s *syncSlot[V]) alive() bool {
	return s.refCount.Load() > 0
}
