// synctable.go: concurrent hash-consing table
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package hashcons

// ConcurrentTable canonicalizes values of type V and is safe for
// concurrent use: Hashcons, Cleanup, Size and every ConcurrentHandle
// method may be called from any number of goroutines at once. The price
// of that safety is an RWMutex-guarded map and an atomic reference count
// per slot, where Table and Handle pay nothing at all.
type ConcurrentTable[V comparable] struct {
	store  *syncStore[V]
	config Config
}

// NewConcurrent creates a ConcurrentTable with the given configuration.
// Nil collaborators in cfg are replaced with their no-op defaults.
func NewConcurrent[V comparable](cfg Config) *ConcurrentTable[V] {
	cfg = cfg.normalize()
	return &ConcurrentTable[V]{
		store:  newSyncStore[V](cfg.SizeHint),
		config: cfg,
	}
}

// NewConcurrentDefault creates a ConcurrentTable with DefaultConfig().
func NewConcurrentDefault[V comparable]() *ConcurrentTable[V] {
	return NewConcurrent[V](DefaultConfig())
}

// Hashcons returns a handle to the canonical slot for v, creating one if
// necessary. Safe to call concurrently with itself, Release and Cleanup
// for the same table.
func (t *ConcurrentTable[V]) Hashcons(v V) ConcurrentHandle[V] {
	start := t.config.TimeProvider.Now()

	s, hit := t.store.intern(v, t.config.AutoCleanup, t.config.Logger, t.config.MetricsCollector)
	h := newConcurrentHandle(s)

	t.config.MetricsCollector.RecordHashcons(t.config.TimeProvider.Now()-start, hit)
	t.config.MetricsCollector.RecordSize(t.store.size())
	return h
}

// Size returns the number of distinct values currently tracked by the
// table, including entries whose slot has been destroyed but not yet
// purged by Cleanup. The count can be stale by the time the caller
// observes it if other goroutines are concurrently calling Hashcons or
// Release.
func (t *ConcurrentTable[V]) Size() int {
	return t.store.size()
}

// Cleanup removes every entry whose slot has reached a zero reference
// count, repeating until a pass removes nothing. Holds the table's lock
// for the duration of the sweep, so concurrent Hashcons calls, and
// releases that remove an entry, block until it completes.
func (t *ConcurrentTable[V]) Cleanup() (removed int) {
	removed, passes := t.store.sweep()
	t.config.MetricsCollector.RecordSweep(removed, passes)
	t.config.MetricsCollector.RecordSize(t.store.size())
	return removed
}

// AutoCleanup reports the table's configured cleanup policy.
func (t *ConcurrentTable[V]) AutoCleanup() bool {
	return t.config.AutoCleanup
}

// Clone returns a second owner of the same underlying store and
// configuration, safe to hand to another goroutine. Cheap: no allocation
// beyond the returned struct, and no copying of entries.
func (t *ConcurrentTable[V]) Clone() *ConcurrentTable[V] {
	return &ConcurrentTable[V]{store: t.store, config: t.config}
}
