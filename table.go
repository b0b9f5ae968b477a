// table.go: single-threaded hash-consing table
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package hashcons

// Table canonicalizes values of type V: calling Hashcons with equal
// values always returns handles to the same underlying slot. A Table and
// every Handle it produces are confined to a single goroutine - there is
// no internal locking, no atomics, and no synchronization of any kind.
// Use ConcurrentTable if handles will cross goroutine boundaries.
type Table[V comparable] struct {
	store  *store[V]
	config Config
}

// New creates a Table with the given configuration. Nil collaborators in
// cfg are replaced with their no-op defaults.
func New[V comparable](cfg Config) *Table[V] {
	cfg = cfg.normalize()
	return &Table[V]{
		store:  newStore[V](cfg.SizeHint),
		config: cfg,
	}
}

// NewDefault creates a Table with DefaultConfig().
func NewDefault[V comparable]() *Table[V] {
	return New[V](DefaultConfig())
}

// Hashcons returns a handle to the canonical slot for v, creating one if
// this is the first time v has been seen (or the only prior slot for v
// has since been destroyed). Two calls with equal v values, whether or
// not either is currently live, always observe the same canonical
// identity while at least one handle to it is outstanding.
func (t *Table[V]) Hashcons(v V) Handle[V] {
	start := t.config.TimeProvider.Now()

	s, hit := t.store.intern(v, t.config.AutoCleanup, t.config.Logger, t.config.MetricsCollector)
	h := newHandle(s)

	t.config.MetricsCollector.RecordHashcons(t.config.TimeProvider.Now()-start, hit)
	t.config.MetricsCollector.RecordSize(t.store.size())
	return h
}

// Size returns the number of distinct values currently tracked by the
// table, including entries whose slot has been destroyed but not yet
// purged by Cleanup (manual-cleanup tables only).
func (t *Table[V]) Size() int {
	return t.store.size()
}

// Cleanup removes every entry whose slot has reached a zero reference
// count, repeating until a pass removes nothing. In an auto-cleanup
// table this is a no-op, since destroyed entries are already removed as
// they happen; it is provided so code generic over both cleanup policies
// can call it unconditionally.
func (t *Table[V]) Cleanup() (removed int) {
	removed, passes := t.store.sweep()
	t.config.MetricsCollector.RecordSweep(removed, passes)
	t.config.MetricsCollector.RecordSize(t.store.size())
	return removed
}

// AutoCleanup reports the table's configured cleanup policy.
func (t *Table[V]) AutoCleanup() bool {
	return t.config.AutoCleanup
}

// Clone returns a second owner of the same underlying store and
// configuration. The two *Table values observe each other's Hashcons,
// Release and Cleanup calls - Clone does not snapshot or copy entries,
// it shares them. Cheap: no allocation beyond the returned struct.
func (t *Table[V]) Clone() *Table[V] {
	return &Table[V]{store: t.store, config: t.config}
}
