// syncstore.go: concurrent interning table storage
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package hashcons

import "sync"

// syncStore is the concurrent canonicalization map. Unlike the
// single-threaded store, every access goes through mu: Hashcons and
// Release race freely across goroutines, and Cleanup can run
// concurrently with either. Go's sync.RWMutex does not poison itself
// when a holder panics mid-critical-section the way Rust's
// std::sync::Mutex does, so the lock-poisoning recovery path spec.md's
// concurrent design calls for has no counterpart here - a panic while
// holding mu simply unwinds normally and mu.Unlock still runs via the
// deferred call below. A panic from V's own comparison while the map is
// accessed is not recovered: it propagates to the caller of Hashcons.
type syncStore[V comparable] struct {
	mu      sync.RWMutex
	entries map[V]*syncSlot[V]
}

func newSyncStore[V comparable](sizeHint int) *syncStore[V] {
	return &syncStore[V]{entries: make(map[V]*syncSlot[V], sizeHint)}
}

// intern returns the slot owning v, retaining it, constructing a fresh
// one if absent or if the existing entry is occupied but dead.
func (s *syncStore[V]) intern(v V, autoCleanup bool, logger Logger, metrics MetricsCollector) (slot *syncSlot[V], hit bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The count is raised only while it is still positive: a plain
	// alive-then-retain would let a release outside the lock take it to
	// zero in between, and that release's remove would then delete the
	// entry of the slot just handed out.
	if existing, ok := s.entries[v]; ok {
		for n := existing.refCount.Load(); n > 0; n = existing.refCount.Load() {
			if existing.refCount.CompareAndSwap(n, n+1) {
				return existing, true
			}
		}
	}

	fresh := &syncSlot[V]{back: s, autoCleanup: autoCleanup, logger: logger, metrics: metrics}
	fresh.elem = v
	fresh.refCount.Store(1)
	s.entries[v] = fresh
	return fresh, false
}

// remove deletes v's entry, but only if it still points at owner - a
// concurrent Hashcons may already have replaced a dead entry with a new
// live slot for the same value between owner's refcount reaching zero
// and this call acquiring the lock, and that newer slot must survive.
func (s *syncStore[V]) remove(v V, owner *syncSlot[V]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.entries[v]; ok && current == owner {
		delete(s.entries, v)
	}
}

// sweep removes every entry whose slot is no longer alive, repeating
// until a pass removes nothing.
func (s *syncStore[V]) sweep() (removed int, passes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		passRemoved := 0
		for v, sl := range s.entries {
			if !sl.alive() {
				delete(s.entries, v)
				passRemoved++
			}
		}
		passes++
		removed += passRemoved
		if passRemoved == 0 {
			return removed, passes
		}
	}
}

func (s *syncStore[V]) size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
