// store.go: single-threaded interning table storage
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package hashcons

// store is the single-threaded canonicalization map: value V to the one
// slot that owns it. The map holds a plain *slot[V] rather than a
// standard-library weak.Pointer - liveness is tracked explicitly via
// slot.refCount, not via whether the garbage collector has reclaimed the
// target, because Cleanup and auto-release both need a synchronous
// answer. No lock: a store and every Table/Handle derived from it are
// confined to one goroutine by contract.
type store[V comparable] struct {
	entries map[V]*slot[V]
}

func newStore[V comparable](sizeHint int) *store[V] {
	return &store[V]{entries: make(map[V]*slot[V], sizeHint)}
}

// intern returns the slot owning v, retaining it. If the map has no
// entry, or the entry is occupied but dead (refCount reached zero
// without the entry being purged - only possible in manual-cleanup
// mode), a new slot is constructed and stored in its place.
func (s *store[V]) intern(v V, autoCleanup bool, logger Logger, metrics MetricsCollector) (sl *slot[V], hit bool) {
	if existing, ok := s.entries[v]; ok && existing.refCount > 0 {
		existing.retain()
		return existing, true
	}

	fresh := &slot[V]{elem: v, refCount: 1, back: s, autoCleanup: autoCleanup, logger: logger, metrics: metrics}
	s.entries[v] = fresh
	return fresh, false
}

// remove deletes v's entry if present. Safe to call on an already-absent
// key - auto-cleanup and a later manual Cleanup pass can race to remove
// the same logically-dead entry only across separate calls, never within
// one, since a single-threaded store serializes everything by
// construction.
func (s *store[V]) remove(v V) {
	delete(s.entries, v)
}

// sweep removes every entry whose slot has reached a zero reference
// count, repeating until a pass removes nothing. Repetition matters:
// destroying an outer value's slot can be the event that drops the last
// handle on some inner value reachable only through V's own fields, and
// that inner release happens synchronously inside slot.release - but
// only if the caller threads it through. sweep itself only observes
// refCount; cascaded releases are driven by the values' own Release
// calls, not by sweep re-deriving ownership structure it doesn't know
// about. The loop here guards against the simpler case: entries that
// went dead between one manual Release and the next Cleanup call.
func (s *store[V]) sweep() (removed int, passes int) {
	for {
		passRemoved := 0
		for v, sl := range s.entries {
			if sl.refCount <= 0 {
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

func (s *store[V]) size() int {
	return len(s.entries)
}
