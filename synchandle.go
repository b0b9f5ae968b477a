// synchandle.go: concurrent handle to an interned value
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package hashcons

import (
	"cmp"
	"fmt"
	"hash/maphash"
	"runtime"
)

// ConcurrentHandle is a reference-counted handle to a value canonicalized
// by a ConcurrentTable. It is safe to pass between goroutines and to call
// its methods, including Release, concurrently from multiple goroutines -
// the reference count is maintained atomically.
type ConcurrentHandle[V comparable] struct {
	s     *syncSlot[V]
	token *cleanupToken
}

func newConcurrentHandle[V comparable](s *syncSlot[V]) ConcurrentHandle[V] {
	token := &cleanupToken{}
	runtime.AddCleanup(token, releaseSyncBackstop(s), struct{}{})
	return ConcurrentHandle[V]{s: s, token: token}
}

// releaseSyncBackstop mirrors releaseBackstop for the concurrent slot;
// see its doc comment for why this exists and why it is never
// load-bearing.
func releaseSyncBackstop[V comparable](s *syncSlot[V]) func(struct{}) {
	return func(struct{}) {
		defer func() {
			if r := recover(); r != nil && s.logger != nil {
				s.logger.Warn("hashcons: recovered panic in GC backstop release", "panic", r)
			}
		}()
		s.release()
	}
}

// Value returns the canonicalized value held by this handle.
func (h ConcurrentHandle[V]) Value() V {
	return h.s.elem
}

// Clone returns a new handle to the same slot, atomically incrementing
// its reference count. The returned handle must be Released
// independently of h.
func (h ConcurrentHandle[V]) Clone() ConcurrentHandle[V] {
	h.s.retain()
	return newConcurrentHandle(h.s)
}

// Release atomically decrements the handle's reference count. Once every
// handle derived from a given Hashcons call has been released, the slot
// is destroyed, following the table's configured cleanup policy exactly
// as Handle.Release does for the single-threaded variant.
func (h ConcurrentHandle[V]) Release() {
	h.s.release()
}

// Equal reports whether h and other wrap equal values, exactly as
// Handle[V].Equal does for the single-threaded variant: delegates to V's
// own equality, not to slot identity, so handles produced by different
// ConcurrentTables holding equal values still compare Equal.
func (h ConcurrentHandle[V]) Equal(other ConcurrentHandle[V]) bool {
	return h.s.elem == other.s.elem
}

// Hash returns a hash of the handle's value, consistent with Equal,
// identical in construction to Handle[V].Hash - including forwarding to
// V's own Hasher when it implements one.
func (h ConcurrentHandle[V]) Hash() uint64 {
	if hv, ok := any(h.s.elem).(Hasher); ok {
		return hv.Hash()
	}
	var hh maphash.Hash
	hh.SetSeed(handleHashSeed)
	fmt.Fprintf(&hh, "%#v", h.s.elem)
	return hh.Sum64()
}

// String implements fmt.Stringer, forwarding to the underlying value
// when it implements fmt.Stringer.
func (h ConcurrentHandle[V]) String() string {
	if sv, ok := any(h.s.elem).(fmt.Stringer); ok {
		return sv.String()
	}
	return fmt.Sprintf("%v", h.s.elem)
}

// GoString implements fmt.GoStringer, forwarding to the underlying
// value's GoString when available.
func (h ConcurrentHandle[V]) GoString() string {
	if gv, ok := any(h.s.elem).(fmt.GoStringer); ok {
		return gv.GoString()
	}
	return fmt.Sprintf("%#v", h.s.elem)
}

// Compare orders a and b by their wrapped values, exactly as cmp.Compare
// would on the values themselves. It is a free function rather than a
// method because it needs a stronger constraint (cmp.Ordered) than
// ConcurrentHandle[V] itself requires (comparable) - Go does not allow a
// method to add a type constraint beyond its receiver's.
func Compare[V cmp.Ordered](a, b ConcurrentHandle[V]) int {
	return cmp.Compare(a.s.elem, b.s.elem)
}

// Less reports whether a sorts before b by their wrapped values. Defined
// in terms of Compare, so callers that already have a Compare-shaped
// comparator (for slices.SortFunc, etc.) and callers that want a simple
// boolean predicate (for sort.Slice, or as a < b) both have a direct
// match.
func Less[V cmp.Ordered](a, b ConcurrentHandle[V]) bool {
	return Compare(a, b) < 0
}
