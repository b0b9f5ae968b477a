// handle.go: single-threaded handle to an interned value
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package hashcons

import (
	"fmt"
	"hash/maphash"
	"runtime"
)

// handleHashSeed is shared by every Handle[V].Hash call within this
// process, so two handles (from the same or different tables) holding
// equal values always hash equal to each other for the process's
// lifetime - Hash must be a function of the value, not of slot identity,
// so callers can use Handle as a map key consistent with Equal. The seed
// itself varies across process runs by design (hash/maphash draws it
// from a runtime-random source), the same protection Go's own map
// implementation gets against hash-flooding.
var handleHashSeed = maphash.MakeSeed()

// Handle is a reference-counted handle to a value canonicalized by a
// Table. Two handles produced by the same Table for equal values always
// share the same underlying slot - comparing the values they point at
// with == is exactly comparing their identity.
//
// A Handle is not safe for concurrent use; see ConcurrentHandle for the
// thread-safe counterpart produced by ConcurrentTable.
type Handle[V comparable] struct {
	s *slot[V]

	// token anchors the GC backstop registered in newHandle. Never read;
	// its only job is to be the object whose unreachability the runtime
	// watches, kept distinct from s so the backstop can fire without the
	// registration itself forcing s to stay reachable.
	token *cleanupToken
}

// cleanupToken is the object runtime.AddCleanup is attached to.
type cleanupToken struct{}

// newHandle wraps s in a Handle and registers its GC backstop. Used both
// for a freshly interned slot and, via Clone, for an additional logical
// reference to an existing one - each call registers its own
// independent backstop, matching the retain it pairs with.
func newHandle[V comparable](s *slot[V]) Handle[V] {
	token := &cleanupToken{}
	runtime.AddCleanup(token, releaseBackstop(s), struct{}{})
	return Handle[V]{s: s, token: token}
}

// releaseBackstop returns the function run by the garbage collector if a
// Handle is dropped on the floor without an explicit Release. It is not
// load-bearing: every property this package's tests establish comes from
// explicit Release calls, never from waiting on this. It exists so a
// long-running process that leaks handles through a bug still recovers
// table space eventually - the same shape of safety net go4.org/intern
// builds with runtime.SetFinalizer, modernized to runtime.AddCleanup.
func releaseBackstop[V comparable](s *slot[V]) func(struct{}) {
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
func (h Handle[V]) Value() V {
	return h.s.elem
}

// Clone returns a new handle to the same slot, incrementing its
// reference count. The returned handle must be Released independently of
// h.
func (h Handle[V]) Clone() Handle[V] {
	h.s.retain()
	return newHandle(h.s)
}

// Release decrements the handle's reference count. Once every handle
// derived from a given Hashcons call has been released, the slot is
// destroyed: in auto-cleanup tables this removes the table's entry
// immediately; in manual tables the entry is left for a subsequent
// Cleanup call. Calling Release more than once for the same logical
// handle is a programming error; a release observed after the count has
// reached zero is logged as ErrCodeDoubleRelease and otherwise ignored.
func (h Handle[V]) Release() {
	h.s.release()
}

// Equal reports whether h and other wrap equal values. This delegates to
// V's own equality, not to slot identity: two handles holding equal
// values are Equal even when produced by different Tables. In steady
// state (both handles came from the same Table) equal values share one
// slot, so the result agrees with comparing slot identity - but slot
// identity is never substituted for the value comparison, since callers
// comparing handles across tables depend on exactly this.
func (h Handle[V]) Equal(other Handle[V]) bool {
	return h.s.elem == other.s.elem
}

// Hasher lets V supply its own hash, forwarded by Handle.Hash /
// ConcurrentHandle.Hash in place of the default maphash-over-representation
// fallback - the same conditional-forwarding shape as fmt.Stringer for
// String(). A V whose Hasher is dishonest (returns the same value for
// unequal inputs) cannot corrupt canonicalization: Hashcons and Equal
// never consult Hash, only V's own == comparison via the store's native
// map, so a colliding Hash only ever degrades an external caller's own
// outer map, never this package's invariants.
type Hasher interface {
	Hash() uint64
}

// Hash returns a hash of the handle's value, consistent with Equal: two
// handles holding equal values always hash equal (though, as with any
// hash function, the converse does not hold - equal Hash does not imply
// equal value). Intended for callers that build their own outer map
// keyed by Handle[V].
func (h Handle[V]) Hash() uint64 {
	if hv, ok := any(h.s.elem).(Hasher); ok {
		return hv.Hash()
	}
	var hh maphash.Hash
	hh.SetSeed(handleHashSeed)
	fmt.Fprintf(&hh, "%#v", h.s.elem)
	return hh.Sum64()
}

// String implements fmt.Stringer by forwarding to the underlying value
// when it implements fmt.Stringer, and to a generic representation
// otherwise.
func (h Handle[V]) String() string {
	if sv, ok := any(h.s.elem).(fmt.Stringer); ok {
		return sv.String()
	}
	return fmt.Sprintf("%v", h.s.elem)
}

// GoString implements fmt.GoStringer, forwarding to the underlying
// value's GoString when available.
func (h Handle[V]) GoString() string {
	if gv, ok := any(h.s.elem).(fmt.GoStringer); ok {
		return gv.GoString()
	}
	return fmt.Sprintf("%#v", h.s.elem)
}
