// Package hashcons provides a generic hash-consing (interning) table.
//
// # Overview
//
// Hash consing guarantees that every distinct value of a user type V is
// represented by exactly one stored instance for as long as any caller
// holds a reference to it. Two handles produced from equal values are
// themselves equal and, in steady state, wrap the same stored instance,
// which makes equality checks on handles constant time and enables maximal
// structural sharing of immutable recursive data (symbolic expressions,
// decision diagrams, type representations).
//
// # Variants
//
// Two table types are provided, chosen once at construction and never
// mixed:
//
//   - Table[V]: single-threaded. No synchronization at all — confined by
//     contract to one goroutine. Misusing it across goroutines is
//     undefined behavior, the same zero-overhead tradeoff an unsynchronized
//     container in any language makes.
//   - ConcurrentTable[V]: safe to clone and share across goroutines.
//     Backed by a sync.RWMutex-guarded store and atomic reference counts.
//
// Both expose the same shape:
//
//	table := hashcons.New[string](hashcons.Config{})
//	h := table.Hashcons("hello")
//	defer h.Release()
//	h2 := table.Hashcons("hello")
//	defer h2.Release()
//	h.Equal(h2) // true
//	table.Size() // 1
//
// # Release, not Drop
//
// Go has no destructors, so the moment a Rust caller would let a value go
// out of scope, a hashcons caller calls Handle.Release(). This is the only
// mechanism the deterministic tests in this package rely on. As a backstop
// for handles a caller forgets to release, each Handle also registers a
// runtime.AddCleanup callback that performs the same release when the
// handle becomes unreachable and the garbage collector notices — never
// load-bearing, only a leak guard.
//
// # Auto-cleanup vs manual cleanup
//
// With Config.AutoCleanup true (as set by DefaultConfig, NewDefault and
// NewConcurrentDefault; the zero Config leaves it false), releasing the
// last handle for a value removes its table entry immediately (or, for the
// concurrent table, as soon as the store's lock is acquired). With it
// false, releasing handles never touches the table; call Table.Cleanup()
// to sweep dead entries. Cleanup repeats passes until one removes nothing.
// Removing an entry does not release anything referenced from inside its
// value: values nested in a swept entry stay in the table until their own
// references are released and a later Cleanup runs (see the Expr example
// in the package tests).
//
// # Observability
//
// Config accepts a Logger and a MetricsCollector, both defaulting to no-op
// implementations so the zero Config has zero overhead. A
// github.com/agilira/hashcons/otel package adapts MetricsCollector to
// OpenTelemetry, mirroring the core library's own separation: the table
// itself never imports an observability SDK.
//
// # Non-goals
//
// No persistence to disk, no cross-process sharing, no weak handles
// exposed to callers, no iteration over interned values, no mutation of an
// interned value once it exists, no cryptographic hashing. These mirror
// choices in Go's own container types (map, sync.Map) which likewise don't
// persist or expose iteration guarantees beyond what's stated.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package hashcons
