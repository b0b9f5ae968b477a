// synctable_test.go: unit tests for ConcurrentTable
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package hashcons

import (
	"sync"
	"testing"
)

func TestConcurrentTable_Hashcons_SameValueSharesSlot(t *testing.T) {
	table := NewConcurrentDefault[string]()

	h1 := table.Hashcons("hello")
	h2 := table.Hashcons("hello")

	if !h1.Equal(h2) {
		t.Error("two handles to the same value should be equal")
	}
	if table.Size() != 1 {
		t.Errorf("expected size 1, got %d", table.Size())
	}

	h1.Release()
	h2.Release()
}

func TestConcurrentTable_AutoCleanup_ReclaimsOnLastRelease(t *testing.T) {
	table := NewConcurrentDefault[string]()

	h := table.Hashcons("transient")
	h.Release()

	if table.Size() != 0 {
		t.Errorf("expected auto-cleanup to reclaim the slot, size is %d", table.Size())
	}
}

func TestConcurrentTable_ManualCleanup_Sweeps(t *testing.T) {
	table := NewConcurrent[string](Config{AutoCleanup: false})

	h := table.Hashcons("value")
	h.Release()

	if table.Size() != 1 {
		t.Fatalf("manual-cleanup table should not reclaim eagerly, size is %d", table.Size())
	}

	if removed := table.Cleanup(); removed != 1 {
		t.Errorf("expected Cleanup to remove 1 entry, removed %d", removed)
	}
}

func TestConcurrentTable_Clone_SharesStore(t *testing.T) {
	table := NewConcurrentDefault[string]()
	clone := table.Clone()

	h := table.Hashcons("shared")
	h2 := clone.Hashcons("shared")

	if !h.Equal(h2) {
		t.Error("clone should intern into the same store as the original")
	}

	h.Release()
	h2.Release()
	if table.Size() != 0 {
		t.Errorf("expected size 0 after releasing through both handles, got %d", table.Size())
	}
}

func TestConcurrentHandle_DoubleRelease_Detected(t *testing.T) {
	logger := &capturingLogger{}
	table := NewConcurrent[string](Config{AutoCleanup: true, Logger: logger})

	h := table.Hashcons("value")
	h.Release()
	h.Release()

	if logger.errorCount() != 1 {
		t.Errorf("expected exactly one double-release error logged, got %d", logger.errorCount())
	}
}

// TestConcurrentTable_ConcurrentHashconsRelease hammers a small alphabet of
// values from many goroutines at once, each doing Hashcons immediately
// followed by Release, and checks the table returns to empty. Intended to
// run under -race: any data race in intern/retain/release surfaces as a
// race detector failure rather than a correctness assertion here.
func TestConcurrentTable_ConcurrentHashconsRelease(t *testing.T) {
	table := NewConcurrentDefault[string]()

	alphabet := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	const goroutines = 32
	const opsPerGoroutine = 500

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func(seed int) {
			defer wg.Done()
			for i := 0; i < opsPerGoroutine; i++ {
				v := alphabet[(seed+i)%len(alphabet)]
				h := table.Hashcons(v)
				if h.Value() != v {
					t.Errorf("handle value mismatch: got %q want %q", h.Value(), v)
				}
				h.Release()
			}
		}(g)
	}
	wg.Wait()

	if table.Size() != 0 {
		t.Errorf("expected table to be empty after all handles released, size is %d", table.Size())
	}
}

// TestConcurrentTable_ConcurrentHashconsWithOverlappingLifetimes keeps a
// random subset of handles alive across goroutines while others are
// released, exercising the ABA-guarded removal path in syncStore.remove:
// a slot reaching zero references must not delete a newer live entry that
// a racing Hashcons installed for the same value in the meantime.
func TestConcurrentTable_ConcurrentHashconsWithOverlappingLifetimes(t *testing.T) {
	table := NewConcurrentDefault[string]()

	const goroutines = 16
	const rounds = 200

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				h1 := table.Hashcons("contended")
				h2 := table.Hashcons("contended")
				h1.Release()
				h3 := table.Hashcons("contended")
				h2.Release()
				h3.Release()
			}
		}()
	}
	wg.Wait()

	if table.Size() != 0 {
		t.Errorf("expected table to be empty after all handles released, size is %d", table.Size())
	}
}
