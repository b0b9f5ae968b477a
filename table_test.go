// table_test.go: unit tests for the single-threaded Table
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package hashcons

import (
	"fmt"
	"testing"
)

func TestNewDefault(t *testing.T) {
	table := NewDefault[string]()
	if table == nil {
		t.Fatal("NewDefault returned nil")
	}
	if table.Size() != 0 {
		t.Errorf("expected empty table, got size %d", table.Size())
	}
	if !table.AutoCleanup() {
		t.Error("DefaultConfig should enable AutoCleanup")
	}
}

func TestTable_Hashcons_SameValueSharesSlot(t *testing.T) {
	table := NewDefault[string]()

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

func TestTable_Hashcons_DistinctValuesDistinctSlots(t *testing.T) {
	table := NewDefault[string]()

	h1 := table.Hashcons("hello")
	h2 := table.Hashcons("world")

	if h1.Equal(h2) {
		t.Error("handles to distinct values should not be equal")
	}
	if table.Size() != 2 {
		t.Errorf("expected size 2, got %d", table.Size())
	}

	h1.Release()
	h2.Release()
}

func TestTable_AutoCleanup_ReclaimsOnLastRelease(t *testing.T) {
	table := NewDefault[string]()

	h := table.Hashcons("transient")
	if table.Size() != 1 {
		t.Fatalf("expected size 1, got %d", table.Size())
	}

	h.Release()
	if table.Size() != 0 {
		t.Errorf("expected auto-cleanup to reclaim the slot, size is %d", table.Size())
	}
}

func TestTable_AutoCleanup_SurvivesWhileHandleOutstanding(t *testing.T) {
	table := NewDefault[string]()

	h1 := table.Hashcons("shared")
	h2 := h1.Clone()

	h1.Release()
	if table.Size() != 1 {
		t.Errorf("expected entry to survive while h2 is outstanding, size is %d", table.Size())
	}

	h2.Release()
	if table.Size() != 0 {
		t.Errorf("expected entry reclaimed after last release, size is %d", table.Size())
	}
}

func TestTable_ManualCleanup_LeavesDeadEntriesUntilSwept(t *testing.T) {
	table := New[string](Config{AutoCleanup: false})

	h := table.Hashcons("value")
	h.Release()

	if table.Size() != 1 {
		t.Fatalf("manual-cleanup table should not reclaim eagerly, size is %d", table.Size())
	}

	removed := table.Cleanup()
	if removed != 1 {
		t.Errorf("expected Cleanup to remove 1 entry, removed %d", removed)
	}
	if table.Size() != 0 {
		t.Errorf("expected size 0 after Cleanup, got %d", table.Size())
	}
}

func TestTable_ManualCleanup_ReinternAfterDeath(t *testing.T) {
	table := New[string](Config{AutoCleanup: false})

	h1 := table.Hashcons("value")
	h1.Release()

	// The entry is dead but not yet swept; a fresh Hashcons for the same
	// value must replace it with a new live slot rather than resurrecting
	// the dead one.
	h2 := table.Hashcons("value")
	if table.Size() != 1 {
		t.Errorf("expected size 1, got %d", table.Size())
	}

	h2.Release()
	if table.Size() != 1 {
		t.Errorf("expected the dead re-interned entry to remain until Cleanup, size is %d", table.Size())
	}
}

func TestTable_Cleanup_NoOpUnderAutoCleanup(t *testing.T) {
	table := NewDefault[string]()

	h := table.Hashcons("value")
	defer h.Release()

	removed := table.Cleanup()
	if removed != 0 {
		t.Errorf("expected Cleanup to be a no-op under auto-cleanup, removed %d", removed)
	}
}

func TestTable_Clone_SharesStore(t *testing.T) {
	table := NewDefault[string]()
	clone := table.Clone()

	h := table.Hashcons("shared")
	if clone.Size() != 1 {
		t.Errorf("clone should observe the original's entries, size is %d", clone.Size())
	}

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

func TestTable_Hash_ConsistentWithEqual(t *testing.T) {
	table := NewDefault[string]()

	h1 := table.Hashcons("same")
	h2 := table.Hashcons("same")
	defer h1.Release()
	defer h2.Release()

	if h1.Hash() != h2.Hash() {
		t.Error("equal handles must hash equal")
	}
}

func TestTable_Value(t *testing.T) {
	table := NewDefault[string]()
	h := table.Hashcons("value")
	defer h.Release()

	if h.Value() != "value" {
		t.Errorf("expected Value() to return 'value', got %q", h.Value())
	}
}

func TestTable_String(t *testing.T) {
	table := NewDefault[string]()
	h := table.Hashcons("value")
	defer h.Release()

	if got := fmt.Sprintf("%v", h); got != "value" {
		t.Errorf("expected String() to forward to %%v formatting, got %q", got)
	}
}

// node is an immutable structural value referencing leaves interned in a
// separate Table[string]. It is simpler than a genuinely recursive value
// (see Expr/And in recursive_test.go, which does embed references to
// interned slots of its own type through an interface) and is kept
// alongside it to exercise manual Cleanup on two distinct tables - a root
// table and the leaf table its values were built from - rather than
// self-referential nesting within one table. The two tables are swept
// independently: nothing cascades from one Cleanup into the other.
type node struct {
	op          string
	left, right string
}

func TestTable_ManualCleanup_RootAndLeafTablesSweptIndependently(t *testing.T) {
	leaves := New[string](Config{AutoCleanup: false})
	roots := New[node](Config{AutoCleanup: false})

	l := leaves.Hashcons("leaf")
	r := leaves.Hashcons("leaf")
	root := roots.Hashcons(node{op: "add", left: l.Value(), right: r.Value()})

	if roots.Size() != 1 {
		t.Fatalf("expected 1 root slot, got %d", roots.Size())
	}
	if leaves.Size() != 1 {
		t.Fatalf("expected 1 shared leaf slot, got %d", leaves.Size())
	}

	root.Release()
	l.Release()
	r.Release()

	removedRoots := roots.Cleanup()
	removedLeaves := leaves.Cleanup()
	if removedRoots != 1 {
		t.Errorf("expected Cleanup to remove the dead root entry, removed %d", removedRoots)
	}
	if removedLeaves != 1 {
		t.Errorf("expected Cleanup to remove the dead leaf entry, removed %d", removedLeaves)
	}
}

func TestTable_SizeHint(t *testing.T) {
	table := New[string](Config{SizeHint: 64})
	if table == nil {
		t.Fatal("New returned nil")
	}
	// SizeHint only pre-sizes the map; behavior is unaffected.
	h := table.Hashcons("x")
	defer h.Release()
	if table.Size() != 1 {
		t.Errorf("expected size 1, got %d", table.Size())
	}
}
