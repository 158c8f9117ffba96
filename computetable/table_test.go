// SPDX-License-Identifier: MIT
package computetable_test

import (
	"testing"

	"github.com/katalvlaran/lvpra/arena"
	"github.com/katalvlaran/lvpra/computetable"
)

func TestCanonicalize_OrderIndependent(t *testing.T) {
	f, g := arena.Handle(5), arena.Handle(2)
	min1, max1 := computetable.Canonicalize(f, g)
	min2, max2 := computetable.Canonicalize(g, f)
	if min1 != min2 || max1 != max2 {
		t.Fatalf("Canonicalize not commutative: (%d,%d) vs (%d,%d)", min1, max1, min2, max2)
	}
	if min1 != 2 || max1 != 5 {
		t.Fatalf("expected (2,5), got (%d,%d)", min1, max1)
	}
}

func TestTable_PutGetClear(t *testing.T) {
	tbl := computetable.New(4)
	key := computetable.Key{Op: 1, MinID: 2, MaxID: 5, LimitOrder: 100}
	if _, ok := tbl.Get(key); ok {
		t.Fatalf("expected miss on empty table")
	}
	tbl.Put(key, computetable.Result{Handle: 9, Complement: true})
	got, ok := tbl.Get(key)
	if !ok || got.Handle != 9 || !got.Complement {
		t.Fatalf("unexpected Get result: %+v, ok=%v", got, ok)
	}
	tbl.Clear()
	if tbl.Len() != 0 {
		t.Fatalf("expected empty table after Clear, Len()=%d", tbl.Len())
	}
}

func TestTable_OverwriteOnCollision(t *testing.T) {
	tbl := computetable.New(4)
	key := computetable.Key{Op: 1, MinID: 1, MaxID: 2, LimitOrder: 1}
	tbl.Put(key, computetable.Result{Handle: 1})
	tbl.Put(key, computetable.Result{Handle: 2})
	got, ok := tbl.Get(key)
	if !ok || got.Handle != 2 {
		t.Fatalf("expected overwrite to win, got %+v", got)
	}
}
