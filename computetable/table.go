// SPDX-License-Identifier: MIT
// Package computetable implements the Apply memoization table of
// §4.3/C4, shared by bdd and zbdd. Keys canonicalize the operand pair by
// (min-id, max-id) so operator commutativity yields identical memoized
// results regardless of call-site argument order, satisfying §5's
// ordering guarantee and the §8 testable property "Commutativity of
// Apply." Collisions overwrite rather than chain, per §4.3: "BDD Apply
// is dominated by the recursive structure, and replacement keeps the
// table compact."
package computetable

import "github.com/katalvlaran/lvpra/arena"

// Key is the canonicalized operand pair plus the limit_order in effect,
// so a single table can serve both size-unbounded BDD Apply and
// size-bounded ZBDD Apply without key collisions between the two.
type Key struct {
	Op         int32
	MinID      int32
	MaxID      int32
	LimitOrder int32
}

// Canonicalize orders f and g by raw arena.Handle value so that
// Apply(op, f, g) and Apply(op, g, f) produce the same Key.
func Canonicalize(f, g arena.Handle) (min, max int32) {
	fi, gi := int32(f), int32(g)
	if fi <= gi {
		return fi, gi
	}
	return gi, fi
}

// Result is the memoized outcome: a vertex handle plus the complement
// flag carried on the edge to it.
type Result struct {
	Handle     arena.Handle
	Complement bool
}

// Table is a flat, non-chaining memoization table.
type Table struct {
	entries map[Key]Result
}

// New returns an empty Table sized to initialCapacity buckets.
func New(initialCapacity int) *Table {
	if initialCapacity < 1 {
		initialCapacity = 1
	}
	return &Table{entries: make(map[Key]Result, initialCapacity)}
}

// Get returns the memoized result for key, if any.
func (t *Table) Get(key Key) (Result, bool) {
	r, ok := t.entries[key]
	return r, ok
}

// Put memoizes result for key, overwriting any prior entry — there is
// no chaining, by design (§4.3).
func (t *Table) Put(key Key, result Result) {
	t.entries[key] = result
}

// Clear empties the table at a sub-expression boundary, per §4.3:
// "Entries are cleared between Apply invocations at the sub-expression
// boundary." It does not reallocate, so repeated top-level Apply calls
// reuse the table's backing storage.
func (t *Table) Clear() {
	for k := range t.entries {
		delete(t.entries, k)
	}
}

// Len reports the number of memoized entries.
func (t *Table) Len() int { return len(t.entries) }
