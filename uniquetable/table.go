// SPDX-License-Identifier: MIT
// Package uniquetable implements the hash-consing table of §4.2/C3,
// shared by the bdd and zbdd packages: it maps (top-var, high-id,
// signed-low-id) to the canonical vertex with that shape, so structurally
// identical sub-diagrams are never built twice.
//
// §4.2 licenses an open-addressed rehash in place of the original's
// chained-bucket design ("an implementation may use standard open-
// addressed rehash without observable behavioral change"); lvpra takes
// that license at face value and backs Table with a native Go map,
// generalizing core.Graph's own map-of-maps hash-consing idea
// (core/methods.go's adjacencyList) to this package's specific key
// shape. Growth is driven by the configured load factor (§4.2's fixed
// 0.75, via internal/engineconfig) rather than a bare "map is full"
// check, and Table.growthEvents counts each trigger so
// internal/telemetry can log it from the analysis orchestration layer.
package uniquetable

import (
	"github.com/katalvlaran/lvpra/arena"
	"github.com/katalvlaran/lvpra/internal/engineconfig"
)

// Key identifies a vertex by its reduction-relevant shape: the top
// variable, the high child, and the *signed* low child (the low edge is
// the canonical carrier of complement, per §3).
type Key struct {
	Var       int32
	High      arena.Handle
	SignedLow int32
}

// Table hash-conses vertices by Key. Entries are weak: Table never
// calls arena.Retain, so a vertex disappears from the table as soon as
// its last strong owner releases it (checked lazily, on next lookup,
// via the caller's checkLive closure, typically backed by arena.Get's
// liveness check).
type Table struct {
	entries map[Key]arena.Handle
	frozen  bool

	// growthEvents counts map growth beyond the configured load-factor
	// threshold; diagnostic only, surfaced via GrowthEvents for
	// internal/telemetry.
	growthEvents int
	cap          int
	loadFactor   float64
	growthCap    int
}

// New returns an empty Table sized to initialCapacity buckets, growing
// once len(entries) exceeds cap*loadFactor (§4.2's fixed load factor),
// doubling capacity below growthCap buckets and growing by 1/8 above it
// (§4.2's "dampen peak memory"). loadFactor outside (0,1] and growthCap
// below 1 fall back to internal/engineconfig.Default()'s values, so
// ad-hoc callers (tests, anything not threading engineconfig through)
// still get sane growth behavior.
func New(initialCapacity int, loadFactor float64, growthCap int) *Table {
	if initialCapacity < 1 {
		initialCapacity = 1
	}
	if loadFactor <= 0 || loadFactor > 1 {
		loadFactor = engineconfig.DefaultUniqueTableLoadFactor
	}
	if growthCap < 1 {
		growthCap = engineconfig.DefaultUniqueTableGrowthCap
	}
	return &Table{
		entries:    make(map[Key]arena.Handle, initialCapacity),
		cap:        initialCapacity,
		loadFactor: loadFactor,
		growthCap:  growthCap,
	}
}

// FindOrAdd returns the existing handle for key if one is live, along
// with found=true. Otherwise it evicts any stale entry at key and
// returns found=false so the caller can construct the vertex and call
// Insert. checkLive reports whether a given handle is still alive in the
// owning arena (arena.Arena[T] doesn't implement an interface directly
// since it's generic over T; callers pass arena.Get-backed closures).
func (t *Table) FindOrAdd(key Key, checkLive func(arena.Handle) bool) (h arena.Handle, found bool) {
	h, ok := t.entries[key]
	if !ok {
		return 0, false
	}
	if !checkLive(h) {
		delete(t.entries, key)
		return 0, false
	}
	return h, true
}

// Insert records that key canonically maps to h. It is a logic error to
// Insert into a frozen table.
func (t *Table) Insert(key Key, h arena.Handle) {
	if t.frozen {
		return
	}
	before := len(t.entries)
	t.entries[key] = h
	if len(t.entries) > before && float64(len(t.entries)) > float64(t.cap)*t.loadFactor {
		t.growthEvents++
		t.cap = t.nextCapacity()
	}
}

// nextCapacity implements the growth schedule: double below the
// configured growth cap, otherwise grow by 1/8, to "dampen peak
// memory."
func (t *Table) nextCapacity() int {
	if t.cap < t.growthCap {
		return t.cap * 2
	}
	return t.cap + t.cap/8
}

// Evict removes the entry stored under key, used when a vertex is released
// out of band (e.g. by an Arena sweep) so stale weak entries don't
// accumulate between lookups.
func (t *Table) Evict(key Key) {
	delete(t.entries, key)
}

// Len reports the number of live entries tracked.
func (t *Table) Len() int { return len(t.entries) }

// GrowthEvents reports how many times the table's capacity target grew,
// for telemetry only.
func (t *Table) GrowthEvents() int { return t.growthEvents }

// Freeze preserves the table for read-only lookups while releasing
// further growth bookkeeping, per §4.2: "may be frozen (capacity
// preserved, slots released) once the owning diagram is final."
func (t *Table) Freeze() {
	t.frozen = true
}
