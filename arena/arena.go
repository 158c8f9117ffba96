// SPDX-License-Identifier: MIT
// Package arena implements the node arena of §3/C1: it owns the
// vertices of a PDAG, BDD, or ZBDD, hands out handles, and frees dead
// vertices, reusing their slots for later allocations. It generalizes core.Graph's map-based
// vertex storage (core/types.go, core/methods.go) to a generic,
// handle-addressed pool, per the design notes' §9 guidance: "arena-
// allocated vertices addressed by compact integer handles, with a
// separate reference-count array and a generation counter for weak-
// handle validation." Each slot keeps a generation count, but a Handle
// does not carry it, so a handle to a freed slot that Alloc has since
// reused reads the new vertex.
package arena

import (
	"sync"

	"github.com/katalvlaran/lvpra/internal/xerrors"
)

// Handle addresses one vertex. Zero is never a valid handle; callers
// building BDD/ZBDD edges layer a sign bit of their own over Handle to
// encode complement, per §3's "the sign encodes polarity" convention —
// arena itself only ever deals in unsigned slot positions.
type Handle int32

// Sentinel errors.
var (
	// ErrInvalidHandle indicates a zero, out-of-range, or released
	// handle was dereferenced.
	ErrInvalidHandle = xerrors.New(xerrors.LogicError, "arena: invalid or stale handle")
	// ErrResourceExhausted indicates the arena could not grow further.
	ErrResourceExhausted = xerrors.New(xerrors.ResourceExhausted, "arena: allocation failed")
)

// slot holds one vertex plus its bookkeeping.
type slot[T any] struct {
	value    T
	refcount uint32
	gen      uint32
	live     bool
}

// Arena is a generic, handle-addressed node pool. §5 confines real
// concurrent use to nothing — an entire analysis runs on one goroutine —
// so the embedded mutex exists for structural parity with core.Graph's
// locking discipline and to make a future concurrent caller's misuse
// fail loudly (RWMutex panics on recursive misuse more readily than
// silent data races), not because lvpra itself contends on it.
type Arena[T any] struct {
	mu    sync.RWMutex
	slots []slot[T]
	free  []Handle
}

// New returns an empty Arena. Handle 0 is never issued so zero-value
// Handle reliably means "no handle."
func New[T any]() *Arena[T] {
	a := &Arena[T]{}
	a.slots = append(a.slots, slot[T]{}) // burn index 0
	return a
}

// NewWithReserved returns an Arena with n slots pre-allocated and marked
// live with zero-value T, reserving handles [1, n] for callers that need
// a fixed low-index block — e.g. bdd.Diagram reserving handle 1 for the
// TRUE terminal per §3's "index 1 is reserved for the single Boolean
// constant TRUE."
func NewWithReserved[T any](n int) *Arena[T] {
	a := New[T]()
	for i := 0; i < n; i++ {
		a.slots = append(a.slots, slot[T]{live: true, refcount: 1})
	}
	return a
}

// Alloc inserts v and returns its Handle with refcount 1.
func (a *Arena[T]) Alloc(v T) Handle {
	a.mu.Lock()
	defer a.mu.Unlock()

	if n := len(a.free); n > 0 {
		h := a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[h] = slot[T]{value: v, refcount: 1, gen: a.slots[h].gen, live: true}
		return h
	}
	a.slots = append(a.slots, slot[T]{value: v, refcount: 1, live: true})
	return Handle(len(a.slots) - 1)
}

// Get dereferences h. ok is false for a zero, out-of-range, or freed
// handle. Only the slot's liveness is checked, not its generation: a
// handle whose slot was freed and then reused by Alloc reads the new
// value.
func (a *Arena[T]) Get(h Handle) (v T, ok bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if h <= 0 || int(h) >= len(a.slots) || !a.slots[h].live {
		return v, false
	}
	return a.slots[h].value, true
}

// Set overwrites the value stored at h without touching its refcount or
// generation — used for scratch-field updates during traversal (§9's
// "mark generation counter," memoized probability/importance slots).
func (a *Arena[T]) Set(h Handle, v T) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if h <= 0 || int(h) >= len(a.slots) || !a.slots[h].live {
		return false
	}
	a.slots[h].value = v
	return true
}

// Retain increments h's strong refcount. It is a logic error to Retain
// a freed handle.
func (a *Arena[T]) Retain(h Handle) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if h > 0 && int(h) < len(a.slots) && a.slots[h].live {
		a.slots[h].refcount++
	}
}

// Release decrements h's strong refcount; at zero the slot is freed and
// its generation bumped, and Get on h fails until Alloc reuses the slot.
// Unique-table weak entries rely on exactly this: they never call
// Retain, so they see Get fail once the last strong owner releases (as
// long as the slot has not been reused).
func (a *Arena[T]) Release(h Handle) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if h <= 0 || int(h) >= len(a.slots) || !a.slots[h].live {
		return
	}
	s := &a.slots[h]
	if s.refcount > 0 {
		s.refcount--
	}
	if s.refcount == 0 {
		var zero T
		s.value = zero
		s.live = false
		s.gen++
		a.free = append(a.free, h)
	}
}

// Len returns the number of live vertices.
func (a *Arena[T]) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	n := 0
	for i := 1; i < len(a.slots); i++ {
		if a.slots[i].live {
			n++
		}
	}
	return n
}

// Freeze releases the free list's backing storage without touching live
// slots, mirroring uniquetable.Table.Freeze's "capacity preserved, slots
// released" contract for the arena side of a diagram finalized for
// read-only traversal.
func (a *Arena[T]) Freeze() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.free = nil
}
