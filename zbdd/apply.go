// SPDX-License-Identifier: MIT
package zbdd

import (
	"github.com/katalvlaran/lvpra/arena"
	"github.com/katalvlaran/lvpra/computetable"
	"github.com/katalvlaran/lvpra/uniquetable"
)

// Apply computes op(a, b) over this diagram's product families, per
// §4.5: OpAnd is the family product `A·B = x·(A1·(B1+B0) + A0·B1) +
// A0·B0`; OpOr is family union. limitOrder upper-bounds the size of the
// largest product kept — any recursion whose product size must exceed
// it returns Empty — decremented only past a non-module variable; module
// nodes are never charged (a module may collapse to ∅ and so is not
// charged against a budget it might never actually consume).
func (d *Diagram) Apply(op Op, a, b arena.Handle, limitOrder int32) arena.Handle {
	if short, ok := d.terminalShortCircuit(op, a, b); ok {
		return short
	}
	if a == b {
		return a
	}
	if limitOrder < 0 {
		return Empty
	}

	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	key := computetable.Key{Op: int32(op), MinID: int32(lo), MaxID: int32(hi), LimitOrder: limitOrder}
	if cached, ok := d.cache.Get(key); ok {
		return cached.Handle
	}

	an, aok := d.Node(a)
	bn, bok := d.Node(b)
	if !aok || !bok {
		return Empty
	}

	aOrder, bOrder := d.order(a), d.order(b)
	v := aOrder
	if bOrder < v {
		v = bOrder
	}
	var idx int32
	module := false
	if aOrder == v {
		idx, module = an.VarIndex, an.Module
	} else {
		idx, module = bn.VarIndex, bn.Module
	}

	a1, a0 := d.cofactor(a, an, v)
	b1, b0 := d.cofactor(b, bn, v)

	childLimit := limitOrder
	if !module {
		childLimit = limitOrder - 1
	}

	var high, low arena.Handle
	switch op {
	case OpAnd:
		union := d.Apply(OpOr, b1, b0, limitOrder)
		left := d.Apply(OpAnd, a1, union, childLimit)
		right := d.Apply(OpAnd, a0, b1, childLimit)
		high = d.Apply(OpOr, left, right, childLimit)
		low = d.Apply(OpAnd, a0, b0, limitOrder)
	default: // OpOr
		high = d.Apply(OpOr, a1, b1, childLimit)
		low = d.Apply(OpOr, a0, b0, limitOrder)
	}

	result := d.findOrAddVertex(idx, v, module, high, low)
	d.cache.Put(key, computetable.Result{Handle: result})
	return result
}

func (d *Diagram) terminalShortCircuit(op Op, a, b arena.Handle) (arena.Handle, bool) {
	switch op {
	case OpAnd:
		if a == Empty || b == Empty {
			return Empty, true
		}
		if a == Base {
			return b, true
		}
		if b == Base {
			return a, true
		}
	case OpOr:
		if a == Empty {
			return b, true
		}
		if b == Empty {
			return a, true
		}
	}
	return Empty, false
}

// cofactor returns (high, low) of f "at" order v: f's own branches when
// f's own order is v, or (Empty, f) when v does not appear in f (f's
// top variable is ordered strictly after v, so it contributes nothing
// to the family of products containing v).
func (d *Diagram) cofactor(f arena.Handle, n Node, v int32) (high, low arena.Handle) {
	if d.IsTerminal(f) || n.Order != v {
		return Empty, f
	}
	return n.High, n.Low
}

// findOrAddVertex hash-conses (idx, v, high, low) into a node, applying
// the zero-suppression reduction (`high == Empty ⇒ replace by low`)
// before consulting the unique table.
func (d *Diagram) findOrAddVertex(idx, v int32, module bool, high, low arena.Handle) arena.Handle {
	if high == Empty {
		return low
	}

	key := uniquetable.Key{Var: idx, High: high, SignedLow: int32(low)}
	if existing, found := d.table.FindOrAdd(key, func(h arena.Handle) bool {
		_, ok := d.nodes.Get(h)
		return ok
	}); found {
		return existing
	}

	maxOrder := d.maxSetOrder(high) + 1
	if lowOrder := d.maxSetOrder(low); lowOrder > maxOrder {
		maxOrder = lowOrder
	}

	node := Node{
		VarIndex:    idx,
		Order:       v,
		High:        high,
		Low:         low,
		Module:      module,
		MaxSetOrder: maxOrder,
	}
	h := d.nodes.Alloc(node)
	d.table.Insert(key, h)
	return h
}

// Literal returns the single-literal family {x} for the variable at
// (varIndex, order): a node whose high branch is Base and low branch is
// Empty, the building block Apply's AND/OR recurrences and FromBDD's
// prime-implicant split compose larger families out of.
func (d *Diagram) Literal(varIndex, order int32) arena.Handle {
	return d.findOrAddVertex(varIndex, order, false, Base, Empty)
}

func (d *Diagram) maxSetOrder(h arena.Handle) int32 {
	n, ok := d.Node(h)
	if !ok {
		return 0
	}
	return n.MaxSetOrder
}
