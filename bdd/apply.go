// SPDX-License-Identifier: MIT
package bdd

import (
	"github.com/katalvlaran/lvpra/arena"
	"github.com/katalvlaran/lvpra/computetable"
	"github.com/katalvlaran/lvpra/uniquetable"
)

// Apply computes op(f, g) over this diagram, implementing §4.4's
// algorithm verbatim: terminal short-circuit, same-function and
// complementary-function shortcuts, pair ordering by variable order,
// a compute-table probe, the recursive Shannon split threading the
// attributed low-edge complement, find-or-add with bypass reduction,
// and a compute-table insert before returning.
func (d *Diagram) Apply(op Op, f, g Function) (Function, error) {
	if short, ok := terminalShortCircuit(op, f, g); ok {
		return short, nil
	}
	if f == g {
		return f, nil
	}
	if f.Handle == g.Handle && f.Complement != g.Complement {
		return terminalFor(op == OpOr), nil
	}

	f, g = orderPair(d, f, g)

	min, max := computetable.Canonicalize(signedID(f.Handle, f.Complement), signedID(g.Handle, g.Complement))
	key := computetable.Key{Op: int32(op), MinID: min, MaxID: max}
	if cached, ok := d.cache.Get(key); ok {
		return Function{Handle: cached.Handle, Complement: cached.Complement}, nil
	}

	fn, ok := d.Node(f.Handle)
	if !ok {
		return Function{}, ErrUnknownHandle
	}
	gn, ok := d.Node(g.Handle)
	if !ok {
		return Function{}, ErrUnknownHandle
	}

	v := fn.VarOrder
	if gn.VarOrder < v {
		v = gn.VarOrder
	}

	fHigh, fLow := cofactor(f, fn, v)
	gHigh, gLow := cofactor(g, gn, v)

	high, err := d.Apply(op, fHigh, gHigh)
	if err != nil {
		return Function{}, err
	}
	low, err := d.Apply(op, fLow, gLow)
	if err != nil {
		return Function{}, err
	}

	var idx int32
	if fn.VarOrder == v {
		idx = fn.VarIndex
	} else {
		idx = gn.VarIndex
	}

	result, err := d.findOrAddVertex(idx, v, high, low)
	if err != nil {
		return Function{}, err
	}
	d.cache.Put(key, computetable.Result{Handle: result.Handle, Complement: result.Complement})
	return result, nil
}

// terminalShortCircuit resolves op(f, g) directly when either operand
// is the constant TRUE or FALSE function, per step 1 of §4.4's Apply.
func terminalShortCircuit(op Op, f, g Function) (Function, bool) {
	switch op {
	case OpAnd:
		if f.IsFalse() || g.IsFalse() {
			return terminalFor(false), true
		}
		if f.IsTrue() {
			return g, true
		}
		if g.IsTrue() {
			return f, true
		}
	case OpOr:
		if f.IsTrue() || g.IsTrue() {
			return terminalFor(true), true
		}
		if f.IsFalse() {
			return g, true
		}
		if g.IsFalse() {
			return f, true
		}
	}
	return Function{}, false
}

func terminalFor(value bool) Function {
	return Function{Handle: TrueHandle, Complement: !value}
}

// orderPair sorts f and g by (variable order, handle) so Apply(op,f,g)
// and Apply(op,g,f) recurse identically, per step 3 ("sort the pair by
// variable order, then by index").
func orderPair(d *Diagram, f, g Function) (Function, Function) {
	fn, _ := d.Node(f.Handle)
	gn, _ := d.Node(g.Handle)
	if fn.VarOrder > gn.VarOrder || (fn.VarOrder == gn.VarOrder && f.Handle > g.Handle) {
		return g, f
	}
	return f, g
}

// cofactor returns the (high, low) branches of fn "at" variable v: the
// real high/low successors (with the attributed low complement and the
// function's own sign threaded through) when fn's own variable is v,
// or f unchanged on both branches when v does not appear in fn (it
// belongs to a variable ordered after v).
func cofactor(f Function, n Node, v int32) (high, low Function) {
	if n.VarOrder != v {
		return f, f
	}
	high = Function{Handle: n.High, Complement: f.Complement}
	low = Function{Handle: n.Low, Complement: f.Complement != n.LowComplement}
	return high, low
}

// findOrAddVertex hash-conses (idx, v, high, low) into a hopefully-new
// Node, normalizing so the high edge is never itself complemented
// (pushing a complemented high edge to the parent's own sign, keeping
// the low edge the sole carrier of complement as §3 requires), and
// applying the bypass reduction when high and low agree.
func (d *Diagram) findOrAddVertex(idx, v int32, high, low Function) (Function, error) {
	topSign := false
	if high.Complement {
		topSign = true
		high = Function{Handle: high.Handle, Complement: false}
		low = Function{Handle: low.Handle, Complement: !low.Complement}
	}

	if high.Handle == low.Handle && high.Complement == low.Complement {
		return Function{Handle: high.Handle, Complement: topSign != high.Complement}, nil
	}

	key := uniquetable.Key{Var: idx, High: high.Handle, SignedLow: int32(signedID(low.Handle, low.Complement))}
	if existing, found := d.table.FindOrAdd(key, func(h arena.Handle) bool {
		_, ok := d.nodes.Get(h)
		return ok
	}); found {
		return Function{Handle: existing, Complement: topSign}, nil
	}

	node := Node{
		VarIndex:      idx,
		VarOrder:      v,
		High:          high.Handle,
		Low:           low.Handle,
		LowComplement: low.Complement,
		prob:          unsetMemo,
		mif:           unsetMemo,
	}
	h := d.nodes.Alloc(node)
	d.table.Insert(key, h)
	return Function{Handle: h, Complement: topSign}, nil
}
