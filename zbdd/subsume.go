// SPDX-License-Identifier: MIT
package zbdd

import "github.com/katalvlaran/lvpra/arena"

// Subsume removes from high's family every product that is a superset
// of some product of low, following §4.5's pseudocode: when low's top
// variable sorts before high's (high.Order > low.Order), high's products
// cannot contain it, so only low's low branch is applied; when both
// share a top order and variable index, high's high branch is subsumed
// by both of low's branches and high's low branch by low's low branch;
// otherwise low is applied to both of high's branches.
func (d *Diagram) Subsume(high, low arena.Handle) arena.Handle {
	if low == Empty {
		return high
	}
	if high == Empty || high == Base {
		return high
	}

	hn, hok := d.Node(high)
	ln, lok := d.Node(low)
	if !hok || !lok {
		return high
	}

	var newHigh, newLow arena.Handle
	switch {
	case hn.Order > ln.Order:
		newHigh = d.Subsume(high, ln.Low)
		return newHigh
	case hn.Order == ln.Order && hn.VarIndex == ln.VarIndex:
		newHigh = d.Subsume(hn.High, ln.High)
		newHigh = d.Subsume(newHigh, ln.Low)
		newLow = d.Subsume(hn.Low, ln.Low)
	default:
		newHigh = d.Subsume(hn.High, low)
		newLow = d.Subsume(hn.Low, low)
	}
	return d.findOrAddVertex(hn.VarIndex, hn.Order, hn.Module, newHigh, newLow)
}

// Minimize post-orders the diagram rooted at v and, for every node,
// replaces its high branch with Subsume(Minimize(high), Minimize(low)),
// removing every product that is a strict superset of another, per
// §4.5: "Minimize(v) post-orders the diagram and for every node
// replaces high ← Subsume(Minimize(high), Minimize(low))."
func (d *Diagram) Minimize(v arena.Handle) arena.Handle {
	memo := make(map[arena.Handle]arena.Handle)
	return d.minimize(v, memo)
}

func (d *Diagram) minimize(v arena.Handle, memo map[arena.Handle]arena.Handle) arena.Handle {
	if d.IsTerminal(v) {
		return v
	}
	if r, ok := memo[v]; ok {
		return r
	}
	n, ok := d.Node(v)
	if !ok {
		return v
	}
	high := d.minimize(n.High, memo)
	low := d.minimize(n.Low, memo)
	high = d.Subsume(high, low)
	r := d.findOrAddVertex(n.VarIndex, n.Order, n.Module, high, low)
	if !d.IsTerminal(r) {
		if rn, ok := d.nodes.Get(r); ok {
			rn.Minimal = true
			d.nodes.Set(r, rn)
		}
	}
	memo[v] = r
	return r
}
