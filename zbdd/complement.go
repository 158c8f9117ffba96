// SPDX-License-Identifier: MIT
package zbdd

import "github.com/katalvlaran/lvpra/arena"

// EliminateComplements sweeps the diagram for MCS (non-PI) mode,
// replacing every negative-literal node (VarIndex < 0) with
// Apply(OR, high, low) — discarding the literal entirely, per §4.5:
// "a sweep replaces every negative-literal node with Apply(OR, high,
// low)." Non-coherent modules are left untouched; their own
// complement elimination is the sub-diagram's responsibility.
func (d *Diagram) EliminateComplements(v arena.Handle) arena.Handle {
	memo := make(map[arena.Handle]arena.Handle)
	return d.eliminateComplements(v, memo)
}

func (d *Diagram) eliminateComplements(v arena.Handle, memo map[arena.Handle]arena.Handle) arena.Handle {
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

	if n.Module && !n.Coherent {
		memo[v] = v
		return v
	}

	high := d.eliminateComplements(n.High, memo)
	low := d.eliminateComplements(n.Low, memo)

	var r arena.Handle
	if n.VarIndex < 0 {
		r = d.Apply(OpOr, high, low, 1<<30)
	} else {
		r = d.findOrAddVertex(n.VarIndex, n.Order, n.Module, high, low)
	}
	memo[v] = r
	return r
}
