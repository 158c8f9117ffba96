// SPDX-License-Identifier: MIT
package zbdd

import "github.com/katalvlaran/lvpra/arena"

// EliminateConstantModules substitutes every module proxy whose own
// sub-diagram analysis evaluated to Base or Empty, per §4.5: a module
// that evaluates to Base behaves like `high ∪ low` of whichever node
// references it (it always contributes, without gating anything on its
// own literal) — modeled here as the proxy reference itself collapsing
// to Base, so the enclosing node's ordinary zero-suppression reduction
// takes over; a module that evaluates to Empty behaves like the
// enclosing node's `low` (it never contributes), modeled as the proxy
// reference collapsing to Empty. A single bottom-up pass rewrites every
// node whose High or Low pointed at such a proxy and re-reduces it.
func (d *Diagram) EliminateConstantModules(v arena.Handle) arena.Handle {
	memo := make(map[arena.Handle]arena.Handle)
	return d.eliminateConstModules(v, memo)
}

func (d *Diagram) eliminateConstModules(v arena.Handle, memo map[arena.Handle]arena.Handle) arena.Handle {
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

	if n.Module {
		if sub, ok := d.ModuleTable[v]; ok {
			switch sub.Root {
			case Base:
				memo[v] = Base
				return Base
			case Empty:
				memo[v] = Empty
				return Empty
			}
		}
		memo[v] = v
		return v
	}

	high := d.eliminateConstModules(n.High, memo)
	low := d.eliminateConstModules(n.Low, memo)
	r := d.findOrAddVertex(n.VarIndex, n.Order, n.Module, high, low)
	memo[v] = r
	return r
}
