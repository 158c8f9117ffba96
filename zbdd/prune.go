// SPDX-License-Identifier: MIT
package zbdd

import "github.com/katalvlaran/lvpra/arena"

// Prune drops every path whose cumulative order (count of literals
// accumulated on the way to a terminal) would exceed limit, per §4.5:
// "Prune(v, limit) drops every path whose cumulative order exceeds
// limit; it is size-stable (preserves minimality)." A node's own
// literal is charged against the budget only when it is not a module,
// mirroring Apply's limitOrder accounting.
func (d *Diagram) Prune(v arena.Handle, limit int32) arena.Handle {
	memo := make(map[pruneKey]arena.Handle)
	return d.prune(v, limit, memo)
}

type pruneKey struct {
	handle arena.Handle
	budget int32
}

func (d *Diagram) prune(v arena.Handle, budget int32, memo map[pruneKey]arena.Handle) arena.Handle {
	if v == Empty {
		return Empty
	}
	if v == Base {
		return Base
	}
	if budget < 0 {
		return Empty
	}
	key := pruneKey{handle: v, budget: budget}
	if r, ok := memo[key]; ok {
		return r
	}
	n, ok := d.Node(v)
	if !ok {
		return Empty
	}

	childBudget := budget
	if !n.Module {
		childBudget = budget - 1
	}

	high := d.prune(n.High, childBudget, memo)
	low := d.prune(n.Low, budget, memo)
	r := d.findOrAddVertex(n.VarIndex, n.Order, n.Module, high, low)
	memo[key] = r
	return r
}
