// SPDX-License-Identifier: MIT
package zbdd

import (
	"iter"
	"math/big"
	"sort"

	"github.com/katalvlaran/lvpra/arena"
)

// frame is one entry of the explicit DFS stack Products walks: the node
// being visited, the literals accumulated on the path down to it, and
// which branch (high, then low) is still pending.
type frame struct {
	handle  arena.Handle
	acc     []int32
	pending int // 0: take high next, 1: take low next, 2: exhausted
}

// Products returns a forward iterator over every product in the
// diagram's family, each yielded as a sorted slice of signed variable
// indices, per §4.5: "a stack of (node, branch) frames and, for each
// module, a nested iterator over the module's own ZBDD... nested
// modules recursively." Yields stop once a partial product's length
// would exceed limitOrder.
func (d *Diagram) Products(limitOrder int) iter.Seq[[]int32] {
	return func(yield func([]int32) bool) {
		d.walkProducts(d.Root, nil, limitOrder, yield)
	}
}

// walkProducts performs the frame-stack DFS described above; it
// returns false once yield has asked to stop, so callers can
// short-circuit the outer traversal.
func (d *Diagram) walkProducts(h arena.Handle, acc []int32, limit int, yield func([]int32) bool) bool {
	stack := []frame{{handle: h, acc: acc}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if top.handle == Empty {
			stack = stack[:len(stack)-1]
			continue
		}
		if top.handle == Base {
			product := append([]int32(nil), top.acc...)
			sort.Slice(product, func(i, j int) bool { return product[i] < product[j] })
			if !yield(product) {
				return false
			}
			stack = stack[:len(stack)-1]
			continue
		}

		n, ok := d.Node(top.handle)
		if !ok {
			stack = stack[:len(stack)-1]
			continue
		}

		if n.Module {
			sub, hasSub := d.ModuleTable[top.handle]
			if !hasSub {
				stack = stack[:len(stack)-1]
				continue
			}
			cont := true
			for p := range sub.Products(limit - len(top.acc)) {
				merged := append(append([]int32(nil), top.acc...), p...)
				if len(merged) > limit {
					continue
				}
				sort.Slice(merged, func(i, j int) bool { return merged[i] < merged[j] })
				if !yield(merged) {
					cont = false
					break
				}
			}
			stack = stack[:len(stack)-1]
			if !cont {
				return false
			}
			continue
		}

		switch top.pending {
		case 0:
			top.pending = 1
			if len(top.acc)+1 <= limit {
				nextAcc := append(append([]int32(nil), top.acc...), n.VarIndex)
				stack = append(stack, frame{handle: n.High, acc: nextAcc})
			}
		case 1:
			top.pending = 2
			stack = append(stack, frame{handle: n.Low, acc: append([]int32(nil), top.acc...)})
		default:
			stack = stack[:len(stack)-1]
		}
	}
	return true
}

// Satcount returns the total number of products reachable from v,
// using math/big.Int for overflow safety on graphs whose product count
// exceeds a machine word, per §9's "Satcount-equivalent total-count."
func (d *Diagram) Satcount(v arena.Handle) *big.Int {
	memo := make(map[arena.Handle]*big.Int)
	return d.satcount(v, memo)
}

func (d *Diagram) satcount(v arena.Handle, memo map[arena.Handle]*big.Int) *big.Int {
	if v == Empty {
		return big.NewInt(0)
	}
	if v == Base {
		return big.NewInt(1)
	}
	if r, ok := memo[v]; ok {
		return r
	}
	n, ok := d.Node(v)
	if !ok {
		return big.NewInt(0)
	}
	if n.Module {
		if sub, ok := d.ModuleTable[v]; ok {
			r := sub.satcount(sub.Root, make(map[arena.Handle]*big.Int))
			memo[v] = r
			return r
		}
		memo[v] = big.NewInt(0)
		return memo[v]
	}
	high := d.satcount(n.High, memo)
	low := d.satcount(n.Low, memo)
	r := new(big.Int).Add(high, low)
	memo[v] = r
	return r
}
