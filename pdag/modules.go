// SPDX-License-Identifier: MIT
package pdag

import "github.com/katalvlaran/lvpra/arena"

// DetectModules finds every independent module in the graph: a gate
// whose entire set of descendants (gates and variables) is reachable
// from no other gate outside its own subtree, so that it can be
// analyzed in isolation and substituted by a single proxy variable in
// its ancestors. It stamps enter/exit times and the Min/MaxTime
// envelope on every gate (stampTimes), but the module test itself is
// the reachability check of subtreeIsSelfContained, not a comparison of
// those timestamps.
//
// The timestamp walk is iterative (an explicit stack), per §9's
// guidance that PDAG depth can exceed a comfortable Go call-stack
// budget on inputs assembled from deeply nested sub-formulas;
// markModules and subtreeIsSelfContained recurse.
//
// Returns ErrDuringConstruction if called before FinishConstruction.
func (p *PDAG) DetectModules() error {
	if p.underConstruction {
		return ErrDuringConstruction
	}
	clock := 0
	visited := make(map[arena.Handle]bool)
	p.stampTimes(p.Root, &clock, visited)
	p.markModules(p.Root, make(map[arena.Handle]bool))
	return nil
}

type frame struct {
	h        arena.Handle
	childIdx int
}

// stampTimes assigns EnterTime/ExitTime and the Min/MaxTime envelope of
// descendant timestamps to every gate reachable from root, using an
// explicit stack to avoid recursion depth proportional to graph depth.
func (p *PDAG) stampTimes(root arena.Handle, clock *int, visited map[arena.Handle]bool) {
	stack := []frame{{h: root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		g, ok := p.Gate(top.h)
		if !ok || g.IsConstant() {
			stack = stack[:len(stack)-1]
			continue
		}
		if top.childIdx == 0 {
			if visited[top.h] {
				stack = stack[:len(stack)-1]
				continue
			}
			visited[top.h] = true
			*clock++
			g.EnterTime = *clock
			g.MinTime = *clock
			g.MaxTime = *clock
		}
		children := gateChildren(g)
		if top.childIdx < len(children) {
			child := children[top.childIdx]
			top.childIdx++
			stack = append(stack, frame{h: child})
			continue
		}
		*clock++
		g.ExitTime = *clock
		if g.MaxTime < *clock {
			g.MaxTime = *clock
		}
		stack = stack[:len(stack)-1]
		if len(stack) > 0 {
			parent, _ := p.Gate(stack[len(stack)-1].h)
			if parent.MinTime == 0 || g.MinTime < parent.MinTime {
				parent.MinTime = g.MinTime
			}
			if g.MaxTime > parent.MaxTime {
				parent.MaxTime = g.MaxTime
			}
		}
	}
}

func gateChildren(g *Gate) []arena.Handle {
	out := make([]arena.Handle, 0, len(g.GateArgs))
	for h := range g.GateArgs {
		out = append(out, h)
	}
	return out
}

// markModules flags a gate as a module when it has at most one parent
// and every variable and gate in its subtree is referenced only from
// within that subtree (subtreeIsSelfContained). A gate referenced by more than one distinct parent gate can never be
// a module itself, but its own children may still independently
// qualify, so the walk continues into every subtree regardless.
func (p *PDAG) markModules(h arena.Handle, visited map[arena.Handle]bool) {
	if visited[h] {
		return
	}
	visited[h] = true
	g, ok := p.Gate(h)
	if !ok || g.IsConstant() {
		return
	}
	g.Module = len(g.Parents) <= 1 && p.subtreeIsSelfContained(h)
	for child := range g.GateArgs {
		p.markModules(child, visited)
	}
}

// subtreeIsSelfContained reports whether every gate reachable from h
// (other than h) has all of its parents also reachable from h, and no
// variable reachable from h is also an argument of a gate outside the
// subtree (i.e. no cross-edge enters the subtree from outside).
func (p *PDAG) subtreeIsSelfContained(h arena.Handle) bool {
	inSubtree := make(map[arena.Handle]bool)
	vars := make(map[arena.Handle]bool)
	var collect func(arena.Handle)
	collect = func(x arena.Handle) {
		if inSubtree[x] {
			return
		}
		inSubtree[x] = true
		g, ok := p.Gate(x)
		if !ok {
			return
		}
		for v := range g.VarArgs {
			vars[v] = true
		}
		for c := range g.GateArgs {
			collect(c)
		}
	}
	collect(h)
	for _, x := range p.allGateHandles() {
		if g, ok := p.Gate(x); ok && !inSubtree[x] {
			for v := range g.VarArgs {
				if vars[v] {
					return false
				}
			}
		}
	}
	for x := range inSubtree {
		if x == h {
			continue
		}
		g, _ := p.Gate(x)
		for parent := range g.Parents {
			if !inSubtree[parent] {
				return false
			}
		}
	}
	return true
}
