// SPDX-License-Identifier: MIT
package bdd

import (
	"github.com/katalvlaran/lvpra/arena"
	"github.com/katalvlaran/lvpra/model"
	"github.com/katalvlaran/lvpra/pdag"
)

// converter carries the per-Diagram memoization state FromPDAG needs
// while folding a PDAG subtree bottom-up: one Function per already-
// converted gate, and one leaf Handle per already-built variable node.
// A fresh converter is created for the host diagram and, recursively,
// for every module's own sub-diagram.
type converter struct {
	d        *Diagram
	p        *pdag.PDAG
	gateMemo map[arena.Handle]Function
	varMemo  map[arena.Handle]arena.Handle
}

// FromPDAG converts a finished PDAG into a ROBDD, per §4.4's
// "Construction from PDAG": gates fold bottom-up in reverse topological
// order (achieved here by memoized recursion rather than an explicit
// post-order pass, since both visit every gate exactly once and a
// gate's arguments are always converted before the gate itself),
// argument vertices are combined in *decreasing* variable order, and
// modules become proxy nodes whose sub-diagram is attached through
// ModuleTable.
func FromPDAG(p *pdag.PDAG) (*Diagram, error) {
	if p == nil {
		return nil, ErrNilPDAG
	}
	d := NewDiagram()
	c := &converter{d: d, p: p, gateMemo: make(map[arena.Handle]Function), varMemo: make(map[arena.Handle]arena.Handle)}

	root, err := c.convertGate(p.Root)
	if err != nil {
		return nil, err
	}
	if p.RootComplement {
		root.Complement = !root.Complement
	}
	d.Root = root
	d.Coherent = isCoherentGraph(p)
	for vh := range c.varMemo {
		v, _ := p.Variable(vh)
		d.IndexToOrder[int32(v.Order)*2] = int32(v.Order)
	}
	return d, nil
}

func isCoherentGraph(p *pdag.PDAG) bool {
	g, ok := p.Gate(p.Root)
	if !ok {
		return true
	}
	return !p.RootComplement && gateSubtreeCoherent(p, p.Root, make(map[arena.Handle]bool)) && g.Coherent
}

func gateSubtreeCoherent(p *pdag.PDAG, gh arena.Handle, visited map[arena.Handle]bool) bool {
	if visited[gh] {
		return true
	}
	visited[gh] = true
	g, ok := p.Gate(gh)
	if !ok || g.IsConstant() {
		return true
	}
	if !g.Coherent {
		return false
	}
	for _, a := range g.Args {
		if a.Complement {
			return false
		}
		if a.Kind == pdag.RefGate && !gateSubtreeCoherent(p, a.Handle, visited) {
			return false
		}
	}
	return true
}

// convertGate returns the memoized Function for gh, converting it (and
// any unconverted argument) on first reference.
func (c *converter) convertGate(gh arena.Handle) (Function, error) {
	if fn, ok := c.gateMemo[gh]; ok {
		return fn, nil
	}
	g, ok := c.p.Gate(gh)
	if !ok {
		return Function{}, pdag.ErrUnknownGateRef
	}
	if g.IsConstant() {
		value, _ := g.ConstantValue()
		fn := terminalFor(value)
		c.gateMemo[gh] = fn
		return fn, nil
	}
	if g.Module && gh != c.p.Root {
		fn, err := c.convertModule(gh, g)
		if err != nil {
			return Function{}, err
		}
		c.gateMemo[gh] = fn
		return fn, nil
	}

	args := make([]Function, 0, len(g.Args))
	for _, lit := range g.Args {
		fn, err := c.convertLiteral(lit)
		if err != nil {
			return Function{}, err
		}
		args = append(args, fn)
	}
	sortByDecreasingOrder(c.d, args)

	op := OpAnd
	acc := terminalFor(true)
	if g.Connective == model.OR {
		op = OpOr
		acc = terminalFor(false)
	}
	for _, a := range args {
		next, err := c.d.Apply(op, acc, a)
		if err != nil {
			return Function{}, err
		}
		acc = next
	}
	c.gateMemo[gh] = acc
	return acc, nil
}

func (c *converter) convertLiteral(lit pdag.Literal) (Function, error) {
	switch lit.Kind {
	case pdag.RefConstant:
		return terminalFor(lit.Constant != lit.Complement), nil
	case pdag.RefVariable:
		h, err := c.variableLeaf(lit.Handle)
		if err != nil {
			return Function{}, err
		}
		return Function{Handle: h, Complement: lit.Complement}, nil
	case pdag.RefGate:
		fn, err := c.convertGate(lit.Handle)
		if err != nil {
			return Function{}, err
		}
		if lit.Complement {
			fn.Complement = !fn.Complement
		}
		return fn, nil
	}
	return Function{}, ErrStructureInvariant
}

// variableLeaf returns the single ite(x, TRUE, FALSE) node for the
// variable at vh, creating it on first reference.
func (c *converter) variableLeaf(vh arena.Handle) (arena.Handle, error) {
	if h, ok := c.varMemo[vh]; ok {
		return h, nil
	}
	v, ok := c.p.Variable(vh)
	if !ok {
		return 0, pdag.ErrUnknownGateRef
	}
	idx := int32(v.Order) * 2
	fn, err := c.d.findOrAddVertex(idx, idx, Function{Handle: TrueHandle}, Function{Handle: TrueHandle, Complement: true})
	if err != nil {
		return 0, err
	}
	c.varMemo[vh] = fn.Handle
	return fn.Handle, nil
}

// convertModule builds gh's formula into its own Diagram, registers it
// in the host diagram's ModuleTable, and returns a proxy Function
// referencing a dedicated placeholder node (High=Low=TrueHandle) at a
// variable position just ahead of the module's own lowest-order
// variable, per §3's "Module composition."
func (c *converter) convertModule(gh arena.Handle, g *pdag.Gate) (Function, error) {
	sub := NewDiagram()
	subConv := &converter{d: sub, p: c.p, gateMemo: make(map[arena.Handle]Function), varMemo: make(map[arena.Handle]arena.Handle)}
	subRoot, err := subConv.convertGate(gh)
	if err != nil {
		return Function{}, err
	}
	sub.Root = subRoot
	sub.Coherent = g.Coherent
	for vh := range subConv.varMemo {
		v, _ := c.p.Variable(vh)
		sub.IndexToOrder[int32(v.Order)*2] = int32(v.Order)
	}

	order := moduleOrder(c.p, gh)
	proxyHandle := c.d.allocModuleProxy(-int32(gh), order)
	c.d.ModuleTable[proxyHandle] = sub
	return Function{Handle: proxyHandle}, nil
}

// allocModuleProxy inserts a dedicated placeholder node directly into
// the arena, bypassing the unique table and Apply's ordinary find-or-add
// path, since every module proxy must remain individually addressable
// as a ModuleTable key rather than hash-consed against other nodes.
//
// Its High/Low are shaped exactly like variableLeaf's ite(x, TRUE,
// FALSE) — High uncomplemented, Low carrying the complement — so that
// an ancestor gate's ordinary Apply cofactors the proxy as a genuine
// two-valued Shannon variable instead of degenerating to a same-branch
// bypass that would silently drop the module from the composition.
func (d *Diagram) allocModuleProxy(idx, order int32) arena.Handle {
	node := Node{
		VarIndex:      idx,
		VarOrder:      order,
		High:          TrueHandle,
		Low:           TrueHandle,
		LowComplement: true,
		Module:        true,
		prob:          unsetMemo,
		mif:           unsetMemo,
	}
	return d.nodes.Alloc(node)
}

// moduleOrder ranks gh just ahead of the lowest-order variable
// reachable from it, so the host diagram's Apply places the proxy at
// the correct relative position among sibling variables.
func moduleOrder(p *pdag.PDAG, gh arena.Handle) int32 {
	best, found := minVariableOrder(p, gh, make(map[arena.Handle]bool))
	if !found {
		return 0
	}
	return int32(best)*2 - 1
}

func minVariableOrder(p *pdag.PDAG, gh arena.Handle, visited map[arena.Handle]bool) (int, bool) {
	if visited[gh] {
		return 0, false
	}
	visited[gh] = true
	g, ok := p.Gate(gh)
	if !ok || g.IsConstant() {
		return 0, false
	}
	best, found := 0, false
	for _, a := range g.Args {
		switch a.Kind {
		case pdag.RefVariable:
			v, ok := p.Variable(a.Handle)
			if ok && (!found || v.Order < best) {
				best, found = v.Order, true
			}
		case pdag.RefGate:
			if m, ok := minVariableOrder(p, a.Handle, visited); ok && (!found || m < best) {
				best, found = m, true
			}
		}
	}
	return best, found
}

// sortByDecreasingOrder orders fns by descending variable order (the
// node's VarOrder for non-terminal functions; terminals sort last,
// since they carry no variable and absorb immediately in Apply's
// terminal short-circuit regardless of fold position).
func sortByDecreasingOrder(d *Diagram, fns []Function) {
	order := func(f Function) int32 {
		if f.Handle == TrueHandle {
			return -1
		}
		n, _ := d.Node(f.Handle)
		return n.VarOrder
	}
	for i := 1; i < len(fns); i++ {
		for j := i; j > 0 && order(fns[j]) > order(fns[j-1]); j-- {
			fns[j], fns[j-1] = fns[j-1], fns[j]
		}
	}
}
