// SPDX-License-Identifier: MIT
// Package mocus implements the MOCUS driver of §4.6/C9: the
// alternative PDAG → ZBDD path that extracts minimal cut sets without
// ever building a BDD, per §2's data-flow diagram.
//
// §4.6 describes an iterative top-substitution loop over a
// CutSetContainer: while the container's top-ordered element is a
// non-module gate, every product containing it is expanded by OR-ing
// in that gate's own cut-set family. This package reaches the same
// fixed point through memoized recursive expansion instead — each
// gate's cut-set family is built at most once and reused by every
// ancestor that references it — following the same "recursion instead
// of an explicit iterative pass" substitution already used by
// bdd.FromPDAG for the equivalent bottom-up BDD fold: both visit every
// gate's formula exactly once, in the order its arguments require.
package mocus

import (
	"github.com/katalvlaran/lvpra/arena"
	"github.com/katalvlaran/lvpra/pdag"
	"github.com/katalvlaran/lvpra/zbdd"
)

// CutSetContainer is a zbdd.Diagram specialized to MOCUS: one instance
// is built per PDAG module, its variable space ordering gate-proxy
// literals (transient, substituted away during construction) above the
// real basic-event variables they eventually bottom out in.
type CutSetContainer struct {
	*zbdd.Diagram
	p *pdag.PDAG
}

// Run builds the cut-set (or, in prime-implicant callers, implicant)
// ZBDD for module's formula, per §4.6: non-module sub-gates are
// expanded inline; nested modules get their own recursively-built
// CutSetContainer, attached through the returned diagram's
// ModuleTable exactly as zbdd.FromBDD attaches BDD-derived modules.
func Run(p *pdag.PDAG, module arena.Handle, limitOrder int32) (*zbdd.Diagram, error) {
	if p == nil {
		return nil, ErrNilPDAG
	}
	c := &CutSetContainer{Diagram: zbdd.NewDiagram(), p: p}
	r := &runner{c: c, p: p, memo: make(map[arena.Handle]arena.Handle), limitOrder: limitOrder, topModule: module}

	root, err := r.expand(module)
	if err != nil {
		return nil, err
	}
	c.Root = root
	return c.Diagram, nil
}

// Analyze is the alternative entry point from a freshly preprocessed
// PDAG directly to its top event's ZBDD, bypassing the bdd package
// entirely, matching §2's data-flow diagram's second path.
func Analyze(p *pdag.PDAG, limitOrder int32) (*zbdd.Diagram, error) {
	return Run(p, p.Root, limitOrder)
}

type runner struct {
	c          *CutSetContainer
	p          *pdag.PDAG
	memo       map[arena.Handle]arena.Handle
	limitOrder int32
	topModule  arena.Handle
}

// expand returns the memoized cut-set family for gate gh.
func (r *runner) expand(gh arena.Handle) (arena.Handle, error) {
	if h, ok := r.memo[gh]; ok {
		return h, nil
	}
	g, ok := r.p.Gate(gh)
	if !ok {
		return zbdd.Empty, ErrUnknownGateRef
	}
	if g.IsConstant() {
		value, _ := g.ConstantValue()
		h := zbdd.Empty
		if value {
			h = zbdd.Base
		}
		r.memo[gh] = h
		return h, nil
	}
	if g.Module && gh != r.topModule {
		h, err := r.expandModule(gh, g)
		if err != nil {
			return zbdd.Empty, err
		}
		r.memo[gh] = h
		return h, nil
	}

	acc := zbdd.Base
	op := zbdd.OpAnd
	if g.Connective.String() == "OR" {
		op = zbdd.OpOr
		acc = zbdd.Empty
	}
	for _, lit := range g.Args {
		litH, err := r.expandLiteral(lit)
		if err != nil {
			return zbdd.Empty, err
		}
		acc = r.c.Apply(op, acc, litH, r.limitOrder)
	}
	r.memo[gh] = acc
	return acc, nil
}

func (r *runner) expandLiteral(lit pdag.Literal) (arena.Handle, error) {
	switch lit.Kind {
	case pdag.RefConstant:
		value := lit.Constant != lit.Complement
		if value {
			return zbdd.Base, nil
		}
		return zbdd.Empty, nil
	case pdag.RefVariable:
		v, ok := r.p.Variable(lit.Handle)
		if !ok {
			return zbdd.Empty, ErrUnknownGateRef
		}
		idx := int32(v.Order) * 2
		if lit.Complement {
			idx = -idx - 1
		}
		return r.c.Literal(idx, idx), nil
	case pdag.RefGate:
		h, err := r.expand(lit.Handle)
		if err != nil {
			return zbdd.Empty, err
		}
		if lit.Complement {
			return zbdd.Empty, ErrStructureInvariant.WithPath("mocus does not support complemented gate references")
		}
		return h, nil
	}
	return zbdd.Empty, ErrStructureInvariant
}

func (r *runner) expandModule(gh arena.Handle, g *pdag.Gate) (arena.Handle, error) {
	sub, err := Run(r.p, gh, r.limitOrder)
	if err != nil {
		return zbdd.Empty, err
	}
	order := moduleOrder(r.p, gh)
	proxy := r.c.AllocModuleProxy(-int32(gh), order)
	r.c.ModuleTable[proxy] = sub
	return proxy, nil
}

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
			if v, ok := p.Variable(a.Handle); ok && (!found || v.Order < best) {
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
