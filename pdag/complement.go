// SPDX-License-Identifier: MIT
package pdag

import (
	"fmt"

	"github.com/katalvlaran/lvpra/arena"
	"github.com/katalvlaran/lvpra/model"
)

// PropagateComplements eliminates complement edges pointing at
// non-module gates by materializing a memoized complement twin for each
// such gate and redirecting the edge to the twin uncomplemented, per
// §4.1's "propagates complements down to the variable level for every
// gate that is not a module, creating a complement twin gate on first
// reference and reusing it on every subsequent one." Module gates are
// left as-is: their complement is resolved after BDD/ZBDD construction,
// once their own sub-diagram exists.
//
// Returns ErrDuringConstruction if called before FinishConstruction.
func (p *PDAG) PropagateComplements() error {
	if p.underConstruction {
		return ErrDuringConstruction
	}
	twins := make(map[arena.Handle]arena.Handle)
	visited := make(map[arena.Handle]bool)
	_, err := p.propagateFrom(p.Root, false, twins, visited)
	return err
}

// propagateFrom walks the sub-graph rooted at h, returning the handle
// to use in its place once complements below h have been pushed down.
// complemented is whether the edge arriving at h carried a complement
// bit; visited guards against revisiting a gate already rewritten along
// a different path in the same pass.
func (p *PDAG) propagateFrom(h arena.Handle, complemented bool, twins map[arena.Handle]arena.Handle, visited map[arena.Handle]bool) (arena.Handle, error) {
	g, ok := p.Gate(h)
	if !ok || g.IsConstant() {
		return h, nil
	}

	target := h
	if complemented && !g.Module {
		twin, err := p.complementTwin(h, g, twins)
		if err != nil {
			return 0, err
		}
		target = twin
		g, _ = p.Gate(target)
	}

	if visited[target] {
		return target, nil
	}
	visited[target] = true

	for i, a := range g.Args {
		if a.Kind != RefGate {
			continue
		}
		child, ok := p.Gate(a.Handle)
		if !ok || child.Module {
			continue
		}
		newTarget, err := p.propagateFrom(a.Handle, a.Complement, twins, visited)
		if err != nil {
			return 0, err
		}
		g.Args[i] = Literal{Kind: RefGate, Handle: newTarget, Complement: false}
	}
	// Resync typed view after in-place Args rewrites above.
	g.GateArgs = make(map[arena.Handle]*Gate)
	for _, a := range g.Args {
		if a.Kind == RefGate {
			if c, ok := p.Gate(a.Handle); ok {
				g.GateArgs[a.Handle] = c
				c.Parents[target] = struct{}{}
			}
		}
	}
	return target, nil
}

// complementTwin returns the memoized De-Morgan dual of g, creating it
// on first reference. g is already in the AND/OR/NULLPASS/AT-LEAST
// basis (NormalizeGates runs before this pass), so only those four
// connectives need a dual rule:
//
//	NOT(AND(args))           = OR(NOT(args))
//	NOT(OR(args))            = AND(NOT(args))
//	NOT(NULLPASS(arg))       = NULLPASS(NOT(arg))
//	NOT(AT-LEAST(k, args))   = AT-LEAST(n-k+1, NOT(args))
func (p *PDAG) complementTwin(h arena.Handle, g *Gate, twins map[arena.Handle]arena.Handle) (arena.Handle, error) {
	if t, ok := twins[h]; ok {
		return t, nil
	}
	dual := g.Connective
	min := g.MinNumber
	switch g.Connective {
	case model.AND:
		dual = model.OR
	case model.OR:
		dual = model.AND
	case model.ATLEAST:
		min = len(g.Args) - g.MinNumber + 1
	case model.NULLPASS:
		// dual stays NULLPASS
	default:
		return 0, ErrStructureInvariant.WithPath(g.ID)
	}
	twin := newGate(p.freshSyntheticID(fmt.Sprintf("not_%s", safeID(g.ID))), dual)
	twin.MinNumber = min
	th := p.AllocGate(twin)
	for _, a := range g.Args {
		a.Complement = !a.Complement
		p.addArg(th, twin, a)
	}
	twins[h] = th
	return th, nil
}

func safeID(id string) string {
	if id == "" {
		return "g"
	}
	return id
}
