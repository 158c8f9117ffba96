// SPDX-License-Identifier: MIT
package pdag

import (
	"github.com/katalvlaran/lvpra/arena"
	"github.com/katalvlaran/lvpra/model"
)

// RemoveNullGates repeatedly promotes the sole argument of a NULL gate
// into each parent (carrying the edge sign) and absorbs Boolean
// constants and duplicate/complement arguments into their parent gate
// using the truth-table rules of §4.1. It is total and in-place; a
// rewrite that turns a gate constant propagates upward lazily: a parent
// absorbs the constant gate on a later worklist iteration, matching
// §4.1's "deferred until the next remove_null_gates pass."
//
// Returns ErrDuringConstruction if called before FinishConstruction.
func (p *PDAG) RemoveNullGates() error {
	if p.underConstruction {
		return ErrDuringConstruction
	}

	worklist := p.allGateHandles()
	changed := true
	for changed {
		changed = false
		for _, gh := range worklist {
			g, ok := p.Gate(gh)
			if !ok || g.IsConstant() {
				continue
			}
			if p.absorbConstants(gh, g) {
				changed = true
			}
			if g.IsConstant() {
				continue
			}
			if p.absorbDuplicatesAndComplements(gh, g) {
				changed = true
			}
			if g.IsConstant() {
				continue
			}
			if g.Connective == model.NULLPASS && !g.Module {
				if p.promoteNullGate(gh, g) {
					changed = true
				}
			}
		}
	}
	return nil
}

func (p *PDAG) allGateHandles() []arena.Handle {
	out := make([]arena.Handle, 0, len(p.gateByID))
	for _, h := range p.gateByID {
		out = append(out, h)
	}
	return out
}

// absorbConstants repeatedly removes one constant argument from g (a
// RefConstant, or a reference to a gate already collapsed to a
// constant), applying the §4.1 Boolean absorption table, until none
// remain or g has collapsed to a constant. Returns whether anything
// changed.
func (p *PDAG) absorbConstants(gh arena.Handle, g *Gate) bool {
	changed := false
	for {
		idx := -1
		value := false
		for i, a := range g.Args {
			if a.Kind == RefConstant {
				idx, value = i, a.Constant != a.Complement // complement flips the constant's truth value
				break
			}
			if a.Kind == RefGate {
				if c, ok := p.Gate(a.Handle); ok && c.IsConstant() {
					cv, _ := c.ConstantValue()
					idx, value = i, cv != a.Complement
					break
				}
			}
		}
		if idx < 0 {
			return changed
		}
		changed = true
		p.removeArgAt(gh, g, idx)

		switch g.Connective {
		case model.AND:
			if !value {
				p.MakeConstant(gh, false)
				return true
			}
			// value == true: dropped, nothing else to do
		case model.OR:
			if value {
				p.MakeConstant(gh, true)
				return true
			}
		case model.NAND:
			if !value {
				p.MakeConstant(gh, true)
				return true
			}
		case model.NOR:
			if value {
				p.MakeConstant(gh, false)
				return true
			}
		case model.XOR:
			// Exactly one other argument remains (XOR is binary):
			// XOR(true,B) = ¬B; XOR(false,B) = B.
			if len(g.Args) != 1 {
				continue
			}
			other := g.Args[0]
			if value {
				other.Complement = !other.Complement
			}
			p.removeArgAt(gh, g, 0)
			g.Connective = model.NULLPASS
			p.addArg(gh, g, other)
		case model.ATLEAST:
			if value {
				g.MinNumber--
			}
			if g.MinNumber <= 0 {
				p.MakeConstant(gh, true)
				return true
			}
			if g.MinNumber > len(g.Args) {
				p.MakeConstant(gh, false)
				return true
			}
		case model.NULLPASS, model.NOT:
			result := value
			if g.Connective == model.NOT {
				result = !value
			}
			p.MakeConstant(gh, result)
			return true
		}
	}
}

// absorbDuplicatesAndComplements collapses identical and complementary
// argument pairs, per §4.1's duplicate/complement absorption rules. A
// duplicate argument is dropped (an XOR of two equal arguments becomes
// FALSE). A complementary pair is removed and turns AND/NOR into FALSE
// and OR/XOR/NAND into TRUE; for AT-LEAST it lowers k by one. NOT/NULL
// are unary. This pass runs before NormalizeGates, so NAND/NOR gates
// still reach it.
func (p *PDAG) absorbDuplicatesAndComplements(gh arena.Handle, g *Gate) bool {
	changed := false
	for {
		dupIdx, compIdx, matchIdx := findDuplicateOrComplement(g.Args)
		switch {
		case dupIdx >= 0:
			p.removeArgAt(gh, g, dupIdx)
			changed = true
			if g.Connective == model.XOR {
				p.MakeConstant(gh, false)
				return true
			}
		case compIdx >= 0:
			p.removeArgAt(gh, g, maxInt(compIdx, matchIdx))
			p.removeArgAt(gh, g, minInt(compIdx, matchIdx))
			switch g.Connective {
			case model.AND, model.NOR:
				p.MakeConstant(gh, false)
			case model.OR, model.XOR, model.NAND:
				p.MakeConstant(gh, true)
			case model.ATLEAST:
				g.MinNumber--
				if g.MinNumber <= 0 {
					p.MakeConstant(gh, true)
				} else if g.MinNumber > len(g.Args) {
					p.MakeConstant(gh, false)
				}
			}
			changed = true
			if g.IsConstant() {
				return true
			}
		default:
			return changed
		}
	}
}

// findDuplicateOrComplement scans args for the first pair that is
// either an exact duplicate (dupIdx set, others -1) or a complementary
// pair referencing the same target (compIdx/matchIdx set).
func findDuplicateOrComplement(args []Literal) (dupIdx, compIdx, matchIdx int) {
	dupIdx, compIdx, matchIdx = -1, -1, -1
	for i := 0; i < len(args); i++ {
		if args[i].Kind == RefConstant {
			continue
		}
		for j := i + 1; j < len(args); j++ {
			if args[j].Kind != args[i].Kind || args[j].Handle != args[i].Handle {
				continue
			}
			if args[j].Complement == args[i].Complement {
				return j, -1, -1
			}
			return -1, i, j
		}
	}
	return -1, -1, -1
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// promoteNullGate replaces every parent reference to the NULL gate gh
// with its sole argument, composing complement signs, then detaches gh
// (it becomes parentless and is left for a future sweep to reclaim).
// Returns whether any parent was rewritten.
func (p *PDAG) promoteNullGate(gh arena.Handle, g *Gate) bool {
	if len(g.Args) != 1 || len(g.Parents) == 0 {
		return false
	}
	sole := g.Args[0]
	parents := make([]arena.Handle, 0, len(g.Parents))
	for ph := range g.Parents {
		parents = append(parents, ph)
	}
	for _, ph := range parents {
		parent, ok := p.Gate(ph)
		if !ok {
			continue
		}
		for i, a := range parent.Args {
			if a.Kind == RefGate && a.Handle == gh {
				promoted := sole
				promoted.Complement = sole.Complement != a.Complement
				p.removeArgAt(ph, parent, i)
				p.addArg(ph, parent, promoted)
				break
			}
		}
	}
	return true
}
