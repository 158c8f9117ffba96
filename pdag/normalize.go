// SPDX-License-Identifier: MIT
package pdag

import (
	"github.com/katalvlaran/lvpra/arena"
	"github.com/katalvlaran/lvpra/model"
)

// NormalizeGates rewrites every gate to the AND/OR/NULLPASS basis §4.1
// requires before BDD/ZBDD construction: NAND and NOR flip to AND/OR
// with the parent-edge complement absorbed (De Morgan), XOR expands to
// A·¬B + ¬A·B, IFF expands to its complement, IMPLY expands to ¬A + B,
// AT-LEAST(k,N) with k>1 expands recursively via Shannon decomposition
// on its first argument, and CARDINALITY lowers to a conjunction of
// AT-LEAST gates. A NOT gate becomes a NULLPASS gate over its
// complemented argument.
//
// Returns ErrDuringConstruction if called before FinishConstruction.
func (p *PDAG) NormalizeGates() error {
	if p.underConstruction {
		return ErrDuringConstruction
	}
	for _, gh := range p.allGateHandles() {
		if err := p.normalizeGate(gh); err != nil {
			return err
		}
	}
	return nil
}

func (p *PDAG) normalizeGate(gh arena.Handle) error {
	g, ok := p.Gate(gh)
	if !ok || g.IsConstant() {
		return nil
	}

	switch g.Connective {
	case model.AND, model.OR, model.NULLPASS:
		return nil

	case model.NOT:
		// Fold the sole argument's sign and collapse to NULLPASS; any
		// parent edge referencing gh keeps its own complement bit, so
		// the net effect on downstream readers is unchanged.
		arg := g.Args[0]
		arg.Complement = !arg.Complement
		g.Args = nil
		g.GateArgs = make(map[arena.Handle]*Gate)
		g.VarArgs = make(map[arena.Handle]*Variable)
		g.Connective = model.NULLPASS
		p.addArg(gh, g, arg)
		return nil

	case model.NAND:
		g.Connective = model.AND
		return p.negateGate(gh, g)

	case model.NOR:
		g.Connective = model.OR
		return p.negateGate(gh, g)

	case model.XOR:
		if len(g.Args) != 2 {
			return ErrBadArity.WithPath(g.ID)
		}
		a, b := g.Args[0], g.Args[1]
		left := newGate(p.freshSyntheticID("xor_l"), model.AND)
		lh := p.AllocGate(left)
		p.addArg(lh, left, a)
		notB := b
		notB.Complement = !notB.Complement
		p.addArg(lh, left, notB)

		right := newGate(p.freshSyntheticID("xor_r"), model.AND)
		rh := p.AllocGate(right)
		notA := a
		notA.Complement = !notA.Complement
		p.addArg(rh, right, notA)
		p.addArg(rh, right, b)

		g.Args = nil
		g.GateArgs = make(map[arena.Handle]*Gate)
		g.VarArgs = make(map[arena.Handle]*Variable)
		g.Connective = model.OR
		p.addArg(gh, g, Literal{Kind: RefGate, Handle: lh})
		p.addArg(gh, g, Literal{Kind: RefGate, Handle: rh})
		return p.normalizeGate(lh) // newly synthesized AND gates need no further lowering, but keep recursion symmetric with caller ordering

	case model.IFF:
		if len(g.Args) != 2 {
			return ErrBadArity.WithPath(g.ID)
		}
		// A IFF B == NOT(A XOR B); lower to XOR first, then flip sign.
		g.Connective = model.XOR
		if err := p.normalizeGate(gh); err != nil {
			return err
		}
		return p.negateGate(gh, g)

	case model.IMPLY:
		if len(g.Args) != 2 {
			return ErrBadArity.WithPath(g.ID)
		}
		a, b := g.Args[0], g.Args[1]
		notA := a
		notA.Complement = !notA.Complement
		g.Args = nil
		g.GateArgs = make(map[arena.Handle]*Gate)
		g.VarArgs = make(map[arena.Handle]*Variable)
		g.Connective = model.OR
		p.addArg(gh, g, notA)
		p.addArg(gh, g, b)
		return nil

	case model.CARDINALITY:
		return p.lowerCardinality(gh, g)

	case model.ATLEAST:
		return p.lowerAtLeast(gh, g)
	}
	return nil
}

// negateGate flips g's effective sign by complementing every parent
// edge that targets gh. Used after NAND/NOR/IFF are rewritten to their
// De-Morgan-dual connective.
func (p *PDAG) negateGate(gh arena.Handle, g *Gate) error {
	for ph := range g.Parents {
		parent, ok := p.Gate(ph)
		if !ok {
			continue
		}
		for i, a := range parent.Args {
			if a.Kind == RefGate && a.Handle == gh {
				parent.Args[i].Complement = !parent.Args[i].Complement
			}
		}
	}
	if gh == p.Root {
		p.RootComplement = !p.RootComplement
	}
	return nil
}

// lowerCardinality rewrites a CARDINALITY(min,max,args) gate into the
// conjunction of an AT-LEAST(min) gate and the negation of an
// AT-LEAST(max+1) gate over the same arguments, then lowers both.
func (p *PDAG) lowerCardinality(gh arena.Handle, g *Gate) error {
	args := g.Args
	min, max := g.MinNumber, g.MaxNumber

	lowerGate := newGate(p.freshSyntheticID("card_lo"), model.ATLEAST)
	lh := p.AllocGate(lowerGate)
	lowerGate.MinNumber = min
	for _, a := range args {
		p.addArg(lh, lowerGate, a)
	}

	g.Args = nil
	g.GateArgs = make(map[arena.Handle]*Gate)
	g.VarArgs = make(map[arena.Handle]*Variable)

	if max >= len(args) {
		// No upper bound binds; CARDINALITY degenerates to AT-LEAST(min).
		g.Connective = model.NULLPASS
		p.addArg(gh, g, Literal{Kind: RefGate, Handle: lh})
		return p.normalizeGate(lh)
	}

	upperGate := newGate(p.freshSyntheticID("card_hi"), model.ATLEAST)
	uh := p.AllocGate(upperGate)
	upperGate.MinNumber = max + 1
	for _, a := range args {
		p.addArg(uh, upperGate, a)
	}

	g.Connective = model.AND
	p.addArg(gh, g, Literal{Kind: RefGate, Handle: lh})
	p.addArg(gh, g, Literal{Kind: RefGate, Handle: uh, Complement: true})

	if err := p.normalizeGate(lh); err != nil {
		return err
	}
	return p.normalizeGate(uh)
}

// lowerAtLeast expands AT-LEAST(k,[x1..xn]) for k>1 via the recurrence
// @(k,[x,rest]) = x·@(k-1,rest) + @(k,rest), bottoming out at k==1 (a
// plain OR) or k==len(args) (a plain AND).
func (p *PDAG) lowerAtLeast(gh arena.Handle, g *Gate) error {
	k := g.MinNumber
	args := g.Args
	n := len(args)

	if k <= 0 {
		p.MakeConstant(gh, true)
		return nil
	}
	if k > n {
		p.MakeConstant(gh, false)
		return nil
	}
	if k == 1 {
		g.Args = nil
		g.GateArgs = make(map[arena.Handle]*Gate)
		g.VarArgs = make(map[arena.Handle]*Variable)
		g.Connective = model.OR
		for _, a := range args {
			p.addArg(gh, g, a)
		}
		return nil
	}
	if k == n {
		g.Args = nil
		g.GateArgs = make(map[arena.Handle]*Gate)
		g.VarArgs = make(map[arena.Handle]*Variable)
		g.Connective = model.AND
		for _, a := range args {
			p.addArg(gh, g, a)
		}
		return nil
	}

	head := args[0]
	rest := args[1:]

	withHead := newGate(p.freshSyntheticID("atleast_with"), model.AND)
	wh := p.AllocGate(withHead)
	p.addArg(wh, withHead, head)
	recHead := newGate(p.freshSyntheticID("atleast_rec"), model.ATLEAST)
	rh := p.AllocGate(recHead)
	recHead.MinNumber = k - 1
	for _, a := range rest {
		p.addArg(rh, recHead, a)
	}
	p.addArg(wh, withHead, Literal{Kind: RefGate, Handle: rh})

	without := newGate(p.freshSyntheticID("atleast_without"), model.ATLEAST)
	oh := p.AllocGate(without)
	without.MinNumber = k
	for _, a := range rest {
		p.addArg(oh, without, a)
	}

	g.Args = nil
	g.GateArgs = make(map[arena.Handle]*Gate)
	g.VarArgs = make(map[arena.Handle]*Variable)
	g.Connective = model.OR
	p.addArg(gh, g, Literal{Kind: RefGate, Handle: wh})
	p.addArg(gh, g, Literal{Kind: RefGate, Handle: oh})

	if err := p.normalizeGate(rh); err != nil {
		return err
	}
	return p.normalizeGate(oh)
}
