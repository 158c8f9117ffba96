// SPDX-License-Identifier: MIT
package pdag

import (
	"fmt"

	"github.com/katalvlaran/lvpra/arena"
	"github.com/katalvlaran/lvpra/internal/xerrors"
	"github.com/katalvlaran/lvpra/model"
)

// New returns an empty PDAG under construction. Most callers use Build;
// New is exported for tests and for pdag/bdd/zbdd packages that
// construct small graphs by hand.
func New() *PDAG {
	return &PDAG{
		gates:             arena.New[*Gate](),
		vars:              arena.New[*Variable](),
		gateByID:          make(map[string]arena.Handle),
		varByID:           make(map[string]arena.Handle),
		underConstruction: true,
	}
}

// NewGate constructs a detached Gate; callers insert it with AllocGate.
func NewGate(id string, conn model.Connective) *Gate { return newGate(id, conn) }

// AllocGate inserts g into the PDAG and returns its handle, indexing it
// by ID if non-empty.
func (p *PDAG) AllocGate(g *Gate) arena.Handle {
	h := p.gates.Alloc(g)
	if g.ID != "" {
		p.gateByID[g.ID] = h
	}
	return h
}

func (p *PDAG) allocGate(g *Gate) arena.Handle { return p.AllocGate(g) }

// AddArg appends lit as an argument of the gate at gh, updating typed
// views and weak parent back-references. It is a logic error to call
// AddArg on a gate that has already collapsed to a constant.
func (p *PDAG) AddArg(gh arena.Handle, lit Literal) error {
	g, ok := p.Gate(gh)
	if !ok {
		return ErrUnknownGateRef
	}
	if g.IsConstant() {
		return ErrConstantGateMutated
	}
	p.addArg(gh, g, lit)
	return nil
}

// EnsureVariable returns the handle for the basic event id, creating it
// (and validating its mean probability) on first reference.
func (p *PDAG) EnsureVariable(id string, expr model.Expression) (arena.Handle, error) {
	return p.ensureVariable(id, expr)
}

func (p *PDAG) ensureVariable(id string, expr model.Expression) (arena.Handle, error) {
	if h, ok := p.varByID[id]; ok {
		return h, nil
	}
	if expr != nil {
		mean, err := expr.Mean(0)
		if err != nil {
			return 0, err
		}
		if mean < 0 || mean > 1 {
			return 0, model.ErrOutOfRangeProbability.WithPath(id)
		}
	}
	v := &Variable{ID: id, BasicEvent: &model.BasicEvent{ID: id, Expression: expr}}
	h := p.vars.Alloc(v)
	p.varByID[id] = h
	return h, nil
}

// SetRoot designates h as the top gate.
func (p *PDAG) SetRoot(h arena.Handle) { p.Root = h }

// FinishConstruction clears the under-construction flag, enabling
// RemoveNullGates et al. to run; Build calls this automatically.
func (p *PDAG) FinishConstruction() { p.underConstruction = false }

func (p *PDAG) freshSyntheticID(prefix string) string {
	p.nextSynthetic++
	return fmt.Sprintf("__%s_%d__", prefix, p.nextSynthetic)
}

// Build converts model.Model into a PDAG: it deduplicates shared gates
// and basic events via id maps, substitutes CCF proxies, turns inline
// sub-formulas into synthesized gates, and rejects arity violations,
// unknown references, and gate cycles. IFF/IMPLY/CARDINALITY gates are
// kept as they are here and lowered later by NormalizeGates.
func Build(m model.Model) (*PDAG, error) {
	if len(m.Gates) == 0 {
		return nil, ErrNilModel
	}
	p := New()

	for _, mg := range m.Gates {
		if _, exists := p.gateByID[mg.ID]; exists {
			return nil, model.ErrDuplicateID.WithPath(mg.ID)
		}
		p.AllocGate(newGate(mg.ID, mg.Formula.Connective))
	}

	proxyForEvent, err := p.buildCCFProxies(m)
	if err != nil {
		return nil, err
	}

	for _, mg := range m.Gates {
		gh := p.gateByID[mg.ID]
		g, _ := p.Gate(gh)
		g.Connective = mg.Formula.Connective
		g.MinNumber = mg.Formula.MinNumber
		g.MaxNumber = mg.Formula.MaxNumber
		if err := checkArity(g.Connective, len(mg.Formula.Args)); err != nil {
			return nil, err.WithPath(mg.ID)
		}
		for _, arg := range mg.Formula.Args {
			lit, err := p.resolveArg(arg, proxyForEvent)
			if err != nil {
				return nil, err
			}
			p.addArg(gh, g, lit)
		}
	}

	root, ok := p.gateByID[m.TopGate]
	if !ok {
		if m.TopGate == "" {
			root = p.gateByID[m.Gates[0].ID]
		} else {
			return nil, ErrUnknownGateRef.WithPath(m.TopGate)
		}
	}
	p.Root = root

	if err := p.detectCycles(); err != nil {
		return nil, err
	}

	p.underConstruction = false
	return p, nil
}

func (p *PDAG) resolveArg(arg model.FormulaArg, proxyForEvent map[string]arena.Handle) (Literal, error) {
	switch arg.Kind {
	case model.HouseEventArg:
		value := arg.HouseEvent.Value
		return Literal{Kind: RefConstant, Constant: value, Complement: arg.Complement}, nil

	case model.BasicEventArg:
		id := arg.BasicEvent.ID
		if ph, ok := proxyForEvent[id]; ok {
			return Literal{Kind: RefGate, Handle: ph, Complement: arg.Complement}, nil
		}
		vh, err := p.ensureVariable(id, arg.BasicEvent.Expression)
		if err != nil {
			return Literal{}, err
		}
		return Literal{Kind: RefVariable, Handle: vh, Complement: arg.Complement}, nil

	case model.GateArg:
		gh, ok := p.gateByID[arg.GateID]
		if !ok {
			return Literal{}, ErrUnknownGateRef.WithPath(arg.GateID)
		}
		return Literal{Kind: RefGate, Handle: gh, Complement: arg.Complement}, nil

	case model.InlineFormulaArg:
		id := p.freshSyntheticID("inline")
		g := newGate(id, arg.Inline.Connective)
		g.MinNumber = arg.Inline.MinNumber
		g.MaxNumber = arg.Inline.MaxNumber
		if err := checkArity(g.Connective, len(arg.Inline.Args)); err != nil {
			return Literal{}, err.WithPath(id)
		}
		gh := p.AllocGate(g)
		for _, sub := range arg.Inline.Args {
			lit, err := p.resolveArg(sub, proxyForEvent)
			if err != nil {
				return Literal{}, err
			}
			p.addArg(gh, g, lit)
		}
		return Literal{Kind: RefGate, Handle: gh, Complement: arg.Complement}, nil

	default:
		return Literal{}, ErrUnknownGateRef
	}
}

func checkArity(conn model.Connective, n int) *xerrors.Error {
	switch conn {
	case model.NOT, model.NULLPASS:
		if n != 1 {
			return ErrBadArity
		}
	case model.XOR, model.IFF, model.IMPLY:
		if n != 2 {
			return ErrBadArity
		}
	default:
		if n < 1 {
			return ErrBadArity
		}
	}
	return nil
}

func (p *PDAG) detectCycles() error {
	const (
		white = iota
		gray
		black
	)
	color := make(map[arena.Handle]int)
	var visit func(h arena.Handle) error
	visit = func(h arena.Handle) error {
		switch color[h] {
		case gray:
			return ErrCyclicGate
		case black:
			return nil
		}
		color[h] = gray
		g, ok := p.Gate(h)
		if ok {
			for child := range g.GateArgs {
				if err := visit(child); err != nil {
					return err
				}
			}
		}
		color[h] = black
		return nil
	}
	return visit(p.Root)
}
