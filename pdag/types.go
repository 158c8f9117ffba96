// SPDX-License-Identifier: MIT
// Package pdag implements the Propositional Directed Acyclic Graph
// preprocessor of §4.1/C2: it lowers the external model.Model into a
// normalized, indexed, coherent-when-possible graph of Gate and Variable
// vertices, and discovers independent modules to enable divide-and-
// conquer analysis.
//
// The package follows core's one-file-per-concern split
// (core/methods.go, core/methods_vertices.go): types here, each rewrite
// pass in its own file (build.go, null_gates.go, normalize.go,
// complement.go, modules.go, order.go), with a shared assertion pass in
// assert.go and the §4.9 gate-state machine in state.go.
package pdag

import (
	"github.com/katalvlaran/lvpra/arena"
	"github.com/katalvlaran/lvpra/model"
)

// RefKind discriminates what a Literal points at.
type RefKind int

const (
	RefVariable RefKind = iota
	RefGate
	RefConstant
)

// Literal is one signed argument edge: a reference plus its complement
// bit, per §3's "sign encodes polarity" convention.
type Literal struct {
	Kind       RefKind
	Handle     arena.Handle // meaningful for RefVariable/RefGate
	Constant   bool         // meaningful for RefConstant
	Complement bool
}

// Variable is a leaf node: an integer order (topological rank in the
// chosen variable ordering) and a back-pointer to the basic event it
// represents.
type Variable struct {
	ID         string
	Order      int
	BasicEvent *model.BasicEvent
}

// GateState is the §4.9 state machine: {Normal, NullState, UnityState}.
type GateState int

const (
	StateNormal GateState = iota
	StateNull             // collapsed to constant FALSE
	StateUnity            // collapsed to constant TRUE
)

// Gate is an internal PDAG vertex carrying a connective, its arguments,
// and the scratch fields the rewrite passes use.
type Gate struct {
	// ID is the external gate id this vertex was built from; generated
	// gates (complement twins, CCF proxies, lowered CARDINALITY/IFF/
	// IMPLY expansions) carry a synthesized id.
	ID string

	Connective model.Connective
	MinNumber  int // AT-LEAST k / CARDINALITY min
	MaxNumber  int // CARDINALITY max

	Args []Literal

	// Typed argument views, kept in sync with Args by the mutation
	// helpers in this package — never populated directly.
	GateArgs map[arena.Handle]*Gate
	VarArgs  map[arena.Handle]*Variable

	Module   bool
	Coherent bool
	State    GateState

	// Scratch fields for stamp-based traversal (§4.1 detect_modules,
	// §9's mark-generation guidance). Cleared or flipped between passes
	// by each pass itself; there is no global mark-generation counter
	// in this implementation since every pass here owns its full
	// traversal rather than interleaving with another pass's marks.
	Mark                 bool
	EnterTime, ExitTime  int
	MinTime, MaxTime     int
	Descendant, Ancestor arena.Handle

	// Parents is a weak back-reference set: used for traversal only,
	// never retained against the gate arena, per §9's "Cyclic back-
	// references in PDAG."
	Parents map[arena.Handle]struct{}
}

func newGate(id string, conn model.Connective) *Gate {
	return &Gate{
		ID:         id,
		Connective: conn,
		GateArgs:   make(map[arena.Handle]*Gate),
		VarArgs:    make(map[arena.Handle]*Variable),
		Parents:    make(map[arena.Handle]struct{}),
		Coherent:   true,
	}
}

// PDAG is the normalized graph produced by Build and mutated in place
// by the rewrite passes.
type PDAG struct {
	gates *arena.Arena[*Gate]
	vars  *arena.Arena[*Variable]

	gateByID map[string]arena.Handle
	varByID  map[string]arena.Handle

	// Root is the top gate; RootComplement records whether the top
	// event itself is referenced complemented (rare, but legal per §3).
	Root           arena.Handle
	RootComplement bool

	underConstruction bool
	nextSynthetic     int
}

// GateHandle returns the handle of the gate with the given external id,
// or 0, false if none exists yet.
func (p *PDAG) GateHandle(id string) (arena.Handle, bool) {
	h, ok := p.gateByID[id]
	return h, ok
}

// Gate dereferences h. ok is false for a released or out-of-range
// handle.
func (p *PDAG) Gate(h arena.Handle) (*Gate, bool) {
	g, ok := p.gates.Get(h)
	if !ok {
		return nil, false
	}
	return g, true
}

// Variable dereferences h.
func (p *PDAG) Variable(h arena.Handle) (*Variable, bool) {
	v, ok := p.vars.Get(h)
	if !ok {
		return nil, false
	}
	return v, true
}

// Variables returns every variable handle in the graph, in no
// particular order (map iteration; not topologically ordered — see
// AssignVariableOrder).
func (p *PDAG) Variables() []arena.Handle {
	out := make([]arena.Handle, 0, len(p.varByID))
	for _, h := range p.varByID {
		out = append(out, h)
	}
	return out
}

// NumVariables reports the number of distinct basic events in the graph.
func (p *PDAG) NumVariables() int { return len(p.varByID) }

// addArg appends a literal to g's Args and updates the typed views and
// the target's weak parent set. gh is g's own handle, needed to record
// the back-reference.
func (p *PDAG) addArg(gh arena.Handle, g *Gate, lit Literal) {
	g.Args = append(g.Args, lit)
	switch lit.Kind {
	case RefGate:
		if child, ok := p.Gate(lit.Handle); ok {
			g.GateArgs[lit.Handle] = child
			child.Parents[gh] = struct{}{}
		}
	case RefVariable:
		if v, ok := p.Variable(lit.Handle); ok {
			g.VarArgs[lit.Handle] = v
		}
	}
}

// removeArgAt removes the literal at index i from g's Args and, for a
// gate argument, drops the back-reference if no other argument slot
// still points at the same child.
func (p *PDAG) removeArgAt(gh arena.Handle, g *Gate, i int) Literal {
	lit := g.Args[i]
	g.Args = append(g.Args[:i], g.Args[i+1:]...)
	if lit.Kind == RefGate {
		if !g.hasGateArg(lit.Handle) {
			delete(g.GateArgs, lit.Handle)
			if child, ok := p.Gate(lit.Handle); ok {
				delete(child.Parents, gh)
			}
		}
	} else if lit.Kind == RefVariable {
		if !g.hasVarArg(lit.Handle) {
			delete(g.VarArgs, lit.Handle)
		}
	}
	return lit
}

func (g *Gate) hasGateArg(h arena.Handle) bool {
	for _, a := range g.Args {
		if a.Kind == RefGate && a.Handle == h {
			return true
		}
	}
	return false
}

func (g *Gate) hasVarArg(h arena.Handle) bool {
	for _, a := range g.Args {
		if a.Kind == RefVariable && a.Handle == h {
			return true
		}
	}
	return false
}

// connectiveIsCoherent reports whether a gate's own connective could
// ever appear in a coherent sub-DAG: AND/OR/NULLPASS/ATLEAST may be,
// anything else (including NOT/NAND/NOR/XOR, which carry an explicit
// negation) may not, independent of its arguments' complement edges
// (checked separately).
func (g *Gate) connectiveIsCoherent() bool {
	switch g.Connective {
	case model.AND, model.OR, model.NULLPASS, model.ATLEAST:
		return true
	default:
		return false
	}
}
