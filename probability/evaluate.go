// SPDX-License-Identifier: MIT
// Package probability implements the probability evaluator of §4.7/C7:
// a bottom-up traversal of a BDD that folds each basic event's mean
// probability into its gate's ITE structure, grounded on the same
// Shannon-cofactor shape bdd.Apply itself walks
// (bdd/apply.go's cofactor/findOrAddVertex recursion).
//
// A BDD node's memoized-probability scratch field (bdd.Node's unexported
// prob) has no exported accessor and the arena offers no iteration
// primitive to reset it between runs, so this package keeps its own
// per-call memo keyed by arena.Handle instead of reaching into the BDD's
// internals — the same "local memo map, not a shared mutable field"
// choice already made by zbdd's converter and mocus's runner.
package probability

import (
	"github.com/katalvlaran/lvpra/arena"
	"github.com/katalvlaran/lvpra/bdd"
	"github.com/katalvlaran/lvpra/pdag"
)

// Table maps a pdag.Variable's Order to its mean probability at a fixed
// mission time, the lookup the bottom-up BDD walk needs to resolve a
// node's own p without consulting the PDAG on every visit.
type Table map[int32]float64

// BuildTable evaluates every basic event's Expression at missionTime and
// indexes the results by variable order, matching the order a
// bdd.Diagram's own nodes carry in their VarOrder field.
func BuildTable(p *pdag.PDAG, missionTime float64) (Table, error) {
	if p == nil {
		return nil, ErrNilPDAG
	}
	t := make(Table, p.NumVariables())
	for _, h := range p.Variables() {
		v, ok := p.Variable(h)
		if !ok {
			continue
		}
		mean, err := v.BasicEvent.Expression.Mean(missionTime)
		if err != nil {
			return nil, err
		}
		t[int32(v.Order)] = mean
	}
	return t, nil
}

// Evaluate computes d's top-event probability per §4.7's recurrence:
// P(node) = p·P(high) + (1−p)·P(low′), memoized per node handle, module
// vertices recursing into their own sub-diagram.
func Evaluate(d *bdd.Diagram, t Table) (float64, error) {
	if d == nil {
		return 0, ErrNilDiagram
	}
	return evalFunction(d, d.Root, t, make(map[arena.Handle]float64))
}

// EvalHandle evaluates the probability of the function rooted at h
// (uncomplemented), within d. It is exported so the importance package
// can compute P(high)/P(low′) for an arbitrary interior node without
// duplicating this traversal.
func EvalHandle(d *bdd.Diagram, h arena.Handle, t Table) (float64, error) {
	if d == nil {
		return 0, ErrNilDiagram
	}
	return evalHandle(d, h, t, make(map[arena.Handle]float64))
}

// EvalFunction evaluates f = (handle, complement) within d.
func EvalFunction(d *bdd.Diagram, f bdd.Function, t Table) (float64, error) {
	if d == nil {
		return 0, ErrNilDiagram
	}
	return evalFunction(d, f, t, make(map[arena.Handle]float64))
}

func evalFunction(d *bdd.Diagram, f bdd.Function, t Table, memo map[arena.Handle]float64) (float64, error) {
	p, err := evalHandle(d, f.Handle, t, memo)
	if err != nil {
		return 0, err
	}
	if f.Complement {
		return 1 - p, nil
	}
	return p, nil
}

func evalHandle(d *bdd.Diagram, h arena.Handle, t Table, memo map[arena.Handle]float64) (float64, error) {
	if h == bdd.TrueHandle {
		return 1, nil
	}
	if v, ok := memo[h]; ok {
		return v, nil
	}

	n, ok := d.Node(h)
	if !ok {
		return 0, ErrUnknownHandle
	}

	var (
		result float64
		err    error
	)
	if n.Module {
		result, err = evalModule(d, h, t)
	} else {
		result, err = evalITE(d, n, t, memo)
	}
	if err != nil {
		return 0, err
	}
	memo[h] = result
	return result, nil
}

// evalITE folds one ITE node's probability, applying the p=0/p=1
// coherence short-circuits §4.7 calls for explicitly rather than letting
// the general weighted sum multiply by a zero or one term.
//
// A variable node's VarIndex/VarOrder run over the doubled scale
// bdd/build.go's variableLeaf assigns (idx = pdag order * 2), so the
// table lookup goes through d.IndexToOrder — exactly the map
// bdd.Diagram's own doc comment says exists for "the importance
// evaluator to recover a variable's order from its index" — rather than
// indexing Table by the raw (and differently scaled) VarOrder field.
func evalITE(d *bdd.Diagram, n bdd.Node, t Table, memo map[arena.Handle]float64) (float64, error) {
	order, ok := d.IndexToOrder[n.VarIndex]
	if !ok {
		return 0, ErrMissingProbability
	}
	p, ok := t[order]
	if !ok {
		return 0, ErrMissingProbability
	}
	low := bdd.Function{Handle: n.Low, Complement: n.LowComplement}

	if p == 0 {
		return evalFunction(d, low, t, memo)
	}
	if p == 1 {
		return evalHandle(d, n.High, t, memo)
	}

	high, err := evalHandle(d, n.High, t, memo)
	if err != nil {
		return 0, err
	}
	loP, err := evalFunction(d, low, t, memo)
	if err != nil {
		return 0, err
	}
	return p*high + (1-p)*loP, nil
}

// evalModule pulls a module vertex's probability from its own
// sub-diagram, per §4.7's "module vertices pull their sub-diagram's
// probability recursively."
func evalModule(d *bdd.Diagram, h arena.Handle, t Table) (float64, error) {
	sub, ok := d.ModuleTable[h]
	if !ok {
		return 0, ErrUnresolvedModule
	}
	return Evaluate(sub, t)
}
