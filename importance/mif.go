// SPDX-License-Identifier: MIT
// Package importance implements the importance evaluator of §4.8/C8:
// Birnbaum marginal importance (MIF = ∂P/∂p_i) for a basic event, via a
// BDD-specific partial-derivative walk or, for non-BDD probability
// paths, a generic toggle-and-subtract fallback — plus the CIF/DIF/RAW/
// RRW factors derived algebraically from MIF.
//
// The BDD walk mirrors the probability package's own bottom-up
// traversal shape (probability/evaluate.go's evalHandle/evalFunction
// dispatch on terminal/module/ITE), generalized to carry a target
// variable order and return a derivative instead of a value.
package importance

import (
	"github.com/katalvlaran/lvpra/arena"
	"github.com/katalvlaran/lvpra/bdd"
	"github.com/katalvlaran/lvpra/probability"
)

// mifKey memoizes a derivative on (node, target variable): unlike
// probability's plain per-handle memo, MIF's result depends on which
// variable the derivative is taken against.
type mifKey struct {
	handle arena.Handle
	target int32
}

// MIF returns d's top-event Birnbaum marginal importance with respect
// to the basic event at pdag variable order target (the same order
// scale probability.Table is keyed by — not the doubled VarIndex/
// VarOrder scale bdd.Node uses internally): ∂P/∂p_target.
func MIF(d *bdd.Diagram, target int32, t probability.Table) (float64, error) {
	if d == nil {
		return 0, ErrNilDiagram
	}
	return mifFunction(d, d.Root, target, t, make(map[mifKey]float64))
}

func mifFunction(d *bdd.Diagram, f bdd.Function, target int32, t probability.Table, memo map[mifKey]float64) (float64, error) {
	v, err := mifHandle(d, f.Handle, target, t, memo)
	if err != nil {
		return 0, err
	}
	if f.Complement {
		return -v, nil
	}
	return v, nil
}

func mifHandle(d *bdd.Diagram, h arena.Handle, target int32, t probability.Table, memo map[mifKey]float64) (float64, error) {
	if h == bdd.TrueHandle {
		return 0, nil // derivative of a constant is zero
	}
	key := mifKey{handle: h, target: target}
	if v, ok := memo[key]; ok {
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
		result, err = mifModule(d, h, n, target, t, memo)
	} else {
		order, orderOK := d.IndexToOrder[n.VarIndex]
		if !orderOK {
			return 0, probability.ErrMissingProbability
		}
		switch {
		case order == target:
			result, err = mifAt(d, n, t)
		case order > target:
			result = 0 // target cannot appear further down an ordered BDD
		default:
			result, err = mifAbove(d, n, order, target, t, memo)
		}
	}
	if err != nil {
		return 0, err
	}
	memo[key] = result
	return result, nil
}

// mifAt is §4.8's "a node at the target variable contributes
// P(high) − P(low′)": the node's own p_target cancels out of the
// derivative of p·P(high) + (1−p)·P(low′), leaving the two branch
// probabilities, neither of which depends on p_target again (ordered
// BDD, each variable appears at most once per path).
func mifAt(d *bdd.Diagram, n bdd.Node, t probability.Table) (float64, error) {
	high, err := probability.EvalHandle(d, n.High, t)
	if err != nil {
		return 0, err
	}
	low, err := probability.EvalFunction(d, bdd.Function{Handle: n.Low, Complement: n.LowComplement}, t)
	if err != nil {
		return 0, err
	}
	return high - low, nil
}

// mifAbove is §4.8's "a node above recurses into both branches with the
// variable's conditional probability": the chain rule applied to
// p·P(high) + (1−p)·P(low′) when p itself does not depend on
// p_target. order is n's own resolved pdag variable order, already
// looked up by the caller.
func mifAbove(d *bdd.Diagram, n bdd.Node, order, target int32, t probability.Table, memo map[mifKey]float64) (float64, error) {
	p, ok := t[order]
	if !ok {
		return 0, probability.ErrMissingProbability
	}
	highDeriv, err := mifHandle(d, n.High, target, t, memo)
	if err != nil {
		return 0, err
	}
	lowDeriv, err := mifFunction(d, bdd.Function{Handle: n.Low, Complement: n.LowComplement}, target, t, memo)
	if err != nil {
		return 0, err
	}
	return p*highDeriv + (1-p)*lowDeriv, nil
}

// mifModule is §4.8's "modules above the variable require a partial
// derivative of the module's probability": the module's own probability
// P_sub plays the role of p in the outer node's ITE, so the chain rule
// gives ∂P(node)/∂p_target = (∂P_sub/∂p_target) · (P(high) − P(low′))
// + P_sub · ∂P(high)/∂p_target + (1 − P_sub) · ∂P(low′)/∂p_target.
// When the module's sub-diagram contains target the branch terms are
// zero (modules are self-contained, per pdag.DetectModules); when it
// does not, the first term is zero and the derivative comes from the
// branches.
func mifModule(d *bdd.Diagram, h arena.Handle, n bdd.Node, target int32, t probability.Table, memo map[mifKey]float64) (float64, error) {
	sub, ok := d.ModuleTable[h]
	if !ok {
		return 0, ErrUnresolvedModule
	}
	subDeriv, err := MIF(sub, target, t)
	if err != nil {
		return 0, err
	}
	pSub, err := probability.Evaluate(sub, t)
	if err != nil {
		return 0, err
	}

	high, err := probability.EvalHandle(d, n.High, t)
	if err != nil {
		return 0, err
	}
	low, err := probability.EvalFunction(d, bdd.Function{Handle: n.Low, Complement: n.LowComplement}, t)
	if err != nil {
		return 0, err
	}
	highDeriv, err := mifHandle(d, n.High, target, t, memo)
	if err != nil {
		return 0, err
	}
	lowDeriv, err := mifFunction(d, bdd.Function{Handle: n.Low, Complement: n.LowComplement}, target, t, memo)
	if err != nil {
		return 0, err
	}
	return subDeriv*(high-low) + pSub*highDeriv + (1-pSub)*lowDeriv, nil
}
