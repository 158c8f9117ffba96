// SPDX-License-Identifier: MIT
package pdag

import "github.com/katalvlaran/lvpra/internal/xerrors"

// Sentinel errors for PDAG construction and rewrite passes.
var (
	// ErrNilModel indicates Build was called with a nil or empty model.
	ErrNilModel = xerrors.New(xerrors.ValidityError, "pdag: model has no gates")

	// ErrBadArity indicates NULL/NOT received other than one argument,
	// or XOR received other than two.
	ErrBadArity = xerrors.New(xerrors.ValidityError, "pdag: connective has wrong argument arity")

	// ErrCyclicGate indicates a gate reference cycle was found while
	// converting the model (gates must form a DAG).
	ErrCyclicGate = xerrors.New(xerrors.ValidityError, "pdag: cyclic gate reference")

	// ErrUnknownGateRef indicates a FormulaArg referenced a gate id not
	// present in the model.
	ErrUnknownGateRef = xerrors.New(xerrors.ValidityError, "pdag: reference to unknown gate")

	// ErrDuringConstruction indicates a rewrite pass requiring a
	// finished PDAG was invoked while construction was still in
	// progress, per §4.1: "fails with logic_error only if called during
	// construction."
	ErrDuringConstruction = xerrors.New(xerrors.LogicError, "pdag: rewrite pass invoked during construction")

	// ErrStructureInvariant indicates AssertStructure found a violated
	// PDAG invariant — a defect, not a user input problem.
	ErrStructureInvariant = xerrors.New(xerrors.LogicError, "pdag: structural invariant violated")

	// ErrConstantGateMutated indicates an attempt to add or remove an
	// argument edge on a gate already collapsed to a Boolean constant,
	// per §4.9's one-way constant-gate state transition.
	ErrConstantGateMutated = xerrors.New(xerrors.LogicError, "pdag: constant gate cannot gain argument edges")
)
