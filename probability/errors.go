// SPDX-License-Identifier: MIT
package probability

import "github.com/katalvlaran/lvpra/internal/xerrors"

// Sentinel errors for the probability evaluator.
var (
	// ErrNilPDAG indicates BuildTable was called with a nil graph.
	ErrNilPDAG = xerrors.New(xerrors.ValidityError, "probability: pdag is nil")

	// ErrNilDiagram indicates Evaluate was called with a nil BDD.
	ErrNilDiagram = xerrors.New(xerrors.ValidityError, "probability: diagram is nil")

	// ErrUnknownHandle indicates a traversal reached a handle not live
	// in the diagram's arena.
	ErrUnknownHandle = xerrors.New(xerrors.LogicError, "probability: handle not live in this diagram")

	// ErrUnresolvedModule indicates a module proxy was visited without a
	// registered sub-diagram in the host's ModuleTable.
	ErrUnresolvedModule = xerrors.New(xerrors.LogicError, "probability: module referenced before its sub-diagram was built")

	// ErrMissingProbability indicates a variable's order has no entry in
	// the probability table, meaning BuildTable was run against a
	// different PDAG than the one the BDD was compiled from.
	ErrMissingProbability = xerrors.New(xerrors.LogicError, "probability: no probability entry for variable order")
)
