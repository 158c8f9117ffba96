// SPDX-License-Identifier: MIT
package bdd

import "github.com/katalvlaran/lvpra/internal/xerrors"

// Sentinel errors for BDD construction and structural assertion.
var (
	// ErrNilPDAG indicates FromPDAG was called with a nil graph.
	ErrNilPDAG = xerrors.New(xerrors.ValidityError, "bdd: pdag is nil")

	// ErrUnresolvedModule indicates FromPDAG reached a gate flagged as a
	// module whose sub-diagram was not yet registered — a defect in the
	// reverse-topological conversion order.
	ErrUnresolvedModule = xerrors.New(xerrors.LogicError, "bdd: module referenced before its sub-diagram was built")

	// ErrStructureInvariant indicates AssertStructure found a violated
	// BDD invariant: non-increasing variable order along a path, or a
	// collapsible node left unreduced.
	ErrStructureInvariant = xerrors.New(xerrors.LogicError, "bdd: structural invariant violated")

	// ErrUnknownHandle indicates an operation was given a handle not
	// live in this diagram's arena.
	ErrUnknownHandle = xerrors.New(xerrors.LogicError, "bdd: handle not live in this diagram")
)
