// SPDX-License-Identifier: MIT
package importance

import "github.com/katalvlaran/lvpra/internal/xerrors"

// Sentinel errors for the importance evaluator.
var (
	// ErrNilDiagram indicates MIF was called with a nil BDD.
	ErrNilDiagram = xerrors.New(xerrors.ValidityError, "importance: diagram is nil")

	// ErrUnknownHandle indicates a traversal reached a handle not live
	// in the diagram's arena.
	ErrUnknownHandle = xerrors.New(xerrors.LogicError, "importance: handle not live in this diagram")

	// ErrUnresolvedModule indicates a module proxy was visited without a
	// registered sub-diagram in the host's ModuleTable.
	ErrUnresolvedModule = xerrors.New(xerrors.LogicError, "importance: module referenced before its sub-diagram was built")

	// ErrZeroOccurrence indicates a derived-factor computation was asked
	// for a basic event whose product-occurrence count is zero, per
	// §4.8's "a basic event whose product-occurrence count is zero is
	// skipped."
	ErrZeroOccurrence = xerrors.New(xerrors.LogicError, "importance: basic event has zero product-occurrence count")
)
