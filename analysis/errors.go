// SPDX-License-Identifier: MIT
package analysis

import "github.com/katalvlaran/lvpra/internal/xerrors"

// Sentinel errors for the top-level orchestration entry point.
var (
	// ErrUnresolvedAlgorithm indicates Settings.Algorithm reached
	// Analyze with a value Validate should have already rejected — a
	// defect in this package rather than caller input.
	ErrUnresolvedAlgorithm = xerrors.New(xerrors.LogicError, "analysis: unhandled algorithm")
)
