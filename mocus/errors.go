// SPDX-License-Identifier: MIT
package mocus

import "github.com/katalvlaran/lvpra/internal/xerrors"

// Sentinel errors for the MOCUS driver.
var (
	ErrNilPDAG            = xerrors.New(xerrors.ValidityError, "mocus: pdag is nil")
	ErrUnknownGateRef     = xerrors.New(xerrors.LogicError, "mocus: reference to unknown gate")
	ErrStructureInvariant = xerrors.New(xerrors.LogicError, "mocus: structural invariant violated")
)
