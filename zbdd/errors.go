// SPDX-License-Identifier: MIT
package zbdd

import "github.com/katalvlaran/lvpra/internal/xerrors"

// Sentinel errors for the ZBDD engine.
var (
	ErrNilDiagram         = xerrors.New(xerrors.LogicError, "zbdd: nil source diagram")
	ErrUnknownHandle      = xerrors.New(xerrors.LogicError, "zbdd: dereferenced unknown handle")
	ErrStructureInvariant = xerrors.New(xerrors.LogicError, "zbdd: structural invariant violated")
	ErrBadMode            = xerrors.New(xerrors.InvalidSetting, "zbdd: unsupported conversion mode")
)
