// SPDX-License-Identifier: MIT
package pdag

import (
	"github.com/katalvlaran/lvpra/arena"
	"github.com/katalvlaran/lvpra/model"
)

// MakeConstant transitions the gate at gh to NullState (value=false) or
// UnityState (value=true). Per §4.9, the transition is one-way per
// lifetime of the gate: once constant, a gate never returns to
// StateNormal — a repeat call is a no-op. Arguments are cleared and the
// connective is set to NULLPASS, so a constant gate "has no live
// argument edges except a single Boolean constant and a type of
// NULL-pass."
func (p *PDAG) MakeConstant(gh arena.Handle, value bool) {
	g, ok := p.Gate(gh)
	if !ok || g.State != StateNormal {
		return
	}
	for h := range g.GateArgs {
		if child, ok := p.Gate(h); ok {
			delete(child.Parents, gh)
		}
	}
	g.Args = nil
	g.GateArgs = make(map[arena.Handle]*Gate)
	g.VarArgs = make(map[arena.Handle]*Variable)
	g.Connective = model.NULLPASS
	if value {
		g.State = StateUnity
	} else {
		g.State = StateNull
	}
}

// IsConstant reports whether g has collapsed to a Boolean constant.
func (g *Gate) IsConstant() bool { return g.State != StateNormal }

// ConstantValue returns g's constant value; ok is false if g is not
// constant.
func (g *Gate) ConstantValue() (value, ok bool) {
	switch g.State {
	case StateUnity:
		return true, true
	case StateNull:
		return false, true
	default:
		return false, false
	}
}
