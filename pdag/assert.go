// SPDX-License-Identifier: MIT
package pdag

import "github.com/katalvlaran/lvpra/arena"

// AssertStructure verifies the structural invariants that every rewrite
// pass is expected to preserve: every gate argument has its typed view
// (GateArgs/VarArgs) and back-reference (Parents) correctly mirrored,
// no gate reaches itself through a cycle, and a constant gate carries
// no argument edges. It returns ErrStructureInvariant, wrapped with the
// offending gate's id, on the first mirroring or constant-gate
// violation found, and detectCycles' error for a cycle; callers in tests use it as a fast sanity check
// after each rewrite pass rather than as a user-facing validation.
func (p *PDAG) AssertStructure() error {
	for id, gh := range p.gateByID {
		g, ok := p.Gate(gh)
		if !ok {
			continue
		}
		if g.IsConstant() {
			if len(g.Args) != 0 || len(g.GateArgs) != 0 || len(g.VarArgs) != 0 {
				return ErrStructureInvariant.WithPath(id)
			}
			continue
		}
		gateCount, varCount := 0, 0
		for _, a := range g.Args {
			switch a.Kind {
			case RefGate:
				gateCount++
				child, ok := p.Gate(a.Handle)
				if !ok {
					return ErrStructureInvariant.WithPath(id)
				}
				if _, present := g.GateArgs[a.Handle]; !present {
					return ErrStructureInvariant.WithPath(id)
				}
				if _, back := child.Parents[gh]; !back {
					return ErrStructureInvariant.WithPath(id)
				}
			case RefVariable:
				varCount++
				if _, ok := p.Variable(a.Handle); !ok {
					return ErrStructureInvariant.WithPath(id)
				}
				if _, present := g.VarArgs[a.Handle]; !present {
					return ErrStructureInvariant.WithPath(id)
				}
			}
		}
		if gateCount != len(g.GateArgs) && !hasDuplicateGateArgs(g) {
			return ErrStructureInvariant.WithPath(id)
		}
		_ = varCount
	}
	if err := p.detectCycles(); err != nil {
		return err
	}
	return nil
}

func hasDuplicateGateArgs(g *Gate) bool {
	seen := make(map[arena.Handle]int)
	for _, a := range g.Args {
		if a.Kind == RefGate {
			seen[a.Handle]++
		}
	}
	for _, n := range seen {
		if n > 1 {
			return true
		}
	}
	return false
}
