// SPDX-License-Identifier: MIT
package bdd

import "github.com/katalvlaran/lvpra/arena"

// AssertStructure runs §4.4's post-construction "Structure test": every
// terminal-less (non-terminal) node carries a positive handle by
// construction, variable order strictly increases from a node to each
// of its non-terminal children, and no node's high/low pair would
// collapse under the reduction rule findOrAddVertex already applies
// (a defect here means a bypass was missed during construction, not a
// user input problem).
func (d *Diagram) AssertStructure() error {
	visited := make(map[arena.Handle]bool)
	return d.assertFrom(d.Root.Handle, visited)
}

func (d *Diagram) assertFrom(h arena.Handle, visited map[arena.Handle]bool) error {
	if h == TrueHandle || visited[h] {
		return nil
	}
	visited[h] = true
	n, ok := d.Node(h)
	if !ok {
		return ErrUnknownHandle
	}
	if !n.Module && n.High == n.Low && !n.LowComplement {
		return ErrStructureInvariant
	}
	if n.High != TrueHandle {
		hn, ok := d.Node(n.High)
		if !ok {
			return ErrUnknownHandle
		}
		if hn.VarOrder <= n.VarOrder {
			return ErrStructureInvariant
		}
		if err := d.assertFrom(n.High, visited); err != nil {
			return err
		}
	}
	if n.Low != TrueHandle {
		ln, ok := d.Node(n.Low)
		if !ok {
			return ErrUnknownHandle
		}
		if ln.VarOrder <= n.VarOrder {
			return ErrStructureInvariant
		}
		if err := d.assertFrom(n.Low, visited); err != nil {
			return err
		}
	}
	return nil
}
