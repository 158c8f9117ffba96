// SPDX-License-Identifier: MIT
package zbdd

import (
	"github.com/katalvlaran/lvpra/arena"
	"github.com/katalvlaran/lvpra/bdd"
)

// Mode selects which product family FromBDD extracts from a BDD.
type Mode int

const (
	// ModeMCS extracts the minimal cut sets: the coherent path, where
	// a negative literal's branch is taken without recording it.
	ModeMCS Mode = iota
	// ModePrimeImplicants extracts prime implicants via the three-way
	// consensus/positive/negative split, for non-coherent functions.
	ModePrimeImplicants
)

// convKey is the converter's memo key: a bdd.Function handle and
// complement, plus a remaining-order slot modeled on §4.5's "recursive
// conversion with memoization on (signed-id, remaining-order)." convert
// never sets remainingOrder, so it is always zero.
type convKey struct {
	handle         arena.Handle
	complement     bool
	remainingOrder int32
}

type converter struct {
	src   *bdd.Diagram
	dst   *Diagram
	mode  Mode
	memo  map[convKey]arena.Handle
	order int32 // next free ZBDD variable order slot, descending with BDD depth
}

// FromBDD converts d's function into a ZBDD product family, per §4.5:
// the coherent path drops the literal on a function's complement
// branch (MCS mode); the non-coherent path performs a three-way
// consensus/positive/negative split using bdd.Apply(AND, ...) on the
// host BDD itself (prime-implicants mode).
func FromBDD(d *bdd.Diagram, mode Mode) (*Diagram, error) {
	if d == nil {
		return nil, ErrNilDiagram
	}
	if mode != ModeMCS && mode != ModePrimeImplicants {
		return nil, ErrBadMode
	}

	dst := NewDiagram()
	c := &converter{src: d, dst: dst, mode: mode, memo: make(map[convKey]arena.Handle)}

	root, err := c.convert(d.Root)
	if err != nil {
		return nil, err
	}
	dst.Root = root
	dst.Coherent = d.Coherent
	return dst, nil
}

func (c *converter) convert(f bdd.Function) (arena.Handle, error) {
	key := convKey{handle: f.Handle, complement: f.Complement}
	if h, ok := c.memo[key]; ok {
		return h, nil
	}

	if f.IsTrue() {
		c.memo[key] = Base
		return Base, nil
	}
	if f.IsFalse() {
		c.memo[key] = Empty
		return Empty, nil
	}

	n, ok := c.src.Node(f.Handle)
	if !ok {
		return Empty, bdd.ErrUnknownHandle
	}

	if n.Module {
		return c.convertModule(f, n)
	}

	high := bdd.Function{Handle: n.High, Complement: f.Complement}
	low := bdd.Function{Handle: n.Low, Complement: f.Complement != n.LowComplement}

	var result arena.Handle
	var err error
	switch c.mode {
	case ModePrimeImplicants:
		result, err = c.convertPI(n, high, low)
	default:
		result, err = c.convertMCS(n, high, low)
	}
	if err != nil {
		return Empty, err
	}
	c.memo[key] = result
	return result, nil
}

// convertMCS is the coherent path: the complement branch (low) is
// followed without recording a literal; the high branch records the
// variable's positive literal and the product size charged against it.
func (c *converter) convertMCS(n bdd.Node, high, low bdd.Function) (arena.Handle, error) {
	hiZ, err := c.convert(high)
	if err != nil {
		return Empty, err
	}
	loZ, err := c.convert(low)
	if err != nil {
		return Empty, err
	}
	return c.dst.findOrAddVertex(n.VarIndex, n.VarOrder, n.Module, hiZ, loZ), nil
}

// convertPI is the non-coherent, prime-implicant path: a three-way
// split where the consensus term (independent of the variable) is
// Apply(AND, high, low) on the host BDD, the positive branch carries
// high, and the negative branch carries low — each of the latter two
// contributing one signed literal.
func (c *converter) convertPI(n bdd.Node, high, low bdd.Function) (arena.Handle, error) {
	consensus, err := c.src.Apply(bdd.OpAnd, high, low)
	if err != nil {
		return Empty, err
	}
	consensusZ, err := c.convert(consensus)
	if err != nil {
		return Empty, err
	}
	posZ, err := c.convert(high)
	if err != nil {
		return Empty, err
	}
	negZ, err := c.convert(low)
	if err != nil {
		return Empty, err
	}

	posNode := c.dst.findOrAddVertex(n.VarIndex, n.VarOrder, false, posZ, Empty)
	negNode := c.dst.findOrAddVertex(-n.VarIndex-1, n.VarOrder, false, negZ, Empty)
	literals := c.dst.Apply(OpOr, posNode, negNode, 1<<30)
	return c.dst.Apply(OpOr, literals, consensusZ, 1<<30), nil
}

func (c *converter) convertModule(f bdd.Function, n bdd.Node) (arena.Handle, error) {
	sub, ok := c.src.ModuleTable[f.Handle]
	if !ok {
		return Empty, bdd.ErrUnresolvedModule
	}
	subConv := &converter{src: sub, dst: c.dst, mode: c.mode, memo: make(map[convKey]arena.Handle)}
	subRoot, err := subConv.convert(sub.Root)
	if err != nil {
		return Empty, err
	}

	proxy := c.dst.AllocModuleProxy(n.VarIndex, n.VarOrder)
	c.dst.ModuleTable[proxy] = &Diagram{
		nodes:       c.dst.nodes,
		table:       c.dst.table,
		cache:       c.dst.cache,
		ModuleTable: c.dst.ModuleTable,
		Root:        subRoot,
		Coherent:    sub.Coherent,
	}
	return proxy, nil
}
