// SPDX-License-Identifier: MIT
// Package zbdd implements the Zero-suppressed Decision Diagram engine
// of §4.5/C6: a product-family store for minimal cut sets (MCS) and
// prime implicants (PI), hash-consed through uniquetable.Table and
// memoized through computetable.Table exactly as the bdd package's own
// engine is, sharing both table types across the two diagram kinds per
// §4.2/§4.3.
//
// Unlike bdd.Function, a ZBDD reference carries no attributed
// complement bit of its own: the sign of a literal lives on the node's
// VarIndex (negative for a negated literal in prime-implicant mode),
// following §3's "ZBDD set-node... signed variable index (the sign
// encodes complement literal in prime-implicant mode)" — so a Handle
// alone identifies a family, grounded on zzenonn-go-zdd's zdd.go/node.go
// unsigned-handle family shape, generalized here to signed indices.
package zbdd

import (
	"github.com/katalvlaran/lvpra/arena"
	"github.com/katalvlaran/lvpra/computetable"
	"github.com/katalvlaran/lvpra/internal/engineconfig"
	"github.com/katalvlaran/lvpra/uniquetable"
)

// Base is the family {∅} (the empty product, i.e. "no literals
// required"); Empty is the family ∅ (no products at all). Both are
// reserved terminal handles, per §3's "Two terminals: BASE... EMPTY."
const (
	Base  arena.Handle = 1
	Empty arena.Handle = 2
)

// Node is the ZBDD set-node of §3, exactly: a signed variable index, an
// order, a high/low branch pair, module/coherent/minimal flags, the
// largest-product-size slot, and a general-purpose enumeration count.
type Node struct {
	VarIndex int32
	Order    int32

	High arena.Handle
	Low  arena.Handle

	Module   bool
	Coherent bool
	Minimal  bool

	// MaxSetOrder is the size of the largest product in this node's
	// family, maintained incrementally as nodes are built.
	MaxSetOrder int32

	// Count is a general-purpose enumeration slot. Nothing in this
	// package writes it: Satcount memoizes in a map local to each call.
	Count uint64
}

func newBaseNode() Node  { return Node{VarIndex: 0, Order: 0} }
func newEmptyNode() Node { return Node{VarIndex: 0, Order: 0} }

// Op is a set operator Apply can compute over two product families.
type Op int32

const (
	// OpAnd computes the product of two families: {a ∪ b : a ∈ A, b ∈ B}.
	OpAnd Op = iota
	// OpOr computes the union of two families.
	OpOr
)

// Diagram owns one ZBDD's vertices and its hash-consing/memoization
// tables, plus the module sub-diagram map mirroring bdd.Diagram's.
type Diagram struct {
	nodes *arena.Arena[Node]
	table *uniquetable.Table
	cache *computetable.Table

	// ModuleTable maps a module proxy's own Handle to the sub-diagram
	// analyzing that module's gate, exactly as bdd.Diagram's does.
	ModuleTable map[arena.Handle]*Diagram

	Root     arena.Handle
	Coherent bool
}

// NewDiagram returns an empty Diagram with both terminal vertices
// reserved at Base and Empty. Table sizing and growth come from
// internal/engineconfig.Default(), matching bdd.NewDiagram.
func NewDiagram() *Diagram {
	cfg := engineconfig.Default()
	return &Diagram{
		nodes:       arena.NewWithReserved[Node](2),
		table:       uniquetable.New(cfg.UniqueTableInitialBuckets, cfg.UniqueTableLoadFactor, cfg.UniqueTableGrowthCap),
		cache:       computetable.New(cfg.ComputeTableInitialBuckets),
		ModuleTable: make(map[arena.Handle]*Diagram),
		Coherent:    true,
	}
}

// Node dereferences h. ok is false if h is not live in this diagram.
func (d *Diagram) Node(h arena.Handle) (Node, bool) {
	switch h {
	case Base:
		return newBaseNode(), true
	case Empty:
		return newEmptyNode(), true
	}
	return d.nodes.Get(h)
}

// IsTerminal reports whether h is one of the two fixed terminals.
func (d *Diagram) IsTerminal(h arena.Handle) bool { return h == Base || h == Empty }

// Len reports the number of live non-terminal vertices.
func (d *Diagram) Len() int { return d.nodes.Len() }

// UniqueTableGrowthEvents reports how many times the hash-consing
// table's capacity target grew, for internal/telemetry.
func (d *Diagram) UniqueTableGrowthEvents() int { return d.table.GrowthEvents() }

// ComputeTableLen reports the Apply memoization table's current entry
// count, for internal/telemetry.
func (d *Diagram) ComputeTableLen() int { return d.cache.Len() }

// Freeze finalizes the diagram's tables for read-only traversal.
func (d *Diagram) Freeze() {
	d.nodes.Freeze()
	d.table.Freeze()
	d.cache.Clear()
}

// AllocModuleProxy inserts a dedicated placeholder node directly into
// the arena, bypassing the unique table's hash-consing, so two distinct
// module proxies at the same (VarIndex, High, Low) shape never collapse
// into one handle — each must remain individually addressable as a
// ModuleTable key, mirroring bdd.Diagram.allocModuleProxy.
func (d *Diagram) AllocModuleProxy(idx, order int32) arena.Handle {
	node := Node{VarIndex: idx, Order: order, High: Base, Low: Empty, Module: true}
	return d.nodes.Alloc(node)
}

// order returns the traversal order of h, treating both terminals as
// "beyond every real variable" so cofactoring against a terminal never
// mistakes it for the current top variable.
func (d *Diagram) order(h arena.Handle) int32 {
	if d.IsTerminal(h) {
		return 1<<31 - 1
	}
	n, _ := d.nodes.Get(h)
	return n.Order
}
