// SPDX-License-Identifier: MIT
// Package bdd implements the Binary Decision Diagram engine of §4.4/C5:
// a Reduced Ordered BDD with one attributed complement edge per node
// (carried on the low branch), hash-consed through uniquetable.Table
// and memoized through computetable.Table exactly as §4.2/§4.3
// describe, shared with the zbdd package.
//
// Every BDD function is a (Handle, complement) pair — a root vertex
// plus the sign under which it is interpreted — mirroring the ITE
// "Function" holder of the design this package is grounded on
// (original_source/src/bdd.h's Bdd::Function) rather than baking the
// sign into the handle itself.
package bdd

import (
	"math"

	"github.com/katalvlaran/lvpra/arena"
	"github.com/katalvlaran/lvpra/computetable"
	"github.com/katalvlaran/lvpra/internal/engineconfig"
	"github.com/katalvlaran/lvpra/uniquetable"
)

// TrueHandle is the single terminal vertex, reserved at arena index 1
// per §3: "index 1 is reserved for the single Boolean constant TRUE."
// FALSE has no vertex of its own — it is expressed as a complemented
// reference to TrueHandle.
const TrueHandle arena.Handle = 1

// unsetMemo marks a Node's memoized probability/importance slot as not
// yet computed, per §3's "memoized-probability, memoized-importance-
// factor" scratch fields.
var unsetMemo = math.NaN()

// Node is the non-terminal ITE vertex of §3, exactly: a variable index
// and order, a high/low branch pair with the low branch's complement
// bit, module/coherent flags, and two memoization slots (see prob/mif
// below).
type Node struct {
	VarIndex int32
	VarOrder int32

	High arena.Handle
	Low  arena.Handle
	// LowComplement records that the low edge is interpreted as ¬Low,
	// per §3's "the low edge is the canonical carrier of complement."
	LowComplement bool

	Module   bool
	Coherent bool

	// prob/mif are the memo slots of §3; NaN means "unset." They are
	// set to NaN when a node is created and are not read or written by
	// the probability or importance packages, which memoize in maps
	// local to each call.
	prob float64
	mif  float64
}

func newTerminalNode() Node {
	return Node{VarIndex: 0, prob: unsetMemo, mif: unsetMemo}
}

// Function is a BDD root reference: a vertex handle plus the sign
// under which it is read. It is the unit every Apply call consumes and
// returns.
type Function struct {
	Handle     arena.Handle
	Complement bool
}

// IsTrue reports whether f denotes the constant TRUE function.
func (f Function) IsTrue() bool { return f.Handle == TrueHandle && !f.Complement }

// IsFalse reports whether f denotes the constant FALSE function.
func (f Function) IsFalse() bool { return f.Handle == TrueHandle && f.Complement }

// Op is a Boolean operator Apply can compute.
type Op int32

const (
	OpAnd Op = iota
	OpOr
)

// Diagram owns one ROBDD's vertices and its hash-consing/memoization
// tables, plus the module sub-diagram map of §3's "Module composition."
type Diagram struct {
	nodes *arena.Arena[Node]
	table *uniquetable.Table
	cache *computetable.Table

	// ModuleTable maps a module proxy's own Handle to the sub-diagram
	// analyzing that module's gate, per §3: "a separate sub-diagram...
	// attached to the proxy via a {module-index → sub-diagram} map."
	ModuleTable map[arena.Handle]*Diagram

	// IndexToOrder mirrors the Boolean-graph-to-BDD relationship
	// original_source/src/bdd.h keeps (Bdd::index_to_order_), used by
	// the importance evaluator to recover a variable's order from its
	// index without walking back through the PDAG.
	IndexToOrder map[int32]int32

	Root     Function
	Coherent bool
}

// NewDiagram returns an empty Diagram with its terminal vertex already
// reserved at TrueHandle. Table sizing and growth come from
// internal/engineconfig.Default() rather than hardcoded literals.
// engineconfig.Load is not called here, so LVPRA_-prefixed env or
// config-file overrides do not reach these tables.
func NewDiagram() *Diagram {
	cfg := engineconfig.Default()
	return &Diagram{
		nodes:        arena.NewWithReserved[Node](1),
		table:        uniquetable.New(cfg.UniqueTableInitialBuckets, cfg.UniqueTableLoadFactor, cfg.UniqueTableGrowthCap),
		cache:        computetable.New(cfg.ComputeTableInitialBuckets),
		ModuleTable:  make(map[arena.Handle]*Diagram),
		IndexToOrder: make(map[int32]int32),
		Coherent:     true,
	}
}

// Node dereferences h. ok is false if h is not live in this diagram.
func (d *Diagram) Node(h arena.Handle) (Node, bool) {
	if h == TrueHandle {
		return newTerminalNode(), true
	}
	return d.nodes.Get(h)
}

// IsTerminal reports whether h is the TRUE terminal.
func (d *Diagram) IsTerminal(h arena.Handle) bool { return h == TrueHandle }

// Len reports the number of live non-terminal vertices.
func (d *Diagram) Len() int { return d.nodes.Len() }

// UniqueTableGrowthEvents reports how many times the hash-consing
// table's capacity target grew, for internal/telemetry.
func (d *Diagram) UniqueTableGrowthEvents() int { return d.table.GrowthEvents() }

// ComputeTableLen reports the Apply memoization table's current entry
// count, for internal/telemetry.
func (d *Diagram) ComputeTableLen() int { return d.cache.Len() }

// Freeze finalizes the diagram's tables for read-only traversal, per
// §4.2/§4.3's freeze contract.
func (d *Diagram) Freeze() {
	d.nodes.Freeze()
	d.table.Freeze()
	d.cache.Clear()
}

func signedID(h arena.Handle, complement bool) arena.Handle {
	if complement {
		return -h
	}
	return h
}
