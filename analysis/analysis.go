// SPDX-License-Identifier: MIT
// Package analysis is the public orchestration entry point of §6: it
// drives a model.Model through the PDAG preprocessor, the BDD/ZBDD/
// MOCUS backend Settings selects, the probability evaluator, and the
// importance evaluator, returning one Result.
//
// Grounded on algorithms/bfs.go's options-plus-result idiom
// (BFSOptions/BFSResult), generalized here to model.Settings/Result:
// the analysis options live in model.Settings, and the package-local
// Option type (options.go) carries only WithLogger. Analyze is also the one
// place internal/telemetry is wired in: none of pdag/bdd/zbdd/mocus
// carry a Logger field themselves (that would mean threading one
// through every recursive Apply/DFS call), so Analyze's own stage
// boundaries are where diagram sizes, unique-table growth, and stage
// timings get traced, via WithLogger.
package analysis

import (
	"sort"
	"time"

	"github.com/katalvlaran/lvpra/bdd"
	"github.com/katalvlaran/lvpra/importance"
	"github.com/katalvlaran/lvpra/internal/telemetry"
	"github.com/katalvlaran/lvpra/mocus"
	"github.com/katalvlaran/lvpra/model"
	"github.com/katalvlaran/lvpra/pdag"
	"github.com/katalvlaran/lvpra/probability"
	"github.com/katalvlaran/lvpra/zbdd"
)

// Result bundles everything one analysis run produces: the
// preprocessed graph, whichever diagrams the selected algorithm built,
// the top event's probability, its minimal cut sets (or prime
// implicants), and each basic event's importance factors.
type Result struct {
	PDAG *pdag.PDAG
	BDD  *bdd.Diagram // nil when Settings.Algorithm == model.AlgorithmMOCUS
	ZBDD *zbdd.Diagram

	Probability float64

	// CutSets holds each product as human-readable basic-event ids, a
	// "!" prefix marking a negated literal (only possible in
	// prime-implicant mode).
	CutSets [][]string

	// Importance maps a basic event id to its factors; an id with a
	// zero product-occurrence count (per §4.8) is omitted.
	Importance map[string]importance.Factors
}

// Analyze runs the full pipeline: validate settings, build and
// normalize the PDAG, compile the selected backend, then evaluate
// probability and importance. WithLogger attaches diagnostic tracing;
// Analyze is silent by default.
func Analyze(m model.Model, settings model.Settings, opts ...Option) (*Result, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	o := newOptions(opts...)
	log := o.logger.ForRun("")

	p, err := pdag.Build(m)
	if err != nil {
		return nil, err
	}
	if err := prepare(p, log); err != nil {
		return nil, err
	}

	table, err := probability.BuildTable(p, settings.MissionTime)
	if err != nil {
		return nil, err
	}

	res := &Result{PDAG: p, Importance: make(map[string]importance.Factors)}

	calc, err := compile(res, p, settings, log)
	if err != nil {
		return nil, err
	}

	res.Probability, err = calc(table)
	if err != nil {
		return nil, err
	}

	if res.ZBDD != nil {
		products := collectProducts(res.ZBDD, settings.LimitOrder)
		res.CutSets = decodeProducts(p, products)
		start := time.Now()
		if err := fillImportance(res, p, table, calc, products); err != nil {
			return nil, err
		}
		log.ForComponent("importance").Debug().
			Int("events", len(res.Importance)).
			Dur("elapsed", time.Since(start)).
			Msg("importance factors derived")
	}

	return res, nil
}

// prepare runs the PDAG rewrite passes in the fixed order every
// bdd/zbdd/mocus test in this repo already relies on.
func prepare(p *pdag.PDAG, log *telemetry.Logger) error {
	start := time.Now()
	if err := p.RemoveNullGates(); err != nil {
		return err
	}
	if err := p.NormalizeGates(); err != nil {
		return err
	}
	if err := p.PropagateComplements(); err != nil {
		return err
	}
	if err := p.DetectModules(); err != nil {
		return err
	}
	if err := p.AssignVariableOrder(); err != nil {
		return err
	}
	if err := p.AssertStructure(); err != nil {
		return err
	}
	log.ForComponent("pdag").Debug().
		Int("variables", p.NumVariables()).
		Dur("elapsed", time.Since(start)).
		Msg("pdag prepared")
	return nil
}

// compile builds the backend diagram(s) Settings.Algorithm selects,
// populates res.BDD/res.ZBDD, and returns the importance.Calculator the
// rest of Analyze (and the generic importance fallback) evaluates
// probability through.
func compile(res *Result, p *pdag.PDAG, settings model.Settings, log *telemetry.Logger) (importance.Calculator, error) {
	switch settings.Algorithm {
	case model.AlgorithmMOCUS:
		start := time.Now()
		z, err := mocus.Analyze(p, int32(settings.LimitOrder))
		if err != nil {
			return nil, err
		}
		res.ZBDD = z
		logDiagram(log, "mocus", z, time.Since(start))
		return approximator(z, settings), nil

	case model.AlgorithmBDD, model.AlgorithmZBDD:
		start := time.Now()
		d, err := bdd.FromPDAG(p)
		if err != nil {
			return nil, err
		}
		if err := d.AssertStructure(); err != nil {
			return nil, err
		}
		res.BDD = d
		logDiagram(log, "bdd", d, time.Since(start))

		mode := zbdd.ModeMCS
		if settings.PrimeImplicants {
			mode = zbdd.ModePrimeImplicants
		}
		start = time.Now()
		z, err := zbdd.FromBDD(d, mode)
		if err != nil {
			return nil, err
		}
		res.ZBDD = z
		logDiagram(log, "zbdd", z, time.Since(start))

		return func(t probability.Table) (float64, error) { return probability.Evaluate(d, t) }, nil

	default:
		return nil, ErrUnresolvedAlgorithm
	}
}

// diagramStats is satisfied structurally by both *bdd.Diagram and
// *zbdd.Diagram, letting logDiagram trace either without a shared
// interface type in either package.
type diagramStats interface {
	Len() int
	UniqueTableGrowthEvents() int
	ComputeTableLen() int
}

// logDiagram traces one diagram-building stage's size and the
// hash-consing table's growth events, per internal/telemetry's
// package doc promise of "unique-table growth" tracing.
func logDiagram(log *telemetry.Logger, component string, d diagramStats, elapsed time.Duration) {
	log.ForComponent(component).Debug().
		Int("nodes", d.Len()).
		Int("unique_table_growth_events", d.UniqueTableGrowthEvents()).
		Int("compute_table_len", d.ComputeTableLen()).
		Dur("elapsed", elapsed).
		Msg("diagram built")
}

// approximator returns the ZBDD-driven Calculator Settings.Approximation
// selects. A mocus-algorithm run has no BDD to evaluate exactly, so
// ApproximationNone falls back to RareEvent here — a deliberate
// divergence recorded in DESIGN.md, since §4.7's exact recurrence is
// defined only "bottom-up traversal of the BDD."
func approximator(z *zbdd.Diagram, settings model.Settings) importance.Calculator {
	switch settings.Approximation {
	case model.ApproximationMCUB:
		return func(t probability.Table) (float64, error) { return probability.MCUB(z, settings.LimitOrder, t) }
	default:
		return func(t probability.Table) (float64, error) { return probability.RareEvent(z, settings.LimitOrder, t) }
	}
}

func collectProducts(z *zbdd.Diagram, limitOrder int) [][]int32 {
	var out [][]int32
	for product := range z.Products(limitOrder) {
		out = append(out, product)
	}
	// Order by size, then by lexicographic index sequence.
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		for k := range a {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return false
	})
	return out
}

func decodeProducts(p *pdag.PDAG, products [][]int32) [][]string {
	idOf := idsByOrder(p)
	out := make([][]string, len(products))
	for i, product := range products {
		lits := make([]string, len(product))
		for j, lit := range product {
			order, negated := probability.DecodeLiteral(lit)
			name := idOf[order]
			if negated {
				name = "!" + name
			}
			lits[j] = name
		}
		out[i] = lits
	}
	return out
}

func idsByOrder(p *pdag.PDAG) map[int32]string {
	out := make(map[int32]string, p.NumVariables())
	for _, h := range p.Variables() {
		v, ok := p.Variable(h)
		if !ok {
			continue
		}
		out[int32(v.Order)] = v.ID
	}
	return out
}

// fillImportance computes each basic event's Birnbaum marginal
// importance (BDD-specific when res.BDD is available, generic
// toggle-and-subtract over calc otherwise) and derives CIF/RAW/DIF/RRW
// from it, per §4.8, skipping events with zero product-occurrence count.
func fillImportance(res *Result, p *pdag.PDAG, t probability.Table, calc importance.Calculator, products [][]int32) error {
	occurrences := importance.Occurrences(products)
	idOf := idsByOrder(p)

	for order, pVar := range t {
		occ := occurrences[order]
		if occ == 0 {
			continue
		}

		var (
			mif float64
			err error
		)
		if res.BDD != nil {
			mif, err = importance.MIF(res.BDD, order, t)
		} else {
			mif, err = importance.Generic(calc, t, order)
		}
		if err != nil {
			return err
		}

		f, err := importance.Derive(mif, pVar, res.Probability, occ)
		if err != nil {
			return err
		}
		res.Importance[idOf[order]] = f
	}
	return nil
}
