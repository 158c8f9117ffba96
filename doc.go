// Package lvpra is the quantitative analysis core of a probabilistic
// safety-analysis engine for fault trees and event trees.
//
// 🚀 What is lvpra?
//
//	A single-threaded, synchronous decision-diagram engine that turns a
//	Boolean formula over basic events into:
//
//	  • minimum cut sets (MCS) or prime implicants (PI)
//	  • a top-event probability
//	  • Birnbaum/CIF/DIF/RAW/RRW importance factors
//
// ✨ Pipeline
//
//	model.Model ──▶ pdag.PDAG ──▶ bdd.Diagram ──▶ zbdd.Diagram ──▶ probability / importance
//	                     └──────────────────────▶ mocus.Run ──▶ zbdd.Diagram (bypasses bdd)
//
// Under the hood, everything is organized under single-purpose subpackages:
//
//	model/        — external input model & analysis settings (§6 boundary contract)
//	arena/        — generic node arena: compact handles, refcounts, generations
//	pdag/         — propositional DAG: normalization, complement pushdown, modules
//	uniquetable/  — hash-consing table shared by bdd and zbdd
//	computetable/ — Apply memoization table shared by bdd and zbdd
//	bdd/          — reduced, ordered BDD with complement edges
//	zbdd/         — zero-suppressed BDD: product family store, minimization
//	mocus/        — alternative PDAG → ZBDD cut-set generator
//	probability/  — BDD traversal probability evaluator
//	importance/   — Birnbaum marginal and derived importance factors
//	analysis/     — orchestrates the full pipeline; the package most callers import
//
// lvpra is not safe for concurrent use: one analysis owns its arenas and
// tables exclusively from construction to discard. It holds no persistent
// or garbage-collected node pool across analyses, and defines no wire
// protocol — it is an in-process library only.
//
//	go get github.com/katalvlaran/lvpra
package lvpra
