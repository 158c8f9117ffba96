// SPDX-License-Identifier: MIT
package model

import "github.com/katalvlaran/lvpra/internal/xerrors"

// Sentinel errors for model construction and settings validation. Follow
// builder/errors.go's policy: sentinel-only, matched with errors.Is,
// context attached with Wrap/WithPath at call sites, never stringified
// into the sentinel itself.
var (
	// ErrOutOfRangeProbability indicates a BasicEvent's expression
	// yields a mean probability outside [0,1].
	ErrOutOfRangeProbability = xerrors.New(xerrors.ValidityError, "model: basic event probability out of range")

	// ErrBadArity indicates a connective received the wrong number of
	// arguments (NULL/NOT must have exactly one, XOR exactly two).
	ErrBadArity = xerrors.New(xerrors.ValidityError, "model: connective has wrong argument arity")

	// ErrCyclicReference indicates a gate reference cycle was detected
	// while building the PDAG.
	ErrCyclicReference = xerrors.New(xerrors.ValidityError, "model: cyclic gate reference")

	// ErrDuplicateID indicates two elements (gates, basic events, house
	// events) share the same id.
	ErrDuplicateID = xerrors.New(xerrors.ValidityError, "model: duplicate element id")

	// ErrUnknownReference indicates a FormulaArg references a gate id
	// that is not present in the model.
	ErrUnknownReference = xerrors.New(xerrors.ValidityError, "model: reference to unknown element")

	// ErrPrimeImplicantsNeedBDD indicates prime_implicants was requested
	// with an algorithm other than bdd.
	ErrPrimeImplicantsNeedBDD = xerrors.New(xerrors.InvalidSetting, "model: prime_implicants requires algorithm=bdd")

	// ErrPrimeImplicantsNeedExact indicates prime_implicants was
	// requested together with a non-none approximation.
	ErrPrimeImplicantsNeedExact = xerrors.New(xerrors.InvalidSetting, "model: prime_implicants requires approximation=none")

	// ErrSILNeedsTimeStep indicates safety_integrity_levels was
	// requested with time_step == 0.
	ErrSILNeedsTimeStep = xerrors.New(xerrors.InvalidSetting, "model: safety_integrity_levels requires time_step > 0")

	// ErrBadLimitOrder indicates limit_order < 1.
	ErrBadLimitOrder = xerrors.New(xerrors.InvalidSetting, "model: limit_order must be >= 1")

	// ErrBadCutOff indicates cut_off is outside [0,1].
	ErrBadCutOff = xerrors.New(xerrors.InvalidSetting, "model: cut_off must be within [0,1]")

	// ErrNegativeMissionTime indicates mission_time < 0.
	ErrNegativeMissionTime = xerrors.New(xerrors.InvalidSetting, "model: mission_time must be >= 0")

	// ErrNegativeTimeStep indicates time_step < 0.
	ErrNegativeTimeStep = xerrors.New(xerrors.InvalidSetting, "model: time_step must be >= 0")

	// ErrUnknownAlgorithm indicates Algorithm is not one of bdd/zbdd/mocus.
	ErrUnknownAlgorithm = xerrors.New(xerrors.InvalidSetting, "model: unknown algorithm")

	// ErrUnknownApproximation indicates Approximation is not one of
	// none/rare-event/mcub.
	ErrUnknownApproximation = xerrors.New(xerrors.InvalidSetting, "model: unknown approximation")
)
