// SPDX-License-Identifier: MIT
package importance

import "github.com/katalvlaran/lvpra/probability"

// Calculator computes a total probability from a probability table,
// abstracting over which backend (BDD exact evaluation, ZBDD rare-event
// or MCUB approximation) produced it — the "active calculator" §4.8's
// generic fallback toggles p_i against.
type Calculator func(t probability.Table) (float64, error)

// Generic computes Birnbaum marginal importance for variable order
// target by toggling its probability to 1 and 0 and subtracting the
// resulting totals, per §4.8's "for non-BDD probability paths: toggle
// p_i to 1 and 0, compute the full probability with the active
// calculator, subtract." It never mutates t.
func Generic(calc Calculator, t probability.Table, target int32) (float64, error) {
	if _, ok := t[target]; !ok {
		return 0, probability.ErrMissingProbability
	}

	hi := cloneWith(t, target, 1)
	p1, err := calc(hi)
	if err != nil {
		return 0, err
	}

	lo := cloneWith(t, target, 0)
	p0, err := calc(lo)
	if err != nil {
		return 0, err
	}

	return p1 - p0, nil
}

func cloneWith(t probability.Table, target int32, value float64) probability.Table {
	out := make(probability.Table, len(t))
	for k, v := range t {
		out[k] = v
	}
	out[target] = value
	return out
}
