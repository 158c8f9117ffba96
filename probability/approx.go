// SPDX-License-Identifier: MIT
package probability

import "github.com/katalvlaran/lvpra/zbdd"

// DecodeLiteral splits a zbdd/mocus signed literal index back into the
// pdag variable order it names and whether it is negated, per the
// shared encoding (idx = order*2 for a positive literal, idx =
// -order*2-1 for its negation).
func DecodeLiteral(lit int32) (order int32, negated bool) {
	if lit < 0 {
		return (-lit - 1) / 2, true
	}
	return lit / 2, false
}

// ProductProbability returns one cut-set/prime-implicant product's own
// probability: the product of its positive literals' probabilities
// times (1−p) for each negative literal.
func ProductProbability(literals []int32, t Table) (float64, error) {
	prob := 1.0
	for _, lit := range literals {
		order, negative := DecodeLiteral(lit)
		p, ok := t[order]
		if !ok {
			return 0, ErrMissingProbability
		}
		if negative {
			prob *= 1 - p
		} else {
			prob *= p
		}
	}
	return prob, nil
}

// RareEvent approximates a ZBDD product family's total probability as
// the sum of its products' own probabilities, per §6's
// `approximation=rare-event` setting: exact in the limit of negligible
// pairwise overlap between products, an overestimate otherwise.
func RareEvent(z *zbdd.Diagram, limitOrder int, t Table) (float64, error) {
	var sum float64
	for product := range z.Products(limitOrder) {
		p, err := ProductProbability(product, t)
		if err != nil {
			return 0, err
		}
		sum += p
	}
	return sum, nil
}

// MCUB approximates the family's total probability via the min-cut
// upper bound: one minus the product of each product's own survival
// probability, per §6's `approximation=mcub` setting.
func MCUB(z *zbdd.Diagram, limitOrder int, t Table) (float64, error) {
	survival := 1.0
	for product := range z.Products(limitOrder) {
		p, err := ProductProbability(product, t)
		if err != nil {
			return 0, err
		}
		survival *= 1 - p
	}
	return 1 - survival, nil
}
