// SPDX-License-Identifier: MIT
package importance

import "github.com/katalvlaran/lvpra/probability"

// Factors bundles Birnbaum marginal importance with the four factors
// §4.8 says derive algebraically from it: CIF (criticality), RAW (risk
// achievement worth), DIF (diagnostic), RRW (risk reduction worth).
type Factors struct {
	MIF float64
	CIF float64
	RAW float64
	DIF float64
	RRW float64
}

// Derive computes Factors for one basic event from its MIF, its own
// mean probability pVar, the top event's total probability pTotal, and
// its product-occurrence count. Per §4.8, a basic event with zero
// occurrences is skipped (reported as an error so callers can omit it
// from a results table rather than publish a meaningless zero).
func Derive(mif, pVar, pTotal float64, occurrences int) (Factors, error) {
	if occurrences == 0 {
		return Factors{}, ErrZeroOccurrence
	}

	f := Factors{MIF: mif}
	if pTotal == 0 {
		return f, nil
	}

	f.CIF = pVar * mif / pTotal
	f.RAW = 1 + (1-pVar)*mif/pTotal
	f.DIF = pVar * f.RAW
	if denom := pTotal - pVar*mif; denom != 0 {
		f.RRW = pTotal / denom
	}
	return f, nil
}

// Occurrences counts, for each variable order appearing in products,
// how many products reference it (with either sign), per §4.8's
// "product-occurrence count" used to decide which basic events to skip.
func Occurrences(products [][]int32) map[int32]int {
	out := make(map[int32]int)
	for _, product := range products {
		for _, lit := range product {
			order, _ := probability.DecodeLiteral(lit)
			out[order]++
		}
	}
	return out
}
