// SPDX-License-Identifier: MIT
package pdag

import (
	"fmt"

	"github.com/katalvlaran/lvpra/arena"
	"github.com/katalvlaran/lvpra/model"
)

// buildCCFProxies substitutes each basic event named by a CCFGroup with
// a proxy gate OR-ing an independent-failure term and one shared
// common-cause term, per §4.1's "resolves common-cause-failure
// groups by substituting each basic event with its CCF proxy gate."
//
// This supplements the distilled spec.md, which mentions CCF proxy
// substitution without defining the group shape (see model.CCFGroup's
// doc comment and DESIGN.md). lvpra implements the independent-term-
// plus-shared-term decomposition common to beta-factor, MGL, and
// alpha-factor models; it models one shared term per group (scaled by
// the group's leading factor) rather than the full per-order subset
// expansion a complete MGL/alpha-factor implementation would carry,
// since spec.md names no literal expected output for CCF groups to
// validate a fuller expansion against.
func (p *PDAG) buildCCFProxies(m model.Model) (map[string]arena.Handle, error) {
	proxyForEvent := make(map[string]arena.Handle)
	beByID := make(map[string]model.BasicEvent, len(m.BasicEvents))
	for _, be := range m.BasicEvents {
		beByID[be.ID] = be
	}

	for _, grp := range m.CCFGroups {
		factor := 0.0
		if len(grp.Factors) > 0 {
			factor = grp.Factors[0]
		}
		commonVarID := fmt.Sprintf("__ccf_common__%s", grp.ID)
		commonHandle, err := p.ensureVariable(commonVarID, model.ConstExpression(factor))
		if err != nil {
			return nil, err
		}

		for _, memberID := range grp.Members {
			be, ok := beByID[memberID]
			if !ok {
				return nil, ErrUnknownGateRef.WithPath(memberID)
			}
			indepVarID := fmt.Sprintf("__ccf_indep__%s__%s", grp.ID, memberID)
			indepHandle, err := p.ensureVariable(indepVarID, scaledExpression{base: be.Expression, scale: 1 - factor})
			if err != nil {
				return nil, err
			}

			proxyID := fmt.Sprintf("__ccf_proxy__%s__%s", grp.ID, memberID)
			proxy := newGate(proxyID, model.OR)
			ph := p.allocGate(proxy)
			p.addArg(ph, proxy, Literal{Kind: RefVariable, Handle: indepHandle})
			p.addArg(ph, proxy, Literal{Kind: RefVariable, Handle: commonHandle})
			proxyForEvent[memberID] = ph
		}
	}
	return proxyForEvent, nil
}

// scaledExpression scales a wrapped Expression's mean by a constant
// factor, used to split an original basic event's probability between
// its independent-failure and common-cause proxy terms.
type scaledExpression struct {
	base  model.Expression
	scale float64
}

func (s scaledExpression) Mean(missionTime float64) (float64, error) {
	m, err := s.base.Mean(missionTime)
	if err != nil {
		return 0, err
	}
	return m * s.scale, nil
}
