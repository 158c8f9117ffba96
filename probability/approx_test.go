// SPDX-License-Identifier: MIT
package probability_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/lvpra/mocus"
	"github.com/katalvlaran/lvpra/model"
	"github.com/katalvlaran/lvpra/pdag"
	"github.com/katalvlaran/lvpra/probability"
)

type ApproxSuite struct {
	suite.Suite
}

func TestApproxSuite(t *testing.T) {
	suite.Run(t, new(ApproxSuite))
}

// TestRareEvent_DisjointAndsSumsExactly checks A.B + C.D (no event
// shared between the two products): rare-event returns exactly the sum
// of the product probabilities, which is above the exact AB + CD − ABCD.
func (s *ApproxSuite) TestRareEvent_DisjointAndsSumsExactly() {
	require := require.New(s.T())
	m := model.Model{
		TopGate: "top",
		Gates: []model.Gate{
			{ID: "top", Formula: model.Formula{Connective: model.OR, Args: []model.FormulaArg{gateRef("g1"), gateRef("g2")}}},
			{ID: "g1", Formula: model.Formula{Connective: model.AND, Args: []model.FormulaArg{be("A", 0.1), be("B", 0.2)}}},
			{ID: "g2", Formula: model.Formula{Connective: model.AND, Args: []model.FormulaArg{be("C", 0.3), be("D", 0.4)}}},
		},
	}
	p, err := pdag.Build(m)
	require.NoError(err)
	require.NoError(p.RemoveNullGates())
	require.NoError(p.NormalizeGates())
	require.NoError(p.PropagateComplements())
	require.NoError(p.DetectModules())
	require.NoError(p.AssignVariableOrder())
	require.NoError(p.AssertStructure())

	z, err := mocus.Analyze(p, 1<<20)
	require.NoError(err)
	table, err := probability.BuildTable(p, 0)
	require.NoError(err)

	got, err := probability.RareEvent(z, 1<<20, table)
	require.NoError(err)
	want := 0.1*0.2 + 0.3*0.4
	require.InDelta(want, got, 1e-9)

	mcub, err := probability.MCUB(z, 1<<20, table)
	require.NoError(err)
	wantMCUB := 1 - (1-0.1*0.2)*(1-0.3*0.4)
	require.InDelta(wantMCUB, mcub, 1e-9)
}
