// SPDX-License-Identifier: MIT
package probability_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/lvpra/bdd"
	"github.com/katalvlaran/lvpra/model"
	"github.com/katalvlaran/lvpra/pdag"
	"github.com/katalvlaran/lvpra/probability"
)

type ProbabilitySuite struct {
	suite.Suite
}

func TestProbabilitySuite(t *testing.T) {
	suite.Run(t, new(ProbabilitySuite))
}

func be(id string, mean float64) model.FormulaArg {
	return model.FormulaArg{Kind: model.BasicEventArg, BasicEvent: &model.BasicEvent{ID: id, Expression: model.ConstExpression(mean)}}
}

func gateRef(id string) model.FormulaArg {
	return model.FormulaArg{Kind: model.GateArg, GateID: id}
}

func buildBDD(t *testing.T, m model.Model) (*pdag.PDAG, *bdd.Diagram) {
	t.Helper()
	p, err := pdag.Build(m)
	require.NoError(t, err)
	require.NoError(t, p.RemoveNullGates())
	require.NoError(t, p.NormalizeGates())
	require.NoError(t, p.PropagateComplements())
	require.NoError(t, p.DetectModules())
	require.NoError(t, p.AssignVariableOrder())
	require.NoError(t, p.AssertStructure())
	d, err := bdd.FromPDAG(p)
	require.NoError(t, err)
	return p, d
}

// TestEvaluate_SingleAndMultipliesProbabilities checks A.B yields
// P = 0.1 * 0.2.
func (s *ProbabilitySuite) TestEvaluate_SingleAndMultipliesProbabilities() {
	require := require.New(s.T())
	m := model.Model{
		TopGate: "top",
		Gates: []model.Gate{
			{ID: "top", Formula: model.Formula{Connective: model.AND, Args: []model.FormulaArg{be("A", 0.1), be("B", 0.2)}}},
		},
	}
	p, d := buildBDD(s.T(), m)
	table, err := probability.BuildTable(p, 0)
	require.NoError(err)
	got, err := probability.Evaluate(d, table)
	require.NoError(err)
	require.InDelta(0.02, got, 1e-9)
}

// TestEvaluate_OrOfAndsMatchesInclusionExclusion checks A.B + B.C
// against the exact two-term inclusion-exclusion formula (the events
// share variable B, so plain addition would overcount).
func (s *ProbabilitySuite) TestEvaluate_OrOfAndsMatchesInclusionExclusion() {
	require := require.New(s.T())
	m := model.Model{
		TopGate: "top",
		Gates: []model.Gate{
			{ID: "top", Formula: model.Formula{Connective: model.OR, Args: []model.FormulaArg{gateRef("g1"), gateRef("g2")}}},
			{ID: "g1", Formula: model.Formula{Connective: model.AND, Args: []model.FormulaArg{be("A", 0.1), be("B", 0.2)}}},
			{ID: "g2", Formula: model.Formula{Connective: model.AND, Args: []model.FormulaArg{be("B", 0.2), be("C", 0.3)}}},
		},
	}
	p, d := buildBDD(s.T(), m)
	table, err := probability.BuildTable(p, 0)
	require.NoError(err)
	got, err := probability.Evaluate(d, table)
	require.NoError(err)
	ab, bc, abc := 0.1*0.2, 0.2*0.3, 0.1*0.2*0.3
	want := ab + bc - abc
	require.InDelta(want, got, 1e-9)
}

// TestEvaluate_ModuleDelegatesToSubDiagram checks an isolated subtree
// flagged as a module still contributes its correct probability through
// the module proxy's sub-diagram.
func (s *ProbabilitySuite) TestEvaluate_ModuleDelegatesToSubDiagram() {
	require := require.New(s.T())
	m := model.Model{
		TopGate: "top",
		Gates: []model.Gate{
			{ID: "top", Formula: model.Formula{Connective: model.OR, Args: []model.FormulaArg{gateRef("iso"), be("X", 0.5)}}},
			{ID: "iso", Formula: model.Formula{Connective: model.AND, Args: []model.FormulaArg{be("A", 0.1), be("B", 0.2)}}},
		},
	}
	p, d := buildBDD(s.T(), m)
	require.Len(d.ModuleTable, 1)
	table, err := probability.BuildTable(p, 0)
	require.NoError(err)
	got, err := probability.Evaluate(d, table)
	require.NoError(err)
	want := 0.5 + 0.02 - 0.5*0.02
	require.InDelta(want, got, 1e-9)
}

// TestBuildTable_MissionTimeIsForwarded checks an Expression reaching
// for the missionTime argument sees the value BuildTable was given.
func (s *ProbabilitySuite) TestBuildTable_MissionTimeIsForwarded() {
	require := require.New(s.T())
	m := model.Model{
		TopGate: "top",
		Gates: []model.Gate{
			{ID: "top", Formula: model.Formula{Connective: model.AND, Args: []model.FormulaArg{
				{Kind: model.BasicEventArg, BasicEvent: &model.BasicEvent{ID: "A", Expression: linearExpression{}}},
			}}},
		},
	}
	p, err := pdag.Build(m)
	require.NoError(err)
	require.NoError(p.RemoveNullGates())
	require.NoError(p.NormalizeGates())
	require.NoError(p.PropagateComplements())
	require.NoError(p.DetectModules())
	require.NoError(p.AssignVariableOrder())

	table, err := probability.BuildTable(p, 10)
	require.NoError(err)
	require.Len(table, 1)
	vars := p.Variables()
	require.Len(vars, 1)
	v, ok := p.Variable(vars[0])
	require.True(ok)
	require.InDelta(0.1, table[int32(v.Order)], 1e-9)
}

// linearExpression is a test-only model.Expression returning
// missionTime/100, used to confirm BuildTable forwards its missionTime
// argument rather than always evaluating at zero.
type linearExpression struct{}

func (linearExpression) Mean(missionTime float64) (float64, error) { return missionTime / 100, nil }
