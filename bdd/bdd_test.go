package bdd_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/lvpra/bdd"
	"github.com/katalvlaran/lvpra/model"
	"github.com/katalvlaran/lvpra/pdag"
)

type BDDSuite struct {
	suite.Suite
}

func TestBDDSuite(t *testing.T) {
	suite.Run(t, new(BDDSuite))
}

func be(id string, mean float64) model.FormulaArg {
	return model.FormulaArg{Kind: model.BasicEventArg, BasicEvent: &model.BasicEvent{ID: id, Expression: model.ConstExpression(mean)}}
}

func gateRef(id string) model.FormulaArg {
	return model.FormulaArg{Kind: model.GateArg, GateID: id}
}

func buildPrepared(t *testing.T, m model.Model) *pdag.PDAG {
	t.Helper()
	p, err := pdag.Build(m)
	require.NoError(t, err)
	require.NoError(t, p.RemoveNullGates())
	require.NoError(t, p.NormalizeGates())
	require.NoError(t, p.PropagateComplements())
	require.NoError(t, p.DetectModules())
	require.NoError(t, p.AssignVariableOrder())
	require.NoError(t, p.AssertStructure())
	return p
}

// TestFromPDAG_SimpleOrOfAnds builds A.B + B.C and checks the resulting
// BDD is not the FALSE function and passes structural assertion.
func (s *BDDSuite) TestFromPDAG_SimpleOrOfAnds() {
	require := require.New(s.T())
	m := model.Model{
		TopGate: "top",
		Gates: []model.Gate{
			{ID: "top", Formula: model.Formula{Connective: model.OR, Args: []model.FormulaArg{gateRef("g1"), gateRef("g2")}}},
			{ID: "g1", Formula: model.Formula{Connective: model.AND, Args: []model.FormulaArg{be("A", 0.1), be("B", 0.2)}}},
			{ID: "g2", Formula: model.Formula{Connective: model.AND, Args: []model.FormulaArg{be("B", 0.2), be("C", 0.3)}}},
		},
	}
	p := buildPrepared(s.T(), m)
	d, err := bdd.FromPDAG(p)
	require.NoError(err)
	require.False(d.Root.IsFalse())
	require.NoError(d.AssertStructure())
}

// TestFromPDAG_ConstantHouseEventShortCircuits checks AND(false, A)
// reduces to the FALSE function end-to-end through the PDAG passes.
func (s *BDDSuite) TestFromPDAG_ConstantHouseEventShortCircuits() {
	require := require.New(s.T())
	m := model.Model{
		TopGate: "top",
		Gates: []model.Gate{
			{ID: "top", Formula: model.Formula{Connective: model.AND, Args: []model.FormulaArg{
				{Kind: model.HouseEventArg, HouseEvent: &model.HouseEvent{ID: "H", Value: false}},
				be("A", 0.1),
			}}},
		},
	}
	p := buildPrepared(s.T(), m)
	d, err := bdd.FromPDAG(p)
	require.NoError(err)
	require.True(d.Root.IsFalse())
}

// TestApply_Idempotent checks AND(f,f) == f and OR(f,f) == f for a
// non-trivial function.
func (s *BDDSuite) TestApply_Idempotent() {
	require := require.New(s.T())
	m := model.Model{
		TopGate: "top",
		Gates: []model.Gate{
			{ID: "top", Formula: model.Formula{Connective: model.AND, Args: []model.FormulaArg{be("A", 0.1), be("B", 0.2)}}},
		},
	}
	p := buildPrepared(s.T(), m)
	d, err := bdd.FromPDAG(p)
	require.NoError(err)

	andResult, err := d.Apply(bdd.OpAnd, d.Root, d.Root)
	require.NoError(err)
	require.Equal(d.Root, andResult)

	orResult, err := d.Apply(bdd.OpOr, d.Root, d.Root)
	require.NoError(err)
	require.Equal(d.Root, orResult)
}

// TestApply_ComplementIsFalseUnderAnd checks AND(f, NOT f) == FALSE.
func (s *BDDSuite) TestApply_ComplementIsFalseUnderAnd() {
	require := require.New(s.T())
	m := model.Model{
		TopGate: "top",
		Gates: []model.Gate{
			{ID: "top", Formula: model.Formula{Connective: model.AND, Args: []model.FormulaArg{be("A", 0.1), be("B", 0.2)}}},
		},
	}
	p := buildPrepared(s.T(), m)
	d, err := bdd.FromPDAG(p)
	require.NoError(err)

	notF := d.Root
	notF.Complement = !notF.Complement
	result, err := d.Apply(bdd.OpAnd, d.Root, notF)
	require.NoError(err)
	require.True(result.IsFalse())
}

// TestFromPDAG_ModuleCreatesSubDiagram checks an isolated subtree
// flagged as a module produces a ModuleTable entry.
func (s *BDDSuite) TestFromPDAG_ModuleCreatesSubDiagram() {
	require := require.New(s.T())
	m := model.Model{
		TopGate: "top",
		Gates: []model.Gate{
			{ID: "top", Formula: model.Formula{Connective: model.OR, Args: []model.FormulaArg{gateRef("iso"), be("X", 0.5)}}},
			{ID: "iso", Formula: model.Formula{Connective: model.AND, Args: []model.FormulaArg{be("A", 0.1), be("B", 0.2)}}},
		},
	}
	p := buildPrepared(s.T(), m)
	d, err := bdd.FromPDAG(p)
	require.NoError(err)
	require.Len(d.ModuleTable, 1)
}
