package pdag_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/lvpra/model"
	"github.com/katalvlaran/lvpra/pdag"
)

type PDAGSuite struct {
	suite.Suite
}

func TestPDAGSuite(t *testing.T) {
	suite.Run(t, new(PDAGSuite))
}

func be(id string, mean float64) model.FormulaArg {
	return model.FormulaArg{Kind: model.BasicEventArg, BasicEvent: &model.BasicEvent{ID: id, Expression: model.ConstExpression(mean)}}
}

func house(id string, value bool) model.FormulaArg {
	return model.FormulaArg{Kind: model.HouseEventArg, HouseEvent: &model.HouseEvent{ID: id, Value: value}}
}

func gateRef(id string) model.FormulaArg {
	return model.FormulaArg{Kind: model.GateArg, GateID: id}
}

// TestBuild_SimpleAndOr builds top = OR(G1, G2); G1 = AND(A,B); G2 = AND(B,C)
// and checks the shared variable B is deduplicated to a single handle.
func (s *PDAGSuite) TestBuild_SimpleAndOr() {
	require := require.New(s.T())
	m := model.Model{
		TopGate: "top",
		Gates: []model.Gate{
			{ID: "top", Formula: model.Formula{Connective: model.OR, Args: []model.FormulaArg{gateRef("g1"), gateRef("g2")}}},
			{ID: "g1", Formula: model.Formula{Connective: model.AND, Args: []model.FormulaArg{be("A", 0.1), be("B", 0.2)}}},
			{ID: "g2", Formula: model.Formula{Connective: model.AND, Args: []model.FormulaArg{be("B", 0.2), be("C", 0.3)}}},
		},
	}
	p, err := pdag.Build(m)
	require.NoError(err)
	require.Equal(3, p.NumVariables())
	require.NoError(p.AssertStructure())
}

// TestBuild_DuplicateGateID rejects two gates sharing an id.
func (s *PDAGSuite) TestBuild_DuplicateGateID() {
	require := require.New(s.T())
	m := model.Model{
		TopGate: "top",
		Gates: []model.Gate{
			{ID: "top", Formula: model.Formula{Connective: model.OR, Args: []model.FormulaArg{be("A", 0.1)}}},
			{ID: "top", Formula: model.Formula{Connective: model.AND, Args: []model.FormulaArg{be("B", 0.2)}}},
		},
	}
	_, err := pdag.Build(m)
	require.Error(err)
}

// TestBuild_UnknownGateRef rejects a reference to a nonexistent gate id.
func (s *PDAGSuite) TestBuild_UnknownGateRef() {
	require := require.New(s.T())
	m := model.Model{
		TopGate: "top",
		Gates: []model.Gate{
			{ID: "top", Formula: model.Formula{Connective: model.OR, Args: []model.FormulaArg{gateRef("missing")}}},
		},
	}
	_, err := pdag.Build(m)
	require.Error(err)
}

// TestBuild_CyclicGate rejects a self-referencing gate.
func (s *PDAGSuite) TestBuild_CyclicGate() {
	require := require.New(s.T())
	m := model.Model{
		TopGate: "top",
		Gates: []model.Gate{
			{ID: "top", Formula: model.Formula{Connective: model.OR, Args: []model.FormulaArg{gateRef("top")}}},
		},
	}
	_, err := pdag.Build(m)
	require.ErrorIs(err, pdag.ErrCyclicGate)
}

// TestRemoveNullGates_ConstantAbsorption checks that AND(true, A) drops
// the TRUE argument, leaving the top gate non-constant with the single
// argument A.
func (s *PDAGSuite) TestRemoveNullGates_ConstantAbsorption() {
	require := require.New(s.T())
	m := model.Model{
		TopGate: "top",
		Gates: []model.Gate{
			{ID: "top", Formula: model.Formula{Connective: model.AND, Args: []model.FormulaArg{house("H", true), be("A", 0.1)}}},
		},
	}
	p, err := pdag.Build(m)
	require.NoError(err)
	require.NoError(p.RemoveNullGates())
	require.NoError(p.AssertStructure())

	g, ok := p.Gate(p.Root)
	require.True(ok)
	require.False(g.IsConstant())
	require.Len(g.Args, 1)
}

// TestRemoveNullGates_CollapsesToConstant checks AND(false, A) collapses
// the whole gate to FALSE.
func (s *PDAGSuite) TestRemoveNullGates_CollapsesToConstant() {
	require := require.New(s.T())
	m := model.Model{
		TopGate: "top",
		Gates: []model.Gate{
			{ID: "top", Formula: model.Formula{Connective: model.AND, Args: []model.FormulaArg{house("H", false), be("A", 0.1)}}},
		},
	}
	p, err := pdag.Build(m)
	require.NoError(err)
	require.NoError(p.RemoveNullGates())

	g, ok := p.Gate(p.Root)
	require.True(ok)
	value, ok := g.ConstantValue()
	require.True(ok)
	require.False(value)
}

// TestRemoveNullGates_SingleArgGatesKeepStructure checks RemoveNullGates
// on OR(g1, g2), where g1 and g2 are single-argument ANDs over the same
// event, leaves the graph structurally valid.
func (s *PDAGSuite) TestRemoveNullGates_SingleArgGatesKeepStructure() {
	require := require.New(s.T())
	m := model.Model{
		TopGate: "top",
		Gates: []model.Gate{
			{ID: "top", Formula: model.Formula{Connective: model.OR, Args: []model.FormulaArg{gateRef("g1"), gateRef("g2")}}},
			{ID: "g1", Formula: model.Formula{Connective: model.AND, Args: []model.FormulaArg{be("A", 0.1)}}},
			{ID: "g2", Formula: model.Formula{Connective: model.AND, Args: []model.FormulaArg{be("A", 0.1)}}},
		},
	}
	p, err := pdag.Build(m)
	require.NoError(err)
	require.NoError(p.RemoveNullGates())
	require.NoError(p.AssertStructure())
}

// TestNormalizeGates_XORExpansion checks XOR(A,B) expands to an
// OR-of-two-ANDs shape with no XOR connective remaining reachable from
// root.
func (s *PDAGSuite) TestNormalizeGates_XORExpansion() {
	require := require.New(s.T())
	m := model.Model{
		TopGate: "top",
		Gates: []model.Gate{
			{ID: "top", Formula: model.Formula{Connective: model.XOR, Args: []model.FormulaArg{be("A", 0.1), be("B", 0.2)}}},
		},
	}
	p, err := pdag.Build(m)
	require.NoError(err)
	require.NoError(p.NormalizeGates())
	require.NoError(p.AssertStructure())

	g, ok := p.Gate(p.Root)
	require.True(ok)
	require.Equal(model.OR, g.Connective)
}

// TestNormalizeGates_AtLeastExpansion checks AT-LEAST(2,[A,B,C])
// expands without leaving any AT-LEAST gate with k in (1,n) reachable.
func (s *PDAGSuite) TestNormalizeGates_AtLeastExpansion() {
	require := require.New(s.T())
	m := model.Model{
		TopGate: "top",
		Gates: []model.Gate{
			{ID: "top", Formula: model.Formula{
				Connective: model.ATLEAST,
				MinNumber:  2,
				Args:       []model.FormulaArg{be("A", 0.1), be("B", 0.2), be("C", 0.3)},
			}},
		},
	}
	p, err := pdag.Build(m)
	require.NoError(err)
	require.NoError(p.NormalizeGates())
	require.NoError(p.AssertStructure())

	g, ok := p.Gate(p.Root)
	require.True(ok)
	require.Equal(model.OR, g.Connective)
}

// TestNormalizeGates_NAND checks NAND flips to AND with the parent edge
// carrying the complement.
func (s *PDAGSuite) TestNormalizeGates_NAND() {
	require := require.New(s.T())
	m := model.Model{
		TopGate: "top",
		Gates: []model.Gate{
			{ID: "top", Formula: model.Formula{Connective: model.OR, Args: []model.FormulaArg{gateRef("g1")}}},
			{ID: "g1", Formula: model.Formula{Connective: model.NAND, Args: []model.FormulaArg{be("A", 0.1), be("B", 0.2)}}},
		},
	}
	p, err := pdag.Build(m)
	require.NoError(err)
	require.NoError(p.NormalizeGates())
	require.NoError(p.AssertStructure())

	g1h, ok := p.GateHandle("g1")
	require.True(ok)
	g1, ok := p.Gate(g1h)
	require.True(ok)
	require.Equal(model.AND, g1.Connective)
}

// TestPropagateComplements_CreatesTwin checks a complemented reference
// to a non-module gate AND(A, B) is replaced by an uncomplemented
// reference to its complement twin, an OR gate.
func (s *PDAGSuite) TestPropagateComplements_CreatesTwin() {
	require := require.New(s.T())
	m := model.Model{
		TopGate: "top",
		Gates: []model.Gate{
			{ID: "top", Formula: model.Formula{Connective: model.AND, Args: []model.FormulaArg{
				{Kind: model.GateArg, GateID: "shared", Complement: true},
				be("X", 0.5),
			}}},
			{ID: "shared", Formula: model.Formula{Connective: model.AND, Args: []model.FormulaArg{be("A", 0.1), be("B", 0.2)}}},
		},
	}
	p, err := pdag.Build(m)
	require.NoError(err)
	require.NoError(p.NormalizeGates())
	require.NoError(p.PropagateComplements())
	require.NoError(p.AssertStructure())

	g, ok := p.Gate(p.Root)
	require.True(ok)
	require.Equal(pdag.RefGate, g.Args[0].Kind)
	require.False(g.Args[0].Complement)
	twin, ok := p.Gate(g.Args[0].Handle)
	require.True(ok)
	require.Equal(model.OR, twin.Connective)
}

// TestDetectModules_IndependentSubtreeIsModule checks a gate referenced
// by exactly one parent, whose own subtree shares no gate with the rest
// of the graph, is flagged as a module.
func (s *PDAGSuite) TestDetectModules_IndependentSubtreeIsModule() {
	require := require.New(s.T())
	m := model.Model{
		TopGate: "top",
		Gates: []model.Gate{
			{ID: "top", Formula: model.Formula{Connective: model.OR, Args: []model.FormulaArg{gateRef("iso"), be("X", 0.5)}}},
			{ID: "iso", Formula: model.Formula{Connective: model.AND, Args: []model.FormulaArg{be("A", 0.1), be("B", 0.2)}}},
		},
	}
	p, err := pdag.Build(m)
	require.NoError(err)
	require.NoError(p.DetectModules())

	isoH, ok := p.GateHandle("iso")
	require.True(ok)
	iso, ok := p.Gate(isoH)
	require.True(ok)
	require.True(iso.Module)
}

// TestDetectModules_SharedGateIsNotAModule checks a gate with two
// distinct parents is never flagged as a module.
func (s *PDAGSuite) TestDetectModules_SharedGateIsNotAModule() {
	require := require.New(s.T())
	m := model.Model{
		TopGate: "top",
		Gates: []model.Gate{
			{ID: "top", Formula: model.Formula{Connective: model.OR, Args: []model.FormulaArg{gateRef("g1"), gateRef("g2")}}},
			{ID: "g1", Formula: model.Formula{Connective: model.AND, Args: []model.FormulaArg{gateRef("shared"), be("A", 0.1)}}},
			{ID: "g2", Formula: model.Formula{Connective: model.AND, Args: []model.FormulaArg{gateRef("shared"), be("B", 0.2)}}},
			{ID: "shared", Formula: model.Formula{Connective: model.OR, Args: []model.FormulaArg{be("C", 0.3)}}},
		},
	}
	p, err := pdag.Build(m)
	require.NoError(err)
	require.NoError(p.DetectModules())

	sharedH, ok := p.GateHandle("shared")
	require.True(ok)
	shared, ok := p.Gate(sharedH)
	require.True(ok)
	require.False(shared.Module)
}

// TestAssignVariableOrder_AllVariablesRanked checks every variable
// receives a distinct order index.
func (s *PDAGSuite) TestAssignVariableOrder_AllVariablesRanked() {
	require := require.New(s.T())
	m := model.Model{
		TopGate: "top",
		Gates: []model.Gate{
			{ID: "top", Formula: model.Formula{Connective: model.OR, Args: []model.FormulaArg{gateRef("g1"), gateRef("g2")}}},
			{ID: "g1", Formula: model.Formula{Connective: model.AND, Args: []model.FormulaArg{be("A", 0.1), be("B", 0.2)}}},
			{ID: "g2", Formula: model.Formula{Connective: model.AND, Args: []model.FormulaArg{be("B", 0.2), be("C", 0.3)}}},
		},
	}
	p, err := pdag.Build(m)
	require.NoError(err)
	require.NoError(p.AssignVariableOrder())

	seen := make(map[int]bool)
	for _, vh := range p.Variables() {
		v, ok := p.Variable(vh)
		require.True(ok)
		require.False(seen[v.Order], "order index %d reused", v.Order)
		seen[v.Order] = true
	}
	require.Len(seen, p.NumVariables())
}

// TestCCFProxy_SubstitutesMember checks a basic event named by a
// CCFGroup is replaced with its proxy gate rather than its own variable.
func (s *PDAGSuite) TestCCFProxy_SubstitutesMember() {
	require := require.New(s.T())
	m := model.Model{
		TopGate:     "top",
		BasicEvents: []model.BasicEvent{{ID: "A", Expression: model.ConstExpression(0.1)}},
		CCFGroups: []model.CCFGroup{
			{ID: "grp1", Model: model.BetaFactor, Members: []string{"A"}, Factors: []float64{0.05}},
		},
		Gates: []model.Gate{
			{ID: "top", Formula: model.Formula{Connective: model.AND, Args: []model.FormulaArg{be("A", 0.1)}}},
		},
	}
	p, err := pdag.Build(m)
	require.NoError(err)

	_, directExists := p.GateHandle("__ccf_proxy__grp1__A")
	require.True(directExists)

	g, ok := p.Gate(p.Root)
	require.True(ok)
	require.Equal(pdag.RefGate, g.Args[0].Kind)
}
