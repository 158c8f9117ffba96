// SPDX-License-Identifier: MIT
package analysis_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/lvpra/analysis"
	"github.com/katalvlaran/lvpra/internal/telemetry"
	"github.com/katalvlaran/lvpra/model"
)

type AnalysisSuite struct {
	suite.Suite
}

func TestAnalysisSuite(t *testing.T) {
	suite.Run(t, new(AnalysisSuite))
}

func be(id string, mean float64) model.FormulaArg {
	return model.FormulaArg{Kind: model.BasicEventArg, BasicEvent: &model.BasicEvent{ID: id, Expression: model.ConstExpression(mean)}}
}

func gateRef(id string) model.FormulaArg {
	return model.FormulaArg{Kind: model.GateArg, GateID: id}
}

func orOfAnds() model.Model {
	return model.Model{
		TopGate: "top",
		Gates: []model.Gate{
			{ID: "top", Formula: model.Formula{Connective: model.OR, Args: []model.FormulaArg{gateRef("g1"), gateRef("g2")}}},
			{ID: "g1", Formula: model.Formula{Connective: model.AND, Args: []model.FormulaArg{be("A", 0.1), be("B", 0.2)}}},
			{ID: "g2", Formula: model.Formula{Connective: model.AND, Args: []model.FormulaArg{be("C", 0.3), be("D", 0.4)}}},
		},
	}
}

// TestAnalyze_BDDAlgorithmExactProbabilityAndCutSets checks the default
// bdd algorithm produces the exact probability and both two-literal
// minimal cut sets.
func (s *AnalysisSuite) TestAnalyze_BDDAlgorithmExactProbabilityAndCutSets() {
	require := require.New(s.T())
	settings := model.NewSettings()
	res, err := analysis.Analyze(orOfAnds(), settings)
	require.NoError(err)
	require.NotNil(res.BDD)
	want := 0.1*0.2 + 0.3*0.4 - 0.1*0.2*0.3*0.4
	require.InDelta(want, res.Probability, 1e-9)
	require.Len(res.CutSets, 2)
	for _, cs := range res.CutSets {
		require.Len(cs, 2)
	}
}

// TestAnalyze_MOCUSAlgorithmReportsRareEventSum checks the mocus
// algorithm (no BDD) with two AND terms over distinct events: with the
// default approximation the probability is rare-event's sum of the
// product probabilities, AB + CD, not the exact AB + CD − ABCD.
func (s *AnalysisSuite) TestAnalyze_MOCUSAlgorithmReportsRareEventSum() {
	require := require.New(s.T())
	settings := model.NewSettings(model.WithAlgorithm(model.AlgorithmMOCUS))
	res, err := analysis.Analyze(orOfAnds(), settings)
	require.NoError(err)
	require.Nil(res.BDD)
	require.NotNil(res.ZBDD)
	want := 0.1*0.2 + 0.3*0.4
	require.InDelta(want, res.Probability, 1e-9)
}

// TestAnalyze_ImportanceCoversEveryCutSetEvent checks every basic event
// appearing in the model's cut sets gets an importance entry, and that
// A's MIF is the analytic derivative of the exact P = AB + CD − ABCD.
func (s *AnalysisSuite) TestAnalyze_ImportanceCoversEveryCutSetEvent() {
	require := require.New(s.T())
	settings := model.NewSettings()
	res, err := analysis.Analyze(orOfAnds(), settings)
	require.NoError(err)
	require.Len(res.Importance, 4)
	fa, ok := res.Importance["A"]
	require.True(ok)
	require.InDelta(0.2*(1-0.3*0.4), fa.MIF, 1e-9) // dP/dA = B(1 − CD)
}

// TestAnalyze_PrimeImplicantsRequiresBDDAndExact checks Settings.Validate
// rejects prime_implicants paired with mocus or a non-none
// approximation before Analyze does any work.
func (s *AnalysisSuite) TestAnalyze_PrimeImplicantsRequiresBDDAndExact() {
	require := require.New(s.T())
	bad := model.NewSettings(model.WithAlgorithm(model.AlgorithmMOCUS), model.WithPrimeImplicants(true))
	_, err := analysis.Analyze(orOfAnds(), bad)
	require.ErrorIs(err, model.ErrPrimeImplicantsNeedBDD)

	bad2 := model.NewSettings(model.WithPrimeImplicants(true), model.WithApproximation(model.ApproximationMCUB))
	_, err = analysis.Analyze(orOfAnds(), bad2)
	require.ErrorIs(err, model.ErrPrimeImplicantsNeedExact)
}

// TestAnalyze_ZBDDAlgorithmMatchesBDDProbability checks the zbdd
// algorithm setting still computes through the exact BDD recurrence
// (analysis.compile builds the same BDD and ZBDD for both settings),
// so its probability matches the bdd-algorithm run exactly.
func (s *AnalysisSuite) TestAnalyze_ZBDDAlgorithmMatchesBDDProbability() {
	require := require.New(s.T())
	want, err := analysis.Analyze(orOfAnds(), model.NewSettings())
	require.NoError(err)

	got, err := analysis.Analyze(orOfAnds(), model.NewSettings(model.WithAlgorithm(model.AlgorithmZBDD)))
	require.NoError(err)

	require.InDelta(want.Probability, got.Probability, 1e-9)
	require.Len(got.CutSets, 2)
}

// TestAnalyze_WithLoggerTracesEachStage checks WithLogger actually
// reaches Analyze's pipeline: with it omitted lvpra stays silent, and
// with it supplied each stage's component tag shows up in the log.
func (s *AnalysisSuite) TestAnalyze_WithLoggerTracesEachStage() {
	require := require.New(s.T())

	var silent bytes.Buffer
	_, err := analysis.Analyze(orOfAnds(), model.NewSettings(), analysis.WithLogger(telemetry.New(telemetry.Options{Output: &silent})))
	require.NoError(err)
	require.Empty(silent.String(), "info-level default logger should emit nothing for debug-level traces")

	var buf bytes.Buffer
	log := telemetry.New(telemetry.Options{Debug: true, Output: &buf})
	_, err = analysis.Analyze(orOfAnds(), model.NewSettings(), analysis.WithLogger(log))
	require.NoError(err)

	out := buf.String()
	require.Contains(out, `"component":"pdag"`)
	require.Contains(out, `"component":"bdd"`)
	require.Contains(out, `"component":"zbdd"`)
	require.Contains(out, `"component":"importance"`)
	require.True(strings.Count(out, "\n") >= 4)
}
