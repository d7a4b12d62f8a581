package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simlm/domain/core"
)

func validScenario() Scenario {
	return Scenario{
		Name:       "crab_weight",
		N:          60,
		Intercept:  175,
		ResidualSD: 20,
		Seed:       42,
		Predictors: []PredictorSpec{
			{
				Name:     "length",
				Kind:     KindContinuous,
				Sampling: &SamplingRule{Family: DistNormal, Mean: 48, SD: 3},
			},
			{
				Name:       "diet",
				Kind:       KindCategorical,
				Levels:     []string{"control", "algae", "pellets"},
				Reference:  "control",
				Assignment: AssignBlocks,
			},
		},
		Terms: []TermSpec{
			{Variables: []core.VariableKey{"length"}, Coef: Scalar(2)},
			{Variables: []core.VariableKey{"diet"}, Coef: PerCategory(30, -10)},
			{Variables: []core.VariableKey{"diet", "length"}, Coef: PerCombination(0.5, -0.25)},
		},
	}
}

func TestScenarioValidate_OK(t *testing.T) {
	require.NoError(t, validScenario().Validate())
}

func TestScenarioValidate_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Scenario)
	}{
		{"non-positive n", func(s *Scenario) { s.N = 0 }},
		{"negative residual sd", func(s *Scenario) { s.ResidualSD = -1 }},
		{"negative sampling sd", func(s *Scenario) { s.Predictors[0].Sampling.SD = -3 }},
		{"continuous without sampling rule", func(s *Scenario) { s.Predictors[0].Sampling = nil }},
		{"empty level set", func(s *Scenario) { s.Predictors[1].Levels = nil }},
		{"single level", func(s *Scenario) { s.Predictors[1].Levels = []string{"control"} }},
		{"duplicate level", func(s *Scenario) { s.Predictors[1].Levels = []string{"control", "control", "algae"} }},
		{"undeclared reference", func(s *Scenario) { s.Predictors[1].Reference = "kelp" }},
		{"missing reference", func(s *Scenario) { s.Predictors[1].Reference = "" }},
		{"missing assignment scheme", func(s *Scenario) { s.Predictors[1].Assignment = "" }},
		{"duplicate predictor", func(s *Scenario) { s.Predictors = append(s.Predictors, s.Predictors[0]) }},
		{"interaction over undeclared predictor", func(s *Scenario) {
			s.Terms = append(s.Terms, TermSpec{Variables: []core.VariableKey{"diet", "salinity"}, Coef: PerCombination(1, 2)})
		}},
		{"categorical coefficient too short", func(s *Scenario) { s.Terms[1].Coef = PerCategory(30) }},
		{"categorical coefficient too long", func(s *Scenario) { s.Terms[1].Coef = PerCategory(0, 30, -10) }},
		{"interaction coefficient wrong length", func(s *Scenario) { s.Terms[2].Coef = PerCombination(0.5) }},
		{"scalar coefficient on categorical term", func(s *Scenario) { s.Terms[1].Coef = Scalar(30) }},
		{"vector coefficient on continuous term", func(s *Scenario) { s.Terms[0].Coef = PerCategory(2) }},
		{"duplicate term", func(s *Scenario) { s.Terms = append(s.Terms, s.Terms[0]) }},
		{"response collides with predictor", func(s *Scenario) { s.Response = "length" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := validScenario()
			tc.mutate(&s)
			err := s.Validate()
			require.Error(t, err)
			assert.True(t, core.IsValidationError(err), "expected validation error, got %v", err)
		})
	}
}

func TestTermColumns(t *testing.T) {
	s := validScenario()

	cols, err := s.TermColumns(s.Terms[0])
	require.NoError(t, err)
	assert.Equal(t, 1, cols, "continuous main effect")

	cols, err = s.TermColumns(s.Terms[1])
	require.NoError(t, err)
	assert.Equal(t, 2, cols, "3-level categorical main effect")

	cols, err = s.TermColumns(s.Terms[2])
	require.NoError(t, err)
	assert.Equal(t, 2, cols, "categorical x continuous interaction")
}

func TestTermName(t *testing.T) {
	s := validScenario()
	assert.Equal(t, "length", s.Terms[0].Name())
	assert.Equal(t, "diet:length", s.Terms[2].Name())
	assert.True(t, s.Terms[2].IsInteraction())
	assert.False(t, s.Terms[0].IsInteraction())
}

func TestCoefficientEntries(t *testing.T) {
	assert.Equal(t, []float64{2}, Scalar(2).Entries())
	assert.Equal(t, []float64{30, -10}, PerCategory(30, -10).Entries())
	assert.Equal(t, 1, Scalar(2).Len())
	assert.Equal(t, 2, PerCombination(0.5, -0.25).Len())
}

func TestNonReferenceLevels(t *testing.T) {
	p := PredictorSpec{
		Name:      "diet",
		Kind:      KindCategorical,
		Levels:    []string{"control", "algae", "pellets"},
		Reference: "algae",
	}
	assert.Equal(t, []string{"control", "pellets"}, p.NonReferenceLevels())
}
