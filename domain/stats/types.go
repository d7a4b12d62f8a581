package stats

import (
	"simlm/domain/core"
)

// CoefficientEstimate is one fitted model coefficient with its inference
type CoefficientEstimate struct {
	Term     string  `json:"term"`
	Estimate float64 `json:"estimate"`
	StdError float64 `json:"std_error"`
	TValue   float64 `json:"t_value"`
	PValue   float64 `json:"p_value"`
}

// FitResult is the output of an ordinary least squares fit
type FitResult struct {
	Terms      []CoefficientEstimate `json:"terms"`
	ResidualSD float64               `json:"residual_sd"`
	RSquared   float64               `json:"r_squared"`
	SampleSize int                   `json:"sample_size"`
	DF         int                   `json:"df"` // residual degrees of freedom
}

// Estimate looks up a fitted coefficient by term name
func (r *FitResult) Estimate(term string) (CoefficientEstimate, bool) {
	for _, t := range r.Terms {
		if t.Term == term {
			return t, true
		}
	}
	return CoefficientEstimate{}, false
}

// TermRecovery summarizes how well one true coefficient was recovered across
// replicate simulations
type TermRecovery struct {
	Term         string  `json:"term"`
	True         float64 `json:"true"`
	MeanEstimate float64 `json:"mean_estimate"`
	SDEstimate   float64 `json:"sd_estimate"`
	Bias         float64 `json:"bias"`     // mean estimate minus true value
	Coverage     float64 `json:"coverage"` // fraction of replicates with |est-true| <= 2 SE
}

// RecoveryReport is the aggregate of a repeated-simulation recovery study
type RecoveryReport struct {
	ScenarioName string         `json:"scenario_name"`
	Replicates   int            `json:"replicates"`
	SampleSize   int            `json:"sample_size"`
	Seed         int64          `json:"seed"`
	ResidualSD   float64        `json:"residual_sd"`
	Terms        []TermRecovery `json:"terms"`
	CreatedAt    core.Timestamp `json:"created_at"`
}

// Term looks up a recovery row by term name
func (r *RecoveryReport) Term(name string) (TermRecovery, bool) {
	for _, t := range r.Terms {
		if t.Term == name {
			return t, true
		}
	}
	return TermRecovery{}, false
}
