package model

import (
	"fmt"

	"simlm/domain/core"
)

// DistributionFamily identifies the sampling distribution for a continuous predictor
type DistributionFamily string

const (
	DistNormal    DistributionFamily = "normal"
	DistUniform   DistributionFamily = "uniform"
	DistLogNormal DistributionFamily = "lognormal"
)

// SamplingRule describes how a continuous predictor's values are drawn
type SamplingRule struct {
	Family DistributionFamily `json:"family"`
	Mean   float64            `json:"mean,omitempty"` // normal, lognormal (log-scale mean)
	SD     float64            `json:"sd,omitempty"`   // normal, lognormal (log-scale sd)
	Min    float64            `json:"min,omitempty"`  // uniform
	Max    float64            `json:"max,omitempty"`  // uniform
}

// Validate checks the sampling rule's parameter domain
func (r SamplingRule) Validate() error {
	switch r.Family {
	case DistNormal, DistLogNormal:
		if r.SD < 0 {
			return core.NewValidationError("sampling.sd", fmt.Sprintf("must be >= 0, got %g", r.SD))
		}
	case DistUniform:
		if r.Max < r.Min {
			return core.NewValidationError("sampling", fmt.Sprintf("uniform max %g < min %g", r.Max, r.Min))
		}
	default:
		return core.NewValidationError("sampling.family", fmt.Sprintf("unknown family %q", r.Family))
	}
	return nil
}

// PredictorKind distinguishes continuous from categorical predictors
type PredictorKind string

const (
	KindContinuous  PredictorKind = "continuous"
	KindCategorical PredictorKind = "categorical"
)

// AssignmentScheme determines how categorical labels are assigned across observations
type AssignmentScheme string

const (
	// AssignBlocks partitions the n observations into contiguous per-level blocks
	AssignBlocks AssignmentScheme = "blocks"
	// AssignInterleaved cycles through levels row by row
	AssignInterleaved AssignmentScheme = "interleaved"
	// AssignRandom draws each observation's level uniformly at random
	AssignRandom AssignmentScheme = "random"
)

// PredictorSpec declares one input variable of a scenario
type PredictorSpec struct {
	Name core.VariableKey `json:"name"`
	Kind PredictorKind    `json:"kind"`

	// Continuous predictors
	Sampling *SamplingRule `json:"sampling,omitempty"`

	// Categorical predictors
	Levels     []string         `json:"levels,omitempty"`
	Reference  string           `json:"reference,omitempty"` // explicitly declared, never inferred
	Assignment AssignmentScheme `json:"assignment,omitempty"`
}

// NonReferenceLevels returns the ordered levels excluding the declared reference
func (p PredictorSpec) NonReferenceLevels() []string {
	out := make([]string, 0, len(p.Levels)-1)
	for _, lvl := range p.Levels {
		if lvl != p.Reference {
			out = append(out, lvl)
		}
	}
	return out
}

// Validate checks a single predictor declaration
func (p PredictorSpec) Validate() error {
	if p.Name == "" {
		return core.NewValidationError("predictor.name", "cannot be empty")
	}
	switch p.Kind {
	case KindContinuous:
		if p.Sampling == nil {
			return core.NewValidationError(string(p.Name), "continuous predictor requires a sampling rule")
		}
		if err := p.Sampling.Validate(); err != nil {
			return err
		}
	case KindCategorical:
		if len(p.Levels) < 2 {
			return core.NewValidationError(string(p.Name), "categorical predictor requires at least 2 levels")
		}
		seen := make(map[string]bool, len(p.Levels))
		for _, lvl := range p.Levels {
			if lvl == "" {
				return core.NewValidationError(string(p.Name), "empty level label")
			}
			if seen[lvl] {
				return core.NewValidationError(string(p.Name), fmt.Sprintf("duplicate level %q", lvl))
			}
			seen[lvl] = true
		}
		// Reference must be declared explicitly so the simulated truth and any
		// downstream fit agree on which level carries the zero coefficient.
		if p.Reference == "" {
			return core.NewValidationError(string(p.Name), "reference level must be declared")
		}
		if !seen[p.Reference] {
			return core.NewValidationError(string(p.Name), fmt.Sprintf("reference %q is not a declared level", p.Reference))
		}
		switch p.Assignment {
		case AssignBlocks, AssignInterleaved, AssignRandom:
		case "":
			return core.NewValidationError(string(p.Name), "assignment scheme must be declared")
		default:
			return core.NewValidationError(string(p.Name), fmt.Sprintf("unknown assignment scheme %q", p.Assignment))
		}
	default:
		return core.NewValidationError(string(p.Name), fmt.Sprintf("unknown predictor kind %q", p.Kind))
	}
	return nil
}
