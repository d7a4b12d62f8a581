package model

import (
	"fmt"
	"strings"

	"simlm/domain/core"
)

// TermSpec declares one model term: a main effect (one variable) or an
// interaction (two or more). Declared terms form an explicit, non-overlapping
// list; nothing is inferred from naming, and each term is summed exactly once.
type TermSpec struct {
	Variables []core.VariableKey `json:"variables"`
	Coef      Coefficient        `json:"coef"`
}

// Name returns the canonical term label, e.g. "diet" or "diet:length"
func (t TermSpec) Name() string {
	parts := make([]string, len(t.Variables))
	for i, v := range t.Variables {
		parts[i] = string(v)
	}
	return strings.Join(parts, ":")
}

// IsInteraction reports whether the term spans more than one predictor
func (t TermSpec) IsInteraction() bool {
	return len(t.Variables) > 1
}

// Scenario is the complete declaration of one simulation run: sample size,
// intercept, residual noise, seed, predictors and declared terms.
type Scenario struct {
	ID         core.ScenarioID  `json:"id,omitempty"`
	Name       string           `json:"name"`
	N          int              `json:"n"`
	Intercept  float64          `json:"intercept"`
	ResidualSD float64          `json:"residual_sd"`
	Seed       int64            `json:"seed"`
	Predictors []PredictorSpec  `json:"predictors"`
	Terms      []TermSpec       `json:"terms"`
	Response   core.VariableKey `json:"response,omitempty"` // defaults to "response"
}

// ResponseKey returns the response column name, applying the default
func (s Scenario) ResponseKey() core.VariableKey {
	if s.Response == "" {
		return core.VariableKey("response")
	}
	return s.Response
}

// MeanKey returns the column name for the noise-free linear predictor
func (s Scenario) MeanKey() core.VariableKey {
	return core.VariableKey("mu")
}

// Predictor looks up a declared predictor by name
func (s Scenario) Predictor(key core.VariableKey) (PredictorSpec, bool) {
	for _, p := range s.Predictors {
		if p.Name == key {
			return p, true
		}
	}
	return PredictorSpec{}, false
}

// TermColumns returns the number of design columns the term's reduced design
// matrix has: the product over its variables of (levels-1) for categorical
// predictors and 1 for continuous ones.
func (s Scenario) TermColumns(t TermSpec) (int, error) {
	cols := 1
	for _, v := range t.Variables {
		p, ok := s.Predictor(v)
		if !ok {
			return 0, fmt.Errorf("%w: %s", core.ErrUndeclaredVariable, v)
		}
		if p.Kind == KindCategorical {
			cols *= len(p.Levels) - 1
		}
	}
	return cols, nil
}

// Validate rejects every malformed configuration before any sampling occurs.
func (s Scenario) Validate() error {
	if s.N <= 0 {
		return core.NewValidationError("n", fmt.Sprintf("must be > 0, got %d", s.N))
	}
	if s.ResidualSD < 0 {
		return core.NewValidationError("residual_sd", fmt.Sprintf("must be >= 0, got %g", s.ResidualSD))
	}
	if len(s.Predictors) == 0 && len(s.Terms) > 0 {
		return core.NewValidationError("predictors", "terms declared but no predictors")
	}

	seen := make(map[core.VariableKey]bool, len(s.Predictors))
	for _, p := range s.Predictors {
		if err := p.Validate(); err != nil {
			return err
		}
		if seen[p.Name] {
			return core.NewValidationError(string(p.Name), "duplicate predictor name")
		}
		seen[p.Name] = true
	}
	if seen[s.ResponseKey()] || s.ResponseKey() == s.MeanKey() {
		return core.NewValidationError("response", fmt.Sprintf("column name %q collides with a predictor", s.ResponseKey()))
	}

	termSeen := make(map[string]bool, len(s.Terms))
	for _, t := range s.Terms {
		if len(t.Variables) == 0 {
			return core.NewValidationError("terms", "term with no variables")
		}
		varSeen := make(map[core.VariableKey]bool, len(t.Variables))
		categorical := false
		for _, v := range t.Variables {
			p, ok := s.Predictor(v)
			if !ok {
				return fmt.Errorf("%w: %s in term %s", core.ErrUndeclaredVariable, v, t.Name())
			}
			if varSeen[v] {
				return core.NewValidationError(t.Name(), fmt.Sprintf("variable %s repeated within term", v))
			}
			varSeen[v] = true
			if p.Kind == KindCategorical {
				categorical = true
			}
		}
		if termSeen[t.Name()] {
			return core.NewValidationError("terms", fmt.Sprintf("duplicate term %s", t.Name()))
		}
		termSeen[t.Name()] = true

		want, err := s.TermColumns(t)
		if err != nil {
			return err
		}
		// Shape rule: continuous-only terms take a scalar; anything involving a
		// categorical predictor takes a vector with exactly one entry per
		// non-reference design column. A mismatch fails fast, never truncates.
		if !categorical {
			if t.Coef.Kind != CoefScalar {
				return core.NewCoefficientShapeError(t.Name(), 1, t.Coef.Len())
			}
		} else {
			wantKind := CoefPerCategory
			if t.IsInteraction() {
				wantKind = CoefPerCombination
			}
			if t.Coef.Kind != wantKind {
				return core.NewValidationError(t.Name(), fmt.Sprintf("coefficient kind %q, want %q", t.Coef.Kind, wantKind))
			}
			if t.Coef.Len() != want {
				return core.NewCoefficientShapeError(t.Name(), want, t.Coef.Len())
			}
		}
	}
	return nil
}
