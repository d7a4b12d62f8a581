package sim

import (
	"simlm/adapters/sampling"
	"simlm/domain/core"
	"simlm/domain/frame"
	"simlm/domain/model"
	"simlm/internal/design"
)

// Engine runs linear-model simulations: draw predictors, build design
// matrices, compute the linear predictor, add normal residual noise.
// A run is a pure one-shot computation; every failure is a rejected
// configuration reported before sampling starts.
type Engine struct{}

// NewEngine creates a simulation engine
func NewEngine() *Engine {
	return &Engine{}
}

// Run validates the scenario and produces its simulated dataset. The run owns
// a private generator seeded from the scenario, so identical scenarios produce
// bit-identical frames.
func (e *Engine) Run(s model.Scenario) (*frame.Frame, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	gen := sampling.New(s.Seed)

	// Predictors are drawn independently of each other, in declaration order,
	// and fully before the response is computed.
	src := design.MapSource{
		Num: make(map[core.VariableKey][]float64),
		Lab: make(map[core.VariableKey][]string),
	}
	for _, p := range s.Predictors {
		switch p.Kind {
		case model.KindContinuous:
			values, err := gen.Draw(*p.Sampling, s.N)
			if err != nil {
				return nil, err
			}
			src.Num[p.Name] = values
		case model.KindCategorical:
			labels, err := gen.AssignLabels(s.N, p.Levels, p.Assignment)
			if err != nil {
				return nil, err
			}
			src.Lab[p.Name] = labels
		}
	}

	// Linear predictor: intercept plus each declared term summed exactly once.
	mu := make([]float64, s.N)
	for i := range mu {
		mu[i] = s.Intercept
	}
	for _, t := range s.Terms {
		m, err := design.TermMatrix(src, s, t)
		if err != nil {
			return nil, err
		}
		entries := t.Coef.Entries()
		if len(entries) != m.ColumnCount() {
			return nil, core.NewCoefficientShapeError(t.Name(), m.ColumnCount(), len(entries))
		}
		for j, col := range m.Cols {
			b := entries[j]
			if b == 0 {
				continue
			}
			for i := range mu {
				mu[i] += b * col[i]
			}
		}
	}

	// Observed response. A zero residual sd yields the mean exactly, with no
	// stochastic deviation and no entropy consumed.
	response := gen.NormalNoise(mu, s.ResidualSD)

	f := frame.New(s.N)
	f.ScenarioID = s.ID
	f.Seed = s.Seed
	for _, p := range s.Predictors {
		var err error
		switch p.Kind {
		case model.KindContinuous:
			err = f.AddNumeric(p.Name, src.Num[p.Name])
		case model.KindCategorical:
			err = f.AddLabels(p.Name, src.Lab[p.Name])
		}
		if err != nil {
			return nil, err
		}
	}
	if err := f.AddNumeric(s.MeanKey(), mu); err != nil {
		return nil, err
	}
	if err := f.AddNumeric(s.ResponseKey(), response); err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Design flattens the reduced design matrices of the given terms over a data
// source into fit-ready columns. Callers pass a subset of the scenario's terms
// to fit a deliberately misspecified model.
func Design(src design.Source, s model.Scenario, terms []model.TermSpec) (cols [][]float64, names []string, err error) {
	for _, t := range terms {
		m, err := design.TermMatrix(src, s, t)
		if err != nil {
			return nil, nil, err
		}
		cols = append(cols, m.Cols...)
		names = append(names, m.Names...)
	}
	return cols, names, nil
}
