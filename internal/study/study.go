package study

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"simlm/adapters/stats/ols"
	"simlm/domain/core"
	"simlm/domain/model"
	simstats "simlm/domain/stats"
	"simlm/internal/design"
	"simlm/internal/sim"
)

// Config declares a repeated-recovery study: simulate the scenario R times,
// fit each replicate, and summarize how well the true coefficients come back.
type Config struct {
	Scenario   model.Scenario
	Replicates int
	// Concurrency bounds parallel replicates; <= 0 means 4
	Concurrency int
	// FitTerms optionally fits a different (e.g. deliberately misspecified)
	// term list than the one that generated the data. Nil fits all declared terms.
	FitTerms []model.TermSpec
}

// Study runs recovery studies over a simulation engine and an OLS fitter
type Study struct {
	engine *sim.Engine
	fitter *ols.Fitter
}

// New creates a recovery study runner
func New(engine *sim.Engine, fitter *ols.Fitter) *Study {
	return &Study{engine: engine, fitter: fitter}
}

// Run executes the study. Replicate k reseeds its own generator with
// scenario seed + k, so replicates are independent of each other and the whole
// study is reproducible regardless of scheduling.
func (st *Study) Run(ctx context.Context, cfg Config) (*simstats.RecoveryReport, error) {
	if cfg.Replicates <= 0 {
		return nil, core.NewValidationError("replicates", fmt.Sprintf("must be > 0, got %d", cfg.Replicates))
	}
	if err := cfg.Scenario.Validate(); err != nil {
		return nil, err
	}
	fitTerms := cfg.FitTerms
	if fitTerms == nil {
		fitTerms = cfg.Scenario.Terms
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	var mu sync.Mutex
	fits := make([]*simstats.FitResult, cfg.Replicates)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for k := 0; k < cfg.Replicates; k++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sc := cfg.Scenario
			sc.Seed = cfg.Scenario.Seed + int64(k)
			f, err := st.engine.Run(sc)
			if err != nil {
				return fmt.Errorf("replicate %d: %w", k, err)
			}
			y, ok := f.Numeric(sc.ResponseKey())
			if !ok {
				return core.NewNotFoundError("response column", string(sc.ResponseKey()))
			}
			cols, names, err := sim.Design(f, sc, fitTerms)
			if err != nil {
				return fmt.Errorf("replicate %d: %w", k, err)
			}
			fit, err := st.fitter.Fit(y, cols, names)
			if err != nil {
				return fmt.Errorf("replicate %d: %w", k, err)
			}
			mu.Lock()
			fits[k] = fit
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	truth, err := trueCoefficients(cfg.Scenario, fitTerms)
	if err != nil {
		return nil, err
	}

	report := &simstats.RecoveryReport{
		ScenarioName: cfg.Scenario.Name,
		Replicates:   cfg.Replicates,
		SampleSize:   cfg.Scenario.N,
		Seed:         cfg.Scenario.Seed,
		ResidualSD:   cfg.Scenario.ResidualSD,
		CreatedAt:    core.Now(),
	}

	// All replicates fit the same design, so coefficient order is shared.
	for j, est := range fits[0].Terms {
		values := make([]float64, cfg.Replicates)
		covered := 0
		for k, fit := range fits {
			c := fit.Terms[j]
			values[k] = c.Estimate
			if math.Abs(c.Estimate-truth[est.Term]) <= 2*c.StdError {
				covered++
			}
		}
		meanEst, err := stats.Mean(values)
		if err != nil {
			return nil, err
		}
		sdEst := 0.0
		if cfg.Replicates > 1 {
			sdEst, err = stats.StandardDeviationSample(values)
			if err != nil {
				return nil, err
			}
		}
		report.Terms = append(report.Terms, simstats.TermRecovery{
			Term:         est.Term,
			True:         truth[est.Term],
			MeanEstimate: meanEst,
			SDEstimate:   sdEst,
			Bias:         meanEst - truth[est.Term],
			Coverage:     float64(covered) / float64(cfg.Replicates),
		})
	}
	return report, nil
}

// trueCoefficients maps fitted design column names to the coefficients that
// generated the data. Fitted terms the scenario never declared are true zeros.
func trueCoefficients(s model.Scenario, fitTerms []model.TermSpec) (map[string]float64, error) {
	truth := map[string]float64{ols.InterceptTerm: s.Intercept}
	declared := make(map[string]model.TermSpec, len(s.Terms))
	for _, t := range s.Terms {
		declared[t.Name()] = t
	}
	for _, t := range fitTerms {
		names, err := design.TermColumnNames(s, t)
		if err != nil {
			return nil, err
		}
		gen, ok := declared[t.Name()]
		for i, name := range names {
			if !ok {
				truth[name] = 0
				continue
			}
			truth[name] = gen.Coef.Entries()[i]
		}
	}
	return truth, nil
}
