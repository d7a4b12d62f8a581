package ports

import (
	"context"

	"simlm/domain/core"
	"simlm/domain/frame"
	"simlm/domain/model"
	"simlm/domain/run"
	"simlm/domain/stats"
)

// Simulator produces a simulated dataset from a validated scenario
type Simulator interface {
	Run(s model.Scenario) (*frame.Frame, error)
}

// Fitter fits a linear model to a response and column-major design columns
type Fitter interface {
	Fit(y []float64, cols [][]float64, names []string) (*stats.FitResult, error)
}

// RunLedger persists run manifests so past runs can be re-derived exactly
type RunLedger interface {
	Create(ctx context.Context, m *run.Manifest) error
	GetByID(ctx context.Context, id core.RunID) (*run.Manifest, error)
	ListRecent(ctx context.Context, limit int) ([]run.Manifest, error)
}

// DatasetWriter exports a frame to a file, format chosen by extension
type DatasetWriter interface {
	Write(f *frame.Frame, path string) error
}
