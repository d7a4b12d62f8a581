package frame

import (
	"fmt"

	"simlm/domain/core"
)

// ColumnKind distinguishes numeric columns from categorical label columns
type ColumnKind string

const (
	ColNumeric ColumnKind = "numeric"
	ColLabel   ColumnKind = "label"
)

// Column is one variable of a simulated dataset
type Column struct {
	Key     core.VariableKey `json:"key"`
	Kind    ColumnKind       `json:"kind"`
	Numeric []float64        `json:"numeric,omitempty"`
	Labels  []string         `json:"labels,omitempty"`
}

// Len returns the column's row count
func (c Column) Len() int {
	if c.Kind == ColLabel {
		return len(c.Labels)
	}
	return len(c.Numeric)
}

// Frame is the canonical output of a simulation run: one row per observation,
// one column per predictor plus the noise-free mean and the observed response.
// Columns are immutable once the run that built them returns.
type Frame struct {
	N       int      `json:"n"`
	Columns []Column `json:"columns"`

	// Provenance for replayability
	ScenarioID core.ScenarioID `json:"scenario_id,omitempty"`
	RunID      core.RunID      `json:"run_id"`
	Seed       int64           `json:"seed"`
	CreatedAt  core.Timestamp  `json:"created_at"`
}

// New creates an empty frame for n observations
func New(n int) *Frame {
	return &Frame{
		N:         n,
		RunID:     core.RunID(core.NewID()),
		CreatedAt: core.Now(),
	}
}

// AddNumeric appends a numeric column, enforcing the row-count invariant
func (f *Frame) AddNumeric(key core.VariableKey, values []float64) error {
	if len(values) != f.N {
		return core.NewValidationError(string(key), fmt.Sprintf("column has %d rows, frame has %d", len(values), f.N))
	}
	if f.hasColumn(key) {
		return core.NewValidationError(string(key), "duplicate column")
	}
	f.Columns = append(f.Columns, Column{Key: key, Kind: ColNumeric, Numeric: values})
	return nil
}

// AddLabels appends a categorical label column, enforcing the row-count invariant
func (f *Frame) AddLabels(key core.VariableKey, labels []string) error {
	if len(labels) != f.N {
		return core.NewValidationError(string(key), fmt.Sprintf("column has %d rows, frame has %d", len(labels), f.N))
	}
	if f.hasColumn(key) {
		return core.NewValidationError(string(key), "duplicate column")
	}
	f.Columns = append(f.Columns, Column{Key: key, Kind: ColLabel, Labels: labels})
	return nil
}

func (f *Frame) hasColumn(key core.VariableKey) bool {
	for _, c := range f.Columns {
		if c.Key == key {
			return true
		}
	}
	return false
}

// Column looks up a column by key
func (f *Frame) Column(key core.VariableKey) (Column, bool) {
	for _, c := range f.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}

// Numeric returns a numeric column's values
func (f *Frame) Numeric(key core.VariableKey) ([]float64, bool) {
	c, ok := f.Column(key)
	if !ok || c.Kind != ColNumeric {
		return nil, false
	}
	return c.Numeric, true
}

// Labels returns a label column's values
func (f *Frame) Labels(key core.VariableKey) ([]string, bool) {
	c, ok := f.Column(key)
	if !ok || c.Kind != ColLabel {
		return nil, false
	}
	return c.Labels, true
}

// Keys returns the column keys in insertion order
func (f *Frame) Keys() []core.VariableKey {
	keys := make([]core.VariableKey, len(f.Columns))
	for i, c := range f.Columns {
		keys[i] = c.Key
	}
	return keys
}

// Validate ensures the frame is internally consistent
func (f *Frame) Validate() error {
	if f.N <= 0 {
		return core.ErrInsufficientData
	}
	for _, c := range f.Columns {
		if c.Len() != f.N {
			return core.NewValidationError(string(c.Key),
				fmt.Sprintf("column has %d rows, expected %d", c.Len(), f.N))
		}
	}
	return nil
}
