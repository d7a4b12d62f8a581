package run

import (
	"encoding/json"

	"simlm/domain/core"
	"simlm/domain/frame"
	"simlm/domain/model"
	"simlm/domain/stats"
)

// Manifest is the persisted audit record of one simulation run: the full
// scenario declaration plus the seed it ran under, so the run can be
// re-derived bit for bit. The dataset itself is never persisted.
type Manifest struct {
	RunID        core.RunID       `json:"run_id" db:"run_id"`
	ScenarioID   core.ScenarioID  `json:"scenario_id,omitempty" db:"scenario_id"`
	ScenarioName string           `json:"scenario_name" db:"scenario_name"`
	Scenario     json.RawMessage  `json:"scenario" db:"scenario"`
	Seed         int64            `json:"seed" db:"seed"`
	N            int              `json:"n" db:"n"`
	Fit          *stats.FitResult `json:"fit,omitempty" db:"-"`
	CreatedAt    core.Timestamp   `json:"created_at" db:"created_at"`
}

// NewManifest builds a manifest from a scenario, the frame it produced, and an
// optional recovery fit
func NewManifest(s model.Scenario, f *frame.Frame, fit *stats.FitResult) (*Manifest, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return &Manifest{
		RunID:        f.RunID,
		ScenarioID:   s.ID,
		ScenarioName: s.Name,
		Scenario:     raw,
		Seed:         f.Seed,
		N:            f.N,
		Fit:          fit,
		CreatedAt:    f.CreatedAt,
	}, nil
}

// DecodeScenario unmarshals the stored scenario declaration
func (m *Manifest) DecodeScenario() (model.Scenario, error) {
	var s model.Scenario
	err := json.Unmarshal(m.Scenario, &s)
	return s, err
}
