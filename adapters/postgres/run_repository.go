package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"simlm/domain/core"
	"simlm/domain/run"
	"simlm/domain/stats"
	"simlm/ports"
)

// runRepository implements the RunLedger interface
type runRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a new run ledger over Postgres
func NewRunRepository(db *sqlx.DB) ports.RunLedger {
	return &runRepository{db: db}
}

// Migrate creates the runs table if it does not exist
func Migrate(ctx context.Context, db *sqlx.DB) error {
	schema := `CREATE TABLE IF NOT EXISTS runs (
		run_id        TEXT PRIMARY KEY,
		scenario_id   TEXT,
		scenario_name TEXT NOT NULL,
		scenario      JSONB NOT NULL,
		seed          BIGINT NOT NULL,
		n             INTEGER NOT NULL,
		fit           JSONB,
		created_at    TIMESTAMPTZ NOT NULL
	)`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create runs table: %w", err)
	}
	return nil
}

// Create inserts a new run manifest
func (r *runRepository) Create(ctx context.Context, m *run.Manifest) error {
	var fitJSON []byte
	if m.Fit != nil {
		var err error
		fitJSON, err = json.Marshal(m.Fit)
		if err != nil {
			return fmt.Errorf("failed to marshal fit: %w", err)
		}
	}

	query := `INSERT INTO runs (
		run_id, scenario_id, scenario_name, scenario, seed, n, fit, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		m.RunID, m.ScenarioID, m.ScenarioName, []byte(m.Scenario),
		m.Seed, m.N, fitJSON, m.CreatedAt.Time(),
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// GetByID retrieves a run manifest by its ID
func (r *runRepository) GetByID(ctx context.Context, id core.RunID) (*run.Manifest, error) {
	query := `SELECT run_id, COALESCE(scenario_id, '') as scenario_id, scenario_name,
		scenario, seed, n, fit, created_at
	FROM runs WHERE run_id = $1`

	m, err := scanManifest(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: run %s", core.ErrRunNotFound, id)
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return m, nil
}

// ListRecent returns the most recently created run manifests
func (r *runRepository) ListRecent(ctx context.Context, limit int) ([]run.Manifest, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT run_id, COALESCE(scenario_id, '') as scenario_id, scenario_name,
		scenario, seed, n, fit, created_at
	FROM runs ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var out []run.Manifest
	for rows.Next() {
		m, err := scanManifest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanManifest(row rowScanner) (*run.Manifest, error) {
	var m run.Manifest
	var scenarioJSON, fitJSON []byte
	var createdAt time.Time

	err := row.Scan(&m.RunID, &m.ScenarioID, &m.ScenarioName,
		&scenarioJSON, &m.Seed, &m.N, &fitJSON, &createdAt)
	if err != nil {
		return nil, err
	}
	m.Scenario = json.RawMessage(scenarioJSON)
	m.CreatedAt = core.NewTimestamp(createdAt)
	if len(fitJSON) > 0 {
		var fit stats.FitResult
		if err := json.Unmarshal(fitJSON, &fit); err != nil {
			return nil, fmt.Errorf("failed to unmarshal fit: %w", err)
		}
		m.Fit = &fit
	}
	return &m, nil
}
