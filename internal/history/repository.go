package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/domain"
)

// Run is one persisted cleaning run summary.
type Run struct {
	RunID         string    `db:"run_id" json:"run_id"`
	InputFile     string    `db:"input_file" json:"input_file"`
	StartedAt     time.Time `db:"started_at" json:"started_at"`
	FinishedAt    time.Time `db:"finished_at" json:"finished_at"`
	InputRows     int       `db:"input_rows" json:"input_rows"`
	OutputRows    int       `db:"output_rows" json:"output_rows"`
	RowsDropped   int       `db:"rows_dropped" json:"rows_dropped"`
	ValuesImputed int       `db:"values_imputed" json:"values_imputed"`
	ValuesCapped  int       `db:"values_capped" json:"values_capped"`
	Stages        string    `db:"stages" json:"-"`
}

// Repository handles database operations for run history.
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a run history repository.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Save inserts the report as a new history row. Stage details are stored
// as a JSON blob alongside the aggregate counters.
func (r *Repository) Save(ctx context.Context, report *domain.Report) error {
	stages, err := json.Marshal(report.Stages)
	if err != nil {
		return fmt.Errorf("marshal stage stats: %w", err)
	}

	query := `
		INSERT INTO cleaning_runs (
			run_id, input_file, started_at, finished_at,
			input_rows, output_rows, rows_dropped,
			values_imputed, values_capped, stages
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(
		ctx,
		query,
		report.RunID,
		report.InputFile,
		report.StartedAt,
		report.FinishedAt,
		report.InputRows,
		report.OutputRows,
		report.RowsDropped(),
		report.ValuesImputed(),
		report.ValuesCapped(),
		string(stages),
	)
	if err != nil {
		return fmt.Errorf("failed to save cleaning run: %w", err)
	}

	return nil
}

// Recent returns the most recent runs, newest first.
func (r *Repository) Recent(ctx context.Context, limit int) ([]*Run, error) {
	var runs []*Run

	query := `
		SELECT run_id, input_file, started_at, finished_at,
		       input_rows, output_rows, rows_dropped,
		       values_imputed, values_capped, stages
		FROM cleaning_runs
		ORDER BY started_at DESC
		LIMIT ?
	`

	if err := r.db.SelectContext(ctx, &runs, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list cleaning runs: %w", err)
	}

	return runs, nil
}

// StageStats decodes the persisted per-stage counters of a run.
func (run *Run) StageStats() ([]domain.StageStats, error) {
	var stats []domain.StageStats
	if err := json.Unmarshal([]byte(run.Stages), &stats); err != nil {
		return nil, fmt.Errorf("decode stage stats: %w", err)
	}
	return stats, nil
}
