package history

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/domain"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(sqlx.NewDb(db, "sqlite3")), mock
}

func sampleReport() *domain.Report {
	return &domain.Report{
		RunID:      "11111111-2222-3333-4444-555555555555",
		InputFile:  "phase1_collected_data.csv",
		StartedAt:  time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2026, 8, 30, 10, 0, 5, 0, time.UTC),
		InputRows:  100,
		OutputRows: 92,
		Stages: []domain.StageStats{
			{
				Stage:         "missing_value_imputer",
				RowsIn:        100,
				RowsOut:       100,
				ValuesImputed: map[string]int{"price": 3, "brand": 2},
			},
			{
				Stage:        "validator_outlier_capper",
				RowsIn:       100,
				RowsOut:      95,
				RowsDropped:  5,
				ValuesCapped: map[string]int{"price": 4},
			},
			{
				Stage:       "deduplicator",
				RowsIn:      95,
				RowsOut:     92,
				RowsDropped: 3,
			},
		},
	}
}

func TestRepositorySave(t *testing.T) {
	repo, mock := newMockRepository(t)
	report := sampleReport()

	mock.ExpectExec("INSERT INTO cleaning_runs").
		WithArgs(
			report.RunID,
			report.InputFile,
			report.StartedAt,
			report.FinishedAt,
			100,
			92,
			8, // rows dropped across stages
			5, // values imputed
			4, // values capped
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Save(context.Background(), report))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositorySaveError(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec("INSERT INTO cleaning_runs").
		WillReturnError(assert.AnError)

	err := repo.Save(context.Background(), sampleReport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save cleaning run")
}

func TestRepositoryRecent(t *testing.T) {
	repo, mock := newMockRepository(t)

	started := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"run_id", "input_file", "started_at", "finished_at",
		"input_rows", "output_rows", "rows_dropped",
		"values_imputed", "values_capped", "stages",
	}).AddRow(
		"run-1", "a.csv", started, started.Add(5*time.Second),
		100, 92, 8, 5, 4,
		`[{"stage":"deduplicator","rows_in":95,"rows_out":92,"rows_affected":3,"rows_dropped":3}]`,
	)

	mock.ExpectQuery("SELECT (.+) FROM cleaning_runs").
		WithArgs(20).
		WillReturnRows(rows)

	runs, err := repo.Recent(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, "run-1", run.RunID)
	assert.Equal(t, 92, run.OutputRows)

	stats, err := run.StageStats()
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "deduplicator", stats[0].Stage)
	assert.Equal(t, 3, stats[0].RowsDropped)
	assert.NoError(t, mock.ExpectationsWereMet())
}
