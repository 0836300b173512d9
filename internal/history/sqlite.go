// Package history persists run summaries so cleaning runs can be compared
// over time.
package history

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS cleaning_runs (
	run_id         TEXT PRIMARY KEY,
	input_file     TEXT NOT NULL,
	started_at     TIMESTAMP NOT NULL,
	finished_at    TIMESTAMP NOT NULL,
	input_rows     INTEGER NOT NULL,
	output_rows    INTEGER NOT NULL,
	rows_dropped   INTEGER NOT NULL,
	values_imputed INTEGER NOT NULL,
	values_capped  INTEGER NOT NULL,
	stages         TEXT NOT NULL
);
`

// Open opens (and on first use creates) the run-history database at path.
func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}
	return db, nil
}
