// Package ingest reads raw product datasets from disk.
package ingest

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/logging"
)

// Reader loads CSV datasets. Ragged rows are tolerated here and padded or
// truncated against the header downstream.
type Reader struct {
	logger logging.Logger
}

// NewReader builds a dataset reader.
func NewReader(logger logging.Logger) *Reader {
	return &Reader{logger: logger}
}

// ReadCSV loads the file and returns the header row and the data rows.
// An empty file is an error; a file with only a header yields zero rows.
func (r *Reader) ReadCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse csv %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("dataset %s is empty", path)
	}

	header := records[0]
	rows := records[1:]
	r.logger.Info("dataset loaded",
		logging.String("file", path),
		logging.Int("columns", len(header)),
		logging.Int("rows", len(rows)))
	return header, rows, nil
}
