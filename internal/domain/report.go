package domain

import "time"

// StageStats holds the counters one pipeline stage reports for the
// cleaning log.
type StageStats struct {
	Stage         string         `json:"stage"`
	RowsIn        int            `json:"rows_in"`
	RowsOut       int            `json:"rows_out"`
	RowsAffected  int            `json:"rows_affected"`
	ValuesImputed map[string]int `json:"values_imputed,omitempty"`
	ValuesCapped  map[string]int `json:"values_capped,omitempty"`
	RowsDropped   int            `json:"rows_dropped"`
	Reasons       []string       `json:"reasons,omitempty"`
	Warnings      []string       `json:"warnings,omitempty"`
}

// NewStageStats creates an empty StageStats for the named stage.
func NewStageStats(stage string) StageStats {
	return StageStats{
		Stage:         stage,
		ValuesImputed: make(map[string]int),
		ValuesCapped:  make(map[string]int),
	}
}

// TotalImputed sums imputed-value counts across all columns.
func (s StageStats) TotalImputed() int {
	n := 0
	for _, c := range s.ValuesImputed {
		n += c
	}
	return n
}

// TotalCapped sums capped-value counts across all columns.
func (s StageStats) TotalCapped() int {
	n := 0
	for _, c := range s.ValuesCapped {
		n += c
	}
	return n
}

// Report is the structured summary of one pipeline run, consumed by the
// reporting collaborators.
type Report struct {
	RunID      string       `json:"run_id"`
	InputFile  string       `json:"input_file"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	InputRows  int          `json:"input_rows"`
	OutputRows int          `json:"output_rows"`
	Stages     []StageStats `json:"stages"`
	Excluded   []Exclusion  `json:"excluded,omitempty"`
}

// RowsDropped sums dropped-row counts across all stages.
func (r *Report) RowsDropped() int {
	n := 0
	for _, s := range r.Stages {
		n += s.RowsDropped
	}
	return n
}

// ValuesImputed sums imputed-value counts across all stages.
func (r *Report) ValuesImputed() int {
	n := 0
	for _, s := range r.Stages {
		n += s.TotalImputed()
	}
	return n
}

// ValuesCapped sums capped-value counts across all stages.
func (r *Report) ValuesCapped() int {
	n := 0
	for _, s := range r.Stages {
		n += s.TotalCapped()
	}
	return n
}
