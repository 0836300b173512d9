package domain

import "fmt"

// SchemaError reports a structural problem with the input table or the
// pipeline configuration. It is fatal: no output can satisfy the table
// invariants, so the run aborts.
type SchemaError struct {
	Column string
	Msg    string
}

func (e *SchemaError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("schema error: column %q: %s", e.Column, e.Msg)
	}
	return fmt.Sprintf("schema error: %s", e.Msg)
}

// NewSchemaError creates a SchemaError for the given column.
func NewSchemaError(column, msg string) *SchemaError {
	return &SchemaError{Column: column, Msg: msg}
}

// ValidationError reports a cell value that violates a hard domain
// invariant and cannot be repaired by capping. The affected record is
// excluded from the output; the run continues.
type ValidationError struct {
	RowIndex int
	Column   string
	Value    string
	Msg      string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: row %d column %q value %q: %s",
		e.RowIndex, e.Column, e.Value, e.Msg)
}

// NewValidationError creates a ValidationError for the given cell.
func NewValidationError(row int, column, value, msg string) *ValidationError {
	return &ValidationError{RowIndex: row, Column: column, Value: value, Msg: msg}
}
