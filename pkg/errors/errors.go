// Package errors provides custom error types for the songbridge engine.
// The engine distinguishes structural errors (a required table or column is
// missing from a workbook, which aborts the whole run) from data-quality
// problems, which are always recovered locally and never surface as errors.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the songbridge engine
var (
	// ErrMissingTable indicates a required workbook table was not found
	ErrMissingTable = errors.New("required table not found")

	// ErrMissingColumn indicates a required column was not found in a table
	ErrMissingColumn = errors.New("required column not found")
)

// MissingTableError reports a workbook that lacks a required table.
// This is always a structural (fatal) failure.
type MissingTableError struct {
	Workbook string
	Table    string
}

// Error implements the error interface
func (e *MissingTableError) Error() string {
	if e.Workbook != "" {
		return fmt.Sprintf("%s workbook: required table %q not found", e.Workbook, e.Table)
	}
	return fmt.Sprintf("required table %q not found", e.Table)
}

// Is implements errors.Is support
func (e *MissingTableError) Is(target error) bool {
	return target == ErrMissingTable
}

// NewMissingTableError creates a new MissingTableError
func NewMissingTableError(workbook, table string) *MissingTableError {
	return &MissingTableError{Workbook: workbook, Table: table}
}

// MissingColumnError reports a table that lacks a required column.
// This is always a structural (fatal) failure.
type MissingColumnError struct {
	Table  string
	Column string
}

// Error implements the error interface
func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("table %q: required column %q not found", e.Table, e.Column)
}

// Is implements errors.Is support
func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}

// NewMissingColumnError creates a new MissingColumnError
func NewMissingColumnError(table, column string) *MissingColumnError {
	return &MissingColumnError{Table: table, Column: column}
}

// StageError identifies the processing stage that caused a run to abort.
// The caller receives a single descriptive message; there is no partial
// or row-level error channel.
type StageError struct {
	Stage string
	Err   error
}

// Error implements the error interface
func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *StageError) Unwrap() error {
	return e.Err
}

// WrapStage wraps an error with the name of the failing stage.
func WrapStage(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: err}
}

// IOError represents a file system or I/O operation error
type IOError struct {
	Operation string
	Path      string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Operation, e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Err: err}
}

// Helper functions for error checking

// IsMissingTable checks if an error is a missing-table structural error
func IsMissingTable(err error) bool {
	return errors.Is(err, ErrMissingTable)
}

// IsMissingColumn checks if an error is a missing-column structural error
func IsMissingColumn(err error) bool {
	return errors.Is(err, ErrMissingColumn)
}

// IsStructural checks whether an error belongs to the structural class,
// which always aborts an entire run.
func IsStructural(err error) bool {
	return errors.Is(err, ErrMissingTable) || errors.Is(err, ErrMissingColumn)
}
