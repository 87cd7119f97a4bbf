package core

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput is returned by Map when the table has no rows or a
	// data row is too short to hold every column. No Dataset is produced.
	ErrMalformedInput = errors.New("malformed input")

	// ErrNoData is returned by aggregates computed over zero eligible values.
	ErrNoData = errors.New("no data")

	// ErrEmptyFile is the ErrMalformedInput raised for a table with no rows.
	ErrEmptyFile = fmt.Errorf("%w: empty file", ErrMalformedInput)

	// ErrUnknownField is returned when a score field key is not registered.
	ErrUnknownField = errors.New("unknown score field")

	// ErrInvalidRange is returned by ParseRange for unusable bucket specs.
	ErrInvalidRange = errors.New("invalid range")
)

// RowError reports a data row that could not be mapped.
// Line is the 1-indexed line number in the source file (the header is line 1).
// Column names the required cell that was empty; it is "" for a short row.
type RowError struct {
	Line   int
	Cells  int
	Column string
}

func (e *RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("line %d: empty cell: %s is required", e.Line, e.Column)
	}
	return fmt.Sprintf("line %d: short row: expected at least %d cells, got %d", e.Line, ColumnCount, e.Cells)
}

// Short reports whether the row had fewer than ColumnCount cells.
func (e *RowError) Short() bool {
	return e.Column == ""
}

func (e *RowError) Unwrap() error {
	return ErrMalformedInput
}
