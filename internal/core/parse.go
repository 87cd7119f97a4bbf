package core

// parse.go splits raw CSV text into a RawTable.
//
// The splitter is deliberately naive: one row per "\n", one cell per ",".
// Quotes are not interpreted, whitespace and "\r" are kept, and a trailing
// newline produces a final row holding a single empty cell. Files that rely
// on quoted commas will therefore produce extra cells.

import (
	"fmt"
	"io"
	"strings"
)

const (
	lineSeparator = "\n"
	cellSeparator = ","
)

// Parse splits text into rows and cells. It never fails; empty input
// yields a table with no rows.
func Parse(text string) RawTable {
	if text == "" {
		return RawTable{}
	}

	lines := strings.Split(text, lineSeparator)
	rows := make([]RawRow, len(lines))
	for i, line := range lines {
		rows[i] = strings.Split(line, cellSeparator)
	}
	return RawTable{Rows: rows}
}

// ReadTable reads all of r and parses it.
// Only I/O errors are returned.
func ReadTable(r io.Reader) (RawTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return RawTable{}, fmt.Errorf("read csv: %w", err)
	}
	return Parse(string(data)), nil
}
