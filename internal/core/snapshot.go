package core

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// Snapshot is the immutable result of one load: the raw table and, when
// mapping succeeded, the Dataset built from it. A new load produces a new
// Snapshot; existing ones are never updated.
type Snapshot struct {
	ID       uuid.UUID
	Name     string // Source file name, informational
	LoadedAt time.Time
	Table    RawTable
	Dataset  Dataset
	Skipped  []RowError // Rows dropped in lenient mode
	MapErr   error      // Non-nil if the table could not be mapped
}

// NewSnapshot maps table and records the outcome. A mapping failure does
// not fail the snapshot: the raw table stays viewable and MapErr is set.
func NewSnapshot(name string, table RawTable, opts MapOptions) *Snapshot {
	snap := &Snapshot{
		ID:       uuid.New(),
		Name:     name,
		LoadedAt: time.Now().UTC(),
		Table:    table,
	}

	res, err := MapWithOptions(table, opts)
	if err != nil {
		snap.MapErr = err
		return snap
	}
	snap.Dataset = res.Dataset
	snap.Skipped = res.Skipped
	return snap
}

// LoadSnapshot reads r, parses it and maps the result.
// Only read errors are returned; mapping problems are recorded in MapErr.
func LoadSnapshot(name string, r io.Reader, opts MapOptions) (*Snapshot, error) {
	table, err := ReadTable(r)
	if err != nil {
		return nil, err
	}
	return NewSnapshot(name, table, opts), nil
}

// Converted reports whether the table was mapped into a Dataset.
func (s *Snapshot) Converted() bool {
	return s.MapErr == nil
}

// Students returns the Dataset, or MapErr if mapping failed.
func (s *Snapshot) Students() (Dataset, error) {
	if s.MapErr != nil {
		return Dataset{}, s.MapErr
	}
	return s.Dataset, nil
}
