package core

// mapper.go turns a RawTable into a Dataset.
//
// The first row is the header and is dropped without inspection; columns
// are read by position. By default mapping is all-or-nothing: a single row
// with fewer than ColumnCount cells, or with an empty faculty cell, fails
// the whole table. MapWithOptions offers a lenient mode that skips such
// rows and reports them instead.

// Column positions in a data row.
const (
	ColGender = iota
	ColFaculty
	ColParentalEducation
	ColLunch
	ColTestPrep
	ColScoreA
	ColScoreB
	ColScoreC

	// ColumnCount is the minimum number of cells a data row must hold.
	ColumnCount
)

// MapOptions controls how Map treats short rows.
type MapOptions struct {
	// Lenient skips short rows instead of failing the whole table.
	Lenient bool
}

// MapResult is the outcome of MapWithOptions.
type MapResult struct {
	Dataset Dataset
	Skipped []RowError // Only populated in lenient mode
}

// Map converts every data row of table into a Student.
// Returns ErrEmptyFile if the table has no rows and a *RowError for the
// first row that cannot be mapped; in both cases no Dataset is produced.
func Map(table RawTable) (Dataset, error) {
	res, err := MapWithOptions(table, MapOptions{})
	if err != nil {
		return Dataset{}, err
	}
	return res.Dataset, nil
}

// MapWithOptions converts table according to opts.
// An empty table is an error in both modes.
func MapWithOptions(table RawTable, opts MapOptions) (MapResult, error) {
	if table.Len() == 0 {
		return MapResult{}, ErrEmptyFile
	}

	data := table.Rows[1:]
	students := make([]Student, 0, len(data))
	var skipped []RowError

	for i, row := range data {
		// +2: 1-indexed and the header occupies line 1
		if rowErr := checkRow(row, i+2); rowErr != nil {
			if !opts.Lenient {
				return MapResult{}, rowErr
			}
			skipped = append(skipped, *rowErr)
			continue
		}
		students = append(students, ToStudent(row))
	}

	return MapResult{
		Dataset: Dataset{students: students},
		Skipped: skipped,
	}, nil
}

// checkRow returns a *RowError if row cannot become a Student.
// Faculty is derived from the cell's last character, so an empty faculty
// cell has nothing to read and rejects the row.
func checkRow(row RawRow, line int) *RowError {
	if len(row) < ColumnCount {
		return &RowError{Line: line, Cells: len(row)}
	}
	if row[ColFaculty] == "" {
		return &RowError{Line: line, Cells: len(row), Column: "faculty"}
	}
	return nil
}

// ToStudent builds a Student from a row holding at least ColumnCount cells.
// It panics on shorter rows; Map checks each row first.
func ToStudent(row RawRow) Student {
	return Student{
		Gender:            ToGender(row[ColGender]),
		Faculty:           ToFaculty(row[ColFaculty]),
		ParentalEducation: row[ColParentalEducation],
		Lunch:             ToLunch(row[ColLunch]),
		TestPrepCourse:    ToPrepCourse(row[ColTestPrep]),
		ScoreA:            ToScore(row[ColScoreA]),
		ScoreB:            ToScore(row[ColScoreB]),
		ScoreC:            ToScore(row[ColScoreC]),
	}
}
