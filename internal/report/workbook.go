// Package report writes a loaded dataset and its histograms to an XLSX
// workbook.
//
// Layout:
//   - "Summary": one row per score field (count, absent, mean, median, ...)
//   - "Students": the typed records, absent scores left blank
//   - one sheet per score field (named by field key) with range, pass rate
//     and count columns plus a column chart of the pass rates
package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/gradebook/internal/chart"
	"github.com/JonMunkholm/gradebook/internal/core"
)

const (
	summarySheet  = "Summary"
	studentsSheet = "Students"
)

var (
	summaryHeader  = []any{"Field", "Count", "Absent", "Mean", "Median", "Std Dev", "Min", "Max"}
	studentsHeader = []any{"Gender", "Faculty", "Parental Education", "Lunch", "Test Prep",
		"Charms", "Potions", "Dark Arts"}
	bucketHeader = []any{"Range", "Pass Rate", "Students"}
)

// Build creates the workbook for ds. The caller must Close the file.
func Build(ds core.Dataset, ranges []core.Range) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := writeSummary(f, ds); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeStudents(f, ds); err != nil {
		f.Close()
		return nil, err
	}
	for _, field := range core.ScoreFields() {
		if err := writeHistogram(f, ds, field, ranges); err != nil {
			f.Close()
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

// Write builds the workbook for ds and streams it to w.
func Write(w io.Writer, ds core.Dataset, ranges []core.Range) error {
	f, err := Build(ds, ranges)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// SaveAs builds the workbook for ds and saves it to path.
func SaveAs(path string, ds core.Dataset, ranges []core.Range) error {
	f, err := Build(ds, ranges)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func writeSummary(f *excelize.File, ds core.Dataset) error {
	if err := setRow(f, summarySheet, 1, summaryHeader); err != nil {
		return err
	}

	for i, field := range core.ScoreFields() {
		row := []any{field.Label}
		sum, err := core.Summarize(ds, field.Select)
		switch {
		case errors.Is(err, core.ErrNoData):
			row = append(row, 0, sum.Absent)
		case err != nil:
			return fmt.Errorf("summarize %s: %w", field.Key, err)
		default:
			row = append(row, sum.Count, sum.Absent, sum.Mean, sum.Median, sum.StdDev, sum.Min, sum.Max)
		}
		if err := setRow(f, summarySheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeStudents(f *excelize.File, ds core.Dataset) error {
	if _, err := f.NewSheet(studentsSheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", studentsSheet, err)
	}
	if err := setRow(f, studentsSheet, 1, studentsHeader); err != nil {
		return err
	}

	for i, s := range ds.All() {
		row := []any{
			s.Gender.String(),
			s.Faculty.String(),
			s.ParentalEducation,
			s.Lunch.String(),
			s.TestPrepCourse.String(),
			scoreCell(s.ScoreA),
			scoreCell(s.ScoreB),
			scoreCell(s.ScoreC),
		}
		if err := setRow(f, studentsSheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeHistogram(f *excelize.File, ds core.Dataset, field core.Field, ranges []core.Range) error {
	sheet := field.Key
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	h, err := chart.Build(ds, field, ranges)
	if err != nil {
		return err
	}

	if err := setRow(f, sheet, 1, bucketHeader); err != nil {
		return err
	}
	for i, label := range h.Labels {
		row := []any{label, h.Rates[i], h.Values[i]}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}

	if len(ranges) == 0 {
		return nil
	}

	last := len(ranges) + 1
	err = f.AddChart(sheet, "E2", &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$B$1", sheet),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", sheet, last),
			Values:     fmt.Sprintf("%s!$B$2:$B$%d", sheet, last),
		}},
		Title:  []excelize.RichTextRun{{Text: field.Label}},
		Legend: excelize.ChartLegend{Position: "none"},
	})
	if err != nil {
		return fmt.Errorf("add chart %s: %w", sheet, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

// scoreCell returns nil for absent scores so the cell stays blank.
func scoreCell(s core.Score) any {
	if !s.Valid {
		return nil
	}
	return s.Value
}
