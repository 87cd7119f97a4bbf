package core

// stats.go computes aggregates over a Dataset.
//
// Every function is a pure function of its arguments. Absent scores are
// excluded from means and never fall inside a range, but they still count
// toward the dataset size used as the PassRate denominator: a pass rate is
// the share of ALL students in a bucket, not the share of students with a
// score.

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// presentValues collects the valid scores selected from ds.
func presentValues(ds Dataset, sel Selector) []float64 {
	values := make([]float64, 0, ds.Len())
	for _, s := range ds.students {
		if sc := sel(s); sc.Valid {
			values = append(values, float64(sc.Value))
		}
	}
	return values
}

// AverageOf returns the arithmetic mean of the present values of sel.
// Returns ErrNoData if the dataset is empty or every value is absent.
func AverageOf(ds Dataset, sel Selector) (float64, error) {
	values := presentValues(ds, sel)
	if len(values) == 0 {
		return 0, ErrNoData
	}
	return stats.Mean(values)
}

// CountInRange returns how many students have a present value of sel
// inside r.
func CountInRange(ds Dataset, sel Selector, r Range) int {
	n := 0
	for _, s := range ds.students {
		if sc := sel(s); sc.Valid && r.Contains(sc.Value) {
			n++
		}
	}
	return n
}

// PassRate returns CountInRange divided by the dataset size.
// Returns ErrNoData for an empty dataset.
func PassRate(ds Dataset, sel Selector, r Range) (float64, error) {
	if ds.Len() == 0 {
		return 0, ErrNoData
	}
	return float64(CountInRange(ds, sel, r)) / float64(ds.Len()), nil
}

// PassRates applies PassRate to each range, preserving order.
func PassRates(ds Dataset, sel Selector, ranges []Range) ([]float64, error) {
	if ds.Len() == 0 {
		return nil, ErrNoData
	}

	rates := make([]float64, len(ranges))
	for i, r := range ranges {
		rate, err := PassRate(ds, sel, r)
		if err != nil {
			return nil, err
		}
		rates[i] = rate
	}
	return rates, nil
}

// FieldAverage is the mean of one score field. OK is false when the field
// has no present values.
type FieldAverage struct {
	Field Field
	Mean  float64
	OK    bool
}

// Averages returns the mean of every registered score field in order.
func Averages(ds Dataset) []FieldAverage {
	all := ScoreFields()
	result := make([]FieldAverage, len(all))
	for i, f := range all {
		mean, err := AverageOf(ds, f.Select)
		result[i] = FieldAverage{Field: f, Mean: mean, OK: err == nil}
	}
	return result
}

// Summary describes the distribution of one score field.
type Summary struct {
	Count  int     `json:"count"`  // Present values
	Absent int     `json:"absent"` // Students without a valid score
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stdDev"` // Population standard deviation
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Summarize computes a Summary of the present values of sel.
// Returns ErrNoData if there are none.
func Summarize(ds Dataset, sel Selector) (Summary, error) {
	values := presentValues(ds, sel)
	if len(values) == 0 {
		return Summary{Absent: ds.Len()}, ErrNoData
	}

	sum := Summary{
		Count:  len(values),
		Absent: ds.Len() - len(values),
	}

	var err error
	if sum.Mean, err = stats.Mean(values); err != nil {
		return Summary{}, fmt.Errorf("mean: %w", err)
	}
	if sum.Median, err = stats.Median(values); err != nil {
		return Summary{}, fmt.Errorf("median: %w", err)
	}
	if sum.StdDev, err = stats.StandardDeviation(values); err != nil {
		return Summary{}, fmt.Errorf("stddev: %w", err)
	}
	if sum.Min, err = stats.Min(values); err != nil {
		return Summary{}, fmt.Errorf("min: %w", err)
	}
	if sum.Max, err = stats.Max(values); err != nil {
		return Summary{}, fmt.Errorf("max: %w", err)
	}

	return sum, nil
}

// Correlation returns the Pearson correlation between two score fields over
// the students where both are present. Returns ErrNoData for fewer than two
// such students or when either series is constant.
func Correlation(ds Dataset, a, b Selector) (float64, error) {
	var xs, ys []float64
	for _, s := range ds.students {
		x, y := a(s), b(s)
		if !x.Valid || !y.Valid {
			continue
		}
		xs = append(xs, float64(x.Value))
		ys = append(ys, float64(y.Value))
	}

	if len(xs) < 2 {
		return 0, fmt.Errorf("%w: need at least 2 paired scores, got %d", ErrNoData, len(xs))
	}

	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		return 0, fmt.Errorf("%w: zero variance", ErrNoData)
	}
	return r, nil
}
