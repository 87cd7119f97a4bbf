// Package chart turns pass-rate series into histogram descriptions that a
// frontend can draw without further arithmetic.
package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/JonMunkholm/gradebook/internal/core"
)

// PlaceholderAxisMax is the axis ceiling of a chart with no data.
const PlaceholderAxisMax = 100

// Histogram is one bar chart: a bar per range, heights given as rates in
// [0, 1] of the plot height.
//
// The vertical axis is labelled from 0 to AxisMax, where AxisMax is the
// number of students in the dataset, so the number printed on each bar
// (Values) is the student count in that range rather than a percentage.
type Histogram struct {
	Field   string    `json:"field"`
	Title   string    `json:"title"`
	Labels  []string  `json:"labels"`
	Rates   []float64 `json:"rates"`
	Values  []float64 `json:"values"`
	AxisMax float64   `json:"axisMax"`
	Empty   bool      `json:"empty"`
}

// Build computes the histogram of field over ds for the given ranges.
// An empty dataset yields a placeholder (Empty=true) instead of an error;
// other errors are returned.
func Build(ds core.Dataset, field core.Field, ranges []core.Range) (Histogram, error) {
	h := Histogram{
		Field:  field.Key,
		Title:  field.Label,
		Labels: Labels(ranges),
	}

	rates, err := core.PassRates(ds, field.Select, ranges)
	if errors.Is(err, core.ErrNoData) {
		return Placeholder(field, ranges), nil
	}
	if err != nil {
		return Histogram{}, fmt.Errorf("histogram %s: %w", field.Key, err)
	}

	h.Rates = rates
	h.AxisMax = float64(ds.Len())
	h.Values = make([]float64, len(rates))
	for i, rate := range rates {
		h.Values[i] = roundHundredths(rate * h.AxisMax)
	}
	return h, nil
}

// BuildAll builds one histogram per registered score field.
func BuildAll(ds core.Dataset, ranges []core.Range) ([]Histogram, error) {
	fields := core.ScoreFields()
	result := make([]Histogram, 0, len(fields))
	for _, f := range fields {
		h, err := Build(ds, f, ranges)
		if err != nil {
			return nil, err
		}
		result = append(result, h)
	}
	return result, nil
}

// Placeholder returns an empty chart with zero-height bars.
func Placeholder(field core.Field, ranges []core.Range) Histogram {
	return Histogram{
		Field:   field.Key,
		Title:   field.Label,
		Labels:  Labels(ranges),
		Rates:   make([]float64, len(ranges)),
		Values:  make([]float64, len(ranges)),
		AxisMax: PlaceholderAxisMax,
		Empty:   true,
	}
}

// Labels formats ranges as bar labels ("0..20").
func Labels(ranges []core.Range) []string {
	labels := make([]string, len(ranges))
	for i, r := range ranges {
		labels[i] = r.String()
	}
	return labels
}

func roundHundredths(v float64) float64 {
	return math.Round(v*100) / 100
}

// RenderText writes h as a horizontal bar chart of at most width cells per
// bar. Each line shows the label, the bar, the bar value and the rate.
func RenderText(w io.Writer, h Histogram, width int) error {
	if width <= 0 {
		width = 40
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (axis 0..%g)\n", h.Title, h.AxisMax)
	if h.Empty {
		b.WriteString("  no data\n")
	}

	labelWidth := 0
	for _, l := range h.Labels {
		labelWidth = max(labelWidth, len(l))
	}

	for i, label := range h.Labels {
		rate := 0.0
		if i < len(h.Rates) {
			rate = h.Rates[i]
		}
		value := 0.0
		if i < len(h.Values) {
			value = h.Values[i]
		}
		cells := int(math.Round(rate * float64(width)))
		cells = min(max(cells, 0), width)
		fmt.Fprintf(&b, "  %-*s |%-*s| %g (%.1f%%)\n",
			labelWidth, label, width, strings.Repeat("#", cells), value, rate*100)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
