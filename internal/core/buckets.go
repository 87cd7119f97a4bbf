package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Range is an inclusive integer interval [Low, High].
// A Range with Low > High is empty and contains nothing.
type Range struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v int) bool {
	return v >= r.Low && v <= r.High
}

// String formats the range as "low..high", the label used on histogram bars.
func (r Range) String() string {
	return strconv.Itoa(r.Low) + ".." + strconv.Itoa(r.High)
}

// DefaultBuckets returns the five score buckets used for histograms:
// 0..20, 21..40, 41..60, 61..80 and 81..100.
func DefaultBuckets() []Range {
	return []Range{
		{Low: 0, High: 20},
		{Low: 21, High: 40},
		{Low: 41, High: 60},
		{Low: 61, High: 80},
		{Low: 81, High: 100},
	}
}

// ParseRange parses "low-high" or "low..high". A leading minus sign on
// low is allowed ("-5-5"). Returns ErrInvalidRange if either bound is not
// an integer or low > high.
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)

	lowStr, highStr, ok := strings.Cut(s, "..")
	if !ok && len(s) > 1 {
		// Skip the first byte so a negative low bound is not taken as the separator
		var rest string
		rest, highStr, ok = strings.Cut(s[1:], "-")
		lowStr = s[:1] + rest
	}
	if !ok {
		return Range{}, fmt.Errorf("%w: %q: expected low-high", ErrInvalidRange, s)
	}

	low, err := strconv.Atoi(strings.TrimSpace(lowStr))
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q: bad low bound", ErrInvalidRange, s)
	}
	high, err := strconv.Atoi(strings.TrimSpace(highStr))
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q: bad high bound", ErrInvalidRange, s)
	}
	if low > high {
		return Range{}, fmt.Errorf("%w: %q: low bound exceeds high bound", ErrInvalidRange, s)
	}

	return Range{Low: low, High: high}, nil
}

// ParseRanges parses each spec in order. An empty list yields DefaultBuckets.
func ParseRanges(specs []string) ([]Range, error) {
	if len(specs) == 0 {
		return DefaultBuckets(), nil
	}

	ranges := make([]Range, 0, len(specs))
	for _, spec := range specs {
		r, err := ParseRange(spec)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}
