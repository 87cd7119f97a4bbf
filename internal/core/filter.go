package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFilter is returned by ParseCriteria for unrecognised values.
var ErrInvalidFilter = errors.New("invalid filter")

// Criteria narrows a Dataset to students matching every set category.
// A nil field matches all students.
type Criteria struct {
	Gender   *Gender
	Faculty  *Faculty
	Lunch    *Lunch
	TestPrep *PrepCourse
}

// Filter keys accepted by ParseCriteria.
const (
	FilterGender   = "gender"
	FilterFaculty  = "faculty"
	FilterLunch    = "lunch"
	FilterTestPrep = "test_prep"
)

// ParseCriteria builds Criteria from key/value lookups such as URL query
// parameters or CLI flags. Values are the category names ("Male", "A",
// "FreeReduced", "Completed", "Unknown") matched case-insensitively.
// Empty values are ignored.
func ParseCriteria(get func(key string) string) (Criteria, error) {
	var c Criteria

	if v := get(FilterGender); v != "" {
		g, ok := lookupName(v, GenderMale, GenderFemale, GenderUnknown)
		if !ok {
			return Criteria{}, fmt.Errorf("%w: %s=%q", ErrInvalidFilter, FilterGender, v)
		}
		c.Gender = &g
	}
	if v := get(FilterFaculty); v != "" {
		f, ok := lookupName(v, FacultyA, FacultyB, FacultyC, FacultyD, FacultyE, FacultyUnknown)
		if !ok {
			return Criteria{}, fmt.Errorf("%w: %s=%q", ErrInvalidFilter, FilterFaculty, v)
		}
		c.Faculty = &f
	}
	if v := get(FilterLunch); v != "" {
		l, ok := lookupName(v, LunchStandard, LunchFreeReduced, LunchUnknown)
		if !ok {
			return Criteria{}, fmt.Errorf("%w: %s=%q", ErrInvalidFilter, FilterLunch, v)
		}
		c.Lunch = &l
	}
	if v := get(FilterTestPrep); v != "" {
		p, ok := lookupName(v, PrepCompleted, PrepNone, PrepUnknown)
		if !ok {
			return Criteria{}, fmt.Errorf("%w: %s=%q", ErrInvalidFilter, FilterTestPrep, v)
		}
		c.TestPrep = &p
	}

	return c, nil
}

// IsZero reports whether no criterion is set.
func (c Criteria) IsZero() bool {
	return c.Gender == nil && c.Faculty == nil && c.Lunch == nil && c.TestPrep == nil
}

// Match reports whether s satisfies every set criterion.
func (c Criteria) Match(s Student) bool {
	if c.Gender != nil && s.Gender != *c.Gender {
		return false
	}
	if c.Faculty != nil && s.Faculty != *c.Faculty {
		return false
	}
	if c.Lunch != nil && s.Lunch != *c.Lunch {
		return false
	}
	if c.TestPrep != nil && s.TestPrepCourse != *c.TestPrep {
		return false
	}
	return true
}

// Apply returns ds narrowed to matching students. A zero Criteria returns ds.
func (c Criteria) Apply(ds Dataset) Dataset {
	if c.IsZero() {
		return ds
	}
	return ds.Filter(c.Match)
}

// lookupName returns the member whose String() equals s, ignoring case.
func lookupName[T fmt.Stringer](s string, members ...T) (T, bool) {
	for _, m := range members {
		if strings.EqualFold(m.String(), s) {
			return m, true
		}
	}
	var zero T
	return zero, false
}
