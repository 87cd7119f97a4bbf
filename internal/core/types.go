// Package core provides the parsing, mapping and statistics logic for
// student score CSV files. This package has no UI dependencies and can be
// used by any frontend.
package core

import (
	"iter"
	"strconv"
)

// RawRow is one line of a CSV file split into cells.
type RawRow []string

// RawTable is the untyped string grid produced by Parse.
// Rows may have differing cell counts.
type RawTable struct {
	Rows []RawRow
}

// Len returns the number of rows, header included.
func (t RawTable) Len() int {
	return len(t.Rows)
}

// Gender is the categorical gender column.
type Gender int

const (
	GenderUnknown Gender = iota
	GenderMale
	GenderFemale
)

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "Male"
	case GenderFemale:
		return "Female"
	default:
		return "Unknown"
	}
}

// Faculty is the letter group a student belongs to.
type Faculty int

const (
	FacultyUnknown Faculty = iota
	FacultyA
	FacultyB
	FacultyC
	FacultyD
	FacultyE
)

func (f Faculty) String() string {
	switch f {
	case FacultyA:
		return "A"
	case FacultyB:
		return "B"
	case FacultyC:
		return "C"
	case FacultyD:
		return "D"
	case FacultyE:
		return "E"
	default:
		return "Unknown"
	}
}

// Lunch is the lunch type column.
type Lunch int

const (
	LunchUnknown Lunch = iota
	LunchStandard
	LunchFreeReduced
)

func (l Lunch) String() string {
	switch l {
	case LunchStandard:
		return "Standard"
	case LunchFreeReduced:
		return "FreeReduced"
	default:
		return "Unknown"
	}
}

// PrepCourse is the test preparation course column.
type PrepCourse int

const (
	PrepUnknown PrepCourse = iota
	PrepCompleted
	PrepNone
)

func (p PrepCourse) String() string {
	switch p {
	case PrepCompleted:
		return "Completed"
	case PrepNone:
		return "None"
	default:
		return "Unknown"
	}
}

// Score is an optional integer score.
// Valid is false when the source cell was not an integer; Value is then 0
// and must not be read as a real score.
type Score struct {
	Value int
	Valid bool
}

// String returns the decimal value, or the empty string for an absent score.
func (s Score) String() string {
	if !s.Valid {
		return ""
	}
	return strconv.Itoa(s.Value)
}

// Student is one typed row of the input file.
type Student struct {
	Gender            Gender
	Faculty           Faculty
	ParentalEducation string
	Lunch             Lunch
	TestPrepCourse    PrepCourse
	ScoreA            Score // Charms
	ScoreB            Score // Potions
	ScoreC            Score // Dark Arts
}

// Dataset is an ordered, read-only collection of students built by Map.
// The zero value is an empty dataset.
type Dataset struct {
	students []Student
}

// NewDataset copies students into a new Dataset.
func NewDataset(students []Student) Dataset {
	cp := make([]Student, len(students))
	copy(cp, students)
	return Dataset{students: cp}
}

// Len returns the number of students.
func (d Dataset) Len() int {
	return len(d.students)
}

// At returns the student at position i. It panics if i is out of range.
func (d Dataset) At(i int) Student {
	return d.students[i]
}

// Records returns a copy of the students in input order.
func (d Dataset) Records() []Student {
	cp := make([]Student, len(d.students))
	copy(cp, d.students)
	return cp
}

// All iterates over the students in input order.
func (d Dataset) All() iter.Seq2[int, Student] {
	return func(yield func(int, Student) bool) {
		for i, s := range d.students {
			if !yield(i, s) {
				return
			}
		}
	}
}

// Filter returns a new Dataset holding the students for which keep
// returns true, in input order.
func (d Dataset) Filter(keep func(Student) bool) Dataset {
	var out []Student
	for _, s := range d.students {
		if keep(s) {
			out = append(out, s)
		}
	}
	return Dataset{students: out}
}
