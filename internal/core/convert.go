package core

// convert.go provides cell conversion functions for student CSV data.
//
// Conversions never fail. A value that does not match the recognised
// literal set degrades instead of aborting the row:
//   - Categorical cells become the Unknown member of their type
//   - Score cells become an absent Score (Valid=false), never zero
//
// Matching is exact and case-sensitive against the lowercase tokens the
// source files use ("male", "free/reduced", "completed", ...). No trimming
// is applied, so " male" is Unknown.

import (
	"strconv"
	"unicode/utf8"
)

// ToGender converts a gender cell.
func ToGender(s string) Gender {
	switch s {
	case "male":
		return GenderMale
	case "female":
		return GenderFemale
	default:
		return GenderUnknown
	}
}

// ToFaculty converts a faculty cell using only its last character, so
// "group A" and "A" both map to FacultyA. An empty cell is FacultyUnknown
// here, but Map rejects rows with an empty faculty cell before converting.
func ToFaculty(s string) Faculty {
	if s == "" {
		return FacultyUnknown
	}

	r, _ := utf8.DecodeLastRuneInString(s)
	switch r {
	case 'A':
		return FacultyA
	case 'B':
		return FacultyB
	case 'C':
		return FacultyC
	case 'D':
		return FacultyD
	case 'E':
		return FacultyE
	default:
		return FacultyUnknown
	}
}

// ToLunch converts a lunch cell.
func ToLunch(s string) Lunch {
	switch s {
	case "standard":
		return LunchStandard
	case "free/reduced":
		return LunchFreeReduced
	default:
		return LunchUnknown
	}
}

// ToPrepCourse converts a test preparation course cell.
func ToPrepCourse(s string) PrepCourse {
	switch s {
	case "completed":
		return PrepCompleted
	case "none":
		return PrepNone
	default:
		return PrepUnknown
	}
}

// ToScore parses a base-10 integer score.
// Returns an absent Score for anything strconv.Atoi rejects, including
// empty cells, decimals and values with surrounding whitespace.
func ToScore(s string) Score {
	v, err := strconv.Atoi(s)
	if err != nil {
		return Score{}
	}
	return Score{Value: v, Valid: true}
}
