package core

import (
	"fmt"
	"sync"
)

// Selector reads one score from a student.
type Selector func(Student) Score

// Field describes a numeric score column that statistics can be computed over.
type Field struct {
	Key    string   // Stable identifier used in URLs and flags: "charms"
	Label  string   // Display name: "Charms Score"
	Column int      // Position in the source row
	Select Selector // Reads the score from a Student
}

var (
	fields     = make(map[string]Field)
	fieldOrder []string
	fieldsMu   sync.RWMutex
)

func init() {
	RegisterField(Field{Key: "charms", Label: "Charms Score", Column: ColScoreA,
		Select: func(s Student) Score { return s.ScoreA }})
	RegisterField(Field{Key: "potions", Label: "Potions Score", Column: ColScoreB,
		Select: func(s Student) Score { return s.ScoreB }})
	RegisterField(Field{Key: "dark_arts", Label: "Dark Arts Score", Column: ColScoreC,
		Select: func(s Student) Score { return s.ScoreC }})
}

// RegisterField adds a score field to the registry.
// Panics if a field with the same key is already registered or has no selector.
func RegisterField(f Field) {
	fieldsMu.Lock()
	defer fieldsMu.Unlock()

	if _, exists := fields[f.Key]; exists {
		panic(fmt.Sprintf("score field already registered: %s", f.Key))
	}
	if f.Select == nil {
		panic(fmt.Sprintf("score field has no selector: %s", f.Key))
	}

	fields[f.Key] = f
	fieldOrder = append(fieldOrder, f.Key)
}

// LookupField returns a registered field by key.
func LookupField(key string) (Field, error) {
	fieldsMu.RLock()
	defer fieldsMu.RUnlock()

	f, ok := fields[key]
	if !ok {
		return Field{}, fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	return f, nil
}

// ScoreFields returns all registered fields in registration order.
func ScoreFields() []Field {
	fieldsMu.RLock()
	defer fieldsMu.RUnlock()

	result := make([]Field, 0, len(fieldOrder))
	for _, key := range fieldOrder {
		result = append(result, fields[key])
	}
	return result
}
