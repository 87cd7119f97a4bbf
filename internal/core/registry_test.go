package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreFields_Order(t *testing.T) {
	fields := ScoreFields()
	require.Len(t, fields, 3)

	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.Key
	}
	assert.Equal(t, []string{"charms", "potions", "dark_arts"}, keys)
	assert.Equal(t, "Dark Arts Score", fields[2].Label)
}

func TestLookupField(t *testing.T) {
	f, err := LookupField("potions")
	require.NoError(t, err)
	assert.Equal(t, ColScoreB, f.Column)

	s := Student{ScoreB: Score{Value: 61, Valid: true}}
	assert.Equal(t, 61, f.Select(s).Value)

	_, err = LookupField("herbology")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestRegisterField_Panics(t *testing.T) {
	assert.Panics(t, func() {
		RegisterField(Field{Key: "charms", Select: func(s Student) Score { return s.ScoreA }})
	})
	assert.Panics(t, func() {
		RegisterField(Field{Key: "no_selector"})
	})
}
