package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		input   string
		want    Range
		wantErr bool
	}{
		{input: "0-20", want: Range{Low: 0, High: 20}},
		{input: "81..100", want: Range{Low: 81, High: 100}},
		{input: " 21 - 40 ", want: Range{Low: 21, High: 40}},
		{input: "-5-5", want: Range{Low: -5, High: 5}},
		{input: "-10..-5", want: Range{Low: -10, High: -5}},
		{input: "7-7", want: Range{Low: 7, High: 7}},
		{input: "20-0", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "1-x", wantErr: true},
		{input: "", wantErr: true},
		{input: "5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRange(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRanges(t *testing.T) {
	got, err := ParseRanges(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultBuckets(), got)

	got, err = ParseRanges([]string{"0-49", "50..100"})
	require.NoError(t, err)
	assert.Equal(t, []Range{{Low: 0, High: 49}, {Low: 50, High: 100}}, got)

	_, err = ParseRanges([]string{"0-49", "bad"})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestRange(t *testing.T) {
	r := Range{Low: 21, High: 40}
	assert.Equal(t, "21..40", r.String())
	assert.True(t, r.Contains(21))
	assert.True(t, r.Contains(40))
	assert.False(t, r.Contains(20))
	assert.False(t, r.Contains(41))
}

func TestDefaultBuckets_Disjoint(t *testing.T) {
	buckets := DefaultBuckets()
	require.Len(t, buckets, 5)
	for i := 1; i < len(buckets); i++ {
		assert.Equal(t, buckets[i-1].High+1, buckets[i].Low)
	}
}
