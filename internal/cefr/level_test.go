package cefr

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		score float64
		want  Level
	}{
		{4.0, A1},
		{2.0, A2},
		{1.0, B1},
		{-2, B2},
		{-4, C1},
		{-10, C2},
		{-20, C2},
		// boundaries
		{3.0, A2},
		{3.0000001, A1},
		{0.5, B1},
		{0, B2},
		{-3, C1},
		{-6, C2},
		{math.Inf(1), A1},
		{math.Inf(-1), C2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.score), "Classify(%v)", tt.score)
	}
}

func TestClassify_Monotonic(t *testing.T) {
	prev := Classify(-100)
	for s := -100.0; s <= 100; s += 0.25 {
		got := Classify(s)
		require.True(t, got.IsValid(), "score %v produced invalid level %q", s, got)
		assert.False(t, got.Harder(prev), "score %v gave %s, harder than %s for a lower score", s, got, prev)
		prev = got
	}
}

func TestFromValue_Numeric(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want Level
	}{
		{"float64", 4.0, A1},
		{"float32", float32(2.0), A2},
		{"int", -2, B2},
		{"int64", int64(-4), C1},
		{"uint8", uint8(1), B1},
		{"json number", json.Number("-10"), C2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromValue(tt.v)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromValue_TypeMismatch(t *testing.T) {
	inputs := []any{
		"5",
		nil,
		"Dies ist ein Text, der kein ZIX Score ist.",
		true,
		[]float64{1},
		math.NaN(),
		json.Number("abc"),
	}

	for _, v := range inputs {
		_, err := FromValue(v)
		assert.ErrorIs(t, err, ErrTypeMismatch, "input %#v", v)
	}
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel(" b2 ")
	require.NoError(t, err)
	assert.Equal(t, B2, l)

	_, err = ParseLevel("D1")
	assert.ErrorIs(t, err, ErrUnknownLevel)
}

func TestLevelRank(t *testing.T) {
	for i, l := range Levels {
		assert.Equal(t, i, l.Rank())
	}
	assert.Equal(t, -1, Level("X").Rank())
	assert.True(t, C2.Harder(A1))
	assert.False(t, A1.Harder(A1))
}
