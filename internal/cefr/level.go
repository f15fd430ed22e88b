// Package cefr maps ZIX scores onto the six CEFR proficiency levels.
package cefr

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

// Level is a CEFR proficiency level, A1 (easiest) through C2 (hardest).
type Level string

const (
	A1 Level = "A1"
	A2 Level = "A2"
	B1 Level = "B1"
	B2 Level = "B2"
	C1 Level = "C1"
	C2 Level = "C2"
)

// Levels lists all levels from easiest to hardest.
var Levels = []Level{A1, A2, B1, B2, C1, C2}

var (
	ErrTypeMismatch = errors.New("score is not a number")
	ErrUnknownLevel = errors.New("unknown CEFR level")
)

func (l Level) String() string { return string(l) }

// Rank returns the position of l in Levels, or -1 for an invalid level.
func (l Level) Rank() int {
	for i, lv := range Levels {
		if lv == l {
			return i
		}
	}
	return -1
}

func (l Level) IsValid() bool {
	return l.Rank() >= 0
}

// Harder reports whether l is a harder level than other.
func (l Level) Harder(other Level) bool {
	return l.Rank() > other.Rank()
}

// ParseLevel parses a level name case-insensitively.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToUpper(strings.TrimSpace(s)))
	if !l.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
	return l, nil
}

// A score strictly above a threshold maps to its level; anything at or
// below the last threshold is C2. A score of exactly 0 is B2.
var thresholds = []struct {
	above float64
	level Level
}{
	{3, A1},
	{1, A2},
	{0, B1},
	{-3, B2},
	{-6, C1},
}

// Classify maps a ZIX score to its CEFR level. Every score maps to exactly
// one level and higher scores never yield a harder level.
func Classify(score float64) Level {
	for _, t := range thresholds {
		if score > t.above {
			return t.level
		}
	}
	return C2
}

// FromValue classifies a dynamically typed score. Only numeric values are
// accepted; strings, nil, booleans and NaN fail with ErrTypeMismatch so a
// label or sentence is never scored by accident.
func FromValue(v any) (Level, error) {
	score, err := toFloat(v)
	if err != nil {
		return "", err
	}
	return Classify(score), nil
}

func toFloat(v any) (float64, error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrTypeMismatch, n.String())
		}
		f = parsed
	case nil:
		return 0, fmt.Errorf("%w: got nil", ErrTypeMismatch)
	default:
		return 0, fmt.Errorf("%w: got %T", ErrTypeMismatch, v)
	}
	if math.IsNaN(f) {
		return 0, fmt.Errorf("%w: got NaN", ErrTypeMismatch)
	}
	return f, nil
}
