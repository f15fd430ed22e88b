// Package features derives the fourteen readability features of an
// annotated German document.
package features

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// NumFeatures is the number of columns of a feature row.
const NumFeatures = 14

// Names lists the feature columns in their fixed order.
var Names = []string{
	"sentence_length_mean",
	"rix",
	"vocab_a1",
	"vocab_a2",
	"vocab_b1",
	"common_word_score",
	"rix_cws",
	"rix_vocab_a1",
	"rix_vocab_a2",
	"rix_vocab_b1",
	"slm_cws",
	"slm_vocab_a1",
	"slm_vocab_a2",
	"slm_vocab_b1",
}

var ErrMalformedRow = errors.New("malformed feature row")

// Vector is one feature row. The rix_* and slm_* fields are products of rix
// or sentence_length_mean with the matching base feature.
type Vector struct {
	SentenceLengthMean float64 `json:"sentence_length_mean"`
	Rix                float64 `json:"rix"`
	VocabA1            float64 `json:"vocab_a1"`
	VocabA2            float64 `json:"vocab_a2"`
	VocabB1            float64 `json:"vocab_b1"`
	CommonWordScore    float64 `json:"common_word_score"`
	RixCWS             float64 `json:"rix_cws"`
	RixVocabA1         float64 `json:"rix_vocab_a1"`
	RixVocabA2         float64 `json:"rix_vocab_a2"`
	RixVocabB1         float64 `json:"rix_vocab_b1"`
	SlmCWS             float64 `json:"slm_cws"`
	SlmVocabA1         float64 `json:"slm_vocab_a1"`
	SlmVocabA2         float64 `json:"slm_vocab_a2"`
	SlmVocabB1         float64 `json:"slm_vocab_b1"`
}

// NewVector builds a vector from the six base features and fills in the
// interaction terms.
func NewVector(slm, rix, a1, a2, b1, cws float64) Vector {
	return Vector{
		SentenceLengthMean: slm,
		Rix:                rix,
		VocabA1:            a1,
		VocabA2:            a2,
		VocabB1:            b1,
		CommonWordScore:    cws,
		RixCWS:             rix * cws,
		RixVocabA1:         rix * a1,
		RixVocabA2:         rix * a2,
		RixVocabB1:         rix * b1,
		SlmCWS:             slm * cws,
		SlmVocabA1:         slm * a1,
		SlmVocabA2:         slm * a2,
		SlmVocabB1:         slm * b1,
	}
}

// Values returns the features in column order.
func (v Vector) Values() []float64 {
	return []float64{
		v.SentenceLengthMean,
		v.Rix,
		v.VocabA1,
		v.VocabA2,
		v.VocabB1,
		v.CommonWordScore,
		v.RixCWS,
		v.RixVocabA1,
		v.RixVocabA2,
		v.RixVocabB1,
		v.SlmCWS,
		v.SlmVocabA1,
		v.SlmVocabA2,
		v.SlmVocabB1,
	}
}

// FromValues builds a vector from values in column order. Interaction
// terms are taken as given.
func FromValues(vals []float64) (Vector, error) {
	if len(vals) != NumFeatures {
		return Vector{}, fmt.Errorf("%w: got %d values, want %d", ErrMalformedRow, len(vals), NumFeatures)
	}
	return Vector{
		SentenceLengthMean: vals[0],
		Rix:                vals[1],
		VocabA1:            vals[2],
		VocabA2:            vals[3],
		VocabB1:            vals[4],
		CommonWordScore:    vals[5],
		RixCWS:             vals[6],
		RixVocabA1:         vals[7],
		RixVocabA2:         vals[8],
		RixVocabB1:         vals[9],
		SlmCWS:             vals[10],
		SlmVocabA1:         vals[11],
		SlmVocabA2:         vals[12],
		SlmVocabB1:         vals[13],
	}, nil
}

// FromRow builds a vector from a table row. The columns must match Names
// exactly, in order.
func FromRow(cols []string, vals []float64) (Vector, error) {
	if len(cols) != NumFeatures {
		return Vector{}, fmt.Errorf("%w: got %d columns, want %d", ErrMalformedRow, len(cols), NumFeatures)
	}
	for i, c := range cols {
		if c != Names[i] {
			return Vector{}, fmt.Errorf("%w: column %d is %q, want %q", ErrMalformedRow, i, c, Names[i])
		}
	}
	if len(vals) != len(cols) {
		return Vector{}, fmt.Errorf("%w: %d columns but %d values", ErrMalformedRow, len(cols), len(vals))
	}
	return FromValues(vals)
}

// WriteCSV writes a header row and one row per vector.
func WriteCSV(w io.Writer, vectors ...Vector) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Names); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	record := make([]string, NumFeatures)
	for _, v := range vectors {
		for i, f := range v.Values() {
			record[i] = strconv.FormatFloat(f, 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
