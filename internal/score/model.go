// Package score combines a feature vector into a ZIX readability score
// using a fixed, versioned linear model.
package score

import (
	"fmt"

	"github.com/dgallion1/zix/internal/features"
)

// Model is a linear model over the feature columns. Weights are stored as
// a feature vector so each weight sits next to the column it scales.
type Model struct {
	Version   string
	Intercept float64
	Weights   features.Vector
}

// V1 is the calibration shipped with the first release.
var V1 = Model{
	Version:   "v1",
	Intercept: 1.479590840628414,
	Weights: features.Vector{
		SentenceLengthMean: -0.20719373829479843,
		Rix:                -0.5963010278441437,
		VocabA1:            4.813498290012683,
		VocabA2:            2.264470911860736,
		VocabB1:            1.5305918213813317,
		CommonWordScore:    0.07381956297341765,
		RixCWS:             -0.014473911227815574,
		RixVocabA1:         0.18210638524530622,
		RixVocabA2:         -0.09471062891638216,
		RixVocabB1:         -0.11837437221617025,
		SlmCWS:             0.006118346253981024,
		SlmVocabA1:         -0.18042706620812474,
		SlmVocabA2:         0.05391829419024582,
		SlmVocabB1:         0.08846318305520046,
	},
}

// Default is the model used when none is configured.
var Default = V1

var models = map[string]Model{
	V1.Version: V1,
}

// Lookup returns the model registered under version.
func Lookup(version string) (Model, error) {
	m, ok := models[version]
	if !ok {
		return Model{}, fmt.Errorf("unknown model version %q", version)
	}
	return m, nil
}

// Combine returns intercept + Σ weight·feature, summed in column order.
// Each product is rounded before it is added so results do not depend on
// fused multiply-add support.
func (m Model) Combine(v features.Vector) float64 {
	w, x := m.Weights.Values(), v.Values()
	z := m.Intercept
	for i := range w {
		z += float64(w[i] * x[i])
	}
	return z
}

// CombineRow scores a table-shaped row.
func (m Model) CombineRow(cols []string, vals []float64) (float64, error) {
	v, err := features.FromRow(cols, vals)
	if err != nil {
		return 0, err
	}
	return m.Combine(v), nil
}
