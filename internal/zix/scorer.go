// Package zix scores the readability of German text. It ties together
// normalization, annotation, feature extraction, the linear score model and
// the CEFR classifier.
package zix

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/dgallion1/zix/internal/annotate"
	"github.com/dgallion1/zix/internal/cefr"
	"github.com/dgallion1/zix/internal/features"
	"github.com/dgallion1/zix/internal/normalize"
	"github.com/dgallion1/zix/internal/score"
	"github.com/dgallion1/zix/internal/vocab"
)

// DefaultMaxLength is the longest text, in characters, accepted for
// scoring. It matches the default limit of the annotation service.
const DefaultMaxLength = 1_000_000

var ErrInputTooLarge = errors.New("input text too large")

type Config struct {
	MaxLength int
	Model     score.Model
}

// Result is the full outcome of scoring one text.
type Result struct {
	ZIX            float64           `json:"zix"`
	Level          cefr.Level        `json:"cefr"`
	Features       features.Vector   `json:"features"`
	Coverage       features.Coverage `json:"coverage"`
	Stats          annotate.Stats    `json:"stats"`
	ModelVersion   string            `json:"model_version"`
	NormalizedText string            `json:"normalized_text,omitempty"`
}

// Scorer computes ZIX scores. It is safe for concurrent use as long as the
// annotator is.
type Scorer struct {
	annotator annotate.Annotator
	extractor *features.Extractor
	model     score.Model
	maxLength int
}

// NewScorer builds a scorer. A zero MaxLength selects DefaultMaxLength and a
// model without weights selects score.Default.
func NewScorer(annotator annotate.Annotator, tables *vocab.Tables, cfg Config) *Scorer {
	if cfg.MaxLength <= 0 {
		cfg.MaxLength = DefaultMaxLength
	}
	if cfg.Model.Version == "" {
		cfg.Model = score.Default
	}
	return &Scorer{
		annotator: annotator,
		extractor: features.NewExtractor(tables),
		model:     cfg.Model,
		maxLength: cfg.MaxLength,
	}
}

func (s *Scorer) ModelVersion() string { return s.model.Version }

func (s *Scorer) Model() score.Model { return s.model }

func (s *Scorer) MaxLength() int { return s.maxLength }

// CheckLength fails with ErrInputTooLarge if text has more characters than
// the scorer accepts.
func (s *Scorer) CheckLength(text string) error {
	if len(text) <= s.maxLength {
		return nil
	}
	if n := utf8.RuneCountInString(text); n > s.maxLength {
		return fmt.Errorf("%w: %d characters, limit %d", ErrInputTooLarge, n, s.maxLength)
	}
	return nil
}

// ZIX returns the readability score of text. Higher is easier; 0 lies at
// the B1/B2 boundary.
func (s *Scorer) ZIX(ctx context.Context, text string) (float64, error) {
	res, err := s.Score(ctx, text)
	if err != nil {
		return 0, err
	}
	return res.ZIX, nil
}

// Features returns the feature vector of text without scoring it.
func (s *Scorer) Features(ctx context.Context, text string) (features.Vector, error) {
	doc, _, err := s.annotate(ctx, text)
	if err != nil {
		return features.Vector{}, err
	}
	return s.extractor.Extract(doc)
}

// Score normalizes and annotates text and returns the full result.
func (s *Scorer) Score(ctx context.Context, text string) (*Result, error) {
	doc, normalized, err := s.annotate(ctx, text)
	if err != nil {
		return nil, err
	}
	res, err := s.ScoreDocument(doc)
	if err != nil {
		return nil, err
	}
	res.NormalizedText = normalized
	return res, nil
}

// ScoreDocument scores an already annotated document.
func (s *Scorer) ScoreDocument(doc *annotate.Document) (*Result, error) {
	vec, cov, err := s.extractor.ExtractWithCoverage(doc)
	if err != nil {
		return nil, err
	}
	z := s.model.Combine(vec)
	return &Result{
		ZIX:          z,
		Level:        cefr.Classify(z),
		Features:     vec,
		Coverage:     cov,
		Stats:        doc.Statistics(),
		ModelVersion: s.model.Version,
	}, nil
}

func (s *Scorer) annotate(ctx context.Context, text string) (*annotate.Document, string, error) {
	if err := s.CheckLength(text); err != nil {
		return nil, "", err
	}
	normalized := normalize.PunctuateLines(text)
	if normalized == "" {
		return nil, "", features.ErrEmptyDocument
	}
	doc, err := s.annotator.Annotate(ctx, normalized)
	if err != nil {
		return nil, "", fmt.Errorf("annotate: %w", err)
	}
	return doc, normalized, nil
}

// CEFR classifies a score of any numeric type. Non-numeric values fail
// with cefr.ErrTypeMismatch.
func CEFR(v any) (cefr.Level, error) {
	return cefr.FromValue(v)
}
