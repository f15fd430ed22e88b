package features

import (
	"errors"
	"strings"

	"github.com/dgallion1/zix/internal/annotate"
	"github.com/dgallion1/zix/internal/cefr"
	"github.com/dgallion1/zix/internal/vocab"
)

// ErrEmptyDocument is returned for documents without a single token that is
// neither punctuation nor a numeral.
var ErrEmptyDocument = errors.New("document has no words")

// Coverage holds the raw vocabulary counters of a document. A lemma counts
// toward its own level and every harder one, so A1 <= A2 <= B1.
type Coverage struct {
	DocLen     int     `json:"doc_len"`
	A1         int     `json:"a1"`
	A2         int     `json:"a2"`
	B1         int     `json:"b1"`
	WordScores float64 `json:"word_scores"`
}

// Extractor computes feature vectors against a fixed set of vocabulary
// tables. It holds no mutable state.
type Extractor struct {
	tables *vocab.Tables
}

func NewExtractor(tables *vocab.Tables) *Extractor {
	return &Extractor{tables: tables}
}

// Coverage counts words and vocabulary hits. Every token is looked up,
// punctuation included; only words count toward DocLen.
func (e *Extractor) Coverage(doc *annotate.Document) Coverage {
	var c Coverage
	doc.Each(func(tok annotate.Token) {
		if tok.Word() {
			c.DocLen++
		}

		lemma := strings.ToLower(tok.Lemma)
		switch {
		case e.tables.In(cefr.A1, lemma):
			c.A1++
			c.A2++
			c.B1++
		case e.tables.In(cefr.A2, lemma):
			c.A2++
			c.B1++
		case e.tables.In(cefr.B1, lemma):
			c.B1++
		}

		if s, ok := e.tables.Score(lemma); ok {
			c.WordScores += s
		}
	})
	return c
}

// Extract returns the feature vector of doc.
func (e *Extractor) Extract(doc *annotate.Document) (Vector, error) {
	v, _, err := e.ExtractWithCoverage(doc)
	return v, err
}

// ExtractWithCoverage returns the feature vector together with the
// counters it was derived from, walking doc once.
func (e *Extractor) ExtractWithCoverage(doc *annotate.Document) (Vector, Coverage, error) {
	c := e.Coverage(doc)
	if c.DocLen == 0 {
		return Vector{}, c, ErrEmptyDocument
	}

	n := float64(c.DocLen)
	st := doc.Statistics()
	return NewVector(
		st.SentenceLengthMean,
		st.Rix,
		float64(c.A1)/n,
		float64(c.A2)/n,
		float64(c.B1)/n,
		c.WordScores/n/1000,
	), c, nil
}
