package annotate

import (
	"math"
	"unicode/utf8"
)

// longWordLen is the rune length above which a word counts as long.
const longWordLen = 6

// Stats are the descriptive statistics of an annotated document.
// Sentence length is measured in non-punctuation tokens; numerals count.
type Stats struct {
	Sentences          int     `json:"sentences"`
	Tokens             int     `json:"tokens"`
	LongWords          int     `json:"long_words"`
	SentenceLengthMean float64 `json:"sentence_length_mean"`
	SentenceLengthStd  float64 `json:"sentence_length_std"`
	Rix                float64 `json:"rix"`
}

// Describe computes Stats from the document's tokens. Rix is the number of
// long words per sentence; the standard deviation is the population one.
// An empty document yields zero statistics.
func Describe(doc *Document) Stats {
	var st Stats
	lengths := make([]int, 0, len(doc.Tokens))
	for _, sentence := range doc.Tokens {
		n := 0
		for _, tok := range sentence {
			if tok.Punctuation() {
				continue
			}
			n++
			if utf8.RuneCountInString(tok.Text) > longWordLen {
				st.LongWords++
			}
		}
		lengths = append(lengths, n)
		st.Tokens += n
	}

	st.Sentences = len(lengths)
	if st.Sentences == 0 {
		return st
	}

	mean := float64(st.Tokens) / float64(st.Sentences)
	var sq float64
	for _, n := range lengths {
		d := float64(n) - mean
		sq += d * d
	}

	st.SentenceLengthMean = mean
	st.SentenceLengthStd = math.Sqrt(sq / float64(st.Sentences))
	st.Rix = float64(st.LongWords) / float64(st.Sentences)
	return st
}
