// Package annotate holds the linguistic annotation model (sentences of
// lemmatized, POS-tagged tokens) and the client for the annotation service
// that produces it.
package annotate

import "context"

// Token is a single word or punctuation mark of an annotated sentence.
type Token struct {
	Text  string `json:"text"`
	Lemma string `json:"lemma"`

	// Universal POS tag (NOUN, VERB, PUNCT, NUM, ...)
	Pos string `json:"pos"`

	// A string containing detailed POS data
	Tag string `json:"tag,omitempty"`

	// Character offset of the token in the annotated text.
	Idx int `json:"idx"`

	IsPunct bool `json:"is_punct"`
	LikeNum bool `json:"like_num"`
}

// Punctuation reports whether the token is a punctuation mark. Documents
// stored without the is_punct flag fall back to the POS tag.
func (t Token) Punctuation() bool {
	return t.IsPunct || t.Pos == "PUNCT"
}

// Numeral reports whether the token looks like a number.
func (t Token) Numeral() bool {
	return t.LikeNum || t.Pos == "NUM"
}

// Word reports whether the token counts toward document length: neither
// punctuation nor a numeral.
func (t Token) Word() bool {
	return !t.Punctuation() && !t.Numeral()
}

// Document is an annotated text: a list of sentences, each a list of
// tokens, plus document-level statistics.
type Document struct {
	Tokens [][]Token `json:"tokens"`
	Stats  *Stats    `json:"stats,omitempty"`
}

// Each calls fn for every token of every sentence, in order.
func (d *Document) Each(fn func(Token)) {
	for _, sentence := range d.Tokens {
		for _, tok := range sentence {
			fn(tok)
		}
	}
}

// Len returns the total number of tokens, punctuation included.
func (d *Document) Len() int {
	n := 0
	for _, sentence := range d.Tokens {
		n += len(sentence)
	}
	return n
}

// Statistics returns the document statistics, deriving them from the tokens
// when the annotation service did not send any.
func (d *Document) Statistics() Stats {
	if d.Stats != nil {
		return *d.Stats
	}
	return Describe(d)
}

// Annotator turns text into an annotated document.
type Annotator interface {
	Annotate(ctx context.Context, text string) (*Document, error)
}

// AnnotatorFunc adapts a function to the Annotator interface.
type AnnotatorFunc func(ctx context.Context, text string) (*Document, error)

func (f AnnotatorFunc) Annotate(ctx context.Context, text string) (*Document, error) {
	return f(ctx, text)
}
