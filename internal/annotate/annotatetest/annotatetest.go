// Package annotatetest provides annotated documents and a fake annotator
// for tests that must not depend on a running annotation service.
package annotatetest

import (
	"context"
	"strings"
	"sync"

	"github.com/dgallion1/zix/internal/annotate"
)

// SimpleSentence is the text annotated by SimpleDocument.
const SimpleSentence = "Das ist ein einfacher Satz auf Deutsch."

// SimpleDocument returns the annotation of SimpleSentence as produced by
// the German news model.
func SimpleDocument() *annotate.Document {
	return &annotate.Document{
		Tokens: [][]annotate.Token{{
			{Text: "Das", Lemma: "der", Pos: "PRON", Tag: "PDS", Idx: 0},
			{Text: "ist", Lemma: "sein", Pos: "AUX", Tag: "VAFIN", Idx: 4},
			{Text: "ein", Lemma: "ein", Pos: "DET", Tag: "ART", Idx: 8},
			{Text: "einfacher", Lemma: "einfach", Pos: "ADJ", Tag: "ADJA", Idx: 12},
			{Text: "Satz", Lemma: "Satz", Pos: "NOUN", Tag: "NN", Idx: 22},
			{Text: "auf", Lemma: "auf", Pos: "ADP", Tag: "APPR", Idx: 27},
			{Text: "Deutsch", Lemma: "Deutsch", Pos: "NOUN", Tag: "NN", Idx: 31},
			{Text: ".", Lemma: "--", Pos: "PUNCT", Tag: "$.", Idx: 38, IsPunct: true},
		}},
	}
}

// Annotator is a fake annotation service. Known texts return a copy of their
// registered document; any other text is split on whitespace into one
// sentence of words lemmatized to themselves.
type Annotator struct {
	mu    sync.Mutex
	docs  map[string]*annotate.Document
	calls []string
	Err   error
}

func NewAnnotator() *Annotator {
	a := &Annotator{docs: make(map[string]*annotate.Document)}
	a.Register(SimpleSentence, SimpleDocument())
	return a
}

// Register makes Annotate return doc for text.
func (a *Annotator) Register(text string, doc *annotate.Document) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.docs[text] = doc
}

// Calls returns the texts passed to Annotate so far.
func (a *Annotator) Calls() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.calls...)
}

func (a *Annotator) Annotate(ctx context.Context, text string) (*annotate.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.calls = append(a.calls, text)
	doc, ok := a.docs[text]
	err := a.Err
	a.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if ok {
		return clone(doc), nil
	}
	return Naive(text), nil
}

// Naive annotates text as a single sentence of whitespace-separated words.
// A trailing period becomes its own punctuation token.
func Naive(text string) *annotate.Document {
	var sentence []annotate.Token
	idx := 0
	for _, field := range strings.Fields(text) {
		word := strings.TrimSuffix(field, ".")
		if word != "" {
			sentence = append(sentence, annotate.Token{Text: word, Lemma: word, Pos: "X", Idx: idx})
		}
		if word != field {
			sentence = append(sentence, annotate.Token{Text: ".", Lemma: ".", Pos: "PUNCT", Idx: idx + len(word), IsPunct: true})
		}
		idx += len(field) + 1
	}
	doc := &annotate.Document{}
	if len(sentence) > 0 {
		doc.Tokens = [][]annotate.Token{sentence}
	}
	return doc
}

func clone(doc *annotate.Document) *annotate.Document {
	out := &annotate.Document{Tokens: make([][]annotate.Token, len(doc.Tokens))}
	for i, s := range doc.Tokens {
		out.Tokens[i] = append([]annotate.Token(nil), s...)
	}
	if doc.Stats != nil {
		st := *doc.Stats
		out.Stats = &st
	}
	return out
}
