// Package vocabtest provides small vocabulary tables for tests.
package vocabtest

import (
	"github.com/dgallion1/zix/internal/cefr"
	"github.com/dgallion1/zix/internal/vocab"
)

// Tables lists every lemma of annotatetest.SimpleSentence at A1 with word
// scores summing to 68880, plus a few A2 and B1 lemmas.
func Tables() *vocab.Tables {
	entries := []vocab.Entry{
		{Lemma: "der", Level: cefr.A1},
		{Lemma: "sein", Level: cefr.A1},
		{Lemma: "ein", Level: cefr.A1},
		{Lemma: "einfach", Level: cefr.A1},
		{Lemma: "Satz", Level: cefr.A1},
		{Lemma: "auf", Level: cefr.A1},
		{Lemma: "Deutsch", Level: cefr.A1},
		{Lemma: "Wetter", Level: cefr.A2},
		{Lemma: "regnen", Level: cefr.A2},
		{Lemma: "Umwelt", Level: cefr.B1},
		{Lemma: "Verantwortung", Level: cefr.B1},
	}
	scores := map[string]float64{
		"der":     20000,
		"sein":    15000,
		"ein":     12000,
		"einfach": 3000,
		"satz":    2880,
		"auf":     11000,
		"deutsch": 5000,
		"wetter":  1500,
	}
	return vocab.NewTables(entries, scores)
}
