// Package vocab holds the CEFR vocabulary lists and the word commonness
// scores used for feature extraction. Tables are built once and are
// read-only afterwards, so a single value can be shared between goroutines.
package vocab

import (
	"maps"
	"slices"
	"strings"

	"github.com/dgallion1/zix/internal/cefr"
)

// Entry assigns a lemma to a CEFR level.
type Entry struct {
	Lemma string     `json:"lemma"`
	Level cefr.Level `json:"level"`
}

// Counts reports the size of each table.
type Counts struct {
	A1     int `json:"a1"`
	A2     int `json:"a2"`
	B1     int `json:"b1"`
	Scores int `json:"scores"`
}

// Tables are the A1, A2 and B1 lemma sets plus the lemma to commonness
// score map. All keys are lowercase.
type Tables struct {
	levels map[cefr.Level]map[string]struct{}
	scores map[string]float64
}

// NewTables builds tables from level entries and word scores. Lemmas are
// lowercased and trimmed; entries for levels above B1 are kept out of the
// lookup sets since they never count as covered vocabulary.
func NewTables(entries []Entry, scores map[string]float64) *Tables {
	t := &Tables{
		levels: map[cefr.Level]map[string]struct{}{
			cefr.A1: {},
			cefr.A2: {},
			cefr.B1: {},
		},
		scores: make(map[string]float64, len(scores)),
	}
	for _, e := range entries {
		set, ok := t.levels[e.Level]
		if !ok {
			continue
		}
		if key := Key(e.Lemma); key != "" {
			set[key] = struct{}{}
		}
	}
	for lemma, s := range scores {
		if key := Key(lemma); key != "" {
			t.scores[key] = s
		}
	}
	return t
}

// Key normalizes a lemma for lookups.
func Key(lemma string) string {
	return strings.ToLower(strings.TrimSpace(lemma))
}

// In reports whether the lowercased lemma is listed at exactly this level.
func (t *Tables) In(level cefr.Level, lemma string) bool {
	_, ok := t.levels[level][lemma]
	return ok
}

// Level returns the easiest level listing the lemma. Lookups expect a
// lowercased lemma.
func (t *Tables) Level(lemma string) (cefr.Level, bool) {
	for _, l := range []cefr.Level{cefr.A1, cefr.A2, cefr.B1} {
		if t.In(l, lemma) {
			return l, true
		}
	}
	return "", false
}

// Score returns the commonness score of a lowercased lemma.
func (t *Tables) Score(lemma string) (float64, bool) {
	s, ok := t.scores[lemma]
	return s, ok
}

// Entries lists all level entries sorted by level, then lemma.
func (t *Tables) Entries() []Entry {
	var out []Entry
	for _, l := range []cefr.Level{cefr.A1, cefr.A2, cefr.B1} {
		for _, lemma := range slices.Sorted(maps.Keys(t.levels[l])) {
			out = append(out, Entry{Lemma: lemma, Level: l})
		}
	}
	return out
}

// Scores returns a copy of the word score map.
func (t *Tables) Scores() map[string]float64 {
	return maps.Clone(t.scores)
}

func (t *Tables) Counts() Counts {
	return Counts{
		A1:     len(t.levels[cefr.A1]),
		A2:     len(t.levels[cefr.A2]),
		B1:     len(t.levels[cefr.B1]),
		Scores: len(t.scores),
	}
}
