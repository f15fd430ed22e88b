package pipeline

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/zix/internal/annotate"
	"github.com/dgallion1/zix/internal/annotate/annotatetest"
	"github.com/dgallion1/zix/internal/cefr"
	"github.com/dgallion1/zix/internal/doctree"
	"github.com/dgallion1/zix/internal/features"
	"github.com/dgallion1/zix/internal/logger"
	"github.com/dgallion1/zix/internal/segment"
	"github.com/dgallion1/zix/internal/store"
	"github.com/dgallion1/zix/internal/vocab/vocabtest"
	"github.com/dgallion1/zix/internal/zix"
)

const twoChapters = `# Wetter

Heute regnet es in Berlin. Morgen scheint die Sonne wieder.

# Umwelt

Wir müssen die Umwelt schützen. Das ist unsere Verantwortung.
`

var testAnalyzerConfig = AnalyzerConfig{
	Segment:            segment.Config{MaxChars: 1000, MinChars: 10},
	MaxConcurrentScore: 2,
}

func newTestAnalyzer(t *testing.T, ann annotate.Annotator, cache Cache) *Analyzer {
	t.Helper()
	scorer := zix.NewScorer(ann, vocabtest.Tables(), zix.Config{})
	return NewAnalyzer(scorer, cache, testAnalyzerConfig, logger.Discard())
}

// failingOn fails annotation of any text containing word.
func failingOn(word string) annotate.Annotator {
	ann := annotatetest.NewAnnotator()
	return annotate.AnnotatorFunc(func(ctx context.Context, text string) (*annotate.Document, error) {
		if strings.Contains(text, word) {
			return nil, annotate.ErrUnavailable
		}
		return ann.Annotate(ctx, text)
	})
}

func openCache(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestScoreText(t *testing.T) {
	a := newTestAnalyzer(t, annotatetest.NewAnnotator(), nil)

	sc, err := a.ScoreText(context.Background(), annotatetest.SimpleSentence)
	require.NoError(t, err)
	assert.Equal(t, 7.979886902287279, sc.ZIX)
	assert.Equal(t, cefr.A1, sc.Level)
	assert.Equal(t, "v1", sc.ModelVersion)
	require.NotNil(t, sc.Stats)
	assert.Equal(t, 7, sc.Stats.Tokens)
	assert.False(t, sc.Cached)
}

func TestScoreText_UsesCache(t *testing.T) {
	ann := annotatetest.NewAnnotator()
	cache := openCache(t)
	a := newTestAnalyzer(t, ann, cache)
	ctx := context.Background()

	first, err := a.ScoreText(ctx, annotatetest.SimpleSentence)
	require.NoError(t, err)
	require.False(t, first.Cached)

	// whitespace differences normalize to the same text
	second, err := a.ScoreText(ctx, "\n"+annotatetest.SimpleSentence+"  ")
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.ZIX, second.ZIX)
	assert.Equal(t, first.Features, second.Features)
	assert.Nil(t, second.Stats)

	assert.Len(t, ann.Calls(), 1, "cached text must not be annotated again")

	n, err := cache.CountResults(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestScoreText_TooLarge(t *testing.T) {
	ann := annotatetest.NewAnnotator()
	scorer := zix.NewScorer(ann, vocabtest.Tables(), zix.Config{MaxLength: 10})
	a := NewAnalyzer(scorer, openCache(t), testAnalyzerConfig, logger.Discard())

	_, err := a.ScoreText(context.Background(), annotatetest.SimpleSentence)
	assert.ErrorIs(t, err, zix.ErrInputTooLarge)
	assert.Empty(t, ann.Calls())
}

func TestAnalyze_Markdown(t *testing.T) {
	a := newTestAnalyzer(t, annotatetest.NewAnnotator(), nil)

	report, err := a.Analyze(context.Background(), "kapitel.md", "", []byte(twoChapters))
	require.NoError(t, err)

	assert.Equal(t, "kapitel", report.Title)
	assert.Equal(t, "kapitel.md", report.Filename)
	assert.Len(t, report.ContentHash, 64)
	require.NotNil(t, report.Document)
	assert.Empty(t, report.Error)

	require.Len(t, report.Sections, 2)
	assert.Equal(t, []string{"Wetter"}, report.Sections[0].Breadcrumb)
	assert.Equal(t, []string{"Umwelt"}, report.Sections[1].Breadcrumb)
	for i, s := range report.Sections {
		assert.Equal(t, i, s.Index)
		require.NotNil(t, s.Score, "section %d", i)
		assert.True(t, s.Score.Level.IsValid())
	}
	assert.Zero(t, report.Failed())
}

func TestAnalyze_TitleOverride(t *testing.T) {
	a := newTestAnalyzer(t, annotatetest.NewAnnotator(), nil)

	report, err := a.Analyze(context.Background(), "kapitel.md", "Mein Buch", []byte(twoChapters))
	require.NoError(t, err)
	assert.Equal(t, "Mein Buch", report.Title)
}

func TestAnalyze_UnsupportedFile(t *testing.T) {
	a := newTestAnalyzer(t, annotatetest.NewAnnotator(), nil)

	_, err := a.Analyze(context.Background(), "programm.exe", "", []byte("MZ"))
	assert.Error(t, err)
}

func TestScoreTree_SectionFailure(t *testing.T) {
	a := newTestAnalyzer(t, failingOn("Umwelt"), nil)

	tree, err := a.Parse("kapitel.md", "", []byte(twoChapters))
	require.NoError(t, err)

	tr := &recordingTracker{}
	report, err := a.ScoreTree(context.Background(), tree, "kapitel.md", tr)
	require.NoError(t, err)

	// the whole document contains the failing section too
	assert.Nil(t, report.Document)
	assert.Contains(t, report.Error, annotate.ErrUnavailable.Error())

	require.Len(t, report.Sections, 2)
	assert.NotNil(t, report.Sections[0].Score)
	assert.Nil(t, report.Sections[1].Score)
	assert.Contains(t, report.Sections[1].Error, "annotate:")
	assert.Equal(t, 1, report.Failed())

	assert.Equal(t, 2, tr.planned)
	assert.ElementsMatch(t, []int{0, 1}, tr.scored)
	assert.Equal(t, 1, tr.failed)
}

func TestScoreTree_Empty(t *testing.T) {
	a := newTestAnalyzer(t, annotatetest.NewAnnotator(), nil)

	tree := &doctree.DocTree{Title: "leer", Children: []*doctree.DocNode{{Title: "Nichts"}}}
	_, err := a.ScoreTree(context.Background(), tree, "leer.md", nil)
	assert.ErrorIs(t, err, features.ErrEmptyDocument)
}

func TestScoreTree_ShortSectionsStillScoreDocument(t *testing.T) {
	a := newTestAnalyzer(t, annotatetest.NewAnnotator(), nil)

	tree := &doctree.DocTree{Children: []*doctree.DocNode{{Text: "Kurz."}}}
	report, err := a.ScoreTree(context.Background(), tree, "kurz.txt", nil)
	require.NoError(t, err)
	assert.NotNil(t, report.Document)
	assert.Empty(t, report.Sections)
}

type recordingTracker struct {
	planned int
	scored  []int
	failed  int
}

func (r *recordingTracker) Planned(n int) { r.planned = n }

func (r *recordingTracker) Scored(idx int, err error) {
	r.scored = append(r.scored, idx)
	if err != nil {
		r.failed++
	}
}
