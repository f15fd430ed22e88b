package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgallion1/zix/internal/annotate"
	"github.com/dgallion1/zix/internal/cefr"
	"github.com/dgallion1/zix/internal/doctree"
	"github.com/dgallion1/zix/internal/features"
	"github.com/dgallion1/zix/internal/normalize"
	"github.com/dgallion1/zix/internal/parser"
	"github.com/dgallion1/zix/internal/segment"
	"github.com/dgallion1/zix/internal/store"
	"github.com/dgallion1/zix/internal/zix"
)

// Cache stores document scores keyed by content hash and model version.
// *store.Store implements it.
type Cache interface {
	GetResult(ctx context.Context, contentHash, modelVersion string) (*store.Result, error)
	SaveResult(ctx context.Context, r store.Result) error
}

// Score is the readability of one text.
type Score struct {
	ZIX          float64         `json:"zix"`
	Level        cefr.Level      `json:"cefr"`
	Features     features.Vector `json:"features"`
	Stats        *annotate.Stats `json:"stats,omitempty"`
	ModelVersion string          `json:"model_version"`
	Cached       bool            `json:"cached,omitempty"`
}

// SectionScore is the score of one section. Score is nil when the
// section could not be scored.
type SectionScore struct {
	segment.Section
	Score *Score `json:"score,omitempty"`
	Error string `json:"error,omitempty"`
}

// Report is the outcome of scoring a whole document.
type Report struct {
	Title       string         `json:"title"`
	Filename    string         `json:"filename"`
	ContentHash string         `json:"content_hash"`
	Document    *Score         `json:"document,omitempty"`
	Error       string         `json:"error,omitempty"`
	Sections    []SectionScore `json:"sections"`
}

// Failed counts sections without a score.
func (r *Report) Failed() int {
	n := 0
	for _, s := range r.Sections {
		if s.Score == nil {
			n++
		}
	}
	return n
}

// AnalyzerConfig tunes document analysis.
type AnalyzerConfig struct {
	Segment              segment.Config
	MaxConcurrentScore   int
	PDFFallbackPdftotext bool
}

// Analyzer parses documents and scores them as a whole and per section.
type Analyzer struct {
	scorer *zix.Scorer
	cache  Cache
	log    *slog.Logger
	cfg    AnalyzerConfig
}

// NewAnalyzer creates an analyzer. cache may be nil.
func NewAnalyzer(scorer *zix.Scorer, cache Cache, cfg AnalyzerConfig, log *slog.Logger) *Analyzer {
	if cfg.MaxConcurrentScore <= 0 {
		cfg.MaxConcurrentScore = 1
	}
	return &Analyzer{scorer: scorer, cache: cache, log: log, cfg: cfg}
}

func (a *Analyzer) Scorer() *zix.Scorer { return a.scorer }

// Parse turns raw file bytes into a document tree. title overrides the
// title derived from the filename.
func (a *Analyzer) Parse(filename, title string, data []byte) (*doctree.DocTree, error) {
	p, err := parser.ForFile(filename, parser.Options{PDFFallbackPdftotext: a.cfg.PDFFallbackPdftotext})
	if err != nil {
		return nil, err
	}
	tree, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if title != "" {
		tree.Title = title
	}
	return tree, nil
}

// ScoreText scores text, consulting the cache first. Texts that fail the
// length guard are rejected before the cache is touched.
func (a *Analyzer) ScoreText(ctx context.Context, text string) (*Score, error) {
	if err := a.scorer.CheckLength(text); err != nil {
		return nil, err
	}
	hash := store.ContentHash(normalize.PunctuateLines(text))
	version := a.scorer.ModelVersion()

	if a.cache != nil {
		cached, err := a.cache.GetResult(ctx, hash, version)
		switch {
		case err == nil:
			return &Score{
				ZIX:          cached.ZIX,
				Level:        cached.Level,
				Features:     cached.Features,
				ModelVersion: cached.ModelVersion,
				Cached:       true,
			}, nil
		case !errors.Is(err, store.ErrNotFound):
			a.log.Warn("cache lookup failed, scoring anyway", "error", err)
		}
	}

	res, err := a.scorer.Score(ctx, text)
	if err != nil {
		return nil, err
	}

	if a.cache != nil {
		err := a.cache.SaveResult(ctx, store.Result{
			ContentHash:  hash,
			ModelVersion: res.ModelVersion,
			ZIX:          res.ZIX,
			Level:        res.Level,
			Features:     res.Features,
		})
		if err != nil {
			a.log.Warn("cache write failed", "error", err)
		}
	}

	stats := res.Stats
	return &Score{
		ZIX:          res.ZIX,
		Level:        res.Level,
		Features:     res.Features,
		Stats:        &stats,
		ModelVersion: res.ModelVersion,
	}, nil
}

// Tracker follows the progress of ScoreTree. Scored is called once per
// section in completion order, from a single goroutine.
type Tracker interface {
	Planned(sections int)
	Scored(index int, err error)
}

// ScoreTree scores the flattened document and each section with bounded
// concurrency. A document score failure is reported in the Report, not
// as an error; the returned error is only set when there was nothing to
// score at all.
func (a *Analyzer) ScoreTree(ctx context.Context, tree *doctree.DocTree, filename string, tracker Tracker) (*Report, error) {
	flat := segment.Flatten(tree)
	normalized := normalize.PunctuateLines(flat)
	report := &Report{
		Title:       tree.Title,
		Filename:    filename,
		ContentHash: store.ContentHash(normalized),
	}
	if normalized == "" {
		return report, features.ErrEmptyDocument
	}

	sections := segment.Split(tree, a.cfg.Segment)
	report.Sections = make([]SectionScore, len(sections))
	for i, sec := range sections {
		report.Sections[i].Section = sec
	}
	if tracker != nil {
		tracker.Planned(len(sections))
	}

	doc, err := a.ScoreText(ctx, flat)
	if err != nil {
		report.Error = err.Error()
		a.log.Warn("document score failed", "filename", filename, "error", err)
	} else {
		report.Document = doc
	}

	type result struct {
		idx   int
		score *Score
		err   error
	}
	results := make(chan result, len(sections))
	sem := make(chan struct{}, a.cfg.MaxConcurrentScore)

	for i, sec := range sections {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			results <- result{idx: i, err: ctx.Err()}
			continue
		}
		go func(i int, text string) {
			defer func() { <-sem }()
			sc, err := a.ScoreText(ctx, text)
			results <- result{idx: i, score: sc, err: err}
		}(i, sec.Text)
	}

	for range sections {
		r := <-results
		if r.err != nil {
			report.Sections[r.idx].Error = r.err.Error()
		} else {
			report.Sections[r.idx].Score = r.score
		}
		if tracker != nil {
			tracker.Scored(r.idx, r.err)
		}
	}
	return report, nil
}

// Analyze parses and scores a file in one call.
func (a *Analyzer) Analyze(ctx context.Context, filename, title string, data []byte) (*Report, error) {
	tree, err := a.Parse(filename, title, data)
	if err != nil {
		return nil, err
	}
	return a.ScoreTree(ctx, tree, filename, nil)
}
