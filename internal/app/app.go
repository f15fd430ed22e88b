// Package app wires configuration into a ready scorer, shared by the HTTP
// server and the command line tool.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgallion1/zix/internal/annotate"
	"github.com/dgallion1/zix/internal/config"
	"github.com/dgallion1/zix/internal/pipeline"
	"github.com/dgallion1/zix/internal/score"
	"github.com/dgallion1/zix/internal/segment"
	"github.com/dgallion1/zix/internal/store"
	"github.com/dgallion1/zix/internal/vocab"
	"github.com/dgallion1/zix/internal/zix"
)

// App holds the long-lived components. Store is nil when disabled.
type App struct {
	Config    *config.Config
	Log       *slog.Logger
	Store     *store.Store
	Tables    *vocab.Tables
	Annotator *annotate.Client
	Stats     *annotate.LatencyStats
	Scorer    *zix.Scorer
	Analyzer  *pipeline.Analyzer
}

// New builds the components described by cfg. Callers must Close the App.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	a := &App{Config: cfg, Log: log}

	if cfg.Store.Enabled() {
		st, err := store.Open(cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		a.Store = st
	}

	tables, err := a.loadTables(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Tables = tables
	counts := tables.Counts()
	log.Info("vocabulary loaded",
		"a1", counts.A1, "a2", counts.A2, "b1", counts.B1, "scores", counts.Scores,
		"from_store", cfg.Vocab.FromStore)

	model, err := score.Lookup(cfg.Scoring.ModelVersion)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Stats = annotate.NewLatencyStats(cfg.Annotator.StatsWindow)
	a.Annotator = annotate.NewClient(annotate.ClientConfig{
		BaseURL: cfg.Annotator.URL,
		APIKey:  cfg.Annotator.APIKey,
		Model:   cfg.Annotator.Model,
		Timeout: cfg.Annotator.Timeout,
	}, a.Stats)

	a.Scorer = zix.NewScorer(a.Annotator, tables, zix.Config{
		MaxLength: cfg.Scoring.MaxLength,
		Model:     model,
	})
	a.Analyzer = pipeline.NewAnalyzer(a.Scorer, a.Cache(), pipeline.AnalyzerConfig{
		Segment: segment.Config{
			MaxChars: cfg.Scoring.SectionMaxChars,
			MinChars: cfg.Scoring.SectionMinChars,
		},
		MaxConcurrentScore:   cfg.Pipeline.MaxConcurrentScore,
		PDFFallbackPdftotext: !cfg.Pipeline.NoPdftotextFallback,
	}, log)

	return a, nil
}

func (a *App) loadTables(ctx context.Context) (*vocab.Tables, error) {
	if a.Config.Vocab.FromStore {
		if a.Store == nil {
			return nil, errors.New("vocabulary from store requested but the store is disabled")
		}
		t, err := a.Store.LoadTables(ctx)
		if err != nil {
			return nil, fmt.Errorf("load vocabulary from store: %w", err)
		}
		return t, nil
	}
	t, err := vocab.LoadCSV(a.Config.Vocab.LevelsPath, a.Config.Vocab.ScoresPath)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}
	return t, nil
}

// Cache returns the store as a pipeline.Cache, or a nil interface when
// the store is disabled.
func (a *App) Cache() pipeline.Cache {
	if a.Store == nil {
		return nil
	}
	return a.Store
}

func (a *App) Close() {
	if a.Annotator != nil {
		a.Annotator.Close()
	}
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			a.Log.Warn("close store", "error", err)
		}
	}
}
