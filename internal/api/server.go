// Package api serves ZIX scoring over HTTP.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/zix/internal/annotate"
	"github.com/dgallion1/zix/internal/config"
	"github.com/dgallion1/zix/internal/pipeline"
	"github.com/dgallion1/zix/internal/store"
	"github.com/dgallion1/zix/internal/zix"
)

// ResultStore looks up cached document scores. *store.Store implements it.
type ResultStore interface {
	GetResult(ctx context.Context, contentHash, modelVersion string) (*store.Result, error)
}

// Server is the HTTP API server for zix.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	analyzer     *pipeline.Analyzer
	scorer       *zix.Scorer
	stats        *annotate.LatencyStats
	results      ResultStore
	log          *slog.Logger
	cfg          config.ServerConfig
}

// NewServer creates and configures the HTTP server. stats and results may
// be nil; their endpoints then answer 503.
func NewServer(orch *pipeline.Orchestrator, stats *annotate.LatencyStats, results ResultStore, log *slog.Logger, cfg config.ServerConfig) *Server {
	s := &Server{
		orchestrator: orch,
		analyzer:     orch.Analyzer(),
		scorer:       orch.Analyzer().Scorer(),
		stats:        stats,
		results:      results,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/zix", s.handleZIX)
		r.Post("/api/cefr", s.handleCEFR)
		r.Post("/api/features", s.handleFeatures)
		r.Post("/api/score/row", s.handleScoreRow)

		r.Post("/api/documents/score", s.handleScoreDocument)
		r.Get("/api/results/{hash}", s.handleGetResult)

		r.Post("/api/batch", s.handleBatch)
		r.Get("/api/batch/{jobID}/status", s.handleBatchStatus)

		r.Get("/api/stats/annotator", s.handleAnnotatorStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"model_version": s.scorer.ModelVersion(),
		"queue_depth":   s.orchestrator.QueueDepth(),
	})
}
