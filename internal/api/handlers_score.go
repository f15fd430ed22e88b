package api

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"

	"github.com/dgallion1/zix/internal/annotate"
	"github.com/dgallion1/zix/internal/cefr"
	"github.com/dgallion1/zix/internal/features"
	"github.com/dgallion1/zix/internal/zix"
)

type textRequest struct {
	Text string `json:"text"`
}

type zixResponse struct {
	ZIX          float64           `json:"zix"`
	Level        cefr.Level        `json:"cefr"`
	Features     features.Vector   `json:"features"`
	Coverage     features.Coverage `json:"coverage"`
	Stats        annotate.Stats    `json:"stats"`
	ModelVersion string            `json:"model_version"`
}

// decodeJSON reads a size-limited JSON body. Numbers decode as
// json.Number so integer scores keep their type.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func (s *Server) readText(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req textRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		code := statusFor(err)
		if code == http.StatusInternalServerError {
			code = http.StatusBadRequest
		}
		jsonError(w, err.Error(), code)
		return "", false
	}
	return req.Text, true
}

func (s *Server) handleZIX(w http.ResponseWriter, r *http.Request) {
	text, ok := s.readText(w, r)
	if !ok {
		return
	}
	res, err := s.scorer.Score(r.Context(), text)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, zixFromResult(res))
}

func zixFromResult(res *zix.Result) zixResponse {
	return zixResponse{
		ZIX:          res.ZIX,
		Level:        res.Level,
		Features:     res.Features,
		Coverage:     res.Coverage,
		Stats:        res.Stats,
		ModelVersion: res.ModelVersion,
	}
}

func (s *Server) handleCEFR(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Score any `json:"score"`
	}
	if err := s.decodeJSON(w, r, &req); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	level, err := zix.CEFR(req.Score)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cefr": level})
}

func (s *Server) handleFeatures(w http.ResponseWriter, r *http.Request) {
	text, ok := s.readText(w, r)
	if !ok {
		return
	}
	vec, err := s.scorer.Features(r.Context(), text)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"columns": features.Names,
		"values":  vec.Values(),
	})
}

// handleScoreRow scores a precomputed feature row without annotation.
func (s *Server) handleScoreRow(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Columns []string  `json:"columns"`
		Values  []float64 `json:"values"`
	}
	if err := s.decodeJSON(w, r, &req); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	model := s.scorer.Model()
	z, err := model.CombineRow(req.Columns, req.Values)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if math.IsInf(z, 0) || math.IsNaN(z) {
		jsonError(w, "feature values overflow the score", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"zix":           z,
		"cefr":          cefr.Classify(z),
		"model_version": model.Version,
	})
}
