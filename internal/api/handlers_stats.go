package api

import "net/http"

func (s *Server) handleAnnotatorStats(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		jsonError(w, "annotator stats unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"model_version": s.scorer.ModelVersion(),
		"stats":         s.stats.Snapshot(),
	})
}
