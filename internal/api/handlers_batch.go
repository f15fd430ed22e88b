package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/zix/internal/pipeline"
)

// handleBatch queues one scoring job per uploaded file.
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*10+10*1024*1024)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}

	results := make([]map[string]any, 0, len(files))
	queued := 0
	for _, fh := range files {
		filename, data, err := s.readUpload(fh)
		if err != nil {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    err.Error(),
			})
			continue
		}

		job := pipeline.NewJob(filename, "", data)
		if err := s.orchestrator.Submit(job); err != nil {
			results = append(results, map[string]any{
				"filename": filename,
				"job_id":   job.ID,
				"error":    err.Error(),
			})
			if errors.Is(err, pipeline.ErrQueueFull) {
				s.log.Warn("batch queue full", "filename", filename)
			}
			continue
		}
		queued++

		results = append(results, map[string]any{
			"filename": filename,
			"job_id":   job.ID,
			"status":   pipeline.StatusQueued,
			"poll_url": fmt.Sprintf("/api/batch/%s/status", job.ID),
		})
	}

	code := http.StatusAccepted
	if queued == 0 {
		code = http.StatusBadRequest
	}
	writeJSON(w, code, map[string]any{"jobs": results})
}

func (s *Server) handleBatchStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}
