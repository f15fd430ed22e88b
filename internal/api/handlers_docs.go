package api

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/zix/internal/parser"
	"github.com/dgallion1/zix/internal/store"
)

var errTooLarge = errors.New("file exceeds max upload size")

// readUpload reads one multipart file, enforcing the upload limit and the
// supported extensions.
func (s *Server) readUpload(fh *multipart.FileHeader) (string, []byte, error) {
	filename := sanitizeFilename(fh.Filename)
	if !parser.IsSupportedExtension(filename) {
		return filename, nil, fmt.Errorf("%w: %s", parser.ErrUnsupported, filepath.Ext(filename))
	}
	f, err := fh.Open()
	if err != nil {
		return filename, nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return filename, nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return filename, nil, fmt.Errorf("%w (%d bytes)", errTooLarge, s.cfg.MaxUploadBytes)
	}
	return filename, data, nil
}

// handleScoreDocument parses and scores one uploaded file synchronously.
func (s *Server) handleScoreDocument(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	uploads := r.MultipartForm.File["file"]
	if len(uploads) == 0 {
		jsonError(w, "file is required", http.StatusBadRequest)
		return
	}

	filename, data, err := s.readUpload(uploads[0])
	if errors.Is(err, errTooLarge) {
		jsonError(w, err.Error(), http.StatusRequestEntityTooLarge)
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}

	report, err := s.analyzer.Analyze(r.Context(), filename, r.FormValue("title"), data)
	if err != nil {
		code := statusFor(err)
		if code == http.StatusInternalServerError {
			// parser failures are the client's file
			code = http.StatusBadRequest
		}
		jsonError(w, err.Error(), code)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// handleGetResult returns a cached document score by content hash.
func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	if s.results == nil {
		jsonError(w, "result store disabled", http.StatusServiceUnavailable)
		return
	}
	hash := chi.URLParam(r, "hash")
	version := r.URL.Query().Get("model_version")
	if version == "" {
		version = s.scorer.ModelVersion()
	}

	res, err := s.results.GetResult(r.Context(), hash, version)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, "result not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
