package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/zix/internal/annotate"
	"github.com/dgallion1/zix/internal/cefr"
	"github.com/dgallion1/zix/internal/features"
	"github.com/dgallion1/zix/internal/parser"
	"github.com/dgallion1/zix/internal/zix"
)

// statusFor maps scoring errors to HTTP status codes.
func statusFor(err error) int {
	var (
		maxBytes *http.MaxBytesError
		netErr   net.Error
	)
	switch {
	case errors.Is(err, zix.ErrInputTooLarge), errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, features.ErrEmptyDocument):
		return http.StatusUnprocessableEntity
	case errors.Is(err, cefr.ErrTypeMismatch), errors.Is(err, features.ErrMalformedRow):
		return http.StatusBadRequest
	case errors.Is(err, parser.ErrUnsupported):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return http.StatusGatewayTimeout
	case errors.Is(err, annotate.ErrUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code >= 500 {
		s.log.Error("request failed", "path", r.URL.Path, "error", err)
	}
	jsonError(w, err.Error(), code)
}

// writeJSON encodes v before writing the header so an unencodable value
// becomes a 500 instead of an empty success.
func writeJSON(w http.ResponseWriter, code int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("encode response", "error", err)
		code = http.StatusInternalServerError
		body, _ = json.Marshal(map[string]string{"error": "failed to encode response"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(append(body, '\n'))
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
