package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/sectify/internal/outline"
	"github.com/dgallion1/sectify/internal/parser"
	"github.com/dgallion1/sectify/internal/pipeline"
	"github.com/dgallion1/sectify/internal/schemas"
)

// handleOutline extracts an outline from a single uploaded document,
// synchronously. Parse failures of a valid upload still return 200 with
// an error outline so batch clients get one JSON per input.
func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	o, err := s.engine.Outline(r.Context(), pipeline.Input{Name: filename, Data: data})
	if err != nil {
		var openErr *parser.OpenError
		if errors.As(err, &openErr) {
			o = outline.ErrorOutline(openErr.Err)
		} else {
			o = outline.ErrorOutline(err)
		}
		s.log.Warn("outline extraction failed", "document", filename, "error", err)
	}

	body, err := json.Marshal(o)
	if err != nil {
		jsonError(w, "encode outline", http.StatusInternalServerError)
		return
	}
	if err := schemas.ValidateOutline(body); err != nil {
		s.log.Error("outline failed schema validation", "document", filename, "error", err)
		jsonError(w, "outline failed validation", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
