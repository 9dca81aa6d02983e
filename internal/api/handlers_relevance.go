package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/sectify/internal/doc"
	"github.com/dgallion1/sectify/internal/parser"
	"github.com/dgallion1/sectify/internal/pipeline"
)

// relevanceRequest carries the persona and job fields of a relevance
// upload.
type relevanceRequest struct {
	Persona string `validate:"required,min=2"`
	Job     string `validate:"required,min=2"`
}

// handleRelevance accepts a document batch plus persona and job, queues a
// ranking job, and returns a poll URL.
func (s *Server) handleRelevance(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*int64(s.cfg.MaxDocuments)+10*1024*1024)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	req := relevanceRequest{
		Persona: r.FormValue("persona"),
		Job:     r.FormValue("job"),
	}
	if err := s.validate.Struct(req); err != nil {
		jsonError(w, "persona and job are required: "+err.Error(), http.StatusBadRequest)
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}

	var inputs []pipeline.Input
	var skipped []map[string]any
	for _, fh := range files {
		filename := sanitizeFilename(fh.Filename)
		if !parser.IsSupportedExtension(filename) {
			skipped = append(skipped, map[string]any{
				"filename": filename,
				"error":    fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)),
			})
			continue
		}

		f, err := fh.Open()
		if err != nil {
			skipped = append(skipped, map[string]any{
				"filename": filename,
				"error":    "failed to open file",
			})
			continue
		}

		data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
		f.Close()
		if err != nil || int64(len(data)) > s.cfg.MaxUploadBytes {
			skipped = append(skipped, map[string]any{
				"filename": filename,
				"error":    "file too large or read error",
			})
			continue
		}

		inputs = append(inputs, pipeline.Input{Name: filename, Data: data})
	}

	if len(inputs) == 0 {
		jsonError(w, "no processable files in batch", http.StatusBadRequest)
		return
	}

	job := pipeline.NewJob(doc.Query{Persona: req.Persona, Job: req.Job}, inputs)
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"status":   job.Status,
		"accepted": len(inputs),
		"skipped":  skipped,
		"poll_url": fmt.Sprintf("/api/relevance/%s/status", job.ID),
	})
}

func (s *Server) handleRelevanceStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}
