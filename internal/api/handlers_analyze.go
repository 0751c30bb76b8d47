package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/doclayout/internal/chunker"
	"github.com/dgallion1/doclayout/internal/pipeline"
	"github.com/dgallion1/doclayout/internal/render"
	"github.com/dgallion1/doclayout/internal/source"
	"github.com/go-chi/chi/v5"
)

// handleAnalyze accepts a multipart upload and queues an analysis job.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	now := time.Now()
	job := &pipeline.Job{
		ID:        pipeline.NewID(),
		DocID:     pipeline.ContentHashHex(data)[:16],
		Status:    pipeline.StatusQueued,
		Phase:     "queued",
		Filename:  filename,
		Title:     r.FormValue("title"),
		CreatedAt: now,
		UpdatedAt: now,
	}
	job.SetFileData(data)

	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"doc_id":   job.DocID,
		"status":   job.Status,
		"poll_url": fmt.Sprintf("/api/analyze/%s/status", job.ID),
	})
}

// handleAnalyzeSync extracts and analyzes inline, for small documents.
func (s *Server) handleAnalyzeSync(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	provider, err := source.ForFile(filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	doc, err := provider.Extract(bytes.NewReader(data), filename)
	if err != nil {
		var srcErr *source.SourceError
		if errors.As(err, &srcErr) {
			jsonError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	result := s.analyzer.Analyze(doc.Pages)

	switch r.URL.Query().Get("format") {
	case "markdown":
		md := render.Markdown(result, render.Options{
			Title:      doc.Title,
			PageBreaks: true,
			CleanNoise: s.cfg.CleanNoise,
		})
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		io.WriteString(w, md)
	case "outline":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		io.WriteString(w, render.Outline(result.Structure))
	default:
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}
}

func (s *Server) handleAnalyzeStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   snap.ID,
		"doc_id":   snap.DocID,
		"status":   snap.Status,
		"phase":    snap.Phase,
		"progress": snap.Progress,
	})
}

func (s *Server) handleAnalyzeResult(w http.ResponseWriter, r *http.Request) {
	job, ok := s.completedJob(w, r)
	if !ok {
		return
	}

	switch r.URL.Query().Get("format") {
	case "markdown":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		io.WriteString(w, job.Markdown())
	case "outline":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		io.WriteString(w, render.Outline(job.Result().Structure))
	case "html":
		html, err := render.HTML(job.Markdown())
		if err != nil {
			jsonError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, html)
	default:
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(job.Result())
	}
}

func (s *Server) handleAnalyzeChunks(w http.ResponseWriter, r *http.Request) {
	job, ok := s.completedJob(w, r)
	if !ok {
		return
	}
	chunks := job.Chunks()
	if chunks == nil {
		chunks = []chunker.Chunk{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"job_id": job.ID,
		"chunks": chunks,
	})
}

// completedJob resolves the jobID route param to a completed job.
func (s *Server) completedJob(w http.ResponseWriter, r *http.Request) (*pipeline.Job, bool) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return nil, false
	}
	snap := job.Snapshot()
	if snap.Status != pipeline.StatusCompleted {
		jsonError(w, fmt.Sprintf("job is %s", snap.Status), http.StatusConflict)
		return nil, false
	}
	return job, true
}

// readUpload validates and reads the multipart file field.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return "", nil, false
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return "", nil, false
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !source.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return "", nil, false
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return "", nil, false
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return "", nil, false
	}

	return filename, data, true
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
