package api

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/tokest/internal/parser"
	"github.com/dgallion1/tokest/internal/pipeline"
	"github.com/dgallion1/tokest/internal/report"
	"github.com/dgallion1/tokest/internal/tokenest"
	"github.com/go-chi/chi/v5"
)

// handleDocument parses one uploaded file and returns its report inline.
func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	// Extra 1MB for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	name, count, err := tokenest.Resolve(s.counterName(r.FormValue("counter")))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

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

	data, err := s.readUpload(file)
	if err != nil {
		if errors.Is(err, errTooLarge) {
			jsonError(w, err.Error(), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}

	opts := parser.Options{PDFFallbackPdftotext: s.cfg.PDFFallbackPdftotext}
	tree, err := pipeline.ParseDocument(data, filename, r.FormValue("title"), opts)
	if err != nil {
		s.log.Warn("document parse failed", "filename", filename, "error", err)
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	var rep report.Report
	s.stats.Time(func() int {
		rep = report.Build(tree, name, count)
		return rep.Tokens
	})
	writeJSON(w, http.StatusOK, rep)
}

// handleBatch queues one estimation job per uploaded file.
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	if s.orchestrator == nil {
		jsonError(w, "batch estimation unavailable", http.StatusServiceUnavailable)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*10+10*1024*1024)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	name := s.counterName(r.FormValue("counter"))
	if _, err := tokenest.Lookup(name); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}

	var (
		results   []map[string]any
		queued    int
		queueFull bool
	)
	for _, fh := range files {
		filename := sanitizeFilename(fh.Filename)
		result := map[string]any{"filename": filename}
		results = append(results, result)

		if !parser.IsSupportedExtension(filename) {
			result["error"] = fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename))
			continue
		}

		data, err := s.readFileHeader(fh)
		if err != nil {
			result["error"] = err.Error()
			continue
		}

		job := pipeline.NewJob(filename, "", name, data)
		if err := s.orchestrator.Submit(job); err != nil {
			queueFull = queueFull || errors.Is(err, pipeline.ErrQueueFull)
			result["error"] = err.Error()
			continue
		}
		queued++
		result["job_id"] = job.ID
		result["status"] = pipeline.StatusQueued
		result["poll_url"] = "/api/estimate/jobs/" + job.ID
	}

	code := http.StatusAccepted
	if queued == 0 && queueFull {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]any{"jobs": results})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	if s.orchestrator == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}

var errTooLarge = errors.New("file exceeds max size")

func (s *Server) readUpload(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return nil, fmt.Errorf("%w (%d bytes)", errTooLarge, s.cfg.MaxUploadBytes)
	}
	return data, nil
}

func (s *Server) readFileHeader(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, errors.New("failed to open file")
	}
	defer f.Close()
	return s.readUpload(f)
}

func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" {
		name = "unnamed"
	}
	return name
}
