// Package api is the thin HTTP boundary around the extraction pipeline.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-parser/internal/export"
	"resume-parser/internal/models"
	"resume-parser/internal/pipeline"
	"resume-parser/internal/validate"
)

// multipart framing allowance on top of the document size limit
const uploadOverhead = 1 << 20

// ResumeParser is the pipeline entry point the server needs.
type ResumeParser interface {
	Parse(ctx context.Context, data []byte) (*models.ParsedResume, error)
}

// Server handles HTTP requests.
type Server struct {
	parser    ResumeParser
	maxUpload int64
	timeout   time.Duration
}

// NewServer creates a new API server. maxUpload bounds the accepted
// document size; timeout bounds one parse request end to end.
func NewServer(parser ResumeParser, maxUpload int64, timeout time.Duration) *Server {
	return &Server{
		parser:    parser,
		maxUpload: maxUpload,
		timeout:   timeout,
	}
}

// Router returns the HTTP router.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /resume/parse", s.handleParse)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /", s.handleRoot)

	return s.loggingMiddleware(mux)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"service": "Resume Parser",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"POST /resume/parse": "Upload a PDF resume, get structured JSON (or ?format=xlsx)",
			"GET /health":        "Health check",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleParse accepts a multipart PDF upload and runs the pipeline.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	if s.maxUpload > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload+uploadOverhead)
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse form: %v", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "a PDF file is required in the 'file' field")
		return
	}
	defer file.Close()

	if strings.ToLower(filepath.Ext(header.Filename)) != ".pdf" {
		s.respondError(w, http.StatusBadRequest, "only PDF files are supported")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to read upload: %v", err))
		return
	}

	ctx := r.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resume, err := s.parser.Parse(ctx, data)
	if err != nil {
		s.respondPipelineError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "xlsx" {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="parsed_resume.xlsx"`)
		if err := export.Write(w, resume); err != nil {
			log.Printf("failed to write workbook: %v", err)
		}
		return
	}

	s.respondJSON(w, http.StatusOK, resume)
}

// errorBody is the failure shape callers branch on: category, message and,
// for validation failures, the full violation list.
type errorBody struct {
	Category   string               `json:"category"`
	Message    string               `json:"message"`
	Violations []validate.Violation `json:"violations,omitempty"`
}

func (s *Server) respondPipelineError(w http.ResponseWriter, err error) {
	var perr *pipeline.Error
	if !errors.As(err, &perr) {
		log.Printf("unexpected pipeline failure: %v", err)
		s.respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	status := http.StatusInternalServerError
	switch perr.Category {
	case pipeline.CategoryInput:
		status = http.StatusBadRequest
	case pipeline.CategoryValidation:
		status = http.StatusUnprocessableEntity
	case pipeline.CategoryAccessDenied:
		status = http.StatusBadGateway
	case pipeline.CategoryProviderUnavailable:
		status = http.StatusServiceUnavailable
	}

	s.respondJSON(w, status, map[string]errorBody{"error": {
		Category:   string(perr.Category),
		Message:    perr.Message,
		Violations: perr.Violations,
	}})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode JSON response: %v", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]errorBody{"error": {
		Category: string(pipeline.CategoryInput),
		Message:  message,
	}})
}

// loggingMiddleware logs each request with a generated request id.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)
		log.Printf("%s %s %s request_id=%s", r.Method, r.URL.Path, r.RemoteAddr, requestID)
		next.ServeHTTP(w, r)
	})
}
