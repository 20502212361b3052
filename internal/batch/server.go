package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Server is the HTTP front end for submitting and tracking pipeline
// jobs: create a job with an input path and a stage-descriptor list,
// poll its status, stream its progress. The resulting PNG is written
// under outputDir and its path is reported in the job status; no route
// serves the file itself.
type Server struct {
	jobs      *Manager
	outputDir string
	addr      string
	server    *http.Server
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewServer returns a batch server that writes completed pipeline
// outputs under outputDir.
func NewServer(addr, outputDir string) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		jobs:      NewManager(),
		outputDir: outputDir,
		addr:      addr,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start runs the HTTP server until it errors or is shut down.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/jobs", s.handleJobs)
	mux.HandleFunc("/api/v1/jobs/", s.handleJobsWithID)

	s.server = &http.Server{Addr: s.addr, Handler: s.loggingMiddleware(mux)}
	slog.Info("starting batch HTTP server", "addr", s.addr)
	return s.server.ListenAndServe()
}

// Shutdown cancels the server context and gracefully stops the HTTP
// server. A job that is already running is not interrupted and runs to
// completion.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateJob(w, r)
	case http.MethodGet:
		s.handleListJobs(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleJobsWithID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/jobs/")
	parts := strings.SplitN(path, "/", 2)
	if parts[0] == "" {
		http.Error(w, "job id required", http.StatusBadRequest)
		return
	}
	jobID := parts[0]
	switch {
	case len(parts) == 1 || parts[1] == "status":
		s.handleStatus(w, r, jobID)
	case parts[1] == "stream":
		s.handleStream(w, r, jobID)
	default:
		http.Error(w, "not found", http.StatusNotFound)
	}
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var config JobConfig
	if err := json.NewDecoder(r.Body).Decode(&config); err != nil {
		http.Error(w, fmt.Sprintf("invalid JSON: %v", err), http.StatusBadRequest)
		return
	}
	if config.InputPath == "" {
		http.Error(w, "inputPath is required", http.StatusBadRequest)
		return
	}
	if len(config.Stages) == 0 {
		http.Error(w, "stages must not be empty", http.StatusBadRequest)
		return
	}

	job := s.jobs.Create(config)
	go runJob(s.ctx, s.jobs, s.outputDir, job.ID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(job)
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.jobs.List())
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request, jobID string) {
	job, ok := s.jobs.Get(jobID)
	if !ok {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("http request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
