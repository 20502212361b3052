package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/emelianov/fitspipe/internal/frame"
	"github.com/emelianov/fitspipe/internal/frameio"
)

func createTestPNG(t *testing.T, path string) {
	t.Helper()
	f := frame.New(8, 8, frame.Float64)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			f.Set(x, y, float64((x+y)*1000))
		}
	}
	out, err := os.Create(path)
	if err != nil {
		t.Fatalf("create test png: %v", err)
	}
	defer out.Close()
	if err := frameio.Encode(out, f); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
}

func TestServerCreateJob(t *testing.T) {
	tmpDir := t.TempDir()
	imgPath := filepath.Join(tmpDir, "in.png")
	createTestPNG(t, imgPath)

	s := NewServer(":0", tmpDir)
	config := JobConfig{InputPath: imgPath, Stages: []string{"type=step:nsteps=8:scale=uniform"}}
	body, _ := json.Marshal(config)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs", bytes.NewReader(body))
	w := httptest.NewRecorder()

	s.handleCreateJob(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	var job Job
	if err := json.NewDecoder(w.Body).Decode(&job); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if job.ID == "" {
		t.Fatal("expected a non-empty job ID")
	}
}

func TestServerCreateJobRejectsMissingInputPath(t *testing.T) {
	s := NewServer(":0", t.TempDir())
	body, _ := json.Marshal(JobConfig{Stages: []string{"type=step:nsteps=8:scale=uniform"}})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs", bytes.NewReader(body))
	w := httptest.NewRecorder()

	s.handleCreateJob(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestServerCreateJobRejectsEmptyStages(t *testing.T) {
	s := NewServer(":0", t.TempDir())
	body, _ := json.Marshal(JobConfig{InputPath: "in.png"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs", bytes.NewReader(body))
	w := httptest.NewRecorder()

	s.handleCreateJob(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestServerListJobs(t *testing.T) {
	tmpDir := t.TempDir()
	imgPath := filepath.Join(tmpDir, "in.png")
	createTestPNG(t, imgPath)

	s := NewServer(":0", tmpDir)
	s.jobs.Create(JobConfig{InputPath: imgPath, Stages: []string{"type=step:nsteps=8:scale=uniform"}})
	s.jobs.Create(JobConfig{InputPath: imgPath, Stages: []string{"type=sobelh"}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
	w := httptest.NewRecorder()
	s.handleListJobs(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var jobs []*Job
	if err := json.NewDecoder(w.Body).Decode(&jobs); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("got %d jobs, want 2", len(jobs))
	}
}

func TestServerGetJobStatusNotFound(t *testing.T) {
	s := NewServer(":0", t.TempDir())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/nonexistent", nil)
	w := httptest.NewRecorder()
	s.handleStatus(w, req, "nonexistent")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestServerJobRunsToCompletion(t *testing.T) {
	tmpDir := t.TempDir()
	imgPath := filepath.Join(tmpDir, "in.png")
	createTestPNG(t, imgPath)

	s := NewServer(":0", tmpDir)
	job := s.jobs.Create(JobConfig{InputPath: imgPath, Stages: []string{"type=sobelh"}})
	runJob(s.ctx, s.jobs, s.outputDir, job.ID)

	got, ok := s.jobs.Get(job.ID)
	if !ok {
		t.Fatal("expected job to still be tracked")
	}
	if got.State != StateCompleted {
		t.Fatalf("state = %v, want %v (error: %s)", got.State, StateCompleted, got.Error)
	}
	if _, err := os.Stat(got.OutputPath); err != nil {
		t.Fatalf("expected output file at %s: %v", got.OutputPath, err)
	}
}

func TestServerJobFailsOnMissingInput(t *testing.T) {
	tmpDir := t.TempDir()
	s := NewServer(":0", tmpDir)
	job := s.jobs.Create(JobConfig{InputPath: filepath.Join(tmpDir, "missing.png"), Stages: []string{"type=sobelh"}})
	runJob(s.ctx, s.jobs, s.outputDir, job.ID)

	got, _ := s.jobs.Get(job.ID)
	if got.State != StateFailed {
		t.Fatalf("state = %v, want %v", got.State, StateFailed)
	}
	if got.Error == "" {
		t.Fatal("expected a non-empty error message")
	}
}

func TestServerStreamRejectsUnknownJob(t *testing.T) {
	s := NewServer(":0", t.TempDir())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/nonexistent/stream", nil)
	w := httptest.NewRecorder()
	s.handleStream(w, req, "nonexistent")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestServerHandleJobsWithIDRoutesStatusAndRejectsEmptyID(t *testing.T) {
	tmpDir := t.TempDir()
	imgPath := filepath.Join(tmpDir, "in.png")
	createTestPNG(t, imgPath)
	s := NewServer(":0", tmpDir)
	job := s.jobs.Create(JobConfig{InputPath: imgPath, Stages: []string{"type=sobelh"}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/"+job.ID, nil)
	w := httptest.NewRecorder()
	s.handleJobsWithID(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/jobs/", nil)
	w = httptest.NewRecorder()
	s.handleJobsWithID(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for empty job id", w.Code)
	}
}

func TestServerShutdownCancelsContext(t *testing.T) {
	s := NewServer(":0", t.TempDir())
	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	select {
	case <-s.ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("expected server context to be cancelled after Shutdown")
	}
}
