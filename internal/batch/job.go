// Package batch is a job manager for asynchronous pipeline runs: a job
// tracks a stage-descriptor list running against one input frame and
// exposes its progress over HTTP.
package batch

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// JobState is the lifecycle state of a pipeline run.
type JobState string

const (
	StatePending   JobState = "pending"
	StateRunning   JobState = "running"
	StateCompleted JobState = "completed"
	StateFailed    JobState = "failed"
)

// JobConfig names the input frame and the stage descriptors to run
// against it.
type JobConfig struct {
	InputPath string   `json:"inputPath"`
	Stages    []string `json:"stages"`
}

// Job is one pipeline run, tracked from submission through completion.
type Job struct {
	ID          string     `json:"id"`
	State       JobState   `json:"state"`
	Config      JobConfig  `json:"config"`
	StageIndex  int        `json:"stageIndex"`
	StageType   string     `json:"stageType,omitempty"`
	TotalStages int        `json:"totalStages"`
	OutputPath  string     `json:"outputPath,omitempty"`
	StartTime   time.Time  `json:"startTime"`
	EndTime     *time.Time `json:"endTime,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// Manager tracks every job submitted to a batch server, matching the
// sync.RWMutex-guarded map pattern of JobManager in the teacher.
type Manager struct {
	mu          sync.RWMutex
	jobs        map[string]*Job
	broadcaster *Broadcaster
}

// NewManager returns an empty job manager.
func NewManager() *Manager {
	return &Manager{
		jobs:        make(map[string]*Job),
		broadcaster: NewBroadcaster(),
	}
}

// Create registers a new pending job for the given configuration.
func (m *Manager) Create(config JobConfig) *Job {
	m.mu.Lock()
	defer m.mu.Unlock()

	job := &Job{
		ID:          uuid.New().String(),
		State:       StatePending,
		Config:      config,
		TotalStages: len(config.Stages),
		StartTime:   time.Now(),
	}
	m.jobs[job.ID] = job
	return job
}

// Get retrieves a job by ID.
func (m *Manager) Get(id string) (*Job, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[id]
	return job, ok
}

// List returns every tracked job.
func (m *Manager) List() []*Job {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		out = append(out, j)
	}
	return out
}

// Update atomically mutates a job in place.
func (m *Manager) Update(id string, fn func(*Job)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if job, ok := m.jobs[id]; ok {
		fn(job)
	}
}
