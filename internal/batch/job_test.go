package batch

import "testing"

func TestManagerCreateAssignsIDAndPendingState(t *testing.T) {
	m := NewManager()
	job := m.Create(JobConfig{InputPath: "in.png", Stages: []string{"type=median:r=1"}})
	if job.ID == "" {
		t.Fatal("expected a non-empty job ID")
	}
	if job.State != StatePending {
		t.Errorf("state = %v, want %v", job.State, StatePending)
	}
	if job.TotalStages != 1 {
		t.Errorf("TotalStages = %d, want 1", job.TotalStages)
	}
}

func TestManagerGetReturnsCreatedJob(t *testing.T) {
	m := NewManager()
	job := m.Create(JobConfig{InputPath: "in.png"})
	got, ok := m.Get(job.ID)
	if !ok {
		t.Fatal("expected job to be found")
	}
	if got.ID != job.ID {
		t.Errorf("Get returned job %s, want %s", got.ID, job.ID)
	}
}

func TestManagerGetMissingJobReturnsFalse(t *testing.T) {
	m := NewManager()
	if _, ok := m.Get("nonexistent"); ok {
		t.Fatal("expected ok=false for a missing job")
	}
}

func TestManagerListReturnsEveryJob(t *testing.T) {
	m := NewManager()
	m.Create(JobConfig{InputPath: "a.png"})
	m.Create(JobConfig{InputPath: "b.png"})
	if got := len(m.List()); got != 2 {
		t.Fatalf("List() has %d jobs, want 2", got)
	}
}

func TestManagerUpdateMutatesInPlace(t *testing.T) {
	m := NewManager()
	job := m.Create(JobConfig{InputPath: "a.png"})
	m.Update(job.ID, func(j *Job) { j.State = StateCompleted })
	got, _ := m.Get(job.ID)
	if got.State != StateCompleted {
		t.Errorf("state = %v, want %v", got.State, StateCompleted)
	}
}

func TestManagerUpdateOnMissingJobIsNoop(t *testing.T) {
	m := NewManager()
	m.Update("nonexistent", func(j *Job) { j.State = StateCompleted })
}
