package batch

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/emelianov/fitspipe/internal/frameio"
	"github.com/emelianov/fitspipe/internal/pipeline"
)

// runJob executes a job's pipeline against its input frame, reporting
// per-stage progress through the manager's broadcaster. Mirrors the
// teacher's runJob goroutine kicked off from handleCreateJob.
func runJob(ctx context.Context, jobs *Manager, outputDir string, jobID string) {
	job, ok := jobs.Get(jobID)
	if !ok {
		return
	}

	jobs.Update(jobID, func(j *Job) { j.State = StateRunning })

	fail := func(err error) {
		jobs.Update(jobID, func(j *Job) {
			j.State = StateFailed
			j.Error = err.Error()
			now := time.Now()
			j.EndTime = &now
		})
		jobs.broadcaster.Broadcast(StageEvent{JobID: jobID, State: StateFailed, Timestamp: time.Now()})
	}

	in, err := os.Open(job.Config.InputPath)
	if err != nil {
		fail(err)
		return
	}
	defer in.Close()

	f, err := frameio.Decode(in)
	if err != nil {
		fail(err)
		return
	}

	engine, err := pipeline.NewEngine(job.Config.Stages)
	if err != nil {
		fail(err)
		return
	}

	out, err := engine.RunWithProgress(f, func(index int, stageType string) {
		jobs.Update(jobID, func(j *Job) {
			j.StageIndex = index
			j.StageType = stageType
		})
		jobs.broadcaster.Broadcast(StageEvent{
			JobID: jobID, State: StateRunning,
			StageIndex: index, StageType: stageType,
			Total: job.TotalStages, Timestamp: time.Now(),
		})
		select {
		case <-ctx.Done():
		default:
		}
	})
	if err != nil {
		fail(err)
		return
	}

	outPath := outputDir + "/" + jobID + ".png"
	w, err := os.Create(outPath)
	if err != nil {
		fail(err)
		return
	}
	defer w.Close()
	if err := frameio.Encode(w, out); err != nil {
		fail(err)
		return
	}

	now := time.Now()
	jobs.Update(jobID, func(j *Job) {
		j.State = StateCompleted
		j.OutputPath = outPath
		j.EndTime = &now
	})
	jobs.broadcaster.Broadcast(StageEvent{JobID: jobID, State: StateCompleted, Total: job.TotalStages, Timestamp: now})
	slog.Info("pipeline job completed", "job_id", jobID, "output", outPath)
}
