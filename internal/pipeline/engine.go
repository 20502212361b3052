package pipeline

import (
	"log/slog"

	"github.com/emelianov/fitspipe/internal/frame"
)

// Engine runs an ordered list of validated stages against a single
// working frame (spec.md §4.9 Execution).
type Engine struct {
	Stages []*StageSpec
}

// NewEngine parses and validates every raw descriptor, returning the
// first validation error encountered (named by its stage index).
func NewEngine(raw []string) (*Engine, error) {
	stages := make([]*StageSpec, 0, len(raw))
	for i, r := range raw {
		spec, err := ParseStageSpec(i, r)
		if err != nil {
			return nil, err
		}
		if spec.Help {
			return &Engine{Stages: []*StageSpec{spec}}, nil
		}
		if err := Validate(i, spec); err != nil {
			return nil, err
		}
		stages = append(stages, spec)
	}
	return &Engine{Stages: stages}, nil
}

// Run clones in into an owned working frame (the caller's frame is
// never mutated), then executes each stage in order: the stage
// receives the working frame, the engine takes its output frame,
// transfers the header list from the working frame onto it, drops the
// old working frame, and makes the new frame the working frame. A
// stage returning an error aborts the run, wrapped in a StageError
// naming the failing stage's index and type.
func (e *Engine) Run(in *frame.Frame) (*frame.Frame, error) {
	return e.RunWithProgress(in, nil)
}

// RunWithProgress behaves like Run, additionally invoking progress
// after each stage completes with that stage's index and type, so a
// caller (e.g. internal/batch) can report incremental progress on a
// long-running pipeline. progress may be nil.
func (e *Engine) RunWithProgress(in *frame.Frame, progress func(index int, stageType string)) (*frame.Frame, error) {
	working := in.Clone()
	for i, spec := range e.Stages {
		fn, ok := catalogue[spec.Type]
		if !ok {
			return nil, &UsageError{Stage: i, Msg: "unknown stage type: " + spec.Type}
		}
		slog.Debug("running pipeline stage", "index", i, "type", spec.Type)
		next, err := fn(working, spec.Params)
		if err != nil {
			return nil, &StageError{Stage: i, Type: spec.Type, Err: err}
		}
		// The stage's own output carries only whatever header records
		// it added (a COMMENT documenting its own operation, if any);
		// splice those onto the header list carried from working so a
		// stage's report is never lost, and a stage that adds nothing
		// still inherits the chain so far.
		carried := working.Headers.Clone()
		for _, r := range next.Headers.Records() {
			carried.Add(r.Key, r.Value)
		}
		next.Headers = carried
		working = next
		if progress != nil {
			progress(i, spec.Type)
		}
	}
	return working, nil
}
