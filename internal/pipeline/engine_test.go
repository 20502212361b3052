package pipeline

import (
	"testing"

	"github.com/emelianov/fitspipe/internal/frame"
)

func TestNewEngineRejectsInvalidDescriptor(t *testing.T) {
	if _, err := NewEngine([]string{"type=bogus"}); err == nil {
		t.Fatal("expected error for unknown stage type")
	}
}

func TestNewEngineStopsAtHelp(t *testing.T) {
	e, err := NewEngine([]string{"type=median:r=1", "help", "type=gauss"})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if len(e.Stages) != 1 || !e.Stages[0].Help {
		t.Fatalf("expected engine to stop parsing at help, got %+v", e.Stages)
	}
}

func TestEngineRunAppliesStagesInOrder(t *testing.T) {
	e, err := NewEngine([]string{"type=step:nsteps=4:scale=uniform"})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	in := frame.New(4, 4, frame.Float64)
	for i := range in.Pixels {
		in.Pixels[i] = float64(i)
	}
	out, err := e.Run(in)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Width != in.Width || out.Height != in.Height {
		t.Fatalf("output shape %dx%d, want %dx%d", out.Width, out.Height, in.Width, in.Height)
	}
}

func TestEngineRunDoesNotMutateInputFrame(t *testing.T) {
	e, err := NewEngine([]string{"type=step:nsteps=4:scale=uniform"})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	in := frame.New(4, 4, frame.Float64)
	for i := range in.Pixels {
		in.Pixels[i] = float64(i)
	}
	before := append([]float64(nil), in.Pixels...)
	if _, err := e.Run(in); err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i := range in.Pixels {
		if in.Pixels[i] != before[i] {
			t.Fatalf("Run mutated the input frame at pixel %d", i)
		}
	}
}

func TestEngineRunWithProgressReportsEveryStage(t *testing.T) {
	e, err := NewEngine([]string{"type=step:nsteps=4:scale=uniform", "type=sobelh"})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	in := frame.New(8, 8, frame.Float64)
	for i := range in.Pixels {
		in.Pixels[i] = float64(i)
	}
	var seen []string
	_, err = e.RunWithProgress(in, func(index int, stageType string) {
		seen = append(seen, stageType)
		_ = index
	})
	if err != nil {
		t.Fatalf("RunWithProgress: %v", err)
	}
	want := []string{"step", "sobelh"}
	if len(seen) != len(want) {
		t.Fatalf("progress calls = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("progress calls = %v, want %v", seen, want)
		}
	}
}

func TestEngineRunCarriesInputHeadersAndStageComments(t *testing.T) {
	e, err := NewEngine([]string{"type=step:nsteps=4:scale=uniform", "type=sobelh"})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	in := frame.New(4, 4, frame.Float64)
	for i := range in.Pixels {
		in.Pixels[i] = float64(i)
	}
	in.Headers.Add("OBJECT", "test frame")

	out, err := e.Run(in)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, ok := out.Headers.Find("OBJECT"); !ok {
		t.Error("expected the input's OBJECT header to survive the run")
	}
	comments := out.Headers.FindByPrefix("COMMENT")
	if len(comments) != 1 {
		t.Fatalf("got %d COMMENT records, want 1 (step's own report; sobelh adds none)", len(comments))
	}
}

func TestEngineRunWrapsStageFailureInStageError(t *testing.T) {
	e, err := NewEngine([]string{"type=median:r=1"})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	// A 1x1 frame is below median's 2x2 minimum shape.
	in := frame.New(1, 1, frame.Float64)
	if _, err := e.Run(in); err == nil {
		t.Fatal("expected a StageError from an undersized frame")
	} else if _, ok := err.(*StageError); !ok {
		t.Fatalf("error type = %T, want *StageError", err)
	}
}
