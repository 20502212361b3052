package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/emelianov/fitspipe/internal/frameio"
	"github.com/emelianov/fitspipe/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	inPath     string
	outPath    string
	stageArgs  []string
	cpuProfile string
	memProfile string
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run a pipeline of stages against an input frame",
	Long: `Decodes an input image into a frame, runs an ordered list of
stage descriptors against it, and writes the result back out.`,
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringVar(&inPath, "in", "", "Input image path (required)")
	processCmd.Flags().StringVar(&outPath, "out", "out.png", "Output image path")
	processCmd.Flags().StringArrayVarP(&stageArgs, "stage", "p", nil, "Stage descriptor (type=name:key=value...); repeatable")

	processCmd.Flags().StringVar(&cpuProfile, "cpuprofile", "", "Write CPU profile to file")
	processCmd.Flags().StringVar(&memProfile, "memprofile", "", "Write memory profile to file")

	processCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			return fmt.Errorf("failed to create CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("failed to start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
		slog.Info("CPU profiling enabled", "output", cpuProfile)
	}

	engine, err := pipeline.NewEngine(stageArgs)
	if err != nil {
		return fmt.Errorf("invalid pipeline: %w", err)
	}
	if len(engine.Stages) == 1 && engine.Stages[0].Help {
		fmt.Println("stage help requested; see the catalogue for per-stage parameters")
		return nil
	}

	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer in.Close()

	f, err := frameio.Decode(in)
	if err != nil {
		return fmt.Errorf("failed to decode input: %w", err)
	}

	slog.Info("starting pipeline run", "stages", len(engine.Stages), "width", f.Width, "height", f.Height)

	start := time.Now()
	out, err := engine.RunWithProgress(f, func(index int, stageType string) {
		slog.Debug("stage complete", "index", index, "type", stageType)
	})
	if err != nil {
		return fmt.Errorf("pipeline run failed: %w", err)
	}
	elapsed := time.Since(start)

	outFile, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer outFile.Close()

	if err := frameio.Encode(outFile, out); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	slog.Info("pipeline run complete", "elapsed", elapsed, "stages", len(engine.Stages))
	fmt.Printf("Wrote %s (%d stage(s), %s)\n", outPath, len(engine.Stages), elapsed.Round(time.Millisecond))

	if memProfile != "" {
		f, err := os.Create(memProfile)
		if err != nil {
			return fmt.Errorf("failed to create memory profile: %w", err)
		}
		defer f.Close()
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return fmt.Errorf("failed to write memory profile: %w", err)
		}
		slog.Info("memory profile written", "output", memProfile)
	}

	return nil
}
