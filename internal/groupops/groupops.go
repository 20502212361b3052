// Package groupops implements element-wise multi-frame folds kept
// outside the pipeline core: sum, mean and per-pixel median across a
// stack of same-shaped frames. Per-pixel reduction uses
// gonum.org/v1/gonum/floats.
package groupops

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/emelianov/fitspipe/internal/frame"
	"github.com/emelianov/fitspipe/internal/median"
)

// Sum returns the element-wise sum of frames, which must all share the
// same shape.
func Sum(frames []*frame.Frame) (*frame.Frame, error) {
	base, err := checkShapes(frames)
	if err != nil {
		return nil, err
	}
	out := base.Like(frame.Float64)
	col := make([]float64, len(frames))
	for i := range out.Pixels {
		for j, f := range frames {
			col[j] = f.Pixels[i]
		}
		out.Pixels[i] = floats.Sum(col)
	}
	return out, nil
}

// Mean returns the element-wise mean of frames.
func Mean(frames []*frame.Frame) (*frame.Frame, error) {
	base, err := checkShapes(frames)
	if err != nil {
		return nil, err
	}
	out := base.Like(frame.Float64)
	n := float64(len(frames))
	col := make([]float64, len(frames))
	for i := range out.Pixels {
		for j, f := range frames {
			col[j] = f.Pixels[i]
		}
		out.Pixels[i] = floats.Sum(col) / n
	}
	return out, nil
}

// Median returns the element-wise median across frames, reusing
// internal/median's dispatch between optimal sorting networks and
// quick-select.
func Median(frames []*frame.Frame) (*frame.Frame, error) {
	base, err := checkShapes(frames)
	if err != nil {
		return nil, err
	}
	out := base.Like(frame.Float64)
	col := make([]float64, len(frames))
	for i := range out.Pixels {
		for j, f := range frames {
			col[j] = f.Pixels[i]
		}
		out.Pixels[i] = median.CalcMedian(col)
	}
	return out, nil
}

func checkShapes(frames []*frame.Frame) (*frame.Frame, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("groupops: no frames given")
	}
	base := frames[0]
	for i, f := range frames[1:] {
		if f.Width != base.Width || f.Height != base.Height {
			return nil, fmt.Errorf("groupops: frame %d shape %dx%d does not match %dx%d", i+1, f.Width, f.Height, base.Width, base.Height)
		}
	}
	return base, nil
}
