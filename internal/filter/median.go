// Package filter implements the sliding-window median and adaptive
// median filters, parallelised over independent column bands with a
// worker pool bounded to runtime.NumCPU().
package filter

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/emelianov/fitspipe/internal/frame"
	"github.com/emelianov/fitspipe/internal/median"
)

// largestAdaptiveRadius is the largest radius for which the adaptive
// median filter still escalates to the 5x5 fallback on a degenerate
// window; beyond it, the window is considered already too degenerate
// to fix and the input pixel is kept.
const largestAdaptiveRadius = 3

// epsilon guards the "is the window degenerate" comparisons against
// floating point noise.
const epsilon = 2.2204460492503131e-16

// Median applies a (2r+1)x(2r+1) sliding-window median filter to f.
// r == 0 uses the cross-3x3 fast path; r >= 1 uses a column-major
// running-median sweep. Returns a new frame; f is never modified.
func Median(f *frame.Frame, r int) (*frame.Frame, error) {
	if r < 0 {
		return nil, fmt.Errorf("filter: median radius must be >= 0, got %d", r)
	}
	if err := f.RequireMinShape("median", 2, 2); err != nil {
		return nil, err
	}
	out := f.CloneData()
	out.Headers.AddComment(fmt.Sprintf("median filter applied r=%d", r))
	if r == 0 {
		crossMedian(f, out, false)
		return out, nil
	}
	windowSweep(f, out, r, false)
	return out, nil
}

// AdaptiveMedian applies the adaptive median filter: at each pixel it
// keeps the input value when the window is
// non-degenerate and the value lies strictly between the window's
// minimum and maximum, emits the median when the window is non-degenerate
// but the value is out of range, and otherwise escalates to a sorted
// 5x5 window (r <= largestAdaptiveRadius) or keeps the input unchanged.
func AdaptiveMedian(f *frame.Frame, r int) (*frame.Frame, error) {
	if r < 0 {
		return nil, fmt.Errorf("filter: adaptive median radius must be >= 0, got %d", r)
	}
	if err := f.RequireMinShape("adpmed", 2, 2); err != nil {
		return nil, err
	}
	out := f.CloneData()
	out.Headers.AddComment(fmt.Sprintf("adaptive median filter applied r=%d", r))
	if r == 0 {
		crossMedian(f, out, true)
		return out, nil
	}
	windowSweep(f, out, r, true)
	return out, nil
}

// windowSweep runs a column-major sweep: for each interior column, a
// fresh running-median of capacity W*W is prefilled with the first
// W-1 rows of the column band, then advanced row by row. Columns are
// independent, so they are distributed across worker goroutines
// (one Mediator instance per worker, never shared).
func windowSweep(in, out *frame.Frame, r int, adaptive bool) {
	w, h := in.Width, in.Height
	side := 2*r + 1
	full := side * side

	type job struct{ x int }
	cols := make(chan job)
	var wg sync.WaitGroup
	workers := runtime.NumCPU()
	if workers > w-2*r {
		workers = w - 2*r
	}
	if workers < 1 {
		workers = 1
	}

	worker := func() {
		defer wg.Done()
		for j := range cols {
			sweepColumn(in, out, j.x, r, side, full, adaptive)
		}
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go worker()
	}
	for x := r; x < w-r; x++ {
		cols <- job{x}
	}
	close(cols)
	wg.Wait()

	_ = h
}

func sweepColumn(in, out *frame.Frame, x, r, side, full int, adaptive bool) {
	h := in.Height
	m := median.NewMediator(full)
	for yy := 0; yy < side-1; yy++ {
		for xx := x - r; xx <= x+r; xx++ {
			m.Insert(in.At(xx, yy))
		}
	}
	for y := r; y < h-r; y++ {
		newRow := y + r
		for xx := x - r; xx <= x+r; xx++ {
			m.Insert(in.At(xx, newRow))
		}
		val := in.At(x, y)
		if !adaptive {
			out.Set(x, y, m.Median())
			continue
		}
		out.Set(x, y, adaptiveDecision(in, m, x, y, val, r))
	}
}

// adaptiveDecision implements the three-way decision of spec.md §4.4.
func adaptiveDecision(in *frame.Frame, m *median.Mediator, x, y int, val float64, r int) float64 {
	med, lo, hi := m.Stat()
	s, l := lo+epsilon, hi-epsilon
	if s < med && med < l {
		if s < val && val < l {
			return val
		}
		return med
	}
	if r > largestAdaptiveRadius {
		return val
	}
	return adp5x5(in, x, y)
}
