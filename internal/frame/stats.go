package frame

import (
	"math"

	"github.com/emelianov/fitspipe/internal/median"
)

// Stats holds the scalar summary of a frame's pixel values.
type Stats struct {
	Min, Max, Mean, Std, Median float64
}

// ComputeStats returns {min, max, mean, std, median} for the frame.
// Mean and variance are accumulated in a single pass with running sums
// of x and x^2 (variance = E[x^2] - E[x]^2). Undefined (returns the
// zero Stats) if the frame has no pixels.
func ComputeStats(f *Frame) Stats {
	n := len(f.Pixels)
	if n == 0 {
		return Stats{}
	}
	min, max := f.Pixels[0], f.Pixels[0]
	var sum, sumSq float64
	for _, v := range f.Pixels {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
		sumSq += v * v
	}
	mean := sum / float64(n)
	variance := sumSq/float64(n) - mean*mean
	if variance < 0 {
		variance = 0 // guards against catastrophic cancellation
	}
	return Stats{
		Min:    min,
		Max:    max,
		Mean:   mean,
		Std:    math.Sqrt(variance),
		Median: median.CalcMedian(f.Pixels),
	}
}
