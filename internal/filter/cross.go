package filter

import (
	"github.com/emelianov/fitspipe/internal/frame"
	"github.com/emelianov/fitspipe/internal/median"
)

// crossMedian implements the cross-3x3 fast path (radius 0): the five
// samples forming a plus-sign around each interior pixel are
// median-reduced directly by OptMed5; border pixels use the
// clamp-to-edge variant.
func crossMedian(in, out *frame.Frame, adaptive bool) {
	w, h := in.Width, in.Height
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			buf := crossSamples(in, x, y)
			val := in.At(x, y)
			if adaptive {
				out.Set(x, y, crossAdaptiveValue(in, x, y, buf, val))
			} else {
				out.Set(x, y, median.OptMed5(append([]float64(nil), buf[:]...)))
			}
		}
	}
	fillCrossBorders(in, out, adaptive)
}

// crossSamples returns the plus-sign neighbourhood of an interior
// pixel: centre, west, east, north, south.
func crossSamples(in *frame.Frame, x, y int) [5]float64 {
	return [5]float64{
		in.At(x, y),
		in.At(x-1, y),
		in.At(x+1, y),
		in.At(x, y-1),
		in.At(x, y+1),
	}
}

// crossAdaptiveValue applies the three-way adaptive decision to a
// 5-sample plus-sign window, using the true min/max of the 5 samples
// as the window's order-statistic neighbours (the degenerate-window
// test). A degenerate window escalates to the sorted 5x5 fallback.
func crossAdaptiveValue(f *frame.Frame, x, y int, buf [5]float64, val float64) float64 {
	scratch := buf
	med := median.OptMed5(scratch[:])
	lo, hi := buf[0], buf[0]
	for _, v := range buf[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	s, l := lo+epsilon, hi-epsilon
	if s < med && med < l {
		if s < val && val < l {
			return val
		}
		return med
	}
	return adp5x5(f, x, y)
}

// clampCoord clamps a coordinate into [0, n-1], the edge-duplication
// rule used to synthesize out-of-frame neighbours.
func clampCoord(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// fillCrossBorders fills the one-pixel-wide frame border (corners and
// edges) for the cross-3x3 path, treating top and bottom symmetrically:
// an edge pixel duplicates the centre for its one missing neighbour; a
// corner pixel takes the centre twice plus the other three pixels of
// its 2x2 in-frame block.
func fillCrossBorders(in, out *frame.Frame, adaptive bool) {
	w, h := in.Width, in.Height
	at := func(x, y int) float64 { return in.At(clampCoord(x, w), clampCoord(y, h)) }
	assign := func(x, y int, buf [5]float64) {
		val := in.At(x, y)
		if adaptive {
			out.Set(x, y, crossAdaptiveValue(in, x, y, buf, val))
		} else {
			scratch := buf
			out.Set(x, y, median.OptMed5(scratch[:]))
		}
	}

	// corners: duplicate centre, take the available 2x2 neighbourhood
	corner := func(cx, cy, nx1, ny1, nx2, ny2, nx3, ny3 int) {
		c := at(cx, cy)
		assign(cx, cy, [5]float64{c, c, at(nx1, ny1), at(nx2, ny2), at(nx3, ny3)})
	}
	corner(0, 0, 1, 0, 0, 1, 1, 1)
	corner(w-1, 0, w-2, 0, w-1, 1, w-2, 1)
	corner(0, h-1, 1, h-1, 0, h-2, 1, h-2)
	corner(w-1, h-1, w-2, h-1, w-1, h-2, w-2, h-2)

	// top and bottom edges (excluding corners)
	for x := 1; x < w-1; x++ {
		c := at(x, 0)
		assign(x, 0, [5]float64{c, c, at(x-1, 0), at(x+1, 0), at(x, 1)})
		c = at(x, h-1)
		assign(x, h-1, [5]float64{c, c, at(x-1, h-1), at(x+1, h-1), at(x, h-2)})
	}
	// left and right edges (excluding corners)
	for y := 1; y < h-1; y++ {
		c := at(0, y)
		assign(0, y, [5]float64{c, c, at(0, y-1), at(0, y+1), at(1, y)})
		c = at(w-1, y)
		assign(w-1, y, [5]float64{c, c, at(w-1, y-1), at(w-1, y+1), at(w-2, y)})
	}
}
