package filter

import (
	"github.com/emelianov/fitspipe/internal/frame"
	"github.com/emelianov/fitspipe/internal/median"
)

// adp5x5 finds the median of the 5x5 window centred on (x, y),
// escalating a degenerate adaptive-median window to a wider,
// fully-sorted neighbourhood. Out-of-frame neighbours are filled per
// a clamp-to-edge policy: at a corner the centre pixel is duplicated
// nine times and a 4x4 interior block is taken; at an edge the centre
// is duplicated five times and a 4x5 or 5x4 block is taken.
func adp5x5(f *frame.Frame, x, y int) float64 {
	w, h := f.Width, f.Height
	var buf [25]float64
	n := 0
	put := func(v float64) { buf[n] = v; n++ }
	putN := func(v float64, count int) {
		for i := 0; i < count; i++ {
			put(v)
		}
	}
	block := func(x0, y0, bw, bh int) {
		for yy := y0; yy < y0+bh; yy++ {
			for xx := x0; xx < x0+bw; xx++ {
				put(f.At(clampCoord(xx, w), clampCoord(yy, h)))
			}
		}
	}

	clampStart := func(start, blockLen, dimLen int) int {
		if start < 0 {
			return 0
		}
		if start+blockLen > dimLen {
			return dimLen - blockLen
		}
		return start
	}

	left := x < 1
	right := x > w-2
	top := y < 1
	bottom := y > h-2

	switch {
	case top && left:
		putN(f.At(x, y), 9)
		block(clampStart(x-1, 4, w), clampStart(y-1, 4, h), 4, 4)
	case top && right:
		putN(f.At(x, y), 9)
		block(clampStart(x-2, 4, w), clampStart(y-1, 4, h), 4, 4)
	case bottom && left:
		putN(f.At(x, y), 9)
		block(clampStart(x-1, 4, w), clampStart(y-2, 4, h), 4, 4)
	case bottom && right:
		putN(f.At(x, y), 9)
		block(clampStart(x-2, 4, w), clampStart(y-2, 4, h), 4, 4)
	case left || right:
		putN(f.At(x, y), 5)
		block(clampStart(x-1, 4, w), clampStart(y-2, 5, h), 4, 5)
	case top || bottom:
		putN(f.At(x, y), 5)
		block(clampStart(x-2, 5, w), clampStart(y-1, 4, h), 5, 4)
	default:
		block(x-2, y-2, 5, 5)
	}
	return median.OptMed25(buf[:n])
}
