package conncomp

import (
	"fmt"

	"github.com/emelianov/fitspipe/internal/morph"
)

// maxLabel is the largest label value a 16-bit label grid can hold;
// exceeding it is a reportable error.
const maxLabel = 65535

// Grid is a width*height array of 16-bit labels; 0 means background,
// foreground labels form the dense range 1..Nobj after labelling.
type Grid struct {
	Width, Height int
	Labels        []uint16
}

func newGrid(w, h int) *Grid {
	return &Grid{Width: w, Height: h, Labels: make([]uint16, w*h)}
}

func (g *Grid) at(x, y int) uint16 { return g.Labels[y*g.Width+x] }
func (g *Grid) set(x, y int, v uint16) { g.Labels[y*g.Width+x] = v }

func bit(p *morph.Packed, x, y int) bool {
	octet := p.Bits[y*p.Stride+x/8]
	return (octet>>uint(7-x%8))&1 != 0
}

// Label4 labels the 4-connected foreground components of a bit-packed
// image: a first scanline pass with two-neighbour look-back (N, W)
// assigns provisional labels and records equivalences in a union-find;
// a second pass rewrites each pixel to its class representative and
// compacts representatives into 1..Nobj.
func Label4(p *morph.Packed) (*Grid, int, error) {
	w, h := p.Width, p.Height
	provisional := make([]int, w*h)
	uf := newUnionFind(0)

	idx := func(x, y int) int { return y*w + x }

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !bit(p, x, y) {
				continue
			}
			north, hasNorth := 0, y > 0 && provisional[idx(x, y-1)] != 0
			west, hasWest := 0, x > 0 && provisional[idx(x-1, y)] != 0
			if hasNorth {
				north = provisional[idx(x, y-1)]
			}
			if hasWest {
				west = provisional[idx(x-1, y)]
			}
			switch {
			case !hasNorth && !hasWest:
				provisional[idx(x, y)] = uf.add() + 1
			case hasNorth && !hasWest:
				provisional[idx(x, y)] = north
			case !hasNorth && hasWest:
				provisional[idx(x, y)] = west
			default:
				lo, hi := north, west
				if hi < lo {
					lo, hi = hi, lo
				}
				provisional[idx(x, y)] = lo
				uf.union(lo-1, hi-1)
			}
		}
	}

	return compact(provisional, uf, w, h)
}

// Label8 runs on an already 4-connected label grid in place: a second
// sweep additionally considers the NW and NE diagonal neighbours,
// merging their classes with the current pixel's class, then relabels.
func Label8(g *Grid) (*Grid, int, error) {
	w, h := g.Width, g.Height
	provisional := make([]int, w*h)
	for i, v := range g.Labels {
		provisional[i] = int(v)
	}
	maxLbl := 0
	for _, v := range provisional {
		if v > maxLbl {
			maxLbl = v
		}
	}
	uf := newUnionFind(maxLbl)

	idx := func(x, y int) int { return y*w + x }
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cur := provisional[idx(x, y)]
			if cur == 0 {
				continue
			}
			if x > 0 && y > 0 {
				if nw := provisional[idx(x-1, y-1)]; nw != 0 {
					uf.union(cur-1, nw-1)
				}
			}
			if x < w-1 && y > 0 {
				if ne := provisional[idx(x+1, y-1)]; ne != 0 {
					uf.union(cur-1, ne-1)
				}
			}
		}
	}

	out, n, err := compact(provisional, uf, w, h)
	if err != nil {
		return nil, 0, err
	}
	copy(g.Labels, out.Labels)
	return g, n, nil
}

// compact resolves every provisional label to its union-find
// representative and remaps representatives into the dense range
// 1..Nobj, failing if that range would overflow a 16-bit label.
func compact(provisional []int, uf *unionFind, w, h int) (*Grid, int, error) {
	reps := make(map[int]uint16)
	out := newGrid(w, h)
	next := 1
	for i, v := range provisional {
		if v == 0 {
			continue
		}
		root := uf.find(v - 1)
		lbl, ok := reps[root]
		if !ok {
			if next > maxLabel {
				return nil, 0, fmt.Errorf("conncomp: label overflow, more than %d components", maxLabel)
			}
			lbl = uint16(next)
			reps[root] = lbl
			next++
		}
		out.Labels[i] = lbl
	}
	return out, len(reps), nil
}
