package morph

import "sync"

// dilTable[b] = b | (b<<1) | (b>>1): horizontal neighbour interaction
// within one octet for dilation. eroTable[b] = b &((b<<1)|1) &
// ((b>>1)|0x80) for erosion. Both are process-wide, written once
// under a one-shot guard and never mutated afterwards: a natural fit
// for sync.Once over a lazily-built 256-entry lookup table.
var (
	dilTable [256]uint8
	eroTable [256]uint8
	initOnce sync.Once
)

func initTables() {
	initOnce.Do(func() {
		for i := 0; i < 256; i++ {
			b := uint8(i)
			dilTable[i] = b | (b << 1) | (b >> 1)
			eroTable[i] = b & ((b << 1) | 1) & ((b >> 1) | 0x80)
		}
	})
}

// rowOctet returns the octet at the given row/column, or 0 if the
// row is out of frame (top/bottom boundary fill).
func rowOctet(p *Packed, y, x int) uint8 {
	if y < 0 || y >= p.Height {
		return 0
	}
	return p.Bits[y*p.Stride+x]
}

// dilRow returns the horizontally-dilated octet at (y, x): dilTable
// applied to the row's own octet plus the cross-octet bleed from its
// left/right neighbour octets in that same row. A 3x3 dilation needs
// this computed once per row (y-1, y, y+1 alike), not just for the
// centre row, or diagonal-only neighbours would be missed.
func dilRow(p *Packed, y, x int) uint8 {
	cur := rowOctet(p, y, x)
	v := dilTable[cur]
	if y < 0 || y >= p.Height {
		return v
	}
	if x > 0 && rowOctet(p, y, x-1)&0x01 != 0 {
		v |= 0x80
	}
	if x < p.Stride-1 && rowOctet(p, y, x+1)&0x80 != 0 {
		v |= 0x01
	}
	return v
}

// Dilate computes the morphological dilation of p: a pixel is set in
// the output if it or any of its 8 neighbours (3x3 structuring
// element) is set in the input.
func Dilate(p *Packed) (*Packed, error) {
	if p.Width < 2 || p.Height < 2 {
		return nil, &sizeError{"dilation", p.Width, p.Height}
	}
	initTables()
	out := &Packed{Width: p.Width, Height: p.Height, Stride: p.Stride, Bits: make([]uint8, len(p.Bits))}
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Stride; x++ {
			v := dilRow(p, y-1, x) | dilRow(p, y, x) | dilRow(p, y+1, x)
			out.Bits[y*p.Stride+x] = v
		}
	}
	out.maskTrailingBits()
	return out, nil
}

// eroRow returns the horizontally-eroded octet at (y, x): eroTable
// applied to the row's own octet, masked by the cross-octet bleed from
// its left/right neighbours, with an out-of-frame row always
// contributing zero (erosion treats the canvas edge as background). A
// 3x3 erosion needs this per row (y-1, y, y+1 alike), matching dilRow.
func eroRow(p *Packed, y, x int) uint8 {
	if y < 0 || y >= p.Height {
		return 0
	}
	cur := p.Bits[y*p.Stride+x]
	v := eroTable[cur]
	if x == 0 || p.Bits[y*p.Stride+x-1]&0x01 == 0 {
		v &= 0x7f
	}
	if x == p.Stride-1 || p.Bits[y*p.Stride+x+1]&0x80 == 0 {
		v &= 0xfe
	}
	return v
}

// Erode computes the morphological erosion of p: a pixel stays set in
// the output only if it and all of its 8 neighbours are set in the
// input. Boundary octets additionally mask out the bit that would wrap
// across the image edge.
func Erode(p *Packed) (*Packed, error) {
	if p.Width < 2 || p.Height < 2 {
		return nil, &sizeError{"erosion", p.Width, p.Height}
	}
	initTables()
	out := &Packed{Width: p.Width, Height: p.Height, Stride: p.Stride, Bits: make([]uint8, len(p.Bits))}
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Stride; x++ {
			v := eroRow(p, y-1, x) & eroRow(p, y, x) & eroRow(p, y+1, x)
			out.Bits[y*p.Stride+x] = v
		}
	}
	out.maskTrailingBits()
	return out, nil
}

// FourConnectedFilter retains only pixels that have at least one
// 4-neighbour set (north, south, east or west), using the same
// row-tiling pattern as Erode but its own pixelwise predicate.
func FourConnectedFilter(p *Packed) (*Packed, error) {
	if p.Width < 2 || p.Height < 2 {
		return nil, &sizeError{"4-connect", p.Width, p.Height}
	}
	out := &Packed{Width: p.Width, Height: p.Height, Stride: p.Stride, Bits: make([]uint8, len(p.Bits))}
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Stride; x++ {
			cur := p.Bits[y*p.Stride+x]
			var v uint8
			vert := rowOctet(p, y-1, x) | rowOctet(p, y+1, x)
			horiz := (cur << 1) | (cur >> 1)
			if x > 0 && p.Bits[y*p.Stride+x-1]&0x01 != 0 {
				horiz |= 0x80
			}
			if x < p.Stride-1 && p.Bits[y*p.Stride+x+1]&0x80 != 0 {
				horiz |= 0x01
			}
			v = cur & (vert | horiz)
			out.Bits[y*p.Stride+x] = v
		}
	}
	out.maskTrailingBits()
	return out, nil
}

type sizeError struct {
	op            string
	width, height int
}

func (e *sizeError) Error() string {
	return e.op + ": image size too small"
}
