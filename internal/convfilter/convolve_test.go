package convfilter

import (
	"math"
	"testing"

	"github.com/emelianov/fitspipe/internal/frame"
)

func constantFrame(w, h int, v float64) *frame.Frame {
	f := frame.New(w, h, frame.Float64)
	for i := range f.Pixels {
		f.Pixels[i] = v
	}
	return f
}

func TestConvolveGaussianPreservesFlatField(t *testing.T) {
	f := constantFrame(16, 16, 7)
	k := Gaussian(5, 5, 1.2, 1.2)
	out, err := Convolve(f, k)
	if err != nil {
		t.Fatalf("Convolve: %v", err)
	}
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if got := out.At(x, y); math.Abs(got-7) > 1e-6 {
				t.Fatalf("At(%d,%d) = %v, want ~7 (a unit-sum kernel over a flat field)", x, y, got)
			}
		}
	}
}

func TestConvolveLoGZeroesFlatField(t *testing.T) {
	f := constantFrame(16, 16, 42)
	k := LaplacianOfGaussian(9, 9, 1.4, 1.4)
	out, err := Convolve(f, k)
	if err != nil {
		t.Fatalf("Convolve: %v", err)
	}
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if got := out.At(x, y); math.Abs(got) > 1e-5 {
				t.Fatalf("At(%d,%d) = %v, want ~0 (a zero-sum kernel over a flat field)", x, y, got)
			}
		}
	}
}

func TestConvolveRejectsDegenerateKernel(t *testing.T) {
	f := constantFrame(4, 4, 1)
	if _, err := Convolve(f, &Kernel{W: 0, H: 3, Vals: nil}); err == nil {
		t.Fatal("expected error for a zero-width kernel")
	}
}

func TestConvolveSobelDetectsVerticalEdge(t *testing.T) {
	// Left half 0, right half 100: a strong vertical edge down the middle.
	f := frame.New(8, 8, frame.Float64)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if x >= 4 {
				f.Set(x, y, 100)
			}
		}
	}
	out, err := Convolve(f, SobelH())
	if err != nil {
		t.Fatalf("Convolve: %v", err)
	}
	// SobelH responds strongly near the edge columns and weakly far from it.
	var edge float64
	for _, x := range []int{3, 4, 5} {
		if v := math.Abs(out.At(x, 4)); v > edge {
			edge = v
		}
	}
	flat := math.Abs(out.At(1, 4))
	if edge <= flat {
		t.Errorf("edge response %v should exceed flat-region response %v", edge, flat)
	}
}
