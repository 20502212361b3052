// Package convfilter implements the standard textbook convolution
// kernels realised through an external 2-D real FFT routine: Gaussian,
// Laplacian-of-Gaussian, Sobel, Prewitt, Scharr and a simple gradient.
// The pipeline engine (internal/pipeline) validates and forwards their
// parameters; this package owns the kernel math and the FFT convolution
// itself, using gonum.org/v1/gonum/dsp/fourier for the transform.
package convfilter

import "math"

// Kernel is a dense w*h convolution kernel, row-major, centred on
// (w/2, h/2).
type Kernel struct {
	W, H int
	Vals []float64
}

func newKernel(w, h int) *Kernel {
	return &Kernel{W: w, H: h, Vals: make([]float64, w*h)}
}

func (k *Kernel) at(x, y int) float64   { return k.Vals[y*k.W+x] }
func (k *Kernel) set(x, y int, v float64) { k.Vals[y*k.W+x] = v }

// Gaussian builds a w*h Gaussian kernel with standard deviations sx,
// sy, normalised to unit sum.
func Gaussian(w, h int, sx, sy float64) *Kernel {
	k := newKernel(w, h)
	cx, cy := float64(w/2), float64(h/2)
	var sum float64
	for y := 0; y < h; y++ {
		dy := float64(y) - cy
		for x := 0; x < w; x++ {
			dx := float64(x) - cx
			v := math.Exp(-(dx*dx)/(2*sx*sx) - (dy*dy)/(2*sy*sy))
			k.set(x, y, v)
			sum += v
		}
	}
	normalize(k, sum)
	return k
}

// LaplacianOfGaussian builds a w*h Laplacian-of-Gaussian kernel with
// standard deviations sx, sy, zero-mean (no DC normalisation, since
// the LoG response to a flat field must be zero).
func LaplacianOfGaussian(w, h int, sx, sy float64) *Kernel {
	k := newKernel(w, h)
	cx, cy := float64(w/2), float64(h/2)
	var sum, mean float64
	n := float64(w * h)
	for y := 0; y < h; y++ {
		dy := float64(y) - cy
		for x := 0; x < w; x++ {
			dx := float64(x) - cx
			gx, gy := dx*dx/(sx*sx*sx*sx), dy*dy/(sy*sy*sy*sy)
			g := math.Exp(-(dx*dx)/(2*sx*sx) - (dy*dy)/(2*sy*sy))
			v := (gx + gy - 1/(sx*sx) - 1/(sy*sy)) * g
			k.set(x, y, v)
			sum += v
		}
	}
	mean = sum / n
	for i := range k.Vals {
		k.Vals[i] -= mean
	}
	return k
}

func normalize(k *Kernel, sum float64) {
	if sum == 0 {
		return
	}
	for i := range k.Vals {
		k.Vals[i] /= sum
	}
}

// Fixed 3x3 kernels for the classic first-derivative edge operators;
// these have no configurable w, h, sx, sy and ignore any such
// parameters the pipeline layer might otherwise accept for them.

func SobelH() *Kernel { return fixed3x3([9]float64{-1, 0, 1, -2, 0, 2, -1, 0, 1}) }
func SobelV() *Kernel { return fixed3x3([9]float64{-1, -2, -1, 0, 0, 0, 1, 2, 1}) }

func PrewittH() *Kernel { return fixed3x3([9]float64{-1, 0, 1, -1, 0, 1, -1, 0, 1}) }
func PrewittV() *Kernel { return fixed3x3([9]float64{-1, -1, -1, 0, 0, 0, 1, 1, 1}) }

func ScharrH() *Kernel { return fixed3x3([9]float64{-3, 0, 3, -10, 0, 10, -3, 0, 3}) }
func ScharrV() *Kernel { return fixed3x3([9]float64{-3, -10, -3, 0, 0, 0, 3, 10, 3}) }

// SimpleGradient is a cross-shaped 3x3 stencil: 4 at the centre and -1
// at each of the four edge neighbours (the negated discrete Laplacian).
// It is linear, so it does not yield a gradient magnitude such as
// |dx| + |dy|.
func SimpleGradient() *Kernel {
	return fixed3x3([9]float64{0, -1, 0, -1, 4, -1, 0, -1, 0})
}

func fixed3x3(vals [9]float64) *Kernel {
	return &Kernel{W: 3, H: 3, Vals: vals[:]}
}
