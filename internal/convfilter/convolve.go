package convfilter

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/emelianov/fitspipe/internal/frame"
)

// Convolve applies a 2-D linear convolution of f with kernel using a
// row/column complex FFT pair from gonum.org/v1/gonum/dsp/fourier: the
// kernel is zero-padded and the source edge-padded to the
// linear-convolution size, each is transformed a row at a time and then
// a column at a time, the spectra are multiplied and the inverse
// transform pair is applied.
// The result is cropped back to f's original shape, with the kernel
// centred on each output pixel (same-size convolution), clamping
// source reads at the frame edge rather than wrapping: the clamp-to-edge
// policy is carried into the padding instead of left as circular
// wraparound.
func Convolve(f *frame.Frame, k *Kernel) (*frame.Frame, error) {
	if k.W < 1 || k.H < 1 {
		return nil, fmt.Errorf("convfilter: degenerate kernel %dx%d", k.W, k.H)
	}
	w, h := f.Width, f.Height
	pw, ph := w+k.W-1, h+k.H-1

	src := padClamped(f, pw, ph, k.W-1-k.W/2, k.H-1-k.H/2)
	ker := padKernel(k, pw, ph)

	srcSpec := fft2D(src, pw, ph)
	kerSpec := fft2D(ker, pw, ph)
	for i := range srcSpec {
		srcSpec[i] *= kerSpec[i]
	}
	out := ifft2D(srcSpec, pw, ph)

	result := f.Like(frame.Float64)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			result.Set(x, y, out[(y+k.H-1)*pw+(x+k.W-1)])
		}
	}
	return result, nil
}

func padClamped(f *frame.Frame, pw, ph, ox, oy int) []float64 {
	out := make([]float64, pw*ph)
	for y := 0; y < ph; y++ {
		sy := y - oy
		if sy < 0 {
			sy = 0
		}
		if sy >= f.Height {
			sy = f.Height - 1
		}
		for x := 0; x < pw; x++ {
			sx := x - ox
			if sx < 0 {
				sx = 0
			}
			if sx >= f.Width {
				sx = f.Width - 1
			}
			out[y*pw+x] = f.At(sx, sy)
		}
	}
	return out
}

func padKernel(k *Kernel, pw, ph int) []float64 {
	out := make([]float64, pw*ph)
	for y := 0; y < k.H; y++ {
		for x := 0; x < k.W; x++ {
			out[y*pw+x] = k.at(x, y)
		}
	}
	return out
}

// fft2D returns the forward 2-D FFT of a row-major real grid, done as
// a row pass followed by a column pass of complex FFTs.
func fft2D(grid []float64, w, h int) []complex128 {
	out := make([]complex128, w*h)
	rowFFT := fourier.NewCmplxFFT(w)
	rowBuf := make([]complex128, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			rowBuf[x] = complex(grid[y*w+x], 0)
		}
		rowFFT.Forward(rowBuf, rowBuf)
		copy(out[y*w:(y+1)*w], rowBuf)
	}
	colFFT := fourier.NewCmplxFFT(h)
	colBuf := make([]complex128, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			colBuf[y] = out[y*w+x]
		}
		colFFT.Forward(colBuf, colBuf)
		for y := 0; y < h; y++ {
			out[y*w+x] = colBuf[y]
		}
	}
	return out
}

// ifft2D inverts fft2D and returns the real part. gonum's CmplxFFT
// normalises each 1-D Inverse call by that axis's length, so the two
// passes together already yield the correctly scaled 2-D inverse.
func ifft2D(spec []complex128, w, h int) []float64 {
	colFFT := fourier.NewCmplxFFT(h)
	colBuf := make([]complex128, h)
	tmp := make([]complex128, w*h)
	copy(tmp, spec)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			colBuf[y] = tmp[y*w+x]
		}
		colFFT.Inverse(colBuf, colBuf)
		for y := 0; y < h; y++ {
			tmp[y*w+x] = colBuf[y]
		}
	}
	rowFFT := fourier.NewCmplxFFT(w)
	rowBuf := make([]complex128, w)
	out := make([]float64, w*h)
	for y := 0; y < h; y++ {
		copy(rowBuf, tmp[y*w:(y+1)*w])
		rowFFT.Inverse(rowBuf, rowBuf)
		for x := 0; x < w; x++ {
			out[y*w+x] = real(rowBuf[x])
		}
	}
	return out
}
