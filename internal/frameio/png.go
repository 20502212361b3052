// Package frameio adapts the pipeline's in-memory frame.Frame to the
// single concrete container format this module ships for standalone
// use: 16-bit grayscale PNG. The richer FITS-like container format is
// treated as an external collaborator; this package exists so
// `fitspipe process` has something runnable end to end without it.
package frameio

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/emelianov/fitspipe/internal/frame"
)

// Decode reads a grayscale PNG and returns a double-precision frame
// with pixel values scaled to [0, 65535] (the PNG's native 16-bit
// range), regardless of whether the source was 8- or 16-bit.
func Decode(r io.Reader) (*frame.Frame, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("frameio: decode: %w", err)
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	f := frame.New(w, h, frame.Float64)
	gray16 := image.NewGray16(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray16.Set(x, y, img.At(x, y))
		}
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := gray16.Gray16At(bounds.Min.X+x, bounds.Min.Y+y)
			f.Set(x, y, float64(c.Y))
		}
	}
	return f, nil
}

// Encode writes f as a 16-bit grayscale PNG, clamping pixel values
// into [0, 65535]. Declared output storage types are handled by the
// caller; this is only the final byte-level encoding step.
func Encode(w io.Writer, f *frame.Frame) error {
	img := image.NewGray16(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			v := f.At(x, y)
			if v < 0 {
				v = 0
			}
			if v > 65535 {
				v = 65535
			}
			img.SetGray16(x, y, color.Gray16{Y: uint16(v)})
		}
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("frameio: encode: %w", err)
	}
	return nil
}
