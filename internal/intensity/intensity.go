// Package intensity implements the pointwise intensity operators of
// spec.md §4.8: threshold binarisation, bound clamping and
// scale-law posterisation, grounded on original_source's binarize,
// cut_bounds and StepFilter routines.
package intensity

import (
	"fmt"
	"math"

	"github.com/emelianov/fitspipe/internal/frame"
)

const epsilon = 2.2204460492503131e-16

// Binarize thresholds f at thrval = lo + |t|*(hi-lo), where lo, hi are
// the frame's min/max. t must lie in (-1, 1) and be non-zero; negative
// t inverts the result. Returns a 0/1 grid and the computed threshold
// value.
func Binarize(f *frame.Frame, t float64) (*frame.Frame, float64, error) {
	if t <= -1 || t >= 1 || t == 0 {
		return nil, 0, fmt.Errorf("intensity: binarize threshold %g out of range (-1,1)\\{0}", t)
	}
	stats := frame.ComputeStats(f)
	lo, hi := stats.Min, stats.Max
	thrval := lo + math.Abs(t)*(hi-lo)
	invert := t < 0

	out := frame.New(f.Width, f.Height, frame.Uint16)
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			set := f.At(x, y) >= thrval
			if invert {
				set = !set
			}
			if set {
				out.Set(x, y, 1)
			}
		}
	}
	out.Headers.AddComment(fmt.Sprintf("binarize applied threshold=%g t=%g", thrval, t))
	return out, thrval, nil
}

// Clamp returns a copy of f with every pixel clamped into [low, up].
// A math.Inf bound leaves that side unconstrained. Appends a COMMENT
// record to the returned frame's header recording the bounds applied.
func Clamp(f *frame.Frame, low, up float64) (*frame.Frame, error) {
	if low > up {
		return nil, fmt.Errorf("intensity: clamp: low %g exceeds up %g", low, up)
	}
	out := f.CloneData()
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			v := f.At(x, y)
			if v < low {
				v = low
			}
			if v > up {
				v = up
			}
			out.Set(x, y, v)
		}
	}
	out.Headers.AddComment(fmt.Sprintf("cut_bounds applied low=%g up=%g", low, up))
	return out, nil
}

// ScaleLaw names a posterisation step-size law.
type ScaleLaw string

const (
	ScaleUniform ScaleLaw = "uniform"
	ScaleLog     ScaleLaw = "log"
	ScaleExp     ScaleLaw = "exp"
	ScaleSqrt    ScaleLaw = "sqrt"
	ScalePow     ScaleLaw = "pow"
)

// Posterize quantises f into nsteps output levels (2..255) using the
// named scale law. Returns an 8-bit-per-pixel grid and the inverse
// scale: invScale[i] is the intensity threshold defining level i's
// lower edge, for i in 0..nsteps.
func Posterize(f *frame.Frame, nsteps int, law ScaleLaw) (*frame.Frame, []float64, error) {
	if nsteps < 2 || nsteps > 255 {
		return nil, nil, fmt.Errorf("intensity: posterize nsteps %d out of range [2,255]", nsteps)
	}
	stats := frame.ComputeStats(f)
	min, wd := stats.Min, stats.Max-stats.Min
	if math.Abs(wd) < epsilon {
		return nil, nil, fmt.Errorf("intensity: posterize: data range too small (%g)", wd)
	}
	n := float64(nsteps)

	forward, inverse, err := scaleFuncs(law, wd, n)
	if err != nil {
		return nil, nil, err
	}

	out := frame.New(f.Width, f.Height, frame.Uint8)
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			level := math.Floor(forward(f.At(x, y) - min))
			if level < 0 {
				level = 0
			}
			if level > n-1 {
				level = n - 1
			}
			out.Set(x, y, level)
		}
	}

	invScale := make([]float64, nsteps+1)
	for i := 0; i <= nsteps; i++ {
		invScale[i] = inverse(float64(i)) + min
	}
	out.Headers.AddComment(fmt.Sprintf("StepFilter applied nsteps=%d scale=%s", nsteps, law))
	return out, invScale, nil
}

// scaleFuncs returns forward (delta -> level) and inverse (level ->
// delta, i.e. threshold minus min) functions for a scale law, matching
// the step formulas of spec.md §4.8.
func scaleFuncs(law ScaleLaw, wd, n float64) (forward, inverse func(float64) float64, err error) {
	switch law {
	case ScaleUniform:
		step := wd / n
		return func(d float64) float64 { return d / step },
			func(i float64) float64 { return i * step }, nil
	case ScaleLog:
		step := wd / math.Log(n+1)
		return func(d float64) float64 { return math.Exp(d/step) - 1 },
			func(i float64) float64 { return math.Log(i+1) * step }, nil
	case ScaleExp:
		step := math.Log(wd+1) / n
		return func(d float64) float64 { return math.Log(d+1) / step },
			func(i float64) float64 { return math.Exp(i*step) - 1 }, nil
	case ScaleSqrt:
		step := wd * wd / n
		return func(d float64) float64 { return d * d / step },
			func(i float64) float64 { return math.Sqrt(i * step) }, nil
	case ScalePow:
		step := wd / (n * n)
		return func(d float64) float64 { return math.Sqrt(d / step) },
			func(i float64) float64 { return i * i * step }, nil
	default:
		return nil, nil, fmt.Errorf("intensity: unknown scale law %q", law)
	}
}
