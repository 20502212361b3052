package pipeline

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/emelianov/fitspipe/internal/convfilter"
	"github.com/emelianov/fitspipe/internal/filter"
	"github.com/emelianov/fitspipe/internal/frame"
	"github.com/emelianov/fitspipe/internal/intensity"
)

// stageFunc is the signature every catalogue entry implements: take
// the working frame and validated raw parameters, return a new frame.
type stageFunc func(in *frame.Frame, params map[string]string) (*frame.Frame, error)

// catalogue is the dispatch table named in spec.md §4.9's catalogue
// list: {median, adpmed, lapgauss, gauss, sobelh, sobelv, simplegrad,
// prewitth, prewittv, scharrh, scharrv, step}.
var catalogue = map[string]stageFunc{
	"median":     medianStage,
	"adpmed":     adpmedStage,
	"gauss":      convStage(convfilter.Gaussian),
	"lapgauss":   convStage(convfilter.LaplacianOfGaussian),
	"sobelh":     fixedConvStage(convfilter.SobelH),
	"sobelv":     fixedConvStage(convfilter.SobelV),
	"prewitth":   fixedConvStage(convfilter.PrewittH),
	"prewittv":   fixedConvStage(convfilter.PrewittV),
	"scharrh":    fixedConvStage(convfilter.ScharrH),
	"scharrv":    fixedConvStage(convfilter.ScharrV),
	"simplegrad": fixedConvStage(convfilter.SimpleGradient),
	"step":       stepStage,
}

func parseInt(params map[string]string, key string) (int, bool, error) {
	raw, ok := params[key]
	if !ok {
		return 0, false, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, true, fmt.Errorf("parameter %q is not an integer: %q", key, raw)
	}
	return v, true, nil
}

func medianStage(in *frame.Frame, params map[string]string) (*frame.Frame, error) {
	r, _, err := parseInt(params, "r")
	if err != nil {
		return nil, err
	}
	return filter.Median(in, r)
}

func adpmedStage(in *frame.Frame, params map[string]string) (*frame.Frame, error) {
	r, _, err := parseInt(params, "r")
	if err != nil {
		return nil, err
	}
	return filter.AdaptiveMedian(in, r)
}

// convStage adapts a configurable (w, h, sx, sy) kernel generator
// (Gaussian, Laplacian-of-Gaussian) into a stage function, applying
// the auto-raise-with-warning rule of spec.md §4.9 for undersized w/h.
func convStage(build func(w, h int, sx, sy float64) *convfilter.Kernel) stageFunc {
	return func(in *frame.Frame, params map[string]string) (*frame.Frame, error) {
		w, _, err := parseInt(params, "w")
		if err != nil {
			return nil, err
		}
		h, _, err := parseInt(params, "h")
		if err != nil {
			return nil, err
		}
		if w < 5 {
			slog.Warn("kernel width too small, raising to minimum", "w", w, "min", 5)
			w = 5
		}
		if h < 5 {
			slog.Warn("kernel height too small, raising to minimum", "h", h, "min", 5)
			h = 5
		}
		sx, sxSet, err := parseFloat(params, "sx")
		if err != nil {
			return nil, err
		}
		sy, sySet, err := parseFloat(params, "sy")
		if err != nil {
			return nil, err
		}
		if !sxSet {
			sx = 1
		}
		if !sySet {
			sy = 1
		}
		if sx < 1 {
			return nil, fmt.Errorf("parameter sx must be >= 1, got %g", sx)
		}
		if sy < 1 {
			return nil, fmt.Errorf("parameter sy must be >= 1, got %g", sy)
		}
		return convfilter.Convolve(in, build(w, h, sx, sy))
	}
}

// fixedConvStage adapts a parameterless fixed kernel (Sobel, Prewitt,
// Scharr, the simple gradient) into a stage function.
func fixedConvStage(build func() *convfilter.Kernel) stageFunc {
	return func(in *frame.Frame, _ map[string]string) (*frame.Frame, error) {
		return convfilter.Convolve(in, build())
	}
}

func stepStage(in *frame.Frame, params map[string]string) (*frame.Frame, error) {
	nsteps, _, err := parseInt(params, "nsteps")
	if err != nil {
		return nil, err
	}
	scale := params["scale"]
	out, _, err := intensity.Posterize(in, nsteps, intensity.ScaleLaw(scale))
	if err != nil {
		return nil, err
	}
	return out, nil
}

func parseFloat(params map[string]string, key string) (float64, bool, error) {
	raw, ok := params[key]
	if !ok {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, true, fmt.Errorf("parameter %q is not a number: %q", key, raw)
	}
	return v, true, nil
}
