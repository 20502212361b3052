package pipeline

import (
	"fmt"
	"sort"
)

// allowedKeys lists the parameter keys each catalogue stage accepts;
// any other key in a descriptor is rejected (spec.md §4.9: "Keys
// unknown to the named stage are rejected with an error").
var allowedKeys = map[string]map[string]bool{
	"median":   {"r": true},
	"adpmed":   {"r": true},
	"gauss":    {"w": true, "h": true, "sx": true, "sy": true},
	"lapgauss": {"w": true, "h": true, "sx": true, "sy": true},
	"step":     {"nsteps": true, "scale": true},
	// sobelh, sobelv, prewitth, prewittv, scharrh, scharrv, simplegrad
	// take no parameters.
}

var validScaleLaws = map[string]bool{
	"uniform": true, "log": true, "exp": true, "sqrt": true, "pow": true,
}

// Validate checks a parsed StageSpec against its catalogue entry's
// parameter rules, without running the stage. index is the stage's
// position, used only for error messages.
func Validate(index int, spec *StageSpec) error {
	if _, ok := catalogue[spec.Type]; !ok {
		return &UsageError{Stage: index, Msg: "unknown stage type: " + spec.Type}
	}
	allowed := allowedKeys[spec.Type]
	for key := range spec.Params {
		if !allowed[key] {
			return &UsageError{Stage: index, Msg: "unknown parameter " + key + " for stage " + spec.Type}
		}
	}

	switch spec.Type {
	case "median", "adpmed":
		r, ok, err := parseInt(spec.Params, "r")
		if err != nil {
			return &RangeError{Stage: index, Type: spec.Type, Key: "r", Msg: err.Error()}
		}
		if !ok {
			return &UsageError{Stage: index, Msg: "missing mandatory parameter r for stage " + spec.Type}
		}
		if r < 0 {
			return &RangeError{Stage: index, Type: spec.Type, Key: "r", Msg: fmt.Sprintf("must be >= 0, got %d", r)}
		}
	case "gauss", "lapgauss":
		if sx, ok, err := parseFloat(spec.Params, "sx"); err == nil && ok && sx < 1 {
			return &RangeError{Stage: index, Type: spec.Type, Key: "sx", Msg: fmt.Sprintf("must be >= 1, got %g", sx)}
		} else if err != nil {
			return &RangeError{Stage: index, Type: spec.Type, Key: "sx", Msg: err.Error()}
		}
		if sy, ok, err := parseFloat(spec.Params, "sy"); err == nil && ok && sy < 1 {
			return &RangeError{Stage: index, Type: spec.Type, Key: "sy", Msg: fmt.Sprintf("must be >= 1, got %g", sy)}
		} else if err != nil {
			return &RangeError{Stage: index, Type: spec.Type, Key: "sy", Msg: err.Error()}
		}
		// w, h below 5 are auto-raised with a warning at execution time,
		// not rejected here.
	case "step":
		nsteps, ok, err := parseInt(spec.Params, "nsteps")
		if err != nil {
			return &RangeError{Stage: index, Type: spec.Type, Key: "nsteps", Msg: err.Error()}
		}
		if !ok {
			return &UsageError{Stage: index, Msg: "missing mandatory parameter nsteps for stage step"}
		}
		if nsteps < 2 || nsteps > 255 {
			return &RangeError{Stage: index, Type: spec.Type, Key: "nsteps", Msg: fmt.Sprintf("must be in [2,255], got %d", nsteps)}
		}
		scale, ok := spec.Params["scale"]
		if !ok {
			return &UsageError{Stage: index, Msg: "missing mandatory parameter scale for stage step"}
		}
		if !validScaleLaws[scale] {
			return &RangeError{Stage: index, Type: spec.Type, Key: "scale", Msg: "unknown scale law: " + scale}
		}
	}
	return nil
}

// StageTypes returns every catalogue stage name, sorted, for use by
// help/listing commands.
func StageTypes() []string {
	names := make([]string, 0, len(catalogue))
	for name := range catalogue {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Params returns the accepted parameter keys for a stage type,
// sorted. A stage with no entry in allowedKeys takes no parameters.
func Params(stageType string) []string {
	allowed := allowedKeys[stageType]
	keys := make([]string, 0, len(allowed))
	for k := range allowed {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
