package pipeline

import "strings"

// StageSpec is one parsed stage descriptor: a stage type plus its
// raw key=value parameters, before per-stage validation (spec.md §4.9).
type StageSpec struct {
	Type   string
	Params map[string]string
	Help   bool
}

// ParseStageSpec parses a single stage descriptor of the grammar
// `type=<name>[:key=value]*` (colon- or comma-separated); `help` with
// no value asks for per-stage parameter help and stops parsing. Key
// and the `type`/`scale` values are matched case-insensitively.
func ParseStageSpec(index int, raw string) (*StageSpec, error) {
	fields := strings.FieldsFunc(raw, func(r rune) bool { return r == ':' || r == ',' })
	if len(fields) == 0 {
		return nil, &UsageError{Stage: index, Msg: "empty stage descriptor"}
	}
	spec := &StageSpec{Params: make(map[string]string)}
	for _, field := range fields {
		key, value, hasValue := strings.Cut(field, "=")
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if key == "help" && !hasValue {
			spec.Help = true
			return spec, nil
		}
		if key == "type" {
			spec.Type = strings.ToLower(value)
			continue
		}
		if !hasValue {
			return nil, &UsageError{Stage: index, Msg: "key " + key + " has no value"}
		}
		if key == "scale" {
			value = strings.ToLower(value)
		}
		spec.Params[key] = value
	}
	if spec.Type == "" {
		return nil, &UsageError{Stage: index, Msg: "missing mandatory key: type"}
	}
	return spec, nil
}
