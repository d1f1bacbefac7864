package schema

import (
	"math"
	"strings"
)

// Post-processor names.
const (
	ProcessorDuration = "duration"
	ProcessorSize     = "size"
	ProcessorDate     = "date"
)

type processorKind int

const (
	kindPassthrough processorKind = iota
	kindDuration
	kindSize
	kindDate
	kindSlice
)

// PostProcessor is a compiled post-processor. The zero value passes values
// through after string coercion.
type PostProcessor struct {
	spec  string
	kind  processorKind
	slice Slice
}

// ParsePostProcessor compiles a post-processor spec: "", "duration", "size",
// "date" or a "[start:end]" slice. Anything else is *UnknownPostProcessorError.
func ParsePostProcessor(spec string) (PostProcessor, error) {
	s := strings.TrimSpace(spec)
	switch s {
	case "":
		return PostProcessor{}, nil
	case ProcessorDuration:
		return PostProcessor{spec: s, kind: kindDuration}, nil
	case ProcessorSize:
		return PostProcessor{spec: s, kind: kindSize}, nil
	case ProcessorDate:
		return PostProcessor{spec: s, kind: kindDate}, nil
	}

	if strings.HasPrefix(s, "[") {
		sl, err := ParseSlice(s)
		if err != nil {
			return PostProcessor{}, &UnknownPostProcessorError{Name: s}
		}
		return PostProcessor{spec: s, kind: kindSlice, slice: sl}, nil
	}

	return PostProcessor{}, &UnknownPostProcessorError{Name: s}
}

// String returns the spec the processor was compiled from.
func (p PostProcessor) String() string {
	return p.spec
}

// IsPassthrough reports whether the processor leaves values unchanged.
func (p PostProcessor) IsPassthrough() bool {
	return p.kind == kindPassthrough
}

// Apply formats v for display.
func (p PostProcessor) Apply(v any, f Formatter) (string, error) {
	switch p.kind {
	case kindDuration:
		secs, ok := toFloat(v)
		if !ok || math.IsNaN(secs) {
			return "", &ProcessError{Processor: p.spec, Value: v, Reason: "not a number of seconds"}
		}
		if secs < 0 {
			return "", &ProcessError{Processor: p.spec, Value: v, Reason: "negative duration"}
		}
		if math.IsInf(secs, 0) {
			return "", &ProcessError{Processor: p.spec, Value: v, Reason: "infinite duration"}
		}
		return FormatDuration(secs), nil

	case kindSize:
		n, ok := toFloat(v)
		if !ok || math.IsNaN(n) {
			return "", &ProcessError{Processor: p.spec, Value: v, Reason: "not a byte count"}
		}
		if n < 0 {
			return "", &ProcessError{Processor: p.spec, Value: v, Reason: "negative size"}
		}
		if math.IsInf(n, 0) {
			return "", &ProcessError{Processor: p.spec, Value: v, Reason: "infinite size"}
		}
		return formatByteCount(n), nil

	case kindDate:
		t, err := ParseTimestamp(v)
		if err != nil {
			return "", &ProcessError{Processor: p.spec, Value: v, Reason: err.Error()}
		}
		return f.FormatDate(t), nil

	case kindSlice:
		out, err := p.slice.Apply(v)
		if err != nil {
			return "", err
		}
		return Stringify(out), nil

	default:
		return Stringify(v), nil
	}
}
