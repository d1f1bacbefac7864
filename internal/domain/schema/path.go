package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// Slice is a [start:end] range with Python semantics: end is exclusive,
// negative bounds count from the end and out-of-range bounds clamp.
type Slice struct {
	Start    int
	End      int
	HasStart bool
	HasEnd   bool
}

// ParseSlice parses "[start:end]"; either bound may be omitted.
func ParseSlice(s string) (Slice, error) {
	if len(s) < 3 || s[0] != '[' || s[len(s)-1] != ']' {
		return Slice{}, fmt.Errorf("slice %q must look like [start:end]", s)
	}
	parts := strings.Split(s[1:len(s)-1], ":")
	if len(parts) != 2 {
		return Slice{}, fmt.Errorf("slice %q must have exactly one ':'", s)
	}

	var sl Slice
	if p := strings.TrimSpace(parts[0]); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Slice{}, fmt.Errorf("slice %q: bad start: %w", s, err)
		}
		sl.Start, sl.HasStart = n, true
	}
	if p := strings.TrimSpace(parts[1]); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Slice{}, fmt.Errorf("slice %q: bad end: %w", s, err)
		}
		sl.End, sl.HasEnd = n, true
	}
	return sl, nil
}

// String returns the slice in [start:end] form.
func (s Slice) String() string {
	var b strings.Builder
	b.WriteByte('[')
	if s.HasStart {
		b.WriteString(strconv.Itoa(s.Start))
	}
	b.WriteByte(':')
	if s.HasEnd {
		b.WriteString(strconv.Itoa(s.End))
	}
	b.WriteByte(']')
	return b.String()
}

// Bounds returns clamped [lo, hi) indices for a sequence of length n.
func (s Slice) Bounds(n int) (int, int) {
	lo, hi := 0, n
	if s.HasStart {
		lo = clampIndex(s.Start, n)
	}
	if s.HasEnd {
		hi = clampIndex(s.End, n)
	}
	if lo > hi {
		lo = hi
	}
	return lo, hi
}

func clampIndex(i, n int) int {
	if i < 0 {
		i += n
	}
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

// Apply slices strings (by rune) and sequences. Other values are an error.
func (s Slice) Apply(v any) (any, error) {
	switch val := v.(type) {
	case string:
		runes := []rune(val)
		lo, hi := s.Bounds(len(runes))
		return string(runes[lo:hi]), nil
	case []any:
		lo, hi := s.Bounds(len(val))
		return val[lo:hi], nil
	case []string:
		lo, hi := s.Bounds(len(val))
		return val[lo:hi], nil
	default:
		return nil, &NotSliceableError{Value: v}
	}
}

// Path is a parsed generalized path: dot-separated keys and an optional slice.
type Path struct {
	raw   string
	keys  []string
	slice *Slice
}

// ParsePath parses expressions such as "uuid", "metadata.run_time" or
// "summary[0:1024]". Integer keys index into sequences.
func ParsePath(expr string) (Path, error) {
	raw := strings.TrimSpace(expr)
	if raw == "" {
		return Path{}, fmt.Errorf("path is empty")
	}

	keyPart := raw
	var slice *Slice
	if strings.HasSuffix(raw, "]") {
		i := strings.LastIndexByte(raw, '[')
		if i < 0 {
			return Path{}, fmt.Errorf("path %q has unbalanced ']'", raw)
		}
		sl, err := ParseSlice(raw[i:])
		if err != nil {
			return Path{}, err
		}
		slice = &sl
		keyPart = raw[:i]
	}

	keys := strings.Split(keyPart, ".")
	for _, k := range keys {
		if k == "" {
			return Path{}, fmt.Errorf("path %q has an empty key", raw)
		}
		if strings.ContainsAny(k, "[]") {
			return Path{}, fmt.Errorf("path %q: only a trailing slice is allowed", raw)
		}
	}

	return Path{raw: raw, keys: keys, slice: slice}, nil
}

// String returns the path as written.
func (p Path) String() string {
	return p.raw
}

// Keys returns the key segments.
func (p Path) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Slice returns the trailing slice, if any.
func (p Path) Slice() (Slice, bool) {
	if p.slice == nil {
		return Slice{}, false
	}
	return *p.slice, true
}

// Lookup resolves the path against metadata. A missing key or a null value
// reports absent with no error; a structural mismatch such as indexing into
// a scalar is an error.
func (p Path) Lookup(metadata any) (value any, absent bool, err error) {
	cur := metadata
	for i, key := range p.keys {
		if cur == nil {
			return nil, true, nil
		}

		next, found, err := step(cur, key)
		if err != nil {
			return nil, false, &NotIndexableError{
				Path:  strings.Join(p.keys[:i], "."),
				Key:   key,
				Value: cur,
				cause: err,
			}
		}
		if !found {
			return nil, true, nil
		}
		cur = next
	}

	if cur == nil {
		return nil, true, nil
	}

	if p.slice != nil {
		sliced, err := p.slice.Apply(cur)
		if err != nil {
			return nil, false, err
		}
		cur = sliced
	}
	return cur, false, nil
}

func step(cur any, key string) (any, bool, error) {
	switch node := cur.(type) {
	case map[string]any:
		v, ok := node[key]
		return v, ok, nil
	case map[string]string:
		v, ok := node[key]
		return v, ok, nil
	case []any:
		idx, err := strconv.Atoi(key)
		if err != nil {
			return nil, false, fmt.Errorf("sequence index %q is not an integer", key)
		}
		if idx < 0 {
			idx += len(node)
		}
		if idx < 0 || idx >= len(node) {
			return nil, false, nil
		}
		return node[idx], true, nil
	default:
		return nil, false, fmt.Errorf("cannot index %T", cur)
	}
}
