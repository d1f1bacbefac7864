package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// DefaultDateLayout matches the backend CLI's timestamp rendering.
const DefaultDateLayout = "2006-01-02 15:04:05"

// Formatter holds the locale-dependent settings of the post-processors.
type Formatter struct {
	Location   *time.Location
	DateLayout string
}

// DefaultFormatter renders dates in local time.
func DefaultFormatter() Formatter {
	return Formatter{Location: time.Local, DateLayout: DefaultDateLayout}
}

func (f Formatter) location() *time.Location {
	if f.Location == nil {
		return time.Local
	}
	return f.Location
}

func (f Formatter) layout() string {
	if f.DateLayout == "" {
		return DefaultDateLayout
	}
	return f.DateLayout
}

// Stringify coerces a resolved value to its display form.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		return val.String()
	case float64:
		return formatFloat(val)
	case float32:
		return formatFloat(float64(val))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case time.Time:
		return val.Format(time.RFC3339)
	case []string:
		return strings.Join(val, " ")
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = Stringify(item)
		}
		return strings.Join(parts, " ")
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(data)
	}
}

func formatFloat(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// toFloat extracts a number from numeric values and numeric strings.
func toFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// FormatDuration renders elapsed seconds the way the worksheet UI does:
// "12.5s", "3m20s", "2h5m", "4d3h", "1y12d".
func FormatDuration(seconds float64) string {
	m := math.Trunc(seconds / 60)
	if m == 0 {
		return fmt.Sprintf("%.1fs", seconds)
	}
	s := seconds - m*60
	h := math.Trunc(m / 60)
	if h == 0 {
		return fmt.Sprintf("%dm%ds", int64(m), int64(s))
	}
	m -= h * 60
	d := math.Trunc(h / 24)
	if d == 0 {
		return fmt.Sprintf("%dh%dm", int64(h), int64(m))
	}
	h -= d * 24
	y := math.Trunc(d / 365)
	if y == 0 {
		return fmt.Sprintf("%dd%dh", int64(d), int64(h))
	}
	d -= y * 365
	return fmt.Sprintf("%dy%dd", int64(y), int64(d))
}

// FormatSize renders a byte count with binary units, e.g. "1.5 MiB".
func FormatSize(bytes uint64) string {
	return humanize.IBytes(bytes)
}

// maxUint64Float is 2^64, the first float64 past the uint64 range.
const maxUint64Float = float64(math.MaxUint64)

// formatByteCount renders a finite, non-negative byte count. Counts past
// the uint64 range go through math/big.
func formatByteCount(n float64) string {
	if n < maxUint64Float {
		return FormatSize(uint64(n))
	}
	bi, _ := big.NewFloat(n).Int(nil)
	return humanize.BigIBytes(bi)
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp accepts epoch seconds (numeric or numeric string) and ISO 8601 strings.
func ParseTimestamp(v any) (time.Time, error) {
	if t, ok := v.(time.Time); ok {
		return t, nil
	}
	if f, ok := toFloat(v); ok {
		sec, frac := math.Modf(f)
		return time.Unix(int64(sec), int64(frac*1e9)), nil
	}
	s, ok := v.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("unsupported timestamp type %T", v)
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// FormatDate renders t in the formatter's location and layout.
func (f Formatter) FormatDate(t time.Time) string {
	return t.In(f.location()).Format(f.layout())
}
