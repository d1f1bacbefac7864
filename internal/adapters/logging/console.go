package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/felixgeelhaar/bundlescope/internal/ports"
)

// ConsoleLogger writes one line per entry, as text or JSON.
type ConsoleLogger struct {
	mu           *sync.Mutex
	out          io.Writer
	level        ports.Level
	fields       []ports.Field
	jsonFormat   bool
	includeTime  bool
	includeLevel bool
	now          func() time.Time
}

// ConsoleLoggerOption configures the console logger.
type ConsoleLoggerOption func(*ConsoleLogger)

// WithOutput sets the output writer (default: os.Stderr).
func WithOutput(w io.Writer) ConsoleLoggerOption {
	return func(l *ConsoleLogger) {
		l.out = w
	}
}

// WithLevel sets the minimum log level (default: Info).
func WithLevel(level ports.Level) ConsoleLoggerOption {
	return func(l *ConsoleLogger) {
		l.level = level
	}
}

// WithJSONFormat enables JSON output format.
func WithJSONFormat(enabled bool) ConsoleLoggerOption {
	return func(l *ConsoleLogger) {
		l.jsonFormat = enabled
	}
}

// WithTimestamp includes timestamp in log entries.
func WithTimestamp(enabled bool) ConsoleLoggerOption {
	return func(l *ConsoleLogger) {
		l.includeTime = enabled
	}
}

// WithLevelLabel includes level label in log entries.
func WithLevelLabel(enabled bool) ConsoleLoggerOption {
	return func(l *ConsoleLogger) {
		l.includeLevel = enabled
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) ConsoleLoggerOption {
	return func(l *ConsoleLogger) {
		l.now = now
	}
}

// NewConsoleLogger creates a new console logger.
func NewConsoleLogger(opts ...ConsoleLoggerOption) *ConsoleLogger {
	l := &ConsoleLogger{
		mu:           &sync.Mutex{},
		out:          os.Stderr,
		level:        ports.LevelInfo,
		includeTime:  true,
		includeLevel: true,
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Debug logs a debug message.
func (l *ConsoleLogger) Debug(ctx context.Context, msg string, fields ...ports.Field) {
	l.log(ctx, ports.LevelDebug, msg, fields)
}

// Info logs an informational message.
func (l *ConsoleLogger) Info(ctx context.Context, msg string, fields ...ports.Field) {
	l.log(ctx, ports.LevelInfo, msg, fields)
}

// Warn logs a warning message.
func (l *ConsoleLogger) Warn(ctx context.Context, msg string, fields ...ports.Field) {
	l.log(ctx, ports.LevelWarn, msg, fields)
}

// Error logs an error message.
func (l *ConsoleLogger) Error(ctx context.Context, msg string, fields ...ports.Field) {
	l.log(ctx, ports.LevelError, msg, fields)
}

// With returns a logger sharing this one's output and lock, with extra fields.
func (l *ConsoleLogger) With(fields ...ports.Field) ports.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	child := *l
	child.fields = append(append([]ports.Field(nil), l.fields...), fields...)
	return &child
}

// Level returns the minimum log level.
func (l *ConsoleLogger) Level() ports.Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// SetLevel sets the minimum log level.
func (l *ConsoleLogger) SetLevel(level ports.Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *ConsoleLogger) log(_ context.Context, level ports.Level, msg string, fields []ports.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	all := make([]ports.Field, 0, len(l.fields)+len(fields))
	all = append(all, l.fields...)
	all = append(all, fields...)

	var line string
	if l.jsonFormat {
		line = l.formatJSON(level, msg, all)
	} else {
		line = l.formatText(level, msg, all)
	}
	_, _ = fmt.Fprintln(l.out, line)
}

func (l *ConsoleLogger) formatJSON(level ports.Level, msg string, fields []ports.Field) string {
	entry := make(map[string]interface{}, len(fields)+3)
	for _, f := range fields {
		entry[f.Key] = f.Value
	}
	if l.includeTime {
		entry["time"] = l.now().UTC().Format(time.RFC3339)
	}
	if l.includeLevel {
		entry["level"] = level.String()
	}
	entry["msg"] = msg

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Sprintf(`{"level":"ERROR","msg":"unencodable log entry","error":%q}`, err.Error())
	}
	return string(data)
}

func (l *ConsoleLogger) formatText(level ports.Level, msg string, fields []ports.Field) string {
	var b strings.Builder

	if l.includeTime {
		b.WriteString(l.now().Format("15:04:05"))
		b.WriteByte(' ')
	}
	if l.includeLevel {
		fmt.Fprintf(&b, "[%s] ", level.String())
	}
	b.WriteString(msg)

	for _, f := range fields {
		b.WriteByte(' ')
		b.WriteString(f.Key)
		b.WriteByte('=')
		b.WriteString(textValue(f.Value))
	}

	return b.String()
}

// textValue quotes values that would otherwise be ambiguous in key=value form.
func textValue(v interface{}) string {
	s := fmt.Sprintf("%v", v)
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}

var _ ports.Logger = (*ConsoleLogger)(nil)
