package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/felixgeelhaar/bundlescope/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	ctx := context.Background()

	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	logger.Warn(ctx, "warn message")
	logger.Error(ctx, "error message")

	assert.Same(t, logger, logger.With(ports.F("key", "value")))
	assert.Equal(t, ports.LevelInfo, logger.Level())
	logger.SetLevel(ports.LevelDebug)
	assert.Equal(t, ports.LevelDebug, logger.Level())
}

func TestConsoleLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(
		WithOutput(&buf),
		WithClock(func() time.Time { return fixedClock().In(time.UTC) }),
	)

	logger.Info(context.Background(), "schema registry loaded",
		ports.F("schemas", 3),
		ports.F("source", "my schemas.yaml"),
	)

	line := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasPrefix(line, "05:06:07 [INFO] schema registry loaded"), line)
	assert.Contains(t, line, "schemas=3")
	assert.Contains(t, line, `source="my schemas.yaml"`)
}

func TestConsoleLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(
		WithOutput(&buf),
		WithJSONFormat(true),
		WithClock(fixedClock),
	)

	logger.Warn(context.Background(), "field failed", ports.F("field", "uuid"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "field failed", entry["msg"])
	assert.Equal(t, "uuid", entry["field"])
	assert.Equal(t, "2026-03-04T05:06:07Z", entry["time"])
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(
		WithOutput(&buf),
		WithLevel(ports.LevelWarn),
		WithTimestamp(false),
	)
	ctx := context.Background()

	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	assert.Zero(t, buf.Len())

	logger.Warn(ctx, "warn message")
	logger.Error(ctx, "error message")
	assert.Equal(t, "[WARN] warn message\n[ERROR] error message\n", buf.String())

	logger.SetLevel(ports.LevelDebug)
	assert.Equal(t, ports.LevelDebug, logger.Level())
}

func TestConsoleLogger_With(t *testing.T) {
	var buf bytes.Buffer
	base := NewConsoleLogger(
		WithOutput(&buf),
		WithTimestamp(false),
		WithLevelLabel(false),
	)

	child := base.With(ports.F("component", "schema"))
	child.Info(context.Background(), "resolved", ports.F("rows", 6))
	base.Info(context.Background(), "plain")

	assert.Equal(t, "resolved component=schema rows=6\nplain\n", buf.String())
}

func TestConsoleLogger_ConcurrentChildren(t *testing.T) {
	var buf bytes.Buffer
	base := NewConsoleLogger(WithOutput(&buf), WithTimestamp(false))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			base.With(ports.F("n", i)).Info(context.Background(), "tick")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, strings.Count(buf.String(), "[INFO] tick"))
}
