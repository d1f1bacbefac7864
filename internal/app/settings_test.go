package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/bundlescope/internal/domain/schema"
	"github.com/felixgeelhaar/bundlescope/internal/ports"
	"github.com/felixgeelhaar/bundlescope/internal/testutil/mocks"
)

func TestParseSettings(t *testing.T) {
	data := []byte(`
[log]
level = debug
format = JSON

[render]
schema = run
timezone = Europe/Amsterdam

[server]
version = 1.7.2
`)

	s, err := ParseSettings(data)
	require.NoError(t, err)
	assert.Equal(t, ports.LevelDebug, s.LogLevel)
	assert.Equal(t, LogFormatJSON, s.LogFormat)
	assert.Equal(t, "run", s.Schema)
	assert.Equal(t, "Europe/Amsterdam", s.Timezone)
	assert.Equal(t, schema.DefaultDateLayout, s.DateLayout)
	assert.Equal(t, "1.7.2", s.ServerVersion)
}

func TestParseSettings_Empty(t *testing.T) {
	s, err := ParseSettings([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestParseSettings_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"level", "[log]\nlevel = loud\n", "[log] level"},
		{"format", "[log]\nformat = xml\n", "[log] format"},
		{"timezone", "[render]\ntimezone = Mars/Olympus\n", "[render] timezone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSettings([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadSettings(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.AddFile("bundlescope.ini", "[render]\ntimezone = UTC\ndate_layout = 2006-01-02\n")

	s, err := LoadSettings(fs, "bundlescope.ini")
	require.NoError(t, err)

	f, err := s.Formatter()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, f.Location)
	assert.Equal(t, "2006-01-02", f.DateLayout)

	_, err = LoadSettings(fs, "missing.ini")
	require.Error(t, err)
}

func TestWithSettings(t *testing.T) {
	s := DefaultSettings()
	s.Schema = "run"
	s.ServerVersion = "1.7.0"

	b := New(WithFileSystem(mocks.NewFileSystem()), WithSettings(s))
	t.Cleanup(b.Close)

	assert.Equal(t, "run", b.defaultSchema)
	assert.Equal(t, "1.7.0", b.serverVersion)
	assert.Equal(t, time.UTC, b.formatter.Location)
}
