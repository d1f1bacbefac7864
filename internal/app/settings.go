package app

import (
	"fmt"
	"strings"
	"time"
	// Render timezones must resolve on hosts without a zoneinfo database.
	_ "time/tzdata"

	"gopkg.in/ini.v1"

	"github.com/felixgeelhaar/bundlescope/internal/domain/schema"
	"github.com/felixgeelhaar/bundlescope/internal/ports"
)

// Log output formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Settings holds the values read from a bundlescope settings file.
//
//	[log]
//	level = debug
//	format = json
//
//	[render]
//	schema = default
//	timezone = Europe/Amsterdam
//	date_layout = 2006-01-02 15:04:05
//
//	[server]
//	version = 1.7.2
type Settings struct {
	LogLevel      ports.Level
	LogFormat     string
	Schema        string
	Timezone      string
	DateLayout    string
	ServerVersion string
}

// DefaultSettings returns the settings used when no file is given.
// Dates render in UTC like the backend CLI.
func DefaultSettings() Settings {
	return Settings{
		LogLevel:   ports.LevelInfo,
		LogFormat:  LogFormatText,
		Schema:     schema.DefaultSchemaName,
		Timezone:   "UTC",
		DateLayout: schema.DefaultDateLayout,
	}
}

// ParseSettings parses INI settings on top of DefaultSettings.
func ParseSettings(data []byte) (Settings, error) {
	s := DefaultSettings()

	cfg, err := ini.Load(data)
	if err != nil {
		return s, fmt.Errorf("parse settings: %w", err)
	}

	logSection := cfg.Section("log")
	if logSection.HasKey("level") {
		level, err := ports.ParseLevel(logSection.Key("level").String())
		if err != nil {
			return s, fmt.Errorf("settings [log] level: %w", err)
		}
		s.LogLevel = level
	}
	s.LogFormat = strings.ToLower(logSection.Key("format").MustString(s.LogFormat))

	render := cfg.Section("render")
	s.Schema = render.Key("schema").MustString(s.Schema)
	s.Timezone = render.Key("timezone").MustString(s.Timezone)
	s.DateLayout = render.Key("date_layout").MustString(s.DateLayout)

	s.ServerVersion = cfg.Section("server").Key("version").String()

	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// LoadSettings reads and parses the settings file at path.
func LoadSettings(fs ports.FileSystem, path string) (Settings, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return DefaultSettings(), fmt.Errorf("read settings: %w", err)
	}
	return ParseSettings(data)
}

// Validate checks the values that have a closed set of choices.
func (s Settings) Validate() error {
	switch s.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("settings [log] format: unknown format %q (want text or json)", s.LogFormat)
	}
	if _, err := s.Location(); err != nil {
		return err
	}
	return nil
}

// Location returns the configured render timezone.
func (s Settings) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("settings [render] timezone: %w", err)
	}
	return loc, nil
}

// Formatter returns the post-processor formatter for these settings.
func (s Settings) Formatter() (schema.Formatter, error) {
	loc, err := s.Location()
	if err != nil {
		return schema.Formatter{}, err
	}
	return schema.Formatter{Location: loc, DateLayout: s.DateLayout}, nil
}
