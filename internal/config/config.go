package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults for a run against the LA incident export.
const (
	DefaultInput       = "LA_fires.xlsx"
	DefaultOutput      = "interactive_fire_map_with_years.html"
	DefaultSQLiteTable = "incidents"
	DefaultHorizon     = "2025-01-10"
	DefaultZoom        = 6
	DefaultTitle       = "Wildfire incidents by year"
	DefaultJobName     = "fire-map"
)

// Config holds all run settings, populated from an optional YAML file,
// a .env file and environment variables, in increasing precedence.
type Config struct {
	InputPath   string    `yaml:"input"`
	OutputPath  string    `yaml:"output"`
	Sheet       string    `yaml:"sheet"`
	SQLiteTable string    `yaml:"sqlite_table"`
	Horizon     time.Time `yaml:"-"`
	Zoom        int       `yaml:"zoom"`
	Title       string    `yaml:"title"`
	LogLevel    string    `yaml:"log_level"`
	LogFormat   string    `yaml:"log_format"`

	// Metrics are pushed at the end of the run when PushgatewayURL is set.
	PushgatewayURL string `yaml:"pushgateway_url"`
	PushgatewayJob string `yaml:"pushgateway_job"`

	// Mapbox reverse geocoding configuration.
	MapboxToken     string        `yaml:"-"`
	MapboxEnabled   bool          `yaml:"-"`
	MapboxTimeout   time.Duration `yaml:"-"`
	MapboxCacheSize int           `yaml:"-"`
	MapboxBaseURL   string        `yaml:"-"`
}

// fileConfig mirrors the YAML layout; string fields keep "unset" distinct
// from zero values.
type fileConfig struct {
	Config  `yaml:",inline"`
	Horizon string `yaml:"horizon"`
}

// Load reads configuration from FIREMAP_CONFIG (YAML), .env and environment
// variables, applying defaults where unset.
func Load() (*Config, error) {
	_ = godotenv.Load()

	base := defaults()
	horizonStr := DefaultHorizon
	if path := os.Getenv("FIREMAP_CONFIG"); path != "" {
		fc, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		base = mergeFile(base, fc.Config)
		if fc.Horizon != "" {
			horizonStr = fc.Horizon
		}
	}

	horizon, err := parseHorizon(sharedcfg.EnvOrDefault("FIREMAP_HORIZON", horizonStr))
	if err != nil {
		return nil, err
	}

	zoom, err := parseZoom(sharedcfg.EnvOrDefault("FIREMAP_ZOOM", strconv.Itoa(base.Zoom)))
	if err != nil {
		return nil, err
	}

	mapboxTimeoutStr := sharedcfg.EnvOrDefault("MAPBOX_TIMEOUT", "5s")
	mapboxTimeout, err := time.ParseDuration(mapboxTimeoutStr)
	if err != nil || mapboxTimeout <= 0 {
		return nil, fmt.Errorf("invalid MAPBOX_TIMEOUT %q", mapboxTimeoutStr)
	}

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	cfg := &Config{
		InputPath:      sharedcfg.EnvOrDefault("FIREMAP_INPUT", base.InputPath),
		OutputPath:     sharedcfg.EnvOrDefault("FIREMAP_OUTPUT", base.OutputPath),
		Sheet:          sharedcfg.EnvOrDefault("FIREMAP_SHEET", base.Sheet),
		SQLiteTable:    sharedcfg.EnvOrDefault("FIREMAP_SQLITE_TABLE", base.SQLiteTable),
		Horizon:        horizon,
		Zoom:           zoom,
		Title:          sharedcfg.EnvOrDefault("FIREMAP_TITLE", base.Title),
		LogLevel:       sharedcfg.EnvOrDefault("LOG_LEVEL", base.LogLevel),
		LogFormat:      sharedcfg.EnvOrDefault("LOG_FORMAT", base.LogFormat),
		PushgatewayURL: sharedcfg.EnvOrDefault("PUSHGATEWAY_URL", base.PushgatewayURL),
		PushgatewayJob: sharedcfg.EnvOrDefault("PUSHGATEWAY_JOB", base.PushgatewayJob),

		MapboxToken:     mapboxToken,
		MapboxEnabled:   mapboxEnabled,
		MapboxTimeout:   mapboxTimeout,
		MapboxCacheSize: parseMapboxCacheSize(),
		MapboxBaseURL:   os.Getenv("MAPBOX_BASE_URL"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that may also be changed after Load, such as
// paths overridden by command-line flags.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return errors.New("FIREMAP_INPUT is required")
	}
	if c.OutputPath == "" {
		return errors.New("FIREMAP_OUTPUT is required")
	}
	if c.MapboxEnabled && c.MapboxToken == "" {
		return errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}
	return nil
}

func defaults() Config {
	return Config{
		InputPath:      DefaultInput,
		OutputPath:     DefaultOutput,
		SQLiteTable:    DefaultSQLiteTable,
		Zoom:           DefaultZoom,
		Title:          DefaultTitle,
		LogLevel:       "info",
		LogFormat:      "json",
		PushgatewayJob: DefaultJobName,
	}
}

func loadFile(path string) (fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("read FIREMAP_CONFIG: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fileConfig{}, fmt.Errorf("parse FIREMAP_CONFIG %s: %w", path, err)
	}
	return fc, nil
}

// mergeFile overlays the non-zero fields of file onto base.
func mergeFile(base, file Config) Config {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&base.InputPath, file.InputPath)
	set(&base.OutputPath, file.OutputPath)
	set(&base.Sheet, file.Sheet)
	set(&base.SQLiteTable, file.SQLiteTable)
	set(&base.Title, file.Title)
	set(&base.LogLevel, file.LogLevel)
	set(&base.LogFormat, file.LogFormat)
	set(&base.PushgatewayURL, file.PushgatewayURL)
	set(&base.PushgatewayJob, file.PushgatewayJob)
	if file.Zoom != 0 {
		base.Zoom = file.Zoom
	}
	return base
}

func parseHorizon(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid FIREMAP_HORIZON %q: want YYYY-MM-DD", s)
	}
	return t.UTC(), nil
}

func parseZoom(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 19 {
		return 0, fmt.Errorf("invalid FIREMAP_ZOOM %q: want 0-19", s)
	}
	return n, nil
}

func parseMapboxCacheSize() int {
	if s := os.Getenv("MAPBOX_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
