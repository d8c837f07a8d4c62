// Package config loads profgrid settings from ~/.profgrid/config.yaml and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/rshade/profgrid/internal/grid"
)

// CurrentVersion is the config schema version written by `config init`.
const CurrentVersion = "1.0.0"

// supportedVersions is the semver constraint a config file's version must satisfy.
const supportedVersions = "^1.0.0"

// Environment variables consulted by Load.
const (
	EnvConfig    = "PROFGRID_CONFIG"
	EnvHome      = "PROFGRID_HOME"
	EnvLogLevel  = "PROFGRID_LOG_LEVEL"
	EnvLogFormat = "PROFGRID_LOG_FORMAT"
	EnvLogFile   = "PROFGRID_LOG_FILE"
	EnvWatch     = "PROFGRID_WATCH"
)

const (
	configFileName = "config.yaml"
	logFileName    = "profgrid.log"
	dirPerm        = 0o700
	filePerm       = 0o600

	defaultRowHeight = 1
	defaultWheelStep = 3
	defaultOverscan  = 5
	defaultDebounce  = 250 * time.Millisecond
)

var (
	// ErrUnsupportedVersion is returned for config files outside the supported schema range.
	ErrUnsupportedVersion = errors.New("unsupported config version")

	// ErrInvalidConfig wraps every other validation failure.
	ErrInvalidConfig = errors.New("invalid config")
)

// Config is the full profgrid configuration.
type Config struct {
	Version string        `yaml:"version"`
	Grid    GridConfig    `yaml:"grid"`
	Logging LoggingConfig `yaml:"logging"`
	Data    DataConfig    `yaml:"data"`
}

// GridConfig holds the column declaration and geometry of the results grid.
type GridConfig struct {
	// RowHeight is the height of each record in terminal lines.
	RowHeight int `yaml:"row_height"`

	// DefaultWidth applies to columns without an explicit width. When set it
	// must be positive.
	DefaultWidth *int `yaml:"default_width,omitempty"`

	// Overscan is the number of rows above and below the viewport the grid
	// pre-renders so short scrolls reuse already drawn lines.
	Overscan int `yaml:"overscan"`

	// WheelStep is the number of lines a mouse wheel tick scrolls.
	WheelStep int `yaml:"wheel_step"`

	// LinkColumn names the column rendered as an outbound hyperlink.
	LinkColumn string `yaml:"link_column"`

	Columns []grid.Column `yaml:"columns"`
}

// DataConfig controls dataset loading and export.
type DataConfig struct {
	// Watch reloads the dataset when its files change.
	Watch bool `yaml:"watch"`

	// Debounce collapses bursts of file events into one reload.
	Debounce time.Duration `yaml:"debounce"`

	// ExportDir is where the interactive export writes CSV files.
	ExportDir string `yaml:"export_dir"`
}

// DefaultColumns mirrors the column set of the original profile results grid.
func DefaultColumns() []grid.Column {
	return []grid.Column{
		{ID: "fullName", Width: grid.Width(20)},
		{ID: "jobTitle", Width: grid.Width(25)},
		{ID: "companyName", Width: grid.Width(20)},
		{ID: "industry", Width: grid.Width(15)},
		{ID: "location", Width: grid.Width(18)},
		{ID: "linkedinUrl", Width: grid.Width(12)},
		{ID: "skills", Width: grid.Width(30)},
		{ID: "summary", Width: grid.Width(40)},
	}
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		Version: CurrentVersion,
		Grid: GridConfig{
			RowHeight:    defaultRowHeight,
			DefaultWidth: grid.Width(grid.DefaultColumnWidth),
			WheelStep:    defaultWheelStep,
			Overscan:     defaultOverscan,
			LinkColumn:   "linkedinUrl",
			Columns:      DefaultColumns(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			File:   filepath.Join(Dir(), logFileName),
		},
		Data: DataConfig{
			Debounce:  defaultDebounce,
			ExportDir: ".",
		},
	}
}

// Dir returns the profgrid home directory.
func Dir() string {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".profgrid"
	}
	return filepath.Join(home, ".profgrid")
}

// DefaultPath returns the config file path used when no --config flag is given.
func DefaultPath() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	return filepath.Join(Dir(), configFileName)
}

// Load reads path on top of the defaults, applies environment overrides and
// validates the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := New()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	default:
		if err = yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	cfg.ApplyEnv(os.LookupEnv)

	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings from environment variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		c.Logging.Format = v
	}
	if v, ok := lookup(EnvLogFile); ok {
		c.Logging.File = v
	}
	if v, ok := lookup(EnvWatch); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Data.Watch = b
		}
	}
}

// Validate checks the schema version and every grid and logging setting.
func (c *Config) Validate() error {
	if err := checkVersion(c.Version); err != nil {
		return err
	}

	if c.Grid.RowHeight <= 0 {
		return fmt.Errorf("%w: grid.row_height must be positive, got %d", ErrInvalidConfig, c.Grid.RowHeight)
	}
	if c.Grid.Overscan < 0 {
		return fmt.Errorf("%w: grid.overscan must be >= 0, got %d", ErrInvalidConfig, c.Grid.Overscan)
	}
	if c.Grid.WheelStep <= 0 {
		return fmt.Errorf("%w: grid.wheel_step must be positive, got %d", ErrInvalidConfig, c.Grid.WheelStep)
	}
	if len(c.Grid.Columns) == 0 {
		return fmt.Errorf("%w: grid.columns must declare at least one column", ErrInvalidConfig)
	}

	layout, err := grid.NewLayout(c.ColumnSpec())
	if err != nil {
		return fmt.Errorf("%w: grid.columns: %w", ErrInvalidConfig, err)
	}
	if c.Grid.LinkColumn != "" {
		if _, ok := layout.Index(c.Grid.LinkColumn); !ok {
			return fmt.Errorf("%w: grid.link_column %q is not a declared column", ErrInvalidConfig, c.Grid.LinkColumn)
		}
	}

	if err = c.Logging.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if c.Data.Debounce < 0 {
		return fmt.Errorf("%w: data.debounce must be >= 0", ErrInvalidConfig)
	}
	return nil
}

func checkVersion(v string) error {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	version, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnsupportedVersion, v, err)
	}
	constraint, err := semver.NewConstraint(supportedVersions)
	if err != nil {
		return fmt.Errorf("parsing version constraint: %w", err)
	}
	if !constraint.Check(version) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedVersion, v, supportedVersions)
	}
	return nil
}

// ColumnSpec returns the grid column declaration.
func (c *Config) ColumnSpec() grid.ColumnSpec {
	cols := make([]grid.Column, len(c.Grid.Columns))
	copy(cols, c.Grid.Columns)
	return grid.ColumnSpec{Columns: cols, DefaultWidth: c.Grid.DefaultWidth}
}

// Marshal renders the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Save writes the config to path, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err = os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}
