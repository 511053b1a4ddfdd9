// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/calgrid/internal/dateutil"
	"github.com/javiermolinar/calgrid/internal/layout"
	"github.com/javiermolinar/calgrid/internal/theme"
)

// Config holds the application configuration.
type Config struct {
	View    ViewConfig    `toml:"view"`
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
}

// ViewConfig holds calendar layout settings.
type ViewConfig struct {
	WeekStart       string `toml:"week_start"`        // e.g., "monday"
	DaysShown       int    `toml:"days_shown"`        // day view width, 1..10
	WeeksShown      int    `toml:"weeks_shown"`       // month view height, 1..6
	DayStart        string `toml:"day_start"`         // e.g., "08:00"
	DayEnd          string `toml:"day_end"`           // e.g., "20:00"
	MinutesPerRow   int    `toml:"minutes_per_row"`   // 5, 10, 15, 30 or 60
	MaxColumns      int    `toml:"max_columns"`       // 0 means unbounded
	MaxRowsPerCell  int    `toml:"max_rows_per_cell"` // 1..10
	CompressWeekend bool   `toml:"compress_weekend"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds terminal settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha" or "latte"
}

var validMinutesPerRow = map[int]bool{5: true, 10: true, 15: true, 30: true, 60: true}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		View: ViewConfig{
			WeekStart:       "monday",
			DaysShown:       1,
			WeeksShown:      5,
			DayStart:        "08:00",
			DayEnd:          "20:00",
			MinutesPerRow:   30,
			MaxColumns:      0,
			MaxRowsPerCell:  layout.DefaultMaxRowsPerCell,
			CompressWeekend: true,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: theme.DefaultName,
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "calgrid.db"
	}
	return filepath.Join(home, ".local", "share", "calgrid", "calgrid.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "calgrid", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("CALGRID_WEEK_START"); v != "" {
		cfg.View.WeekStart = v
	}
	if v := os.Getenv("CALGRID_DAY_START"); v != "" {
		cfg.View.DayStart = v
	}
	if v := os.Getenv("CALGRID_DAY_END"); v != "" {
		cfg.View.DayEnd = v
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"CALGRID_DAYS_SHOWN", &cfg.View.DaysShown},
		{"CALGRID_WEEKS_SHOWN", &cfg.View.WeeksShown},
		{"CALGRID_MINUTES_PER_ROW", &cfg.View.MinutesPerRow},
		{"CALGRID_MAX_COLUMNS", &cfg.View.MaxColumns},
		{"CALGRID_MAX_ROWS_PER_CELL", &cfg.View.MaxRowsPerCell},
	}
	for _, o := range ints {
		v := os.Getenv(o.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", o.name, err)
		}
		*o.dst = n
	}

	if v := os.Getenv("CALGRID_COMPRESS_WEEKEND"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing CALGRID_COMPRESS_WEEKEND: %w", err)
		}
		cfg.View.CompressWeekend = b
	}

	if v := os.Getenv("CALGRID_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("CALGRID_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := dateutil.ParseWeekday(c.View.WeekStart); err != nil {
		return fmt.Errorf("week_start: %w", err)
	}
	if c.View.DaysShown < 1 || c.View.DaysShown > layout.MaxDays {
		return fmt.Errorf("days_shown must be between 1 and %d, got %d", layout.MaxDays, c.View.DaysShown)
	}
	if c.View.WeeksShown < 1 || c.View.WeeksShown > layout.MaxWeeks {
		return fmt.Errorf("weeks_shown must be between 1 and %d, got %d", layout.MaxWeeks, c.View.WeeksShown)
	}

	start, err := dateutil.ParseClock(c.View.DayStart)
	if err != nil {
		return fmt.Errorf("day_start must be in HH:MM format, got %q", c.View.DayStart)
	}
	end, err := dateutil.ParseClock(c.View.DayEnd)
	if err != nil {
		return fmt.Errorf("day_end must be in HH:MM format, got %q", c.View.DayEnd)
	}
	if start >= end {
		return errors.New("day_start must be before day_end")
	}

	if !validMinutesPerRow[c.View.MinutesPerRow] {
		return fmt.Errorf("minutes_per_row must be one of 5, 10, 15, 30, 60, got %d", c.View.MinutesPerRow)
	}
	if (end-start)%c.View.MinutesPerRow != 0 {
		return errors.New("visible hours must be a whole number of rows")
	}
	if c.View.MaxColumns < 0 {
		return fmt.Errorf("max_columns must not be negative, got %d", c.View.MaxColumns)
	}
	if c.View.MaxRowsPerCell < 1 || c.View.MaxRowsPerCell > layout.DefaultMaxRowsPerCell {
		return fmt.Errorf("max_rows_per_cell must be between 1 and %d, got %d", layout.DefaultMaxRowsPerCell, c.View.MaxRowsPerCell)
	}

	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if !theme.IsAvailable(c.UI.Theme) {
		return fmt.Errorf("invalid theme: %s", c.UI.Theme)
	}
	return nil
}

// WeekStartDay returns the configured first day of the week.
// It assumes the config has been validated.
func (c *Config) WeekStartDay() time.Weekday {
	wd, _ := dateutil.ParseWeekday(c.View.WeekStart)
	return wd
}

// VisibleMinutes returns the visible day window as minutes since midnight.
// It assumes the config has been validated.
func (c *Config) VisibleMinutes() (start, end int) {
	start, _ = dateutil.ParseClock(c.View.DayStart)
	end, _ = dateutil.ParseClock(c.View.DayEnd)
	return start, end
}

// Rows returns the number of time rows in the day view.
func (c *Config) Rows() int {
	start, end := c.VisibleMinutes()
	return (end - start) / c.View.MinutesPerRow
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
