// Package config handles the TOML settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/avlone/tracknote/internal/osutil"
)

const (
	// AppName is the application name used for config directory
	AppName = "tracknote"
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
)

// Config represents the application configuration.
type Config struct {
	// DisplayTimeFormat is the Go reference-time layout used for
	// read-only instant display (tables, status output).
	DisplayTimeFormat string `toml:"display_time_format"`
	// EditTimeFormat is the layout used for the editable round-trip
	// representation of instants. It must be lossless (parse of
	// format equals the original) for any instant this system
	// produces; a layout that fails that check is replaced by the
	// default at load time.
	EditTimeFormat string `toml:"edit_time_format"`
	// CSVDelimiter separates fields in csv export output. Only the
	// first rune is used.
	CSVDelimiter string `toml:"csv_delimiter"`
	// ReverseOrder displays top-level entries newest-first. Search
	// and running-entry lookups always use insertion order.
	ReverseOrder bool `toml:"reverse_order"`
	// AutoStop enables the timer-driven store-wide sweep that closes
	// running entries left behind in other documents.
	AutoStop bool `toml:"auto_stop"`
	// Theme is the TUI color theme name.
	Theme string `toml:"theme"`
}

// DefaultConfig returns a Config with the default settings.
func DefaultConfig() Config {
	return Config{
		DisplayTimeFormat: "2006-01-02 15:04",
		EditTimeFormat:    "2006-01-02 15:04:05",
		CSVDelimiter:      ",",
		ReverseOrder:      false,
		AutoStop:          true,
		Theme:             "",
	}
}

// GetConfigPath returns the path to the config file.
// Uses os.UserConfigDir() for cross-platform XDG-compliant config directory.
// Creates the config directory if it doesn't exist.
func GetConfigPath() (string, error) {
	configDir, err := osutil.Provider.UserConfigDir()
	if err != nil {
		return "", err
	}

	appDir := filepath.Join(configDir, AppName)

	if err := osutil.Provider.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(appDir, ConfigFile), nil
}

// Load reads the config file at path. A missing file yields the
// defaults without error; a malformed file yields the defaults
// together with the parse error so the caller can warn and proceed.
// Empty fields are filled in from the defaults, and an edit layout
// that is not a lossless round trip is replaced by the default one.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var loaded Config
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}

	if loaded.DisplayTimeFormat != "" {
		cfg.DisplayTimeFormat = loaded.DisplayTimeFormat
	}
	if loaded.EditTimeFormat != "" {
		if RoundTrips(loaded.EditTimeFormat) {
			cfg.EditTimeFormat = loaded.EditTimeFormat
		} else {
			return cfg, fmt.Errorf("edit_time_format %q is not a lossless round trip, using default", loaded.EditTimeFormat)
		}
	}
	if loaded.CSVDelimiter != "" {
		cfg.CSVDelimiter = loaded.CSVDelimiter
	}
	cfg.ReverseOrder = loaded.ReverseOrder
	cfg.AutoStop = loaded.AutoStop
	cfg.Theme = loaded.Theme
	return cfg, nil
}

// LoadOrDefault reads the config from the default location, falling
// back to the defaults when the file is missing or unreadable.
func LoadOrDefault() Config {
	path, err := GetConfigPath()
	if err != nil {
		return DefaultConfig()
	}
	cfg, err := Load(path)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// Save writes the config as TOML to path.
func Save(path string, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return toml.NewEncoder(f).Encode(cfg)
}

// RoundTrips reports whether layout formats and re-parses an instant
// losslessly (to second precision, the precision this system stores).
func RoundTrips(layout string) bool {
	probe := time.Date(2024, time.March, 5, 14, 30, 45, 0, time.Local)
	parsed, err := time.ParseInLocation(layout, probe.Format(layout), time.Local)
	return err == nil && parsed.Equal(probe)
}

// GenerateSample returns a documented sample configuration file.
func GenerateSample() string {
	return `# tracknote configuration

# Layout for read-only instant display (Go reference time).
display_time_format = "2006-01-02 15:04"

# Layout for editable instants. Must round-trip losslessly; invalid
# layouts fall back to the default.
edit_time_format = "2006-01-02 15:04:05"

# Field delimiter for 'tracknote export csv'.
csv_delimiter = ","

# Show top-level entries newest-first.
reverse_order = false

# Periodically stop running entries left behind in other documents.
auto_stop = true

# TUI color theme (see lrstanley/bubbletint theme ids).
theme = ""
`
}
