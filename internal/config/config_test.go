package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/avlone/tracknote/internal/osutil"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFile)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults without error", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}
		if cfg != DefaultConfig() {
			t.Errorf("cfg = %+v, expected the defaults", cfg)
		}
	})

	t.Run("full file", func(t *testing.T) {
		path := writeConfig(t, `
display_time_format = "15:04"
edit_time_format = "2006-01-02 15:04:05"
csv_delimiter = ";"
reverse_order = true
auto_stop = true
theme = "gruvbox"
`)
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}
		if cfg.DisplayTimeFormat != "15:04" {
			t.Errorf("DisplayTimeFormat = %q", cfg.DisplayTimeFormat)
		}
		if cfg.CSVDelimiter != ";" {
			t.Errorf("CSVDelimiter = %q", cfg.CSVDelimiter)
		}
		if !cfg.ReverseOrder || !cfg.AutoStop {
			t.Errorf("flags = %+v, expected both set", cfg)
		}
		if cfg.Theme != "gruvbox" {
			t.Errorf("Theme = %q", cfg.Theme)
		}
	})

	t.Run("empty fields fall back to defaults", func(t *testing.T) {
		path := writeConfig(t, `auto_stop = true`)
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}
		def := DefaultConfig()
		if cfg.DisplayTimeFormat != def.DisplayTimeFormat || cfg.EditTimeFormat != def.EditTimeFormat || cfg.CSVDelimiter != def.CSVDelimiter {
			t.Errorf("cfg = %+v, expected defaults for the empty fields", cfg)
		}
	})

	t.Run("malformed file yields defaults and the parse error", func(t *testing.T) {
		path := writeConfig(t, `display_time_format = [this is not toml`)
		cfg, err := Load(path)
		if err == nil {
			t.Error("expected a parse error")
		}
		if cfg != DefaultConfig() {
			t.Errorf("cfg = %+v, expected the defaults", cfg)
		}
	})

	t.Run("lossy edit layout is rejected with the default kept", func(t *testing.T) {
		// A layout without a date cannot round-trip a full instant.
		path := writeConfig(t, `edit_time_format = "15:04"`)
		cfg, err := Load(path)
		if err == nil {
			t.Error("expected an error for a lossy edit layout")
		}
		if cfg.EditTimeFormat != DefaultConfig().EditTimeFormat {
			t.Errorf("EditTimeFormat = %q, expected the default", cfg.EditTimeFormat)
		}
	})
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)
	want := Config{
		DisplayTimeFormat: "02.01.2006 15:04",
		EditTimeFormat:    "2006-01-02 15:04:05",
		CSVDelimiter:      "\t",
		ReverseOrder:      true,
		AutoStop:          true,
		Theme:             "dracula",
	}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save() returned unexpected error: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("round trip changed the config:\n  in:  %+v\n  out: %+v", want, got)
	}
}

func TestRoundTrips(t *testing.T) {
	tests := []struct {
		layout   string
		expected bool
	}{
		{"2006-01-02 15:04:05", true},
		{"02.01.2006 15:04:05", true},
		{"2006-01-02 15:04", false}, // drops seconds
		{"15:04:05", false},         // drops the date
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.layout, func(t *testing.T) {
			if got := RoundTrips(tt.layout); got != tt.expected {
				t.Errorf("RoundTrips(%q) = %v, expected %v", tt.layout, got, tt.expected)
			}
		})
	}
}

func TestGetConfigPath(t *testing.T) {
	t.Run("builds the app config path", func(t *testing.T) {
		dir := t.TempDir()
		osutil.SetProvider(fakeProvider{dir: dir})
		defer osutil.ResetProvider()

		path, err := GetConfigPath()
		if err != nil {
			t.Fatalf("GetConfigPath() returned unexpected error: %v", err)
		}
		want := filepath.Join(dir, AppName, ConfigFile)
		if path != want {
			t.Errorf("path = %q, expected %q", path, want)
		}
		if _, err := os.Stat(filepath.Join(dir, AppName)); err != nil {
			t.Errorf("expected the app config directory to exist: %v", err)
		}
	})

	t.Run("propagates provider errors", func(t *testing.T) {
		osutil.SetProvider(fakeProvider{err: errors.New("no home")})
		defer osutil.ResetProvider()

		if _, err := GetConfigPath(); err == nil {
			t.Error("expected the provider error to propagate")
		}
	})
}

type fakeProvider struct {
	dir string
	err error
}

func (p fakeProvider) UserConfigDir() (string, error) {
	return p.dir, p.err
}

func (p fakeProvider) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func TestGenerateSample(t *testing.T) {
	sample := GenerateSample()

	var cfg Config
	if err := toml.Unmarshal([]byte(sample), &cfg); err != nil {
		t.Fatalf("the sample config does not parse: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("sample = %+v, expected it to spell out the defaults", cfg)
	}
	for _, key := range []string{"display_time_format", "edit_time_format", "csv_delimiter", "reverse_order", "auto_stop", "theme"} {
		if !strings.Contains(sample, key) {
			t.Errorf("sample is missing %q", key)
		}
	}
}
