// Package config provides configuration defaults and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/pable/scoresheet-metrics/internal/model"
	"github.com/pable/scoresheet-metrics/internal/scorer"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Report ReportConfig `toml:"report"`
	Scorer ScorerConfig `toml:"scorer"`
	Cache  CacheConfig  `toml:"cache"`
}

// ReportConfig maps input and windowing settings.
type ReportConfig struct {
	Dir        *string `toml:"dir"`
	Ext        *string `toml:"ext"`
	WindowSize *int    `toml:"window"`
	Natural    *bool   `toml:"natural-sort"`
}

// ScorerConfig maps the external scorer settings.
type ScorerConfig struct {
	Path *string `toml:"path"`
}

// CacheConfig maps the result cache settings.
type CacheConfig struct {
	Mode *string `toml:"mode"`
	DB   *string `toml:"db"`
}

// Settings is the fully resolved configuration.
type Settings struct {
	Dir        string
	Ext        string
	WindowSize int
	Natural    bool
	ScorerPath string
	CacheMode  string
	DBPath     string
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Dir:        "scoresheets",
		Ext:        ".mss",
		WindowSize: model.DefaultWindowSize,
		ScorerPath: scorer.DefaultBinary,
		CacheMode:  "file",
		DBPath:     DefaultDBPath(),
	}
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Apply overlays the values set in the file onto s.
func (c FileConfig) Apply(s Settings) (Settings, error) {
	if c.Report.Dir != nil {
		s.Dir = *c.Report.Dir
	}
	if c.Report.Ext != nil {
		s.Ext = *c.Report.Ext
	}
	if c.Report.WindowSize != nil {
		if *c.Report.WindowSize <= 0 {
			return s, fmt.Errorf("report.window must be positive, got %d", *c.Report.WindowSize)
		}
		s.WindowSize = *c.Report.WindowSize
	}
	if c.Report.Natural != nil {
		s.Natural = *c.Report.Natural
	}
	if c.Scorer.Path != nil {
		s.ScorerPath = *c.Scorer.Path
	}
	if c.Cache.Mode != nil {
		s.CacheMode = *c.Cache.Mode
	}
	if c.Cache.DB != nil {
		s.DBPath = *c.Cache.DB
	}
	return s, nil
}
