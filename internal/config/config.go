package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Timer   TimerConfig   `yaml:"timer"`
	Export  ExportConfig  `yaml:"export"`
	Notes   NotesConfig   `yaml:"notes"`
	Journal JournalConfig `yaml:"journal"`
	Log     LogConfig     `yaml:"log"`
}

type TimerConfig struct {
	TickInterval    time.Duration `yaml:"tick_interval"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
}

type ExportConfig struct {
	Dir      string `yaml:"dir"`
	Filename string `yaml:"filename"`
}

type NotesConfig struct {
	// AutoSave commits every edit to the lap table immediately instead of
	// waiting for Save Notes.
	AutoSave bool `yaml:"autosave"`
}

type JournalConfig struct {
	DSN string `yaml:"dsn"`
}

type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

func DefaultConfig() *Config {
	return &Config{
		Timer: TimerConfig{
			TickInterval:    10 * time.Millisecond,
			RefreshInterval: 50 * time.Millisecond,
		},
		Export: ExportConfig{
			Dir:      ".",
			Filename: "table.csv",
		},
		Journal: JournalConfig{
			DSN: "file::memory:",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the YAML file at path over the defaults. A missing file is not
// an error. An empty path means DefaultPath.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Timer.TickInterval <= 0 {
		return fmt.Errorf("timer.tick_interval must be positive")
	}
	if c.Timer.RefreshInterval <= 0 {
		return fmt.Errorf("timer.refresh_interval must be positive")
	}
	if c.Export.Filename == "" {
		return fmt.Errorf("export.filename must not be empty")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// DefaultPath is ~/.chrono/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".chrono", "config.yaml"), nil
}
