// Package config loads runtime settings: built-in defaults, then an optional
// YAML file, then COURSEPAGE_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Backend selects the snapshot medium.
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendFile   Backend = "file"
)

// DefaultSnapshotKey is the entry name the editor saves under.
const DefaultSnapshotKey = "course-editor-data"

// Config holds every runtime setting.
type Config struct {
	DataDir        string        `yaml:"data_dir"        env:"COURSEPAGE_DATA_DIR"`
	DBPath         string        `yaml:"db_path"         env:"COURSEPAGE_DB_PATH"`
	Backend        Backend       `yaml:"backend"         env:"COURSEPAGE_BACKEND"`
	SnapshotKey    string        `yaml:"snapshot_key"    env:"COURSEPAGE_SNAPSHOT_KEY"`
	AutosaveDelay  time.Duration `yaml:"autosave_delay"  env:"COURSEPAGE_AUTOSAVE_DELAY"`
	BackupSchedule string        `yaml:"backup_schedule" env:"COURSEPAGE_BACKUP_SCHEDULE"`
	BackupKeep     int           `yaml:"backup_keep"     env:"COURSEPAGE_BACKUP_KEEP"`
	ImportDir      string        `yaml:"import_dir"      env:"COURSEPAGE_IMPORT_DIR"`
	LogLevel       string        `yaml:"log_level"       env:"COURSEPAGE_LOG_LEVEL"`
}

// Default returns the built-in configuration. Paths derived from DataDir are
// left empty and filled in by Load.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		DataDir:        filepath.Join(homeDir, ".local", "share", "coursepage"),
		Backend:        BackendSQLite,
		SnapshotKey:    DefaultSnapshotKey,
		AutosaveDelay:  time.Second,
		BackupSchedule: "@every 30m",
		BackupKeep:     20,
		LogLevel:       "info",
	}
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "coursepage", "config.yaml")
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "coursepage", "config.yaml")
}

// Load reads the YAML file at path, if it exists, over the defaults and then
// applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	cfg.resolve()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables. Unset variables
// keep the value already in target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c *Config) resolve() {
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.DataDir, "coursepage.db")
	}
	if c.ImportDir == "" {
		c.ImportDir = filepath.Join(c.DataDir, "import")
	}
	if c.SnapshotKey == "" {
		c.SnapshotKey = DefaultSnapshotKey
	}
}

// SnapshotDir is the directory used by the file backend.
func (c *Config) SnapshotDir() string {
	return filepath.Join(c.DataDir, "snapshots")
}

// Validate rejects settings the runtime cannot start with.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendFile:
	default:
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	if c.AutosaveDelay <= 0 {
		return fmt.Errorf("config: autosave_delay must be positive, got %s", c.AutosaveDelay)
	}
	if c.BackupKeep < 0 {
		return fmt.Errorf("config: backup_keep must not be negative")
	}
	if c.BackupSchedule != "" {
		if _, err := cron.ParseStandard(c.BackupSchedule); err != nil {
			return fmt.Errorf("config: backup_schedule: %w", err)
		}
	}
	return nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
