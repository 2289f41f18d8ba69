// Package config handles loading agency.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/amonks/agency/internal/paths"
)

// DefaultBaseURL is the backend address used when nothing is configured.
const DefaultBaseURL = "http://localhost:8000"

// DefaultTick is the live board refresh interval.
const DefaultTick = time.Second

// Environment variables that override file configuration.
const (
	EnvAPIURL   = "AGENCY_API_URL"
	EnvStateDir = "AGENCY_STATE_DIR"
)

// Config represents the agency.toml configuration file.
type Config struct {
	API     API     `toml:"api"`
	Storage Storage `toml:"storage"`
	Log     Log     `toml:"log"`
	Board   Board   `toml:"board"`
}

// API configures the backend client.
type API struct {
	// BaseURL is the root of the REST backend, e.g. https://crm.example.com/api.
	BaseURL string `toml:"base-url"`

	// Timeout bounds each request ("30s"). Empty means no timeout.
	Timeout string `toml:"timeout"`
}

// Storage configures where filters and credentials persist.
type Storage struct {
	// Backend is "file" (default) or "sqlite".
	Backend string `toml:"backend"`

	// Dir overrides the state directory.
	Dir string `toml:"dir"`
}

// Log configures the log file.
type Log struct {
	// Level is a zerolog level name. Defaults to info.
	Level string `toml:"level"`
}

// Board configures the live board.
type Board struct {
	// Tick is the countdown refresh interval ("1s").
	Tick string `toml:"tick"`
}

// Load loads configuration from the project directory and the global config
// file, then applies environment overrides. Returns defaults if no config
// files exist.
func Load(projectDir string) (*Config, error) {
	globalPath, err := GlobalConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(projectDir, "agency.toml"))
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta)
	applyEnv(merged)
	return merged, nil
}

// GlobalConfigPath returns ~/.config/agency/config.toml.
func GlobalConfigPath() (string, error) {
	dir, err := paths.DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.API.BaseURL = mergeString(projectMeta.IsDefined("api", "base-url"), projectCfg.API.BaseURL, globalCfg.API.BaseURL)
	merged.API.Timeout = mergeString(projectMeta.IsDefined("api", "timeout"), projectCfg.API.Timeout, globalCfg.API.Timeout)
	merged.Storage.Backend = mergeString(projectMeta.IsDefined("storage", "backend"), projectCfg.Storage.Backend, globalCfg.Storage.Backend)
	merged.Storage.Dir = mergeString(projectMeta.IsDefined("storage", "dir"), projectCfg.Storage.Dir, globalCfg.Storage.Dir)
	merged.Log.Level = mergeString(projectMeta.IsDefined("log", "level"), projectCfg.Log.Level, globalCfg.Log.Level)
	merged.Board.Tick = mergeString(projectMeta.IsDefined("board", "tick"), projectCfg.Board.Tick, globalCfg.Board.Tick)

	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}

func applyEnv(cfg *Config) {
	if value := strings.TrimSpace(os.Getenv(EnvAPIURL)); value != "" {
		cfg.API.BaseURL = value
	}
	if value := strings.TrimSpace(os.Getenv(EnvStateDir)); value != "" {
		cfg.Storage.Dir = value
	}
}

// BaseURL returns the configured backend URL or DefaultBaseURL.
func (c *Config) BaseURL() string {
	if c.API.BaseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(c.API.BaseURL, "/")
}

// Timeout parses api.timeout. Zero means no timeout.
func (c *Config) Timeout() (time.Duration, error) {
	if c.API.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 0, fmt.Errorf("parse api.timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("parse api.timeout: negative duration %s", d)
	}
	return d, nil
}

// TickInterval parses board.tick, defaulting to DefaultTick.
func (c *Config) TickInterval() (time.Duration, error) {
	if c.Board.Tick == "" {
		return DefaultTick, nil
	}
	d, err := time.ParseDuration(c.Board.Tick)
	if err != nil {
		return 0, fmt.Errorf("parse board.tick: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("parse board.tick: must be positive, got %s", d)
	}
	return d, nil
}

// StateDir returns storage.dir or the default state directory.
func (c *Config) StateDir() (string, error) {
	if c.Storage.Dir != "" {
		return c.Storage.Dir, nil
	}
	return paths.DefaultStateDir()
}
