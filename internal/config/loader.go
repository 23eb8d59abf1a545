package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"pkgevent/internal/common/fsutil"
)

// Config holds the settings the event subsystem and its CLI read.
// Zero values mean "unspecified"; see Defaults.
type Config struct {
	// Syslog enables syslog lines for finished install/deinstall/upgrade.
	Syslog bool `json:"syslog" yaml:"syslog" toml:"syslog"`
	// DebugLevel is the highest trace level that is emitted.
	DebugLevel int64 `json:"debug_level" yaml:"debug_level" toml:"debug_level"`
	// EventPipe is "-", "fd:N", or a path. Empty disables the pipe.
	EventPipe   string   `json:"event_pipe" yaml:"event_pipe" toml:"event_pipe"`
	LogLevel    string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	Addr        string   `json:"addr" yaml:"addr" toml:"addr"`
	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
}

// Defaults fills unspecified fields.
func (c Config) Defaults() Config {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	return c
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	path, err := fsutil.ExpandHome(path)
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".json":
		err = json.Unmarshal(b, &cfg)
	case ".toml":
		err = toml.Unmarshal(b, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}
