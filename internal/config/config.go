// Package config loads server configuration.
//
// Precedence, lowest to highest: built-in defaults, an optional YAML config
// file, environment variables. The file keeps deployments declarative; the
// env overrides keep container platforms happy (they inject PORT and
// DB_PATH).
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds everything the server needs to start.
//
// An empty DBPath is allowed: the server then starts in a degraded mode
// where intake returns a store error and the dashboards render their empty
// state. That is deliberate — "store not configured" is a typed runtime
// condition here, not a nil global client waiting to panic.
type Config struct {
	Port        int    `yaml:"port"`
	DBPath      string `yaml:"db_path"`
	TemplateDir string `yaml:"template_dir"`
	StaticDir   string `yaml:"static_dir"`
	LogLevel    string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:        8080,
		DBPath:      "data/waitlist.db",
		TemplateDir: "web/templates",
		StaticDir:   "web/static",
		LogLevel:    "info",
	}
}

// Load builds the effective configuration: defaults, then the YAML file at
// path (skipped when absent — the file is optional), then env overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// No config file is fine; defaults + env carry the day.
		case err != nil:
			return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid PORT %q: %w", v, err)
		}
		c.Port = port
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("TEMPLATE_DIR"); v != "" {
		c.TemplateDir = v
	}
	if v := os.Getenv("STATIC_DIR"); v != "" {
		c.StaticDir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	return nil
}

// SlogLevel maps the configured log level onto slog. Unknown values fall
// back to Info rather than erroring — a typo in LOG_LEVEL should not keep
// the server down.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
