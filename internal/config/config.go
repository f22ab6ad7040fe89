// Package config loads tool configuration for the webpackq commands.
//
// Settings come from a TOML file (default ~/.webpackq.toml) overridden by
// WEBPACKQ_-prefixed environment variables. Everything has a default, so a
// missing file is not an error.
//
// TOML format:
//
//	log-level = "info"
//	log-format = "text"
//	output-path = "webpack-q"
//	output-format = "json"
//	drop-dangling = false
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config holds the shared settings of the webpackq commands.
type Config struct {
	// LogLevel is the minimum level to log: debug, info, warn, error.
	LogLevel string `toml:"log-level"`
	// LogFormat is "text" or "json".
	LogFormat string `toml:"log-format"`
	// OutputPath is the default path graph output is written to; the
	// renderer appends the format's extension.
	OutputPath string `toml:"output-path"`
	// OutputFormat is the default graph output format: json, dot or html.
	OutputFormat string `toml:"output-format"`
	// DropDangling removes imports of modules the stats file does not
	// describe from exported graphs.
	DropDangling bool `toml:"drop-dangling"`
}

// DefaultPath returns the default config file path (~/.webpackq.toml).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".webpackq.toml")
}

// Load reads configuration from the TOML file at path, then applies
// environment overrides. A missing or empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{
		LogLevel:     "info",
		LogFormat:    "text",
		OutputPath:   "webpack-q",
		OutputFormat: "json",
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("read config file %q: %w", path, err)
		default:
			if _, err := toml.Decode(string(data), cfg); err != nil {
				return nil, fmt.Errorf("parse config file %q: %w", path, err)
			}
		}
	}

	cfg.LogLevel = getEnv("WEBPACKQ_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("WEBPACKQ_LOG_FORMAT", cfg.LogFormat)
	cfg.OutputPath = getEnv("WEBPACKQ_OUTPUT_PATH", cfg.OutputPath)
	cfg.OutputFormat = getEnv("WEBPACKQ_OUTPUT_FORMAT", cfg.OutputFormat)
	cfg.DropDangling = getEnvAsBool("WEBPACKQ_DROP_DANGLING", cfg.DropDangling)

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
