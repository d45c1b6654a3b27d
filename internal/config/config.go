// Package config loads runtime settings from an optional TOML file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds runtime settings. Environment variables win over the file,
// which wins over defaults.
type Config struct {
	Latency       time.Duration
	SubmitTimeout time.Duration
	Start         string
	Language      string
	LogLevel      string
	Reject        bool
	InstanceName  string
	DataDir       string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Latency:       time.Second,
		SubmitTimeout: 10 * time.Second,
		Start:         "/",
		Language:      "en",
		LogLevel:      "info",
		InstanceName:  "codementor-1",
		DataDir:       DataDir(),
	}
}

// Load reads defaults, then the config file if present, then the env.
func Load() (Config, error) {
	cfg := Default()

	if err := cfg.loadFile(filepath.Join(ConfigDir(), "config.toml")); err != nil {
		return cfg, err
	}

	cfg.loadEnv()
	return cfg, nil
}

// loadFile overlays values from a TOML file. A missing file is not an error.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var f fileConfig
	if _, err := toml.Decode(string(data), &f); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return f.apply(c)
}

// fileConfig mirrors Config with durations as strings ("1s", "500ms").
type fileConfig struct {
	Latency       string `toml:"latency"`
	SubmitTimeout string `toml:"submit_timeout"`
	Start         string `toml:"start"`
	Language      string `toml:"language"`
	LogLevel      string `toml:"log_level"`
	Reject        *bool  `toml:"reject"`
	InstanceName  string `toml:"instance_name"`
	DataDir       string `toml:"data_dir"`
}

func (f fileConfig) apply(c *Config) error {
	if f.Latency != "" {
		d, err := time.ParseDuration(f.Latency)
		if err != nil {
			return fmt.Errorf("latency: %w", err)
		}
		c.Latency = d
	}
	if f.SubmitTimeout != "" {
		d, err := time.ParseDuration(f.SubmitTimeout)
		if err != nil {
			return fmt.Errorf("submit_timeout: %w", err)
		}
		c.SubmitTimeout = d
	}
	if f.Reject != nil {
		c.Reject = *f.Reject
	}
	setIf(&c.Start, f.Start)
	setIf(&c.Language, f.Language)
	setIf(&c.LogLevel, f.LogLevel)
	setIf(&c.InstanceName, f.InstanceName)
	setIf(&c.DataDir, f.DataDir)
	return nil
}

func (c *Config) loadEnv() {
	c.Latency = getEnvAsDuration("CODEMENTOR_LATENCY", c.Latency)
	c.SubmitTimeout = getEnvAsDuration("CODEMENTOR_SUBMIT_TIMEOUT", c.SubmitTimeout)
	c.Start = getEnv("CODEMENTOR_START", c.Start)
	c.Language = getEnv("CODEMENTOR_LANG", c.Language)
	c.LogLevel = getEnv("CODEMENTOR_LOG_LEVEL", c.LogLevel)
	c.Reject = getEnvAsBool("CODEMENTOR_REJECT", c.Reject)
	c.InstanceName = getEnv("INSTANCE_NAME", c.InstanceName)
}

// Level maps LogLevel to a slog level, defaulting to info.
func (c Config) Level() slog.Level {
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

// LogFile is where the TUI writes its JSON log.
func (c Config) LogFile() string {
	return filepath.Join(c.DataDir, "codementor.log")
}

// DataDir returns the default data directory.
func DataDir() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return d + "/codementor"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".codementor"
	}
	return home + "/.local/share/codementor"
}

// ConfigDir returns the directory holding config.toml.
func ConfigDir() string {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return d + "/codementor"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".codementor"
	}
	return home + "/.config/codementor"
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if dur, err := time.ParseDuration(value); err == nil {
			return dur
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
