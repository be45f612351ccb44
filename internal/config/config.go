package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.yaml.in/yaml/v3"
)

const (
	configFileName     = "config.json"
	yamlConfigFileName = "config.yaml"
	configDirName      = "mousejump"
	envPrefix          = "MOUSEJUMP_"
)

// Config represents the application configuration
type Config struct {
	DebounceMS           int    `json:"debounce_ms" yaml:"debounce_ms"`
	PollIntervalMS       int    `json:"poll_interval_ms" yaml:"poll_interval_ms"`
	DesktopNotifications bool   `json:"desktop_notifications" yaml:"desktop_notifications"`
	Beep                 bool   `json:"beep" yaml:"beep"`
	LogLevel             string `json:"log_level" yaml:"log_level"`
	LogFormat            string `json:"log_format" yaml:"log_format"`

	// Source is where the configuration was read from.
	Source string `json:"-" yaml:"-"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		DebounceMS:           300,
		PollIntervalMS:       1000,
		DesktopNotifications: true,
		Beep:                 false,
		LogLevel:             "info",
		LogFormat:            "text",
		Source:               "defaults",
	}
}

// Debounce returns the modifier-only debounce window.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// PollInterval returns the permission sampling interval.
func (c Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	if c.DebounceMS <= 0 || c.DebounceMS > 5000 {
		return fmt.Errorf("debounce_ms must be between 1 and 5000, got %d", c.DebounceMS)
	}
	if c.PollIntervalMS < 50 {
		return fmt.Errorf("poll_interval_ms must be at least 50, got %d", c.PollIntervalMS)
	}
	if _, err := NormalizeLogLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := NormalizeLogFormat(c.LogFormat); err != nil {
		return err
	}
	return nil
}

// NormalizeLogLevel lowercases and checks a log level name.
func NormalizeLogLevel(level string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(level))
	switch normalized {
	case "":
		return "info", nil
	case "debug", "info", "warn", "error":
		return normalized, nil
	default:
		return "", fmt.Errorf("unsupported log level %q", level)
	}
}

// NormalizeLogFormat lowercases and checks a log format name.
func NormalizeLogFormat(format string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(format))
	switch normalized {
	case "", "text", "console":
		return "text", nil
	case "json":
		return "json", nil
	default:
		return "", fmt.Errorf("unsupported log format %q", format)
	}
}

// getConfigDir returns the user's config directory for mousejump
func getConfigDir() (string, error) {
	usr, err := user.Current()
	if err != nil {
		return "", err
	}

	return filepath.Join(usr.HomeDir, ".config", configDirName), nil
}

// GetConfigPath returns the config file to use: the YAML file when one
// exists, otherwise the JSON file.
func GetConfigPath() (string, error) {
	configDir, err := getConfigDir()
	if err != nil {
		return "", err
	}
	yamlPath := filepath.Join(configDir, yamlConfigFileName)
	if _, err := os.Stat(yamlPath); err == nil {
		return yamlPath, nil
	}
	return filepath.Join(configDir, configFileName), nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// LoadFile reads configuration from path on top of the defaults. A missing
// file yields the defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if isYAML(path) {
		err = yaml.Unmarshal(data, &cfg)
	} else {
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Source = path
	return cfg, nil
}

// SaveFile writes cfg to path, creating the directory if needed.
func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return err
	}

	// Write with user-only permissions
	return os.WriteFile(path, data, 0600)
}

// LookupEnvFunc exposes environment probing for testability.
type LookupEnvFunc func(string) (string, bool)

// ApplyEnv overrides cfg with MOUSEJUMP_* variables.
func ApplyEnv(cfg Config, lookup LookupEnvFunc) (Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"DEBOUNCE_MS", &cfg.DebounceMS},
		{"POLL_INTERVAL_MS", &cfg.PollIntervalMS},
	}
	for _, f := range ints {
		v, ok := lookup(envPrefix + f.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("%s%s: %w", envPrefix, f.key, err)
		}
		*f.dst = n
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"DESKTOP_NOTIFICATIONS", &cfg.DesktopNotifications},
		{"BEEP", &cfg.Beep},
	}
	for _, f := range bools {
		v, ok := lookup(envPrefix + f.key)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("%s%s: %w", envPrefix, f.key, err)
		}
		*f.dst = b
	}

	if v, ok := lookup(envPrefix + "LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := lookup(envPrefix + "LOG_FORMAT"); ok {
		cfg.LogFormat = v
	}
	return cfg, nil
}

// Load resolves configuration with priority: environment, then .env file
// in the working directory, then the config file, then defaults. An empty
// path uses GetConfigPath.
func Load(path string) (Config, error) {
	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	cfg, err := LoadFile(path)
	if err != nil {
		return Config{}, err
	}

	// godotenv.Load never overrides variables that are already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg, err = ApplyEnv(cfg, os.LookupEnv)
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}
