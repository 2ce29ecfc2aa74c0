// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment override, e.g. RESTAPP_SERVER_PORT.
const EnvPrefix = "RESTAPP_"

// Defaults.
const (
	DefaultHost            = "0.0.0.0"
	DefaultPort            = 8000
	DefaultLogLevel        = "info"
	DefaultBaseURL         = "https://ghibliapi.herokuapp.com/"
	DefaultUpstreamTimeout = 30 * time.Second
	DefaultRefreshInterval = 60 * time.Second
	DefaultOutputFormat    = "concat"
	DefaultLogFile         = "app_logger.log"
	DefaultLogMaxSizeMB    = 1
	DefaultLogMaxBackups   = 1
	DefaultHistoryRetain   = 30 * 24 * time.Hour
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `toml:"server" envPrefix:"SERVER_"`
	Upstream UpstreamConfig `toml:"upstream" envPrefix:"UPSTREAM_"`
	Refresh  RefreshConfig  `toml:"refresh" envPrefix:"REFRESH_"`
	Output   OutputConfig   `toml:"output" envPrefix:"OUTPUT_"`
	Log      LogConfig      `toml:"log" envPrefix:"LOG_"`
	History  HistoryConfig  `toml:"history" envPrefix:"HISTORY_"`
}

type ServerConfig struct {
	Host     string `toml:"host" env:"HOST"`
	Port     int    `toml:"port" env:"PORT"`
	LogLevel string `toml:"log_level" env:"LOG_LEVEL"`
}

type UpstreamConfig struct {
	BaseURL string        `toml:"base_url" env:"BASE_URL"`
	Timeout time.Duration `toml:"timeout" env:"TIMEOUT"`
}

type RefreshConfig struct {
	Interval time.Duration `toml:"interval" env:"INTERVAL"`
}

// OutputConfig selects the /movies/ body format. "concat" is the legacy
// stream of single-element arrays; "array" is one JSON array.
type OutputConfig struct {
	Format string `toml:"format" env:"FORMAT"`
}

// LogConfig configures the rotating log file.
type LogConfig struct {
	Disable    bool   `toml:"disable" env:"DISABLE"`
	File       string `toml:"file" env:"FILE"`
	MaxSizeMB  int    `toml:"max_size_mb" env:"MAX_SIZE_MB"`
	MaxBackups int    `toml:"max_backups" env:"MAX_BACKUPS"`
}

// HistoryConfig configures the refresh attempt log. An empty Path disables it.
type HistoryConfig struct {
	Path      string        `toml:"path" env:"PATH"`
	Retention time.Duration `toml:"retention" env:"RETENTION"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// Load reads and parses the configuration file, then applies environment
// overrides and defaults and validates the result. Configuration problems
// are returned as *Error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))
	if len(missing) > 0 {
		return nil, &Error{Path: path, Missing: missing}
	}

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return finish(path, &cfg)
}

// LoadOrDefault behaves like Load but falls back to Default when path does
// not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		return cfg, err
	}
	return finish(path, Default())
}

func finish(path string, cfg *Config) (*Config, error) {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	cfg.applyDefaults()

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &Error{Path: path, Errors: errs}
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = DefaultLogLevel
	}
	if c.Upstream.BaseURL == "" {
		c.Upstream.BaseURL = DefaultBaseURL
	}
	if c.Upstream.Timeout == 0 {
		c.Upstream.Timeout = DefaultUpstreamTimeout
	}
	if c.Refresh.Interval == 0 {
		c.Refresh.Interval = DefaultRefreshInterval
	}
	if c.Output.Format == "" {
		c.Output.Format = DefaultOutputFormat
	}
	if c.Log.File == "" {
		c.Log.File = DefaultLogFile
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = DefaultLogMaxSizeMB
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = DefaultLogMaxBackups
	}
	if c.History.Retention == 0 {
		c.History.Retention = DefaultHistoryRetain
	}
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::([-?])([^}]*))?\}`)

// substituteEnvVars replaces environment references and returns the names
// (or :? messages) of those it could not resolve. Unresolved references are
// left in place. Empty values count as unset for :- and :?.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		parts := envVarPattern.FindStringSubmatch(match)
		name, op, arg := parts[1], parts[2], parts[3]
		value, ok := os.LookupEnv(name)

		switch op {
		case "-":
			if !ok || value == "" {
				return arg
			}
			return value
		case "?":
			if !ok || value == "" {
				missing = append(missing, fmt.Sprintf("%s: %s", name, strings.TrimSpace(arg)))
				return match
			}
			return value
		default:
			if !ok {
				missing = append(missing, name)
				return match
			}
			return value
		}
	})
	return out, missing
}
