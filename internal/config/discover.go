package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvConfigPath names the variable that pins the config file location.
const EnvConfigPath = EnvPrefix + "CONFIG"

const systemConfigPath = "/etc/restapp/config.toml"

// DefaultPath is the per-user config file, under os.UserConfigDir
// ($XDG_CONFIG_HOME or ~/.config on Linux). It falls back to ./config.toml
// when no user config directory can be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(dir, "restapp", "config.toml")
}

// SearchPaths lists the files Discover tries, in order, when
// RESTAPP_CONFIG is not set.
func SearchPaths() []string {
	return []string{"config.toml", DefaultPath(), systemConfigPath}
}

// Discover returns the config file to load. RESTAPP_CONFIG wins and must
// exist; otherwise the first existing entry of SearchPaths is used. When
// none exists the error wraps ErrNoConfig.
func Discover() (string, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%s=%s: %w", EnvConfigPath, path, err)
		}
		return path, nil
	}

	candidates := SearchPaths()
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w (tried %v)", ErrNoConfig, candidates)
}
