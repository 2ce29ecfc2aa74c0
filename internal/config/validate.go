package config

import (
	"fmt"
	"net/url"
	"strings"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validOutputFormats = map[string]bool{
	"concat": true, "array": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	// Server
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[strings.ToLower(c.Server.LogLevel)] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	// Upstream
	if c.Upstream.BaseURL != "" {
		u, err := url.Parse(c.Upstream.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Sprintf("upstream.base_url: must be an absolute http(s) URL, got %q", c.Upstream.BaseURL))
		}
	}
	if c.Upstream.Timeout < 0 {
		errs = append(errs, fmt.Sprintf("upstream.timeout: must not be negative, got %s", c.Upstream.Timeout))
	}

	// Refresh
	if c.Refresh.Interval < 0 {
		errs = append(errs, fmt.Sprintf("refresh.interval: must not be negative, got %s", c.Refresh.Interval))
	}

	// Output
	if c.Output.Format != "" && !validOutputFormats[c.Output.Format] {
		errs = append(errs, fmt.Sprintf("output.format: must be one of concat, array; got %q", c.Output.Format))
	}

	// Log file
	if c.Log.MaxSizeMB < 0 {
		errs = append(errs, fmt.Sprintf("log.max_size_mb: must not be negative, got %d", c.Log.MaxSizeMB))
	}
	if c.Log.MaxBackups < 0 {
		errs = append(errs, fmt.Sprintf("log.max_backups: must not be negative, got %d", c.Log.MaxBackups))
	}

	// History
	if c.History.Retention < 0 {
		errs = append(errs, fmt.Sprintf("history.retention: must not be negative, got %s", c.History.Retention))
	}

	return errs
}
