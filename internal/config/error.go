package config

import (
	"errors"
	"strings"
)

// ErrNoConfig is returned by Discover when no candidate file exists.
var ErrNoConfig = errors.New("no config file found")

// Error collects every problem found in one config source so they can be
// reported together.
type Error struct {
	Path    string
	Missing []string // unresolved ${VAR} references, or "VAR: message" for ${VAR:?message}
	Errors  []string // "section.key: reason"
}

// Error renders all problems on one line, prefixed by the file path.
func (e *Error) Error() string {
	if !e.HasErrors() {
		return ""
	}

	problems := make([]string, 0, len(e.Missing)+len(e.Errors))
	for _, m := range e.Missing {
		problems = append(problems, "unset variable "+m)
	}
	problems = append(problems, e.Errors...)

	prefix := "config"
	if e.Path != "" {
		prefix = e.Path
	}
	return prefix + ": " + strings.Join(problems, "; ")
}

// HasErrors reports whether anything was recorded.
func (e *Error) HasErrors() bool {
	return len(e.Missing) > 0 || len(e.Errors) > 0
}
