// Package logging builds the process slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the logger.
type Options struct {
	// Level is one of debug, info, warn, error. Anything else means info.
	Level string
	// Writer receives every record; defaults to os.Stdout when nil.
	Writer io.Writer
	// File, when set, also appends records to a size-rotated file.
	File       string
	MaxSizeMB  int
	MaxBackups int
}

// New constructs a text slog.Logger. Records logged with a context from
// WithRequestID carry a request_id attribute. The returned closer releases
// the log file and is never nil.
func New(opts Options) (*slog.Logger, io.Closer) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stdout
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
		}
		writer = io.MultiWriter(writer, rotator)
		closer = rotator
	}

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{Level: ParseLevel(opts.Level)})
	return slog.New(contextHandler{handler}), closer
}

// ParseLevel maps a config log level to a slog.Level.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
