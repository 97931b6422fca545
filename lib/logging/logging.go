// Package logging builds the process-wide slog.Logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/icco/cinevault/lib/config"
)

// ParseLevel maps a config level name to a slog.Level, defaulting to info.
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

// New returns a logger for cfg. With a file configured, output goes to a
// rotating file as JSON. Otherwise it goes to stderr, as text on a terminal
// and JSON elsewhere unless the format is set explicitly.
func New(cfg config.LoggingConfig) *slog.Logger {
	var out io.Writer = os.Stderr
	format := cfg.Format
	if cfg.File != "" {
		out = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    50,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		}
		if format == "auto" || format == "" {
			format = "json"
		}
	}
	return newLogger(out, format, ParseLevel(cfg.Level), isatty.IsTerminal(os.Stderr.Fd()))
}

func newLogger(out io.Writer, format string, level slog.Level, tty bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	switch format {
	case "json":
		return slog.New(slog.NewJSONHandler(out, opts))
	case "text":
		return slog.New(slog.NewTextHandler(out, opts))
	}
	if tty {
		return slog.New(slog.NewTextHandler(out, opts))
	}
	return slog.New(slog.NewJSONHandler(out, opts))
}
