// Package logger builds the slog.Logger shared by the rgm server and CLI.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// New creates a logger writing to stderr.
func New(level, format string) *slog.Logger {
	return NewWithWriter(os.Stderr, level, format)
}

// NewWithWriter creates a logger writing to w. Unknown levels log at info,
// unknown formats as text.
func NewWithWriter(w io.Writer, level, format string) *slog.Logger {
	lvl, _ := ParseLevel(level)
	opts := &slog.HandlerOptions{Level: lvl}

	if strings.EqualFold(format, FormatJSON) {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLevel converts a level name to slog.Level. ok is false, and the
// level is info, when the name is not recognized.
func ParseLevel(level string) (lvl slog.Level, ok bool) {
	lvl, ok = levels[strings.ToLower(strings.TrimSpace(level))]
	if !ok {
		return slog.LevelInfo, false
	}
	return lvl, true
}

// Validate reports an error for an unknown level or format.
func Validate(level, format string) error {
	if _, ok := ParseLevel(level); !ok {
		return fmt.Errorf("unknown log level %q (want debug, info, warn or error)", level)
	}
	switch strings.ToLower(format) {
	case FormatText, FormatJSON:
		return nil
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", format)
	}
}
