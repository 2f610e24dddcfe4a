// Package logger holds the process-wide structured logger. Everything
// goes to stderr as slog text; stdout stays reserved for tables,
// prompts, and progress lines.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var (
	level slog.LevelVar
	log   = slog.New(newHandler(os.Stderr))
)

func newHandler(w io.Writer) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: &level})
}

// Init applies the configured verbosity. The logger exists from package
// load, so messages emitted before Init land at the default info level
// instead of being dropped.
func Init(levelStr string) {
	level.Set(ParseLevel(levelStr))
}

// ParseLevel maps a config string to a slog level. Unknown strings mean
// info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// redirect swaps the output writer, for tests.
func redirect(w io.Writer) {
	log = slog.New(newHandler(w))
}

func Debug(msg string, args ...any) { log.Debug(msg, args...) }
func Info(msg string, args ...any)  { log.Info(msg, args...) }
func Warn(msg string, args ...any)  { log.Warn(msg, args...) }
func Error(msg string, args ...any) { log.Error(msg, args...) }
