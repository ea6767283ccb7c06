package debug

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Logf writes a debug trace line to stderr. Callers guard it with one of
// the switches of this package.
func Logf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg, args...)
}

var logger = NewLogger(os.Stderr, os.Getenv("PARTCAT_LOG_LEVEL"), "")

// Logger returns the shared logger.
func Logger() *slog.Logger {
	return logger
}

// SetLogger replaces the shared logger.
func SetLogger(l *slog.Logger) {
	logger = l
}

// NewLogger returns a slog logger writing through a charmbracelet handler.
// level is one of debug, info, warn, error (default info); format is text,
// json or logfmt (default text).
func NewLogger(w io.Writer, level, format string) *slog.Logger {
	h := log.NewWithOptions(w, log.Options{
		Prefix:          "partcat",
		Level:           ParseLevel(level),
		ReportTimestamp: false,
		Formatter:       parseFormatter(format),
	})
	return slog.New(h)
}

func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func parseFormatter(format string) log.Formatter {
	switch strings.ToLower(format) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
