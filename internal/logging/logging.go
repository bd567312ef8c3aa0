// Package logging builds the charmbracelet/log logger used for warnings.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Prefix is shown in front of every log line.
const Prefix = "taskflow"

// Options holds configuration for the logger.
type Options struct {
	Level           string
	Format          string
	ReportTimestamp bool
}

// New creates a logger writing to w. Warnings and store problems go here,
// so callers normally pass os.Stderr.
func New(w io.Writer, opts Options) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(opts.Level),
		Formatter:       ParseFormatter(opts.Format),
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          Prefix,
	})
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// ParseLevel maps a config string to a log level, defaulting to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// ParseFormatter maps a config string to a formatter, defaulting to text.
func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
