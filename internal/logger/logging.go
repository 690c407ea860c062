// Package logger provides modifications to charmbracelet/log's default logger to be used in various packages.
//
// Loggers write to stderr: stdout carries the msgpack IPC stream.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

var formatter = log.TextFormatter

// New creates a prefixed charm log that follows the global log level.
func New(prefix string) *log.Logger {
	return NewWithWriter(os.Stderr, prefix)
}

// NewWithWriter creates a prefixed charm log writing to w.
func NewWithWriter(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: log.GetLevel() == log.DebugLevel,
		Formatter:       formatter,
		Level:           log.GetLevel(),
	})
}

// ParseFormatter maps a config name to a charm log formatter. Empty means text.
func ParseFormatter(name string) (log.Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	default:
		return log.TextFormatter, fmt.Errorf("unknown log format %q", name)
	}
}

// SetFormat switches the default logger, and loggers created afterwards, to
// the named format. An unknown name leaves the format unchanged.
func SetFormat(name string) error {
	f, err := ParseFormatter(name)
	if err != nil {
		return err
	}
	formatter = f
	log.SetFormatter(f)
	return nil
}
