// Package logger provides charmbracelet/log loggers for the trigram binaries.
// Output goes to stderr; stdout is reserved for IPC responses.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New creates a new default charm log.
func New(prefix string) *log.Logger {
	return NewWithConfig(os.Stderr, prefix, log.GetLevel(), false, true, log.TextFormatter)
}

// NewWithConfig creates a new charm log with custom config
func NewWithConfig(w io.Writer, prefix string, level log.Level, caller bool, showTimestamp bool, fmt log.Formatter) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       fmt,
	})
}

// Setup configures the package-level logger used across pkg/.
func Setup(debug bool) {
	log.SetDefault(NewWithConfig(os.Stderr, "", log.WarnLevel, false, false, log.TextFormatter))
	if debug {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	}
}
