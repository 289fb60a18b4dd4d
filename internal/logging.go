package internal

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// NewLogger returns the diagnostics logger. It writes to w (stderr in the
// CLI) so that table and JSON output on stdout stay clean.
func NewLogger(w io.Writer, level string, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: "ledger",
		Level:  parseLogLevel(level),
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func parseLogLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
