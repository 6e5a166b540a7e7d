package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// New builds the process logger at the given level (debug|info|warn|error).
// A nil writer logs to stderr.
func New(w io.Writer, level, prefix string) (*log.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	if strings.TrimSpace(level) == "" {
		level = "info"
	}
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          prefix,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       log.TextFormatter,
	}), nil
}

// MustNew is New for process entry points; an unknown level falls back to info.
func MustNew(w io.Writer, level, prefix string) *log.Logger {
	logger, err := New(w, level, prefix)
	if err != nil {
		logger, _ = New(w, "info", prefix)
		logger.Warn("⚠️  Unknown LOG_LEVEL, using info", "level", level)
	}
	return logger
}
