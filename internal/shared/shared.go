// package shared holds configuration, logging and error values used across soundgram
package shared

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const loggerPrefix = "soundgram"

// NewLogger creates a [log.Logger] writing to w (default [os.Stderr]) with timestamps and caller reporting.
func NewLogger(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          loggerPrefix,
		ReportTimestamp: true,
		ReportCaller:    true,
	})
}

// ConfigureLogger applies the level and output format from c.
func ConfigureLogger(l *log.Logger, c LogConfig) error {
	level, err := c.LogLevel()
	if err != nil {
		return err
	}
	formatter, err := c.LogFormatter()
	if err != nil {
		return err
	}
	l.SetLevel(level)
	l.SetFormatter(formatter)
	return nil
}

// WithLogger returns a child logger carrying kv on every entry.
func WithLogger(l *log.Logger, kv ...any) *log.Logger {
	return l.With(kv...)
}

// GenerateID returns a random v4 [uuid.UUID] string, used as the request id.
func GenerateID() string {
	return uuid.New().String()
}
