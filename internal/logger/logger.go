// Package logger wraps slog with the small surface the SkillPass
// services need: leveled structured logging plus a Fatal helper for
// unrecoverable startup failures.
package logger

import (
	"log/slog"
	"os"
)

// Logger is the structured logger handed to every service and handler.
// It embeds *slog.Logger, so Info, Warn, Error and Debug are available
// directly.
type Logger struct {
	*slog.Logger
}

// New returns a Logger writing text records to stdout. The level maps
// onto slog levels: -4 debug, 0 info, 4 warn, 8 error.
func New(level int) *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.Level(level)})),
	}
}

// Fatal logs at error level and exits the process. Reserved for
// failures the server cannot start without, such as a broken database
// connection or an invalid configuration.
func (l *Logger) Fatal(msg string, args ...any) {
	l.Logger.Error(msg, args...)
	os.Exit(1)
}
