// Package logging builds the service's zerolog logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a JSON logger writing to stdout at the given level. An unknown level falls
// back to info. Console output is human-readable and meant for local runs.
func New(level string, console bool) zerolog.Logger {
	return NewWithWriter(os.Stdout, level, console)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, level string, console bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Str("service", "prize-pools").Logger()
}
