// Package logging builds the zerolog logger shared by the server, the CLI and the services.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndewijer/investment-tracker-backend/internal/config"
)

// New returns a logger writing to stderr at the configured level.
// LOG_FORMAT=console selects human readable output; anything else writes JSON.
func New(cfg config.LoggingConfig) zerolog.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(cfg config.LoggingConfig, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if strings.EqualFold(cfg.Format, "console") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Component returns a child logger tagged with the service name.
func Component(log zerolog.Logger, name string) zerolog.Logger {
	return log.With().Str("service", name).Logger()
}
