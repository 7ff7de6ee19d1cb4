// Package logger builds the zerolog logger used by the CLI.
package logger

import (
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/born-ml/minigrad/internal/config"
)

// New creates a logger writing to w. Console format renders human-readable
// lines; json emits one object per event.
func New(cfg config.LogConfig, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	out := w
	if strings.ToLower(cfg.Format) != "json" {
		out = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: "15:04:05"}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
