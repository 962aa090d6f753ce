package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process logger. Unknown levels fall back to info and any
// format other than "console" produces JSON lines.
func New(level, format, env string) zerolog.Logger {
	return NewWithWriter(os.Stdout, level, format, env)
}

func NewWithWriter(out io.Writer, level, format, env string) zerolog.Logger {
	lvl := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level))); err == nil && parsed != zerolog.NoLevel {
		lvl = parsed
	}

	if strings.ToLower(strings.TrimSpace(format)) == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Str("service", "booking-api").
		Str("env", env).
		Logger()
}
