package logger

import (
	"alcyxob/gym-admin/internal/config"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New builds the application logger. JSON to stderr by default; a console
// writer when cfg.Pretty is set. Unknown levels fall back to info.
func New(cfg config.LogConfig) zerolog.Logger {
	return newLogger(cfg, os.Stderr)
}

func newLogger(cfg config.LogConfig, out io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Str("service", "gym-admin").Logger()
}
