package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

const serviceName = "ticket-analytics"

// New builds the process logger. Development gets a console writer, every
// other environment writes JSON lines to stdout.
func New(environment, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	var base zerolog.Logger
	if environment == "development" {
		base = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	} else {
		base = zerolog.New(os.Stdout)
	}

	return base.Level(lvl).With().Timestamp().Str("service", serviceName).Logger()
}
