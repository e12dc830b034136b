// Package logger configures the global zerolog logger from command line options.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger holds logging options, embedded into every command as a flags group.
type Logger struct {
	// Output defaults to stderr.
	Output io.Writer `no-flag:"true"`

	Level   string `long:"log-level"    env:"LOG_LEVEL"    description:"Log level" choice:"trace" choice:"debug" choice:"info" choice:"warn" choice:"error" choice:"fatal" choice:"panic" default:"info"`
	Format  string `long:"log-format"   env:"LOG_FORMAT"   description:"Log output format" choice:"console" choice:"json" default:"console"`
	NoColor bool   `long:"log-no-color" env:"LOG_NO_COLOR" description:"Disable colors in console output"`
}

// New builds a logger from the options. Unknown levels fall back to info.
func (l *Logger) New() zerolog.Logger {
	out := l.Output
	if out == nil {
		out = os.Stderr
	}

	if l.Format != "json" {
		out = zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    l.NoColor,
			TimeFormat: time.DateTime,
		}
	}

	level, err := zerolog.ParseLevel(l.Level)
	if err != nil || l.Level == "" {
		level = zerolog.InfoLevel
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// Setup installs the configured logger as the global one.
func (l *Logger) Setup() {
	log.Logger = l.New()
	zerolog.SetGlobalLevel(log.Logger.GetLevel())
	zerolog.DurationFieldUnit = time.Millisecond
}
