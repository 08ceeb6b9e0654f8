// Package logger builds the logrus logger used by the CLI and game loop.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Options selects the log level and output format.
type Options struct {
	Level  string    // logrus level name; defaults to LOG_LEVEL, then "info"
	Format string    // "json" or "text"; defaults to LOG_FORMAT, then "text"
	Output io.Writer // defaults to stderr
}

// New creates a logger from opts, falling back to the LOG_LEVEL and
// LOG_FORMAT environment variables for unset fields.
func New(opts Options) *logrus.Logger {
	log := logrus.New()

	levelName := opts.Level
	if levelName == "" {
		levelName = os.Getenv("LOG_LEVEL")
	}
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	format := opts.Format
	if format == "" {
		format = os.Getenv("LOG_FORMAT")
	}
	if strings.ToLower(format) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	log.SetOutput(out)
	return log
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
