// Package logger configures the process-wide zerolog logger.
package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the process-wide logger. It is replaced by Init.
var Logger = log.Logger

// Config controls level, output format and caller reporting.
type Config struct {
	Level        string `yaml:"level"`         // debug, info, warn, error
	Format       string `yaml:"format"`        // json or pretty
	TimeFormat   string `yaml:"time_format"`   // defaults to RFC3339
	ReportCaller bool   `yaml:"report_caller"` // add file:line to every event
}

// Init builds the global logger from config, writing to stdout.
func Init(config Config) {
	InitWithWriter(config, os.Stdout)
}

// InitWithWriter builds the global logger from config, writing to out.
func InitWithWriter(config Config, out io.Writer) {
	level, err := zerolog.ParseLevel(config.Level)
	if err != nil || config.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	output := out
	if config.Format == "pretty" {
		output = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: config.TimeFormat,
		}
	}

	if config.TimeFormat == "" {
		zerolog.TimeFieldFormat = time.RFC3339
	} else {
		zerolog.TimeFieldFormat = config.TimeFormat
	}

	ctx := zerolog.New(output).Level(level).With().Timestamp()
	if config.ReportCaller {
		ctx = ctx.Caller()
	}

	Logger = ctx.Logger()
	log.Logger = Logger
}

// Component returns a child of the global logger tagged with a component name.
func Component(name string) zerolog.Logger {
	return Logger.With().Str("component", name).Logger()
}

// Debug starts a debug event.
func Debug() *zerolog.Event { return Logger.Debug() }

// Info starts an info event.
func Info() *zerolog.Event { return Logger.Info() }

// Warn starts a warning event.
func Warn() *zerolog.Event { return Logger.Warn() }

// Error starts an error event.
func Error() *zerolog.Event { return Logger.Error() }

// Ctx returns the logger stored in ctx, or a disabled logger.
func Ctx(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext stores the global logger in ctx.
func WithContext(ctx context.Context) context.Context {
	return Logger.WithContext(ctx)
}
