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

// Logger is the global logger. It writes to stderr so command output on
// stdout stays machine readable.
var Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

// Config controls logger construction.
type Config struct {
	Level        string `json:"level" yaml:"level"`                 // debug, info, warn, error
	Format       string `json:"format" yaml:"format"`               // json or pretty
	TimeFormat   string `json:"time_format" yaml:"time_format"`     // defaults to RFC3339
	ReportCaller bool   `json:"report_caller" yaml:"report_caller"` // add file:line to each event
}

// Init replaces the global logger according to config, writing to stderr.
func Init(config Config) {
	InitWithWriter(config, os.Stderr)
}

// InitWithWriter replaces the global logger, writing to out.
func InitWithWriter(config Config, out io.Writer) {
	level, err := zerolog.ParseLevel(config.Level)
	if err != nil || config.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if config.TimeFormat == "" {
		zerolog.TimeFieldFormat = time.RFC3339
	} else {
		zerolog.TimeFieldFormat = config.TimeFormat
	}

	output := out
	if config.Format == "pretty" {
		output = zerolog.ConsoleWriter{Out: out, TimeFormat: config.TimeFormat}
	}

	ctx := zerolog.New(output).Level(level).With().Timestamp()
	if config.ReportCaller {
		ctx = ctx.Caller()
	}

	Logger = ctx.Logger()
	log.Logger = Logger
}

func Debug() *zerolog.Event {
	return Logger.Debug()
}

func Info() *zerolog.Event {
	return Logger.Info()
}

func Warn() *zerolog.Event {
	return Logger.Warn()
}

func Error() *zerolog.Event {
	return Logger.Error()
}

// Ctx returns the logger stored in ctx, or the global logger when none is.
func Ctx(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &Logger
}

// WithContext attaches the global logger to ctx.
func WithContext(ctx context.Context) context.Context {
	return Logger.WithContext(ctx)
}
