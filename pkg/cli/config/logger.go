package config

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/grclab/riskscope/pkg/utils/logging"
	"github.com/grclab/riskscope/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Logger holds CLI flags for logger configuration
type Logger struct {
	level  string
	format string
	output string
}

// Flags returns CLI flags for logger configuration
func (l *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("RISKSCOPE_LOG_LEVEL"),
			Destination: &l.level,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format (console or json)",
			Value:       "console",
			Sources:     cli.EnvVars("RISKSCOPE_LOG_FORMAT"),
			Destination: &l.format,
		},
		&cli.StringFlag{
			Name:        "log-output",
			Usage:       "Log output destination (-, stdout, stderr or file path)",
			Value:       "-",
			Sources:     cli.EnvVars("RISKSCOPE_LOG_OUTPUT"),
			Destination: &l.output,
		},
	}
}

// Configure builds the process-wide default logger from the flags. It
// returns a closer that releases the output file when one was opened.
func (l *Logger) Configure() (func(), error) {
	var level slog.Level
	switch strings.ToLower(l.level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, goerr.Wrap(ErrInvalidLogLevel, "unsupported log level", goerr.V(LogLevelKey, l.level))
	}

	var format logging.Format
	switch strings.ToLower(l.format) {
	case "console":
		format = logging.FormatConsole
	case "json":
		format = logging.FormatJSON
	default:
		return nil, goerr.Wrap(ErrInvalidLogFormat, "unsupported log format", goerr.V(LogFormatKey, l.format))
	}

	var w io.Writer
	closer := func() {}
	switch l.output {
	case "-", "stdout":
		w = os.Stdout
	case "stderr":
		w = os.Stderr
	default:
		f, err := os.OpenFile(l.output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open log output file", goerr.V("path", l.output))
		}
		w = f
		closer = func() {
			safe.Close(context.Background(), f)
		}
	}

	logging.SetDefault(logging.New(w, level, format))

	return closer, nil
}

// LogValue renders the logger configuration for startup logging
func (l *Logger) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("level", l.level),
		slog.String("format", l.format),
		slog.String("output", l.output),
	)
}
