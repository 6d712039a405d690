package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/grclab/riskscope/pkg/cli/config"
)

func TestLoggerConfigureInvalidLevel(t *testing.T) {
	logger := config.NewLoggerForTest("verbose", "console", "-")

	_, err := logger.Configure()
	gt.Error(t, err).Is(config.ErrInvalidLogLevel)
}

func TestLoggerConfigureInvalidFormat(t *testing.T) {
	logger := config.NewLoggerForTest("info", "xml", "-")

	_, err := logger.Configure()
	gt.Error(t, err).Is(config.ErrInvalidLogFormat)
}

func TestLoggerConfigureFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "riskscope.log")
	logger := config.NewLoggerForTest("debug", "json", path)

	closer, err := logger.Configure()
	gt.NoError(t, err).Required()
	defer closer()

	_, statErr := os.Stat(path)
	gt.NoError(t, statErr)
}

func TestLoggerConfigureStdout(t *testing.T) {
	logger := config.NewLoggerForTest("warn", "console", "stdout")

	closer, err := logger.Configure()
	gt.NoError(t, err).Required()
	closer()
}
