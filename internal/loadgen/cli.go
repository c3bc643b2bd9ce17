package loadgen

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/marketnames/pkg/logger"
)

const logFilePermission = 0o600

// SetupLogging initializes the global logger, teeing to logFile when set.
func SetupLogging(logFile string) error {
	var w io.Writer = os.Stdout
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
		if err != nil {
			return fmt.Errorf("failed to create log file: %w", err)
		}
		w = io.MultiWriter(os.Stdout, file)
	}
	if err := logger.Init(logger.WithWriter(w)); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// ShowHelp prints usage information for the load tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`Market name load tool

Posts generated market observations to a running service and checks that
every market and outcome name was rendered in the background.

Usage:
  go run ./cmd/loadgen [options]

Options:
  -url string        Base URL of the service (default "http://localhost:9080")
  -observations int  Number of observations to post (default 1000)
  -events string     Comma separated event ids (default "sr:match:1")
  -langs string      Comma separated languages the service renders (default "en")
  -workers int       Concurrent submitters (default CPU cores * 2)
  -timeout duration  HTTP request timeout (default 10s)
  -settle duration   How long to wait for rendering (default 30s)
  -seed uint         Generator seed, 0 for random
  -output string     Write generated observations to this file
  -log string        Also log to this file
  -verbose           Log rejected observations
  -help              Show this help message
`)
}
