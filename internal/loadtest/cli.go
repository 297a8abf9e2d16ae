package loadtest

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/archrec/pkg/logger"
)

const logFilePermission = 0600

// SetupLogging sends log output to stdout and, when logFile is set, to
// that file as well. The returned func closes the file.
func SetupLogging(logFile string, verbose bool) (func(), error) {
	var (
		w       io.Writer = os.Stdout
		closeFn           = func() {}
	)
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
		if err != nil {
			return nil, fmt.Errorf("failed to create log file: %w", err)
		}
		w = io.MultiWriter(os.Stdout, file)
		closeFn = func() { _ = file.Close() }
	}

	if err := logger.InitWithOptions(logger.Options{Writer: w}); err != nil {
		closeFn()
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		_ = logger.SetLevelString("debug")
	}
	return closeFn, nil
}

// ShowHelp prints usage information for the load test tool.
func ShowHelp() {
	os.Stdout.WriteString(`Architecture Recommendation Load Test
=====================================

Submits seeded random requirement profiles to a running service and checks
every response against the engine invariants.

Usage:
  go run ./cmd/loadtest [options]

Options:
  -url string         Base URL of the service (default "http://localhost:5000")
  -requests int       Number of requirement profiles to submit (default 1000)
  -workers int        Number of concurrent workers (default CPU cores * 2)
  -timeout duration   HTTP request timeout (default 10s)
  -seed uint          Generator seed (default 1)
  -top int            Expected recommendations per result (default 3)
  -batch int          Profiles sent through the batch endpoint, 0 to skip (default 50)
  -repeat int         Profiles re-submitted to check determinism (default 20)
  -compare            Compare responses with the embedded engine (default true)
  -output string      Write the generated profiles to this JSON file
  -log string         Also write log output to this file
  -verbose            Enable verbose logging
  -help               Show this help message

The tool exits with status 1 when any invariant is violated.
`)
}
