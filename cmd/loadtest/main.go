package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/archrec/internal/loadtest"
)

// Default configuration constants.
const (
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 10 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:5000", "Base URL of the service")
		requests = flag.Int("requests", loadtest.DefaultRequests, "Number of requirement profiles to submit")
		workers  = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		seed     = flag.Uint64("seed", 1, "Generator seed")
		topK     = flag.Int("top", loadtest.DefaultTopK, "Expected recommendations per result")
		batch    = flag.Int("batch", loadtest.DefaultBatchSize, "Profiles sent through the batch endpoint, 0 to skip")
		repeat   = flag.Int("repeat", loadtest.DefaultIdempotence, "Profiles re-submitted to check determinism")
		compare  = flag.Bool("compare", true, "Compare responses with the embedded engine")
		output   = flag.String("output", "", "Write the generated profiles to this JSON file")
		logFile  = flag.String("log", "", "Also write log output to this file")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		loadtest.ShowHelp()
		return
	}

	closeLog, err := loadtest.SetupLogging(*logFile, *verbose)
	if err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)

	_, err = loadtest.Run(ctx, &loadtest.Config{
		BaseURL:     *baseURL,
		Requests:    *requests,
		Workers:     *workers,
		Timeout:     *timeout,
		Seed:        *seed,
		TopK:        *topK,
		BatchSize:   *batch,
		Idempotence: *repeat,
		Compare:     *compare,
		OutputFile:  *output,
		Verbose:     *verbose,
	})
	stop()
	cancel()
	closeLog()

	if err != nil {
		os.Stderr.WriteString("Load test failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
