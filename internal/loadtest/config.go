package loadtest

import (
	"errors"
	"time"

	"github.com/okian/archrec/internal/domain/model"
)

// ErrViolations is returned by Run when any response broke an invariant.
var ErrViolations = errors.New("invariant violations detected")

// Config holds configuration for a load test run.
type Config struct {
	BaseURL     string        // Base URL of the service
	Requests    int           // Number of requirement vectors to submit
	Workers     int           // Number of concurrent workers
	Timeout     time.Duration // HTTP request timeout
	Seed        uint64        // Seed for the vector generator
	TopK        int           // Expected recommendations per result
	BatchSize   int           // Vectors sent through the batch endpoint; 0 skips it
	Idempotence int           // Vectors re-submitted to check determinism
	Compare     bool          // Compare responses with the embedded engine
	OutputFile  string        // Output file for generated vectors
	Verbose     bool          // Enable verbose logging
}

// Response is the body of a successful generate call.
type Response struct {
	model.Result
	Metadata struct {
		EngineVersion string `json:"engineVersion"`
		Confidence    int    `json:"confidence"`
		RequestID     string `json:"requestId"`
	} `json:"metadata"`
}

// Violation records one broken invariant.
type Violation struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// Stats holds run statistics.
type Stats struct {
	Generated  int
	Submitted  int
	Successful int
	Failed     int
	Throttled  int
	Violations []Violation
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}

// Runner configuration constants.
const (
	DefaultRequests    = 1000
	DefaultTopK        = 3
	DefaultBatchSize   = 50
	DefaultIdempotence = 20
	progressEvery      = 500
	maxLoggedViolation = 20
)
