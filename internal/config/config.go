// Package config defines service configuration structures and loading hooks.
package config

import (
	"fmt"
	"runtime"
	"slices"
)

// Environment names.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":5000".
	Addr string `koanf:"addr"`

	// Env is development or production. Production hides internal error
	// details in HTTP responses.
	Env string `koanf:"env"`

	// EngineVersion is reported in recommendation metadata.
	EngineVersion string `koanf:"engine_version"`

	// MaxRecommendations is the number of architectures returned per request.
	MaxRecommendations int `koanf:"max_recommendations"`

	// CatalogPath optionally overrides the embedded catalog. It is re-read
	// on SIGHUP.
	CatalogPath string `koanf:"catalog_path"`

	// BatchWorkerCount sets the number of batch workers.
	BatchWorkerCount int `koanf:"batch_worker_count"`

	// BatchQueueSize bounds the batch job queue.
	BatchQueueSize int `koanf:"batch_queue_size"`

	// MaxBatchSize caps the number of vectors per batch request.
	MaxBatchSize int `koanf:"max_batch_size"`

	// CORSAllowedOrigins lists origins allowed by the CORS middleware.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	// RateLimitRPS and RateLimitBurst configure the per-client limiter.
	// A zero RPS disables rate limiting.
	RateLimitRPS   float64 `koanf:"rate_limit_rps"`
	RateLimitBurst int     `koanf:"rate_limit_burst"`

	// RequestTimeoutMS bounds request handling, including batch waits.
	RequestTimeoutMS int `koanf:"request_timeout_ms"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":5000",
		Env:                EnvDevelopment,
		EngineVersion:      "1.0.0",
		MaxRecommendations: 3,
		BatchWorkerCount:   runtime.NumCPU(),
		BatchQueueSize:     1024,
		MaxBatchSize:       100,
		CORSAllowedOrigins: []string{"http://localhost:3000"},
		// 100 requests per 15 minutes.
		RateLimitRPS:     100.0 / (15 * 60),
		RateLimitBurst:   100,
		RequestTimeoutMS: 10_000,
	}
}

// Validate checks the configuration and wraps failures in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case !slices.Contains([]string{"text", "json"}, c.LogFormat):
		return fmt.Errorf("%w: log_format %q", ErrInvalidConfig, c.LogFormat)
	case !slices.Contains([]string{EnvDevelopment, EnvProduction}, c.Env):
		return fmt.Errorf("%w: env %q", ErrInvalidConfig, c.Env)
	case c.MaxRecommendations < 1:
		return fmt.Errorf("%w: max_recommendations must be positive", ErrInvalidConfig)
	case c.BatchWorkerCount < 1:
		return fmt.Errorf("%w: batch_worker_count must be positive", ErrInvalidConfig)
	case c.BatchQueueSize < 1:
		return fmt.Errorf("%w: batch_queue_size must be positive", ErrInvalidConfig)
	case c.MaxBatchSize < 1 || c.MaxBatchSize > c.BatchQueueSize:
		return fmt.Errorf("%w: max_batch_size must be in [1,batch_queue_size]", ErrInvalidConfig)
	case c.RateLimitRPS < 0 || (c.RateLimitRPS > 0 && c.RateLimitBurst < 1):
		return fmt.Errorf("%w: rate limit", ErrInvalidConfig)
	case c.RequestTimeoutMS < 0:
		return fmt.Errorf("%w: request_timeout_ms must not be negative", ErrInvalidConfig)
	}
	return nil
}

// IsProduction reports whether Env is production.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}
