package api

import (
	"time"

	"github.com/okian/archrec/pkg/logger"
)

type serverConfig struct {
	maxBatchSize int
	timeout      time.Duration
	corsOrigins  []string
	rateRPS      float64
	rateBurst    int
	production   bool
	logger       logger.Logger
}

// Option configures a Server.
type Option func(*serverConfig)

// WithMaxBatchSize caps the number of vectors per batch request.
func WithMaxBatchSize(n int) Option {
	return func(c *serverConfig) {
		if n > 0 {
			c.maxBatchSize = n
		}
	}
}

// WithRequestTimeout bounds the time a batch request may wait for results.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *serverConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithCORSOrigins sets the allowed CORS origins.
func WithCORSOrigins(origins []string) Option {
	return func(c *serverConfig) {
		c.corsOrigins = origins
	}
}

// WithRateLimit enables per-client rate limiting. A non-positive rps
// disables it.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *serverConfig) {
		c.rateRPS = rps
		c.rateBurst = burst
	}
}

// WithProduction hides internal error details from responses.
func WithProduction(production bool) Option {
	return func(c *serverConfig) {
		c.production = production
	}
}

// WithLogger sets the server logger.
func WithLogger(l logger.Logger) Option {
	return func(c *serverConfig) {
		if l != nil {
			c.logger = l
		}
	}
}
