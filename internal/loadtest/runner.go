package loadtest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/archrec/internal/domain/engine"
	"github.com/okian/archrec/internal/domain/model"
	"github.com/okian/archrec/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	filePermission      = 0600
)

// Run generates requirement vectors, submits them concurrently and checks
// every response. It returns ErrViolations when any invariant is broken.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	log := logger.Get().Named("loadtest")
	stats := &Stats{StartTime: time.Now()}

	log.Info(ctx, "starting load test",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("requests", cfg.Requests),
		logger.Int("workers", cfg.Workers),
		logger.Any("seed", cfg.Seed),
		logger.Duration("timeout", cfg.Timeout))

	client := NewHTTPClient(cfg.BaseURL, cfg.Timeout)
	if err := client.Get(ctx, "/healthz"); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	vectors := Generate(cfg.Seed, cfg.Requests)
	stats.Generated = len(vectors)

	r := &run{cfg: cfg, client: client, log: log, stats: stats}
	if cfg.Compare {
		r.local = engine.New(engine.WithTopK(max(cfg.TopK, 1)), engine.WithLogger(logger.Nop()))
	}

	results, err := r.submit(ctx, vectors)
	if err != nil {
		return stats, fmt.Errorf("submission failed: %w", err)
	}
	if err := r.checkIdempotence(ctx, vectors, results); err != nil {
		return stats, fmt.Errorf("idempotence check failed: %w", err)
	}
	if err := r.checkBatch(ctx, vectors, results); err != nil {
		return stats, fmt.Errorf("batch check failed: %w", err)
	}

	if cfg.OutputFile != "" {
		if err := saveVectors(cfg.OutputFile, vectors); err != nil {
			log.Warn(ctx, "failed to save vectors", logger.Error(err))
		} else {
			log.Info(ctx, "vectors saved", logger.String("file", cfg.OutputFile))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, log, stats)

	if len(stats.Violations) > 0 {
		return stats, fmt.Errorf("%w: %d", ErrViolations, len(stats.Violations))
	}
	return stats, nil
}

type run struct {
	cfg    *Config
	client *HTTPClient
	log    logger.Logger
	local  *engine.Engine
	stats  *Stats

	mu sync.Mutex
}

func (r *run) violate(index int, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats.Violations = append(r.stats.Violations, Violation{Index: index, Reason: reason})
	if len(r.stats.Violations) <= maxLoggedViolation {
		r.log.Warn(context.Background(), "invariant violated",
			logger.Int("index", index), logger.String("reason", reason))
	}
}

// submit posts every vector to the generate endpoint with bounded
// concurrency. Transport and 429 failures are counted, not fatal.
func (r *run) submit(ctx context.Context, vectors []*model.RequirementVector) ([]*model.Result, error) {
	results := make([]*model.Result, len(vectors))
	var submitted, successful, failed, throttled atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.cfg.Workers, 1))

	for i, v := range vectors {
		g.Go(func() error {
			var resp Response
			err := r.client.PostJSON(gctx, "/api/recommendations/generate",
				map[string]any{"requirements": v}, &resp)
			n := submitted.Add(1)
			if r.cfg.Verbose && n%progressEvery == 0 {
				r.log.Info(gctx, "progress", logger.Int("submitted", int(n)), logger.Int("total", len(vectors)))
			}

			var se *StatusError
			switch {
			case errors.As(err, &se) && se.Code == http.StatusTooManyRequests:
				throttled.Add(1)
				return nil
			case err != nil:
				if gctx.Err() != nil {
					return gctx.Err()
				}
				failed.Add(1)
				r.violate(i, err.Error())
				return nil
			}

			successful.Add(1)
			results[i] = &resp.Result
			for _, reason := range Verify(resp.Result, r.cfg.TopK) {
				r.violate(i, reason)
			}
			if resp.Analysis != nil && resp.Metadata.Confidence != resp.Analysis.TopScore {
				r.violate(i, "metadata confidence differs from top score")
			}
			if r.local != nil {
				want := normalize(r.local.GenerateRecommendation(gctx, v))
				if !Same(want, resp.Result) {
					r.violate(i, "response differs from the embedded engine")
				}
			}
			return nil
		})
	}
	err := g.Wait()

	r.stats.Submitted = int(submitted.Load())
	r.stats.Successful = int(successful.Load())
	r.stats.Failed = int(failed.Load())
	r.stats.Throttled = int(throttled.Load())
	return results, err
}

// checkIdempotence re-submits a sample and requires identical results.
func (r *run) checkIdempotence(ctx context.Context, vectors []*model.RequirementVector, first []*model.Result) error {
	n := min(r.cfg.Idempotence, len(vectors))
	for i := range n {
		if first[i] == nil {
			continue
		}
		var resp Response
		if err := r.client.PostJSON(ctx, "/api/recommendations/generate",
			map[string]any{"requirements": vectors[i]}, &resp); err != nil {
			return err
		}
		if !Same(*first[i], resp.Result) {
			r.violate(i, "repeated request produced a different result")
		}
	}
	return nil
}

// checkBatch sends a prefix of the vectors through the batch endpoint and
// requires the results to match the single-request ones in order.
func (r *run) checkBatch(ctx context.Context, vectors []*model.RequirementVector, single []*model.Result) error {
	n := min(r.cfg.BatchSize, len(vectors))
	if n == 0 {
		return nil
	}
	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Results []model.Result `json:"results"`
			Total   int            `json:"total"`
		} `json:"data"`
	}
	err := r.client.PostJSON(ctx, "/api/recommendations/batch",
		map[string]any{"requirements": vectors[:n]}, &resp)
	var se *StatusError
	if errors.As(err, &se) && se.Code == http.StatusTooManyRequests {
		r.log.Warn(ctx, "batch throttled; skipping batch check")
		return nil
	}
	if err != nil {
		return err
	}
	if resp.Data.Total != n || len(resp.Data.Results) != n {
		r.violate(-1, fmt.Sprintf("batch returned %d results for %d inputs", len(resp.Data.Results), n))
		return nil
	}
	for i, res := range resp.Data.Results {
		if single[i] != nil && !Same(*single[i], res) {
			r.violate(i, "batch result differs from single request")
		}
	}
	return nil
}

// normalize passes a result through JSON so it compares equal to a
// decoded response.
func normalize(res model.Result) model.Result {
	data, err := json.Marshal(res)
	if err != nil {
		return res
	}
	var out model.Result
	if err := json.Unmarshal(data, &out); err != nil {
		return res
	}
	return out
}

func saveVectors(filename string, vectors []*model.RequirementVector) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(vectors, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal vectors: %w", err)
	}
	if err := os.WriteFile(filename, data, filePermission); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	var successRate, perSecond float64
	if stats.Submitted > 0 {
		successRate = float64(stats.Successful) / float64(stats.Submitted) * 100
	}
	if stats.Duration > 0 {
		perSecond = float64(stats.Submitted) / stats.Duration.Seconds()
	}

	log.Info(ctx, "final statistics",
		logger.Int("generated", stats.Generated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("successful", stats.Successful),
		logger.Int("failed", stats.Failed),
		logger.Int("throttled", stats.Throttled),
		logger.Int("violations", len(stats.Violations)),
		logger.Duration("duration", stats.Duration),
		logger.Float64("successRate", successRate),
		logger.Float64("requestsPerSecond", perSecond))
}
