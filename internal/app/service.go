// Package service wires the recommendation engine, the catalog store, the
// questionnaire and the batch worker pool behind the API dependencies.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	jobqueue "github.com/okian/archrec/internal/adapters/mq/queue"
	workerpool "github.com/okian/archrec/internal/adapters/mq/worker"
	"github.com/okian/archrec/internal/domain/catalog"
	"github.com/okian/archrec/internal/domain/engine"
	"github.com/okian/archrec/internal/domain/learning"
	"github.com/okian/archrec/internal/domain/model"
	"github.com/okian/archrec/internal/domain/questionnaire"
	"github.com/okian/archrec/internal/domain/ranking"
	"github.com/okian/archrec/pkg/logger"
	"github.com/okian/archrec/pkg/metrics"
)

const defaultEngineVersion = "1.0.0"

// Service implements the API dependencies for the recommendation system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store         *catalog.Store
	engine        *engine.Engine
	questionnaire *questionnaire.Questionnaire
	learning      *learning.Library
	jobQueue      *jobqueue.InMemoryQueue
	workerPool    *workerpool.Pool

	// Configuration
	workerCount   int
	queueSize     int
	topK          int
	catalogPath   string
	engineVersion string

	// State
	started   bool
	startedAt time.Time
	cancel    context.CancelFunc

	generated atomic.Int64
	failed    atomic.Int64
	batches   atomic.Int64

	logger logger.Logger
}

// New constructs a Service. The engine and the embedded catalog are usable
// immediately; Start loads an override catalog and starts the batch workers.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:   runtime.NumCPU(),
		queueSize:     1024,
		topK:          ranking.DefaultK,
		engineVersion: defaultEngineVersion,
		questionnaire: questionnaire.Default(),
		learning:      learning.MustDefault(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.store = catalog.NewStore(catalog.MustDefault())
	s.engine = engine.New(
		engine.WithCatalogSource(s.store),
		engine.WithTopK(s.topK),
		engine.WithLogger(s.logger.Named("engine")),
	)

	return s
}

// Start loads the configured catalog and starts the worker pool.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.logger.Info(ctx, "starting recommendation service...")

	if s.catalogPath != "" {
		if err := s.reload(ctx); err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
	}
	c := s.store.Current()
	metrics.UpdateCatalogSize(c.Len(), c.PatternCount())
	s.checkComparison(ctx, c)

	// Workers outlive the start request.
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel

	s.jobQueue = jobqueue.NewInMemoryQueue(
		jobqueue.WithCapacity(s.queueSize),
		jobqueue.WithBufferSize(s.queueSize),
	)
	s.workerPool = workerpool.NewPool(s.workerCount, s.jobQueue, s.engine,
		workerpool.WithLogger(s.logger.Named("worker")))
	s.workerPool.Start(runCtx)

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "recommendation service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("architectures", c.Len()),
		logger.Int("patterns", c.PatternCount()),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping recommendation service...")

	if s.workerPool != nil {
		if err := s.workerPool.Shutdown(ctx); err != nil {
			s.logger.Warn(ctx, "worker pool shutdown", logger.Error(err))
		}
	}
	if s.cancel != nil {
		s.cancel()
	}

	s.started = false
	s.logger.Info(ctx, "recommendation service stopped")
}

// EngineVersion returns the version reported in result metadata.
func (s *Service) EngineVersion() string { return s.engineVersion }

// GenerateRecommendation evaluates one requirement vector. The result is
// always populated; err is non-nil for failed results and wraps
// engine.ErrInvalidRequirements or engine.ErrInternal.
func (s *Service) GenerateRecommendation(ctx context.Context, req *model.RequirementVector) (model.Result, error) {
	start := time.Now()
	res, err := s.engine.Evaluate(ctx, req)
	metrics.RecordGenerationLatency(float64(time.Since(start).Microseconds()) / 1000)

	if err != nil {
		s.failed.Add(1)
		status := metrics.StatusFailure
		if errors.Is(err, engine.ErrInvalidRequirements) {
			status = metrics.StatusInvalid
		}
		metrics.RecordRecommendation(status)
		metrics.RecordErrorByComponent("engine", status)
		return engine.Failure(err), err
	}

	s.generated.Add(1)
	metrics.RecordRecommendation(metrics.StatusSuccess)
	for i, r := range res.Recommendations {
		metrics.RecordArchitectureSelected(string(r.Architecture.Type), strconv.Itoa(i+1))
		metrics.RecordArchitectureScore(string(r.Architecture.Type), r.Architecture.Score)
	}
	return res, nil
}

// GenerateBatch evaluates every vector on the worker pool and returns the
// results in input order. A full queue fails the whole batch with
// ErrBackpressure; jobs already queued still run and are discarded.
func (s *Service) GenerateBatch(ctx context.Context, reqs []*model.RequirementVector) ([]model.Result, error) {
	if len(reqs) == 0 {
		return nil, ErrEmptyBatch
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	started, q := s.started, s.jobQueue
	s.mu.RUnlock()
	if !started {
		return nil, ErrNotStarted
	}

	batchID := uuid.NewString()
	reply := make(chan model.JobResult, len(reqs))
	for i, req := range reqs {
		err := q.Enqueue(ctx, jobqueue.Job{BatchID: batchID, Index: i, Requirements: req, Reply: reply})
		switch {
		case err == nil:
		case errors.Is(err, jobqueue.ErrFull):
			s.logger.Warn(ctx, "batch rejected", logger.String("batch_id", batchID), logger.Int("enqueued", i))
			return nil, fmt.Errorf("%w: %d of %d jobs enqueued", ErrBackpressure, i, len(reqs))
		case errors.Is(err, jobqueue.ErrClosed):
			return nil, ErrNotStarted
		default:
			return nil, err
		}
	}

	s.batches.Add(1)
	metrics.RecordBatch(len(reqs))

	results := make([]model.Result, len(reqs))
	for range reqs {
		select {
		case r := <-reply:
			results[r.Index] = r.Result
			if r.Result.Success {
				s.generated.Add(1)
			} else {
				s.failed.Add(1)
			}
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return results, nil
}

// Architectures returns the catalog architectures.
func (s *Service) Architectures() []model.ArchitectureProfile {
	return s.engine.GetAllArchitectures()
}

// Architecture returns one architecture together with its patterns.
func (s *Service) Architecture(id model.ArchitectureID) (model.ArchitectureProfile, []model.DesignPattern, error) {
	a, err := s.engine.GetArchitectureByID(id)
	if err != nil {
		return model.ArchitectureProfile{}, nil, err
	}
	return a, s.engine.GetPatternsFor(id), nil
}

// Patterns returns the catalog design patterns.
func (s *Service) Patterns() []model.DesignPattern {
	return s.engine.GetAllDesignPatterns()
}

// Pattern returns one design pattern.
func (s *Service) Pattern(id model.PatternID) (model.DesignPattern, error) {
	return s.engine.GetPatternByID(id)
}

// Questions returns the questionnaire.
func (s *Service) Questions() []questionnaire.Question {
	return s.questionnaire.Questions()
}

// Categories returns the questionnaire categories.
func (s *Service) Categories() []questionnaire.Category {
	return s.questionnaire.Categories()
}

// SubmitQuestionnaire maps responses onto a requirement vector.
func (s *Service) SubmitQuestionnaire(ctx context.Context, responses []questionnaire.Response) (*model.RequirementVector, error) {
	req, err := s.questionnaire.Submit(responses)
	if err != nil {
		metrics.RecordQuestionnaireSubmission(metrics.StatusInvalid)
		s.logger.Debug(ctx, "questionnaire rejected", logger.Error(err))
		return nil, err
	}
	metrics.RecordQuestionnaireSubmission(metrics.StatusSuccess)
	return req, nil
}

// LearningHub returns the learning hub landing content.
func (s *Service) LearningHub() learning.Hub {
	return s.learning.Hub()
}

// CaseStudies returns the case studies matching f and every category.
func (s *Service) CaseStudies(f learning.CaseStudyFilter) ([]learning.CaseStudy, []string) {
	return s.learning.CaseStudies(f), s.learning.CaseStudyCategories()
}

// CaseStudy returns one case study.
func (s *Service) CaseStudy(id string) (learning.CaseStudy, error) {
	return s.learning.CaseStudy(id)
}

// BestPractices returns the practice groups for category, or all of them
// when category is empty, together with every category.
func (s *Service) BestPractices(category string) ([]learning.BestPractice, []string) {
	return s.learning.BestPractices(category), s.learning.BestPracticeCategories()
}

// Comparison returns the architecture comparison table.
func (s *Service) Comparison() learning.Comparison {
	return s.learning.Comparison()
}

// checkComparison warns when the comparison table lacks a column for an
// architecture of the active catalog.
func (s *Service) checkComparison(ctx context.Context, c *catalog.Catalog) {
	if missing := s.learning.Unrated(c.IDs()); len(missing) > 0 {
		ids := make([]string, len(missing))
		for i, id := range missing {
			ids[i] = string(id)
		}
		s.logger.Warn(ctx, "comparison table does not rate every architecture",
			logger.Any("architectures", ids))
	}
}

// ReloadCatalog re-reads the catalog source. On failure the active
// catalog is kept.
func (s *Service) ReloadCatalog(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reload(ctx)
}

func (s *Service) reload(ctx context.Context) error {
	c, err := s.store.Reload(ctx, s.catalogPath)
	if err != nil {
		metrics.RecordCatalogReload(metrics.StatusFailure)
		s.logger.Error(ctx, "catalog reload failed",
			logger.String("path", s.catalogPath), logger.Error(err))
		return err
	}
	metrics.RecordCatalogReload(metrics.StatusSuccess)
	metrics.UpdateCatalogSize(c.Len(), c.PatternCount())
	s.checkComparison(ctx, c)
	s.logger.Info(ctx, "catalog loaded",
		logger.String("path", s.catalogPath),
		logger.Int("architectures", c.Len()),
		logger.Int("patterns", c.PatternCount()))
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := s.store.Current()
	stats := map[string]interface{}{
		"started":            s.started,
		"workerCount":        s.workerCount,
		"queueSize":          s.queueSize,
		"maxRecommendations": s.topK,
		"engineVersion":      s.engineVersion,
		"architectures":      c.Len(),
		"patterns":           c.PatternCount(),
		"generated":          s.generated.Load(),
		"failed":             s.failed.Load(),
		"batches":            s.batches.Load(),
	}

	if s.started {
		stats["queueLength"] = s.jobQueue.Len(context.Background())
		stats["processedJobs"] = s.workerPool.Processed()
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}
