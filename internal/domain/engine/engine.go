// Package engine assembles architecture recommendations from the catalog,
// the scorer, the ranker and the reasoning generator.
//
// The engine holds no per-request state. Every call reads the active
// catalog snapshot once and builds its own score map, so any number of
// calls may run concurrently while the catalog is being reloaded.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/okian/archrec/internal/domain/catalog"
	"github.com/okian/archrec/internal/domain/model"
	"github.com/okian/archrec/internal/domain/ranking"
	"github.com/okian/archrec/internal/domain/reasoning"
	"github.com/okian/archrec/internal/domain/scoring"
	"github.com/okian/archrec/pkg/logger"
)

const maxConfidence = 100

// Engine produces recommendation results.
type Engine struct {
	source   catalog.Source
	scorer   scoring.Scorer
	reasoner reasoning.Reasoner
	topK     int
	logger   logger.Logger
}

// New returns an engine over the embedded default catalog unless a
// catalog source is supplied.
func New(opts ...Option) *Engine {
	e := &Engine{
		topK: ranking.DefaultK,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.source == nil {
		e.source = catalog.NewStore(catalog.MustDefault())
	}
	if e.scorer == nil {
		e.scorer = scoring.NewRuleScorer()
	}
	if e.reasoner == nil {
		e.reasoner = reasoning.NewGenerator()
	}
	if e.logger == nil {
		e.logger = logger.Get().Named("engine")
	}
	return e
}

// TopK returns the number of recommendations per result.
func (e *Engine) TopK() int { return e.topK }

// GenerateRecommendation scores every catalog architecture against req and
// returns the top entries. It never panics: an absent vector or an internal
// fault yields a result with Success false.
func (e *Engine) GenerateRecommendation(ctx context.Context, req *model.RequirementVector) model.Result {
	res, err := e.Evaluate(ctx, req)
	if err != nil {
		return Failure(err)
	}
	return res
}

// Evaluate is GenerateRecommendation with the failure cause returned as an
// error wrapping ErrInvalidRequirements or ErrInternal.
func (e *Engine) Evaluate(ctx context.Context, req *model.RequirementVector) (res model.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInternal, r)
			res = model.Result{}
		}
		if err != nil && !errors.Is(err, ErrInvalidRequirements) {
			e.logger.Error(ctx, "recommendation failed", logger.Error(err))
		}
	}()

	if req == nil {
		return model.Result{}, fmt.Errorf("%w: requirements are required", ErrInvalidRequirements)
	}

	c := e.source.Current()
	if c == nil || c.Len() == 0 {
		return model.Result{}, fmt.Errorf("%w: catalog is empty", ErrInternal)
	}

	archs := c.Architectures()
	scores := e.score(*req, archs)

	entries := ranking.TopK(c.IDs(), scores, e.topK)
	recs := make([]model.Recommendation, 0, len(entries))
	for _, entry := range entries {
		arch := archs[c.Position(entry.ID)]
		recs = append(recs, model.Recommendation{
			Rank:           entry.Rank,
			Architecture:   model.Snapshot(arch, entry.Score, Confidence(entry.Score)),
			DesignPatterns: c.PatternsFor(entry.ID),
			Reasoning:      e.reasoner.Explain(*req, arch, entry.Score),
		})
	}

	analysis := Analyze(scores)
	e.logger.Debug(ctx, "recommendation generated",
		logger.Int("evaluated", analysis.TotalEvaluated),
		logger.Int("top_score", analysis.TopScore),
		logger.String("top", string(recs[0].Architecture.Type)))

	return model.Result{
		Success:         true,
		Recommendations: recs,
		Analysis:        &analysis,
	}, nil
}

// Scores returns the raw score of every catalog architecture for req.
func (e *Engine) Scores(req model.RequirementVector) (map[model.ArchitectureID]int, error) {
	c := e.source.Current()
	if c == nil {
		return nil, fmt.Errorf("%w: catalog is empty", ErrInternal)
	}
	return e.score(req, c.Architectures()), nil
}

func (e *Engine) score(req model.RequirementVector, archs []model.ArchitectureProfile) map[model.ArchitectureID]int {
	scores := make(map[model.ArchitectureID]int, len(archs))
	for _, a := range archs {
		scores[a.ID] = max(0, e.scorer.Score(req, a))
	}
	return scores
}

// GetAllArchitectures returns every catalog architecture in catalog order.
// A missing catalog yields an empty list.
func (e *Engine) GetAllArchitectures() []model.ArchitectureProfile {
	c := e.source.Current()
	if c == nil {
		return []model.ArchitectureProfile{}
	}
	return c.Architectures()
}

// GetArchitectureByID looks up one architecture.
func (e *Engine) GetArchitectureByID(id model.ArchitectureID) (model.ArchitectureProfile, error) {
	c := e.source.Current()
	if c == nil {
		return model.ArchitectureProfile{}, fmt.Errorf("%w: architecture %q", ErrNotFound, id)
	}
	a, err := c.Architecture(id)
	if err != nil {
		return model.ArchitectureProfile{}, fmt.Errorf("%w: architecture %q", ErrNotFound, id)
	}
	return a, nil
}

// GetAllDesignPatterns returns every catalog pattern in catalog order.
func (e *Engine) GetAllDesignPatterns() []model.DesignPattern {
	c := e.source.Current()
	if c == nil {
		return []model.DesignPattern{}
	}
	return c.Patterns()
}

// GetPatternByID looks up one design pattern.
func (e *Engine) GetPatternByID(id model.PatternID) (model.DesignPattern, error) {
	c := e.source.Current()
	if c == nil {
		return model.DesignPattern{}, fmt.Errorf("%w: pattern %q", ErrNotFound, id)
	}
	p, err := c.Pattern(id)
	if err != nil {
		return model.DesignPattern{}, fmt.Errorf("%w: pattern %q", ErrNotFound, id)
	}
	return p, nil
}

// GetPatternsFor returns the patterns applicable to id, empty for unknown ids.
func (e *Engine) GetPatternsFor(id model.ArchitectureID) []model.DesignPattern {
	c := e.source.Current()
	if c == nil {
		return []model.DesignPattern{}
	}
	return c.PatternsFor(id)
}

// Confidence clamps a raw score into [0,100].
func Confidence(score int) int {
	return min(maxConfidence, max(0, score))
}

// Analyze summarises a full score map.
func Analyze(scores map[model.ArchitectureID]int) model.Analysis {
	a := model.Analysis{TotalEvaluated: len(scores)}
	if len(scores) == 0 {
		return a
	}
	total := 0
	first := true
	for _, s := range scores {
		total += s
		if first || s > a.TopScore {
			a.TopScore = s
			first = false
		}
	}
	a.AverageScore = float64(total) / float64(len(scores))
	return a
}

// Failure converts err into a failed result.
func Failure(err error) model.Result {
	return model.Result{
		Success: false,
		Error:   FailureMessage,
		Message: err.Error(),
	}
}

