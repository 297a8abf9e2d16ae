package engine

import (
	"github.com/okian/archrec/internal/domain/catalog"
	"github.com/okian/archrec/internal/domain/reasoning"
	"github.com/okian/archrec/internal/domain/scoring"
	"github.com/okian/archrec/pkg/logger"
)

// Option configures an Engine.
type Option func(*Engine)

// WithCatalogSource sets where the engine reads its catalog snapshot from.
func WithCatalogSource(src catalog.Source) Option {
	return func(e *Engine) {
		if src != nil {
			e.source = src
		}
	}
}

// WithScorer replaces the rule based scorer.
func WithScorer(s scoring.Scorer) Option {
	return func(e *Engine) {
		if s != nil {
			e.scorer = s
		}
	}
}

// WithReasoner replaces the reasoning generator.
func WithReasoner(r reasoning.Reasoner) Option {
	return func(e *Engine) {
		if r != nil {
			e.reasoner = r
		}
	}
}

// WithTopK sets how many recommendations a result carries.
func WithTopK(k int) Option {
	return func(e *Engine) {
		if k > 0 {
			e.topK = k
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}
