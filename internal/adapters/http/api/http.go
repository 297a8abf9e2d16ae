// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/okian/archrec/internal/domain/model"
	"github.com/okian/archrec/internal/domain/questionnaire"
	"github.com/okian/archrec/pkg/logger"
)

const (
	maxBodyBytes        = 1 << 20
	defaultMaxBatchSize = 100
	defaultTimeout      = 10 * time.Second
)

// RecommendationService generates recommendations and serves the catalog.
type RecommendationService interface {
	GenerateRecommendation(ctx context.Context, req *model.RequirementVector) (model.Result, error)
	GenerateBatch(ctx context.Context, reqs []*model.RequirementVector) ([]model.Result, error)
	Architectures() []model.ArchitectureProfile
	Architecture(id model.ArchitectureID) (model.ArchitectureProfile, []model.DesignPattern, error)
	Patterns() []model.DesignPattern
	Pattern(id model.PatternID) (model.DesignPattern, error)
	EngineVersion() string
}

// QuestionnaireService serves the questionnaire.
type QuestionnaireService interface {
	Questions() []questionnaire.Question
	Categories() []questionnaire.Category
	SubmitQuestionnaire(ctx context.Context, responses []questionnaire.Response) (*model.RequirementVector, error)
}

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	RecommendationService
	QuestionnaireService
	LearningService
	StatsProvider
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler         *HealthHandler
	statsHandler          *StatsHandler
	rootHandler           *RootHandler
	questionnaireHandler  *QuestionnaireHandler
	recommendationHandler *RecommendationHandler
	catalogHandler        *CatalogHandler
	learningHandler       *LearningHandler

	corsOrigins []string
	limiter     *RateLimiter
	production  bool
	logger      logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	cfg := serverConfig{
		maxBatchSize: defaultMaxBatchSize,
		timeout:      defaultTimeout,
		logger:       logger.Get().Named("api"),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Server{
		healthHandler:        NewHealthHandler(),
		statsHandler:         NewStatsHandler(deps),
		rootHandler:          NewRootHandler(deps.EngineVersion()),
		questionnaireHandler: NewQuestionnaireHandler(deps, cfg.production),
		recommendationHandler: NewRecommendationHandler(deps,
			cfg.maxBatchSize, cfg.timeout, cfg.production),
		catalogHandler:  NewCatalogHandler(deps),
		learningHandler: NewLearningHandler(deps),
		corsOrigins:     cfg.corsOrigins,
		production:      cfg.production,
		logger:          cfg.logger,
	}
	if cfg.rateRPS > 0 {
		s.limiter = NewRateLimiter(cfg.rateRPS, cfg.rateBurst)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /metrics", MetricsMiddleware(s.healthHandler.HandleHealth, "metrics"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("GET /api/questionnaire/questions",
		MetricsMiddleware(s.questionnaireHandler.HandleQuestions, "questionnaire_questions"))
	mux.HandleFunc("POST /api/questionnaire/submit",
		MetricsMiddleware(s.questionnaireHandler.HandleSubmit, "questionnaire_submit"))

	mux.HandleFunc("POST /api/recommendations/generate",
		MetricsMiddleware(s.recommendationHandler.HandleGenerate, "recommendations_generate"))
	mux.HandleFunc("POST /api/recommendations/batch",
		MetricsMiddleware(s.recommendationHandler.HandleBatch, "recommendations_batch"))

	mux.HandleFunc("GET /api/recommendations/architectures",
		MetricsMiddleware(s.catalogHandler.HandleArchitectures, "architectures"))
	mux.HandleFunc("GET /api/recommendations/architecture/{id}",
		MetricsMiddleware(s.catalogHandler.HandleArchitecture, "architecture"))
	mux.HandleFunc("GET /api/recommendations/patterns",
		MetricsMiddleware(s.catalogHandler.HandlePatterns, "patterns"))
	mux.HandleFunc("GET /api/recommendations/pattern/{id}",
		MetricsMiddleware(s.catalogHandler.HandlePattern, "pattern"))

	mux.HandleFunc("GET /api/learning/hub",
		MetricsMiddleware(s.learningHandler.HandleHub, "learning_hub"))
	mux.HandleFunc("GET /api/learning/case-studies",
		MetricsMiddleware(s.learningHandler.HandleCaseStudies, "learning_case_studies"))
	mux.HandleFunc("GET /api/learning/case-study/{id}",
		MetricsMiddleware(s.learningHandler.HandleCaseStudy, "learning_case_study"))
	mux.HandleFunc("GET /api/learning/best-practices",
		MetricsMiddleware(s.learningHandler.HandleBestPractices, "learning_best_practices"))
	mux.HandleFunc("GET /api/learning/comparison",
		MetricsMiddleware(s.learningHandler.HandleComparison, "learning_comparison"))

	// Catch-all: the banner on "/" and the JSON 404 everywhere else.
	mux.HandleFunc("/", MetricsMiddleware(s.rootHandler.HandleRoot, "root"))
}

// Handler wraps next with the server middleware chain:
// recovery, request id, CORS, rate limit.
func (s *Server) Handler(next http.Handler) http.Handler {
	h := next
	if s.limiter != nil {
		h = RateLimitMiddleware(s.limiter)(h)
	}
	h = CORSMiddleware(s.corsOrigins)(h)
	h = RequestIDMiddleware(h)
	h = RecoveryMiddleware(s.logger, s.production)(h)
	return h
}

// Close releases background resources held by the middleware.
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}

// envelope is the common JSON response shape.
type envelope struct {
	Success          bool     `json:"success"`
	Data             any      `json:"data,omitempty"`
	Message          string   `json:"message,omitempty"`
	Error            string   `json:"error,omitempty"`
	MissingFields    []string `json:"missingFields,omitempty"`
	InvalidFields    []string `json:"invalidFields,omitempty"`
	MissingQuestions []int    `json:"missingQuestions,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

// writeError writes a failure envelope. Internal error details are hidden
// in production.
func writeError(w http.ResponseWriter, message string, err error, production bool) {
	status := statusFor(err)
	body := envelope{Success: false, Message: message}
	if err != nil {
		body.Error = err.Error()
		if production && status >= http.StatusInternalServerError {
			body.Error = "Internal server error"
		}
	}

	var reqErr *RequirementsError
	if errors.As(err, &reqErr) {
		body.MissingFields = reqErr.Missing
		body.InvalidFields = reqErr.Invalid
	}
	var missing *questionnaire.MissingQuestionsError
	if errors.As(err, &missing) {
		body.MissingQuestions = missing.IDs
	}

	writeJSON(w, status, body)
}

// decodeJSON reads a size-limited JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", ErrBadRequest)
		}
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return nil
}
