package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/archrec/internal/domain/model"
)

// RecommendationHandler serves the recommendation routes.
type RecommendationHandler struct {
	deps         RecommendationService
	maxBatchSize int
	timeout      time.Duration
	production   bool
}

// NewRecommendationHandler creates a new recommendation handler.
func NewRecommendationHandler(deps RecommendationService, maxBatchSize int, timeout time.Duration, production bool) *RecommendationHandler {
	return &RecommendationHandler{
		deps:         deps,
		maxBatchSize: maxBatchSize,
		timeout:      timeout,
		production:   production,
	}
}

type generateRequest struct {
	Requirements *model.RequirementVector `json:"requirements"`
}

// Metadata accompanies a generated result.
type Metadata struct {
	GeneratedAt   time.Time                `json:"generatedAt"`
	Requirements  *model.RequirementVector `json:"requirements"`
	EngineVersion string                   `json:"engineVersion"`
	// Confidence is the top score over the whole catalog.
	Confidence int    `json:"confidence"`
	RequestID  string `json:"requestId,omitempty"`
}

type generateResponse struct {
	model.Result
	Metadata Metadata `json:"metadata"`
}

// HandleGenerate handles POST /api/recommendations/generate.
func (h *RecommendationHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	const op = "api.generate_recommendation"

	var body generateRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, "Invalid requirements format", Wrap(op, err), h.production)
		return
	}
	if body.Requirements == nil {
		writeError(w, "Invalid requirements format", NewKind(op, ErrBadRequest), h.production)
		return
	}
	if err := validateRequirements(body.Requirements); err != nil {
		writeError(w, requirementsMessage(err), Wrap(op, err), h.production)
		return
	}

	res, err := h.deps.GenerateRecommendation(r.Context(), body.Requirements)
	if err != nil {
		writeError(w, "Failed to generate recommendation", Wrap(op, err), h.production)
		return
	}

	meta := Metadata{
		GeneratedAt:   time.Now().UTC(),
		Requirements:  body.Requirements,
		EngineVersion: h.deps.EngineVersion(),
		RequestID:     RequestIDFrom(r.Context()),
	}
	if res.Analysis != nil {
		meta.Confidence = res.Analysis.TopScore
	}
	writeJSON(w, http.StatusOK, generateResponse{Result: res, Metadata: meta})
}

type batchRequest struct {
	Requirements []*model.RequirementVector `json:"requirements"`
}

type batchResponse struct {
	Results []model.Result `json:"results"`
	Total   int            `json:"total"`
}

// HandleBatch handles POST /api/recommendations/batch.
func (h *RecommendationHandler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.generate_batch"

	var body batchRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, "Invalid requirements format", Wrap(op, err), h.production)
		return
	}
	switch n := len(body.Requirements); {
	case n == 0:
		writeError(w, "Invalid requirements format", WrapKind(op, ErrBadRequest, fmt.Errorf("batch is empty")), h.production)
		return
	case n > h.maxBatchSize:
		writeError(w, "Batch too large",
			WrapKind(op, ErrBadRequest, fmt.Errorf("%d requirement sets exceed the limit of %d", n, h.maxBatchSize)), h.production)
		return
	}
	for i, req := range body.Requirements {
		if err := validateRequirements(req); err != nil {
			writeError(w, fmt.Sprintf("Invalid requirements at index %d", i), Wrap(op, err), h.production)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	results, err := h.deps.GenerateBatch(ctx, body.Requirements)
	if err != nil {
		writeError(w, "Failed to generate recommendations", Wrap(op, err), h.production)
		return
	}
	writeData(w, batchResponse{Results: results, Total: len(results)})
}

func requirementsMessage(err error) string {
	var re *RequirementsError
	if errors.As(err, &re) && len(re.Missing) > 0 {
		return "Missing required fields"
	}
	return "Invalid requirements format"
}
