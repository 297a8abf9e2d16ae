package api

import (
	"net/http"

	"github.com/okian/archrec/internal/domain/model"
)

// CatalogHandler serves architecture and pattern lookups.
type CatalogHandler struct {
	deps RecommendationService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(deps RecommendationService) *CatalogHandler {
	return &CatalogHandler{deps: deps}
}

type architecturesResponse struct {
	Architectures []model.ArchitectureProfile `json:"architectures"`
	Total         int                         `json:"total"`
}

type architectureResponse struct {
	Architecture    model.ArchitectureProfile `json:"architecture"`
	RelatedPatterns []model.DesignPattern     `json:"relatedPatterns"`
}

type patternsResponse struct {
	Patterns []model.DesignPattern `json:"patterns"`
	Total    int                   `json:"total"`
}

type patternResponse struct {
	Pattern model.DesignPattern `json:"pattern"`
}

// HandleArchitectures handles GET /api/recommendations/architectures.
func (h *CatalogHandler) HandleArchitectures(w http.ResponseWriter, _ *http.Request) {
	archs := h.deps.Architectures()
	writeData(w, architecturesResponse{Architectures: archs, Total: len(archs)})
}

// HandleArchitecture handles GET /api/recommendations/architecture/{id}.
func (h *CatalogHandler) HandleArchitecture(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_architecture"
	a, related, err := h.deps.Architecture(model.ArchitectureID(r.PathValue("id")))
	if err != nil {
		writeJSON(w, statusFor(Wrap(op, err)), envelope{Success: false, Message: "Architecture not found"})
		return
	}
	writeData(w, architectureResponse{Architecture: a, RelatedPatterns: related})
}

// HandlePatterns handles GET /api/recommendations/patterns.
func (h *CatalogHandler) HandlePatterns(w http.ResponseWriter, _ *http.Request) {
	ps := h.deps.Patterns()
	writeData(w, patternsResponse{Patterns: ps, Total: len(ps)})
}

// HandlePattern handles GET /api/recommendations/pattern/{id}.
func (h *CatalogHandler) HandlePattern(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_pattern"
	p, err := h.deps.Pattern(model.PatternID(r.PathValue("id")))
	if err != nil {
		writeJSON(w, statusFor(Wrap(op, err)), envelope{Success: false, Message: "Design pattern not found"})
		return
	}
	writeData(w, patternResponse{Pattern: p})
}
