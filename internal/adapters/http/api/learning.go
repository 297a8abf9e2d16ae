package api

import (
	"net/http"

	"github.com/okian/archrec/internal/domain/learning"
)

// LearningService serves the educational content.
type LearningService interface {
	LearningHub() learning.Hub
	CaseStudies(f learning.CaseStudyFilter) ([]learning.CaseStudy, []string)
	CaseStudy(id string) (learning.CaseStudy, error)
	BestPractices(category string) ([]learning.BestPractice, []string)
	Comparison() learning.Comparison
}

// LearningHandler serves the learning hub routes.
type LearningHandler struct {
	deps LearningService
}

// NewLearningHandler creates a new learning handler.
func NewLearningHandler(deps LearningService) *LearningHandler {
	return &LearningHandler{deps: deps}
}

type caseStudiesResponse struct {
	CaseStudies []learning.CaseStudy `json:"caseStudies"`
	Total       int                  `json:"total"`
	Categories  []string             `json:"categories"`
}

type caseStudyResponse struct {
	CaseStudy learning.CaseStudy `json:"caseStudy"`
}

type bestPracticesResponse struct {
	BestPractices []learning.BestPractice `json:"bestPractices"`
	Total         int                     `json:"total"`
	Categories    []string                `json:"categories"`
}

// HandleHub handles GET /api/learning/hub.
func (h *LearningHandler) HandleHub(w http.ResponseWriter, _ *http.Request) {
	writeData(w, h.deps.LearningHub())
}

// HandleCaseStudies handles GET /api/learning/case-studies. The optional
// category and company query parameters narrow the list.
func (h *LearningHandler) HandleCaseStudies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	studies, categories := h.deps.CaseStudies(learning.CaseStudyFilter{
		Category: q.Get("category"),
		Company:  q.Get("company"),
	})
	writeData(w, caseStudiesResponse{CaseStudies: studies, Total: len(studies), Categories: categories})
}

// HandleCaseStudy handles GET /api/learning/case-study/{id}.
func (h *LearningHandler) HandleCaseStudy(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_case_study"
	c, err := h.deps.CaseStudy(r.PathValue("id"))
	if err != nil {
		writeJSON(w, statusFor(Wrap(op, err)), envelope{Success: false, Message: "Case study not found"})
		return
	}
	writeData(w, caseStudyResponse{CaseStudy: c})
}

// HandleBestPractices handles GET /api/learning/best-practices.
func (h *LearningHandler) HandleBestPractices(w http.ResponseWriter, r *http.Request) {
	practices, categories := h.deps.BestPractices(r.URL.Query().Get("category"))
	writeData(w, bestPracticesResponse{BestPractices: practices, Total: len(practices), Categories: categories})
}

// HandleComparison handles GET /api/learning/comparison.
func (h *LearningHandler) HandleComparison(w http.ResponseWriter, _ *http.Request) {
	writeData(w, h.deps.Comparison())
}
