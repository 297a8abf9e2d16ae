package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/okian/archrec/internal/domain/model"
	"github.com/okian/archrec/internal/domain/questionnaire"
)

// QuestionnaireHandler serves the questionnaire routes.
type QuestionnaireHandler struct {
	deps       QuestionnaireService
	production bool
}

// NewQuestionnaireHandler creates a new questionnaire handler.
func NewQuestionnaireHandler(deps QuestionnaireService, production bool) *QuestionnaireHandler {
	return &QuestionnaireHandler{deps: deps, production: production}
}

type questionsResponse struct {
	Questions      []questionnaire.Question `json:"questions"`
	TotalQuestions int                      `json:"totalQuestions"`
	Categories     []questionnaire.Category `json:"categories"`
}

// HandleQuestions handles GET /api/questionnaire/questions.
func (h *QuestionnaireHandler) HandleQuestions(w http.ResponseWriter, _ *http.Request) {
	qs := h.deps.Questions()
	writeData(w, questionsResponse{
		Questions:      qs,
		TotalQuestions: len(qs),
		Categories:     h.deps.Categories(),
	})
}

type submitRequest struct {
	Responses []questionnaire.Response `json:"responses" validate:"required,min=1,dive"`
}

type submitResponse struct {
	Requirements   *model.RequirementVector `json:"requirements"`
	ProcessedAt    time.Time                `json:"processedAt"`
	TotalResponses int                      `json:"totalResponses"`
}

// HandleSubmit handles POST /api/questionnaire/submit.
func (h *QuestionnaireHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit_questionnaire"

	var body submitRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, "Invalid responses format", Wrap(op, err), h.production)
		return
	}
	if err := validateResponses(&body); err != nil {
		writeError(w, "Invalid responses format", Wrap(op, err), h.production)
		return
	}

	req, err := h.deps.SubmitQuestionnaire(r.Context(), body.Responses)
	if err != nil {
		writeError(w, submitMessage(err), Wrap(op, err), h.production)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Questionnaire submitted successfully",
		Data: submitResponse{
			Requirements:   req,
			ProcessedAt:    time.Now().UTC(),
			TotalResponses: len(body.Responses),
		},
	})
}

func submitMessage(err error) string {
	switch {
	case errors.Is(err, questionnaire.ErrMissingQuestions):
		return "Missing required questions"
	case errors.Is(err, questionnaire.ErrInvalidAnswer):
		return "Invalid answer"
	case errors.Is(err, questionnaire.ErrInvalidResponses):
		return "Invalid responses format"
	default:
		return "Failed to submit questionnaire"
	}
}
