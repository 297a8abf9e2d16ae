// Package questionnaire turns answers to the fixed question set into a
// requirement vector.
package questionnaire

import (
	"fmt"

	"github.com/okian/archrec/internal/domain/model"
)

// Option is one selectable answer.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Question is one questionnaire entry.
type Question struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Type     string   `json:"type"`
	Options  []Option `json:"options"`
	Required bool     `json:"required"`
	Category Category `json:"category"`
}

func (q Question) accepts(answer string) bool {
	for _, o := range q.Options {
		if o.Value == answer {
			return true
		}
	}
	return false
}

// Response is the answer to one question.
type Response struct {
	QuestionID int    `json:"questionId" validate:"required,gt=0"`
	Answer     string `json:"answer" validate:"required"`
}

// Questionnaire holds an immutable question set.
type Questionnaire struct {
	questions []Question
	byID      map[int]int
}

// Default returns the standard eight-question set.
func Default() *Questionnaire {
	return New(defaultQuestions())
}

// New builds a questionnaire over qs.
func New(qs []Question) *Questionnaire {
	q := &Questionnaire{
		questions: qs,
		byID:      make(map[int]int, len(qs)),
	}
	for i, question := range qs {
		q.byID[question.ID] = i
	}
	return q
}

// Questions returns a copy of the question set.
func (q *Questionnaire) Questions() []Question {
	out := make([]Question, len(q.questions))
	for i, question := range q.questions {
		question.Options = append([]Option(nil), question.Options...)
		out[i] = question
	}
	return out
}

// Categories returns the question categories in question order.
func (q *Questionnaire) Categories() []Category {
	out := make([]Category, 0, len(q.questions))
	for _, question := range q.questions {
		out = append(out, question.Category)
	}
	return out
}

// Submit validates responses and maps them onto a requirement vector.
// Unknown question ids are ignored. When a question is answered more than
// once the last answer wins.
func (q *Questionnaire) Submit(responses []Response) (*model.RequirementVector, error) {
	if len(responses) == 0 {
		return nil, ErrInvalidResponses
	}

	answers := make(map[int]string, len(responses))
	for _, r := range responses {
		i, ok := q.byID[r.QuestionID]
		if !ok {
			continue
		}
		if !q.questions[i].accepts(r.Answer) {
			return nil, &InvalidAnswerError{QuestionID: r.QuestionID, Answer: r.Answer}
		}
		answers[r.QuestionID] = r.Answer
	}

	var missing []int
	for _, question := range q.questions {
		if _, ok := answers[question.ID]; question.Required && !ok {
			missing = append(missing, question.ID)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingQuestionsError{IDs: missing}
	}

	req := &model.RequirementVector{}
	for _, question := range q.questions {
		answer, ok := answers[question.ID]
		if !ok {
			continue
		}
		if err := assign(req, question.Category, answer); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// assign maps a category onto its requirement dimension. traffic feeds
// userTraffic and team feeds teamSize; every other category maps 1:1.
func assign(req *model.RequirementVector, c Category, answer string) error {
	switch c {
	case CategoryTraffic:
		req.UserTraffic = model.Traffic(answer)
	case CategoryComplexity:
		req.Complexity = model.Level(answer)
	case CategoryTeam:
		req.TeamSize = model.TeamSize(answer)
	case CategoryScalability:
		req.Scalability = model.Level(answer)
	case CategoryBudget:
		req.Budget = model.Level(answer)
	case CategorySecurity:
		req.Security = model.Ptr(model.Level(answer))
	case CategoryMaintenance:
		req.Maintenance = model.Ptr(model.Level(answer))
	case CategoryDeployment:
		req.Deployment = model.Ptr(model.Deployment(answer))
	default:
		return fmt.Errorf("%w: unknown category %q", ErrInvalidAnswer, c)
	}
	return nil
}
