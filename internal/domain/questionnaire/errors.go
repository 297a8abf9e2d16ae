package questionnaire

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidResponses is returned for a nil or empty response list.
	ErrInvalidResponses = errors.New("invalid responses format")
	// ErrMissingQuestions is returned when a required question is unanswered.
	ErrMissingQuestions = errors.New("missing required questions")
	// ErrInvalidAnswer is returned when an answer is not one of the question's options.
	ErrInvalidAnswer = errors.New("invalid answer")
)

// MissingQuestionsError lists the unanswered required question ids.
type MissingQuestionsError struct {
	IDs []int
}

func (e *MissingQuestionsError) Error() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = strconv.Itoa(id)
	}
	return fmt.Sprintf("%s: %s", ErrMissingQuestions, strings.Join(ids, ","))
}

func (e *MissingQuestionsError) Unwrap() error { return ErrMissingQuestions }

// InvalidAnswerError names the question whose answer was rejected.
type InvalidAnswerError struct {
	QuestionID int
	Answer     string
}

func (e *InvalidAnswerError) Error() string {
	return fmt.Sprintf("%s %q for question %d", ErrInvalidAnswer, e.Answer, e.QuestionID)
}

func (e *InvalidAnswerError) Unwrap() error { return ErrInvalidAnswer }
