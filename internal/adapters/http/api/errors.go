package api

import (
	"context"
	"errors"
	"net/http"

	service "github.com/okian/archrec/internal/app"
	"github.com/okian/archrec/internal/domain/engine"
	"github.com/okian/archrec/internal/domain/learning"
	"github.com/okian/archrec/internal/domain/questionnaire"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrNotFound     = errors.New("not found")
	ErrBackpressure = errors.New("backpressure")
	ErrRateLimited  = errors.New("rate limited")
	ErrInternal     = errors.New("internal error")
)

// Error records the handler operation and the kind of a failure.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Err == nil:
		return e.Op + ": " + e.Kind.Error()
	case e.Kind == nil:
		return e.Op + ": " + e.Err.Error()
	default:
		return e.Op + ": " + e.Kind.Error() + ": " + e.Err.Error()
	}
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// NewKind returns an error of the given kind with no cause.
func NewKind(op string, kind error) error {
	return &Error{Op: op, Kind: kind}
}

// Wrap attaches op to err. The kind is derived from err by statusFor.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// WrapKind attaches op and kind to err.
func WrapKind(op string, kind, err error) error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// statusFor maps an error chain onto an HTTP status code.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, engine.ErrInvalidRequirements),
		errors.Is(err, questionnaire.ErrInvalidResponses),
		errors.Is(err, questionnaire.ErrMissingQuestions),
		errors.Is(err, questionnaire.ErrInvalidAnswer),
		errors.Is(err, service.ErrEmptyBatch):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound), errors.Is(err, engine.ErrNotFound), errors.Is(err, learning.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBackpressure), errors.Is(err, service.ErrBackpressure), errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
