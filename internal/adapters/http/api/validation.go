package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/okian/archrec/internal/domain/model"
)

// singleton validator instance
var (
	validate     *validator.Validate //nolint:gochecknoglobals // caches struct metadata
	validateOnce sync.Once           //nolint:gochecknoglobals // guards validate
)

// getValidator returns the shared validator. Field names in errors use the
// JSON names so they can be reported back to clients as-is.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// RequirementsError lists the requirement fields that are missing or hold
// a value outside their domain.
type RequirementsError struct {
	Missing []string
	Invalid []string
}

func (e *RequirementsError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required fields: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid values for: "+strings.Join(e.Invalid, ", "))
	}
	return strings.Join(parts, "; ")
}

func (e *RequirementsError) Unwrap() error { return ErrBadRequest }

// validateRequirements checks presence of the five mandatory dimensions and
// the value domain of every dimension.
func validateRequirements(req *model.RequirementVector) error {
	if req == nil {
		return fmt.Errorf("%w: requirements are required", ErrBadRequest)
	}
	err := getValidator().Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}

	out := &RequirementsError{}
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			out.Missing = append(out.Missing, fe.Field())
		} else {
			out.Invalid = append(out.Invalid, fe.Field())
		}
	}
	return out
}

// validateResponses checks the structural shape of questionnaire responses.
// Answer domains are checked by the questionnaire itself.
func validateResponses(v any) error {
	if err := getValidator().Struct(v); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return fmt.Errorf("%w: %s failed %s", ErrBadRequest, fieldErrs[0].Namespace(), fieldErrs[0].Tag())
		}
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return nil
}
