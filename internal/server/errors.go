package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-structurer/internal/ingestion"
	"github.com/jonathan/resume-structurer/internal/resumes"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		fieldErrs     validator.ValidationErrors
		tooLarge      *http.MaxBytesError
		unsupported   *ingestion.UnsupportedFormatError
		extraction    *ingestion.ExtractionError
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &fieldErrs):
		return http.StatusBadRequest
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &extraction):
		return http.StatusUnprocessableEntity
	case errors.Is(err, resumes.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, resumes.ErrNoStore):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrorMessage renders err for a client. Validator field errors are listed
// as "field: rule" pairs.
func ErrorMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		parts := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			parts = append(parts, fmt.Sprintf("%s: failed %s", strings.ToLower(fe.Field()), fe.Tag()))
		}
		return "validation error: " + strings.Join(parts, "; ")
	}
	return err.Error()
}
