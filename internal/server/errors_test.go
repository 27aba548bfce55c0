package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/resume-structurer/internal/ingestion"
	"github.com/jonathan/resume-structurer/internal/resumes"
	"github.com/jonathan/resume-structurer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "id", Message: "invalid format"}
	assert.Equal(t, "validation error: id - invalid format", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	fieldErr := (&types.ParseRequest{Source: string(make([]byte, 300))}).Validate()
	require.Error(t, fieldErr)

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "validation", err: &ErrValidation{Field: "f", Message: "m"}, expected: http.StatusBadRequest},
		{name: "validator field errors", err: fieldErr, expected: http.StatusBadRequest},
		{name: "body too large", err: &http.MaxBytesError{Limit: 10}, expected: http.StatusRequestEntityTooLarge},
		{name: "unsupported format", err: &ingestion.UnsupportedFormatError{Source: "a.exe", Format: "exe"}, expected: http.StatusUnsupportedMediaType},
		{name: "extraction failure", err: &ingestion.ExtractionError{Source: "a.pdf", Message: "bad"}, expected: http.StatusUnprocessableEntity},
		{name: "not found", err: resumes.ErrNotFound, expected: http.StatusNotFound},
		{name: "wrapped not found", err: fmt.Errorf("lookup: %w", resumes.ErrNotFound), expected: http.StatusNotFound},
		{name: "no store", err: resumes.ErrNoStore, expected: http.StatusServiceUnavailable},
		{name: "unknown", err: errors.New("boom"), expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	fieldErr := (&types.ParseRequest{Source: string(make([]byte, 300))}).Validate()
	assert.Equal(t, "validation error: source: failed max", ErrorMessage(fieldErr))

	assert.Equal(t, "resume not found", ErrorMessage(resumes.ErrNotFound))
}
