package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-roadmap/internal/ingestion"
	"github.com/jonathan/career-roadmap/internal/ranking"
	"github.com/jonathan/career-roadmap/internal/types"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"validation", &ErrValidation{Field: "skills", Message: "too many"}, http.StatusBadRequest},
		{"ingestion", &ingestion.Error{Source: "x.zip", Message: "bad zip"}, http.StatusBadRequest},
		{"not found", &ErrNotFound{Resource: "output"}, http.StatusNotFound},
		{"empty corpus", ranking.ErrEmptyCorpus, http.StatusServiceUnavailable},
		{"wrapped empty corpus", fmt.Errorf("generate: %w", ranking.ErrEmptyCorpus), http.StatusServiceUnavailable},
		{"too large", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge},
		{"unknown", assert.AnError, http.StatusInternalServerError},
		{"nil", nil, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestErrValidation_Error(t *testing.T) {
	assert.Equal(t, "validation error: file - required", (&ErrValidation{Field: "file", Message: "required"}).Error())
	assert.Equal(t, "validation error: bad body", (&ErrValidation{Message: "bad body"}).Error())
}

func TestValidationError_FromValidator(t *testing.T) {
	req := types.GenerateRequest{Answers: []types.QuizAnswer{{Type: "E"}}}
	err := req.Validate()
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	ve := validationError(err)
	assert.Equal(t, "Answers[0].Type", ve.Field)
	assert.Contains(t, ve.Message, "oneof")
}
