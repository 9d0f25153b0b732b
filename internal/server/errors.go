package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/ats-coach/internal/coach"
	"github.com/jonathan/ats-coach/internal/ingestion"
	"github.com/jonathan/ats-coach/internal/parsing"
	"github.com/jonathan/ats-coach/internal/pipeline"
	"github.com/jonathan/ats-coach/internal/session"
)

// Request errors.
var (
	ErrNoSession          = errors.New("no session: run an analysis first")
	ErrAnalysisRequired   = errors.New("no analysis in this session: upload a job posting and résumé first")
	ErrProfessionRequired = errors.New("profession confidence is low: confirm your profession before chatting")
	ErrUploadTooLarge     = errors.New("uploaded file is too large")
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
	var validation *ErrValidation
	var parsed *parsing.ValidationError
	var fieldErrs validator.ValidationErrors

	switch {
	case errors.As(err, &validation), errors.As(err, &parsed), errors.As(err, &fieldErrs),
		errors.Is(err, coach.ErrEmptyQuestion),
		errors.Is(err, ingestion.ErrInvalidURL),
		errors.Is(err, pipeline.ErrNoJobSource):
		return http.StatusBadRequest
	case errors.Is(err, ErrNoSession), errors.Is(err, session.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAnalysisRequired), errors.Is(err, ErrProfessionRequired):
		return http.StatusConflict
	case errors.Is(err, ErrUploadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ingestion.ErrUnsupportedDocument):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ingestion.ErrEmptyDocument),
		errors.Is(err, ingestion.ErrContentExtractionFailed),
		errors.Is(err, pipeline.ErrEmptyInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ingestion.ErrHTTPRequestFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
