// Package server provides the HTTP REST API for parsing and rendering resumes.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/maelle/smartcv/internal/compile"
	"github.com/maelle/smartcv/internal/extraction"
	"github.com/maelle/smartcv/internal/ingestion"
	"github.com/maelle/smartcv/internal/normalize"
	"github.com/maelle/smartcv/internal/schemas"
)

// ErrInvalidCredentials indicates a failed password check at login.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid password"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus maps a pipeline or auth error to the HTTP status it should be
// served with. Unknown errors are internal.
func HTTPStatus(err error) int {
	var invalidCredentials *ErrInvalidCredentials
	if errors.As(err, &invalidCredentials) {
		return http.StatusUnauthorized
	}
	var validation *ErrValidation
	if errors.As(err, &validation) {
		return http.StatusBadRequest
	}

	var extractionErr *extraction.ExtractionError
	if errors.As(err, &extractionErr) {
		switch extractionErr.Kind {
		case extraction.KindUpstreamUnavailable, extraction.KindMalformedResponse:
			return http.StatusBadGateway
		case extraction.KindInvalidRecord:
			return http.StatusUnprocessableEntity
		}
	}

	// A record the client supplied (or edited) that fails the schema is the
	// client's to fix.
	var missingField *normalize.MissingFieldError
	var decodeErr *normalize.DecodeError
	var schemaErr *schemas.ValidationError
	if errors.As(err, &missingField) || errors.As(err, &decodeErr) || errors.As(err, &schemaErr) {
		return http.StatusUnprocessableEntity
	}

	var unreadable *ingestion.UnreadableError
	if errors.As(err, &unreadable) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ingestion.ErrHTTPRequestFailed) || errors.Is(err, ingestion.ErrContentExtractionFailed) {
		return http.StatusBadGateway
	}

	var compileErr *compile.CompilationError
	if errors.As(err, &compileErr) {
		return http.StatusUnprocessableEntity
	}
	var compileTimeout *compile.TimeoutError
	if errors.As(err, &compileTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}

	return http.StatusInternalServerError
}
