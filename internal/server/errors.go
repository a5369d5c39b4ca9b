// Package server provides the HTTP REST API for the career advisor.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/career-advisor/internal/catalog"
	"github.com/jonathan/career-advisor/internal/schemas"
	"github.com/jonathan/career-advisor/internal/types"
)

// ErrInvalidCredentials indicates the operator password did not match.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid credentials"
}

// ErrCareerNotFound indicates a career id absent from the current catalog.
type ErrCareerNotFound struct {
	ID string
}

func (e *ErrCareerNotFound) Error() string {
	return fmt.Sprintf("career not found: %s", e.ID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrAuthDisabled indicates the server was started without token support.
type ErrAuthDisabled struct{}

func (e *ErrAuthDisabled) Error() string {
	return "authentication is not configured"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		profileErr    *types.ProfileError
		schemaErr     *schemas.ValidationError
		credsErr      *ErrInvalidCredentials
		notFoundErr   *ErrCareerNotFound
		disabledErr   *ErrAuthDisabled
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &profileErr), errors.As(err, &schemaErr):
		return http.StatusBadRequest
	case errors.As(err, &credsErr):
		return http.StatusUnauthorized
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrInvalidCatalog):
		return http.StatusUnprocessableEntity
	case errors.As(err, &disabledErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
