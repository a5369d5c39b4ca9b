package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/career-advisor/internal/catalog"
	"github.com/jonathan/career-advisor/internal/schemas"
	"github.com/jonathan/career-advisor/internal/types"
)

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "invalid credentials", (&ErrInvalidCredentials{}).Error())
	assert.Equal(t, "career not found: nurse", (&ErrCareerNotFound{ID: "nurse"}).Error())
	assert.Equal(t, "validation error: top_n - must be positive", (&ErrValidation{Field: "top_n", Message: "must be positive"}).Error())
	assert.Equal(t, "authentication is not configured", (&ErrAuthDisabled{}).Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "ErrValidation",
			err:      &ErrValidation{Field: "profile", Message: "required"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "ProfileError",
			err:      &types.ProfileError{Message: "invalid profile"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "schema ValidationError",
			err:      &schemas.ValidationError{Errors: []schemas.FieldError{{Field: "skills", Message: "bad"}}},
			expected: http.StatusBadRequest,
		},
		{
			name:     "wrapped ProfileError",
			err:      fmt.Errorf("profile 2: %w", &types.ProfileError{Message: "x"}),
			expected: http.StatusBadRequest,
		},
		{
			name:     "ErrInvalidCredentials",
			err:      &ErrInvalidCredentials{},
			expected: http.StatusUnauthorized,
		},
		{
			name:     "ErrCareerNotFound",
			err:      &ErrCareerNotFound{ID: "x"},
			expected: http.StatusNotFound,
		},
		{
			name:     "ErrInvalidCatalog",
			err:      fmt.Errorf("reload: %w", catalog.ErrInvalidCatalog),
			expected: http.StatusUnprocessableEntity,
		},
		{
			name:     "ErrAuthDisabled",
			err:      &ErrAuthDisabled{},
			expected: http.StatusServiceUnavailable,
		},
		{
			name:     "Unknown error",
			err:      fmt.Errorf("boom"),
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
