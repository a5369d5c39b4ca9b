package catalog

import (
	"errors"
	"fmt"
)

// ErrInvalidCatalog is returned by Store.Reload when the source fails validation.
var ErrInvalidCatalog = errors.New("catalog failed validation")

// SourceError represents a catalog source that could not be opened or read.
type SourceError struct {
	Source  string
	Message string
	Cause   error
}

func (e *SourceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("catalog source %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("catalog source %s: %s", e.Source, e.Message)
}

func (e *SourceError) Unwrap() error {
	return e.Cause
}

// DecodeError represents a row that could not be turned into a Career.
type DecodeError struct {
	Row   int // 1-based data row
	ID    string
	Field string
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("row %d (id %q): field %s: %v", e.Row, e.ID, e.Field, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
