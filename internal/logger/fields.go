package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Structured field keys shared across packages.
const (
	FieldSource    = "catalog_source"
	FieldVersion   = "catalog_version"
	FieldCareerID  = "career_id"
	FieldRequestID = "request_id"
	FieldOperator  = "operator"
)

// WithFields safely attaches the provided fields to the logger, defaulting to a
// no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	logger = OrNop(logger)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// WithSource tags the logger with the catalog source name. Blank names are ignored.
func WithSource(logger *zap.Logger, source string) *zap.Logger {
	source = strings.TrimSpace(source)
	if source == "" {
		return OrNop(logger)
	}
	return WithFields(logger, zap.String(FieldSource, source))
}
