package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/career-advisor/internal/config"
	"github.com/jonathan/career-advisor/internal/logger"
)

// TokenRequest is the body of POST /auth/token.
type TokenRequest struct {
	Password   string `json:"password" validate:"required"`
	OperatorID string `json:"operator_id,omitempty" validate:"omitempty,uuid"`
}

// TokenResponse carries a signed admin token.
type TokenResponse struct {
	Token      string    `json:"token"`
	OperatorID uuid.UUID `json:"operator_id"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// AuthHandler exchanges the operator password for admin tokens.
type AuthHandler struct {
	passwords    *config.PasswordConfig
	passwordHash string
	jwtService   *JWTService
	validator    *validator.Validate
	log          *zap.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(passwords *config.PasswordConfig, passwordHash string, jwtService *JWTService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		passwords:    passwords,
		passwordHash: passwordHash,
		jwtService:   jwtService,
		validator:    validator.New(),
		log:          logger.OrNop(log),
	}
}

// IssueToken handles POST /auth/token.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		writeError(w, h.log, extractValidationError(err))
		return
	}

	if !h.passwords.VerifyPassword(req.Password, h.passwordHash) {
		h.log.Warn("admin token refused", zap.String("remote_addr", r.RemoteAddr))
		writeError(w, h.log, &ErrInvalidCredentials{})
		return
	}

	operatorID := uuid.New()
	if req.OperatorID != "" {
		operatorID = uuid.MustParse(req.OperatorID)
	}

	token, expiresAt, err := h.jwtService.GenerateToken(operatorID)
	if err != nil {
		writeError(w, h.log, fmt.Errorf("failed to generate token: %w", err))
		return
	}

	h.log.Info("admin token issued", zap.String(logger.FieldOperator, operatorID.String()))
	jsonResponse(w, h.log, http.StatusOK, TokenResponse{
		Token:      token,
		OperatorID: operatorID,
		ExpiresAt:  expiresAt,
	})
}

// extractValidationError converts the first validator failure into an ErrValidation.
func extractValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return &ErrValidation{Field: ve.Field(), Message: ve.Tag()}
	}
	return &ErrValidation{Field: "request", Message: "invalid request"}
}
