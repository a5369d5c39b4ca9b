package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jonathan/career-advisor/internal/config"
	"github.com/jonathan/career-advisor/internal/server/middleware"
)

// tokenIssuer is the iss claim of every admin token.
const tokenIssuer = "career-advisor"

// Claims are the claims of an admin token. The subject repeats the operator id.
type Claims struct {
	OperatorID uuid.UUID `json:"operator_id"`
	jwt.RegisteredClaims
}

// GetOperatorID implements middleware.OperatorIDGetter.
func (c *Claims) GetOperatorID() uuid.UUID {
	return c.OperatorID
}

// JWTService signs and verifies HS256 admin tokens.
type JWTService struct {
	config *config.JWTConfig
	parser *jwt.Parser
	now    func() time.Time
}

// NewJWTService creates a JWT service for cfg.
func NewJWTService(cfg *config.JWTConfig) *JWTService {
	s := &JWTService{config: cfg, now: time.Now}
	s.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	return s
}

// GenerateToken signs a token for operatorID and returns it with its expiry.
func (s *JWTService) GenerateToken(operatorID uuid.UUID) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.config.TTL())

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		OperatorID: operatorID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   operatorID.String(),
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	})

	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateToken verifies signature, issuer and validity window and returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("token string is empty")
	}

	claims := &Claims{}
	if _, err := s.parser.ParseWithClaims(tokenString, claims, s.signingKey); err != nil {
		return nil, describeTokenError(err)
	}

	if claims.OperatorID == uuid.Nil {
		return nil, fmt.Errorf("token has no operator id")
	}
	if claims.Subject != claims.OperatorID.String() {
		return nil, fmt.Errorf("token subject does not match operator id")
	}
	return claims, nil
}

func (s *JWTService) signingKey(*jwt.Token) (any, error) {
	return []byte(s.config.Secret), nil
}

func describeTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("invalid token signature: %w", err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("token expired: %w", err)
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("malformed token: %w", err)
	default:
		return fmt.Errorf("failed to parse token: %w", err)
	}
}

// AsTokenValidator adapts the service to middleware.TokenValidator.
func (s *JWTService) AsTokenValidator() middleware.TokenValidator {
	return tokenValidator{s}
}

type tokenValidator struct {
	service *JWTService
}

func (v tokenValidator) ValidateToken(tokenString string) (middleware.OperatorIDGetter, error) {
	claims, err := v.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
