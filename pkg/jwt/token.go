package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nayanchoudhary31/raffle-service/internal/config"
)

// TokenService handles JWT token generation for operator sessions
type TokenService struct {
	secret    string
	expiresIn time.Duration
}

// NewTokenService creates a new TokenService
func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{
		secret:    cfg.JWT.Secret,
		expiresIn: time.Duration(cfg.JWT.ExpiresIn) * time.Second,
	}
}

// Issue signs a token for the given subject and role
func (s *TokenService) Issue(subject, role string) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.expiresIn)

	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}
