package services

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/nayanchoudhary31/raffle-service/internal/config"
	"github.com/nayanchoudhary31/raffle-service/internal/models"
	"github.com/nayanchoudhary31/raffle-service/pkg/jwt"
)

// Compile-time check to ensure AuthServiceImpl implements AuthService
var _ AuthService = (*AuthServiceImpl)(nil)

// ErrInvalidCredentials is returned for any login failure. The cause is
// deliberately not distinguished in the response.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthServiceImpl verifies the operator credentials configured for this
// deployment. There is no user store: the raffle has exactly one operator
// identity, set through configuration.
type AuthServiceImpl struct {
	adminEmail        string
	adminPasswordHash string
	tokens            *jwt.TokenService
}

// NewAuthService creates a new AuthServiceImpl
func NewAuthService(cfg *config.Config, tokens *jwt.TokenService) *AuthServiceImpl {
	return &AuthServiceImpl{
		adminEmail:        cfg.Admin.Email,
		adminPasswordHash: cfg.Admin.PasswordHash,
		tokens:            tokens,
	}
}

// Login verifies the operator credentials and returns a session token
func (s *AuthServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if req.Email != s.adminEmail || s.adminPasswordHash == "" {
		slog.Warn("rejected login attempt", "email", req.Email)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(req.Password)); err != nil {
		slog.Warn("rejected login attempt", "email", req.Email)
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(req.Email, "operator")
	if err != nil {
		slog.Error("failed to issue session token", "error", err)
		return nil, err
	}

	slog.Info("operator logged in", "email", req.Email)
	return &models.LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}
