package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nayanchoudhary31/raffle-service/internal/config"
	"github.com/nayanchoudhary31/raffle-service/internal/models"
	"github.com/nayanchoudhary31/raffle-service/pkg/jwt"
)

func newAuthConfig(t *testing.T, password string) *config.Config {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Admin.Email = "operator@example.com"
	cfg.Admin.PasswordHash = string(hash)
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpiresIn = 3600
	return cfg
}

func TestLoginIssuesToken(t *testing.T) {
	cfg := newAuthConfig(t, "sw0rdfish")
	s := NewAuthService(cfg, jwt.NewTokenService(cfg))

	resp, err := s.Login(context.Background(), &models.LoginRequest{
		Email:    "operator@example.com",
		Password: "sw0rdfish",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, time.Minute)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	cfg := newAuthConfig(t, "sw0rdfish")
	s := NewAuthService(cfg, jwt.NewTokenService(cfg))

	_, err := s.Login(context.Background(), &models.LoginRequest{
		Email:    "operator@example.com",
		Password: "guess",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	cfg := newAuthConfig(t, "sw0rdfish")
	s := NewAuthService(cfg, jwt.NewTokenService(cfg))

	_, err := s.Login(context.Background(), &models.LoginRequest{
		Email:    "someone@else.com",
		Password: "sw0rdfish",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsWhenNoOperatorConfigured(t *testing.T) {
	cfg := &config.Config{}
	cfg.Admin.Email = "operator@example.com"
	cfg.JWT.Secret = "test-secret"
	s := NewAuthService(cfg, jwt.NewTokenService(cfg))

	_, err := s.Login(context.Background(), &models.LoginRequest{
		Email:    "operator@example.com",
		Password: "anything",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
