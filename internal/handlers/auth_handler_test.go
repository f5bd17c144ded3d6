package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nayanchoudhary31/raffle-service/internal/config"
	"github.com/nayanchoudhary31/raffle-service/internal/services"
	"github.com/nayanchoudhary31/raffle-service/pkg/jwt"
)

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("sw0rdfish"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Admin.Email = "operator@example.com"
	cfg.Admin.PasswordHash = string(hash)
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpiresIn = 3600

	handler := NewAuthHandler(services.NewAuthService(cfg, jwt.NewTokenService(cfg)))

	router := gin.New()
	router.POST("/auth/login", handler.Login)
	return router
}

func TestLoginReturnsToken(t *testing.T) {
	router := newAuthRouter(t)

	w := doJSON(t, router, http.MethodPost, "/auth/login", gin.H{
		"email":    "operator@example.com",
		"password": "sw0rdfish",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, decodeBody(t, w)["token"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router := newAuthRouter(t)

	w := doJSON(t, router, http.MethodPost, "/auth/login", gin.H{
		"email":    "operator@example.com",
		"password": "guess",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginRejectsMalformedBody(t *testing.T) {
	router := newAuthRouter(t)

	w := doJSON(t, router, http.MethodPost, "/auth/login", gin.H{
		"email":    "not-an-email",
		"password": "sw0rdfish",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}
