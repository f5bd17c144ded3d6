package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/nayanchoudhary31/raffle-service/internal/config"
)

func tokenConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpiresIn = 3600
	return cfg
}

func TestIssueSignsVerifiableToken(t *testing.T) {
	s := NewTokenService(tokenConfig())

	signed, expiresAt, err := s.Issue("operator@example.com", "operator")
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	parsed, err := gojwt.Parse(signed, func(token *gojwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(gojwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, "operator@example.com", claims["sub"])
	require.Equal(t, "operator", claims["role"])
}

func TestIssuedTokenFailsWrongSecret(t *testing.T) {
	s := NewTokenService(tokenConfig())

	signed, _, err := s.Issue("operator@example.com", "operator")
	require.NoError(t, err)

	_, err = gojwt.Parse(signed, func(token *gojwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	require.Error(t, err)
}
