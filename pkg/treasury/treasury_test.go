package treasury

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nayanchoudhary31/raffle-service/internal/config"
)

func TestMemoryTreasuryAccumulates(t *testing.T) {
	treas := NewMemoryTreasury()
	ctx := context.Background()

	require.NoError(t, treas.Transfer(ctx, "alice", 30))
	require.NoError(t, treas.Transfer(ctx, "alice", 12.5))
	require.NoError(t, treas.Transfer(ctx, "bob", 7))

	require.Equal(t, 42.5, treas.Balance("alice"))
	require.Equal(t, 7.0, treas.Balance("bob"))
	require.Zero(t, treas.Balance("nobody"))
}

func TestMemoryTreasuryInjectedFailure(t *testing.T) {
	treas := NewMemoryTreasury()
	ctx := context.Background()

	railDown := errors.New("rail down")
	treas.SetFailure(railDown)

	err := treas.Transfer(ctx, "alice", 30)
	require.ErrorIs(t, err, railDown)
	require.Zero(t, treas.Balance("alice"))

	treas.SetFailure(nil)
	require.NoError(t, treas.Transfer(ctx, "alice", 30))
	require.Equal(t, 30.0, treas.Balance("alice"))
}

func TestHTTPTreasurySubmitsPayout(t *testing.T) {
	var received map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/payouts", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("X-API-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := &config.Config{}
	cfg.Treasury.BaseURL = server.URL
	cfg.Treasury.APIKey = "test-key"

	treas := NewHTTPTreasury(cfg)
	require.NoError(t, treas.Transfer(context.Background(), "alice", 40))

	require.Equal(t, "alice", received["account"])
	require.Equal(t, 40.0, received["amount"])
}

func TestHTTPTreasuryReportsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "insufficient funds", http.StatusConflict)
	}))
	defer server.Close()

	cfg := &config.Config{}
	cfg.Treasury.BaseURL = server.URL

	treas := NewHTTPTreasury(cfg)
	err := treas.Transfer(context.Background(), "alice", 40)
	require.Error(t, err)
	require.Contains(t, err.Error(), "409")
	require.Contains(t, err.Error(), "insufficient funds")
}
