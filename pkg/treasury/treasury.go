package treasury

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/nayanchoudhary31/raffle-service/internal/config"
)

// Treasury represents the settlement rail. Transfer either moves the full
// amount to the account or returns an error; there is no partial payout.
type Treasury interface {
	Transfer(ctx context.Context, account string, amount float64) error
}

// HTTPTreasury submits payout orders to a settlement endpoint
type HTTPTreasury struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPTreasury creates a new HTTPTreasury
func NewHTTPTreasury(cfg *config.Config) *HTTPTreasury {
	return &HTTPTreasury{
		baseURL: cfg.Treasury.BaseURL,
		apiKey:  cfg.Treasury.APIKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Transfer submits a payout order
func (t *HTTPTreasury) Transfer(ctx context.Context, account string, amount float64) error {
	// Prepare the request body
	requestBody := map[string]interface{}{
		"account": account,
		"amount":  amount,
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	// Create the request
	req, err := http.NewRequestWithContext(ctx, "POST", t.baseURL+"/payouts", bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// Set headers
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", t.apiKey)

	// Send the request
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	// Read the response body
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Check response status
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("transfer failed with status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

// MemoryTreasury keeps per-account balances in memory. It is the dev
// default and the test double for settlement assertions.
type MemoryTreasury struct {
	mu       sync.Mutex
	balances map[string]float64
	failure  error
}

// NewMemoryTreasury creates a new MemoryTreasury
func NewMemoryTreasury() *MemoryTreasury {
	return &MemoryTreasury{
		balances: make(map[string]float64),
	}
}

// Transfer credits the account, or fails while a failure is injected
func (t *MemoryTreasury) Transfer(ctx context.Context, account string, amount float64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.failure != nil {
		return t.failure
	}

	t.balances[account] += amount
	return nil
}

// Balance returns the credited total for an account
func (t *MemoryTreasury) Balance(account string) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.balances[account]
}

// SetFailure makes every subsequent Transfer fail with err until cleared
// with SetFailure(nil). Test hook.
func (t *MemoryTreasury) SetFailure(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failure = err
}
