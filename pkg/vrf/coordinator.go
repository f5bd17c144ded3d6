package vrf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nayanchoudhary31/raffle-service/internal/config"
)

// Request carries the parameters of one randomness request. The values
// are fixed at construction time from configuration.
type Request struct {
	MinConfirmations int `json:"minConfirmations"`
	CallbackGasLimit int `json:"callbackGasLimit"`
	NumWords         int `json:"numWords"`
}

// Coordinator represents a verifiable-randomness coordinator. The
// returned request ID is an opaque handle; the random words arrive later
// through a callback the coordinator addresses by that handle.
type Coordinator interface {
	RequestRandomWords(ctx context.Context, req Request) (string, error)
}

// Fulfiller receives randomness callbacks. The raffle service implements
// this; the mock coordinator delivers to it directly.
type Fulfiller interface {
	FulfillRandomness(ctx context.Context, requestID string, randomWords []uint64) error
}

// FulfillerFunc adapts a function to the Fulfiller interface
type FulfillerFunc func(ctx context.Context, requestID string, randomWords []uint64) error

func (f FulfillerFunc) FulfillRandomness(ctx context.Context, requestID string, randomWords []uint64) error {
	return f(ctx, requestID, randomWords)
}

// HTTPCoordinator talks to a real coordinator over HTTP
type HTTPCoordinator struct {
	baseURL     string
	apiKey      string
	callbackURL string
	httpClient  *http.Client
}

// NewHTTPCoordinator creates a new HTTPCoordinator
func NewHTTPCoordinator(cfg *config.Config) *HTTPCoordinator {
	return &HTTPCoordinator{
		baseURL:     cfg.VRF.BaseURL,
		apiKey:      cfg.VRF.APIKey,
		callbackURL: cfg.VRF.CallbackURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// RequestRandomWords submits a randomness request and returns the
// coordinator's request ID
func (c *HTTPCoordinator) RequestRandomWords(ctx context.Context, req Request) (string, error) {
	// Prepare the request body
	requestBody := map[string]interface{}{
		"minConfirmations": req.MinConfirmations,
		"callbackGasLimit": req.CallbackGasLimit,
		"numWords":         req.NumWords,
		"callbackUrl":      c.callbackURL,
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	// Create the request
	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v2/requests", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	// Set headers
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-API-Key", c.apiKey)

	// Send the request
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	// Read the response body
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	// Check response status
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	// Parse the response
	var response struct {
		RequestID string `json:"requestId"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if response.RequestID == "" {
		return "", fmt.Errorf("coordinator returned an empty request id")
	}

	return response.RequestID, nil
}
