package vrf

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockCoordinator simulates a randomness coordinator for development and
// testing. Each request gets a UUID handle; the random words are
// delivered to the bound Fulfiller from a separate goroutine after the
// configured delay, mimicking the unscheduled arrival of a real callback.
type MockCoordinator struct {
	mu        sync.Mutex
	fulfiller Fulfiller
	delay     time.Duration
	nextWords []uint64 // when set, delivered once instead of generated words
}

// NewMockCoordinator creates a new MockCoordinator
func NewMockCoordinator(delay time.Duration) *MockCoordinator {
	return &MockCoordinator{delay: delay}
}

// SetFulfiller binds the callback target. Must be called before the first
// request; requests issued without a fulfiller are never delivered.
func (m *MockCoordinator) SetFulfiller(f Fulfiller) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fulfiller = f
}

// SetNextWords fixes the words of the next fulfillment. Test hook.
func (m *MockCoordinator) SetNextWords(words []uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextWords = words
}

// RequestRandomWords mints a request handle and schedules its fulfillment
func (m *MockCoordinator) RequestRandomWords(ctx context.Context, req Request) (string, error) {
	m.mu.Lock()
	fulfiller := m.fulfiller
	words := m.nextWords
	m.nextWords = nil
	m.mu.Unlock()

	requestID := uuid.NewString()

	if words == nil {
		words = make([]uint64, req.NumWords)
		for i := range words {
			words[i] = rand.Uint64()
		}
	}

	if fulfiller == nil {
		slog.Warn("mock coordinator has no fulfiller bound, request will never be delivered", "requestId", requestID)
		return requestID, nil
	}

	go func() {
		time.Sleep(m.delay)
		if err := fulfiller.FulfillRandomness(context.Background(), requestID, words); err != nil {
			slog.Warn("mock coordinator fulfillment rejected", "requestId", requestID, "error", err)
		}
	}()

	return requestID, nil
}
