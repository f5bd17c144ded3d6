package memory

import (
	"context"
	"sync"

	"github.com/nayanchoudhary31/raffle-service/internal/models"
	"github.com/nayanchoudhary31/raffle-service/internal/repositories"
)

// RaffleEventRepository is an in-memory event journal used when MongoDB
// is disabled. Events are kept in insertion order.
type RaffleEventRepository struct {
	mu     sync.RWMutex
	events []*models.RaffleEvent
}

// NewRaffleEventRepository creates an empty in-memory journal
func NewRaffleEventRepository() repositories.RaffleEventRepository {
	return &RaffleEventRepository{}
}

func (r *RaffleEventRepository) Create(ctx context.Context, event *models.RaffleEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *event
	r.events = append(r.events, &copied)
	return nil
}

// FindRecent returns up to limit events, newest first
func (r *RaffleEventRepository) FindRecent(ctx context.Context, limit int) ([]*models.RaffleEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.RaffleEvent, 0, limit)
	for i := len(r.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.events[i])
	}
	return out, nil
}

func (r *RaffleEventRepository) FindByType(ctx context.Context, eventType models.RaffleEventType, limit int) ([]*models.RaffleEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.RaffleEvent, 0, limit)
	for i := len(r.events) - 1; i >= 0 && len(out) < limit; i-- {
		if r.events[i].Type == eventType {
			out = append(out, r.events[i])
		}
	}
	return out, nil
}
