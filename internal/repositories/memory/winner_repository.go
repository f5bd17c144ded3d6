package memory

import (
	"context"
	"sync"
	"time"

	"github.com/nayanchoudhary31/raffle-service/internal/models"
	"github.com/nayanchoudhary31/raffle-service/internal/repositories"
)

// WinnerRepository is an in-memory winner archive used when MongoDB is
// disabled
type WinnerRepository struct {
	mu      sync.RWMutex
	winners []*models.WinnerRecord
}

// NewWinnerRepository creates an empty in-memory archive
func NewWinnerRepository() repositories.WinnerRepository {
	return &WinnerRepository{}
}

func (r *WinnerRepository) Create(ctx context.Context, winner *models.WinnerRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *winner
	copied.CreatedAt = time.Now()
	r.winners = append(r.winners, &copied)
	return nil
}

// FindRecent returns up to limit winners, newest first
func (r *WinnerRepository) FindRecent(ctx context.Context, limit int) ([]*models.WinnerRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.WinnerRecord, 0, limit)
	for i := len(r.winners) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.winners[i])
	}
	return out, nil
}

func (r *WinnerRepository) FindByAccount(ctx context.Context, account string) ([]*models.WinnerRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*models.WinnerRecord
	for i := len(r.winners) - 1; i >= 0; i-- {
		if r.winners[i].Account == account {
			out = append(out, r.winners[i])
		}
	}
	return out, nil
}
