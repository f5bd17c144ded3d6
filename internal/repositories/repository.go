package repositories

import (
	"context"

	"github.com/nayanchoudhary31/raffle-service/internal/models"
)

// RaffleEventRepository defines the interface for the raffle event journal
type RaffleEventRepository interface {
	Create(ctx context.Context, event *models.RaffleEvent) error
	FindRecent(ctx context.Context, limit int) ([]*models.RaffleEvent, error)
	FindByType(ctx context.Context, eventType models.RaffleEventType, limit int) ([]*models.RaffleEvent, error)
}

// WinnerRepository defines the interface for the winner archive
type WinnerRepository interface {
	Create(ctx context.Context, winner *models.WinnerRecord) error
	FindRecent(ctx context.Context, limit int) ([]*models.WinnerRecord, error)
	FindByAccount(ctx context.Context, account string) ([]*models.WinnerRecord, error)
}
